// Package admindelivery manages delivery layer of operator actions: admin
// sessions, card registration and notification address linking.
package admindelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/card-ledger/internal/domain"
	"github.com/go-petr/card-ledger/pkg/errorspkg"
	"github.com/go-petr/card-ledger/pkg/tokenpkg"
	"github.com/go-petr/card-ledger/pkg/web"
)

// SessionService provides admin login needed by admin delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package admindelivery
type SessionService interface {
	Login(ctx context.Context, secret string) (string, *tokenpkg.Payload, error)
}

// CardService provides card registration needed by admin delivery layer.
type CardService interface {
	Register(ctx context.Context, cardID, ownerAccountID string) (domain.Card, error)
}

// AccountService provides account administration needed by admin delivery layer.
type AccountService interface {
	LinkNotificationAddress(ctx context.Context, id, address string) (domain.Account, error)
}

// Handler facilitates admin delivery layer logic.
type Handler struct {
	sessions SessionService
	cards    CardService
	accounts AccountService
}

// NewHandler returns admin handler.
func NewHandler(ss SessionService, cs CardService, as AccountService) Handler {
	return Handler{
		sessions: ss,
		cards:    cs,
		accounts: as,
	}
}

func (h *Handler) fail(gctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case errors.Is(err, domain.ErrInvalidCredential):
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
	case errors.Is(err, domain.ErrAccountNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case errors.Is(err, domain.ErrDuplicateCredential):
		gctx.JSON(http.StatusConflict, web.Error(err))
	case errors.Is(err, errorspkg.ErrStorage):
		gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type loginRequest struct {
	Secret string `json:"secret" binding:"required"`
}

type loginData struct {
	AccessToken          string    `json:"access_token"`
	AccessTokenExpiresAt time.Time `json:"access_token_expires_at"`
}

type loginResponse struct {
	Data loginData `json:"data"`
}

// Login handles http request to open an admin session.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	token, payload, err := h.sessions.Login(ctx, req.Secret)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, loginResponse{
		Data: loginData{
			AccessToken:          token,
			AccessTokenExpiresAt: payload.ExpiredAt,
		},
	})
}

type registerCardRequest struct {
	CardID string `json:"card_id" binding:"required,max=128"`
	Owner  string `json:"owner" binding:"required,account"`
}

type cardResponse struct {
	Data domain.Card `json:"data"`
}

// RegisterCard handles http request to bind a new card to its owner account.
func (h *Handler) RegisterCard(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req registerCardRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	card, err := h.cards.Register(ctx, req.CardID, req.Owner)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	l.Info().Str("card_id", card.ID).Str("owner", card.OwnerAccountID).Msg("card registered")

	gctx.JSON(http.StatusCreated, cardResponse{Data: card})
}

type linkURI struct {
	User string `uri:"user" binding:"required,account"`
}

type linkRequest struct {
	Address string `json:"address" binding:"max=255"`
}

type accountResponse struct {
	Data domain.Account `json:"data"`
}

// LinkNotificationAddress handles http request to set where security codes of
// an account are delivered. An empty address unlinks the account.
func (h *Handler) LinkNotificationAddress(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri linkURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	var req linkRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	account, err := h.accounts.LinkNotificationAddress(ctx, uri.User, req.Address)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, accountResponse{Data: account})
}
