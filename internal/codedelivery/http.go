// Package codedelivery manages delivery layer of security codes.
package codedelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/card-ledger/internal/domain"
	"github.com/go-petr/card-ledger/pkg/errorspkg"
	"github.com/go-petr/card-ledger/pkg/web"
)

// Service provides service layer interface needed by code delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package codedelivery
type Service interface {
	Issue(ctx context.Context, accountID, cardID string) (domain.AuthCode, error)
}

// Handler facilitates code delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns code handler.
func NewHandler(cs Service) Handler {
	return Handler{service: cs}
}

type issueRequest struct {
	User   string `json:"user" binding:"required,account"`
	CardID string `json:"card_id" binding:"required"`
}

type issueData struct {
	AccountID string    `json:"account_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Message   string    `json:"message"`
}

type issueResponse struct {
	Data issueData `json:"data"`
}

// Issue handles http request to send a new security code to the account holder.
// The code itself is never part of the response.
func (h *Handler) Issue(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req issueRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	code, err := h.service.Issue(ctx, req.User, req.CardID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		case errors.Is(err, domain.ErrInvalidCredential):
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
		case errors.Is(err, domain.ErrUnlinkedNotificationTarget):
			gctx.JSON(http.StatusConflict, web.Error(err))
		case errors.Is(err, errorspkg.ErrStorage):
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusCreated, issueResponse{
		Data: issueData{
			AccountID: code.AccountID,
			ExpiresAt: code.ExpiresAt,
			Message:   "security code sent",
		},
	})
}
