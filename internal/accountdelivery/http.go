// Package accountdelivery manages delivery layer of account balances and transaction history.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/card-ledger/internal/domain"
	"github.com/go-petr/card-ledger/pkg/errorspkg"
	"github.com/go-petr/card-ledger/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	GetBalance(ctx context.Context, id string) (int64, error)
	ListRecentTransactions(ctx context.Context, id string, limit int32) ([]domain.Entry, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

func (h *Handler) fail(gctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case errors.Is(err, errorspkg.ErrStorage):
		gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type balanceRequest struct {
	User string `form:"user" binding:"required,account"`
}

type balanceData struct {
	AccountID string `json:"account_id"`
	Balance   int64  `json:"balance"`
}

type balanceResponse struct {
	Data balanceData `json:"data"`
}

// GetBalance handles http request to get the balance of an account.
func (h *Handler) GetBalance(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req balanceRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	balance, err := h.service.GetBalance(ctx, req.User)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, balanceResponse{
		Data: balanceData{AccountID: req.User, Balance: balance},
	})
}

type listRequest struct {
	User  string `form:"user" binding:"required,account"`
	Limit int32  `form:"limit" binding:"omitempty,min=1,max=100"`
}

type listData struct {
	Entries []domain.Entry `json:"entries"`
}

type listResponse struct {
	Data listData `json:"data"`
}

// ListTransactions handles http request to list the most recent entries of an account.
func (h *Handler) ListTransactions(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	entries, err := h.service.ListRecentTransactions(ctx, req.User, req.Limit)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, listResponse{
		Data: listData{Entries: entries},
	})
}
