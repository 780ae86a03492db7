// Package transferdelivery manages delivery layer of transfers and withdrawals.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/card-ledger/internal/domain"
	"github.com/go-petr/card-ledger/pkg/amountpkg"
	"github.com/go-petr/card-ledger/pkg/errorspkg"
	"github.com/go-petr/card-ledger/pkg/web"
)

// WithdrawalNote tells the caller how the cash reaches the account holder.
const WithdrawalNote = "balance debited, an operator will hand out the cash"

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, req domain.TransferRequest) (domain.TransferTxResult, error)
	Withdraw(ctx context.Context, accountID, amount string) (domain.WithdrawTxResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) Handler {
	return Handler{service: ts}
}

func (h *Handler) fail(gctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case errors.Is(err, domain.ErrInvalidCredential), errors.Is(err, domain.ErrInvalidOrExpiredCode):
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
	case errors.Is(err, domain.ErrInsufficientFunds):
		gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
	case errors.Is(err, errorspkg.ErrStorage):
		gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type transferRequest struct {
	From    string          `json:"from" binding:"required,account"`
	To      string          `json:"to" binding:"required,account"`
	Amount  amountpkg.Input `json:"amount" binding:"required"`
	CardID  string          `json:"card_id" binding:"required"`
	SecCode string          `json:"sec_code" binding:"required"`
}

// transferData exposes only the sender side of a transfer. The receiver
// balance and notification address stay private to the receiver.
type transferData struct {
	FromAccountID string       `json:"from_account_id"`
	NewBalance    int64        `json:"new_balance"`
	Entry         domain.Entry `json:"entry"`
}

type transferResponse struct {
	Data transferData `json:"data"`
}

// Transfer handles http request to move money between two accounts.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	result, err := h.service.Transfer(ctx, domain.TransferRequest{
		FromAccountID: req.From,
		ToAccountID:   req.To,
		Amount:        string(req.Amount),
		CardID:        req.CardID,
		Code:          req.SecCode,
	})
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, transferResponse{
		Data: transferData{
			FromAccountID: result.FromAccount.ID,
			NewBalance:    result.FromAccount.Balance,
			Entry:         result.FromEntry,
		},
	})
}

type withdrawRequest struct {
	User   string          `json:"user" binding:"required,account"`
	Amount amountpkg.Input `json:"amount" binding:"required"`
}

type withdrawData struct {
	AccountID  string       `json:"account_id"`
	NewBalance int64        `json:"new_balance"`
	Entry      domain.Entry `json:"entry"`
	Note       string       `json:"note"`
}

type withdrawResponse struct {
	Data withdrawData `json:"data"`
}

// Withdraw handles http request to book a cash withdrawal.
func (h *Handler) Withdraw(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req withdrawRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	result, err := h.service.Withdraw(ctx, req.User, string(req.Amount))
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, withdrawResponse{
		Data: withdrawData{
			AccountID:  result.Account.ID,
			NewBalance: result.Account.Balance,
			Entry:      result.Entry,
			Note:       WithdrawalNote,
		},
	})
}
