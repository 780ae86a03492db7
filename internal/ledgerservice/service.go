// Package ledgerservice manages business logic layer of transfers and withdrawals.
package ledgerservice

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-petr/card-ledger/internal/domain"
	"github.com/go-petr/card-ledger/pkg/amountpkg"
)

// Repo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	Transfer(ctx context.Context, arg domain.TransferParams) (domain.TransferTxResult, error)
	Withdraw(ctx context.Context, arg domain.WithdrawParams) (domain.WithdrawTxResult, error)
}

// CardAuthorizer checks card ownership.
type CardAuthorizer interface {
	Authorize(ctx context.Context, cardID, accountID string) error
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo  Repo
	cards CardAuthorizer
	now   func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New returns ledger service struct to manage transfer business logic.
func New(lr Repo, ca CardAuthorizer, opts ...Option) *Service {
	s := &Service{
		repo:  lr,
		cards: ca,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func parseAmount(ctx context.Context, amount string) (int64, error) {
	amt, err := amountpkg.Parse(amount)
	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Str("amount", amount).Send()
		return 0, domain.ErrInvalidAmount
	}

	return amt, nil
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}

	return false
}

// Transfer checks the amount and the card, then hands the code check, the
// balance check and the mutation to a single repository transaction which
// also consumes the code.
func (s *Service) Transfer(ctx context.Context, req domain.TransferRequest) (domain.TransferTxResult, error) {
	if blank(req.FromAccountID, req.ToAccountID, req.CardID, req.Code) {
		return domain.TransferTxResult{}, domain.ErrInvalidInput
	}

	amount, err := parseAmount(ctx, req.Amount)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	if req.FromAccountID == req.ToAccountID {
		return domain.TransferTxResult{}, domain.ErrSameAccount
	}

	if err := s.cards.Authorize(ctx, req.CardID, req.FromAccountID); err != nil {
		return domain.TransferTxResult{}, err
	}

	arg := domain.TransferParams{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        amount,
		Code:          req.Code,
		At:            s.now(),
	}

	result, err := s.repo.Transfer(ctx, arg)
	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).
			Str("from", arg.FromAccountID).
			Str("to", arg.ToAccountID).
			Int64("amount", arg.Amount).
			Msg("transfer rejected")

		return domain.TransferTxResult{}, err
	}

	return result, nil
}

// Withdraw debits the account for a cash payout that an operator performs by hand.
// It needs neither card nor code.
func (s *Service) Withdraw(ctx context.Context, accountID, amount string) (domain.WithdrawTxResult, error) {
	if blank(accountID) {
		return domain.WithdrawTxResult{}, domain.ErrInvalidInput
	}

	amt, err := parseAmount(ctx, amount)
	if err != nil {
		return domain.WithdrawTxResult{}, err
	}

	arg := domain.WithdrawParams{
		AccountID: accountID,
		Amount:    amt,
		At:        s.now(),
	}

	result, err := s.repo.Withdraw(ctx, arg)
	if err != nil {
		return domain.WithdrawTxResult{}, err
	}

	zerolog.Ctx(ctx).Info().Str("account_id", accountID).Int64("amount", amt).Msg("cash withdrawal booked")

	return result, nil
}
