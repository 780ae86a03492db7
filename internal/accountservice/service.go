// Package accountservice manages business logic layer of accounts and their transaction log.
package accountservice

import (
	"context"
	"strings"

	"github.com/go-petr/card-ledger/internal/domain"
)

// MaxEntriesLimit caps the number of entries returned by ListRecentTransactions.
const MaxEntriesLimit = 100

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	GetOrCreate(ctx context.Context, id string) (domain.Account, error)
	SetNotificationAddress(ctx context.Context, id, address string) (domain.Account, error)
}

// EntryRepo provides transaction log access needed by account service layer.
type EntryRepo interface {
	ListRecent(ctx context.Context, accountID string, limit int32) ([]domain.Entry, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo    Repo
	entries EntryRepo
}

// New returns account service struct to manage account business logic.
func New(ar Repo, er EntryRepo) *Service {
	return &Service{
		repo:    ar,
		entries: er,
	}
}

// Get returns the account, creating it with zero balance on first reference.
func (s *Service) Get(ctx context.Context, id string) (domain.Account, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Account{}, domain.ErrInvalidInput
	}

	return s.repo.GetOrCreate(ctx, id)
}

// GetBalance returns the current balance of the account. An unknown account
// is created with zero balance as a side effect, so it never fails with not found.
func (s *Service) GetBalance(ctx context.Context, id string) (int64, error) {
	account, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}

	return account.Balance, nil
}

// ListRecentTransactions returns the most recent entries of the account,
// newest first. A non-positive limit means domain.DefaultEntriesLimit.
func (s *Service) ListRecentTransactions(ctx context.Context, id string, limit int32) ([]domain.Entry, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}

	switch {
	case limit <= 0:
		limit = domain.DefaultEntriesLimit
	case limit > MaxEntriesLimit:
		limit = MaxEntriesLimit
	}

	return s.entries.ListRecent(ctx, id, limit)
}

// LinkNotificationAddress sets the handle security codes of the account are delivered to.
func (s *Service) LinkNotificationAddress(ctx context.Context, id, address string) (domain.Account, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Account{}, domain.ErrInvalidInput
	}

	if _, err := s.repo.GetOrCreate(ctx, id); err != nil {
		return domain.Account{}, err
	}

	return s.repo.SetNotificationAddress(ctx, id, strings.TrimSpace(address))
}
