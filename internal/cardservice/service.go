// Package cardservice manages business logic layer of card credentials.
package cardservice

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/go-petr/card-ledger/internal/domain"
)

// Repo provides data access layer interface needed by card service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package cardservice
type Repo interface {
	Create(ctx context.Context, id, ownerAccountID string) (domain.Card, error)
	Get(ctx context.Context, id string) (domain.Card, error)
}

// AccountProvisioner creates accounts on first reference.
type AccountProvisioner interface {
	Ensure(ctx context.Context, id string) error
}

// Service facilitates card service layer logic.
type Service struct {
	repo     Repo
	accounts AccountProvisioner
}

// New returns card service struct to manage card business logic.
func New(cr Repo, ap AccountProvisioner) *Service {
	return &Service{
		repo:     cr,
		accounts: ap,
	}
}

// Register binds a new card to its owner account. The binding never changes afterwards.
func (s *Service) Register(ctx context.Context, cardID, ownerAccountID string) (domain.Card, error) {
	if strings.TrimSpace(cardID) == "" || strings.TrimSpace(ownerAccountID) == "" {
		return domain.Card{}, domain.ErrInvalidInput
	}

	if err := s.accounts.Ensure(ctx, ownerAccountID); err != nil {
		return domain.Card{}, err
	}

	return s.repo.Create(ctx, cardID, ownerAccountID)
}

// ResolveOwner returns the id of the account owning the card.
func (s *Service) ResolveOwner(ctx context.Context, cardID string) (string, error) {
	card, err := s.repo.Get(ctx, cardID)
	if err != nil {
		return "", err
	}

	return card.OwnerAccountID, nil
}

// Authorize checks that the card exists and belongs to the account.
func (s *Service) Authorize(ctx context.Context, cardID, accountID string) error {
	l := zerolog.Ctx(ctx)

	owner, err := s.ResolveOwner(ctx, cardID)
	if err != nil {
		if errors.Is(err, domain.ErrCardNotFound) {
			l.Info().Str("card_id", cardID).Msg("unknown card")
			return domain.ErrInvalidCredential
		}

		return err
	}

	if owner != accountID {
		l.Warn().Str("card_id", cardID).Str("account_id", accountID).Msg("card owner mismatch")
		return domain.ErrInvalidCredential
	}

	return nil
}
