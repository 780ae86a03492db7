// Package codeservice manages the lifecycle of security codes.
package codeservice

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-petr/card-ledger/internal/domain"
	"github.com/go-petr/card-ledger/pkg/randompkg"
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 5 * time.Minute

// Repo provides data access layer interface needed by code service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package codeservice
type Repo interface {
	Upsert(ctx context.Context, arg domain.AuthCode) (domain.AuthCode, error)
}

// AccountRepo provides account access needed by code service layer.
type AccountRepo interface {
	GetOrCreate(ctx context.Context, id string) (domain.Account, error)
}

// CardAuthorizer checks card ownership.
type CardAuthorizer interface {
	Authorize(ctx context.Context, cardID, accountID string) error
}

// Dispatcher delivers codes asynchronously. Dispatch never blocks and
// reports false when the delivery was dropped.
type Dispatcher interface {
	Dispatch(destination, code string) bool
}

// Service facilitates code service layer logic.
type Service struct {
	repo       Repo
	accounts   AccountRepo
	cards      CardAuthorizer
	dispatcher Dispatcher
	ttl        time.Duration
	now        func() time.Time
	generate   func() string
}

// Option configures the Service.
type Option func(*Service)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithGenerator overrides the random code generator.
func WithGenerator(generate func() string) Option {
	return func(s *Service) {
		s.generate = generate
	}
}

// New returns code service struct to manage code business logic.
func New(cr Repo, ar AccountRepo, ca CardAuthorizer, d Dispatcher, opts ...Option) *Service {
	s := &Service{
		repo:       cr,
		accounts:   ar,
		cards:      ca,
		dispatcher: d,
		ttl:        DefaultTTL,
		now:        time.Now,
		generate:   func() string { return randompkg.Digits(domain.CodeLength) },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Issue generates a new code for the account after checking that the card
// belongs to it, replacing any outstanding code, and hands it to the dispatcher.
//
// Delivery happens after the code is stored and its failure does not
// invalidate the code.
func (s *Service) Issue(ctx context.Context, accountID, cardID string) (domain.AuthCode, error) {
	l := zerolog.Ctx(ctx)

	if strings.TrimSpace(accountID) == "" || strings.TrimSpace(cardID) == "" {
		return domain.AuthCode{}, domain.ErrInvalidInput
	}

	if err := s.cards.Authorize(ctx, cardID, accountID); err != nil {
		return domain.AuthCode{}, err
	}

	account, err := s.accounts.GetOrCreate(ctx, accountID)
	if err != nil {
		return domain.AuthCode{}, err
	}

	if !account.HasNotificationAddress() {
		l.Info().Str("account_id", accountID).Msg("no notification address")
		return domain.AuthCode{}, domain.ErrUnlinkedNotificationTarget
	}

	code, err := s.repo.Upsert(ctx, domain.AuthCode{
		AccountID: accountID,
		Code:      s.generate(),
		ExpiresAt: s.now().Add(s.ttl),
	})
	if err != nil {
		return domain.AuthCode{}, err
	}

	if !s.dispatcher.Dispatch(account.NotificationAddress, code.Code) {
		l.Error().Str("account_id", accountID).Msg("security code delivery dropped")
	}

	return code, nil
}
