// Package sessionservice manages admin sessions.
package sessionservice

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-petr/card-ledger/internal/domain"
	"github.com/go-petr/card-ledger/pkg/passpkg"
	"github.com/go-petr/card-ledger/pkg/tokenpkg"
)

// AdminSubject is the token subject of admin sessions.
const AdminSubject = "admin"

// Service facilitates session service layer logic.
type Service struct {
	TokenMaker tokenpkg.Maker
	secretHash string
	duration   time.Duration
}

// New returns session service checking secrets against the bcrypt secretHash.
func New(tokenMaker tokenpkg.Maker, secretHash string, duration time.Duration) (*Service, error) {
	if tokenMaker == nil {
		return nil, errors.New("token maker is required")
	}

	if duration <= 0 {
		return nil, errors.New("token duration must be positive")
	}

	return &Service{
		TokenMaker: tokenMaker,
		secretHash: secretHash,
		duration:   duration,
	}, nil
}

// Login exchanges the admin secret for a short lived bearer token. Without a
// configured secret hash every login fails.
func (s *Service) Login(ctx context.Context, secret string) (string, *tokenpkg.Payload, error) {
	l := zerolog.Ctx(ctx)

	if s.secretHash == "" {
		l.Warn().Msg("admin login attempted but ADMIN_SECRET_HASH is empty")
		return "", nil, domain.ErrInvalidCredential
	}

	if err := passpkg.Check(secret, s.secretHash); err != nil {
		l.Info().Err(err).Msg("admin secret rejected")
		return "", nil, domain.ErrInvalidCredential
	}

	token, payload, err := s.TokenMaker.CreateToken(AdminSubject, s.duration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", nil, err
	}

	return token, payload, nil
}
