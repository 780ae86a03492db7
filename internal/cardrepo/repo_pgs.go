// Package cardrepo manages repository layer of card credentials.
package cardrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-petr/card-ledger/internal/domain"
	"github.com/go-petr/card-ledger/pkg/dbpkg"
	"github.com/go-petr/card-ledger/pkg/errorspkg"
)

// RepoPGS facilitates card repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns card RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    cards (id, owner_account_id)
VALUES
    ($1, $2)
RETURNING id, owner_account_id, created_at
`

// Create registers the card for the owner account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, id, ownerAccountID string) (domain.Card, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, id, ownerAccountID)

	var c domain.Card

	err := row.Scan(
		&c.ID,
		&c.OwnerAccountID,
		&c.CreatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Constraint {
			case "cards_pkey":
				l.Info().Err(err).Str("card_id", id).Send()
				return c, domain.ErrDuplicateCredential
			case "cards_owner_account_id_fkey":
				l.Info().Err(err).Str("owner", ownerAccountID).Send()
				return c, domain.ErrAccountNotFound
			}
		}

		l.Error().Err(err).Str("card_id", id).Send()

		return c, errorspkg.ErrStorage
	}

	return c, nil
}

const getQuery = `
SELECT id, owner_account_id, created_at
FROM cards
WHERE id = $1
`

// Get returns the card with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Card, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var c domain.Card

	err := row.Scan(
		&c.ID,
		&c.OwnerAccountID,
		&c.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, domain.ErrCardNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrStorage
	}

	return c, nil
}
