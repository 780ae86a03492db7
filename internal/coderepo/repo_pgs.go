// Package coderepo manages repository layer of security codes.
package coderepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/go-petr/card-ledger/internal/domain"
	"github.com/go-petr/card-ledger/pkg/dbpkg"
	"github.com/go-petr/card-ledger/pkg/errorspkg"
)

// RepoPGS facilitates security code repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns security code RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const upsertQuery = `
INSERT INTO security_codes (account_id, code, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (account_id) DO UPDATE
SET code = excluded.code, expires_at = excluded.expires_at
RETURNING account_id, code, expires_at
`

// Upsert stores the code of the account replacing any previous one.
func (r *RepoPGS) Upsert(ctx context.Context, arg domain.AuthCode) (domain.AuthCode, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, upsertQuery, arg.AccountID, arg.Code, arg.ExpiresAt)

	var c domain.AuthCode

	if err := row.Scan(&c.AccountID, &c.Code, &c.ExpiresAt); err != nil {
		l.Error().Err(err).Str("account_id", arg.AccountID).Send()
		return c, errorspkg.ErrStorage
	}

	return c, nil
}

const getForUpdateQuery = `
SELECT account_id, code, expires_at
FROM security_codes
WHERE account_id = $1
FOR UPDATE
`

// GetForUpdate returns the outstanding code of the account and locks it
// until the end of the surrounding transaction.
func (r *RepoPGS) GetForUpdate(ctx context.Context, accountID string) (domain.AuthCode, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getForUpdateQuery, accountID)

	var c domain.AuthCode

	if err := row.Scan(&c.AccountID, &c.Code, &c.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, domain.ErrInvalidOrExpiredCode
		}

		l.Error().Err(err).Str("account_id", accountID).Send()

		return c, errorspkg.ErrStorage
	}

	return c, nil
}

const deleteQuery = `
DELETE FROM security_codes
WHERE account_id = $1
`

// Delete removes the code of the account.
func (r *RepoPGS) Delete(ctx context.Context, accountID string) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, deleteQuery, accountID); err != nil {
		l.Error().Err(err).Str("account_id", accountID).Send()
		return errorspkg.ErrStorage
	}

	return nil
}
