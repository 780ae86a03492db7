// Package accountrepo manages repository layer of accounts.
package accountrepo

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

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (domain.Account, error) {
	var (
		a       domain.Account
		address sql.NullString
	)

	err := row.Scan(
		&a.ID,
		&a.Balance,
		&address,
		&a.CreatedAt,
	)

	a.NotificationAddress = address.String

	return a, err
}

const ensureQuery = `
INSERT INTO accounts (id)
VALUES ($1)
ON CONFLICT (id) DO NOTHING
`

// Ensure creates the account with zero balance unless it already exists.
func (r *RepoPGS) Ensure(ctx context.Context, id string) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, ensureQuery, id); err != nil {
		l.Error().Err(err).Str("account_id", id).Msg("cannot provision account")
		return errorspkg.ErrStorage
	}

	return nil
}

const getQuery = `
SELECT
	id, balance, notification_address, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Account, error) {
	return r.get(ctx, getQuery, id)
}

const getForUpdateQuery = getQuery + `FOR UPDATE
`

// GetForUpdate returns the account with the given id and locks its row
// until the end of the surrounding transaction.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id string) (domain.Account, error) {
	return r.get(ctx, getForUpdateQuery, id)
}

func (r *RepoPGS) get(ctx context.Context, query, id string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Str("account_id", id).Send()

		return a, errorspkg.ErrStorage
	}

	return a, nil
}

// GetOrCreate returns the account with the given id, creating it with
// zero balance on first reference.
func (r *RepoPGS) GetOrCreate(ctx context.Context, id string) (domain.Account, error) {
	if err := r.Ensure(ctx, id); err != nil {
		return domain.Account{}, err
	}

	return r.Get(ctx, id)
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2
RETURNING id, balance, notification_address, created_at
`

// AddBalance changes the account's balance by delta and returns the changed account.
//
// It bypasses every business check and must only run inside the ledger transaction.
func (r *RepoPGS) AddBalance(ctx context.Context, id string, delta int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, addBalanceQuery, delta, id))
	if err != nil {
		l.Error().Err(err).Str("account_id", id).Int64("delta", delta).Send()

		if errors.Is(err, sql.ErrNoRows) {
			return a, domain.ErrAccountNotFound
		}

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "accounts_balance_check" {
			return a, domain.ErrInsufficientFunds
		}

		return a, errorspkg.ErrStorage
	}

	return a, nil
}

const setNotificationAddressQuery = `
UPDATE accounts
SET notification_address = NULLIF($1, '')
WHERE id = $2
RETURNING id, balance, notification_address, created_at
`

// SetNotificationAddress links the delivery address of security codes to the account.
// An empty address unlinks it.
func (r *RepoPGS) SetNotificationAddress(ctx context.Context, id, address string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, setNotificationAddressQuery, address, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Str("account_id", id).Send()

		return a, errorspkg.ErrStorage
	}

	return a, nil
}
