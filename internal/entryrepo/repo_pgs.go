// Package entryrepo manages repository layer of the transaction log.
package entryrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-petr/card-ledger/internal/domain"
	"github.com/go-petr/card-ledger/pkg/dbpkg"
	"github.com/go-petr/card-ledger/pkg/errorspkg"
)

// RepoPGS facilitates entry repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns entry RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (domain.Entry, error) {
	var (
		e        domain.Entry
		from, to sql.NullString
		date     time.Time
	)

	err := row.Scan(
		&e.ID,
		&e.AccountID,
		&from,
		&to,
		&e.Amount,
		&date,
		&e.Description,
		&e.CreatedAt,
	)

	e.FromAccountID = from.String
	e.ToAccountID = to.String
	e.Date = date.Format(domain.DateLayout)

	return e, err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

const createQuery = `
INSERT INTO
    entries (account_id, from_account_id, to_account_id, amount, date, description, created_at)
VALUES
    ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, account_id, from_account_id, to_account_id, amount, date, description, created_at
`

// Create appends the entry to the log and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		nullString(arg.FromAccountID),
		nullString(arg.ToAccountID),
		arg.Amount,
		arg.At.Format(domain.DateLayout),
		arg.Description,
		arg.At,
	)

	e, err := scanEntry(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx context.Context, %+v)", arg)
		return e, errorspkg.ErrStorage
	}

	return e, nil
}

const listRecentQuery = `
SELECT id, account_id, from_account_id, to_account_id, amount, date, description, created_at
FROM entries
WHERE account_id = $1
ORDER BY id DESC
LIMIT $2
`

// ListRecent returns at most limit entries of the account, most recent first.
func (r *RepoPGS) ListRecent(ctx context.Context, accountID string, limit int32) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listRecentQuery, accountID, limit)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrStorage
	}
	defer rows.Close()

	items := []domain.Entry{}

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrStorage
		}

		items = append(items, e)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrStorage
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrStorage
	}

	return items, nil
}
