// Package ledgerrepo runs the balance-affecting transactions of the ledger.
package ledgerrepo

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/go-petr/card-ledger/internal/accountrepo"
	"github.com/go-petr/card-ledger/internal/coderepo"
	"github.com/go-petr/card-ledger/internal/domain"
	"github.com/go-petr/card-ledger/internal/entryrepo"
	"github.com/go-petr/card-ledger/pkg/errorspkg"
)

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns ledger RepoPGS with connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{conn: conn}
}

type txRepos struct {
	accounts *accountrepo.RepoPGS
	entries  *entryrepo.RepoPGS
	codes    *coderepo.RepoPGS
}

// inTx runs fn inside a single db transaction. Any error returned by fn
// rolls the whole transaction back.
func (r *RepoPGS) inTx(ctx context.Context, fn func(repos txRepos) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrStorage
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	repos := txRepos{
		accounts: accountrepo.NewRepoPGS(tx),
		entries:  entryrepo.NewRepoPGS(tx),
		codes:    coderepo.NewRepoPGS(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrStorage
	}

	return nil
}

// Transfer moves money between two accounts.
//
// Within a single db transaction it provisions both accounts, locks and checks
// the sender's security code, locks both accounts, checks the sender balance,
// updates both balances, appends one entry per account and consumes the code.
// Nothing is written unless every step succeeds.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.TransferParams) (domain.TransferTxResult, error) {
	var result domain.TransferTxResult

	err := r.inTx(ctx, func(repos txRepos) error {
		// To avoid deadlocks touch account rows in consistent id order
		ids := []string{arg.FromAccountID, arg.ToAccountID}
		sort.Strings(ids)

		for _, id := range ids {
			if err := repos.accounts.Ensure(ctx, id); err != nil {
				return err
			}
		}

		code, err := repos.codes.GetForUpdate(ctx, arg.FromAccountID)
		if err != nil {
			return err
		}

		if !code.Matches(arg.Code, arg.At) {
			return domain.ErrInvalidOrExpiredCode
		}

		locked := make(map[string]domain.Account, len(ids))

		for _, id := range ids {
			a, err := repos.accounts.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}

			locked[id] = a
		}

		if locked[arg.FromAccountID].Balance < arg.Amount {
			return domain.ErrInsufficientFunds
		}

		result.FromAccount, err = repos.accounts.AddBalance(ctx, arg.FromAccountID, -arg.Amount)
		if err != nil {
			return err
		}

		result.ToAccount, err = repos.accounts.AddBalance(ctx, arg.ToAccountID, arg.Amount)
		if err != nil {
			return err
		}

		result.FromEntry, err = repos.entries.Create(ctx, domain.CreateEntryParams{
			AccountID:     arg.FromAccountID,
			FromAccountID: arg.FromAccountID,
			ToAccountID:   arg.ToAccountID,
			Amount:        -arg.Amount,
			Description:   arg.OutgoingDescription(),
			At:            arg.At,
		})
		if err != nil {
			return err
		}

		result.ToEntry, err = repos.entries.Create(ctx, domain.CreateEntryParams{
			AccountID:     arg.ToAccountID,
			FromAccountID: arg.FromAccountID,
			ToAccountID:   arg.ToAccountID,
			Amount:        arg.Amount,
			Description:   arg.IncomingDescription(),
			At:            arg.At,
		})
		if err != nil {
			return err
		}

		return repos.codes.Delete(ctx, arg.FromAccountID)
	})

	if err != nil {
		return domain.TransferTxResult{}, err
	}

	return result, nil
}

// Withdraw takes cash out of the account within a single db transaction.
func (r *RepoPGS) Withdraw(ctx context.Context, arg domain.WithdrawParams) (domain.WithdrawTxResult, error) {
	var result domain.WithdrawTxResult

	err := r.inTx(ctx, func(repos txRepos) error {
		if err := repos.accounts.Ensure(ctx, arg.AccountID); err != nil {
			return err
		}

		account, err := repos.accounts.GetForUpdate(ctx, arg.AccountID)
		if err != nil {
			return err
		}

		if account.Balance < arg.Amount {
			return domain.ErrInsufficientFunds
		}

		result.Account, err = repos.accounts.AddBalance(ctx, arg.AccountID, -arg.Amount)
		if err != nil {
			return err
		}

		result.Entry, err = repos.entries.Create(ctx, domain.CreateEntryParams{
			AccountID:     arg.AccountID,
			FromAccountID: arg.AccountID,
			Amount:        -arg.Amount,
			Description:   domain.WithdrawalDescription,
			At:            arg.At,
		})

		return err
	})

	if err != nil {
		return domain.WithdrawTxResult{}, err
	}

	return result, nil
}
