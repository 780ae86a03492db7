// Package memstore keeps the whole ledger in memory.
//
// It implements the same repository contracts as the Postgres repos. Every
// account has its own lock; operations touching two accounts take both locks
// in ascending id order, so work on disjoint accounts never contends.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-petr/card-ledger/internal/domain"
)

type accountRow struct {
	mu      sync.Mutex
	account domain.Account
	code    *domain.AuthCode
}

// Store is an in-memory ledger.
type Store struct {
	// mu guards the maps only and is never held while waiting for an account lock.
	mu       sync.RWMutex
	accounts map[string]*accountRow
	cards    map[string]domain.Card

	logMu   sync.Mutex
	entries []domain.Entry

	now func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		accounts: make(map[string]*accountRow),
		cards:    make(map[string]domain.Card),
		now:      time.Now,
	}
}

func (s *Store) lookup(id string) (*accountRow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.accounts[id]

	return row, ok
}

// row returns the account row, creating it with zero balance if absent.
func (s *Store) row(id string) *accountRow {
	if row, ok := s.lookup(id); ok {
		return row
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if row, ok := s.accounts[id]; ok {
		return row
	}

	row := &accountRow{
		account: domain.Account{ID: id, CreatedAt: s.now()},
	}
	s.accounts[id] = row

	return row
}

func (s *Store) appendEntry(arg domain.CreateEntryParams) domain.Entry {
	s.logMu.Lock()
	defer s.logMu.Unlock()

	e := domain.Entry{
		ID:            int64(len(s.entries) + 1),
		AccountID:     arg.AccountID,
		FromAccountID: arg.FromAccountID,
		ToAccountID:   arg.ToAccountID,
		Amount:        arg.Amount,
		Date:          arg.At.Format(domain.DateLayout),
		Description:   arg.Description,
		CreatedAt:     arg.At,
	}
	s.entries = append(s.entries, e)

	return e
}

// Accounts returns the account repository view of the store.
func (s *Store) Accounts() *Accounts { return &Accounts{s: s} }

// Cards returns the card repository view of the store.
func (s *Store) Cards() *Cards { return &Cards{s: s} }

// Codes returns the security code repository view of the store.
func (s *Store) Codes() *Codes { return &Codes{s: s} }

// Entries returns the transaction log view of the store.
func (s *Store) Entries() *Entries { return &Entries{s: s} }

// Transfer implements the ledger transfer transaction.
func (s *Store) Transfer(_ context.Context, arg domain.TransferParams) (domain.TransferTxResult, error) {
	if arg.FromAccountID == arg.ToAccountID {
		return domain.TransferTxResult{}, domain.ErrSameAccount
	}

	from, to := s.row(arg.FromAccountID), s.row(arg.ToAccountID)

	ids := []string{arg.FromAccountID, arg.ToAccountID}
	sort.Strings(ids)

	rows := map[string]*accountRow{arg.FromAccountID: from, arg.ToAccountID: to}
	for _, id := range ids {
		rows[id].mu.Lock()
		defer rows[id].mu.Unlock()
	}

	if from.code == nil || !from.code.Matches(arg.Code, arg.At) {
		return domain.TransferTxResult{}, domain.ErrInvalidOrExpiredCode
	}

	if from.account.Balance < arg.Amount {
		return domain.TransferTxResult{}, domain.ErrInsufficientFunds
	}

	from.account.Balance -= arg.Amount
	to.account.Balance += arg.Amount
	from.code = nil

	return domain.TransferTxResult{
		FromAccount: from.account,
		ToAccount:   to.account,
		FromEntry: s.appendEntry(domain.CreateEntryParams{
			AccountID:     arg.FromAccountID,
			FromAccountID: arg.FromAccountID,
			ToAccountID:   arg.ToAccountID,
			Amount:        -arg.Amount,
			Description:   arg.OutgoingDescription(),
			At:            arg.At,
		}),
		ToEntry: s.appendEntry(domain.CreateEntryParams{
			AccountID:     arg.ToAccountID,
			FromAccountID: arg.FromAccountID,
			ToAccountID:   arg.ToAccountID,
			Amount:        arg.Amount,
			Description:   arg.IncomingDescription(),
			At:            arg.At,
		}),
	}, nil
}

// Withdraw implements the ledger withdraw transaction.
func (s *Store) Withdraw(_ context.Context, arg domain.WithdrawParams) (domain.WithdrawTxResult, error) {
	row := s.row(arg.AccountID)

	row.mu.Lock()
	defer row.mu.Unlock()

	if row.account.Balance < arg.Amount {
		return domain.WithdrawTxResult{}, domain.ErrInsufficientFunds
	}

	row.account.Balance -= arg.Amount

	return domain.WithdrawTxResult{
		Account: row.account,
		Entry: s.appendEntry(domain.CreateEntryParams{
			AccountID:     arg.AccountID,
			FromAccountID: arg.AccountID,
			Amount:        -arg.Amount,
			Description:   domain.WithdrawalDescription,
			At:            arg.At,
		}),
	}, nil
}

// Deposit credits the account and logs a cash-in entry. The ledger API has no
// deposit operation; it exists to seed balances in tests.
func (s *Store) Deposit(accountID string, amount int64, description string) domain.Entry {
	row := s.row(accountID)

	row.mu.Lock()
	defer row.mu.Unlock()

	row.account.Balance += amount

	return s.appendEntry(domain.CreateEntryParams{
		AccountID:   accountID,
		ToAccountID: accountID,
		Amount:      amount,
		Description: description,
		At:          s.now(),
	})
}

// Accounts is the account repository view of a Store.
type Accounts struct{ s *Store }

// Ensure creates the account with zero balance unless it already exists.
func (a *Accounts) Ensure(_ context.Context, id string) error {
	a.s.row(id)
	return nil
}

// Get returns the account with the given id.
func (a *Accounts) Get(_ context.Context, id string) (domain.Account, error) {
	row, ok := a.s.lookup(id)
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	row.mu.Lock()
	defer row.mu.Unlock()

	return row.account, nil
}

// GetOrCreate returns the account, creating it with zero balance on first reference.
func (a *Accounts) GetOrCreate(ctx context.Context, id string) (domain.Account, error) {
	a.s.row(id)
	return a.Get(ctx, id)
}

// SetNotificationAddress links the delivery address of security codes to the account.
func (a *Accounts) SetNotificationAddress(_ context.Context, id, address string) (domain.Account, error) {
	row, ok := a.s.lookup(id)
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	row.mu.Lock()
	defer row.mu.Unlock()

	row.account.NotificationAddress = address

	return row.account, nil
}

// Cards is the card repository view of a Store.
type Cards struct{ s *Store }

// Create registers the card for the owner account.
func (c *Cards) Create(_ context.Context, id, ownerAccountID string) (domain.Card, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.accounts[ownerAccountID]; !ok {
		return domain.Card{}, domain.ErrAccountNotFound
	}

	if _, ok := c.s.cards[id]; ok {
		return domain.Card{}, domain.ErrDuplicateCredential
	}

	card := domain.Card{ID: id, OwnerAccountID: ownerAccountID, CreatedAt: c.s.now()}
	c.s.cards[id] = card

	return card, nil
}

// Get returns the card with the given id.
func (c *Cards) Get(_ context.Context, id string) (domain.Card, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	card, ok := c.s.cards[id]
	if !ok {
		return domain.Card{}, domain.ErrCardNotFound
	}

	return card, nil
}

// Codes is the security code repository view of a Store.
type Codes struct{ s *Store }

// Upsert stores the code of the account replacing any previous one.
func (c *Codes) Upsert(_ context.Context, arg domain.AuthCode) (domain.AuthCode, error) {
	row := c.s.row(arg.AccountID)

	row.mu.Lock()
	defer row.mu.Unlock()

	code := arg
	row.code = &code

	return code, nil
}

// Entries is the transaction log view of a Store.
type Entries struct{ s *Store }

// ListRecent returns at most limit entries of the account, most recent first.
func (e *Entries) ListRecent(_ context.Context, accountID string, limit int32) ([]domain.Entry, error) {
	e.s.logMu.Lock()
	defer e.s.logMu.Unlock()

	items := []domain.Entry{}

	for i := len(e.s.entries) - 1; i >= 0 && int32(len(items)) < limit; i-- {
		if e.s.entries[i].AccountID == accountID {
			items = append(items, e.s.entries[i])
		}
	}

	return items, nil
}
