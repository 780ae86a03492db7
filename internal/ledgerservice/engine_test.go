package ledgerservice_test

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-petr/card-ledger/internal/accountservice"
	"github.com/go-petr/card-ledger/internal/cardservice"
	"github.com/go-petr/card-ledger/internal/codeservice"
	"github.com/go-petr/card-ledger/internal/domain"
	"github.com/go-petr/card-ledger/internal/ledgerservice"
	"github.com/go-petr/card-ledger/internal/memstore"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

type outbox struct {
	mu   sync.Mutex
	last map[string]string
}

func (o *outbox) Dispatch(destination, code string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.last[destination] = code

	return true
}

func (o *outbox) Last(destination string) string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.last[destination]
}

type engine struct {
	store    *memstore.Store
	clock    *clock
	outbox   *outbox
	accounts *accountservice.Service
	cards    *cardservice.Service
	codes    *codeservice.Service
	ledger   *ledgerservice.Service
}

func newEngine(t *testing.T) *engine {
	t.Helper()

	var seq int64

	e := &engine{
		store:  memstore.New(),
		clock:  &clock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		outbox: &outbox{last: map[string]string{}},
	}

	e.accounts = accountservice.New(e.store.Accounts(), e.store.Entries())
	e.cards = cardservice.New(e.store.Cards(), e.store.Accounts())
	e.codes = codeservice.New(e.store.Codes(), e.store.Accounts(), e.cards, e.outbox,
		codeservice.WithClock(e.clock.Now),
		codeservice.WithGenerator(func() string {
			return fmt.Sprintf("%06d", atomic.AddInt64(&seq, 1))
		}),
	)
	e.ledger = ledgerservice.New(e.store, e.cards, ledgerservice.WithClock(e.clock.Now))

	return e
}

// open registers card for a linked account funded with balance.
func (e *engine) open(t *testing.T, accountID, cardID string, balance int64) {
	t.Helper()

	ctx := context.Background()

	_, err := e.cards.Register(ctx, cardID, accountID)
	require.NoError(t, err)

	_, err = e.accounts.LinkNotificationAddress(ctx, accountID, accountID+"#0001")
	require.NoError(t, err)

	if balance > 0 {
		e.store.Deposit(accountID, balance, "opening deposit")
	}
}

func (e *engine) issue(t *testing.T, accountID, cardID string) string {
	t.Helper()

	code, err := e.codes.Issue(context.Background(), accountID, cardID)
	require.NoError(t, err)
	require.Equal(t, code.Code, e.outbox.Last(accountID+"#0001"))

	return code.Code
}

func (e *engine) balance(t *testing.T, accountID string) int64 {
	t.Helper()

	b, err := e.accounts.GetBalance(context.Background(), accountID)
	require.NoError(t, err)

	return b
}

func (e *engine) transfer(from, to, amount, cardID, code string) (domain.TransferTxResult, error) {
	return e.ledger.Transfer(context.Background(), domain.TransferRequest{
		FromAccountID: from,
		ToAccountID:   to,
		Amount:        amount,
		CardID:        cardID,
		Code:          code,
	})
}

// requireReconciled checks that the balance equals the sum of the account's entries.
func (e *engine) requireReconciled(t *testing.T, accountIDs ...string) {
	t.Helper()

	for _, id := range accountIDs {
		entries, err := e.store.Entries().ListRecent(context.Background(), id, math.MaxInt32)
		require.NoError(t, err)

		var sum int64
		for _, entry := range entries {
			sum += entry.Amount
		}

		require.Equal(t, e.balance(t, id), sum, "account %s does not reconcile", id)
	}
}

func TestGetBalanceProvisionsAccount(t *testing.T) {
	e := newEngine(t)

	_, err := e.store.Accounts().Get(context.Background(), "newuser")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	require.Equal(t, int64(0), e.balance(t, "newuser"))

	account, err := e.store.Accounts().Get(context.Background(), "newuser")
	require.NoError(t, err)
	require.Equal(t, int64(0), account.Balance)
}

func TestTransferHappyPath(t *testing.T) {
	e := newEngine(t)
	e.open(t, "alice", "CARD1", 100)

	code, err := e.codes.Issue(context.Background(), "alice", "CARD1")
	require.NoError(t, err)
	require.Len(t, code.Code, domain.CodeLength)
	require.Equal(t, e.clock.Now().Add(300*time.Second), code.ExpiresAt)

	res, err := e.transfer("alice", "bob", "50", "CARD1", code.Code)
	require.NoError(t, err)

	require.Equal(t, int64(50), res.FromAccount.Balance)
	require.Equal(t, int64(50), res.ToAccount.Balance)
	require.Equal(t, int64(-50), res.FromEntry.Amount)
	require.Equal(t, int64(50), res.ToEntry.Amount)
	require.Equal(t, "transfer to bob", res.FromEntry.Description)
	require.Equal(t, "received from alice", res.ToEntry.Description)
	require.Equal(t, "2024-03-01", res.FromEntry.Date)

	require.Equal(t, int64(50), e.balance(t, "alice"))
	require.Equal(t, int64(50), e.balance(t, "bob"))

	// The code is consumed.
	_, err = e.transfer("alice", "bob", "10", "CARD1", code.Code)
	require.ErrorIs(t, err, domain.ErrInvalidOrExpiredCode)

	// The outgoing entry is the most recent one of alice.
	entries, err := e.accounts.ListRecentTransactions(context.Background(), "alice", 50)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, int64(-50), entries[0].Amount)
	require.Equal(t, "bob", entries[0].ToAccountID)

	e.requireReconciled(t, "alice", "bob")
}

func TestTransferCodeExpiry(t *testing.T) {
	testCases := []struct {
		name    string
		elapsed time.Duration
		wantErr error
	}{
		{name: "JustBeforeExpiry", elapsed: 299 * time.Second},
		{name: "AtExpiry", elapsed: 300 * time.Second, wantErr: domain.ErrInvalidOrExpiredCode},
		{name: "AfterExpiry", elapsed: 301 * time.Second, wantErr: domain.ErrInvalidOrExpiredCode},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			e := newEngine(t)
			e.open(t, "alice", "CARD1", 100)

			code := e.issue(t, "alice", "CARD1")
			e.clock.Advance(tc.elapsed)

			_, err := e.transfer("alice", "bob", "50", "CARD1", code)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Equal(t, int64(100), e.balance(t, "alice"))
				require.Equal(t, int64(0), e.balance(t, "bob"))

				return
			}

			require.NoError(t, err)
			require.Equal(t, int64(50), e.balance(t, "alice"))
		})
	}
}

func TestTransferWithForeignCard(t *testing.T) {
	e := newEngine(t)
	e.open(t, "alice", "CARD1", 100)
	e.open(t, "carol", "CARD2", 0)

	code := e.issue(t, "alice", "CARD1")

	_, err := e.transfer("alice", "bob", "10", "CARD2", code)
	require.ErrorIs(t, err, domain.ErrInvalidCredential)

	_, err = e.transfer("alice", "bob", "10", "NO-SUCH-CARD", code)
	require.ErrorIs(t, err, domain.ErrInvalidCredential)

	require.Equal(t, int64(100), e.balance(t, "alice"))

	// A rejected credential does not consume the code.
	_, err = e.transfer("alice", "bob", "10", "CARD1", code)
	require.NoError(t, err)
}

func TestIssueRequiresOwnershipAndAddress(t *testing.T) {
	e := newEngine(t)
	e.open(t, "alice", "CARD1", 0)

	_, err := e.codes.Issue(context.Background(), "bob", "CARD1")
	require.ErrorIs(t, err, domain.ErrInvalidCredential)

	_, err = e.cards.Register(context.Background(), "CARD3", "dave")
	require.NoError(t, err)

	_, err = e.codes.Issue(context.Background(), "dave", "CARD3")
	require.ErrorIs(t, err, domain.ErrUnlinkedNotificationTarget)

	_, err = e.cards.Register(context.Background(), "CARD1", "dave")
	require.ErrorIs(t, err, domain.ErrDuplicateCredential)

	owner, err := e.cards.ResolveOwner(context.Background(), "CARD1")
	require.NoError(t, err)
	require.Equal(t, "alice", owner)
}

func TestReissueInvalidatesPreviousCode(t *testing.T) {
	e := newEngine(t)
	e.open(t, "alice", "CARD1", 100)

	first := e.issue(t, "alice", "CARD1")
	second := e.issue(t, "alice", "CARD1")
	require.NotEqual(t, first, second)

	_, err := e.transfer("alice", "bob", "10", "CARD1", first)
	require.ErrorIs(t, err, domain.ErrInvalidOrExpiredCode)

	_, err = e.transfer("alice", "bob", "10", "CARD1", second)
	require.NoError(t, err)
}

func TestFailedTransferKeepsCode(t *testing.T) {
	e := newEngine(t)
	e.open(t, "alice", "CARD1", 100)

	code := e.issue(t, "alice", "CARD1")

	_, err := e.transfer("alice", "bob", "500", "CARD1", code)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = e.transfer("alice", "bob", "100", "CARD1", "999999")
	require.ErrorIs(t, err, domain.ErrInvalidOrExpiredCode)

	require.Equal(t, int64(100), e.balance(t, "alice"))

	_, err = e.transfer("alice", "bob", "100", "CARD1", code)
	require.NoError(t, err)
	require.Equal(t, int64(0), e.balance(t, "alice"))
	require.Equal(t, int64(100), e.balance(t, "bob"))

	e.requireReconciled(t, "alice", "bob")
}

func TestWithdraw(t *testing.T) {
	e := newEngine(t)
	e.open(t, "alice", "CARD1", 100)

	res, err := e.ledger.Withdraw(context.Background(), "alice", "30")
	require.NoError(t, err)
	require.Equal(t, int64(70), res.Account.Balance)
	require.Equal(t, int64(-30), res.Entry.Amount)
	require.Empty(t, res.Entry.ToAccountID)
	require.Equal(t, domain.WithdrawalDescription, res.Entry.Description)

	_, err = e.ledger.Withdraw(context.Background(), "alice", "71")
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = e.ledger.Withdraw(context.Background(), "alice", "1.5")
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	require.Equal(t, int64(70), e.balance(t, "alice"))
	e.requireReconciled(t, "alice")
}

func TestConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	e := newEngine(t)
	e.open(t, "alice", "CARD1", 100)

	const attempts = 25

	var (
		wg        sync.WaitGroup
		succeeded int64
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := e.ledger.Withdraw(context.Background(), "alice", "10")
			if err == nil {
				atomic.AddInt64(&succeeded, 1)
				return
			}

			if err != domain.ErrInsufficientFunds {
				t.Errorf("Withdraw returned unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	require.Equal(t, int64(10), succeeded)
	require.Equal(t, int64(0), e.balance(t, "alice"))
	e.requireReconciled(t, "alice")
}

func TestConcurrentTransfersConsumeCodeOnce(t *testing.T) {
	e := newEngine(t)
	e.open(t, "alice", "CARD1", 1000)

	code := e.issue(t, "alice", "CARD1")

	const attempts = 20

	var (
		wg        sync.WaitGroup
		succeeded int64
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			_, err := e.transfer("alice", fmt.Sprintf("bob%d", i), "10", "CARD1", code)
			if err == nil {
				atomic.AddInt64(&succeeded, 1)
			}
		}(i)
	}

	wg.Wait()

	require.Equal(t, int64(1), succeeded)
	require.Equal(t, int64(990), e.balance(t, "alice"))
}

func TestConcurrentTransfersConserveMoney(t *testing.T) {
	e := newEngine(t)

	const senders = 16

	ids := make([]string, senders)
	for i := range ids {
		ids[i] = fmt.Sprintf("user%02d", i)
		e.open(t, ids[i], "CARD-"+ids[i], 100)
	}

	// Every sender pays its neighbour, so each account is touched by two
	// concurrent transfers in opposite lock roles.
	codes := make([]string, senders)
	for i, id := range ids {
		codes[i] = e.issue(t, id, "CARD-"+id)
	}

	var wg sync.WaitGroup

	for i := range ids {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			from, to := ids[i], ids[(i+1)%senders]
			if _, err := e.transfer(from, to, "40", "CARD-"+from, codes[i]); err != nil {
				t.Errorf("transfer %s -> %s: %v", from, to, err)
			}
		}(i)
	}

	wg.Wait()

	var total int64
	for _, id := range ids {
		b := e.balance(t, id)
		require.Equal(t, int64(100), b)
		total += b
	}

	require.Equal(t, int64(100*senders), total)
	e.requireReconciled(t, ids...)
}
