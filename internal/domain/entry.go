package domain

import "time"

// DateLayout is the day resolution format of Entry.Date.
const DateLayout = "2006-01-02"

// DefaultEntriesLimit is the number of entries returned when no limit is given.
const DefaultEntriesLimit = 50

// Entry is an immutable transaction log record.
//
// Amount is the signed delta applied to the balance of AccountID.
// FromAccountID is empty for cash-in events, ToAccountID is empty for cash-out events.
type Entry struct {
	ID            int64     `json:"id"`
	AccountID     string    `json:"account_id"`
	FromAccountID string    `json:"from_account_id,omitempty"`
	ToAccountID   string    `json:"to_account_id,omitempty"`
	Amount        int64     `json:"amount"`
	Date          string    `json:"date"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateEntryParams is the input data to append an entry.
type CreateEntryParams struct {
	AccountID     string
	FromAccountID string
	ToAccountID   string
	Amount        int64
	Description   string
	At            time.Time
}
