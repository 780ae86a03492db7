package domain

import (
	"fmt"
	"time"
)

// WithdrawalDescription describes cash-out entries.
const WithdrawalDescription = "cash withdrawal"

// TransferRequest is the caller input of a transfer.
type TransferRequest struct {
	FromAccountID string
	ToAccountID   string
	Amount        string
	CardID        string
	Code          string
}

// TransferParams is the validated input of the transfer transaction.
type TransferParams struct {
	FromAccountID string
	ToAccountID   string
	Amount        int64
	Code          string
	At            time.Time
}

// OutgoingDescription describes the sender entry of a transfer.
func (p TransferParams) OutgoingDescription() string {
	return fmt.Sprintf("transfer to %s", p.ToAccountID)
}

// IncomingDescription describes the receiver entry of a transfer.
func (p TransferParams) IncomingDescription() string {
	return fmt.Sprintf("received from %s", p.FromAccountID)
}

// TransferTxResult is the result of the transfer transaction.
type TransferTxResult struct {
	FromAccount Account `json:"from_account"`
	ToAccount   Account `json:"to_account"`
	FromEntry   Entry   `json:"from_entry"`
	ToEntry     Entry   `json:"to_entry"`
}

// WithdrawParams is the validated input of the withdraw transaction.
type WithdrawParams struct {
	AccountID string
	Amount    int64
	At        time.Time
}

// WithdrawTxResult is the result of the withdraw transaction.
type WithdrawTxResult struct {
	Account Account `json:"account"`
	Entry   Entry   `json:"entry"`
}
