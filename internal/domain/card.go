package domain

import "time"

// Card is a card credential bound to exactly one account.
type Card struct {
	ID             string    `json:"id"`
	OwnerAccountID string    `json:"owner_account_id"`
	CreatedAt      time.Time `json:"created_at"`
}
