package domain

import "time"

// Account holds the balance of a named account in minor currency units.
type Account struct {
	ID                  string    `json:"id"`
	Balance             int64     `json:"balance"`
	NotificationAddress string    `json:"notification_address,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// HasNotificationAddress reports whether security codes can be delivered to the account.
func (a Account) HasNotificationAddress() bool {
	return a.NotificationAddress != ""
}
