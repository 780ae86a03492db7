package domain

import "time"

// CodeLength is the number of digits of a security code.
const CodeLength = 6

// AuthCode is the single outstanding security code of an account.
type AuthCode struct {
	AccountID string    `json:"account_id"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Matches reports whether the presented code equals the stored one and
// has not expired at now.
func (c AuthCode) Matches(presented string, now time.Time) bool {
	return c.Code == presented && now.Before(c.ExpiresAt)
}
