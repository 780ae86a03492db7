package tokenpkg

import (
	"fmt"
	"time"
)

const minSecretKeySize = 32

// Maker is an interface for managing tokens.
type Maker interface {
	// CreateToken creates a new token for a specific subject and duration.
	CreateToken(subject string, duration time.Duration) (string, *Payload, error)
	// VerifyToken checks if the token is valid or not.
	VerifyToken(token string) (*Payload, error)
}

// New returns the Maker of the given kind, "paseto" or "jwt".
func New(kind, symmetricKey string) (Maker, error) {
	switch kind {
	case "paseto", "":
		return NewPasetoMaker(symmetricKey)
	case "jwt":
		return NewJWTMaker(symmetricKey)
	}

	return nil, fmt.Errorf("unsupported token kind %q", kind)
}
