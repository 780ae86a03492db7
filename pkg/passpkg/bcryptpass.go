// Package passpkg hashes and checks secrets with bcrypt.
package passpkg

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash returns the bcrypt hash of the secret.
func Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}

	return string(hashed), nil
}

// Check checks if the provided secret matches the hash.
func Check(secret, hashed string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret))
}
