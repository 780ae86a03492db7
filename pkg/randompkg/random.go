// Package randompkg provides functionality for generating random application items.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz"
	digits   = "0123456789"
)

// Intn is a shortcut for generating a random integer in [0, max) using crypto/rand.
func Intn(max int64) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Between generates a random integer in [min, max].
func Between(min, max int64) int64 {
	return min + Intn(max-min+1)
}

// String generates a random string of length n.
func String(n int) string {
	return fromAlphabet(alphabet, n)
}

// Digits generates a random string of n decimal digits. Every value
// including the ones with leading zeros is equally likely.
func Digits(n int) string {
	return fromAlphabet(digits, n)
}

func fromAlphabet(a string, n int) string {
	var sb strings.Builder

	k := int64(len(a))

	for i := 0; i < n; i++ {
		c := a[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// AccountID generates a random account identifier.
func AccountID() string {
	return String(8)
}

// CardID generates a random card credential identifier.
func CardID() string {
	return fmt.Sprintf("CARD-%s", strings.ToUpper(String(10)))
}
