// Package amountpkg parses money amounts given in minor currency units.
package amountpkg

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotInteger indicates that the amount has a fractional part or is not a number.
	ErrNotInteger = errors.New("amount must be an integer")
	// ErrNotPositive indicates that the amount is zero or negative.
	ErrNotPositive = errors.New("amount must be positive")
	// ErrTooLarge indicates that the amount does not fit into int64.
	ErrTooLarge = errors.New("amount is too large")
)

var maxAmount = decimal.NewFromInt(math.MaxInt64)

// maxExponent is the largest exponent a positive amount can have and still
// fit into int64: any coefficient times 10^19 exceeds math.MaxInt64.
const maxExponent = 18

// Parse converts s into a positive integer amount.
//
// "100" and "1e2" are accepted, "100.5", "abc", "0" and "-5" are not.
func Parse(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrNotInteger
	}

	// Both checks run before anything that rescales d, so "1e100000000" and
	// "0e-100000000" are rejected without materializing their digits.
	if d.Sign() == 0 {
		return 0, ErrNotPositive
	}

	if d.Exponent() > maxExponent {
		if d.Sign() < 0 {
			return 0, ErrNotPositive
		}

		return 0, ErrTooLarge
	}

	if !d.IsInteger() {
		return 0, ErrNotInteger
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return 0, ErrNotPositive
	}

	if d.GreaterThan(maxAmount) {
		return 0, ErrTooLarge
	}

	return d.IntPart(), nil
}

// Input is an amount taken from a JSON request. It accepts both
// numbers (100) and strings ("100") and keeps the raw text for Parse.
type Input string

// UnmarshalJSON implements json.Unmarshaler.
func (in *Input) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if bytes.Equal(b, []byte("null")) {
		*in = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*in = Input(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return ErrNotInteger
	}

	*in = Input(n.String())

	return nil
}
