package randompkg

import (
	"strings"
	"testing"
)

func TestDigits(t *testing.T) {
	t.Parallel()

	for i := 0; i < 1000; i++ {
		got := Digits(6)

		if len(got) != 6 {
			t.Fatalf("len(Digits(6)) = %d, want 6", len(got))
		}

		if strings.Trim(got, digits) != "" {
			t.Fatalf("Digits(6) = %q, want only decimal digits", got)
		}
	}
}

func TestDigitsLeadingZero(t *testing.T) {
	t.Parallel()

	// P(no leading zero in 1000 draws) = 0.9^1000, effectively zero.
	for i := 0; i < 1000; i++ {
		if strings.HasPrefix(Digits(6), "0") {
			return
		}
	}

	t.Error("Digits(6) never produced a leading zero in 1000 draws")
}

func TestBetween(t *testing.T) {
	t.Parallel()

	for i := 0; i < 1000; i++ {
		got := Between(10, 20)
		if got < 10 || got > 20 {
			t.Fatalf("Between(10, 20) = %d, want value in [10, 20]", got)
		}
	}
}
