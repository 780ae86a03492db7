package domain

import (
	"testing"
	"time"
)

func TestAuthCodeMatches(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	code := AuthCode{
		AccountID: "alice",
		Code:      "042137",
		ExpiresAt: issuedAt.Add(5 * time.Minute),
	}

	testCases := []struct {
		name      string
		presented string
		at        time.Time
		want      bool
	}{
		{name: "Valid", presented: "042137", at: issuedAt, want: true},
		{name: "ValidAt299s", presented: "042137", at: issuedAt.Add(299 * time.Second), want: true},
		{name: "ExpiredAt300s", presented: "042137", at: issuedAt.Add(300 * time.Second), want: false},
		{name: "ExpiredAt301s", presented: "042137", at: issuedAt.Add(301 * time.Second), want: false},
		{name: "Wrong", presented: "042138", at: issuedAt, want: false},
		{name: "NoNormalization", presented: "42137", at: issuedAt, want: false},
		{name: "Empty", presented: "", at: issuedAt, want: false},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := code.Matches(tc.presented, tc.at); got != tc.want {
				t.Errorf("code.Matches(%q, %v) = %v, want %v", tc.presented, tc.at, got, tc.want)
			}
		})
	}
}
