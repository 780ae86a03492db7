package passpkg

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	const adminSecret = "operator pre-shared secret"

	hashed, err := Hash(adminSecret)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, cost)

	testCases := []struct {
		name    string
		secret  string
		hashed  string
		wantErr error
	}{
		{name: "Match", secret: adminSecret, hashed: hashed},
		{name: "Mismatch", secret: "operator", hashed: hashed, wantErr: bcrypt.ErrMismatchedHashAndPassword},
		{name: "EmptySecret", secret: "", hashed: hashed, wantErr: bcrypt.ErrMismatchedHashAndPassword},
		{name: "HashNotConfigured", secret: adminSecret, hashed: "", wantErr: bcrypt.ErrHashTooShort},
		{name: "PlaintextInsteadOfHash", secret: adminSecret, hashed: adminSecret, wantErr: bcrypt.ErrHashTooShort},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := Check(tc.secret, tc.hashed)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()

	first, err := Hash("secret")
	require.NoError(t, err)

	second, err := Hash("secret")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.NoError(t, Check("secret", first))
	require.NoError(t, Check("secret", second))
}
