package sessionservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-petr/card-ledger/internal/domain"
	"github.com/go-petr/card-ledger/pkg/passpkg"
	"github.com/go-petr/card-ledger/pkg/randompkg"
	"github.com/go-petr/card-ledger/pkg/tokenpkg"
)

func TestNew(t *testing.T) {
	maker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	_, err = New(nil, "", time.Minute)
	require.Error(t, err)

	_, err = New(maker, "", 0)
	require.Error(t, err)

	s, err := New(maker, "", time.Minute)
	require.NoError(t, err)
	require.Equal(t, maker, s.TokenMaker)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	maker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	secret := randompkg.String(16)
	hash, err := passpkg.Hash(secret)
	require.NoError(t, err)

	testCases := []struct {
		name       string
		secretHash string
		secret     string
		wantErr    error
	}{
		{name: "OK", secretHash: hash, secret: secret},
		{name: "WrongSecret", secretHash: hash, secret: secret + "x", wantErr: domain.ErrInvalidCredential},
		{name: "EmptySecret", secretHash: hash, secret: "", wantErr: domain.ErrInvalidCredential},
		{name: "NoHashConfigured", secretHash: "", secret: secret, wantErr: domain.ErrInvalidCredential},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, err := New(maker, tc.secretHash, time.Minute)
			require.NoError(t, err)

			token, payload, err := s.Login(context.Background(), tc.secret)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Empty(t, token)
				require.Nil(t, payload)

				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, token)
			require.Equal(t, AdminSubject, payload.Subject)
			require.WithinDuration(t, time.Now().Add(time.Minute), payload.ExpiredAt, time.Second)

			verified, err := maker.VerifyToken(token)
			require.NoError(t, err)
			require.Equal(t, payload.ID, verified.ID)
		})
	}
}
