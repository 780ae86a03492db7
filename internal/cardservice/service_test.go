package cardservice

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/card-ledger/internal/domain"
	"github.com/go-petr/card-ledger/pkg/errorspkg"
	"github.com/go-petr/card-ledger/pkg/randompkg"
)

func TestRegister(t *testing.T) {
	owner := randompkg.AccountID()
	cardID := randompkg.CardID()
	card := domain.Card{ID: cardID, OwnerAccountID: owner}

	testCases := []struct {
		name       string
		cardID     string
		owner      string
		buildStubs func(repo *MockRepo, accounts *MockAccountProvisioner)
		wantErr    error
	}{
		{
			name:   "OK",
			cardID: cardID,
			owner:  owner,
			buildStubs: func(repo *MockRepo, accounts *MockAccountProvisioner) {
				gomock.InOrder(
					accounts.EXPECT().Ensure(gomock.Any(), gomock.Eq(owner)).Times(1).Return(nil),
					repo.EXPECT().Create(gomock.Any(), gomock.Eq(cardID), gomock.Eq(owner)).Times(1).Return(card, nil),
				)
			},
		},
		{
			name:   "BlankCard",
			cardID: "",
			owner:  owner,
			buildStubs: func(repo *MockRepo, accounts *MockAccountProvisioner) {
				accounts.EXPECT().Ensure(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:   "Duplicate",
			cardID: cardID,
			owner:  owner,
			buildStubs: func(repo *MockRepo, accounts *MockAccountProvisioner) {
				accounts.EXPECT().Ensure(gomock.Any(), gomock.Eq(owner)).Times(1).Return(nil)
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(cardID), gomock.Eq(owner)).
					Times(1).
					Return(domain.Card{}, domain.ErrDuplicateCredential)
			},
			wantErr: domain.ErrDuplicateCredential,
		},
		{
			name:   "ProvisionFails",
			cardID: cardID,
			owner:  owner,
			buildStubs: func(repo *MockRepo, accounts *MockAccountProvisioner) {
				accounts.EXPECT().Ensure(gomock.Any(), gomock.Eq(owner)).Times(1).Return(errorspkg.ErrStorage)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: errorspkg.ErrStorage,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			accounts := NewMockAccountProvisioner(ctrl)
			tc.buildStubs(repo, accounts)

			got, err := New(repo, accounts).Register(context.Background(), tc.cardID, tc.owner)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Empty(t, got)

				return
			}

			require.NoError(t, err)
			require.Equal(t, card, got)
		})
	}
}

func TestAuthorize(t *testing.T) {
	owner := randompkg.AccountID()
	cardID := randompkg.CardID()

	testCases := []struct {
		name       string
		accountID  string
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name:      "Owner",
			accountID: owner,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(cardID)).Times(1).
					Return(domain.Card{ID: cardID, OwnerAccountID: owner}, nil)
			},
		},
		{
			name:      "OtherAccount",
			accountID: "mallory",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(cardID)).Times(1).
					Return(domain.Card{ID: cardID, OwnerAccountID: owner}, nil)
			},
			wantErr: domain.ErrInvalidCredential,
		},
		{
			name:      "UnknownCard",
			accountID: owner,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(cardID)).Times(1).
					Return(domain.Card{}, domain.ErrCardNotFound)
			},
			wantErr: domain.ErrInvalidCredential,
		},
		{
			name:      "StorageFailure",
			accountID: owner,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(cardID)).Times(1).
					Return(domain.Card{}, errorspkg.ErrStorage)
			},
			wantErr: errorspkg.ErrStorage,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			err := New(repo, NewMockAccountProvisioner(ctrl)).Authorize(context.Background(), cardID, tc.accountID)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}
