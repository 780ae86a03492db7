package codedelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/go-petr/card-ledger/internal/domain"
	"github.com/go-petr/card-ledger/pkg/errorspkg"
	"github.com/go-petr/card-ledger/pkg/randompkg"
	"github.com/go-petr/card-ledger/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if err := web.RegisterValidators(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func TestIssue(t *testing.T) {
	user := randompkg.AccountID()
	cardID := randompkg.CardID()
	code := domain.AuthCode{
		AccountID: user,
		Code:      "042917",
		ExpiresAt: time.Now().Add(5 * time.Minute).UTC().Truncate(time.Second),
	}

	type requestBody struct {
		User   string `json:"user,omitempty"`
		CardID string `json:"card_id,omitempty"`
	}

	testCases := []struct {
		name           string
		body           requestBody
		buildStubs     func(codeService *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			body: requestBody{User: user, CardID: cardID},
			buildStubs: func(codeService *MockService) {
				codeService.EXPECT().
					Issue(gomock.Any(), gomock.Eq(user), gomock.Eq(cardID)).
					Times(1).
					Return(code, nil)
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "NoCard",
			body: requestBody{User: user},
			buildStubs: func(codeService *MockService) {
				codeService.EXPECT().Issue(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "CardID field is required",
		},
		{
			name: "InvalidCredential",
			body: requestBody{User: user, CardID: cardID},
			buildStubs: func(codeService *MockService) {
				codeService.EXPECT().
					Issue(gomock.Any(), gomock.Eq(user), gomock.Eq(cardID)).
					Times(1).
					Return(domain.AuthCode{}, domain.ErrInvalidCredential)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrInvalidCredential.Error(),
		},
		{
			name: "Unlinked",
			body: requestBody{User: user, CardID: cardID},
			buildStubs: func(codeService *MockService) {
				codeService.EXPECT().
					Issue(gomock.Any(), gomock.Eq(user), gomock.Eq(cardID)).
					Times(1).
					Return(domain.AuthCode{}, domain.ErrUnlinkedNotificationTarget)
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrUnlinkedNotificationTarget.Error(),
		},
		{
			name: "StorageFailure",
			body: requestBody{User: user, CardID: cardID},
			buildStubs: func(codeService *MockService) {
				codeService.EXPECT().
					Issue(gomock.Any(), gomock.Eq(user), gomock.Eq(cardID)).
					Times(1).
					Return(domain.AuthCode{}, errorspkg.ErrStorage)
			},
			wantStatusCode: http.StatusServiceUnavailable,
			wantError:      errorspkg.ErrStorage.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			codeService := NewMockService(ctrl)
			codeHandler := NewHandler(codeService)

			server := gin.New()
			server.POST("/codes", codeHandler.Issue)

			tc.buildStubs(codeService)

			body, err := json.Marshal(tc.body)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/codes", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			if strings.Contains(recorder.Body.String(), code.Code) {
				t.Errorf("response body leaks the security code: %s", recorder.Body.String())
			}

			data := &issueData{}
			res := web.Response{Data: data}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusCreated {
				if res.Error != tc.wantError {
					t.Errorf(`resp.Error=%q, want %q`, res.Error, tc.wantError)
				}

				return
			}

			if data.AccountID != user {
				t.Errorf("data.AccountID = %q, want %q", data.AccountID, user)
			}

			if !data.ExpiresAt.Equal(code.ExpiresAt) {
				t.Errorf("data.ExpiresAt = %v, want %v", data.ExpiresAt, code.ExpiresAt)
			}
		})
	}
}
