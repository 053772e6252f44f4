package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletledger/internal/middlewares"
	"walletledger/internal/models"
	"walletledger/internal/services"
)

func newDepositRouter(svc DepositService) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middlewares.RequireIdempotencyKey)
		r.Post("/wallets/{id}/deposit", NewDepositHandler(svc))
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body, idempotencyKey string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDepositHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockDepositService(ctrl)
	entries := []models.LedgerEntry{
		{ID: 1, WalletID: 3, Type: models.EntryDeposit, Amount: 10050, Currency: "USD"},
	}
	svc.EXPECT().Deposit(gomock.Any(), int64(3), int64(10050), "key-1").Return(entries, nil)

	rec := doRequest(t, newDepositRouter(svc), http.MethodPost,
		"/wallets/3/deposit", `{"amount": 100.50}`, "key-1")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"transactions"`)
	assert.Contains(t, rec.Body.String(), `"deposit"`)
}

func TestDepositHandler_Errors(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		body           string
		idempotencyKey string
		setup          func(svc *MockDepositService)
		expectedCode   int
	}{
		{
			name:           "missing idempotency key",
			target:         "/wallets/3/deposit",
			body:           `{"amount": 10}`,
			idempotencyKey: "",
			expectedCode:   http.StatusBadRequest,
		},
		{
			name:           "invalid body",
			target:         "/wallets/3/deposit",
			body:           `{not json`,
			idempotencyKey: "k",
			expectedCode:   http.StatusBadRequest,
		},
		{
			name:           "missing amount",
			target:         "/wallets/3/deposit",
			body:           `{}`,
			idempotencyKey: "k",
			expectedCode:   http.StatusUnprocessableEntity,
		},
		{
			name:           "non-numeric wallet id",
			target:         "/wallets/abc/deposit",
			body:           `{"amount": 10}`,
			idempotencyKey: "k",
			expectedCode:   http.StatusNotFound,
		},
		{
			name:           "wallet not found",
			target:         "/wallets/404/deposit",
			body:           `{"amount": 10}`,
			idempotencyKey: "k",
			setup: func(svc *MockDepositService) {
				svc.EXPECT().Deposit(gomock.Any(), int64(404), int64(1000), "k").
					Return(nil, services.ErrWalletNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:           "invalid amount",
			target:         "/wallets/3/deposit",
			body:           `{"amount": -5}`,
			idempotencyKey: "k",
			setup: func(svc *MockDepositService) {
				svc.EXPECT().Deposit(gomock.Any(), int64(3), int64(-500), "k").
					Return(nil, services.ErrInvalidAmount)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockDepositService(ctrl)
			if tt.setup != nil {
				tt.setup(svc)
			}

			rec := doRequest(t, newDepositRouter(svc), http.MethodPost, tt.target, tt.body, tt.idempotencyKey)
			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func TestWithdrawHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockWithdrawService(ctrl)
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middlewares.RequireIdempotencyKey)
		r.Post("/wallets/{id}/withdraw", NewWithdrawHandler(svc))
	})

	entries := []models.LedgerEntry{
		{ID: 2, WalletID: 3, Type: models.EntryWithdrawal, Amount: 2500, Currency: "USD"},
	}
	svc.EXPECT().Withdraw(gomock.Any(), int64(3), int64(2500), "key-2").Return(entries, nil)

	rec := doRequest(t, r, http.MethodPost, "/wallets/3/withdraw", `{"amount": "25.00"}`, "key-2")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"withdrawal"`)
}

func TestWithdrawHandler_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockWithdrawService(ctrl)
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middlewares.RequireIdempotencyKey)
		r.Post("/wallets/{id}/withdraw", NewWithdrawHandler(svc))
	})

	svc.EXPECT().Withdraw(gomock.Any(), int64(3), int64(100000), "key-3").
		Return(nil, services.ErrInsufficientFunds)

	rec := doRequest(t, r, http.MethodPost, "/wallets/3/withdraw", `{"amount": 1000}`, "key-3")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient funds")
}
