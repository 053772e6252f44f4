package handlers

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"walletledger/internal/middlewares"
	"walletledger/internal/models"
	"walletledger/internal/services"
)

func newTransferRouter(svc TransferService) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middlewares.RequireIdempotencyKey)
		r.Post("/transfers", NewTransferHandler(svc))
	})
	return r
}

func TestTransferHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockTransferService(ctrl)
	related1, related2 := int64(2), int64(1)
	entries := []models.LedgerEntry{
		{ID: 5, WalletID: 1, Type: models.EntryTransferDebit, Amount: 2000, Currency: "USD", RelatedWalletID: &related1},
		{ID: 6, WalletID: 2, Type: models.EntryTransferCredit, Amount: 2000, Currency: "USD", RelatedWalletID: &related2},
	}
	svc.EXPECT().Transfer(gomock.Any(), int64(1), int64(2), int64(2000), "tr-key").
		Return(entries, nil)

	rec := doRequest(t, newTransferRouter(svc), http.MethodPost, "/transfers",
		`{"source_wallet_id": 1, "target_wallet_id": 2, "amount": "20.00"}`, "tr-key")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"transfer_debit"`)
	assert.Contains(t, rec.Body.String(), `"transfer_credit"`)
}

func TestTransferHandler_Errors(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setup        func(svc *MockTransferService)
		expectedCode int
	}{
		{
			name:         "invalid body",
			body:         `not json`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing wallet ids",
			body:         `{"amount": 10}`,
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "missing amount",
			body:         `{"source_wallet_id": 1, "target_wallet_id": 2}`,
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "same wallet",
			body: `{"source_wallet_id": 1, "target_wallet_id": 1, "amount": 10}`,
			setup: func(svc *MockTransferService) {
				svc.EXPECT().Transfer(gomock.Any(), int64(1), int64(1), int64(1000), "k").
					Return(nil, services.ErrSameWalletTransfer)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "currency mismatch",
			body: `{"source_wallet_id": 1, "target_wallet_id": 2, "amount": 10}`,
			setup: func(svc *MockTransferService) {
				svc.EXPECT().Transfer(gomock.Any(), int64(1), int64(2), int64(1000), "k").
					Return(nil, services.ErrCurrencyMismatch)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown wallet",
			body: `{"source_wallet_id": 99, "target_wallet_id": 2, "amount": 10}`,
			setup: func(svc *MockTransferService) {
				svc.EXPECT().Transfer(gomock.Any(), int64(99), int64(2), int64(1000), "k").
					Return(nil, services.ErrWalletNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockTransferService(ctrl)
			if tt.setup != nil {
				tt.setup(svc)
			}

			rec := doRequest(t, newTransferRouter(svc), http.MethodPost, "/transfers", tt.body, "k")
			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}
