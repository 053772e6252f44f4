package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"walletledger/internal/logger"
	"walletledger/internal/middlewares"
	"walletledger/internal/models"
	"walletledger/internal/services"
)

// DepositService defines the engine method needed by this handler.
type DepositService interface {
	Deposit(ctx context.Context, walletID int64, amountMinor int64, idempotencyKey string) ([]models.LedgerEntry, error)
}

// OperationRequest represents the JSON body for deposits and withdrawals.
// swagger:model OperationRequest
type OperationRequest struct {
	// Amount as a decimal number, converted to minor units at 2 decimal places
	// required: true
	// example: 100.50
	Amount json.Number `json:"amount"`
}

// NewDepositHandler returns an HTTP handler that deposits funds into a wallet.
// @Summary Deposit funds
// @Description Credits the wallet and records a deposit ledger entry. Requires an Idempotency-Key header; retries with the same key replay the original result.
// @Tags operations
// @Accept json
// @Produce json
// @Param id path int true "Wallet ID"
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body handlers.OperationRequest true "Operation Request"
// @Success 201 {object} models.OperationResponse "Ledger entries created or replayed"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 404 {object} models.ErrorResponse "Wallet not found"
// @Failure 422 {object} models.ErrorResponse "Business rule violation"
// @Router /wallets/{id}/deposit [post]
func NewDepositHandler(svc DepositService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseWalletID(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "wallet not found")
			return
		}

		amount, ok := decodeAmount(w, r)
		if !ok {
			return
		}

		entries, err := svc.Deposit(ctx, id, amount, middlewares.IdempotencyKeyFromContext(ctx))
		if err != nil {
			writeOperationError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, models.OperationResponse{Transactions: entries})
	}
}

// decodeAmount decodes the operation body and converts the amount to minor
// units, writing the error response itself on failure.
func decodeAmount(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var req OperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warnw("failed to decode operation request", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return 0, false
	}
	if req.Amount == "" {
		writeError(w, http.StatusUnprocessableEntity, "amount is required")
		return 0, false
	}

	amount, err := services.ToMinorUnits(req.Amount.String())
	if err != nil {
		logger.Log.Warnw("invalid amount", "input", req.Amount.String(), "error", err)
		writeError(w, http.StatusUnprocessableEntity, "Invalid amount format")
		return 0, false
	}
	return amount, true
}

// writeOperationError maps engine errors to HTTP statuses.
func writeOperationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrWalletNotFound):
		writeError(w, http.StatusNotFound, "wallet not found")
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrSameWalletTransfer),
		errors.Is(err, services.ErrCurrencyMismatch):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Log.Errorw("operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
