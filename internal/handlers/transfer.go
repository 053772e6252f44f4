package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"walletledger/internal/logger"
	"walletledger/internal/middlewares"
	"walletledger/internal/models"
	"walletledger/internal/services"
)

// TransferService defines the engine method needed by this handler.
type TransferService interface {
	Transfer(ctx context.Context, sourceID, targetID int64, amountMinor int64, idempotencyKey string) ([]models.LedgerEntry, error)
}

// TransferRequest represents the JSON body for a transfer.
// swagger:model TransferRequest
type TransferRequest struct {
	// Source wallet id
	// required: true
	// example: 1
	SourceWalletID int64 `json:"source_wallet_id"`

	// Target wallet id
	// required: true
	// example: 2
	TargetWalletID int64 `json:"target_wallet_id"`

	// Amount as a decimal number, converted to minor units at 2 decimal places
	// required: true
	// example: 20.00
	Amount json.Number `json:"amount"`
}

// NewTransferHandler returns an HTTP handler that transfers funds between wallets.
// @Summary Transfer funds
// @Description Moves funds between two wallets of the same currency, recording a debit/credit entry pair under one group id.
// @Tags operations
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body handlers.TransferRequest true "Transfer Request"
// @Success 201 {object} models.OperationResponse "Debit and credit entries, in that order"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 404 {object} models.ErrorResponse "Wallet not found"
// @Failure 422 {object} models.ErrorResponse "Business rule violation"
// @Router /transfers [post]
func NewTransferHandler(svc TransferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Warnw("failed to decode transfer request", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.SourceWalletID == 0 || req.TargetWalletID == 0 {
			writeError(w, http.StatusUnprocessableEntity, "source_wallet_id and target_wallet_id are required")
			return
		}
		if req.Amount == "" {
			writeError(w, http.StatusUnprocessableEntity, "amount is required")
			return
		}

		amount, err := services.ToMinorUnits(req.Amount.String())
		if err != nil {
			logger.Log.Warnw("invalid amount", "input", req.Amount.String(), "error", err)
			writeError(w, http.StatusUnprocessableEntity, "Invalid amount format")
			return
		}

		entries, err := svc.Transfer(ctx, req.SourceWalletID, req.TargetWalletID, amount,
			middlewares.IdempotencyKeyFromContext(ctx))
		if err != nil {
			writeOperationError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, models.OperationResponse{Transactions: entries})
	}
}
