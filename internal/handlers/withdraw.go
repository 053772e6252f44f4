package handlers

import (
	"context"
	"net/http"

	"walletledger/internal/middlewares"
	"walletledger/internal/models"
)

// WithdrawService defines the engine method needed by this handler.
type WithdrawService interface {
	Withdraw(ctx context.Context, walletID int64, amountMinor int64, idempotencyKey string) ([]models.LedgerEntry, error)
}

// NewWithdrawHandler returns an HTTP handler that withdraws funds from a wallet.
// @Summary Withdraw funds
// @Description Debits the wallet and records a withdrawal ledger entry. Fails with 422 when the balance cannot cover the amount; no state is mutated in that case.
// @Tags operations
// @Accept json
// @Produce json
// @Param id path int true "Wallet ID"
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body handlers.OperationRequest true "Operation Request"
// @Success 201 {object} models.OperationResponse "Ledger entries created or replayed"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 404 {object} models.ErrorResponse "Wallet not found"
// @Failure 422 {object} models.ErrorResponse "Insufficient funds or invalid amount"
// @Router /wallets/{id}/withdraw [post]
func NewWithdrawHandler(svc WithdrawService) http.HandlerFunc {
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

		entries, err := svc.Withdraw(ctx, id, amount, middlewares.IdempotencyKeyFromContext(ctx))
		if err != nil {
			writeOperationError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, models.OperationResponse{Transactions: entries})
	}
}
