package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"walletledger/internal/models"
	"walletledger/internal/services"
)

// LedgerLister defines the service method needed to list a wallet's entries.
type LedgerLister interface {
	ListTransactions(ctx context.Context, walletID int64, filter models.EntryFilter) ([]models.LedgerEntry, error)
}

// NewListTransactionsHandler returns an HTTP handler that lists a wallet's
// ledger entries, newest first.
// @Summary List wallet transactions
// @Tags wallets
// @Produce json
// @Param id path int true "Wallet ID"
// @Param type query string false "Entry type filter"
// @Param from query string false "Inclusive lower bound on creation time (RFC 3339)"
// @Param to query string false "Inclusive upper bound on creation time (RFC 3339)"
// @Param page query int false "Page number (default 1)"
// @Param per_page query int false "Page size (default 20, max 100)"
// @Success 200 {object} models.OperationResponse
// @Failure 404 {object} models.ErrorResponse "Wallet not found"
// @Router /wallets/{id}/transactions [get]
func NewListTransactionsHandler(svc LedgerLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseWalletID(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "wallet not found")
			return
		}

		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		perPage, _ := strconv.Atoi(q.Get("per_page"))

		filter := models.EntryFilter{
			Type:    q.Get("type"),
			Page:    page,
			PerPage: perPage,
		}
		if from := q.Get("from"); from != "" {
			t, err := time.Parse(time.RFC3339, from)
			if err != nil {
				writeError(w, http.StatusBadRequest, "from must be an RFC 3339 timestamp")
				return
			}
			filter.From = &t
		}
		if to := q.Get("to"); to != "" {
			t, err := time.Parse(time.RFC3339, to)
			if err != nil {
				writeError(w, http.StatusBadRequest, "to must be an RFC 3339 timestamp")
				return
			}
			filter.To = &t
		}

		entries, err := svc.ListTransactions(r.Context(), id, filter)
		if err != nil {
			if errors.Is(err, services.ErrWalletNotFound) {
				writeError(w, http.StatusNotFound, "wallet not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondJSON(w, http.StatusOK, models.OperationResponse{Transactions: entries})
	}
}
