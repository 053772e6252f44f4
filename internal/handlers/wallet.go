package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"walletledger/internal/logger"
	"walletledger/internal/models"
	"walletledger/internal/services"
)

// WalletCreator defines the service methods needed to create wallets.
type WalletCreator interface {
	CreateWallet(ctx context.Context, ownerName, currency string) (*models.Wallet, error)
}

// WalletProvider defines the service methods needed to read a single wallet.
type WalletProvider interface {
	GetWallet(ctx context.Context, id int64) (*models.Wallet, error)
}

// WalletLister defines the service methods needed to list wallets.
type WalletLister interface {
	ListWallets(ctx context.Context, filter models.WalletFilter) ([]models.Wallet, error)
}

// CreateWalletRequest represents the JSON body for creating a wallet.
// swagger:model CreateWalletRequest
type CreateWalletRequest struct {
	// Display name of the wallet owner
	// required: true
	// example: Alice
	OwnerName string `json:"owner_name"`

	// 3-letter currency code
	// required: true
	// example: USD
	Currency string `json:"currency"`
}

// BalanceResponse represents a wallet balance.
// swagger:model BalanceResponse
type BalanceResponse struct {
	// Balance in minor units
	// example: 150000
	Balance int64 `json:"balance"`

	// Currency code
	// example: USD
	Currency string `json:"currency"`
}

// parseWalletID extracts the numeric wallet id from the route.
func parseWalletID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// NewCreateWalletHandler returns an HTTP handler that creates a wallet.
// @Summary Create wallet
// @Description Creates a wallet with zero balance for the given owner and currency.
// @Tags wallets
// @Accept json
// @Produce json
// @Param request body handlers.CreateWalletRequest true "Create Wallet Request"
// @Success 201 {object} models.Wallet "Wallet created"
// @Failure 400 {object} models.ErrorResponse "Validation failed"
// @Router /wallets [post]
func NewCreateWalletHandler(svc WalletCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateWalletRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Warnw("failed to decode create wallet request", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.OwnerName = strings.TrimSpace(req.OwnerName)
		if req.OwnerName == "" || len(req.OwnerName) > 255 {
			writeError(w, http.StatusBadRequest, "owner_name is required and must not exceed 255 characters")
			return
		}
		if !validCurrencyCode(req.Currency) {
			writeError(w, http.StatusBadRequest, "currency must be exactly 3 letters")
			return
		}

		wallet, err := svc.CreateWallet(r.Context(), req.OwnerName, req.Currency)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondJSON(w, http.StatusCreated, wallet)
	}
}

// NewListWalletsHandler returns an HTTP handler that lists wallets.
// @Summary List wallets
// @Description Lists wallets, optionally filtered by owner substring and currency.
// @Tags wallets
// @Produce json
// @Param owner query string false "Owner name substring"
// @Param currency query string false "Currency code"
// @Param page query int false "Page number (default 1)"
// @Param per_page query int false "Page size (default 20)"
// @Success 200 {array} models.Wallet
// @Router /wallets [get]
func NewListWalletsHandler(svc WalletLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		perPage, _ := strconv.Atoi(q.Get("per_page"))

		filter := models.WalletFilter{
			Owner:    q.Get("owner"),
			Currency: strings.ToUpper(q.Get("currency")),
			Page:     page,
			PerPage:  perPage,
		}

		wallets, err := svc.ListWallets(r.Context(), filter)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondJSON(w, http.StatusOK, wallets)
	}
}

// NewGetWalletHandler returns an HTTP handler that fetches a single wallet.
// @Summary Get wallet
// @Tags wallets
// @Produce json
// @Param id path int true "Wallet ID"
// @Success 200 {object} models.Wallet
// @Failure 404 {object} models.ErrorResponse "Wallet not found"
// @Router /wallets/{id} [get]
func NewGetWalletHandler(svc WalletProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseWalletID(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "wallet not found")
			return
		}

		wallet, err := svc.GetWallet(r.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrWalletNotFound) {
				writeError(w, http.StatusNotFound, "wallet not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondJSON(w, http.StatusOK, wallet)
	}
}

// NewGetBalanceHandler returns an HTTP handler that fetches a wallet balance.
// @Summary Get wallet balance
// @Tags wallets
// @Produce json
// @Param id path int true "Wallet ID"
// @Success 200 {object} handlers.BalanceResponse
// @Failure 404 {object} models.ErrorResponse "Wallet not found"
// @Router /wallets/{id}/balance [get]
func NewGetBalanceHandler(svc WalletProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseWalletID(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "wallet not found")
			return
		}

		wallet, err := svc.GetWallet(r.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrWalletNotFound) {
				writeError(w, http.StatusNotFound, "wallet not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondJSON(w, http.StatusOK, BalanceResponse{
			Balance:  wallet.Balance,
			Currency: wallet.Currency,
		})
	}
}

func validCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, models.ErrorResponse{Error: msg})
}
