package models

import (
	"time"

	"github.com/google/uuid"
)

// Wallet represents a wallet row in the database.
// Balance is stored in integer minor units (e.g. cents for USD).
type Wallet struct {
	ID        int64     `json:"id" db:"id"`                 // Store-assigned numeric identifier
	UUID      uuid.UUID `json:"uuid" db:"uuid"`             // Public-facing identifier, assigned once at creation
	OwnerName string    `json:"owner_name" db:"owner_name"` // Display name of the wallet owner
	Currency  string    `json:"currency" db:"currency"`     // Upper-cased 3-letter currency code
	Balance   int64     `json:"balance" db:"balance"`       // Current balance in minor units, never negative
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Timestamp when the wallet was created
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Timestamp of the last balance change
}

// WalletFilter narrows wallet listings.
type WalletFilter struct {
	Owner    string // Substring match on owner name
	Currency string // Exact currency code match
	Page     int    // 1-based page number
	PerPage  int    // Page size
}
