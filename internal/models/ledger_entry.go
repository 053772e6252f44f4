package models

import (
	"time"

	"github.com/google/uuid"
)

// EntryType classifies a ledger entry.
type EntryType string

// Ledger entry types. A transfer produces a debit/credit pair sharing one group id.
const (
	EntryDeposit        EntryType = "deposit"
	EntryWithdrawal     EntryType = "withdrawal"
	EntryTransferDebit  EntryType = "transfer_debit"
	EntryTransferCredit EntryType = "transfer_credit"
)

// LedgerEntry is the immutable unit of record for a balance mutation.
// Entries are never updated or deleted once written.
type LedgerEntry struct {
	ID              int64     `json:"id" db:"id"`
	GroupID         uuid.UUID `json:"group_id" db:"group_id"`                   // Shared by all entries of one logical operation
	WalletID        int64     `json:"wallet_id" db:"wallet_id"`                 // Owning wallet
	Type            EntryType `json:"type" db:"type"`                           // deposit, withdrawal, transfer_debit, transfer_credit
	Amount          int64     `json:"amount" db:"amount"`                       // Minor units, always strictly positive
	Currency        string    `json:"currency" db:"currency"`                   // Copied from the owning wallet at write time
	RelatedWalletID *int64    `json:"related_wallet_id" db:"related_wallet_id"` // Counterparty wallet, set only for transfers
	IdempotencyKey  *string   `json:"idempotency_key" db:"idempotency_key"`     // Client-supplied key that produced this entry, if any
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// EntryFilter narrows ledger entry listings for a wallet.
type EntryFilter struct {
	Type    string     // Entry type filter, empty for all
	From    *time.Time // Inclusive lower bound on creation time
	To      *time.Time // Inclusive upper bound on creation time
	Page    int        // 1-based page number
	PerPage int        // Page size
}
