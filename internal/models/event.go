package models

// OperationEvent is published to Kafka after a ledger operation commits.
type OperationEvent struct {
	GroupID         string `json:"group_id"`          // Ledger group of the operation
	Operation       string `json:"operation"`         // "deposit", "withdraw" or "transfer"
	WalletID        int64  `json:"wallet_id"`         // Wallet that was debited or credited (source for transfers)
	RelatedWalletID *int64 `json:"related_wallet_id"` // Transfer counterparty, nil otherwise
	Amount          int64  `json:"amount"`            // Minor units
	Currency        string `json:"currency"`          //
	Timestamp       int64  `json:"timestamp"`         // Unix seconds when the event was produced
}
