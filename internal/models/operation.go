package models

// OperationResponse is the payload returned for a successful deposit,
// withdrawal or transfer: the ledger entries representing the effect.
// swagger:model OperationResponse
type OperationResponse struct {
	// Ledger entries created by (or replayed for) the operation
	Transactions []LedgerEntry `json:"transactions"`
}

// ErrorResponse is the generic error payload.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: insufficient funds
	Error string `json:"error"`
}
