package repositories

import "errors"

var (
	// ErrWalletNotFound is returned when a wallet id does not resolve to a row.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrAlreadyRegistered is returned when saving an idempotency record whose
	// key is already bound to another group. The unique constraint on the key
	// is the authoritative tie-break between concurrent first writers.
	ErrAlreadyRegistered = errors.New("idempotency key already registered")
)
