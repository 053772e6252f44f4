package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// IdempotencyRecord maps a client-supplied key to the operation group it
// produced. A key is associated with at most one group id for its lifetime;
// records are created atomically with the ledger entries they guard and are
// never updated afterwards.
type IdempotencyRecord struct {
	ID        int64           `json:"id" db:"id"`
	Key       string          `json:"key" db:"key"`               // Client-supplied key, unique
	Method    string          `json:"method" db:"method"`         // HTTP method the key was used for (informational)
	Path      string          `json:"path" db:"path"`             // Request path the key was used for (informational)
	GroupID   uuid.UUID       `json:"group_id" db:"group_id"`     // Ledger group the key is bound to
	Response  json.RawMessage `json:"response" db:"response"`     // Cached response payload
	CreatedAt time.Time       `json:"created_at" db:"created_at"` //
}
