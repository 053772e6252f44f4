package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// idempotencyKeyHeader is the header clients use to make retries safe.
const idempotencyKeyHeader = "Idempotency-Key"

// maxIdempotencyKeyLength bounds the stored key size.
const maxIdempotencyKeyLength = 255

// keyContextKey is an unexported type for keys in context.
type keyContextKey struct{}

var idempotencyCtxKey = keyContextKey{}

// messageResponse is the error payload for a missing or malformed key.
type messageResponse struct {
	Message string `json:"message"`
}

// RequireIdempotencyKey validates the Idempotency-Key header on mutating
// operations: it must be present, non-empty after trimming and at most 255
// characters. The normalized key is stored in the request context.
func RequireIdempotencyKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, present := r.Header[idempotencyKeyHeader]
		if !present {
			writeKeyError(w, "Idempotency-Key is required")
			return
		}

		key := strings.TrimSpace(raw[0])
		if key == "" {
			writeKeyError(w, "Idempotency-Key must not be empty")
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			writeKeyError(w, "Idempotency-Key is too long")
			return
		}

		ctx := context.WithValue(r.Context(), idempotencyCtxKey, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdempotencyKeyFromContext returns the normalized key set by
// RequireIdempotencyKey, or "" when the middleware did not run.
func IdempotencyKeyFromContext(ctx context.Context) string {
	key, _ := ctx.Value(idempotencyCtxKey).(string)
	return key
}

func writeKeyError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(messageResponse{Message: msg})
}
