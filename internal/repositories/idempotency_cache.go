package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"walletledger/internal/logger"
	"walletledger/internal/models"
)

// IdempotencyCacheRepository caches idempotency records in Redis so replayed
// requests skip the database on the fast path. The cache is advisory only:
// entries carry a bounded TTL and PostgreSQL remains the authority.
type IdempotencyCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewIdempotencyCacheRepository creates a new cache repository with the given TTL.
func NewIdempotencyCacheRepository(client *redis.Client, expiration time.Duration) *IdempotencyCacheRepository {
	return &IdempotencyCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func cacheKey(key string) string {
	return fmt.Sprintf("idempotency:%s", key)
}

// Get fetches a cached record. Returns nil on a cache miss.
func (r *IdempotencyCacheRepository) Get(ctx context.Context, key string) (*models.IdempotencyRecord, error) {
	val, err := r.client.Get(ctx, cacheKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		logger.Log.Warnw("idempotency cache read failed", "key", key, "error", err)
		return nil, err
	}

	var rec models.IdempotencyRecord
	if err := json.Unmarshal(val, &rec); err != nil {
		logger.Log.Warnw("idempotency cache entry malformed", "key", key, "error", err)
		return nil, err
	}
	return &rec, nil
}

// Set caches a record under its key.
func (r *IdempotencyCacheRepository) Set(ctx context.Context, rec *models.IdempotencyRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, cacheKey(rec.Key), data, r.exp).Err()

	logger.Log.Debugw("idempotency cache write",
		"key", rec.Key,
		"group_id", rec.GroupID,
		"error", err,
	)

	return err
}
