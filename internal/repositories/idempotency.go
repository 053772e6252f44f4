package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"walletledger/internal/logger"
	"walletledger/internal/models"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// IdempotencyReadRepository reads idempotency records.
type IdempotencyReadRepository struct {
	db *sqlx.DB
}

func NewIdempotencyReadRepository(db *sqlx.DB) *IdempotencyReadRepository {
	return &IdempotencyReadRepository{db: db}
}

// GetByKey returns the record for a key, or nil when the key is unknown.
func (r *IdempotencyReadRepository) GetByKey(ctx context.Context, key string) (*models.IdempotencyRecord, error) {
	const query = `
		SELECT id, key, method, path, group_id, response, created_at
		FROM idempotency_keys
		WHERE key = $1
	`

	var rec models.IdempotencyRecord
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &rec, query, key)

	logger.Log.Debugw("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{key},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// IdempotencyWriteRepository creates idempotency records.
type IdempotencyWriteRepository struct {
	db *sqlx.DB
}

func NewIdempotencyWriteRepository(db *sqlx.DB) *IdempotencyWriteRepository {
	return &IdempotencyWriteRepository{db: db}
}

// Save inserts the record and fills in its id and creation timestamp.
// Returns ErrAlreadyRegistered when the key is already bound to a group:
// the insert never overwrites an existing association.
func (r *IdempotencyWriteRepository) Save(ctx context.Context, rec *models.IdempotencyRecord) error {
	const query = `
		INSERT INTO idempotency_keys (key, method, path, group_id, response, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	args := []any{rec.Key, rec.Method, rec.Path, rec.GroupID, rec.Response}

	row := executor(ctx, r.db).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&rec.ID, &rec.CreatedAt)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrAlreadyRegistered
		}
		return err
	}
	return nil
}
