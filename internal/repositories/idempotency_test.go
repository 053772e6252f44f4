package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletledger/internal/models"
)

func TestIdempotencyReadRepository_GetByKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIdempotencyReadRepository(db)

	groupID := uuid.New()
	now := time.Now()
	response := json.RawMessage(`{"entry_id":10}`)

	mock.ExpectQuery("FROM idempotency_keys").
		WithArgs("known-key").
		WillReturnRows(sqlmock.NewRows([]string{"id", "key", "method", "path", "group_id", "response", "created_at"}).
			AddRow(int64(1), "known-key", "POST", "/wallets/1/deposit", groupID, []byte(response), now))

	rec, err := repo.GetByKey(context.Background(), "known-key")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "known-key", rec.Key)
	assert.Equal(t, groupID, rec.GroupID)
	assert.JSONEq(t, string(response), string(rec.Response))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyReadRepository_GetByKey_Unknown(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIdempotencyReadRepository(db)

	mock.ExpectQuery("FROM idempotency_keys").
		WithArgs("unknown-key").
		WillReturnError(sql.ErrNoRows)

	rec, err := repo.GetByKey(context.Background(), "unknown-key")
	assert.NoError(t, err)
	assert.Nil(t, rec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyWriteRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIdempotencyWriteRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO idempotency_keys").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	rec := &models.IdempotencyRecord{
		Key:     "fresh-key",
		Method:  "POST",
		Path:    "/transfers",
		GroupID: uuid.New(),
	}
	err := repo.Save(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, int64(7), rec.ID)
	assert.Equal(t, now, rec.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyWriteRepository_Save_AlreadyRegistered(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIdempotencyWriteRepository(db)

	// Unique violation on key means another request won the race
	mock.ExpectQuery("INSERT INTO idempotency_keys").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idempotency_keys_key_key"})

	rec := &models.IdempotencyRecord{
		Key:     "taken-key",
		Method:  "POST",
		Path:    "/transfers",
		GroupID: uuid.New(),
	}
	err := repo.Save(context.Background(), rec)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.NoError(t, mock.ExpectationsWereMet())
}
