package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletledger/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func walletColumns() []string {
	return []string{"id", "uuid", "owner_name", "currency", "balance", "created_at", "updated_at"}
}

func TestWalletReadRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletReadRepository(db)
	ctx := context.Background()

	now := time.Now()
	walletUUID := uuid.New()
	mock.ExpectQuery("SELECT id, uuid, owner_name, currency, balance, created_at, updated_at FROM wallets").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(walletColumns()).
			AddRow(int64(1), walletUUID, "alice", "USD", int64(1500), now, now))

	wallet, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), wallet.ID)
	assert.Equal(t, walletUUID, wallet.UUID)
	assert.Equal(t, "alice", wallet.OwnerName)
	assert.Equal(t, int64(1500), wallet.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletReadRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletReadRepository(db)

	mock.ExpectQuery("SELECT id, uuid, owner_name, currency, balance, created_at, updated_at FROM wallets").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	wallet, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrWalletNotFound)
	assert.Nil(t, wallet)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletWriteRepository_AddToBalance(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletWriteRepository(db)

	mock.ExpectQuery("UPDATE wallets SET balance = balance").
		WithArgs(int64(-300), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(int64(700)))

	balance, err := repo.AddToBalance(context.Background(), 1, -300)
	require.NoError(t, err)
	assert.Equal(t, int64(700), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletWriteRepository_LockForUpdate_UsesContextTx(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletWriteRepository(db)
	ctx := context.Background()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(walletColumns()).
			AddRow(int64(5), uuid.New(), "bob", "EUR", int64(0), now, now))
	mock.ExpectCommit()

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)

	wallet, err := repo.LockForUpdate(WithTx(ctx, tx), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), wallet.ID)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletReadRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWalletReadRepository(db)

	now := time.Now()
	mock.ExpectQuery("FROM wallets").
		WithArgs("ali", "USD", 20, 0).
		WillReturnRows(sqlmock.NewRows(walletColumns()).
			AddRow(int64(2), uuid.New(), "alice", "USD", int64(100), now, now).
			AddRow(int64(1), uuid.New(), "alina", "USD", int64(50), now, now))

	wallets, err := repo.List(context.Background(), models.WalletFilter{Owner: "ali", Currency: "USD"})
	require.NoError(t, err)
	assert.Len(t, wallets, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
