package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"walletledger/internal/logger"
	"walletledger/internal/models"
	"walletledger/internal/repositories"
)

// --- Setup Postgres ---
func setupPostgres(t *testing.T) (*sqlx.DB, func()) {
	logger.Initialize("debug")
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "secret", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:secret@%s:%s/testdb?sslmode=disable", host, port.Port())
	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS wallets (
			id BIGSERIAL PRIMARY KEY,
			uuid UUID NOT NULL UNIQUE,
			owner_name VARCHAR(255) NOT NULL,
			currency CHAR(3) NOT NULL,
			balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS ledger_entries (
			id BIGSERIAL PRIMARY KEY,
			group_id UUID NOT NULL,
			wallet_id BIGINT NOT NULL REFERENCES wallets (id) ON DELETE CASCADE,
			type VARCHAR(16) NOT NULL CHECK (type IN ('deposit', 'withdrawal', 'transfer_debit', 'transfer_credit')),
			amount BIGINT NOT NULL CHECK (amount > 0),
			currency CHAR(3) NOT NULL,
			related_wallet_id BIGINT REFERENCES wallets (id) ON DELETE SET NULL,
			idempotency_key VARCHAR(255),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS idempotency_keys (
			id BIGSERIAL PRIMARY KEY,
			key VARCHAR(255) NOT NULL UNIQUE,
			method VARCHAR(10),
			path VARCHAR(255),
			group_id UUID NOT NULL,
			response JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	}

	for _, m := range migrations {
		_, err = db.Exec(m)
		require.NoError(t, err)
	}

	return db, func() {
		db.Close()
		container.Terminate(ctx)
	}
}

func newService(db *sqlx.DB) *WalletService {
	return NewWalletService(db,
		repositories.NewWalletReadRepository(db),
		repositories.NewWalletWriteRepository(db),
		repositories.NewLedgerEntryReadRepository(db),
		repositories.NewLedgerEntryWriteRepository(db),
		repositories.NewIdempotencyReadRepository(db),
		repositories.NewIdempotencyWriteRepository(db),
		nil, nil,
	)
}

// --- Helpers ---
func getBalance(t *testing.T, db *sqlx.DB, id int64) int64 {
	var balance int64
	err := db.Get(&balance, `SELECT balance FROM wallets WHERE id = $1`, id)
	require.NoError(t, err)
	return balance
}

func countEntries(t *testing.T, db *sqlx.DB, walletID int64) int {
	var n int
	err := db.Get(&n, `SELECT COUNT(*) FROM ledger_entries WHERE wallet_id = $1`, walletID)
	require.NoError(t, err)
	return n
}

func TestWalletService_DepositWithdrawFlow(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()
	svc := newService(db)

	wallet, err := svc.CreateWallet(ctx, "alice", "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", wallet.Currency)
	assert.Equal(t, int64(0), wallet.Balance)

	entries, err := svc.Deposit(ctx, wallet.ID, 10000, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(10000), getBalance(t, db, wallet.ID))

	entries, err = svc.Withdraw(ctx, wallet.ID, 2500, "")
	require.NoError(t, err)
	assert.Equal(t, models.EntryWithdrawal, entries[0].Type)
	assert.Equal(t, int64(7500), getBalance(t, db, wallet.ID))

	// Each completed operation left exactly one entry
	assert.Equal(t, 2, countEntries(t, db, wallet.ID))
}

func TestWalletService_Withdraw_InsufficientFunds_NoSideEffects(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()
	svc := newService(db)

	wallet, err := svc.CreateWallet(ctx, "bob", "USD")
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, wallet.ID, 100, "")
	require.NoError(t, err)

	_, err = svc.Withdraw(ctx, wallet.ID, 500, "wd-too-much")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// The failed withdrawal left nothing behind: no entry, no key, same balance
	assert.Equal(t, int64(100), getBalance(t, db, wallet.ID))
	assert.Equal(t, 1, countEntries(t, db, wallet.ID))

	var keys int
	require.NoError(t, db.Get(&keys, `SELECT COUNT(*) FROM idempotency_keys WHERE key = $1`, "wd-too-much"))
	assert.Equal(t, 0, keys)
}

func TestWalletService_Deposit_IdempotentReplay(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()
	svc := newService(db)

	wallet, err := svc.CreateWallet(ctx, "carol", "USD")
	require.NoError(t, err)

	first, err := svc.Deposit(ctx, wallet.ID, 5000, "dep-once")
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.Deposit(ctx, wallet.ID, 5000, "dep-once")
	require.NoError(t, err)
	require.Len(t, second, 1)

	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].GroupID, second[0].GroupID)

	// The retry was replayed, not re-executed
	assert.Equal(t, int64(5000), getBalance(t, db, wallet.ID))
	assert.Equal(t, 1, countEntries(t, db, wallet.ID))
}

func TestWalletService_Transfer_DoubleEntry(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()
	svc := newService(db)

	src, err := svc.CreateWallet(ctx, "dave", "USD")
	require.NoError(t, err)
	tgt, err := svc.CreateWallet(ctx, "erin", "USD")
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, src.ID, 10000, "")
	require.NoError(t, err)

	entries, err := svc.Transfer(ctx, src.ID, tgt.ID, 4000, "tr-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	debit, credit := entries[0], entries[1]
	assert.Equal(t, models.EntryTransferDebit, debit.Type)
	assert.Equal(t, models.EntryTransferCredit, credit.Type)
	assert.Equal(t, debit.GroupID, credit.GroupID)
	assert.Equal(t, debit.Amount, credit.Amount)
	require.NotNil(t, debit.RelatedWalletID)
	require.NotNil(t, credit.RelatedWalletID)
	assert.Equal(t, tgt.ID, *debit.RelatedWalletID)
	assert.Equal(t, src.ID, *credit.RelatedWalletID)

	// Total funds conserved
	assert.Equal(t, int64(6000), getBalance(t, db, src.ID))
	assert.Equal(t, int64(4000), getBalance(t, db, tgt.ID))

	// Replay returns the same pair and moves nothing
	replayed, err := svc.Transfer(ctx, src.ID, tgt.ID, 4000, "tr-1")
	require.NoError(t, err)
	require.Len(t, replayed, 2)
	assert.Equal(t, debit.ID, replayed[0].ID)
	assert.Equal(t, credit.ID, replayed[1].ID)
	assert.Equal(t, int64(6000), getBalance(t, db, src.ID))
}

func TestWalletService_Transfer_Concurrent(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()
	svc := newService(db)

	a, err := svc.CreateWallet(ctx, "frank", "USD")
	require.NoError(t, err)
	b, err := svc.CreateWallet(ctx, "grace", "USD")
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, a.ID, 100000, "")
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, b.ID, 100000, "")
	require.NoError(t, err)

	// Opposite-direction transfers on the same pair must all complete:
	// the ascending lock order rules out deadlocks.
	const rounds = 50
	var wg sync.WaitGroup
	wg.Add(2 * rounds)
	for i := 0; i < rounds; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Transfer(ctx, a.ID, b.ID, 100, "")
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := svc.Transfer(ctx, b.ID, a.ID, 30, "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// a: -50*100 +50*30 = -3500, b mirrors it
	assert.Equal(t, int64(100000-3500), getBalance(t, db, a.ID))
	assert.Equal(t, int64(100000+3500), getBalance(t, db, b.ID))
}

func TestWalletService_Deposit_ConcurrentSameKey(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()
	svc := newService(db)

	wallet, err := svc.CreateWallet(ctx, "heidi", "USD")
	require.NoError(t, err)

	// All requests share one key; exactly one deposit must be applied and
	// every caller must receive that deposit's entry.
	const callers = 10
	results := make([][]models.LedgerEntry, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			entries, err := svc.Deposit(ctx, wallet.ID, 700, "dep-racing")
			assert.NoError(t, err)
			results[i] = entries
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(700), getBalance(t, db, wallet.ID))
	assert.Equal(t, 1, countEntries(t, db, wallet.ID))
	for _, entries := range results {
		require.Len(t, entries, 1)
		assert.Equal(t, results[0][0].ID, entries[0].ID)
	}
}

func TestWalletService_ListTransactions(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()
	svc := newService(db)

	wallet, err := svc.CreateWallet(ctx, "ivan", "USD")
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, wallet.ID, 1000, "")
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, wallet.ID, 300, "")
	require.NoError(t, err)

	entries, err := svc.ListTransactions(ctx, wallet.ID, models.EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = svc.ListTransactions(ctx, wallet.ID, models.EntryFilter{Type: string(models.EntryDeposit)})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.EntryDeposit, entries[0].Type)

	_, err = svc.ListTransactions(ctx, 9999, models.EntryFilter{})
	assert.ErrorIs(t, err, ErrWalletNotFound)
}
