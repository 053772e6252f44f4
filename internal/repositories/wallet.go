package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"walletledger/internal/logger"
	"walletledger/internal/models"
)

// WalletReadRepository handles wallet read operations.
type WalletReadRepository struct {
	db *sqlx.DB
}

func NewWalletReadRepository(db *sqlx.DB) *WalletReadRepository {
	return &WalletReadRepository{db: db}
}

// GetByID retrieves a wallet by its numeric id without locking it.
func (r *WalletReadRepository) GetByID(ctx context.Context, id int64) (*models.Wallet, error) {
	const query = `
		SELECT id, uuid, owner_name, currency, balance, created_at, updated_at
		FROM wallets
		WHERE id = $1
	`

	var wallet models.Wallet
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &wallet, query, id)

	logger.Log.Debugw("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

// List retrieves wallets matching the filter, newest first.
func (r *WalletReadRepository) List(ctx context.Context, filter models.WalletFilter) ([]models.Wallet, error) {
	const query = `
		SELECT id, uuid, owner_name, currency, balance, created_at, updated_at
		FROM wallets
		WHERE ($1 = '' OR owner_name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR currency = $2)
		ORDER BY id DESC
		LIMIT $3 OFFSET $4
	`

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}
	args := []any{filter.Owner, filter.Currency, perPage, (page - 1) * perPage}

	wallets := make([]models.Wallet, 0)
	err := r.db.SelectContext(ctx, &wallets, query, args...)

	logger.Log.Debugw("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return wallets, nil
}

// WalletWriteRepository handles wallet write operations.
type WalletWriteRepository struct {
	db *sqlx.DB
}

func NewWalletWriteRepository(db *sqlx.DB) *WalletWriteRepository {
	return &WalletWriteRepository{db: db}
}

// Save creates a wallet with zero balance and a fresh public UUID.
func (r *WalletWriteRepository) Save(ctx context.Context, ownerName, currency string) (*models.Wallet, error) {
	const query = `
		INSERT INTO wallets (uuid, owner_name, currency, balance, created_at, updated_at)
		VALUES ($1, $2, $3, 0, NOW(), NOW())
		RETURNING id, uuid, owner_name, currency, balance, created_at, updated_at
	`

	args := []any{uuid.New(), ownerName, strings.ToUpper(currency)}

	var wallet models.Wallet
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &wallet, query, args...)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// LockForUpdate retrieves a wallet row and holds an exclusive row lock on it
// until the surrounding transaction ends. Must be called with a transaction
// bound to the context.
func (r *WalletWriteRepository) LockForUpdate(ctx context.Context, id int64) (*models.Wallet, error) {
	const query = `
		SELECT id, uuid, owner_name, currency, balance, created_at, updated_at
		FROM wallets
		WHERE id = $1
		FOR UPDATE
	`

	var wallet models.Wallet
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &wallet, query, id)

	logger.Log.Debugw("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

// AddToBalance applies a signed delta to the wallet balance and returns the
// new balance. The caller is expected to hold the row lock.
func (r *WalletWriteRepository) AddToBalance(ctx context.Context, id int64, delta int64) (int64, error) {
	const query = `
		UPDATE wallets
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING balance
	`

	var balance int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &balance, query, delta, id)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{delta, id},
		"result", balance,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrWalletNotFound
		}
		return 0, err
	}
	return balance, nil
}
