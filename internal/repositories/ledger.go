package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"walletledger/internal/logger"
	"walletledger/internal/models"
)

// LedgerEntryWriteRepository appends immutable ledger entries.
type LedgerEntryWriteRepository struct {
	db *sqlx.DB
}

func NewLedgerEntryWriteRepository(db *sqlx.DB) *LedgerEntryWriteRepository {
	return &LedgerEntryWriteRepository{db: db}
}

// Save inserts a ledger entry and fills in its store-assigned id and creation
// timestamp. Entries are append-only; there is no update path.
func (r *LedgerEntryWriteRepository) Save(ctx context.Context, entry *models.LedgerEntry) error {
	const query = `
		INSERT INTO ledger_entries
			(group_id, wallet_id, type, amount, currency, related_wallet_id, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	args := []any{
		entry.GroupID, entry.WalletID, entry.Type, entry.Amount,
		entry.Currency, entry.RelatedWalletID, entry.IdempotencyKey,
	}

	row := executor(ctx, r.db).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&entry.ID, &entry.CreatedAt)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	return err
}

// LedgerEntryReadRepository reads ledger entries.
type LedgerEntryReadRepository struct {
	db *sqlx.DB
}

func NewLedgerEntryReadRepository(db *sqlx.DB) *LedgerEntryReadRepository {
	return &LedgerEntryReadRepository{db: db}
}

// GetByGroupID returns all entries of one operation group in creation order
// (for transfers: debit first, credit second).
func (r *LedgerEntryReadRepository) GetByGroupID(ctx context.Context, groupID uuid.UUID) ([]models.LedgerEntry, error) {
	const query = `
		SELECT id, group_id, wallet_id, type, amount, currency, related_wallet_id, idempotency_key, created_at
		FROM ledger_entries
		WHERE group_id = $1
		ORDER BY id
	`

	var entries []models.LedgerEntry
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &entries, query, groupID)

	logger.Log.Debugw("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{groupID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByWallet returns a wallet's entries matching the filter, newest first.
func (r *LedgerEntryReadRepository) ListByWallet(ctx context.Context, walletID int64, filter models.EntryFilter) ([]models.LedgerEntry, error) {
	const query = `
		SELECT id, group_id, wallet_id, type, amount, currency, related_wallet_id, idempotency_key, created_at
		FROM ledger_entries
		WHERE wallet_id = $1
		  AND ($2 = '' OR type = $2)
		  AND ($3::TIMESTAMPTZ IS NULL OR created_at >= $3)
		  AND ($4::TIMESTAMPTZ IS NULL OR created_at <= $4)
		ORDER BY created_at DESC
		LIMIT $5 OFFSET $6
	`

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	args := []any{walletID, filter.Type, filter.From, filter.To, perPage, (page - 1) * perPage}

	entries := make([]models.LedgerEntry, 0)
	err := r.db.SelectContext(ctx, &entries, query, args...)

	logger.Log.Debugw("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return entries, nil
}
