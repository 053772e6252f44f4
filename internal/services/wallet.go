package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segmentio/kafka-go"

	"walletledger/internal/logger"
	"walletledger/internal/models"
	"walletledger/internal/repositories"
)

var (
	// ErrInvalidAmount is returned when an operation amount is not strictly positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInsufficientFunds is returned when a withdrawal or transfer would
	// drive the source balance negative. No state is mutated.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrSameWalletTransfer is returned when transfer source and target are identical.
	ErrSameWalletTransfer = errors.New("cannot transfer to the same wallet")

	// ErrCurrencyMismatch is returned for transfers between wallets of different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrWalletNotFound is returned when a wallet reference does not resolve.
	ErrWalletNotFound = repositories.ErrWalletNotFound
)

// WalletReader defines wallet read access.
type WalletReader interface {
	GetByID(ctx context.Context, id int64) (*models.Wallet, error)                 // Returns a wallet without locking it
	List(ctx context.Context, filter models.WalletFilter) ([]models.Wallet, error) // Lists wallets matching the filter
}

// WalletWriter defines wallet write access. LockForUpdate and AddToBalance
// must be called inside a transaction bound to the context.
type WalletWriter interface {
	Save(ctx context.Context, ownerName, currency string) (*models.Wallet, error) // Creates a wallet with zero balance
	LockForUpdate(ctx context.Context, id int64) (*models.Wallet, error)          // Locks the wallet row exclusively
	AddToBalance(ctx context.Context, id int64, delta int64) (int64, error)       // Applies a signed balance delta
}

// LedgerReader defines ledger entry read access.
type LedgerReader interface {
	GetByGroupID(ctx context.Context, groupID uuid.UUID) ([]models.LedgerEntry, error)                        // Entries of one operation, in creation order
	ListByWallet(ctx context.Context, walletID int64, filter models.EntryFilter) ([]models.LedgerEntry, error) // A wallet's entries, newest first
}

// LedgerWriter appends ledger entries.
type LedgerWriter interface {
	Save(ctx context.Context, entry *models.LedgerEntry) error // Inserts an entry, filling id and timestamp
}

// IdempotencyReader reads idempotency records.
type IdempotencyReader interface {
	GetByKey(ctx context.Context, key string) (*models.IdempotencyRecord, error) // Returns nil when the key is unknown
}

// IdempotencyWriter creates idempotency records.
type IdempotencyWriter interface {
	Save(ctx context.Context, rec *models.IdempotencyRecord) error // Fails with ErrAlreadyRegistered on key reuse
}

// IdempotencyCache caches idempotency records for the replay fast path.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) (*models.IdempotencyRecord, error) // Returns nil on a cache miss
	Set(ctx context.Context, rec *models.IdempotencyRecord) error           // Caches a record
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// WalletService is the transaction engine. It exclusively owns writes to
// wallet balances and the creation of ledger entries and idempotency records.
// All coordination happens through the store's row locks and atomic commits;
// the service itself holds no mutable state.
type WalletService struct {
	db          *sqlx.DB
	walletRead  WalletReader
	walletWrite WalletWriter
	ledgerRead  LedgerReader
	ledgerWrite LedgerWriter
	idemRead    IdempotencyReader
	idemWrite   IdempotencyWriter
	idemCache   IdempotencyCache
	kafkaWriter KafkaWriter
}

// NewWalletService creates a new WalletService. idemCache and kafkaWriter are
// optional; nil disables the replay cache and event publishing respectively.
func NewWalletService(
	db *sqlx.DB,
	walletRead WalletReader,
	walletWrite WalletWriter,
	ledgerRead LedgerReader,
	ledgerWrite LedgerWriter,
	idemRead IdempotencyReader,
	idemWrite IdempotencyWriter,
	idemCache IdempotencyCache,
	kafkaWriter KafkaWriter,
) *WalletService {
	return &WalletService{
		db:          db,
		walletRead:  walletRead,
		walletWrite: walletWrite,
		ledgerRead:  ledgerRead,
		ledgerWrite: ledgerWrite,
		idemRead:    idemRead,
		idemWrite:   idemWrite,
		idemCache:   idemCache,
		kafkaWriter: kafkaWriter,
	}
}

// Deposit credits a wallet and records a single deposit ledger entry.
func (s *WalletService) Deposit(ctx context.Context, walletID int64, amountMinor int64, idempotencyKey string) ([]models.LedgerEntry, error) {
	if amountMinor <= 0 {
		return nil, ErrInvalidAmount
	}

	if idempotencyKey != "" {
		entries, ok, err := s.replayedEntries(ctx, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if ok {
			logger.Log.Infow("idempotent replay", "key", idempotencyKey, "operation", "deposit")
			return entries, nil
		}
	}

	groupID := uuid.New()
	var entry models.LedgerEntry
	var rec *models.IdempotencyRecord

	err := s.runInTx(ctx, func(ctx context.Context) error {
		w, err := s.walletWrite.LockForUpdate(ctx, walletID)
		if err != nil {
			return err
		}

		if _, err := s.walletWrite.AddToBalance(ctx, w.ID, amountMinor); err != nil {
			return err
		}

		entry = models.LedgerEntry{
			GroupID:  groupID,
			WalletID: w.ID,
			Type:     models.EntryDeposit,
			Amount:   amountMinor,
			Currency: w.Currency,
		}
		if idempotencyKey != "" {
			entry.IdempotencyKey = &idempotencyKey
		}
		if err := s.ledgerWrite.Save(ctx, &entry); err != nil {
			return err
		}

		if idempotencyKey != "" {
			rec, err = s.registerKey(ctx, idempotencyKey, groupID,
				fmt.Sprintf("/wallets/%d/deposit", w.ID),
				map[string]int64{"entry_id": entry.ID})
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyRegistered) {
			return s.winnerEntries(ctx, idempotencyKey)
		}
		return nil, err
	}

	entries := []models.LedgerEntry{entry}
	s.finalize(ctx, rec, "deposit", entries)
	return entries, nil
}

// Withdraw debits a wallet and records a single withdrawal ledger entry.
// Fails with ErrInsufficientFunds when the balance cannot cover the amount.
func (s *WalletService) Withdraw(ctx context.Context, walletID int64, amountMinor int64, idempotencyKey string) ([]models.LedgerEntry, error) {
	if amountMinor <= 0 {
		return nil, ErrInvalidAmount
	}

	if idempotencyKey != "" {
		entries, ok, err := s.replayedEntries(ctx, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if ok {
			logger.Log.Infow("idempotent replay", "key", idempotencyKey, "operation", "withdraw")
			return entries, nil
		}
	}

	groupID := uuid.New()
	var entry models.LedgerEntry
	var rec *models.IdempotencyRecord

	err := s.runInTx(ctx, func(ctx context.Context) error {
		w, err := s.walletWrite.LockForUpdate(ctx, walletID)
		if err != nil {
			return err
		}

		if w.Balance < amountMinor {
			logger.Log.Warnw("insufficient funds",
				"wallet_id", w.ID, "balance", w.Balance, "requested", amountMinor)
			return ErrInsufficientFunds
		}

		if _, err := s.walletWrite.AddToBalance(ctx, w.ID, -amountMinor); err != nil {
			return err
		}

		entry = models.LedgerEntry{
			GroupID:  groupID,
			WalletID: w.ID,
			Type:     models.EntryWithdrawal,
			Amount:   amountMinor,
			Currency: w.Currency,
		}
		if idempotencyKey != "" {
			entry.IdempotencyKey = &idempotencyKey
		}
		if err := s.ledgerWrite.Save(ctx, &entry); err != nil {
			return err
		}

		if idempotencyKey != "" {
			rec, err = s.registerKey(ctx, idempotencyKey, groupID,
				fmt.Sprintf("/wallets/%d/withdraw", w.ID),
				map[string]int64{"entry_id": entry.ID})
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyRegistered) {
			return s.winnerEntries(ctx, idempotencyKey)
		}
		return nil, err
	}

	entries := []models.LedgerEntry{entry}
	s.finalize(ctx, rec, "withdraw", entries)
	return entries, nil
}

// Transfer moves funds between two wallets of the same currency, recording a
// transfer_debit entry on the source and a transfer_credit entry on the target
// under one group id. Returns [debit, credit] in that order.
func (s *WalletService) Transfer(ctx context.Context, sourceID, targetID int64, amountMinor int64, idempotencyKey string) ([]models.LedgerEntry, error) {
	if amountMinor <= 0 {
		return nil, ErrInvalidAmount
	}
	if sourceID == targetID {
		return nil, ErrSameWalletTransfer
	}

	source, err := s.walletRead.GetByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	target, err := s.walletRead.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if source.Currency != target.Currency {
		return nil, ErrCurrencyMismatch
	}

	if idempotencyKey != "" {
		entries, ok, err := s.replayedEntries(ctx, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if ok {
			logger.Log.Infow("idempotent replay", "key", idempotencyKey, "operation", "transfer")
			return entries, nil
		}
	}

	groupID := uuid.New()
	var debit, credit models.LedgerEntry
	var rec *models.IdempotencyRecord

	err = s.runInTx(ctx, func(ctx context.Context) error {
		// Lock both rows in ascending id order regardless of direction.
		// The fixed global order rules out circular waits between two
		// concurrent transfers touching the same wallet pair.
		firstID, secondID := sourceID, targetID
		if firstID > secondID {
			firstID, secondID = secondID, firstID
		}

		first, err := s.walletWrite.LockForUpdate(ctx, firstID)
		if err != nil {
			return err
		}
		second, err := s.walletWrite.LockForUpdate(ctx, secondID)
		if err != nil {
			return err
		}

		src, tgt := first, second
		if first.ID != sourceID {
			src, tgt = second, first
		}

		// Re-verify under the lock; the pre-lock read may be stale.
		if src.Balance < amountMinor {
			logger.Log.Warnw("insufficient funds",
				"wallet_id", src.ID, "balance", src.Balance, "requested", amountMinor)
			return ErrInsufficientFunds
		}

		if _, err := s.walletWrite.AddToBalance(ctx, src.ID, -amountMinor); err != nil {
			return err
		}
		if _, err := s.walletWrite.AddToBalance(ctx, tgt.ID, amountMinor); err != nil {
			return err
		}

		debit = models.LedgerEntry{
			GroupID:         groupID,
			WalletID:        src.ID,
			Type:            models.EntryTransferDebit,
			Amount:          amountMinor,
			Currency:        src.Currency,
			RelatedWalletID: &tgt.ID,
		}
		credit = models.LedgerEntry{
			GroupID:         groupID,
			WalletID:        tgt.ID,
			Type:            models.EntryTransferCredit,
			Amount:          amountMinor,
			Currency:        tgt.Currency,
			RelatedWalletID: &src.ID,
		}
		if idempotencyKey != "" {
			debit.IdempotencyKey = &idempotencyKey
			credit.IdempotencyKey = &idempotencyKey
		}

		if err := s.ledgerWrite.Save(ctx, &debit); err != nil {
			return err
		}
		if err := s.ledgerWrite.Save(ctx, &credit); err != nil {
			return err
		}

		if idempotencyKey != "" {
			rec, err = s.registerKey(ctx, idempotencyKey, groupID, "/transfers",
				map[string]int64{"debit_id": debit.ID, "credit_id": credit.ID})
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyRegistered) {
			return s.winnerEntries(ctx, idempotencyKey)
		}
		return nil, err
	}

	entries := []models.LedgerEntry{debit, credit}
	s.finalize(ctx, rec, "transfer", entries)
	return entries, nil
}

// CreateWallet creates a wallet with zero balance.
func (s *WalletService) CreateWallet(ctx context.Context, ownerName, currency string) (*models.Wallet, error) {
	wallet, err := s.walletWrite.Save(ctx, ownerName, currency)
	if err != nil {
		logger.Log.Errorw("failed to create wallet", "owner_name", ownerName, "currency", currency, "error", err)
		return nil, err
	}
	return wallet, nil
}

// GetWallet returns a wallet by id.
func (s *WalletService) GetWallet(ctx context.Context, id int64) (*models.Wallet, error) {
	return s.walletRead.GetByID(ctx, id)
}

// ListWallets returns wallets matching the filter.
func (s *WalletService) ListWallets(ctx context.Context, filter models.WalletFilter) ([]models.Wallet, error) {
	return s.walletRead.List(ctx, filter)
}

// ListTransactions returns a wallet's ledger entries matching the filter.
func (s *WalletService) ListTransactions(ctx context.Context, walletID int64, filter models.EntryFilter) ([]models.LedgerEntry, error) {
	if _, err := s.walletRead.GetByID(ctx, walletID); err != nil {
		return nil, err
	}
	return s.ledgerRead.ListByWallet(ctx, walletID, filter)
}

// runInTx executes fn with a transaction bound to the context and commits on
// success. Any error rolls back the whole unit; no partial state survives.
func (s *WalletService) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(repositories.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Log.Errorw("transaction rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// replayedEntries looks a key up on the fast path (cache first, then store)
// and returns the recorded operation's entries when the key is already bound.
func (s *WalletService) replayedEntries(ctx context.Context, key string) ([]models.LedgerEntry, bool, error) {
	rec, err := s.lookupRecord(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if rec == nil {
		return nil, false, nil
	}

	entries, err := s.ledgerRead.GetByGroupID(ctx, rec.GroupID)
	if err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

func (s *WalletService) lookupRecord(ctx context.Context, key string) (*models.IdempotencyRecord, error) {
	if s.idemCache != nil {
		// Cache errors fall through to the authoritative store.
		if rec, err := s.idemCache.Get(ctx, key); err == nil && rec != nil {
			return rec, nil
		}
	}
	return s.idemRead.GetByKey(ctx, key)
}

// registerKey binds the key to the group inside the current transaction.
func (s *WalletService) registerKey(ctx context.Context, key string, groupID uuid.UUID, path string, response any) (*models.IdempotencyRecord, error) {
	payload, err := json.Marshal(response)
	if err != nil {
		return nil, err
	}

	rec := &models.IdempotencyRecord{
		Key:      key,
		Method:   http.MethodPost,
		Path:     path,
		GroupID:  groupID,
		Response: payload,
	}
	if err := s.idemWrite.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// winnerEntries resolves the benign race where two requests carrying the same
// new key both passed the existence check: our registration lost the unique
// constraint, our work was rolled back, so return the winner's entries.
func (s *WalletService) winnerEntries(ctx context.Context, key string) ([]models.LedgerEntry, error) {
	logger.Log.Infow("idempotency race lost, returning winner's entries", "key", key)

	rec, err := s.idemRead.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("idempotency key %q registered concurrently but not found", key)
	}
	return s.ledgerRead.GetByGroupID(ctx, rec.GroupID)
}

// finalize caches the idempotency record and publishes the operation event
// after a fresh commit. Failures here never fail the operation.
func (s *WalletService) finalize(ctx context.Context, rec *models.IdempotencyRecord, operation string, entries []models.LedgerEntry) {
	if rec != nil && s.idemCache != nil {
		if err := s.idemCache.Set(ctx, rec); err != nil {
			logger.Log.Warnw("failed to cache idempotency record", "key", rec.Key, "error", err)
		}
	}
	s.publishOperation(ctx, operation, entries)
}
