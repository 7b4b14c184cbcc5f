package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/transaction_processor/internal/core/domain"
)

// EntryCursor marks the position after which the next page of entries starts.
type EntryCursor struct {
	Timestamp time.Time
	EntryID   string
}

// LedgerEntryReader defines read operations for ledger entries.
type LedgerEntryReader interface {
	// FindEntryByReference returns the entry registered under an idempotency key, ignoring the
	// inbound leg of transfers. Returns apperrors.ErrNotFound when absent.
	FindEntryByReference(ctx context.Context, referenceID string) (*domain.LedgerEntry, error)

	// FindAccountHistoryForReference returns the account's entries recorded under referenceID
	// together with reversals pointing at it.
	FindAccountHistoryForReference(ctx context.Context, accountID, referenceID string) ([]domain.LedgerEntry, error)

	// ListEntriesByAccount lists entries newest first. A nil cursor starts from the newest entry.
	ListEntriesByAccount(ctx context.Context, accountID string, limit int, after *EntryCursor) ([]domain.LedgerEntry, error)
}

// LedgerWriter persists the outcome of one ledger operation as a single unit.
type LedgerWriter interface {
	// CommitAccounts inserts every pending entry of the given accounts and updates their balances
	// and status. Each account update is guarded by its Version; a mismatch, or an idempotency key
	// already taken, rolls back the whole unit and returns apperrors.ErrConcurrencyConflict.
	CommitAccounts(ctx context.Context, accounts ...*domain.Account) error
}

type LedgerRepositoryFacade interface {
	LedgerEntryReader
	LedgerWriter
}
