package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/transaction_processor/internal/apperrors"
	"github.com/SscSPs/transaction_processor/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_processor/internal/core/ports/repositories"
	"github.com/SscSPs/transaction_processor/internal/models"
	"github.com/SscSPs/transaction_processor/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, account_id, operation_type, amount, currency, reference_id, original_reference_id,
	counterparty_account_id, inbound, status, error_message, metadata, timestamp`

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// CommitAccounts writes the pending entries of every account and their new balances in one
// transaction. Account updates are conditional on the balances and status the account was read with.
func (r *PgxLedgerRepository) CommitAccounts(ctx context.Context, accounts ...*domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertQuery := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	updateQuery := `
		UPDATE accounts
		SET balance = $2, reserved_balance = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1 AND balance = $7 AND reserved_balance = $8 AND status = $9;
	`

	// Each queued statement remembers how to interpret its result.
	type queued struct {
		accountID string
		update    bool
	}
	batch := &pgx.Batch{}
	var order []queued
	for _, acc := range accounts {
		for _, entry := range acc.PendingEntries() {
			m := mapping.ToModelLedgerEntry(entry)
			if m.Metadata == nil {
				m.Metadata = map[string]string{}
			}
			batch.Queue(insertQuery,
				m.EntryID,
				m.AccountID,
				m.OperationType,
				m.Amount,
				m.Currency,
				m.ReferenceID,
				m.OriginalReferenceID,
				m.CounterpartyAccountID,
				m.Inbound,
				m.Status,
				m.ErrorMessage,
				m.Metadata,
				m.Timestamp,
			)
			order = append(order, queued{accountID: acc.AccountID})
		}

		ma := mapping.ToModelAccount(*acc)
		batch.Queue(updateQuery,
			ma.AccountID,
			ma.Balance,
			ma.ReservedBalance,
			ma.Status,
			ma.LastUpdatedAt,
			ma.LastUpdatedBy,
			acc.Version.Balance,
			acc.Version.ReservedBalance,
			string(acc.Version.Status),
		)
		order = append(order, queued{accountID: acc.AccountID, update: true})
	}

	br := tx.SendBatch(ctx, batch)
	for _, q := range order {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			if isUniqueViolation(err) {
				return conflictFromUnique(err)
			}
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to write ledger for account "+q.accountID, err)
		}
		if q.update && tag.RowsAffected() == 0 {
			br.Close()
			return fmt.Errorf("%w: account %s", apperrors.ErrConcurrencyConflict, q.accountID)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to close ledger batch", err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByReference returns the entry registered under referenceID, skipping inbound transfer legs.
func (r *PgxLedgerRepository) FindEntryByReference(ctx context.Context, referenceID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE reference_id = $1 AND NOT inbound;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, referenceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: reference %s", apperrors.ErrNotFound, referenceID)
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to find entry for reference "+referenceID, err)
	}
	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// FindAccountHistoryForReference returns the account's entries for referenceID and the reversals
// that point at it, oldest first.
func (r *PgxLedgerRepository) FindAccountHistoryForReference(ctx context.Context, accountID, referenceID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE account_id = $1 AND (reference_id = $2 OR original_reference_id = $2)
		ORDER BY timestamp, entry_id;
	`
	return r.queryEntries(ctx, "history for reference "+referenceID, query, accountID, referenceID)
}

// ListEntriesByAccount pages through an account's entries newest first.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, after *portsrepo.EntryCursor) ([]domain.LedgerEntry, error) {
	if after == nil {
		query := `
			SELECT ` + entryColumns + `
			FROM ledger_entries
			WHERE account_id = $1
			ORDER BY timestamp DESC, entry_id DESC
			LIMIT $2;
		`
		return r.queryEntries(ctx, "entries of account "+accountID, query, accountID, limit)
	}

	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE account_id = $1 AND (timestamp, entry_id) < ($2, $3)
		ORDER BY timestamp DESC, entry_id DESC
		LIMIT $4;
	`
	return r.queryEntries(ctx, "entries of account "+accountID, query, accountID, after.Timestamp.UTC(), after.EntryID, limit)
}

func (r *PgxLedgerRepository) queryEntries(ctx context.Context, what, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query "+what, err)
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan ledger entry", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating ledger entries", err)
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

func scanEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.AccountID,
		&m.OperationType,
		&m.Amount,
		&m.Currency,
		&m.ReferenceID,
		&m.OriginalReferenceID,
		&m.CounterpartyAccountID,
		&m.Inbound,
		&m.Status,
		&m.ErrorMessage,
		&m.Metadata,
		&m.Timestamp,
	)
	return m, err
}
