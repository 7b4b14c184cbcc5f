package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// UnitOfWork scopes the statements of one ledger commit to a single database transaction.
// Rollback after Commit is a no-op, so callers defer it unconditionally.
type UnitOfWork interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}
