package repositories

import (
	"context"

	"github.com/SscSPs/transaction_processor/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID returns apperrors.ErrAccountNotFound when absent.
	// The returned account's Version reflects the stored balances and status.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByClientID lists a client's accounts ordered by creation time.
	FindAccountsByClientID(ctx context.Context, clientID string) ([]domain.Account, error)
}

// AccountWriter inserts accounts. Balance and status changes go through LedgerWriter.CommitAccounts
// so they are covered by the optimistic check.
type AccountWriter interface {
	// SaveAccount inserts a new account; an existing id yields apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error
}

type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
