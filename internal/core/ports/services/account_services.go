package services

import (
	"context"

	"github.com/SscSPs/transaction_processor/internal/core/domain"
	"github.com/SscSPs/transaction_processor/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListClientAccounts returns every account opened by a client.
	ListClientAccounts(ctx context.Context, clientID string) ([]domain.Account, error)

	// ListAccountTransactions pages through an account's ledger entries, newest first.
	ListAccountTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount opens an account, creating its client on first use.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)

	// ChangeAccountStatus applies a lifecycle transition and publishes the resulting event.
	ChangeAccountStatus(ctx context.Context, accountID string, action domain.StatusAction, actorID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
