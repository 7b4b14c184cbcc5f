package repositories

import (
	"context"

	"github.com/SscSPs/transaction_processor/internal/core/domain"
)

type ClientReader interface {
	// FindClientByID returns apperrors.ErrNotFound when absent.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
}

type ClientWriter interface {
	// SaveClientWithAccount creates the client when missing, links the account to it and inserts
	// the account, all atomically.
	SaveClientWithAccount(ctx context.Context, client domain.Client, account domain.Account) error
}

type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
