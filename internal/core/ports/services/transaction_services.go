package services

import (
	"context"
	"time"

	"github.com/SscSPs/transaction_processor/internal/core/domain"
)

// TransactionSvcFacade is the single entry point of the ledger workflow.
type TransactionSvcFacade interface {
	// ProcessTransaction applies cmd idempotently. Concurrent modifications are retried a bounded
	// number of times before apperrors.ErrConcurrencyConflict is returned.
	ProcessTransaction(ctx context.Context, cmd domain.TransactionCommand) (*domain.TransactionResult, error)
}

// EventPublisher accepts committed domain events for asynchronous dispatch.
type EventPublisher interface {
	Publish(events ...domain.Event) error
}

// LedgerMetrics records workflow outcomes.
type LedgerMetrics interface {
	ObserveTransaction(operation domain.OperationKind, outcome string, duration time.Duration)
	IncConcurrencyRetry(operation domain.OperationKind)
	IncTransferReversalNoop()
}
