package events

import (
	"context"

	"github.com/SscSPs/transaction_processor/internal/core/domain"
)

// Observer receives committed domain events, one method per event variant.
// Returning an error only gets it logged; the event is not retried.
type Observer interface {
	Name() string
	OnTransactionProcessed(ctx context.Context, event domain.TransactionProcessed) error
	OnAccountBlocked(ctx context.Context, event domain.AccountBlocked) error
	OnAccountActivated(ctx context.Context, event domain.AccountActivated) error
	OnAccountDeactivated(ctx context.Context, event domain.AccountDeactivated) error
}

// NopObserver implements every Observer method as a no-op. Embed it to handle a subset of events.
type NopObserver struct{}

func (NopObserver) Name() string { return "nop" }

func (NopObserver) OnTransactionProcessed(context.Context, domain.TransactionProcessed) error {
	return nil
}

func (NopObserver) OnAccountBlocked(context.Context, domain.AccountBlocked) error { return nil }

func (NopObserver) OnAccountActivated(context.Context, domain.AccountActivated) error { return nil }

func (NopObserver) OnAccountDeactivated(context.Context, domain.AccountDeactivated) error {
	return nil
}
