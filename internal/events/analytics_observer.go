package events

import (
	"context"

	"github.com/SscSPs/transaction_processor/internal/core/domain"
)

// AnalyticsClient is satisfied by utils.PosthogClientWrapper.
type AnalyticsClient interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

// AnalyticsObserver forwards ledger activity as product analytics events keyed by account.
// Amounts are sent as strings to keep decimal precision.
type AnalyticsObserver struct {
	client AnalyticsClient
}

var _ Observer = (*AnalyticsObserver)(nil)

func NewAnalyticsObserver(client AnalyticsClient) *AnalyticsObserver {
	return &AnalyticsObserver{client: client}
}

func (o *AnalyticsObserver) Name() string { return "analytics" }

func (o *AnalyticsObserver) OnTransactionProcessed(_ context.Context, e domain.TransactionProcessed) error {
	o.client.Enqueue(e.AggregateID(), "ledger_"+string(e.Kind()), map[string]any{
		"operation":    e.Entry.Operation.String(),
		"amount":       e.Entry.Amount.String(),
		"currency":     e.Entry.Currency,
		"status":       string(e.Entry.Status),
		"reference_id": e.Entry.ReferenceID,
		"inbound":      e.Entry.Inbound,
	})
	return nil
}

func (o *AnalyticsObserver) OnAccountBlocked(_ context.Context, e domain.AccountBlocked) error {
	o.status(e)
	return nil
}

func (o *AnalyticsObserver) OnAccountActivated(_ context.Context, e domain.AccountActivated) error {
	o.status(e)
	return nil
}

func (o *AnalyticsObserver) OnAccountDeactivated(_ context.Context, e domain.AccountDeactivated) error {
	o.status(e)
	return nil
}

func (o *AnalyticsObserver) status(e domain.Event) {
	o.client.Enqueue(e.AggregateID(), "ledger_"+string(e.Kind()), map[string]any{
		"occurred_on": e.OccurredOn(),
	})
}
