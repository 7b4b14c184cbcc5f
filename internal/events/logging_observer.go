package events

import (
	"context"
	"log/slog"

	"github.com/SscSPs/transaction_processor/internal/core/domain"
)

// LoggingObserver writes one structured log line per event.
type LoggingObserver struct {
	logger *slog.Logger
}

var _ Observer = (*LoggingObserver)(nil)

func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

func (o *LoggingObserver) Name() string { return "logging" }

func (o *LoggingObserver) OnTransactionProcessed(ctx context.Context, e domain.TransactionProcessed) error {
	o.logger.InfoContext(ctx, "Transaction processed",
		slog.String("account_id", e.AggregateID()),
		slog.String("entry_id", e.Entry.EntryID),
		slog.String("operation", e.Entry.Operation.String()),
		slog.String("reference_id", e.Entry.ReferenceID),
		slog.String("amount", e.Entry.Amount.String()),
		slog.String("balance", e.Balance.String()),
		slog.String("reserved_balance", e.ReservedBalance.String()),
		slog.String("available_balance", e.AvailableBalance.String()))
	return nil
}

func (o *LoggingObserver) OnAccountBlocked(ctx context.Context, e domain.AccountBlocked) error {
	o.logStatus(ctx, e)
	return nil
}

func (o *LoggingObserver) OnAccountActivated(ctx context.Context, e domain.AccountActivated) error {
	o.logStatus(ctx, e)
	return nil
}

func (o *LoggingObserver) OnAccountDeactivated(ctx context.Context, e domain.AccountDeactivated) error {
	o.logStatus(ctx, e)
	return nil
}

func (o *LoggingObserver) logStatus(ctx context.Context, e domain.Event) {
	o.logger.InfoContext(ctx, "Account status changed",
		slog.String("account_id", e.AggregateID()),
		slog.String("event", string(e.Kind())),
		slog.Time("occurred_on", e.OccurredOn()))
}
