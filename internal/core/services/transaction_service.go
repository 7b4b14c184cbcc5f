package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/transaction_processor/internal/apperrors"
	"github.com/SscSPs/transaction_processor/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_processor/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transaction_processor/internal/core/ports/services"
	"github.com/cenkalti/backoff/v4"
)

// Outcome labels reported to LedgerMetrics.
const (
	outcomeSuccess  = "success"
	outcomeReplayed = "replayed"
	outcomeRejected = "rejected"
	outcomeConflict = "conflict"
	outcomeError    = "error"
)

type transactionService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	publisher   portssvc.EventPublisher
	metrics     portssvc.LedgerMetrics
	retry       RetryPolicy
	now         func() time.Time
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

func WithRetryPolicy(policy RetryPolicy) TransactionServiceOption {
	return func(s *transactionService) {
		if policy.MaxRetries < 0 {
			policy.MaxRetries = 0
		}
		s.retry = policy
	}
}

func WithLedgerMetrics(m portssvc.LedgerMetrics) TransactionServiceOption {
	return func(s *transactionService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewTransactionService wires the ledger workflow.
func NewTransactionService(accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerRepositoryFacade, publisher portssvc.EventPublisher, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		publisher:   publisher,
		metrics:     nopMetrics{},
		retry:       DefaultRetryPolicy(),
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// ProcessTransaction runs the workflow, restarting it from a fresh read when the commit loses
// an optimistic concurrency race. Any other error ends the run at once.
func (s *transactionService) ProcessTransaction(ctx context.Context, cmd domain.TransactionCommand) (*domain.TransactionResult, error) {
	start := s.now()
	logger := s.GetLogger(ctx).With(
		slog.String("operation", cmd.Operation.String()),
		slog.String("account_id", cmd.AccountID),
		slog.String("reference_id", cmd.ReferenceID))

	if err := validateCommand(cmd); err != nil {
		s.metrics.ObserveTransaction(cmd.Operation, outcomeRejected, s.now().Sub(start))
		logger.WarnContext(ctx, "Rejected transaction command", slog.String("error", err.Error()))
		return nil, err
	}

	var (
		result  *domain.TransactionResult
		retries int
	)
	operation := func() error {
		r, err := s.attempt(ctx, cmd)
		if err == nil {
			result = r
			return nil
		}
		if errors.Is(err, apperrors.ErrConcurrencyConflict) {
			return err
		}
		return backoff.Permanent(err)
	}
	notify := func(err error, delay time.Duration) {
		retries++
		s.metrics.IncConcurrencyRetry(cmd.Operation)
		logger.WarnContext(ctx, "Concurrency conflict, retrying transaction",
			slog.Int("retry", retries),
			slog.Int("max_retries", s.retry.MaxRetries),
			slog.Duration("delay", delay))
	}

	err := backoff.RetryNotify(operation, s.retry.BackOff(ctx), notify)
	switch {
	case err == nil:
		outcome := outcomeSuccess
		if result.Replayed {
			outcome = outcomeReplayed
		}
		s.metrics.ObserveTransaction(cmd.Operation, outcome, s.now().Sub(start))
		logger.InfoContext(ctx, "Transaction processed",
			slog.String("entry_id", result.EntryID),
			slog.Bool("replayed", result.Replayed),
			slog.Int("retries", retries))
		return result, nil
	case errors.Is(err, apperrors.ErrConcurrencyConflict):
		s.metrics.ObserveTransaction(cmd.Operation, outcomeConflict, s.now().Sub(start))
		logger.ErrorContext(ctx, "Transaction retries exhausted", slog.String("error", err.Error()), slog.Int("retries", retries))
	case errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) || apperrors.IsBusinessRule(err):
		s.metrics.ObserveTransaction(cmd.Operation, outcomeRejected, s.now().Sub(start))
		logger.WarnContext(ctx, "Transaction rejected", slog.String("error", err.Error()))
	default:
		s.metrics.ObserveTransaction(cmd.Operation, outcomeError, s.now().Sub(start))
		logger.ErrorContext(ctx, "Transaction failed", slog.String("error", err.Error()))
	}
	return nil, err
}

// attempt is one pass of the workflow: idempotency check, load, apply, commit, publish.
func (s *transactionService) attempt(ctx context.Context, cmd domain.TransactionCommand) (*domain.TransactionResult, error) {
	if replay, err := s.replay(ctx, cmd.ReferenceID); err != nil || replay != nil {
		return replay, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, cmd.AccountID)
	if err != nil {
		return nil, err
	}

	touched := []*domain.Account{account}
	var entry domain.LedgerEntry

	switch cmd.Operation {
	case domain.OperationCredit:
		entry, err = account.Credit(cmd.Amount, cmd.ReferenceID, cmd.Currency)
	case domain.OperationDebit:
		entry, err = account.Debit(cmd.Amount, cmd.ReferenceID, cmd.Currency)
	case domain.OperationReserve:
		entry, err = account.Reserve(cmd.Amount, cmd.ReferenceID, cmd.Currency)
	case domain.OperationCapture:
		entry, err = account.Capture(cmd.Amount, cmd.ReferenceID, cmd.Currency)
	case domain.OperationReversal:
		entry, err = s.reverse(ctx, account, cmd)
	case domain.OperationTransfer:
		var destination *domain.Account
		destination, err = s.accountRepo.FindAccountByID(ctx, cmd.DestinationAccountID)
		if err != nil {
			return nil, fmt.Errorf("destination: %w", err)
		}
		entry, _, err = account.TransferTo(destination, cmd.Amount, cmd.ReferenceID, cmd.Currency)
		touched = append(touched, destination)
	default:
		err = fmt.Errorf("%w: %s", apperrors.ErrOperationNotSupported, cmd.Operation)
	}
	if err != nil {
		return nil, err
	}

	for _, acc := range touched {
		acc.AnnotatePending(cmd.Metadata)
		if cmd.ActorID != "" {
			acc.LastUpdatedBy = cmd.ActorID
		}
	}
	// Cancellation is honoured up to here; past the commit the outcome is final.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.CommitAccounts(ctx, touched...); err != nil {
		return nil, err
	}

	for _, acc := range touched {
		acc.MarkCommitted()
	}
	s.publish(ctx, touched...)

	return domain.NewTransactionResult(entry, account, false), nil
}

// replay returns the stored outcome when referenceID was already processed.
func (s *transactionService) replay(ctx context.Context, referenceID string) (*domain.TransactionResult, error) {
	existing, err := s.ledgerRepo.FindEntryByReference(ctx, referenceID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	owner, err := s.accountRepo.FindAccountByID(ctx, existing.AccountID)
	if err != nil {
		return nil, err
	}
	s.LogDebug(ctx, "Idempotent replay of processed reference",
		slog.String("reference_id", referenceID),
		slog.String("entry_id", existing.EntryID))
	return domain.NewTransactionResult(*existing, owner, true), nil
}

func (s *transactionService) reverse(ctx context.Context, account *domain.Account, cmd domain.TransactionCommand) (domain.LedgerEntry, error) {
	history, err := s.ledgerRepo.FindAccountHistoryForReference(ctx, account.AccountID, cmd.OriginalReferenceID)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	account.AttachHistory(history...)

	entry, err := account.Reverse(cmd.OriginalReferenceID, cmd.ReferenceID, cmd.Currency)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	if entry.Metadata[domain.MetadataBalanceEffect] == domain.BalanceEffectNone {
		s.metrics.IncTransferReversalNoop()
		s.LogWarn(ctx, "Transfer reversal recorded without balance effect",
			slog.String("account_id", account.AccountID),
			slog.String("original_reference_id", cmd.OriginalReferenceID))
	}
	return entry, nil
}

// publish hands committed events to the dispatcher. The commit already happened, so a failure
// here is only logged.
func (s *transactionService) publish(ctx context.Context, accounts ...*domain.Account) {
	if s.publisher == nil {
		return
	}
	for _, acc := range accounts {
		events := acc.PullEvents()
		if err := s.publisher.Publish(events...); err != nil {
			s.LogError(ctx, err, "Failed to publish domain events",
				slog.String("account_id", acc.AccountID),
				slog.Int("events", len(events)))
		}
	}
}

func validateCommand(cmd domain.TransactionCommand) error {
	if !cmd.Operation.IsValid() {
		return fmt.Errorf("%w: %s", apperrors.ErrOperationNotSupported, cmd.Operation)
	}
	if strings.TrimSpace(cmd.AccountID) == "" {
		return fmt.Errorf("%w: account id is required", apperrors.ErrValidation)
	}
	if err := domain.ValidateReferenceID(cmd.ReferenceID); err != nil {
		return err
	}
	switch cmd.Operation {
	case domain.OperationTransfer:
		if strings.TrimSpace(cmd.DestinationAccountID) == "" {
			return fmt.Errorf("%w: destination account id is required for transfers", apperrors.ErrValidation)
		}
		if cmd.DestinationAccountID == cmd.AccountID {
			return fmt.Errorf("%w: destination account must differ from source", apperrors.ErrValidation)
		}
	case domain.OperationReversal:
		if strings.TrimSpace(cmd.OriginalReferenceID) == "" {
			return fmt.Errorf("%w: original reference id is required for reversals", apperrors.ErrValidation)
		}
		return nil
	}
	return domain.ValidatePositiveAmount(cmd.Amount)
}

type nopMetrics struct{}

func (nopMetrics) ObserveTransaction(domain.OperationKind, string, time.Duration) {}
func (nopMetrics) IncConcurrencyRetry(domain.OperationKind)                       {}
func (nopMetrics) IncTransferReversalNoop()                                       {}
