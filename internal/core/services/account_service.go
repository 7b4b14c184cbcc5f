package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/transaction_processor/internal/apperrors"
	"github.com/SscSPs/transaction_processor/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_processor/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transaction_processor/internal/core/ports/services"
	"github.com/SscSPs/transaction_processor/internal/dto"
	"github.com/SscSPs/transaction_processor/internal/utils/pagination"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	clientRepo  portsrepo.ClientRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	publisher   portssvc.EventPublisher
	now         func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountEventPublisher publishes lifecycle events after status changes are committed.
func WithAccountEventPublisher(p portssvc.EventPublisher) AccountServiceOption {
	return func(s *accountService) {
		s.publisher = p
	}
}

func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: accountRepo,
		clientRepo:  clientRepo,
		ledgerRepo:  ledgerRepo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens an account for req.ClientID, creating the client when it does not exist yet.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	if err := domain.ValidateClientID(req.ClientID); err != nil {
		return nil, err
	}
	now := s.now().UTC()

	client, err := s.clientRepo.FindClientByID(ctx, req.ClientID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		client, err = domain.NewClient(req.ClientID, now)
		if err != nil {
			return nil, err
		}
		s.LogInfo(ctx, "Creating client on first account", slog.String("client_id", req.ClientID))
	case err != nil:
		s.LogError(ctx, err, "Failed to look up client", slog.String("client_id", req.ClientID))
		return nil, err
	}

	account, err := domain.NewAccount(domain.NewAccountID(), req.ClientID, req.InitialBalance, req.CreditLimit, req.Currency, now)
	if err != nil {
		return nil, err
	}
	if actorID != "" {
		account.CreatedBy = actorID
		account.LastUpdatedBy = actorID
	}
	client.AddAccount(account.AccountID, now)

	if err := s.clientRepo.SaveClientWithAccount(ctx, *client, *account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("client_id", req.ClientID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("client_id", req.ClientID),
		slog.String("currency", account.Currency))
	return account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListClientAccounts(ctx context.Context, clientID string) ([]domain.Account, error) {
	if _, err := s.clientRepo.FindClientByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountsByClientID(ctx, clientID)
}

// ListAccountTransactions fetches one extra row to know whether a next page exists.
func (s *accountService) ListAccountTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	var cursor *portsrepo.EntryCursor
	if params.NextToken != nil && *params.NextToken != "" {
		ts, entryID, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid next token: %v", apperrors.ErrValidation, err)
		}
		cursor = &portsrepo.EntryCursor{Timestamp: ts, EntryID: entryID}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, err := s.ledgerRepo.ListEntriesByAccount(ctx, accountID, limit+1, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account transactions", slog.String("account_id", accountID))
		return nil, err
	}

	resp := &dto.ListTransactionsResponse{Transactions: make([]dto.LedgerEntryResponse, 0, min(len(entries), limit))}
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.Timestamp, last.EntryID)
		resp.NextToken = &token
		entries = entries[:limit]
	}
	for _, e := range entries {
		resp.Transactions = append(resp.Transactions, dto.ToLedgerEntryResponse(e))
	}
	return resp, nil
}

// ChangeAccountStatus applies action and commits it under the same optimistic check as transactions.
func (s *accountService) ChangeAccountStatus(ctx context.Context, accountID string, action domain.StatusAction, actorID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	switch action {
	case domain.ActionBlock:
		err = account.Block()
	case domain.ActionActivate:
		err = account.Activate()
	case domain.ActionDeactivate:
		err = account.Deactivate()
	default:
		err = fmt.Errorf("%w: unknown status action %q", apperrors.ErrValidation, action)
	}
	if err != nil {
		s.LogDebug(ctx, "Status change refused", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, err
	}

	events := account.PullEvents()
	if len(events) == 0 {
		return account, nil
	}
	if actorID != "" {
		account.LastUpdatedBy = actorID
	}
	if err := s.ledgerRepo.CommitAccounts(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to commit status change", slog.String("account_id", accountID))
		return nil, err
	}
	account.MarkCommitted()

	if s.publisher != nil {
		if err := s.publisher.Publish(events...); err != nil {
			s.LogError(ctx, err, "Failed to publish status events", slog.String("account_id", accountID))
		}
	}
	s.LogInfo(ctx, "Account status changed",
		slog.String("account_id", accountID),
		slog.String("status", string(account.Status)))
	return account, nil
}
