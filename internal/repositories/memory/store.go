package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/transaction_processor/internal/apperrors"
	"github.com/SscSPs/transaction_processor/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_processor/internal/core/ports/repositories"
)

// Store keeps accounts, clients and ledger entries in process memory with the same
// guarantees as the relational store: optimistic balance and status checks and unique idempotency keys.
type Store struct {
	mu          sync.RWMutex
	accounts    map[string]domain.Account
	clients     map[string]domain.Client
	entries     []domain.LedgerEntry
	byReference map[string]int
}

func NewStore() *Store {
	return &Store{
		accounts:    make(map[string]domain.Account),
		clients:     make(map[string]domain.Client),
		byReference: make(map[string]int),
	}
}

var (
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.ClientRepositoryFacade  = (*Store)(nil)
	_ portsrepo.LedgerRepositoryFacade  = (*Store)(nil)
	_ portsrepo.HealthChecker           = (*Store)(nil)
)

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: store,
		ClientRepo:  store,
		LedgerRepo:  store,
		Health:      store,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
	}
	acc := detach(stored)
	return &acc, nil
}

func (s *Store) FindAccountsByClientID(ctx context.Context, clientID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Account
	for _, acc := range s.accounts {
		if acc.ClientID == clientID {
			result = append(result, detach(acc))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].AccountID < result[j].AccountID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	s.accounts[account.AccountID] = detach(account)
	return nil
}

func (s *Store) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[clientID]
	if !ok {
		return nil, fmt.Errorf("%w: client %s", apperrors.ErrNotFound, clientID)
	}
	c.AccountIDs = append([]string(nil), c.AccountIDs...)
	return &c, nil
}

func (s *Store) SaveClientWithAccount(ctx context.Context, client domain.Client, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	client.AccountIDs = append([]string(nil), client.AccountIDs...)
	s.clients[client.ClientID] = client
	s.accounts[account.AccountID] = detach(account)
	return nil
}

func (s *Store) FindEntryByReference(ctx context.Context, referenceID string) (*domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byReference[referenceID]
	if !ok {
		return nil, fmt.Errorf("%w: reference %s", apperrors.ErrNotFound, referenceID)
	}
	e := s.entries[idx]
	return &e, nil
}

func (s *Store) FindAccountHistoryForReference(ctx context.Context, accountID, referenceID string) ([]domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.LedgerEntry
	for _, e := range s.entries {
		if e.AccountID == accountID && (e.ReferenceID == referenceID || e.OriginalReferenceID == referenceID) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *Store) ListEntriesByAccount(ctx context.Context, accountID string, limit int, after *portsrepo.EntryCursor) ([]domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.LedgerEntry
	for _, e := range s.entries {
		if e.AccountID != accountID {
			continue
		}
		if after != nil && !entryBefore(e, after) {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].EntryID > matched[j].EntryID
		}
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *Store) CommitAccounts(ctx context.Context, accounts ...*domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	for _, acc := range accounts {
		stored, ok := s.accounts[acc.AccountID]
		if !ok {
			return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, acc.AccountID)
		}
		if !acc.Version.Matches(stored.Balance, stored.ReservedBalance, stored.Status) {
			return fmt.Errorf("%w: account %s", apperrors.ErrConcurrencyConflict, acc.AccountID)
		}
		for _, e := range acc.PendingEntries() {
			if e.Inbound {
				continue
			}
			if _, taken := s.byReference[e.ReferenceID]; taken {
				return fmt.Errorf("%w: reference %s already recorded", apperrors.ErrConcurrencyConflict, e.ReferenceID)
			}
			if _, dup := seen[e.ReferenceID]; dup {
				return fmt.Errorf("%w: reference %s repeated in unit", apperrors.ErrDuplicate, e.ReferenceID)
			}
			seen[e.ReferenceID] = struct{}{}
		}
	}

	for _, acc := range accounts {
		for _, e := range acc.PendingEntries() {
			s.entries = append(s.entries, e)
			if !e.Inbound {
				s.byReference[e.ReferenceID] = len(s.entries) - 1
			}
		}
		s.accounts[acc.AccountID] = detach(*acc)
	}
	return nil
}

// detach strips the loaded history, pending entries and events so the copy only carries state.
func detach(acc domain.Account) domain.Account {
	acc.Entries = nil
	acc.MarkCommitted()
	_ = acc.PullEvents()
	return acc
}

func entryBefore(e domain.LedgerEntry, c *portsrepo.EntryCursor) bool {
	if e.Timestamp.Equal(c.Timestamp) {
		return e.EntryID < c.EntryID
	}
	return e.Timestamp.Before(c.Timestamp)
}
