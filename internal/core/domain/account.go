package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/transaction_processor/internal/apperrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusBlocked  AccountStatus = "BLOCKED"
	StatusInactive AccountStatus = "INACTIVE"
)

// ConcurrencyToken holds the balances and status as they were read from storage.
// Writers only succeed when the stored values still match it.
type ConcurrencyToken struct {
	Balance         decimal.Decimal
	ReservedBalance decimal.Decimal
	Status          AccountStatus
}

// Matches reports whether stored state is still the state the token was taken from.
func (t ConcurrencyToken) Matches(balance, reserved decimal.Decimal, status AccountStatus) bool {
	return t.Balance.Equal(balance) && t.ReservedBalance.Equal(reserved) && t.Status == status
}

// Account is the aggregate that owns balances, status and the entries appended to it.
// All mutations go through its methods; each either applies completely or returns an error
// leaving the account untouched.
type Account struct {
	AccountID       string          `json:"accountID"`
	ClientID        string          `json:"clientID"`
	Currency        string          `json:"currency"`
	Balance         decimal.Decimal `json:"balance"`
	ReservedBalance decimal.Decimal `json:"reservedBalance"`
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	Status          AccountStatus   `json:"status"`
	AuditFields

	// Entries is the loaded slice of this account's history plus anything appended
	// in the current unit of work. It is not the complete history.
	Entries []LedgerEntry `json:"-"`
	Version ConcurrencyToken `json:"-"`

	pendingEntries []LedgerEntry
	events         []Event
}

// NewAccountID returns an id of the form ACC-<32 upper-case hex digits>.
func NewAccountID() string {
	return "ACC-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// NewAccount opens an active account. Initial balance and credit limit must not be negative.
func NewAccount(accountID, clientID string, initialBalance, creditLimit decimal.Decimal, currency string, now time.Time) (*Account, error) {
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", apperrors.ErrValidation)
	}
	if creditLimit.IsNegative() {
		return nil, fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrValidation)
	}
	if err := ValidateAmountScale(initialBalance); err != nil {
		return nil, err
	}
	if err := ValidateAmountScale(creditLimit); err != nil {
		return nil, err
	}
	currency, err := NormalizeCurrency(currency)
	if err != nil {
		return nil, err
	}

	acc := &Account{
		AccountID:       accountID,
		ClientID:        clientID,
		Currency:        currency,
		Balance:         initialBalance,
		ReservedBalance: decimal.Zero,
		CreditLimit:     creditLimit,
		Status:          StatusActive,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     clientID,
			LastUpdatedAt: now,
			LastUpdatedBy: clientID,
		},
	}
	acc.MarkCommitted()
	return acc, nil
}

// AvailableBalance is balance plus credit limit, the ceiling for debits and transfers.
func (a *Account) AvailableBalance() decimal.Decimal {
	return a.Balance.Add(a.CreditLimit)
}

// reserved is the reserved balance as money in the account currency. It is never negative.
func (a *Account) reserved() Money {
	return Money{Amount: a.ReservedBalance, Currency: a.Currency}
}

func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}

func (a *Account) Credit(amount decimal.Decimal, referenceID, currency string) (LedgerEntry, error) {
	entry, err := a.prepare(OperationCredit, amount, referenceID, currency)
	if err != nil {
		return LedgerEntry{}, err
	}

	a.Balance = a.Balance.Add(amount)
	a.record(entry)
	return entry, nil
}

func (a *Account) Debit(amount decimal.Decimal, referenceID, currency string) (LedgerEntry, error) {
	entry, err := a.prepare(OperationDebit, amount, referenceID, currency)
	if err != nil {
		return LedgerEntry{}, err
	}
	if a.AvailableBalance().LessThan(amount) {
		return LedgerEntry{}, fmt.Errorf("%w: available %s, requested %s", apperrors.ErrInsufficientFunds, a.AvailableBalance(), amount)
	}

	a.Balance = a.Balance.Sub(amount)
	a.record(entry)
	return entry, nil
}

// Reserve moves funds from balance into reserved balance. Credit limit is not usable for reservations.
func (a *Account) Reserve(amount decimal.Decimal, referenceID, currency string) (LedgerEntry, error) {
	entry, err := a.prepare(OperationReserve, amount, referenceID, currency)
	if err != nil {
		return LedgerEntry{}, err
	}
	if a.Balance.LessThan(amount) {
		return LedgerEntry{}, fmt.Errorf("%w: balance %s, requested reservation %s", apperrors.ErrInsufficientFunds, a.Balance, amount)
	}

	reserved, err := a.reserved().Add(entry.Money())
	if err != nil {
		return LedgerEntry{}, err
	}

	a.Balance = a.Balance.Sub(amount)
	a.ReservedBalance = reserved.Amount
	a.record(entry)
	return entry, nil
}

// Capture settles reserved funds. Balance is untouched since the funds left it at reserve time.
func (a *Account) Capture(amount decimal.Decimal, referenceID, currency string) (LedgerEntry, error) {
	entry, err := a.prepare(OperationCapture, amount, referenceID, currency)
	if err != nil {
		return LedgerEntry{}, err
	}
	reserved, err := a.reserved().Subtract(entry.Money())
	if err != nil {
		return LedgerEntry{}, fmt.Errorf("%w: reserved %s, requested capture %s", apperrors.ErrInsufficientReserve, a.ReservedBalance, amount)
	}

	a.ReservedBalance = reserved.Amount
	a.record(entry)
	return entry, nil
}

// Reverse undoes the most recent successful entry with originalReferenceID found in Entries.
// A reference can be reversed once. Reversing a transfer records the reversal without moving funds.
func (a *Account) Reverse(originalReferenceID, newReferenceID, currency string) (LedgerEntry, error) {
	if strings.TrimSpace(originalReferenceID) == "" {
		return LedgerEntry{}, fmt.Errorf("%w: original reference id is required for reversal", apperrors.ErrValidation)
	}
	if err := ValidateReferenceID(newReferenceID); err != nil {
		return LedgerEntry{}, err
	}
	if err := a.ensureActive(); err != nil {
		return LedgerEntry{}, err
	}

	original, ok := a.findLatestSuccess(originalReferenceID)
	if !ok {
		return LedgerEntry{}, fmt.Errorf("%w: reference %s on account %s", apperrors.ErrOriginalEntryNotFound, originalReferenceID, a.AccountID)
	}
	if a.alreadyReversed(originalReferenceID) {
		return LedgerEntry{}, fmt.Errorf("%w: reference %s was already reversed", apperrors.ErrNotReversible, originalReferenceID)
	}
	if currency == "" {
		currency = original.Currency
	}

	entry, err := NewLedgerEntry(a.AccountID, OperationReversal, original.Amount, currency, newReferenceID)
	if err != nil {
		return LedgerEntry{}, err
	}
	if entry.Currency != original.Currency {
		return LedgerEntry{}, fmt.Errorf("%w: reversal currency %s differs from original %s", apperrors.ErrValidation, entry.Currency, original.Currency)
	}
	entry.OriginalReferenceID = originalReferenceID
	entry.CounterpartyAccountID = original.CounterpartyAccountID
	entry.Metadata = map[string]string{MetadataReversedOperation: original.Operation.String()}

	balance, reserved := a.Balance, a.reserved()
	amount := original.Amount
	switch original.Operation {
	case OperationCredit:
		if balance.LessThan(amount) {
			return LedgerEntry{}, fmt.Errorf("%w: balance %s cannot cover credit reversal of %s", apperrors.ErrInsufficientFunds, balance, amount)
		}
		balance = balance.Sub(amount)
	case OperationDebit:
		balance = balance.Add(amount)
	case OperationReserve:
		if reserved, err = reserved.Subtract(original.Money()); err != nil {
			return LedgerEntry{}, fmt.Errorf("%w: reserved %s cannot cover reservation reversal of %s", apperrors.ErrInsufficientReserve, a.ReservedBalance, amount)
		}
		balance = balance.Add(amount)
	case OperationCapture:
		if reserved, err = reserved.Add(original.Money()); err != nil {
			return LedgerEntry{}, err
		}
	case OperationTransfer:
		// No balance effect. Reversing transfers needs both legs and is not supported yet.
		entry.Metadata[MetadataBalanceEffect] = BalanceEffectNone
	default:
		return LedgerEntry{}, fmt.Errorf("%w: %s entries cannot be reversed", apperrors.ErrNotReversible, original.Operation)
	}

	a.Balance, a.ReservedBalance = balance, reserved.Amount
	a.record(entry)
	return entry, nil
}

// TransferTo moves amount from a to destination, appending one Transfer entry to each account
// under the same reference id. The destination leg is marked Inbound.
func (a *Account) TransferTo(destination *Account, amount decimal.Decimal, referenceID, currency string) (LedgerEntry, LedgerEntry, error) {
	if destination == nil {
		return LedgerEntry{}, LedgerEntry{}, fmt.Errorf("%w: destination account is required", apperrors.ErrValidation)
	}
	if destination.AccountID == a.AccountID {
		return LedgerEntry{}, LedgerEntry{}, fmt.Errorf("%w: destination account must differ from source", apperrors.ErrValidation)
	}
	out, err := a.prepare(OperationTransfer, amount, referenceID, currency)
	if err != nil {
		return LedgerEntry{}, LedgerEntry{}, err
	}
	in, err := destination.prepare(OperationTransfer, amount, referenceID, out.Currency)
	if err != nil {
		return LedgerEntry{}, LedgerEntry{}, err
	}
	if a.AvailableBalance().LessThan(amount) {
		return LedgerEntry{}, LedgerEntry{}, fmt.Errorf("%w: available %s, requested transfer %s", apperrors.ErrInsufficientFunds, a.AvailableBalance(), amount)
	}

	out.CounterpartyAccountID = destination.AccountID
	in.CounterpartyAccountID = a.AccountID
	in.Inbound = true

	a.Balance = a.Balance.Sub(amount)
	destination.Balance = destination.Balance.Add(amount)
	a.record(out)
	destination.record(in)
	return out, in, nil
}

func (a *Account) Block() error {
	if a.Status != StatusActive {
		return fmt.Errorf("%w: cannot block account in status %s", apperrors.ErrInvalidStateTransition, a.Status)
	}
	a.transition(StatusBlocked, NewAccountBlocked(a.AccountID))
	return nil
}

// Activate returns a blocked or inactive account to active. Activating an active account is a no-op.
func (a *Account) Activate() error {
	if a.Status == StatusActive {
		return nil
	}
	a.transition(StatusActive, NewAccountActivated(a.AccountID))
	return nil
}

func (a *Account) Deactivate() error {
	if a.Status != StatusActive {
		return fmt.Errorf("%w: cannot deactivate account in status %s", apperrors.ErrInvalidStateTransition, a.Status)
	}
	a.transition(StatusInactive, NewAccountDeactivated(a.AccountID))
	return nil
}

// AttachHistory adds previously persisted entries to the loaded history window.
func (a *Account) AttachHistory(entries ...LedgerEntry) {
	a.Entries = append(a.Entries, entries...)
}

// PendingEntries returns entries appended since the last commit.
func (a *Account) PendingEntries() []LedgerEntry {
	out := make([]LedgerEntry, len(a.pendingEntries))
	copy(out, a.pendingEntries)
	return out
}

// AnnotatePending merges caller metadata into the entries appended since the last commit and into
// the events that carry them. Keys set by the aggregate itself are kept.
func (a *Account) AnnotatePending(metadata map[string]string) {
	if len(metadata) == 0 {
		return
	}
	pending := make(map[string]struct{}, len(a.pendingEntries))
	for i := range a.pendingEntries {
		a.pendingEntries[i].Metadata = mergeMetadata(a.pendingEntries[i].Metadata, metadata)
		pending[a.pendingEntries[i].EntryID] = struct{}{}
	}
	for i := range a.Entries {
		if _, ok := pending[a.Entries[i].EntryID]; ok {
			a.Entries[i].Metadata = mergeMetadata(a.Entries[i].Metadata, metadata)
		}
	}
	for i, ev := range a.events {
		if tp, ok := ev.(TransactionProcessed); ok {
			if _, ok := pending[tp.Entry.EntryID]; ok {
				tp.Entry.Metadata = mergeMetadata(tp.Entry.Metadata, metadata)
				a.events[i] = tp
			}
		}
	}
}

func mergeMetadata(own, extra map[string]string) map[string]string {
	out := make(map[string]string, len(own)+len(extra))
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range own {
		out[k] = v
	}
	return out
}

// PullEvents returns and clears the events raised since the last pull.
func (a *Account) PullEvents() []Event {
	events := a.events
	a.events = nil
	return events
}

// MarkCommitted records the current balances and status as the stored version and clears pending entries.
func (a *Account) MarkCommitted() {
	a.Version = ConcurrencyToken{Balance: a.Balance, ReservedBalance: a.ReservedBalance, Status: a.Status}
	a.pendingEntries = nil
}

func (a *Account) ensureActive() error {
	if a.Status != StatusActive {
		return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, a.AccountID, a.Status)
	}
	return nil
}

// prepare validates a balance-affecting operation and builds its entry without mutating state.
func (a *Account) prepare(kind OperationKind, amount decimal.Decimal, referenceID, currency string) (LedgerEntry, error) {
	if currency == "" {
		currency = a.Currency
	}
	entry, err := NewLedgerEntry(a.AccountID, kind, amount, currency, referenceID)
	if err != nil {
		return LedgerEntry{}, err
	}
	if a.Currency != "" && entry.Currency != a.Currency {
		return LedgerEntry{}, fmt.Errorf("%w: account %s holds %s, operation uses %s", apperrors.ErrValidation, a.AccountID, a.Currency, entry.Currency)
	}
	if err := a.ensureActive(); err != nil {
		return LedgerEntry{}, err
	}
	return entry, nil
}

func (a *Account) record(entry LedgerEntry) {
	a.Entries = append(a.Entries, entry)
	a.pendingEntries = append(a.pendingEntries, entry)
	a.LastUpdatedAt = entry.Timestamp
	a.events = append(a.events, NewTransactionProcessed(entry, a.Balance, a.ReservedBalance, a.AvailableBalance()))
}

func (a *Account) transition(status AccountStatus, event Event) {
	a.Status = status
	a.LastUpdatedAt = event.OccurredOn()
	a.events = append(a.events, event)
}

func (a *Account) findLatestSuccess(referenceID string) (LedgerEntry, bool) {
	var (
		latest LedgerEntry
		found  bool
	)
	for _, e := range a.Entries {
		if e.ReferenceID != referenceID || !e.IsSuccess() {
			continue
		}
		if !found || !e.Timestamp.Before(latest.Timestamp) {
			latest, found = e, true
		}
	}
	return latest, found
}

func (a *Account) alreadyReversed(referenceID string) bool {
	for _, e := range a.Entries {
		if e.Operation == OperationReversal && e.OriginalReferenceID == referenceID && e.IsSuccess() {
			return true
		}
	}
	return false
}

// Metadata keys written on reversal entries.
const (
	MetadataReversedOperation = "reversed_operation"
	MetadataBalanceEffect     = "balance_effect"
	BalanceEffectNone         = "none"
)
