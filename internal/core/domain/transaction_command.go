package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCommand is one inbound request to apply a ledger operation.
type TransactionCommand struct {
	Operation            OperationKind
	AccountID            string
	DestinationAccountID string
	Amount               decimal.Decimal
	Currency             string
	ReferenceID          string
	OriginalReferenceID  string
	Metadata             map[string]string
	// ActorID identifies who submitted the command, for audit fields. Optional.
	ActorID string
}

// TransactionResult is the outcome of a command. Balances are those of AccountID at the time
// the result was built; for replayed idempotent requests that is the current state.
type TransactionResult struct {
	EntryID          string
	Status           EntryStatus
	Balance          decimal.Decimal
	ReservedBalance  decimal.Decimal
	AvailableBalance decimal.Decimal
	Timestamp        time.Time
	ErrorMessage     string
	// Replayed is true when the reference id had already been processed.
	Replayed bool
}

// NewTransactionResult builds a result from an entry and the owning account's balances.
func NewTransactionResult(entry LedgerEntry, acc *Account, replayed bool) *TransactionResult {
	return &TransactionResult{
		EntryID:          entry.EntryID,
		Status:           entry.Status,
		Balance:          acc.Balance,
		ReservedBalance:  acc.ReservedBalance,
		AvailableBalance: acc.AvailableBalance(),
		Timestamp:        entry.Timestamp,
		ErrorMessage:     entry.ErrorMessage,
		Replayed:         replayed,
	}
}

// StatusAction is a requested account lifecycle transition.
type StatusAction string

const (
	ActionBlock      StatusAction = "block"
	ActionActivate   StatusAction = "activate"
	ActionDeactivate StatusAction = "deactivate"
)
