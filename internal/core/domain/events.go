package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventKind names a domain event variant.
type EventKind string

const (
	EventTransactionProcessed EventKind = "transaction_processed"
	EventAccountBlocked       EventKind = "account_blocked"
	EventAccountActivated     EventKind = "account_activated"
	EventAccountDeactivated   EventKind = "account_deactivated"
)

// Event is a state change raised by an Account. The set of implementations is closed:
// only the types in this file satisfy it.
type Event interface {
	Kind() EventKind
	AggregateID() string
	OccurredOn() time.Time
	sealed()
}

type eventBase struct {
	AccountID  string    `json:"accountID"`
	OccurredAt time.Time `json:"occurredOn"`
}

func (e eventBase) AggregateID() string   { return e.AccountID }
func (e eventBase) OccurredOn() time.Time { return e.OccurredAt }
func (eventBase) sealed()                 {}

// TransactionProcessed carries the entry and the balances right after it was applied.
type TransactionProcessed struct {
	eventBase
	Entry            LedgerEntry     `json:"entry"`
	Balance          decimal.Decimal `json:"balance"`
	ReservedBalance  decimal.Decimal `json:"reservedBalance"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
}

func (TransactionProcessed) Kind() EventKind { return EventTransactionProcessed }

type AccountBlocked struct{ eventBase }

func (AccountBlocked) Kind() EventKind { return EventAccountBlocked }

type AccountActivated struct{ eventBase }

func (AccountActivated) Kind() EventKind { return EventAccountActivated }

type AccountDeactivated struct{ eventBase }

func (AccountDeactivated) Kind() EventKind { return EventAccountDeactivated }

func newEventBase(accountID string) eventBase {
	return eventBase{AccountID: accountID, OccurredAt: time.Now().UTC()}
}

func NewTransactionProcessed(entry LedgerEntry, balance, reserved, available decimal.Decimal) TransactionProcessed {
	return TransactionProcessed{
		eventBase:        newEventBase(entry.AccountID),
		Entry:            entry,
		Balance:          balance,
		ReservedBalance:  reserved,
		AvailableBalance: available,
	}
}

func NewAccountBlocked(accountID string) AccountBlocked {
	return AccountBlocked{newEventBase(accountID)}
}

func NewAccountActivated(accountID string) AccountActivated {
	return AccountActivated{newEventBase(accountID)}
}

func NewAccountDeactivated(accountID string) AccountDeactivated {
	return AccountDeactivated{newEventBase(accountID)}
}
