package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/transaction_processor/internal/apperrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationKind identifies the ledger operation an entry records.
// The numeric values are persisted and must not be reordered.
type OperationKind int16

const (
	OperationCredit   OperationKind = 1
	OperationDebit    OperationKind = 2
	OperationReserve  OperationKind = 3
	OperationCapture  OperationKind = 4
	OperationReversal OperationKind = 5
	OperationTransfer OperationKind = 6
)

var operationNames = map[OperationKind]string{
	OperationCredit:   "credit",
	OperationDebit:    "debit",
	OperationReserve:  "reserve",
	OperationCapture:  "capture",
	OperationReversal: "reversal",
	OperationTransfer: "transfer",
}

func (k OperationKind) String() string {
	if name, ok := operationNames[k]; ok {
		return name
	}
	return fmt.Sprintf("operation(%d)", int16(k))
}

// IsValid reports whether k is one of the known operation kinds.
func (k OperationKind) IsValid() bool {
	_, ok := operationNames[k]
	return ok
}

// ParseOperationKind maps a case-insensitive operation name to its kind.
func ParseOperationKind(s string) (OperationKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for kind, n := range operationNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown operation %q", apperrors.ErrOperationNotSupported, s)
}

// EntryStatus is the outcome of a ledger entry.
type EntryStatus string

const (
	EntrySuccess EntryStatus = "success"
	EntryFailed  EntryStatus = "failed"
	EntryPending EntryStatus = "pending"
)

const (
	// DefaultCurrency is applied when a request omits the currency.
	DefaultCurrency = "BRL"

	MaxReferenceIDLength = 100

	// AmountScale is the number of fractional digits amounts are stored with.
	AmountScale = 2
)

// LedgerEntry is one recorded attempt to apply an operation to an account.
type LedgerEntry struct {
	EntryID   string          `json:"entryID"`
	AccountID string          `json:"accountID"`
	Operation OperationKind   `json:"operation"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	// ReferenceID is the caller-supplied idempotency key.
	ReferenceID string `json:"referenceID"`
	// OriginalReferenceID is set on reversal entries.
	OriginalReferenceID string `json:"originalReferenceID,omitempty"`
	// CounterpartyAccountID is set on both legs of a transfer.
	CounterpartyAccountID string `json:"counterpartyAccountID,omitempty"`
	// Inbound marks the destination leg of a transfer, which shares the source leg's reference id.
	Inbound      bool              `json:"inbound"`
	Status       EntryStatus       `json:"status"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}

// NewLedgerEntry builds a successful entry after validating amount, reference and currency.
func NewLedgerEntry(accountID string, kind OperationKind, amount decimal.Decimal, currency, referenceID string) (LedgerEntry, error) {
	if !kind.IsValid() {
		return LedgerEntry{}, fmt.Errorf("%w: %s", apperrors.ErrOperationNotSupported, kind)
	}
	if err := ValidatePositiveAmount(amount); err != nil {
		return LedgerEntry{}, err
	}
	if err := ValidateReferenceID(referenceID); err != nil {
		return LedgerEntry{}, err
	}
	currency, err := NormalizeCurrency(currency)
	if err != nil {
		return LedgerEntry{}, err
	}

	return LedgerEntry{
		EntryID:     uuid.NewString(),
		AccountID:   accountID,
		Operation:   kind,
		Amount:      amount,
		Currency:    currency,
		ReferenceID: referenceID,
		Status:      EntrySuccess,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// Money is the entry amount in the entry currency.
func (e LedgerEntry) Money() Money {
	return Money{Amount: e.Amount, Currency: e.Currency}
}

func (e LedgerEntry) IsSuccess() bool {
	return e.Status == EntrySuccess
}

// ValidatePositiveAmount rejects zero, negative and over-precise amounts.
func ValidatePositiveAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero, got %s", apperrors.ErrValidation, amount.String())
	}
	return ValidateAmountScale(amount)
}

func ValidateAmountScale(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places", apperrors.ErrValidation, amount.String(), AmountScale)
	}
	return nil
}

func ValidateReferenceID(referenceID string) error {
	if strings.TrimSpace(referenceID) == "" {
		return fmt.Errorf("%w: reference id is required", apperrors.ErrValidation)
	}
	if len(referenceID) > MaxReferenceIDLength {
		return fmt.Errorf("%w: reference id must be at most %d characters", apperrors.ErrValidation, MaxReferenceIDLength)
	}
	return nil
}

// NormalizeCurrency upper-cases a three-letter code and applies DefaultCurrency when empty.
func NormalizeCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return DefaultCurrency, nil
	}
	if len(currency) != 3 {
		return "", fmt.Errorf("%w: currency must have 3 characters, got %q", apperrors.ErrValidation, currency)
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: currency must be alphabetic, got %q", apperrors.ErrValidation, currency)
		}
	}
	return currency, nil
}
