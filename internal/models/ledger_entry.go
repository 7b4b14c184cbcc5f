package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry represents a row of the ledger_entries table.
// Nullable text columns use sql.NullString.
type LedgerEntry struct {
	EntryID               string            `db:"entry_id"`
	AccountID             string            `db:"account_id"`
	OperationType         int16             `db:"operation_type"`
	Amount                decimal.Decimal   `db:"amount"`
	Currency              string            `db:"currency"`
	ReferenceID           string            `db:"reference_id"`
	OriginalReferenceID   sql.NullString    `db:"original_reference_id"`
	CounterpartyAccountID sql.NullString    `db:"counterparty_account_id"`
	Inbound               bool              `db:"inbound"`
	Status                string            `db:"status"`
	ErrorMessage          sql.NullString    `db:"error_message"`
	Metadata              map[string]string `db:"metadata"`
	Timestamp             time.Time         `db:"timestamp"`
}
