package models

import (
	"github.com/shopspring/decimal"
)

// AccountStatus mirrors the status column values.
type AccountStatus string

// Account represents a row of the accounts table.
type Account struct {
	AccountID       string          `db:"account_id"`
	ClientID        string          `db:"client_id"`
	Currency        string          `db:"currency"`
	Balance         decimal.Decimal `db:"balance"`
	ReservedBalance decimal.Decimal `db:"reserved_balance"`
	CreditLimit     decimal.Decimal `db:"credit_limit"`
	Status          AccountStatus   `db:"status"`
	AuditFields
}
