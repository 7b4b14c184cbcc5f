package dto

import (
	"time"

	"github.com/SscSPs/transaction_processor/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
// The client is created on first use.
type CreateAccountRequest struct {
	ClientID       string          `json:"clientID" binding:"required,max=100"`
	InitialBalance decimal.Decimal `json:"initialBalance" binding:"nonnegative_decimal"`
	CreditLimit    decimal.Decimal `json:"creditLimit" binding:"nonnegative_decimal"`
	Currency       string          `json:"currency" binding:"omitempty,currency_code"` // Optional, defaults to BRL
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID        string               `json:"accountID"`
	ClientID         string               `json:"clientID"`
	Currency         string               `json:"currency"`
	Balance          decimal.Decimal      `json:"balance"`
	ReservedBalance  decimal.Decimal      `json:"reservedBalance"`
	AvailableBalance decimal.Decimal      `json:"availableBalance"`
	CreditLimit      decimal.Decimal      `json:"creditLimit"`
	Status           domain.AccountStatus `json:"status"`
	CreatedAt        time.Time            `json:"createdAt"`
	LastUpdatedAt    time.Time            `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        acc.AccountID,
		ClientID:         acc.ClientID,
		Currency:         acc.Currency,
		Balance:          acc.Balance,
		ReservedBalance:  acc.ReservedBalance,
		AvailableBalance: acc.AvailableBalance(),
		CreditLimit:      acc.CreditLimit,
		Status:           acc.Status,
		CreatedAt:        acc.CreatedAt,
		LastUpdatedAt:    acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
