package dto

import (
	"time"

	"github.com/SscSPs/transaction_processor/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the body of POST /transactions.
// Amount is ignored for reversals, which always reverse the original amount.
type CreateTransactionRequest struct {
	Operation            string            `json:"operation" binding:"required"`
	AccountID            string            `json:"accountID" binding:"required,max=100"`
	DestinationAccountID string            `json:"destinationAccountID" binding:"omitempty,max=100"`
	Amount               decimal.Decimal   `json:"amount"`
	Currency             string            `json:"currency" binding:"omitempty,currency_code"`
	ReferenceID          string            `json:"referenceID" binding:"required,max=100"`
	OriginalReferenceID  string            `json:"originalReferenceID" binding:"omitempty,max=100"`
	Metadata             map[string]string `json:"metadata"`
}

// TransactionResponse is returned by the workflow.
type TransactionResponse struct {
	TransactionID    string          `json:"transactionID"`
	Status           string          `json:"status"`
	Balance          decimal.Decimal `json:"balance"`
	ReservedBalance  decimal.Decimal `json:"reservedBalance"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	Timestamp        time.Time       `json:"timestamp"`
	ErrorMessage     string          `json:"errorMessage,omitempty"`
}

func ToTransactionResponse(res *domain.TransactionResult) TransactionResponse {
	return TransactionResponse{
		TransactionID:    res.EntryID,
		Status:           string(res.Status),
		Balance:          res.Balance,
		ReservedBalance:  res.ReservedBalance,
		AvailableBalance: res.AvailableBalance,
		Timestamp:        res.Timestamp,
		ErrorMessage:     res.ErrorMessage,
	}
}

// LedgerEntryResponse is one row of an account statement.
type LedgerEntryResponse struct {
	TransactionID         string            `json:"transactionID"`
	AccountID             string            `json:"accountID"`
	Operation             string            `json:"operation"`
	Amount                decimal.Decimal   `json:"amount"`
	Currency              string            `json:"currency"`
	ReferenceID           string            `json:"referenceID"`
	OriginalReferenceID   string            `json:"originalReferenceID,omitempty"`
	CounterpartyAccountID string            `json:"counterpartyAccountID,omitempty"`
	Status                string            `json:"status"`
	ErrorMessage          string            `json:"errorMessage,omitempty"`
	Metadata              map[string]string `json:"metadata,omitempty"`
	Timestamp             time.Time         `json:"timestamp"`
}

func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		TransactionID:         e.EntryID,
		AccountID:             e.AccountID,
		Operation:             e.Operation.String(),
		Amount:                e.Amount,
		Currency:              e.Currency,
		ReferenceID:           e.ReferenceID,
		OriginalReferenceID:   e.OriginalReferenceID,
		CounterpartyAccountID: e.CounterpartyAccountID,
		Status:                string(e.Status),
		ErrorMessage:          e.ErrorMessage,
		Metadata:              e.Metadata,
		Timestamp:             e.Timestamp,
	}
}

// ListTransactionsParams defines query parameters for an account statement.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of entries and the token for the next page.
type ListTransactionsResponse struct {
	Transactions []LedgerEntryResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
