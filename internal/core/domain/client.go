package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/transaction_processor/internal/apperrors"
)

const MaxClientIDLength = 100

// Client owns accounts by id only; account state lives in the Account aggregate.
type Client struct {
	ClientID   string   `json:"clientID"`
	Name       string   `json:"name"`
	AccountIDs []string `json:"accountIDs"`
	AuditFields
}

// NewClient creates a client with the default display name "Client <id>".
func NewClient(clientID string, now time.Time) (*Client, error) {
	if err := ValidateClientID(clientID); err != nil {
		return nil, err
	}
	return &Client{
		ClientID: clientID,
		Name:     "Client " + clientID,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     clientID,
			LastUpdatedAt: now,
			LastUpdatedBy: clientID,
		},
	}, nil
}

func ValidateClientID(clientID string) error {
	if strings.TrimSpace(clientID) == "" {
		return fmt.Errorf("%w: client id is required", apperrors.ErrValidation)
	}
	if len(clientID) > MaxClientIDLength {
		return fmt.Errorf("%w: client id must be at most %d characters", apperrors.ErrValidation, MaxClientIDLength)
	}
	return nil
}

// AddAccount links an account id to the client. Adding the same id twice is a no-op.
func (c *Client) AddAccount(accountID string, now time.Time) {
	if slices.Contains(c.AccountIDs, accountID) {
		return
	}
	c.AccountIDs = append(c.AccountIDs, accountID)
	c.LastUpdatedAt = now
}
