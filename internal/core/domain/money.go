package domain

import (
	"fmt"

	"github.com/SscSPs/transaction_processor/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Money is a non-negative amount in a single currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: money amount cannot be negative", apperrors.ErrValidation)
	}
	currency, err := NormalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return Money{Amount: amount, Currency: currency}, nil
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Subtract fails when the result would be negative.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	result := m.Amount.Sub(other.Amount)
	if result.IsNegative() {
		return Money{}, fmt.Errorf("%w: cannot subtract %s from %s", apperrors.ErrValidation, other, m)
	}
	return Money{Amount: result, Currency: m.Currency}, nil
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.Currency
}

func (m Money) sameCurrency(other Money) error {
	if m.Currency != other.Currency {
		return fmt.Errorf("%w: currency mismatch %s vs %s", apperrors.ErrValidation, m.Currency, other.Currency)
	}
	return nil
}
