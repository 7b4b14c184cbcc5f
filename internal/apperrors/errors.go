package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks (malformed amounts, ids, currencies).
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// Ledger rule violations.
var (
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInsufficientReserve    = errors.New("insufficient reserved balance")
	ErrAccountNotActive       = errors.New("account is not active")
	ErrNotReversible          = errors.New("transaction is not reversible")
	ErrOperationNotSupported  = errors.New("operation not supported")
	ErrConcurrencyConflict    = errors.New("concurrent modification detected")
	ErrAccountNotFound        = fmt.Errorf("account %w", ErrNotFound)
	ErrInvalidStateTransition = errors.New("invalid account status transition")
	ErrOriginalEntryNotFound  = fmt.Errorf("%w: original transaction not found", ErrNotReversible)
)

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a code and message. errors.Is(err, ErrInternal) holds for codes >= 500.
func NewAppError(code int, message string, err error) error {
	if code >= 500 && err != nil {
		err = fmt.Errorf("%w: %w", ErrInternal, err)
	} else if code >= 500 {
		err = ErrInternal
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// IsBusinessRule reports whether err is a ledger rule violation that the caller can act upon.
func IsBusinessRule(err error) bool {
	return errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrInsufficientReserve) ||
		errors.Is(err, ErrAccountNotActive) ||
		errors.Is(err, ErrNotReversible) ||
		errors.Is(err, ErrOperationNotSupported) ||
		errors.Is(err, ErrInvalidStateTransition) ||
		errors.Is(err, ErrConcurrencyConflict)
}
