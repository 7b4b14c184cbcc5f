package domain_test

import (
	"strings"
	"testing"

	"github.com/SscSPs/transaction_processor/internal/apperrors"
	"github.com/SscSPs/transaction_processor/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperationKind(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.OperationKind
		wantErr bool
	}{
		{in: "credit", want: domain.OperationCredit},
		{in: "DEBIT", want: domain.OperationDebit},
		{in: " Reserve ", want: domain.OperationReserve},
		{in: "capture", want: domain.OperationCapture},
		{in: "reversal", want: domain.OperationReversal},
		{in: "transfer", want: domain.OperationTransfer},
		{in: "refund", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseOperationKind(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrOperationNotSupported)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.ToLower(strings.TrimSpace(tt.in)), got.String())
		})
	}
}

func TestNewLedgerEntry(t *testing.T) {
	entry, err := domain.NewLedgerEntry("ACC-1", domain.OperationCredit, dec("10.50"), "", "ref-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCurrency, entry.Currency)
	assert.Equal(t, domain.EntrySuccess, entry.Status)
	assert.Equal(t, "UTC", entry.Timestamp.Location().String())

	_, err = domain.NewLedgerEntry("ACC-1", domain.OperationKind(42), dec("1"), "BRL", "ref-2")
	assert.ErrorIs(t, err, apperrors.ErrOperationNotSupported)

	_, err = domain.NewLedgerEntry("ACC-1", domain.OperationCredit, dec("1"), "BRL", strings.Repeat("x", domain.MaxReferenceIDLength+1))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewLedgerEntry("ACC-1", domain.OperationCredit, dec("0.001"), "BRL", "ref-3")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = domain.NewLedgerEntry("ACC-1", domain.OperationCredit, dec("2.500"), "BRL", "ref-4")
	assert.NoError(t, err)
}

func TestLedgerEntry_Money(t *testing.T) {
	entry, err := domain.NewLedgerEntry("ACC-1", domain.OperationDebit, dec("12.5"), "usd", "ref-1")
	require.NoError(t, err)

	assert.Equal(t, "12.50 USD", entry.Money().String())
	assert.True(t, entry.IsSuccess())

	entry.Status = domain.EntryFailed
	assert.False(t, entry.IsSuccess())
}
