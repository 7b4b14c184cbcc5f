package mapping

import (
	"database/sql"

	"github.com/SscSPs/transaction_processor/internal/core/domain"
	"github.com/SscSPs/transaction_processor/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to its row representation.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:               d.EntryID,
		AccountID:             d.AccountID,
		OperationType:         int16(d.Operation),
		Amount:                d.Amount,
		Currency:              d.Currency,
		ReferenceID:           d.ReferenceID,
		OriginalReferenceID:   nullString(d.OriginalReferenceID),
		CounterpartyAccountID: nullString(d.CounterpartyAccountID),
		Inbound:               d.Inbound,
		Status:                string(d.Status),
		ErrorMessage:          nullString(d.ErrorMessage),
		Metadata:              d.Metadata,
		Timestamp:             d.Timestamp.UTC(),
	}
}

// ToDomainLedgerEntry converts a ledger_entries row to a domain LedgerEntry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:               m.EntryID,
		AccountID:             m.AccountID,
		Operation:             domain.OperationKind(m.OperationType),
		Amount:                m.Amount,
		Currency:              m.Currency,
		ReferenceID:           m.ReferenceID,
		OriginalReferenceID:   m.OriginalReferenceID.String,
		CounterpartyAccountID: m.CounterpartyAccountID.String,
		Inbound:               m.Inbound,
		Status:                domain.EntryStatus(m.Status),
		ErrorMessage:          m.ErrorMessage.String,
		Metadata:              m.Metadata,
		Timestamp:             m.Timestamp.UTC(),
	}
}

func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
