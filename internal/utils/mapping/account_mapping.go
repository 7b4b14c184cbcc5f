package mapping

import (
	"github.com/SscSPs/transaction_processor/internal/core/domain"
	"github.com/SscSPs/transaction_processor/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		ClientID:        d.ClientID,
		Currency:        d.Currency,
		Balance:         d.Balance,
		ReservedBalance: d.ReservedBalance,
		CreditLimit:     d.CreditLimit,
		Status:          models.AccountStatus(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account whose Version matches the
// stored balances.
func ToDomainAccount(m models.Account) domain.Account {
	acc := domain.Account{
		AccountID:       m.AccountID,
		ClientID:        m.ClientID,
		Currency:        m.Currency,
		Balance:         m.Balance,
		ReservedBalance: m.ReservedBalance,
		CreditLimit:     m.CreditLimit,
		Status:          domain.AccountStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	acc.MarkCommitted()
	return acc
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
