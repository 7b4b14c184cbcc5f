package mapping

import (
	"github.com/SscSPs/transaction_processor/internal/core/domain"
	"github.com/SscSPs/transaction_processor/internal/models"
)

func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:    d.ClientID,
		Name:        d.Name,
		AccountIDs:  append([]string(nil), d.AccountIDs...),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:    m.ClientID,
		Name:        m.Name,
		AccountIDs:  append([]string(nil), m.AccountIDs...),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
