package mapping

import (
	"github.com/SscSPs/transaction_processor/internal/core/domain"
	"github.com/SscSPs/transaction_processor/internal/models"
)

// Audit columns and domain audit fields share one layout; only the struct tags differ.

func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields(d)
}

// ToDomainAuditFields normalises timestamps to UTC, as they are stored.
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	d := domain.AuditFields(m)
	d.CreatedAt = d.CreatedAt.UTC()
	d.LastUpdatedAt = d.LastUpdatedAt.UTC()
	return d
}
