package mapping

import (
	"github.com/finledger/fin_titles_app/internal/core/domain"
	"github.com/finledger/fin_titles_app/internal/models"
)

// ToModelCounterparty converts a domain Counterparty to a model Counterparty.
func ToModelCounterparty(d domain.Counterparty) models.Counterparty {
	return models.Counterparty{
		CounterpartyID: d.CounterpartyID,
		CompanyID:      d.CompanyID,
		Name:           d.Name,
		TaxID:          d.TaxID,
		Type:           string(d.Type),
		Email:          d.Email,
		IsActive:       d.IsActive,
		AuditFields:    toModelAudit(d.AuditFields),
		SoftDeleteFields: models.SoftDeleteFields{
			DeletedAt: d.DeletedAt,
			DeletedBy: d.DeletedBy,
		},
	}
}

// ToDomainCounterparty converts a model Counterparty to a domain Counterparty.
func ToDomainCounterparty(m models.Counterparty) domain.Counterparty {
	return domain.Counterparty{
		CounterpartyID: m.CounterpartyID,
		CompanyID:      m.CompanyID,
		Name:           m.Name,
		TaxID:          m.TaxID,
		Type:           domain.CounterpartyType(m.Type),
		Email:          m.Email,
		IsActive:       m.IsActive,
		AuditFields:    toDomainAudit(m.AuditFields),
		SoftDeleteFields: domain.SoftDeleteFields{
			DeletedAt: m.DeletedAt,
			DeletedBy: m.DeletedBy,
		},
	}
}

// ToModelCategory converts a domain Category to a model Category.
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:  d.CategoryID,
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		Code:        d.Code,
		Kind:        string(d.Kind),
		ParentID:    d.ParentID,
		IsActive:    d.IsActive,
		AuditFields: toModelAudit(d.AuditFields),
		SoftDeleteFields: models.SoftDeleteFields{
			DeletedAt: d.DeletedAt,
			DeletedBy: d.DeletedBy,
		},
	}
}

// ToDomainCategory converts a model Category to a domain Category.
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:  m.CategoryID,
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		Code:        m.Code,
		Kind:        domain.CategoryKind(m.Kind),
		ParentID:    m.ParentID,
		IsActive:    m.IsActive,
		AuditFields: toDomainAudit(m.AuditFields),
		SoftDeleteFields: domain.SoftDeleteFields{
			DeletedAt: m.DeletedAt,
			DeletedBy: m.DeletedBy,
		},
	}
}
