package mapping

import (
	"github.com/finledger/fin_titles_app/internal/core/domain"
	"github.com/finledger/fin_titles_app/internal/models"
)

// ToModelCompany converts a domain Company to a model Company.
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		TaxID:       d.TaxID,
		BranchOf:    d.BranchOf,
		IsActive:    d.IsActive,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company.
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		TaxID:       m.TaxID,
		BranchOf:    m.BranchOf,
		IsActive:    m.IsActive,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

// ToModelUserCompany converts a domain membership to a model row.
func ToModelUserCompany(d domain.UserCompany) models.UserCompany {
	return models.UserCompany{
		UserID:      d.UserID,
		CompanyID:   d.CompanyID,
		Role:        string(d.Role),
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToModelAuditEntry converts a domain AuditEntry to a model row.
func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		AuditID:   d.AuditID,
		EventType: string(d.EventType),
		Severity:  string(d.Severity),
		ActorID:   d.ActorID,
		CompanyID: d.CompanyID,
		EntityID:  d.EntityID,
		Details:   d.Details,
		Success:   d.Success,
		Timestamp: d.Timestamp,
	}
}

// ToDomainAuditEntry converts a model AuditEntry to a domain AuditEntry.
func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		AuditID:   m.AuditID,
		EventType: domain.AuditEventType(m.EventType),
		Severity:  domain.AuditSeverity(m.Severity),
		ActorID:   m.ActorID,
		CompanyID: m.CompanyID,
		EntityID:  m.EntityID,
		Details:   m.Details,
		Success:   m.Success,
		Timestamp: m.Timestamp,
	}
}
