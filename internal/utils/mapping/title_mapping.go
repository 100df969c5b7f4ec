package mapping

import (
	"github.com/finledger/fin_titles_app/internal/core/domain"
	"github.com/finledger/fin_titles_app/internal/models"
)

// ToModelTitle converts a domain Title to a model Title.
func ToModelTitle(d domain.Title) models.Title {
	return models.Title{
		TitleID:            d.TitleID,
		CompanyID:          d.CompanyID,
		Nature:             string(d.Nature),
		CounterpartyID:     d.CounterpartyID,
		CategoryID:         d.CategoryID,
		Document:           d.Document,
		Series:             d.Series,
		InstallmentNumber:  d.InstallmentNumber,
		Kind:               string(d.Kind),
		Description:        d.Description,
		IssueDate:          d.IssueDate,
		DueDate:            d.DueDate,
		SettlementDate:     d.SettlementDate,
		Principal:          d.Principal,
		Additions:          d.Additions,
		Discounts:          d.Discounts,
		Total:              d.Total,
		OutstandingBalance: d.OutstandingBalance,
		Status:             string(d.Status),
		AuditFields:        toModelAudit(d.AuditFields),
		SoftDeleteFields: models.SoftDeleteFields{
			DeletedAt: d.DeletedAt,
			DeletedBy: d.DeletedBy,
		},
	}
}

// ToDomainTitle converts a model Title to a domain Title.
func ToDomainTitle(m models.Title) domain.Title {
	return domain.Title{
		TitleID:            m.TitleID,
		CompanyID:          m.CompanyID,
		Nature:             domain.TitleNature(m.Nature),
		CounterpartyID:     m.CounterpartyID,
		CategoryID:         m.CategoryID,
		Document:           m.Document,
		Series:             m.Series,
		InstallmentNumber:  m.InstallmentNumber,
		Kind:               domain.TitleKind(m.Kind),
		Description:        m.Description,
		IssueDate:          m.IssueDate,
		DueDate:            m.DueDate,
		SettlementDate:     m.SettlementDate,
		Principal:          m.Principal,
		Additions:          m.Additions,
		Discounts:          m.Discounts,
		Total:              m.Total,
		OutstandingBalance: m.OutstandingBalance,
		Status:             domain.TitleStatus(m.Status),
		AuditFields:        toDomainAudit(m.AuditFields),
		SoftDeleteFields: domain.SoftDeleteFields{
			DeletedAt: m.DeletedAt,
			DeletedBy: m.DeletedBy,
		},
	}
}

// ToDomainTitleSlice converts model titles in bulk.
func ToDomainTitleSlice(ms []models.Title) []domain.Title {
	out := make([]domain.Title, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTitle(m)
	}
	return out
}

func toModelAudit(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func toDomainAudit(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}
