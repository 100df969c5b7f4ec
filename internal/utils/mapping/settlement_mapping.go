package mapping

import (
	"github.com/finledger/fin_titles_app/internal/core/domain"
	"github.com/finledger/fin_titles_app/internal/models"
)

// ToModelSettlement converts a domain Settlement to a model Settlement.
func ToModelSettlement(d domain.Settlement) models.Settlement {
	return models.Settlement{
		SettlementID:  d.SettlementID,
		TitleID:       d.TitleID,
		CompanyID:     d.CompanyID,
		BankAccountID: d.BankAccountID,
		MovementID:    d.MovementID,
		Amount:        d.Amount,
		Additions:     d.Additions,
		Discounts:     d.Discounts,
		Total:         d.Total,
		BalanceBefore: d.BalanceBefore,
		BalanceAfter:  d.BalanceAfter,
		Date:          d.Date,
		Status:        string(d.Status),
		ReversalOfID:  d.ReversalOfID,
		ReversedByID:  d.ReversedByID,
		ReversedAt:    d.ReversedAt,
		Notes:         d.Notes,
		AuditFields:   toModelAudit(d.AuditFields),
		SoftDeleteFields: models.SoftDeleteFields{
			DeletedAt: d.DeletedAt,
			DeletedBy: d.DeletedBy,
		},
	}
}

// ToDomainSettlement converts a model Settlement to a domain Settlement.
func ToDomainSettlement(m models.Settlement) domain.Settlement {
	return domain.Settlement{
		SettlementID:  m.SettlementID,
		TitleID:       m.TitleID,
		CompanyID:     m.CompanyID,
		BankAccountID: m.BankAccountID,
		MovementID:    m.MovementID,
		Amount:        m.Amount,
		Additions:     m.Additions,
		Discounts:     m.Discounts,
		Total:         m.Total,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Date:          m.Date,
		Status:        domain.SettlementStatus(m.Status),
		ReversalOfID:  m.ReversalOfID,
		ReversedByID:  m.ReversedByID,
		ReversedAt:    m.ReversedAt,
		Notes:         m.Notes,
		AuditFields:   toDomainAudit(m.AuditFields),
		SoftDeleteFields: domain.SoftDeleteFields{
			DeletedAt: m.DeletedAt,
			DeletedBy: m.DeletedBy,
		},
	}
}

// ToDomainSettlementSlice converts model settlements in bulk.
func ToDomainSettlementSlice(ms []models.Settlement) []domain.Settlement {
	out := make([]domain.Settlement, len(ms))
	for i, m := range ms {
		out[i] = ToDomainSettlement(m)
	}
	return out
}
