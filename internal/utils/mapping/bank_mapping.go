package mapping

import (
	"github.com/finledger/fin_titles_app/internal/core/domain"
	"github.com/finledger/fin_titles_app/internal/models"
)

// ToModelBankAccount converts a domain BankAccount to a model BankAccount.
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID: d.BankAccountID,
		CompanyID:     d.CompanyID,
		Name:          d.Name,
		BankCode:      d.BankCode,
		Agency:        d.Agency,
		Number:        d.Number,
		Balance:       d.Balance,
		IsActive:      d.IsActive,
		AuditFields:   toModelAudit(d.AuditFields),
		SoftDeleteFields: models.SoftDeleteFields{
			DeletedAt: d.DeletedAt,
			DeletedBy: d.DeletedBy,
		},
	}
}

// ToDomainBankAccount converts a model BankAccount to a domain BankAccount.
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID: m.BankAccountID,
		CompanyID:     m.CompanyID,
		Name:          m.Name,
		BankCode:      m.BankCode,
		Agency:        m.Agency,
		Number:        m.Number,
		Balance:       m.Balance,
		IsActive:      m.IsActive,
		AuditFields:   toDomainAudit(m.AuditFields),
		SoftDeleteFields: domain.SoftDeleteFields{
			DeletedAt: m.DeletedAt,
			DeletedBy: m.DeletedBy,
		},
	}
}

// ToModelBankMovement converts a domain BankMovement to a model BankMovement.
func ToModelBankMovement(d domain.BankMovement) models.BankMovement {
	return models.BankMovement{
		MovementID:    d.MovementID,
		BankAccountID: d.BankAccountID,
		CompanyID:     d.CompanyID,
		SettlementID:  d.SettlementID,
		Type:          string(d.Type),
		Amount:        d.Amount,
		BalanceAfter:  d.BalanceAfter,
		Date:          d.Date,
		Description:   d.Description,
		AuditFields:   toModelAudit(d.AuditFields),
	}
}

// ToDomainBankMovement converts a model BankMovement to a domain BankMovement.
func ToDomainBankMovement(m models.BankMovement) domain.BankMovement {
	return domain.BankMovement{
		MovementID:    m.MovementID,
		BankAccountID: m.BankAccountID,
		CompanyID:     m.CompanyID,
		SettlementID:  m.SettlementID,
		Type:          domain.MovementType(m.Type),
		Amount:        m.Amount,
		BalanceAfter:  m.BalanceAfter,
		Date:          m.Date,
		Description:   m.Description,
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

// ToDomainBankMovementSlice converts model movements in bulk.
func ToDomainBankMovementSlice(ms []models.BankMovement) []domain.BankMovement {
	out := make([]domain.BankMovement, len(ms))
	for i, m := range ms {
		out[i] = ToDomainBankMovement(m)
	}
	return out
}
