package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount holds a company cash position. Its balance is mutated only
// inside settlement transactions, under a row-level lock.
type BankAccount struct {
	BankAccountID string          `json:"bankAccountID"` // Primary Key (UUID)
	CompanyID     string          `json:"companyID"`     // FK -> Company
	Name          string          `json:"name"`
	BankCode      string          `json:"bankCode"`
	Agency        string          `json:"agency"`
	Number        string          `json:"number"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	AuditFields
	SoftDeleteFields
}

// MovementType is the direction of a bank movement.
type MovementType string

const (
	MovementCredit MovementType = "CREDIT" // money into the account
	MovementDebit  MovementType = "DEBIT"  // money out of the account
)

// BankMovement is one ledger line on a bank account. Settlements create
// movements; reversals create compensating movements in the opposite
// direction, never deleting the original.
type BankMovement struct {
	MovementID    string          `json:"movementID"` // Primary Key (UUID)
	BankAccountID string          `json:"bankAccountID"`
	CompanyID     string          `json:"companyID"`
	SettlementID  *string         `json:"settlementID,omitempty"` // originating baixa, when any
	Type          MovementType    `json:"type"`
	Amount        decimal.Decimal `json:"amount"` // positive value
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	AuditFields
}

// SignedAmount returns the balance effect of the movement.
func (m *BankMovement) SignedAmount() decimal.Decimal {
	if m.Type == MovementDebit {
		return m.Amount.Neg()
	}
	return m.Amount
}
