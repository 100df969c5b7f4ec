package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is the database row for a company cash account.
type BankAccount struct {
	BankAccountID string          `db:"bank_account_id"`
	CompanyID     string          `db:"company_id"`
	Name          string          `db:"name"`
	BankCode      string          `db:"bank_code"`
	Agency        string          `db:"agency"`
	Number        string          `db:"number"`
	Balance       decimal.Decimal `db:"balance"`
	IsActive      bool            `db:"is_active"`
	AuditFields
	SoftDeleteFields
}

// BankMovement is the database row for one account ledger line.
type BankMovement struct {
	MovementID    string          `db:"movement_id"`
	BankAccountID string          `db:"bank_account_id"`
	CompanyID     string          `db:"company_id"`
	SettlementID  *string         `db:"settlement_id"`
	Type          string          `db:"movement_type"`
	Amount        decimal.Decimal `db:"amount"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	Date          time.Time       `db:"movement_date"`
	Description   string          `db:"description"`
	AuditFields
}
