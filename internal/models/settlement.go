package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement is the database row for one baixa against a title.
type Settlement struct {
	SettlementID  string  `db:"settlement_id"`
	TitleID       string  `db:"title_id"`
	CompanyID     string  `db:"company_id"`
	BankAccountID *string `db:"bank_account_id"`
	MovementID    *string `db:"movement_id"`

	Amount    decimal.Decimal `db:"amount"`
	Additions decimal.Decimal `db:"additions"`
	Discounts decimal.Decimal `db:"discounts"`
	Total     decimal.Decimal `db:"total"`

	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`

	Date   time.Time `db:"settlement_date"`
	Status string    `db:"status"`

	ReversalOfID *string    `db:"reversal_of_id"`
	ReversedByID *string    `db:"reversed_by_id"`
	ReversedAt   *time.Time `db:"reversed_at"`

	Notes string `db:"notes"`

	AuditFields
	SoftDeleteFields
}
