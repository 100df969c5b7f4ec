package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Title is the database row for a receivable or payable title.
type Title struct {
	TitleID        string `db:"title_id"`
	CompanyID      string `db:"company_id"`
	Nature         string `db:"nature"`
	CounterpartyID string `db:"counterparty_id"`
	CategoryID     string `db:"category_id"`

	Document          string `db:"document"`
	Series            string `db:"series"`
	InstallmentNumber int    `db:"installment_number"`
	Kind              string `db:"kind"`
	Description       string `db:"description"`

	IssueDate      time.Time  `db:"issue_date"`
	DueDate        time.Time  `db:"due_date"`
	SettlementDate *time.Time `db:"settlement_date"`

	Principal          decimal.Decimal `db:"principal"`
	Additions          decimal.Decimal `db:"additions"`
	Discounts          decimal.Decimal `db:"discounts"`
	Total              decimal.Decimal `db:"total"`
	OutstandingBalance decimal.Decimal `db:"outstanding_balance"`

	Status string `db:"status"`

	AuditFields
	SoftDeleteFields
}
