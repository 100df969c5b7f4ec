package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementStatus tracks whether a settlement is still effective.
// Reversal never deletes the original row; it marks it REVERSED and links
// a compensating REVERSAL entry.
type SettlementStatus string

const (
	SettlementActive   SettlementStatus = "ACTIVE"
	SettlementReversed SettlementStatus = "REVERSED"
	SettlementReversal SettlementStatus = "REVERSAL" // the compensating entry itself
)

// Settlement records one baixa (payment or receipt) against a title.
type Settlement struct {
	SettlementID  string  `json:"settlementID"` // Primary Key (UUID)
	TitleID       string  `json:"titleID"`      // FK -> Title (Not Null)
	CompanyID     string  `json:"companyID"`
	BankAccountID *string `json:"bankAccountID,omitempty"` // optional account the money moved through
	MovementID    *string `json:"movementID,omitempty"`    // linked bank movement, when an account is used

	Amount    decimal.Decimal `json:"amount"`    // principal portion, > 0
	Additions decimal.Decimal `json:"additions"` // interest/fees collected on top
	Discounts decimal.Decimal `json:"discounts"` // discount granted at settlement
	Total     decimal.Decimal `json:"total"`     // amount + additions - discounts

	BalanceBefore decimal.Decimal `json:"balanceBefore"` // title balance before this baixa
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`  // title balance after this baixa

	Date   time.Time        `json:"date"`
	Status SettlementStatus `json:"status"`

	// Reversal links, teacher-of-record style: the original keeps a pointer
	// to the reversing entry and vice versa.
	ReversalOfID *string    `json:"reversalOfID,omitempty"` // set on REVERSAL rows
	ReversedByID *string    `json:"reversedByID,omitempty"` // set on REVERSED rows
	ReversedAt   *time.Time `json:"reversedAt,omitempty"`

	Notes string `json:"notes"`
	AuditFields
	SoftDeleteFields
}

// IsActive reports whether the settlement still reduces the title balance.
func (s *Settlement) IsActive() bool {
	return s.Status == SettlementActive
}
