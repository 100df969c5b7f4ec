package dto

import (
	"fmt"
	"time"

	"github.com/finledger/fin_titles_app/internal/apperrors"
	"github.com/finledger/fin_titles_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettleTitleRequest performs a baixa against a title. Amount is the
// principal portion deducted from the outstanding balance; additions and
// discounts only affect the cash moved through the bank account.
type SettleTitleRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Additions     decimal.Decimal `json:"additions"`
	Discounts     decimal.Decimal `json:"discounts"`
	Date          *time.Time      `json:"date,omitempty"` // defaults to today
	BankAccountID *string         `json:"bankAccountID,omitempty" validate:"omitempty,uuid"`
	Notes         string          `json:"notes" validate:"max=500"`
}

func (r *SettleTitleRequest) Validate() error {
	if err := runTagValidation(r); err != nil {
		return err
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("%w: settlement amount must be positive", apperrors.ErrValidation)
	}
	if r.Additions.IsNegative() || r.Discounts.IsNegative() {
		return fmt.Errorf("%w: additions and discounts must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// ReverseSettlementRequest carries the estorno justification.
type ReverseSettlementRequest struct {
	Justification string `json:"justification" validate:"required,min=10,max=500"`
}

func (r *ReverseSettlementRequest) Validate() error {
	return runTagValidation(r)
}

// SettlementResponse is the API shape of a settlement record.
type SettlementResponse struct {
	SettlementID  string                  `json:"settlementID"`
	TitleID       string                  `json:"titleID"`
	BankAccountID *string                 `json:"bankAccountID,omitempty"`
	MovementID    *string                 `json:"movementID,omitempty"`
	Amount        decimal.Decimal         `json:"amount"`
	Additions     decimal.Decimal         `json:"additions"`
	Discounts     decimal.Decimal         `json:"discounts"`
	Total         decimal.Decimal         `json:"total"`
	BalanceBefore decimal.Decimal         `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal         `json:"balanceAfter"`
	Date          time.Time               `json:"date"`
	Status        domain.SettlementStatus `json:"status"`
	ReversalOfID  *string                 `json:"reversalOfID,omitempty"`
	ReversedByID  *string                 `json:"reversedByID,omitempty"`
	ReversedAt    *time.Time              `json:"reversedAt,omitempty"`
	Notes         string                  `json:"notes"`
	CreatedAt     time.Time               `json:"createdAt"`
}

// ToSettlementResponse converts a domain settlement.
func ToSettlementResponse(s *domain.Settlement) SettlementResponse {
	return SettlementResponse{
		SettlementID:  s.SettlementID,
		TitleID:       s.TitleID,
		BankAccountID: s.BankAccountID,
		MovementID:    s.MovementID,
		Amount:        s.Amount,
		Additions:     s.Additions,
		Discounts:     s.Discounts,
		Total:         s.Total,
		BalanceBefore: s.BalanceBefore,
		BalanceAfter:  s.BalanceAfter,
		Date:          s.Date,
		Status:        s.Status,
		ReversalOfID:  s.ReversalOfID,
		ReversedByID:  s.ReversedByID,
		ReversedAt:    s.ReversedAt,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
	}
}

// ToSettlementResponses converts a slice of domain settlements.
func ToSettlementResponses(settlements []domain.Settlement) []SettlementResponse {
	out := make([]SettlementResponse, len(settlements))
	for i := range settlements {
		out[i] = ToSettlementResponse(&settlements[i])
	}
	return out
}

// SettleResultResponse bundles the updated title with the new settlement.
type SettleResultResponse struct {
	Title      TitleResponse      `json:"title"`
	Settlement SettlementResponse `json:"settlement"`
}
