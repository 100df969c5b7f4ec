package dto

import (
	"fmt"
	"time"

	"github.com/finledger/fin_titles_app/internal/apperrors"
)

// maxCashFlowRangeDays bounds the projection window to keep bucket slices
// reasonable.
const maxCashFlowRangeDays = 366

// CashFlowParams selects the projection window and scope.
type CashFlowParams struct {
	StartDate     time.Time `validate:"required"`
	EndDate       time.Time `validate:"required"`
	BankAccountID *string   `validate:"omitempty,uuid"`
	Consolidated  bool
}

func (p *CashFlowParams) Validate() error {
	if err := runTagValidation(p); err != nil {
		return err
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("%w: end date must not precede start date", apperrors.ErrValidation)
	}
	days := int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
	if days > maxCashFlowRangeDays {
		return fmt.Errorf("%w: date range exceeds %d days", apperrors.ErrValidation, maxCashFlowRangeDays)
	}
	return nil
}
