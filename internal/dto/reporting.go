package dto

import (
	"fmt"
	"time"

	"github.com/finledger/fin_titles_app/internal/apperrors"
	"github.com/finledger/fin_titles_app/internal/core/domain"
)

// TitleReportParams filters the titles report. Axis selects which date
// drives the From/To filter and the month grouping.
type TitleReportParams struct {
	Nature         *domain.TitleNature
	Status         *domain.TitleStatus
	CounterpartyID *string
	Axis           domain.ReportDateAxis
	From           *time.Time
	To             *time.Time
}

func (p *TitleReportParams) Validate() error {
	switch p.Axis {
	case domain.AxisIssue, domain.AxisDue, domain.AxisSettlement:
	case "":
		p.Axis = domain.AxisDue
	default:
		return fmt.Errorf("%w: unknown report date axis %q", apperrors.ErrValidation, p.Axis)
	}
	if p.From != nil && p.To != nil && p.To.Before(*p.From) {
		return fmt.Errorf("%w: report range end precedes start", apperrors.ErrValidation)
	}
	if p.Status != nil {
		switch *p.Status {
		case domain.TitlePending, domain.TitlePartial, domain.TitleSettled, domain.TitleCancelled:
		default:
			return fmt.Errorf("%w: status filter %q is not a stored status", apperrors.ErrValidation, *p.Status)
		}
	}
	return nil
}

// AgingReportParams selects the aging distribution inputs.
type AgingReportParams struct {
	Nature        domain.TitleNature
	ReferenceDate time.Time // defaults to today when zero
}

func (p *AgingReportParams) Validate() error {
	if p.Nature != domain.Receivable && p.Nature != domain.Payable {
		return fmt.Errorf("%w: aging report requires nature RECEIVABLE or PAYABLE", apperrors.ErrValidation)
	}
	return nil
}
