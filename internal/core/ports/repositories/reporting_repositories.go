package repositories

import (
	"context"
	"time"

	"github.com/finledger/fin_titles_app/internal/core/domain"
	"github.com/finledger/fin_titles_app/internal/dto"
)

// ReportingRepositoryFacade serves the read-only report and cash-flow
// queries. All queries exclude soft-deleted titles and never take write
// locks.
type ReportingRepositoryFacade interface {
	// FindTitleRows returns flat report rows with counterparty and category
	// names joined, filtered on the requested date axis.
	FindTitleRows(ctx context.Context, companyID string, params dto.TitleReportParams) ([]domain.TitleReportRow, error)

	// FindOpenTitles returns PENDING/PARTIAL titles of one nature for the
	// aging distribution.
	FindOpenTitles(ctx context.Context, companyID string, nature domain.TitleNature) ([]domain.Title, error)

	// FindCashFlowTitles returns every non-deleted title that can touch the
	// range: settlement date inside it, or an open title whose due date is
	// inside it. A nil companyID means consolidated across companies.
	// The second return maps counterparty id to display name.
	FindCashFlowTitles(ctx context.Context, companyID *string, start, end time.Time) ([]domain.Title, map[string]string, error)
}
