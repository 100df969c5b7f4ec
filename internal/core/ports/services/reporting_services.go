package services

import (
	"context"

	"github.com/finledger/fin_titles_app/internal/core/domain"
	"github.com/finledger/fin_titles_app/internal/dto"
)

// ReportingSvcFacade builds the read-only title reports.
type ReportingSvcFacade interface {
	TitleReport(ctx context.Context, companyID string, params dto.TitleReportParams, requestingUserID string) (*domain.TitleReport, error)
	AgingReport(ctx context.Context, companyID string, params dto.AgingReportParams, requestingUserID string) (*domain.AgingReport, error)
}

// CashFlowSvcFacade builds the day-by-day realized/projected cash ledger.
type CashFlowSvcFacade interface {
	Project(ctx context.Context, companyID string, params dto.CashFlowParams, requestingUserID string) (*domain.CashFlowStatement, error)
}
