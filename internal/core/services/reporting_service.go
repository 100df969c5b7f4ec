package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/finledger/fin_titles_app/internal/core/domain"
	portsrepo "github.com/finledger/fin_titles_app/internal/core/ports/repositories"
	portssvc "github.com/finledger/fin_titles_app/internal/core/ports/services"
	"github.com/finledger/fin_titles_app/internal/dto"
	"github.com/finledger/fin_titles_app/internal/utils/dates"
	"github.com/finledger/fin_titles_app/internal/utils/money"
	"github.com/shopspring/decimal"
)

// reportingService builds the flat titles report with its grouped
// subtotals, and the aging distribution of open titles.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc) portssvc.ReportingSvcFacade {
	return &reportingService{
		BaseService:   BaseService{CompanyAuthorizer: authorizer},
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// axisDate picks the date that drives month grouping for a row. Rows on
// the settlement axis always carry a settlement date; the due date is the
// fallback for defensive completeness when they do not.
func axisDate(row *domain.TitleReportRow, axis domain.ReportDateAxis) time.Time {
	switch axis {
	case domain.AxisIssue:
		return row.IssueDate
	case domain.AxisSettlement:
		if row.SettlementDate != nil {
			return *row.SettlementDate
		}
		return row.DueDate
	default:
		return row.DueDate
	}
}

// TitleReport returns the filtered flat rows plus subtotals grouped by
// counterparty and by calendar month on the selected date axis.
func (s *reportingService) TitleReport(ctx context.Context, companyID string, params dto.TitleReportParams, requestingUserID string) (*domain.TitleReport, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.FindTitleRows(ctx, companyID, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to load title report rows")
		return nil, fmt.Errorf("failed to load report rows: %w", err)
	}

	byCounterparty := make(map[string]*domain.ReportGroupTotal)
	byMonth := make(map[string]*domain.ReportGroupTotal)
	grandTotal := decimal.Zero
	grandOutstanding := decimal.Zero

	for i := range rows {
		row := &rows[i]
		grandTotal = grandTotal.Add(row.Total)
		grandOutstanding = grandOutstanding.Add(row.Outstanding)

		cp, ok := byCounterparty[row.CounterpartyID]
		if !ok {
			cp = &domain.ReportGroupTotal{
				Key:         row.CounterpartyID,
				Label:       row.CounterpartyName,
				Total:       decimal.Zero,
				Outstanding: decimal.Zero,
			}
			byCounterparty[row.CounterpartyID] = cp
		}
		cp.Count++
		cp.Total = cp.Total.Add(row.Total)
		cp.Outstanding = cp.Outstanding.Add(row.Outstanding)

		monthKey := dates.MonthKey(axisDate(row, params.Axis))
		mo, ok := byMonth[monthKey]
		if !ok {
			mo = &domain.ReportGroupTotal{
				Key:         monthKey,
				Label:       monthKey,
				Total:       decimal.Zero,
				Outstanding: decimal.Zero,
			}
			byMonth[monthKey] = mo
		}
		mo.Count++
		mo.Total = mo.Total.Add(row.Total)
		mo.Outstanding = mo.Outstanding.Add(row.Outstanding)
	}

	report := &domain.TitleReport{
		Rows:             rows,
		ByCounterparty:   flattenGroups(byCounterparty, func(a, b *domain.ReportGroupTotal) bool { return a.Label < b.Label }),
		ByMonth:          flattenGroups(byMonth, func(a, b *domain.ReportGroupTotal) bool { return a.Key < b.Key }),
		GrandTotal:       money.Round2(grandTotal),
		GrandOutstanding: money.Round2(grandOutstanding),
	}

	s.LogDebug(ctx, "Title report built",
		slog.Int("rows", len(rows)),
		slog.String("axis", string(params.Axis)))
	return report, nil
}

// flattenGroups rounds each group's figures and returns them sorted.
func flattenGroups(groups map[string]*domain.ReportGroupTotal, less func(a, b *domain.ReportGroupTotal) bool) []domain.ReportGroupTotal {
	out := make([]domain.ReportGroupTotal, 0, len(groups))
	for _, g := range groups {
		g.Total = money.Round2(g.Total)
		g.Outstanding = money.Round2(g.Outstanding)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

// agingBucketFor maps days overdue to its bucket. Zero or negative days
// means the title is not yet due.
func agingBucketFor(daysOverdue int) domain.AgingBucketKey {
	switch {
	case daysOverdue <= 0:
		return domain.AgingCurrent
	case daysOverdue <= 30:
		return domain.Aging1To30
	case daysOverdue <= 60:
		return domain.Aging31To60
	case daysOverdue <= 90:
		return domain.Aging61To90
	default:
		return domain.AgingOver90
	}
}

// AgingReport distributes the outstanding balance of open titles into the
// standard overdue buckets at a reference date.
func (s *reportingService) AgingReport(ctx context.Context, companyID string, params dto.AgingReportParams, requestingUserID string) (*domain.AgingReport, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	ref := params.ReferenceDate
	if ref.IsZero() {
		ref = time.Now().UTC()
	}
	ref = dates.DayOnly(ref)

	titles, err := s.reportingRepo.FindOpenTitles(ctx, companyID, params.Nature)
	if err != nil {
		s.LogError(ctx, err, "Failed to load open titles for aging")
		return nil, fmt.Errorf("failed to load open titles: %w", err)
	}

	order := []domain.AgingBucketKey{
		domain.AgingCurrent,
		domain.Aging1To30,
		domain.Aging31To60,
		domain.Aging61To90,
		domain.AgingOver90,
	}
	buckets := make(map[domain.AgingBucketKey]*domain.AgingBucket, len(order))
	for _, key := range order {
		buckets[key] = &domain.AgingBucket{Key: key, Outstanding: decimal.Zero}
	}

	total := decimal.Zero
	for i := range titles {
		t := &titles[i]
		bucket := buckets[agingBucketFor(dates.DaysOverdue(t.DueDate, ref))]
		bucket.Count++
		bucket.Outstanding = bucket.Outstanding.Add(t.OutstandingBalance)
		total = total.Add(t.OutstandingBalance)
	}

	out := make([]domain.AgingBucket, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		b.Outstanding = money.Round2(b.Outstanding)
		out = append(out, *b)
	}

	return &domain.AgingReport{
		ReferenceDate:    ref,
		Nature:           params.Nature,
		Buckets:          out,
		TotalOutstanding: money.Round2(total),
	}, nil
}
