package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finledger/fin_titles_app/internal/apperrors"
	"github.com/finledger/fin_titles_app/internal/core/domain"
	portssvc "github.com/finledger/fin_titles_app/internal/core/ports/services"
	"github.com/finledger/fin_titles_app/internal/core/services"
	"github.com/finledger/fin_titles_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAuthorizer    *MockAuthorizer
	service           portssvc.ReportingSvcFacade
	companyID         string
	userID            string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAuthorizer)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) expectAuthorized(ctx context.Context) {
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
}

func row(counterpartyID, counterpartyName string, due time.Time, total, outstanding float64) domain.TitleReportRow {
	return domain.TitleReportRow{
		TitleID:          uuid.NewString(),
		Nature:           domain.Receivable,
		Document:         "NF-R",
		CounterpartyID:   counterpartyID,
		CounterpartyName: counterpartyName,
		CategoryID:       uuid.NewString(),
		CategoryName:     "Sales",
		IssueDate:        due.AddDate(0, -1, 0),
		DueDate:          due,
		Status:           domain.TitlePending,
		Total:            decimal.NewFromFloat(total),
		Outstanding:      decimal.NewFromFloat(outstanding),
	}
}

func (suite *ReportingServiceTestSuite) TestTitleReport_GroupsByCounterpartyAndMonth() {
	ctx := context.Background()
	cpA := uuid.NewString()
	cpB := uuid.NewString()
	feb := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	rows := []domain.TitleReportRow{
		row(cpA, "Acme Ltda", feb, 100.10, 100.10),
		row(cpA, "Acme Ltda", mar, 200.20, 50.00),
		row(cpB, "Beta SA", mar, 300.00, 300.00),
	}

	suite.expectAuthorized(ctx)
	suite.mockReportingRepo.On("FindTitleRows", ctx, suite.companyID, mock.AnythingOfType("dto.TitleReportParams")).Return(rows, nil).Once()

	report, err := suite.service.TitleReport(ctx, suite.companyID, dto.TitleReportParams{}, suite.userID)

	suite.Require().NoError(err)
	suite.Len(report.Rows, 3)
	suite.True(report.GrandTotal.Equal(decimal.NewFromFloat(600.30)))
	suite.True(report.GrandOutstanding.Equal(decimal.NewFromFloat(450.10)))

	suite.Require().Len(report.ByCounterparty, 2)
	suite.Equal("Acme Ltda", report.ByCounterparty[0].Label)
	suite.Equal(2, report.ByCounterparty[0].Count)
	suite.True(report.ByCounterparty[0].Total.Equal(decimal.NewFromFloat(300.30)))
	suite.Equal("Beta SA", report.ByCounterparty[1].Label)

	suite.Require().Len(report.ByMonth, 2)
	suite.Equal("2026-02", report.ByMonth[0].Key)
	suite.Equal(1, report.ByMonth[0].Count)
	suite.Equal("2026-03", report.ByMonth[1].Key)
	suite.Equal(2, report.ByMonth[1].Count)
	suite.True(report.ByMonth[1].Total.Equal(decimal.NewFromFloat(500.20)))
}

func (suite *ReportingServiceTestSuite) TestTitleReport_DefaultsToDueAxis() {
	ctx := context.Background()

	suite.expectAuthorized(ctx)
	suite.mockReportingRepo.On("FindTitleRows", ctx, suite.companyID, mock.MatchedBy(func(p dto.TitleReportParams) bool {
		return p.Axis == domain.AxisDue
	})).Return([]domain.TitleReportRow{}, nil).Once()

	report, err := suite.service.TitleReport(ctx, suite.companyID, dto.TitleReportParams{}, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(report.Rows)
	suite.True(report.GrandTotal.IsZero())
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTitleReport_RejectsDerivedStatusFilter() {
	ctx := context.Background()
	overdue := domain.TitleOverdue

	suite.expectAuthorized(ctx)

	_, err := suite.service.TitleReport(ctx, suite.companyID, dto.TitleReportParams{Status: &overdue}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "FindTitleRows", mock.Anything, mock.Anything, mock.Anything)
}

func openTitle(due time.Time, outstanding float64) domain.Title {
	amount := decimal.NewFromFloat(outstanding)
	return domain.Title{
		TitleID:            uuid.NewString(),
		Nature:             domain.Receivable,
		DueDate:            due,
		Total:              amount,
		OutstandingBalance: amount,
		Status:             domain.TitlePending,
	}
}

func (suite *ReportingServiceTestSuite) TestAgingReport_DistributesIntoBuckets() {
	ctx := context.Background()
	ref := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	titles := []domain.Title{
		openTitle(ref.AddDate(0, 0, 10), 100),  // not yet due
		openTitle(ref, 50),                     // due today, still current
		openTitle(ref.AddDate(0, 0, -15), 200), // 15 days overdue
		openTitle(ref.AddDate(0, 0, -30), 300), // exactly 30 days
		openTitle(ref.AddDate(0, 0, -45), 400), // 31-60
		openTitle(ref.AddDate(0, 0, -75), 500), // 61-90
		openTitle(ref.AddDate(0, 0, -120), 600), // over 90
	}

	suite.expectAuthorized(ctx)
	suite.mockReportingRepo.On("FindOpenTitles", ctx, suite.companyID, domain.Receivable).Return(titles, nil).Once()

	report, err := suite.service.AgingReport(ctx, suite.companyID, dto.AgingReportParams{
		Nature:        domain.Receivable,
		ReferenceDate: ref,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Buckets, 5)

	byKey := map[domain.AgingBucketKey]domain.AgingBucket{}
	for _, b := range report.Buckets {
		byKey[b.Key] = b
	}

	suite.Equal(2, byKey[domain.AgingCurrent].Count)
	suite.True(byKey[domain.AgingCurrent].Outstanding.Equal(decimal.NewFromInt(150)))
	suite.Equal(2, byKey[domain.Aging1To30].Count)
	suite.True(byKey[domain.Aging1To30].Outstanding.Equal(decimal.NewFromInt(500)))
	suite.Equal(1, byKey[domain.Aging31To60].Count)
	suite.Equal(1, byKey[domain.Aging61To90].Count)
	suite.Equal(1, byKey[domain.AgingOver90].Count)
	suite.True(report.TotalOutstanding.Equal(decimal.NewFromInt(2150)))
}

func (suite *ReportingServiceTestSuite) TestAgingReport_RequiresNature() {
	ctx := context.Background()

	suite.expectAuthorized(ctx)

	_, err := suite.service.AgingReport(ctx, suite.companyID, dto.AgingReportParams{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
