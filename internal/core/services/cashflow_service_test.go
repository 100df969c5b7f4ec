package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finledger/fin_titles_app/internal/core/domain"
	portssvc "github.com/finledger/fin_titles_app/internal/core/ports/services"
	"github.com/finledger/fin_titles_app/internal/core/services"
	"github.com/finledger/fin_titles_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CashFlowServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockBankRepo      *MockBankAccountRepository
	mockAuthorizer    *MockAuthorizer
	service           portssvc.CashFlowSvcFacade
	companyID         string
	userID            string
	start             time.Time
}

func (suite *CashFlowServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockBankRepo = new(MockBankAccountRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewCashFlowService(suite.mockReportingRepo, suite.mockBankRepo, suite.mockAuthorizer)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.start = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
}

// settledTitle contributes its full total as realized movement on the
// settlement date.
func (suite *CashFlowServiceTestSuite) settledTitle(nature domain.TitleNature, total int64, settledOn time.Time) domain.Title {
	amount := decimal.NewFromInt(total)
	return domain.Title{
		TitleID:            uuid.NewString(),
		CompanyID:          suite.companyID,
		Nature:             nature,
		CounterpartyID:     uuid.NewString(),
		Document:           "NF-CF",
		IssueDate:          settledOn.AddDate(0, -1, 0),
		DueDate:            settledOn,
		SettlementDate:     &settledOn,
		Total:              amount,
		OutstandingBalance: decimal.Zero,
		Status:             domain.TitleSettled,
	}
}

// openTitleDue contributes its outstanding balance as projected movement
// on the due date.
func (suite *CashFlowServiceTestSuite) openTitleDue(nature domain.TitleNature, outstanding int64, dueOn time.Time) domain.Title {
	amount := decimal.NewFromInt(outstanding)
	return domain.Title{
		TitleID:            uuid.NewString(),
		CompanyID:          suite.companyID,
		Nature:             nature,
		CounterpartyID:     uuid.NewString(),
		Document:           "NF-CF",
		IssueDate:          dueOn.AddDate(0, -1, 0),
		DueDate:            dueOn,
		Total:              amount,
		OutstandingBalance: amount,
		Status:             domain.TitlePending,
	}
}

func (suite *CashFlowServiceTestSuite) expectAuthorized(ctx context.Context) {
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
}

func (suite *CashFlowServiceTestSuite) TestProject_RealizedCumulativeFromOpeningBalance() {
	ctx := context.Background()
	day1 := suite.start
	day2 := suite.start.AddDate(0, 0, 1)
	day3 := suite.start.AddDate(0, 0, 2)
	accountID := uuid.NewString()

	titles := []domain.Title{
		suite.settledTitle(domain.Receivable, 3000, day1),
		suite.settledTitle(domain.Receivable, 5000, day2),
		suite.settledTitle(domain.Payable, 2000, day2),
		suite.settledTitle(domain.Payable, 4000, day3),
	}

	suite.expectAuthorized(ctx)
	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.companyID, accountID).
		Return(&domain.BankAccount{BankAccountID: accountID, Balance: decimal.NewFromInt(10000), IsActive: true}, nil).Once()
	suite.mockReportingRepo.On("FindCashFlowTitles", ctx, &suite.companyID, day1, day3).
		Return(titles, map[string]string{}, nil).Once()

	statement, err := suite.service.Project(ctx, suite.companyID, dto.CashFlowParams{
		StartDate:     day1,
		EndDate:       day3,
		BankAccountID: &accountID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(statement.Buckets, 3)
	suite.True(statement.OpeningBalance.Equal(decimal.NewFromInt(10000)))

	suite.True(statement.Buckets[0].CumulativeRealized.Equal(decimal.NewFromInt(13000)), "day1: 10000 + 3000")
	suite.True(statement.Buckets[1].CumulativeRealized.Equal(decimal.NewFromInt(16000)), "day2: +5000 in, -2000 out")
	suite.True(statement.Buckets[2].CumulativeRealized.Equal(decimal.NewFromInt(12000)), "day3: -4000")
	suite.True(statement.Totals.FinalRealizedBalance.Equal(decimal.NewFromInt(12000)))

	suite.True(statement.Buckets[1].RealizedIn.Equal(decimal.NewFromInt(5000)))
	suite.True(statement.Buckets[1].RealizedOut.Equal(decimal.NewFromInt(2000)))
	suite.True(statement.Totals.RealizedIn.Equal(decimal.NewFromInt(8000)))
	suite.True(statement.Totals.RealizedOut.Equal(decimal.NewFromInt(6000)))
}

func (suite *CashFlowServiceTestSuite) TestProject_FiveDayRangeHasFiveContiguousBuckets() {
	ctx := context.Background()
	end := suite.start.AddDate(0, 0, 4)

	suite.expectAuthorized(ctx)
	suite.mockReportingRepo.On("FindCashFlowTitles", ctx, &suite.companyID, suite.start, end).
		Return([]domain.Title{}, map[string]string{}, nil).Once()

	statement, err := suite.service.Project(ctx, suite.companyID, dto.CashFlowParams{
		StartDate: suite.start,
		EndDate:   end,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(statement.Buckets, 5)
	for i := 1; i < len(statement.Buckets); i++ {
		suite.Equal(statement.Buckets[i-1].Date.AddDate(0, 0, 1), statement.Buckets[i].Date, "bucket dates are contiguous calendar days")
	}
	suite.True(statement.OpeningBalance.IsZero(), "no bank account selected means zero opening balance")
}

func (suite *CashFlowServiceTestSuite) TestProject_ProjectedTrackIsIndependent() {
	ctx := context.Background()
	day1 := suite.start
	day2 := suite.start.AddDate(0, 0, 1)

	titles := []domain.Title{
		suite.settledTitle(domain.Receivable, 1000, day1),
		suite.openTitleDue(domain.Receivable, 700, day2),
		suite.openTitleDue(domain.Payable, 300, day2),
	}

	suite.expectAuthorized(ctx)
	suite.mockReportingRepo.On("FindCashFlowTitles", ctx, &suite.companyID, day1, day2).
		Return(titles, map[string]string{}, nil).Once()

	statement, err := suite.service.Project(ctx, suite.companyID, dto.CashFlowParams{
		StartDate: day1,
		EndDate:   day2,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(statement.Buckets, 2)

	// Realized only on day1; projected only on day2. Cumulatives never mix.
	suite.True(statement.Buckets[0].DailyRealized.Equal(decimal.NewFromInt(1000)))
	suite.True(statement.Buckets[0].DailyProjected.IsZero())
	suite.True(statement.Buckets[1].DailyRealized.IsZero())
	suite.True(statement.Buckets[1].DailyProjected.Equal(decimal.NewFromInt(400)))

	suite.True(statement.Buckets[1].CumulativeRealized.Equal(decimal.NewFromInt(1000)))
	suite.True(statement.Buckets[1].CumulativeProjected.Equal(decimal.NewFromInt(400)))
	suite.True(statement.Totals.FinalRealizedBalance.Equal(decimal.NewFromInt(1000)))
	suite.True(statement.Totals.FinalProjectedBalance.Equal(decimal.NewFromInt(400)))
}

func (suite *CashFlowServiceTestSuite) TestProject_PartialTitleProjectsOutstandingOnly() {
	ctx := context.Background()
	day1 := suite.start

	partial := suite.openTitleDue(domain.Receivable, 1000, day1)
	partial.Status = domain.TitlePartial
	partial.OutstandingBalance = decimal.NewFromInt(250)

	suite.expectAuthorized(ctx)
	suite.mockReportingRepo.On("FindCashFlowTitles", ctx, &suite.companyID, day1, day1).
		Return([]domain.Title{partial}, map[string]string{}, nil).Once()

	statement, err := suite.service.Project(ctx, suite.companyID, dto.CashFlowParams{
		StartDate: day1,
		EndDate:   day1,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(statement.Buckets, 1)
	suite.True(statement.Buckets[0].ProjectedIn.Equal(decimal.NewFromInt(250)), "only the unpaid remainder is projected")
}

func (suite *CashFlowServiceTestSuite) TestProject_ConsolidatedScopesNilCompany() {
	ctx := context.Background()

	suite.expectAuthorized(ctx)
	suite.mockReportingRepo.On("FindCashFlowTitles", ctx, (*string)(nil), suite.start, suite.start).
		Return([]domain.Title{}, map[string]string{}, nil).Once()

	_, err := suite.service.Project(ctx, suite.companyID, dto.CashFlowParams{
		StartDate:    suite.start,
		EndDate:      suite.start,
		Consolidated: true,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *CashFlowServiceTestSuite) TestProject_RangeTooLong() {
	ctx := context.Background()

	suite.expectAuthorized(ctx)

	_, err := suite.service.Project(ctx, suite.companyID, dto.CashFlowParams{
		StartDate: suite.start,
		EndDate:   suite.start.AddDate(0, 0, 400),
	}, suite.userID)

	suite.Require().Error(err)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "FindCashFlowTitles", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCashFlowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashFlowServiceTestSuite))
}
