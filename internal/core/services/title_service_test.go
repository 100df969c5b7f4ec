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

type TitleServiceTestSuite struct {
	suite.Suite
	mockTitleRepo        *MockTitleRepository
	mockCounterpartyRepo *MockCounterpartyRepository
	mockCategoryRepo     *MockCategoryRepository
	mockAuditRepo        *MockAuditRepository
	mockAuthorizer       *MockAuthorizer
	service              portssvc.TitleSvcFacade
	companyID            string
	userID               string
	counterparty         domain.Counterparty
	category             domain.Category
}

func (suite *TitleServiceTestSuite) SetupTest() {
	suite.mockTitleRepo = new(MockTitleRepository)
	suite.mockCounterpartyRepo = new(MockCounterpartyRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewTitleService(
		suite.mockTitleRepo,
		suite.mockCounterpartyRepo,
		suite.mockCategoryRepo,
		suite.mockAuditRepo,
		suite.mockAuthorizer,
	)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.counterparty = domain.Counterparty{
		CounterpartyID: uuid.NewString(),
		CompanyID:      suite.companyID,
		Name:           "Acme Ltda",
		Type:           domain.CounterpartyClient,
		IsActive:       true,
	}
	suite.category = domain.Category{
		CategoryID: uuid.NewString(),
		CompanyID:  suite.companyID,
		Name:       "Sales",
		Code:       "1.01",
		Kind:       domain.CategoryBoth,
		IsActive:   true,
	}
}

func (suite *TitleServiceTestSuite) expectReferencesOK() {
	suite.mockCounterpartyRepo.On("FindCounterpartyByID", mock.Anything, suite.companyID, suite.counterparty.CounterpartyID).Return(&suite.counterparty, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", mock.Anything, suite.companyID, suite.category.CategoryID).Return(&suite.category, nil).Once()
}

func (suite *TitleServiceTestSuite) validCreateRequest() dto.CreateTitleRequest {
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return dto.CreateTitleRequest{
		Nature:         domain.Receivable,
		CounterpartyID: suite.counterparty.CounterpartyID,
		CategoryID:     suite.category.CategoryID,
		Document:       "NF-1042",
		Kind:           domain.KindInvoice,
		IssueDate:      issue,
		DueDate:        issue.AddDate(0, 1, 0),
		Principal:      decimal.NewFromInt(1000),
		Additions:      decimal.NewFromFloat(50.25),
		Discounts:      decimal.NewFromFloat(10.25),
	}
}

func (suite *TitleServiceTestSuite) TestCreateTitle_Success() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.expectReferencesOK()
	suite.mockTitleRepo.On("SaveTitle", ctx, mock.AnythingOfType("domain.Title")).Return(nil).Once()
	suite.mockAuditRepo.On("SaveAuditEntry", ctx, mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()

	title, err := suite.service.CreateTitle(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(title)
	suite.NotEmpty(title.TitleID)
	suite.Equal(domain.TitlePending, title.Status)
	suite.True(title.Total.Equal(decimal.NewFromInt(1040)), "total = principal + additions - discounts")
	suite.True(title.OutstandingBalance.Equal(title.Total), "new title balance equals its total")
	suite.Equal(suite.userID, title.CreatedBy)
	suite.mockTitleRepo.AssertExpectations(suite.T())
}

func (suite *TitleServiceTestSuite) TestCreateTitle_TotalMismatch() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	wrong := decimal.NewFromInt(999)
	req.Total = &wrong

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateTitle(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTitleRepo.AssertNotCalled(suite.T(), "SaveTitle", mock.Anything, mock.Anything)
}

func (suite *TitleServiceTestSuite) TestCreateTitle_TotalWithinTolerance() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	supplied := decimal.NewFromFloat(1040.01)
	req.Total = &supplied

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.expectReferencesOK()
	suite.mockTitleRepo.On("SaveTitle", ctx, mock.AnythingOfType("domain.Title")).Return(nil).Once()
	suite.mockAuditRepo.On("SaveAuditEntry", ctx, mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()

	title, err := suite.service.CreateTitle(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(title.Total.Equal(decimal.NewFromInt(1040)), "computed total wins over the supplied one")
}

func (suite *TitleServiceTestSuite) TestCreateTitle_DueBeforeIssue() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.DueDate = req.IssueDate.AddDate(0, 0, -1)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateTitle(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TitleServiceTestSuite) TestCreateTitle_CategoryRejectsNature() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	suite.category.Kind = domain.CategoryPayable

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.expectReferencesOK()

	_, err := suite.service.CreateTitle(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTitleRepo.AssertNotCalled(suite.T(), "SaveTitle", mock.Anything, mock.Anything)
}

func (suite *TitleServiceTestSuite) TestCreateTitle_AuthorizationFail() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateTitle(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTitleRepo.AssertNotCalled(suite.T(), "SaveTitle", mock.Anything, mock.Anything)
}

func (suite *TitleServiceTestSuite) pendingTitle() *domain.Title {
	total := decimal.NewFromInt(500)
	return &domain.Title{
		TitleID:            uuid.NewString(),
		CompanyID:          suite.companyID,
		Nature:             domain.Receivable,
		CounterpartyID:     suite.counterparty.CounterpartyID,
		CategoryID:         suite.category.CategoryID,
		Document:           "NF-2001",
		Kind:               domain.KindInvoice,
		IssueDate:          time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		DueDate:            time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Principal:          total,
		Additions:          decimal.Zero,
		Discounts:          decimal.Zero,
		Total:              total,
		OutstandingBalance: total,
		Status:             domain.TitlePending,
	}
}

func (suite *TitleServiceTestSuite) TestUpdateTitle_Success() {
	ctx := context.Background()
	title := suite.pendingTitle()
	newDoc := "NF-2001-A"
	req := dto.UpdateTitleRequest{Document: &newDoc}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockTitleRepo.On("FindTitleByID", ctx, suite.companyID, title.TitleID).Return(title, nil).Once()
	suite.mockTitleRepo.On("UpdateTitle", ctx, mock.AnythingOfType("domain.Title")).Return(nil).Once()

	updated, err := suite.service.UpdateTitle(ctx, suite.companyID, title.TitleID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newDoc, updated.Document)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
}

func (suite *TitleServiceTestSuite) TestUpdateTitle_AmountChangeResetsBalance() {
	ctx := context.Background()
	title := suite.pendingTitle()
	newPrincipal := decimal.NewFromInt(750)
	req := dto.UpdateTitleRequest{Principal: &newPrincipal}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockTitleRepo.On("FindTitleByID", ctx, suite.companyID, title.TitleID).Return(title, nil).Once()
	suite.mockTitleRepo.On("UpdateTitle", ctx, mock.AnythingOfType("domain.Title")).Return(nil).Once()

	updated, err := suite.service.UpdateTitle(ctx, suite.companyID, title.TitleID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.Total.Equal(newPrincipal))
	suite.True(updated.OutstandingBalance.Equal(newPrincipal), "balance tracks total while no settlement exists")
}

func (suite *TitleServiceTestSuite) TestUpdateTitle_RejectedAfterSettlementActivity() {
	ctx := context.Background()
	title := suite.pendingTitle()
	title.Status = domain.TitlePartial
	title.OutstandingBalance = decimal.NewFromInt(200)
	newDoc := "NF-X"
	req := dto.UpdateTitleRequest{Document: &newDoc}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockTitleRepo.On("FindTitleByID", ctx, suite.companyID, title.TitleID).Return(title, nil).Once()

	_, err := suite.service.UpdateTitle(ctx, suite.companyID, title.TitleID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbiddenState)
	suite.mockTitleRepo.AssertNotCalled(suite.T(), "UpdateTitle", mock.Anything, mock.Anything)
}

func (suite *TitleServiceTestSuite) TestCancelTitle_Success() {
	ctx := context.Background()
	title := suite.pendingTitle()
	req := dto.CancelTitleRequest{Justification: "issued against the wrong counterparty"}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockTitleRepo.On("FindTitleByID", ctx, suite.companyID, title.TitleID).Return(title, nil).Once()
	suite.mockTitleRepo.On("CancelTitle", ctx, mock.AnythingOfType("domain.Title"), mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()

	cancelled, err := suite.service.CancelTitle(ctx, suite.companyID, title.TitleID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TitleCancelled, cancelled.Status)

	// Audit entry must carry the justification and prior status.
	call := suite.mockTitleRepo.Calls[len(suite.mockTitleRepo.Calls)-1]
	audit := call.Arguments.Get(2).(domain.AuditEntry)
	suite.Equal(domain.AuditTitleCancelled, audit.EventType)
	suite.Equal(req.Justification, audit.Details["justification"])
	suite.Equal(string(domain.TitlePending), audit.Details["priorStatus"])
	suite.Equal(suite.userID, audit.ActorID)
}

func (suite *TitleServiceTestSuite) TestCancelTitle_RequiresJustification() {
	ctx := context.Background()
	title := suite.pendingTitle()
	req := dto.CancelTitleRequest{Justification: "too short"}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CancelTitle(ctx, suite.companyID, title.TitleID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTitleRepo.AssertNotCalled(suite.T(), "CancelTitle", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TitleServiceTestSuite) TestCancelTitle_RequiresActor() {
	ctx := context.Background()
	req := dto.CancelTitleRequest{Justification: "issued against the wrong counterparty"}

	_, err := suite.service.CancelTitle(ctx, suite.companyID, uuid.NewString(), req, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TitleServiceTestSuite) TestCancelTitle_RejectedWithSettlements() {
	ctx := context.Background()
	title := suite.pendingTitle()
	title.Status = domain.TitlePartial
	title.OutstandingBalance = decimal.NewFromInt(100)
	req := dto.CancelTitleRequest{Justification: "issued against the wrong counterparty"}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockTitleRepo.On("FindTitleByID", ctx, suite.companyID, title.TitleID).Return(title, nil).Once()

	_, err := suite.service.CancelTitle(ctx, suite.companyID, title.TitleID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbiddenState)
}

func (suite *TitleServiceTestSuite) TestCancelTitle_AlreadyCancelled() {
	ctx := context.Background()
	title := suite.pendingTitle()
	title.Status = domain.TitleCancelled
	req := dto.CancelTitleRequest{Justification: "issued against the wrong counterparty"}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockTitleRepo.On("FindTitleByID", ctx, suite.companyID, title.TitleID).Return(title, nil).Once()

	_, err := suite.service.CancelTitle(ctx, suite.companyID, title.TitleID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDomain)
}

func (suite *TitleServiceTestSuite) TestGenerateInstallments_SplitsResidualOntoLast() {
	ctx := context.Background()
	req := dto.GenerateInstallmentsRequest{
		Nature:         domain.Receivable,
		CounterpartyID: suite.counterparty.CounterpartyID,
		CategoryID:     suite.category.CategoryID,
		Document:       "CT-77",
		Kind:           domain.KindPromissory,
		Description:    "Equipment lease",
		TotalAmount:    decimal.NewFromInt(100),
		Count:          3,
		IssueDate:      time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		FirstDueDate:   time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		IntervalDays:   30,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.expectReferencesOK()
	suite.mockTitleRepo.On("SaveTitlesBatch", ctx, mock.AnythingOfType("[]domain.Title"), mock.AnythingOfType("*domain.AuditEntry")).Return(nil).Once()

	titles, err := suite.service.GenerateInstallments(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(titles, 3)
	suite.True(titles[0].Total.Equal(decimal.NewFromFloat(33.33)))
	suite.True(titles[1].Total.Equal(decimal.NewFromFloat(33.33)))
	suite.True(titles[2].Total.Equal(decimal.NewFromFloat(33.34)), "last installment absorbs the rounding residual")

	sum := decimal.Zero
	for _, t := range titles {
		sum = sum.Add(t.Total)
	}
	suite.True(sum.Equal(req.TotalAmount), "installments sum exactly to the total")

	suite.Equal(1, titles[0].InstallmentNumber)
	suite.Equal(3, titles[2].InstallmentNumber)
	suite.Equal("Equipment lease (1/3)", titles[0].Description)
	suite.Equal(req.FirstDueDate, titles[0].DueDate)
	suite.Equal(req.FirstDueDate.AddDate(0, 0, 60), titles[2].DueDate)
}

func (suite *TitleServiceTestSuite) TestGenerateInstallments_CountTooSmall() {
	ctx := context.Background()
	req := dto.GenerateInstallmentsRequest{
		Nature:         domain.Receivable,
		CounterpartyID: suite.counterparty.CounterpartyID,
		CategoryID:     suite.category.CategoryID,
		Document:       "CT-78",
		Kind:           domain.KindInvoice,
		TotalAmount:    decimal.NewFromInt(100),
		Count:          1,
		IssueDate:      time.Now(),
		FirstDueDate:   time.Now().AddDate(0, 1, 0),
		IntervalDays:   30,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.GenerateInstallments(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTitleRepo.AssertNotCalled(suite.T(), "SaveTitlesBatch", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TitleServiceTestSuite) TestSoftDeleteTitle_Success() {
	ctx := context.Background()
	title := suite.pendingTitle()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockTitleRepo.On("FindTitleByID", ctx, suite.companyID, title.TitleID).Return(title, nil).Once()
	suite.mockTitleRepo.On("SoftDeleteTitle", ctx, suite.companyID, title.TitleID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAuditRepo.On("SaveAuditEntry", ctx, mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()

	err := suite.service.SoftDeleteTitle(ctx, suite.companyID, title.TitleID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTitleRepo.AssertExpectations(suite.T())
}

func (suite *TitleServiceTestSuite) TestGetTitleByID_NotFound() {
	ctx := context.Background()
	titleID := uuid.NewString()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTitleRepo.On("FindTitleByID", ctx, suite.companyID, titleID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetTitleByID(ctx, suite.companyID, titleID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestTitleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TitleServiceTestSuite))
}
