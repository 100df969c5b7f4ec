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

type SettlementServiceTestSuite struct {
	suite.Suite
	mockSettlementRepo *MockSettlementRepository
	mockTitleRepo      *MockTitleRepository
	mockBankRepo       *MockBankAccountRepository
	mockAuthorizer     *MockAuthorizer
	service            portssvc.SettlementSvcFacade
	companyID          string
	userID             string
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockSettlementRepo = new(MockSettlementRepository)
	suite.mockTitleRepo = new(MockTitleRepository)
	suite.mockBankRepo = new(MockBankAccountRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewSettlementService(
		suite.mockSettlementRepo,
		suite.mockTitleRepo,
		suite.mockBankRepo,
		suite.mockAuthorizer,
	)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *SettlementServiceTestSuite) openTitle(total int64) *domain.Title {
	amount := decimal.NewFromInt(total)
	return &domain.Title{
		TitleID:            uuid.NewString(),
		CompanyID:          suite.companyID,
		Nature:             domain.Receivable,
		CounterpartyID:     uuid.NewString(),
		CategoryID:         uuid.NewString(),
		Document:           "NF-3001",
		Kind:               domain.KindInvoice,
		IssueDate:          time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		DueDate:            time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
		Principal:          amount,
		Additions:          decimal.Zero,
		Discounts:          decimal.Zero,
		Total:              amount,
		OutstandingBalance: amount,
		Status:             domain.TitlePending,
	}
}

func (suite *SettlementServiceTestSuite) TestSettleTitle_PartialSuccess() {
	ctx := context.Background()
	title := suite.openTitle(1000)
	req := dto.SettleTitleRequest{Amount: decimal.NewFromInt(400)}

	updated := *title
	updated.OutstandingBalance = decimal.NewFromInt(600)
	updated.Status = domain.TitlePartial

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockTitleRepo.On("FindTitleByID", ctx, suite.companyID, title.TitleID).Return(title, nil).Once()
	suite.mockSettlementRepo.On("ApplySettlement", ctx, mock.AnythingOfType("domain.Settlement"), (*domain.BankMovement)(nil), mock.AnythingOfType("*domain.AuditEntry")).
		Run(func(args mock.Arguments) {
			s := args.Get(1).(domain.Settlement)
			suite.True(s.Amount.Equal(decimal.NewFromInt(400)))
			suite.True(s.BalanceBefore.Equal(decimal.NewFromInt(1000)))
			suite.True(s.BalanceAfter.Equal(decimal.NewFromInt(600)))
			suite.Equal(domain.SettlementActive, s.Status)
		}).
		Return(&updated, &domain.Settlement{SettlementID: uuid.NewString(), Status: domain.SettlementActive}, nil).Once()

	gotTitle, gotSettlement, err := suite.service.SettleTitle(ctx, suite.companyID, title.TitleID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TitlePartial, gotTitle.Status)
	suite.True(gotTitle.OutstandingBalance.Equal(decimal.NewFromInt(600)))
	suite.Equal(domain.SettlementActive, gotSettlement.Status)
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettleTitle_WithBankAccount() {
	ctx := context.Background()
	title := suite.openTitle(1000)
	account := &domain.BankAccount{
		BankAccountID: uuid.NewString(),
		CompanyID:     suite.companyID,
		Name:          "Operating",
		Balance:       decimal.NewFromInt(5000),
		IsActive:      true,
	}
	req := dto.SettleTitleRequest{
		Amount:        decimal.NewFromInt(1000),
		Additions:     decimal.NewFromInt(20),
		Discounts:     decimal.NewFromInt(5),
		BankAccountID: &account.BankAccountID,
	}

	updated := *title
	updated.OutstandingBalance = decimal.Zero
	updated.Status = domain.TitleSettled

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockTitleRepo.On("FindTitleByID", ctx, suite.companyID, title.TitleID).Return(title, nil).Once()
	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.companyID, account.BankAccountID).Return(account, nil).Once()
	suite.mockSettlementRepo.On("ApplySettlement", ctx, mock.AnythingOfType("domain.Settlement"), mock.AnythingOfType("*domain.BankMovement"), mock.AnythingOfType("*domain.AuditEntry")).
		Run(func(args mock.Arguments) {
			s := args.Get(1).(domain.Settlement)
			mv := args.Get(2).(*domain.BankMovement)
			suite.Require().NotNil(mv)
			suite.Equal(domain.MovementCredit, mv.Type, "receivable settlement credits the account")
			suite.True(mv.Amount.Equal(decimal.NewFromInt(1015)), "cash moved = amount + additions - discounts")
			suite.Equal(account.BankAccountID, mv.BankAccountID)
			suite.Require().NotNil(s.MovementID)
			suite.Equal(mv.MovementID, *s.MovementID)
		}).
		Return(&updated, &domain.Settlement{SettlementID: uuid.NewString(), Status: domain.SettlementActive}, nil).Once()

	gotTitle, _, err := suite.service.SettleTitle(ctx, suite.companyID, title.TitleID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TitleSettled, gotTitle.Status)
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettleTitle_AmountExceedsBalance() {
	ctx := context.Background()
	title := suite.openTitle(1000)
	title.OutstandingBalance = decimal.NewFromInt(300)
	title.Status = domain.TitlePartial
	req := dto.SettleTitleRequest{Amount: decimal.NewFromInt(400)}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockTitleRepo.On("FindTitleByID", ctx, suite.companyID, title.TitleID).Return(title, nil).Once()

	_, _, err := suite.service.SettleTitle(ctx, suite.companyID, title.TitleID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "ApplySettlement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestSettleTitle_AlreadySettled() {
	ctx := context.Background()
	title := suite.openTitle(1000)
	title.OutstandingBalance = decimal.Zero
	title.Status = domain.TitleSettled
	req := dto.SettleTitleRequest{Amount: decimal.NewFromInt(1)}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockTitleRepo.On("FindTitleByID", ctx, suite.companyID, title.TitleID).Return(title, nil).Once()

	_, _, err := suite.service.SettleTitle(ctx, suite.companyID, title.TitleID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDomain)
}

func (suite *SettlementServiceTestSuite) TestSettleTitle_CancelledTitle() {
	ctx := context.Background()
	title := suite.openTitle(1000)
	title.Status = domain.TitleCancelled
	req := dto.SettleTitleRequest{Amount: decimal.NewFromInt(100)}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockTitleRepo.On("FindTitleByID", ctx, suite.companyID, title.TitleID).Return(title, nil).Once()

	_, _, err := suite.service.SettleTitle(ctx, suite.companyID, title.TitleID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbiddenState)
}

func (suite *SettlementServiceTestSuite) TestSettleTitle_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.SettleTitleRequest{Amount: decimal.Zero}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()

	_, _, err := suite.service.SettleTitle(ctx, suite.companyID, uuid.NewString(), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTitleRepo.AssertNotCalled(suite.T(), "FindTitleByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) activeSettlement(title *domain.Title, amount int64) *domain.Settlement {
	value := decimal.NewFromInt(amount)
	return &domain.Settlement{
		SettlementID:  uuid.NewString(),
		TitleID:       title.TitleID,
		CompanyID:     suite.companyID,
		Amount:        value,
		Additions:     decimal.Zero,
		Discounts:     decimal.Zero,
		Total:         value,
		BalanceBefore: title.Total,
		BalanceAfter:  title.Total.Sub(value),
		Date:          time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		Status:        domain.SettlementActive,
	}
}

func (suite *SettlementServiceTestSuite) TestReverseSettlement_Success() {
	ctx := context.Background()
	title := suite.openTitle(1000)
	original := suite.activeSettlement(title, 400)
	req := dto.ReverseSettlementRequest{Justification: "payment bounced at the bank"}

	restored := *title
	restored.OutstandingBalance = decimal.NewFromInt(1000)
	restored.Status = domain.TitlePending

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockSettlementRepo.On("FindSettlementByID", ctx, suite.companyID, original.SettlementID).Return(original, nil).Once()
	suite.mockSettlementRepo.On("ApplyReversal", ctx, *original, mock.AnythingOfType("domain.Settlement"), (*domain.BankMovement)(nil), mock.AnythingOfType("*domain.AuditEntry")).
		Run(func(args mock.Arguments) {
			reversal := args.Get(2).(domain.Settlement)
			suite.Equal(domain.SettlementReversal, reversal.Status)
			suite.Require().NotNil(reversal.ReversalOfID)
			suite.Equal(original.SettlementID, *reversal.ReversalOfID)
			suite.True(reversal.BalanceBefore.Equal(original.BalanceAfter), "reversal restores the pre-settlement balance")
			suite.True(reversal.BalanceAfter.Equal(original.BalanceBefore))
		}).
		Return(&restored, nil).Once()

	gotTitle, gotReversal, err := suite.service.ReverseSettlement(ctx, suite.companyID, original.SettlementID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TitlePending, gotTitle.Status)
	suite.True(gotTitle.OutstandingBalance.Equal(decimal.NewFromInt(1000)))
	suite.Equal(domain.SettlementReversal, gotReversal.Status)
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestReverseSettlement_WithBankMovement() {
	ctx := context.Background()
	title := suite.openTitle(1000)
	accountID := uuid.NewString()
	original := suite.activeSettlement(title, 1000)
	original.BankAccountID = &accountID
	req := dto.ReverseSettlementRequest{Justification: "duplicate settlement entry"}

	restored := *title

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockSettlementRepo.On("FindSettlementByID", ctx, suite.companyID, original.SettlementID).Return(original, nil).Once()
	suite.mockTitleRepo.On("FindTitleByID", ctx, suite.companyID, title.TitleID).Return(title, nil).Once()
	suite.mockSettlementRepo.On("ApplyReversal", ctx, *original, mock.AnythingOfType("domain.Settlement"), mock.AnythingOfType("*domain.BankMovement"), mock.AnythingOfType("*domain.AuditEntry")).
		Run(func(args mock.Arguments) {
			mv := args.Get(3).(*domain.BankMovement)
			suite.Require().NotNil(mv)
			suite.Equal(domain.MovementDebit, mv.Type, "reversing a receivable settlement debits the account")
			suite.True(mv.Amount.Equal(original.Total))
			suite.Equal(accountID, mv.BankAccountID)
		}).
		Return(&restored, nil).Once()

	_, _, err := suite.service.ReverseSettlement(ctx, suite.companyID, original.SettlementID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestReverseSettlement_AlreadyReversed() {
	ctx := context.Background()
	title := suite.openTitle(1000)
	original := suite.activeSettlement(title, 400)
	original.Status = domain.SettlementReversed
	req := dto.ReverseSettlementRequest{Justification: "payment bounced at the bank"}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockSettlementRepo.On("FindSettlementByID", ctx, suite.companyID, original.SettlementID).Return(original, nil).Once()

	_, _, err := suite.service.ReverseSettlement(ctx, suite.companyID, original.SettlementID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDomain)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "ApplyReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestReverseSettlement_CannotReverseAReversal() {
	ctx := context.Background()
	title := suite.openTitle(1000)
	original := suite.activeSettlement(title, 400)
	original.Status = domain.SettlementReversal
	req := dto.ReverseSettlementRequest{Justification: "operator error on the estorno"}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleMember).Return(nil).Once()
	suite.mockSettlementRepo.On("FindSettlementByID", ctx, suite.companyID, original.SettlementID).Return(original, nil).Once()

	_, _, err := suite.service.ReverseSettlement(ctx, suite.companyID, original.SettlementID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDomain)
}

func (suite *SettlementServiceTestSuite) TestListSettlementsByTitle_Success() {
	ctx := context.Background()
	title := suite.openTitle(1000)
	history := []domain.Settlement{*suite.activeSettlement(title, 400), *suite.activeSettlement(title, 600)}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTitleRepo.On("FindTitleByID", ctx, suite.companyID, title.TitleID).Return(title, nil).Once()
	suite.mockSettlementRepo.On("ListSettlementsByTitle", ctx, suite.companyID, title.TitleID).Return(history, nil).Once()

	got, err := suite.service.ListSettlementsByTitle(ctx, suite.companyID, title.TitleID, suite.userID)

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
