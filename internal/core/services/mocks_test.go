package services_test

import (
	"context"
	"time"

	"github.com/finledger/fin_titles_app/internal/core/domain"
	portsrepo "github.com/finledger/fin_titles_app/internal/core/ports/repositories"
	portssvc "github.com/finledger/fin_titles_app/internal/core/ports/services"
	"github.com/finledger/fin_titles_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock CompanyAuthorizer ---

type MockAuthorizer struct {
	mock.Mock
}

var _ portssvc.CompanyAuthorizerSvc = (*MockAuthorizer)(nil)

func (m *MockAuthorizer) AuthorizeUserAction(ctx context.Context, userID string, companyID string, requiredRole domain.UserCompanyRole) error {
	args := m.Called(ctx, userID, companyID, requiredRole)
	return args.Error(0)
}

// --- Mock TitleRepository ---

type MockTitleRepository struct {
	mock.Mock
}

var _ portsrepo.TitleRepositoryFacade = (*MockTitleRepository)(nil)

func (m *MockTitleRepository) SaveTitle(ctx context.Context, title domain.Title) error {
	args := m.Called(ctx, title)
	return args.Error(0)
}

func (m *MockTitleRepository) SaveTitlesBatch(ctx context.Context, titles []domain.Title, audit *domain.AuditEntry) error {
	args := m.Called(ctx, titles, audit)
	return args.Error(0)
}

func (m *MockTitleRepository) FindTitleByID(ctx context.Context, companyID string, titleID string) (*domain.Title, error) {
	args := m.Called(ctx, companyID, titleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Title), args.Error(1)
}

func (m *MockTitleRepository) ListTitles(ctx context.Context, companyID string, params dto.ListTitlesParams) ([]domain.Title, *string, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.Title), nextToken, args.Error(2)
}

func (m *MockTitleRepository) UpdateTitle(ctx context.Context, title domain.Title) error {
	args := m.Called(ctx, title)
	return args.Error(0)
}

func (m *MockTitleRepository) CancelTitle(ctx context.Context, title domain.Title, audit domain.AuditEntry) error {
	args := m.Called(ctx, title, audit)
	return args.Error(0)
}

func (m *MockTitleRepository) SoftDeleteTitle(ctx context.Context, companyID string, titleID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, companyID, titleID, deletedBy, deletedAt)
	return args.Error(0)
}

// --- Mock SettlementRepository ---

type MockSettlementRepository struct {
	mock.Mock
}

var _ portsrepo.SettlementRepositoryFacade = (*MockSettlementRepository)(nil)

func (m *MockSettlementRepository) ApplySettlement(ctx context.Context, settlement domain.Settlement, movement *domain.BankMovement, audit *domain.AuditEntry) (*domain.Title, *domain.Settlement, error) {
	args := m.Called(ctx, settlement, movement, audit)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Title), args.Get(1).(*domain.Settlement), args.Error(2)
}

func (m *MockSettlementRepository) ApplyReversal(ctx context.Context, original domain.Settlement, reversal domain.Settlement, movement *domain.BankMovement, audit *domain.AuditEntry) (*domain.Title, error) {
	args := m.Called(ctx, original, reversal, movement, audit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Title), args.Error(1)
}

func (m *MockSettlementRepository) FindSettlementByID(ctx context.Context, companyID string, settlementID string) (*domain.Settlement, error) {
	args := m.Called(ctx, companyID, settlementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListSettlementsByTitle(ctx context.Context, companyID string, titleID string) ([]domain.Settlement, error) {
	args := m.Called(ctx, companyID, titleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

// --- Mock BankAccountRepository ---

type MockBankAccountRepository struct {
	mock.Mock
}

var _ portsrepo.BankAccountRepositoryFacade = (*MockBankAccountRepository)(nil)

func (m *MockBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount, opening *domain.BankMovement) error {
	args := m.Called(ctx, account, opening)
	return args.Error(0)
}

func (m *MockBankAccountRepository) FindBankAccountByID(ctx context.Context, companyID string, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, companyID, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) ListBankAccounts(ctx context.Context, companyID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) ListMovements(ctx context.Context, companyID string, bankAccountID string, limit int, nextToken *string) ([]domain.BankMovement, *string, error) {
	args := m.Called(ctx, companyID, bankAccountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.BankMovement), returnedToken, args.Error(2)
}

// --- Mock CounterpartyRepository ---

type MockCounterpartyRepository struct {
	mock.Mock
}

var _ portsrepo.CounterpartyRepositoryFacade = (*MockCounterpartyRepository)(nil)

func (m *MockCounterpartyRepository) SaveCounterparty(ctx context.Context, cp domain.Counterparty) error {
	args := m.Called(ctx, cp)
	return args.Error(0)
}

func (m *MockCounterpartyRepository) FindCounterpartyByID(ctx context.Context, companyID string, counterpartyID string) (*domain.Counterparty, error) {
	args := m.Called(ctx, companyID, counterpartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyRepository) ListCounterparties(ctx context.Context, companyID string) ([]domain.Counterparty, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Counterparty), args.Error(1)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, cat domain.Category) error {
	args := m.Called(ctx, cat)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, companyID string, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, companyID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, companyID string) ([]domain.Category, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// --- Mock AuditRepository ---

type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditEntriesByEntity(ctx context.Context, companyID string, entityID string) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, companyID, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) FindTitleRows(ctx context.Context, companyID string, params dto.TitleReportParams) ([]domain.TitleReportRow, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TitleReportRow), args.Error(1)
}

func (m *MockReportingRepository) FindOpenTitles(ctx context.Context, companyID string, nature domain.TitleNature) ([]domain.Title, error) {
	args := m.Called(ctx, companyID, nature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Title), args.Error(1)
}

func (m *MockReportingRepository) FindCashFlowTitles(ctx context.Context, companyID *string, start, end time.Time) ([]domain.Title, map[string]string, error) {
	args := m.Called(ctx, companyID, start, end)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var names map[string]string
	if args.Get(1) != nil {
		names = args.Get(1).(map[string]string)
	}
	return args.Get(0).([]domain.Title), names, args.Error(2)
}

// --- Mock CompanyRepository ---

type MockCompanyRepository struct {
	mock.Mock
}

var _ portsrepo.CompanyRepositoryFacade = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) AddUserToCompany(ctx context.Context, membership domain.UserCompany) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindUserCompanyRole(ctx context.Context, userID string, companyID string) (*domain.UserCompanyRole, error) {
	args := m.Called(ctx, userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCompanyRole), args.Error(1)
}
