package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finledger/fin_titles_app/internal/apperrors"
	"github.com/finledger/fin_titles_app/internal/core/domain"
	portsrepo "github.com/finledger/fin_titles_app/internal/core/ports/repositories"
	portssvc "github.com/finledger/fin_titles_app/internal/core/ports/services"
	"github.com/finledger/fin_titles_app/internal/dto"
	"github.com/finledger/fin_titles_app/internal/utils/dates"
	"github.com/finledger/fin_titles_app/internal/utils/money"
	"github.com/google/uuid"
)

// counterpartyService manages the client/supplier registry.
type counterpartyService struct {
	BaseService
	counterpartyRepo portsrepo.CounterpartyRepositoryFacade
}

// NewCounterpartyService creates a new CounterpartyService.
func NewCounterpartyService(counterpartyRepo portsrepo.CounterpartyRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc) portssvc.CounterpartySvcFacade {
	return &counterpartyService{
		BaseService:      BaseService{CompanyAuthorizer: authorizer},
		counterpartyRepo: counterpartyRepo,
	}
}

var _ portssvc.CounterpartySvcFacade = (*counterpartyService)(nil)

func (s *counterpartyService) CreateCounterparty(ctx context.Context, companyID string, req dto.CreateCounterpartyRequest, creatorUserID string) (*domain.Counterparty, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cp := domain.Counterparty{
		CounterpartyID: uuid.NewString(),
		CompanyID:      companyID,
		Name:           req.Name,
		TaxID:          req.TaxID,
		Type:           req.Type,
		Email:          req.Email,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.counterpartyRepo.SaveCounterparty(ctx, cp); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: counterparty with tax id %s already exists", apperrors.ErrDuplicate, req.TaxID)
		}
		s.LogError(ctx, err, "Failed to save counterparty")
		return nil, fmt.Errorf("failed to save counterparty: %w", err)
	}

	s.LogInfo(ctx, "Counterparty created", slog.String("counterparty_id", cp.CounterpartyID))
	return &cp, nil
}

func (s *counterpartyService) GetCounterpartyByID(ctx context.Context, companyID string, counterpartyID string, requestingUserID string) (*domain.Counterparty, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	cp, err := s.counterpartyRepo.FindCounterpartyByID(ctx, companyID, counterpartyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find counterparty %s: %w", counterpartyID, err)
	}
	return cp, nil
}

func (s *counterpartyService) ListCounterparties(ctx context.Context, companyID string, requestingUserID string) ([]domain.Counterparty, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	cps, err := s.counterpartyRepo.ListCounterparties(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list counterparties")
		return nil, fmt.Errorf("failed to list counterparties: %w", err)
	}
	return cps, nil
}

// categoryService manages chart-of-accounts classification nodes.
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc) portssvc.CategorySvcFacade {
	return &categoryService{
		BaseService:  BaseService{CompanyAuthorizer: authorizer},
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, companyID string, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.categoryRepo.FindCategoryByID(ctx, companyID, *req.ParentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent category %s not found", apperrors.ErrValidation, *req.ParentID)
			}
			return nil, fmt.Errorf("failed to resolve parent category: %w", err)
		}
		if !parent.IsActive {
			return nil, fmt.Errorf("%w: parent category %s is inactive", apperrors.ErrValidation, parent.CategoryID)
		}
	}

	now := time.Now().UTC()
	cat := domain.Category{
		CategoryID: uuid.NewString(),
		CompanyID:  companyID,
		Name:       req.Name,
		Code:       req.Code,
		Kind:       req.Kind,
		ParentID:   req.ParentID,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, cat); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: category with code %s already exists", apperrors.ErrDuplicate, req.Code)
		}
		s.LogError(ctx, err, "Failed to save category")
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	s.LogInfo(ctx, "Category created", slog.String("category_id", cat.CategoryID), slog.String("code", cat.Code))
	return &cat, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, companyID string, categoryID string, requestingUserID string) (*domain.Category, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	cat, err := s.categoryRepo.FindCategoryByID(ctx, companyID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	return cat, nil
}

func (s *categoryService) ListCategories(ctx context.Context, companyID string, requestingUserID string) ([]domain.Category, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	cats, err := s.categoryRepo.ListCategories(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return cats, nil
}

// bankAccountService manages bank accounts and their ledgers.
type bankAccountService struct {
	BaseService
	bankAccountRepo portsrepo.BankAccountRepositoryFacade
}

// NewBankAccountService creates a new BankAccountService.
func NewBankAccountService(bankAccountRepo portsrepo.BankAccountRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc) portssvc.BankAccountSvcFacade {
	return &bankAccountService{
		BaseService:     BaseService{CompanyAuthorizer: authorizer},
		bankAccountRepo: bankAccountRepo,
	}
}

var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

func (s *bankAccountService) CreateBankAccount(ctx context.Context, companyID string, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	balance := money.Round2(req.OpeningBalance)
	account := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		CompanyID:     companyID,
		Name:          req.Name,
		BankCode:      req.BankCode,
		Agency:        req.Agency,
		Number:        req.Number,
		Balance:       balance,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// A nonzero opening balance is recorded as the account's first ledger line.
	var opening *domain.BankMovement
	if !balance.IsZero() {
		opening = &domain.BankMovement{
			MovementID:    uuid.NewString(),
			BankAccountID: account.BankAccountID,
			CompanyID:     companyID,
			Type:          domain.MovementCredit,
			Amount:        balance,
			BalanceAfter:  balance,
			Date:          dates.DayOnly(now),
			Description:   "Opening balance",
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}

	if err := s.bankAccountRepo.SaveBankAccount(ctx, account, opening); err != nil {
		s.LogError(ctx, err, "Failed to save bank account")
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}

	s.LogInfo(ctx, "Bank account created",
		slog.String("bank_account_id", account.BankAccountID),
		slog.String("opening_balance", balance.StringFixed(2)))
	return &account, nil
}

func (s *bankAccountService) GetBankAccountByID(ctx context.Context, companyID string, bankAccountID string, requestingUserID string) (*domain.BankAccount, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	account, err := s.bankAccountRepo.FindBankAccountByID(ctx, companyID, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bank account %s: %w", bankAccountID, err)
	}
	return account, nil
}

func (s *bankAccountService) ListBankAccounts(ctx context.Context, companyID string, requestingUserID string) ([]domain.BankAccount, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	accounts, err := s.bankAccountRepo.ListBankAccounts(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank accounts")
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	return accounts, nil
}

func (s *bankAccountService) ListMovements(ctx context.Context, companyID string, bankAccountID string, limit int, nextToken *string, requestingUserID string) ([]domain.BankMovement, *string, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	if _, err := s.bankAccountRepo.FindBankAccountByID(ctx, companyID, bankAccountID); err != nil {
		return nil, nil, fmt.Errorf("failed to find bank account %s: %w", bankAccountID, err)
	}
	movements, next, err := s.bankAccountRepo.ListMovements(ctx, companyID, bankAccountID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank movements", slog.String("bank_account_id", bankAccountID))
		return nil, nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, next, nil
}
