package services

import (
	"context"

	"github.com/finledger/fin_titles_app/internal/core/domain"
	"github.com/finledger/fin_titles_app/internal/dto"
)

// CounterpartySvcFacade manages the client/supplier registry.
type CounterpartySvcFacade interface {
	CreateCounterparty(ctx context.Context, companyID string, req dto.CreateCounterpartyRequest, creatorUserID string) (*domain.Counterparty, error)
	GetCounterpartyByID(ctx context.Context, companyID string, counterpartyID string, requestingUserID string) (*domain.Counterparty, error)
	ListCounterparties(ctx context.Context, companyID string, requestingUserID string) ([]domain.Counterparty, error)
}

// CategorySvcFacade manages the chart-of-accounts classification nodes.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, companyID string, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, companyID string, categoryID string, requestingUserID string) (*domain.Category, error)
	ListCategories(ctx context.Context, companyID string, requestingUserID string) ([]domain.Category, error)
}

// BankAccountSvcFacade manages bank accounts and exposes their movement
// history.
type BankAccountSvcFacade interface {
	CreateBankAccount(ctx context.Context, companyID string, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error)
	GetBankAccountByID(ctx context.Context, companyID string, bankAccountID string, requestingUserID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, companyID string, requestingUserID string) ([]domain.BankAccount, error)
	ListMovements(ctx context.Context, companyID string, bankAccountID string, limit int, nextToken *string, requestingUserID string) ([]domain.BankMovement, *string, error)
}
