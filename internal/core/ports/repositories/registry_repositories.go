package repositories

import (
	"context"

	"github.com/finledger/fin_titles_app/internal/core/domain"
)

// CounterpartyRepositoryFacade persists counterparties.
type CounterpartyRepositoryFacade interface {
	SaveCounterparty(ctx context.Context, cp domain.Counterparty) error
	FindCounterpartyByID(ctx context.Context, companyID string, counterpartyID string) (*domain.Counterparty, error)
	ListCounterparties(ctx context.Context, companyID string) ([]domain.Counterparty, error)
}

// CategoryRepositoryFacade persists chart-of-accounts categories.
type CategoryRepositoryFacade interface {
	SaveCategory(ctx context.Context, cat domain.Category) error
	FindCategoryByID(ctx context.Context, companyID string, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, companyID string) ([]domain.Category, error)
}
