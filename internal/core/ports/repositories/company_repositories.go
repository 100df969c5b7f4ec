package repositories

import (
	"context"

	"github.com/finledger/fin_titles_app/internal/core/domain"
)

// CompanyRepositoryFacade persists companies (tenants) and memberships.
type CompanyRepositoryFacade interface {
	SaveCompany(ctx context.Context, company domain.Company) error
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, company domain.Company) error
	AddUserToCompany(ctx context.Context, membership domain.UserCompany) error
	FindUserCompanyRole(ctx context.Context, userID string, companyID string) (*domain.UserCompanyRole, error)
}
