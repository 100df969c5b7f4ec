package services

import (
	"context"

	"github.com/finledger/fin_titles_app/internal/core/domain"
	"github.com/finledger/fin_titles_app/internal/dto"
)

// CompanyAuthorizerSvc answers whether a user may act on a company.
// Consulted by every other service before touching company data.
type CompanyAuthorizerSvc interface {
	// AuthorizeUserAction returns nil when the user holds at least the
	// required role; apperrors.ErrNotFound when the company is unknown to
	// the user (existence is obscured); apperrors.ErrForbidden otherwise.
	AuthorizeUserAction(ctx context.Context, userID string, companyID string, requiredRole domain.UserCompanyRole) error
}

// CompanySvcFacade manages tenants and memberships.
type CompanySvcFacade interface {
	CompanyAuthorizerSvc
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)
	GetCompanyByID(ctx context.Context, companyID string, requestingUserID string) (*domain.Company, error)
	ListUserCompanies(ctx context.Context, requestingUserID string) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, requestingUserID string) (*domain.Company, error)
	AddMember(ctx context.Context, companyID string, req dto.AddMemberRequest, requestingUserID string) error
}
