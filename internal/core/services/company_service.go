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
	"github.com/google/uuid"
)

// companyService manages tenants and answers membership authorization for
// every other service.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// AuthorizeUserAction implements portssvc.CompanyAuthorizerSvc.
// Unknown membership is reported as NotFound to obscure company existence.
func (s *companyService) AuthorizeUserAction(ctx context.Context, userID string, companyID string, requiredRole domain.UserCompanyRole) error {
	role, err := s.companyRepo.FindUserCompanyRole(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to check company membership: %w", err)
	}
	if !role.CanActAs(requiredRole) {
		return fmt.Errorf("%w: role %s cannot act as %s", apperrors.ErrForbidden, *role, requiredRole)
	}
	return nil
}

func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	company := domain.Company{
		CompanyID: uuid.NewString(),
		Name:      req.Name,
		TaxID:     req.TaxID,
		BranchOf:  req.BranchOf,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company")
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	// The creator becomes the first admin.
	membership := domain.UserCompany{
		UserID:    creatorUserID,
		CompanyID: company.CompanyID,
		Role:      domain.RoleAdmin,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add creator as company admin", slog.String("company_id", company.CompanyID))
		return nil, fmt.Errorf("failed to add creator membership: %w", err)
	}

	s.LogInfo(ctx, "Company created", slog.String("company_id", company.CompanyID))
	return &company, nil
}

func (s *companyService) GetCompanyByID(ctx context.Context, companyID string, requestingUserID string) (*domain.Company, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find company %s: %w", companyID, err)
	}
	return company, nil
}

func (s *companyService) ListUserCompanies(ctx context.Context, requestingUserID string) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompaniesByUser(ctx, requestingUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies for user")
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

func (s *companyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, requestingUserID string) (*domain.Company, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find company %s: %w", companyID, err)
	}

	updated := false
	if req.Name != nil {
		company.Name = *req.Name
		updated = true
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return company, nil
	}

	company.LastUpdatedAt = time.Now().UTC()
	company.LastUpdatedBy = requestingUserID
	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		s.LogError(ctx, err, "Failed to update company", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}

func (s *companyService) AddMember(ctx context.Context, companyID string, req dto.AddMemberRequest, requestingUserID string) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	now := time.Now().UTC()
	membership := domain.UserCompany{
		UserID:    req.UserID,
		CompanyID: companyID,
		Role:      req.Role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add company member", slog.String("company_id", companyID), slog.String("member_id", req.UserID))
		return fmt.Errorf("failed to add member: %w", err)
	}

	s.LogInfo(ctx, "Member added to company", slog.String("company_id", companyID), slog.String("member_id", req.UserID), slog.String("role", string(req.Role)))
	return nil
}
