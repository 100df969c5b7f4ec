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
	"github.com/finledger/fin_titles_app/internal/utils/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// titleService implements the lifecycle of receivable/payable titles.
// It is the only writer of title state.
type titleService struct {
	BaseService
	titleRepo        portsrepo.TitleRepositoryFacade
	counterpartyRepo portsrepo.CounterpartyRepositoryFacade
	categoryRepo     portsrepo.CategoryRepositoryFacade
	auditRepo        portsrepo.AuditRepositoryFacade
}

// NewTitleService creates a new TitleService.
func NewTitleService(
	titleRepo portsrepo.TitleRepositoryFacade,
	counterpartyRepo portsrepo.CounterpartyRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	auditRepo portsrepo.AuditRepositoryFacade,
	authorizer portssvc.CompanyAuthorizerSvc,
) portssvc.TitleSvcFacade {
	return &titleService{
		BaseService:      BaseService{CompanyAuthorizer: authorizer},
		titleRepo:        titleRepo,
		counterpartyRepo: counterpartyRepo,
		categoryRepo:     categoryRepo,
		auditRepo:        auditRepo,
	}
}

var _ portssvc.TitleSvcFacade = (*titleService)(nil)

// checkReferences verifies the counterparty and category exist, are active
// and belong to the company, and that the category kind accepts the nature.
func (s *titleService) checkReferences(ctx context.Context, companyID string, counterpartyID, categoryID string, nature domain.TitleNature) error {
	cp, err := s.counterpartyRepo.FindCounterpartyByID(ctx, companyID, counterpartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: counterparty %s not found", apperrors.ErrValidation, counterpartyID)
		}
		return fmt.Errorf("failed to resolve counterparty: %w", err)
	}
	if !cp.IsActive {
		return fmt.Errorf("%w: counterparty %s is inactive", apperrors.ErrValidation, counterpartyID)
	}

	cat, err := s.categoryRepo.FindCategoryByID(ctx, companyID, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: category %s not found", apperrors.ErrValidation, categoryID)
		}
		return fmt.Errorf("failed to resolve category: %w", err)
	}
	if !cat.IsActive {
		return fmt.Errorf("%w: category %s is inactive", apperrors.ErrValidation, categoryID)
	}
	if !cat.Kind.Accepts(nature) {
		return fmt.Errorf("%w: category %s does not accept %s titles", apperrors.ErrValidation, categoryID, nature)
	}
	return nil
}

// CreateTitle validates the request, recomputes the total and persists a
// new PENDING title with its outstanding balance equal to the total.
func (s *titleService) CreateTitle(ctx context.Context, companyID string, req dto.CreateTitleRequest, creatorUserID string) (*domain.Title, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, companyID, req.CounterpartyID, req.CategoryID, req.Nature); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	total := req.ComputedTotal()
	title := domain.Title{
		TitleID:           uuid.NewString(),
		CompanyID:         companyID,
		Nature:            req.Nature,
		CounterpartyID:    req.CounterpartyID,
		CategoryID:        req.CategoryID,
		Document:          req.Document,
		Series:            req.Series,
		InstallmentNumber: req.InstallmentNumber,
		Kind:              req.Kind,
		Description:       req.Description,
		IssueDate:         req.IssueDate,
		DueDate:           req.DueDate,
		SettlementDate:    req.SettlementDate,
		Principal:         money.Round2(req.Principal),
		Additions:         money.Round2(req.Additions),
		Discounts:         money.Round2(req.Discounts),
		Total:             total,
		OutstandingBalance: total,
		Status:             domain.TitlePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.titleRepo.SaveTitle(ctx, title); err != nil {
		s.LogError(ctx, err, "Failed to save title", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save title: %w", err)
	}

	if err := s.auditRepo.SaveAuditEntry(ctx, domain.AuditEntry{
		AuditID:   uuid.NewString(),
		EventType: domain.AuditTitleCreated,
		Severity:  domain.SeverityInfo,
		ActorID:   creatorUserID,
		CompanyID: companyID,
		EntityID:  title.TitleID,
		Details:   map[string]string{"document": title.Document, "total": title.Total.StringFixed(2)},
		Success:   true,
		Timestamp: now,
	}); err != nil {
		// Creation already committed; the audit trail for creation is
		// best-effort, unlike cancellation.
		s.LogWarn(ctx, "Failed to write creation audit entry", slog.String("title_id", title.TitleID), slog.String("error", err.Error()))
	}

	s.LogInfo(ctx, "Title created", slog.String("title_id", title.TitleID), slog.String("nature", string(title.Nature)))
	return &title, nil
}

func (s *titleService) GetTitleByID(ctx context.Context, companyID string, titleID string, requestingUserID string) (*domain.Title, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	title, err := s.titleRepo.FindTitleByID(ctx, companyID, titleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find title %s: %w", titleID, err)
	}
	return title, nil
}

func (s *titleService) ListTitles(ctx context.Context, companyID string, params dto.ListTitlesParams, requestingUserID string) ([]domain.Title, *string, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	if params.Limit <= 0 {
		params.Limit = 20
	}
	titles, nextToken, err := s.titleRepo.ListTitles(ctx, companyID, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to list titles", slog.String("company_id", companyID))
		return nil, nil, fmt.Errorf("failed to list titles: %w", err)
	}
	return titles, nextToken, nil
}

// UpdateTitle patches structural fields of a title that has no settlement
// history. Editing financial history is blocked.
func (s *titleService) UpdateTitle(ctx context.Context, companyID string, titleID string, req dto.UpdateTitleRequest, requestingUserID string) (*domain.Title, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	title, err := s.titleRepo.FindTitleByID(ctx, companyID, titleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find title %s: %w", titleID, err)
	}

	if title.Status == domain.TitleCancelled {
		return nil, fmt.Errorf("%w: title is cancelled", apperrors.ErrForbiddenState)
	}
	if title.HasSettlementActivity() {
		return nil, fmt.Errorf("%w: title has settlement history and cannot be edited", apperrors.ErrForbiddenState)
	}

	if req.CounterpartyID != nil {
		title.CounterpartyID = *req.CounterpartyID
	}
	if req.CategoryID != nil {
		title.CategoryID = *req.CategoryID
	}
	if req.CounterpartyID != nil || req.CategoryID != nil {
		if err := s.checkReferences(ctx, companyID, title.CounterpartyID, title.CategoryID, title.Nature); err != nil {
			return nil, err
		}
	}
	if req.Document != nil {
		title.Document = *req.Document
	}
	if req.Series != nil {
		title.Series = *req.Series
	}
	if req.Kind != nil {
		title.Kind = *req.Kind
	}
	if req.Description != nil {
		title.Description = *req.Description
	}
	if req.IssueDate != nil {
		title.IssueDate = *req.IssueDate
	}
	if req.DueDate != nil {
		title.DueDate = *req.DueDate
	}

	// Re-validate date ordering over the merged values.
	if title.DueDate.Before(title.IssueDate) {
		return nil, fmt.Errorf("%w: due date must not precede issue date", apperrors.ErrValidation)
	}

	if req.HasAmountChange() {
		if req.Principal != nil {
			title.Principal = money.Round2(*req.Principal)
		}
		if req.Additions != nil {
			title.Additions = money.Round2(*req.Additions)
		}
		if req.Discounts != nil {
			title.Discounts = money.Round2(*req.Discounts)
		}
		total := money.ComputeTotal(title.Principal, title.Additions, title.Discounts)
		if total.IsNegative() {
			return nil, fmt.Errorf("%w: discounts exceed principal plus additions", apperrors.ErrValidation)
		}
		title.Total = total
		title.OutstandingBalance = total // no settlement exists, balance tracks total
	}

	title.LastUpdatedAt = time.Now().UTC()
	title.LastUpdatedBy = requestingUserID

	if err := s.titleRepo.UpdateTitle(ctx, *title); err != nil {
		s.LogError(ctx, err, "Failed to update title", slog.String("title_id", titleID))
		return nil, fmt.Errorf("failed to update title: %w", err)
	}

	s.LogInfo(ctx, "Title updated", slog.String("title_id", titleID))
	return title, nil
}

// CancelTitle cancels a PENDING title. The audit entry is written in the
// same transaction; no cancellation is durable without its audit trail.
func (s *titleService) CancelTitle(ctx context.Context, companyID string, titleID string, req dto.CancelTitleRequest, requestingUserID string) (*domain.Title, error) {
	if requestingUserID == "" {
		return nil, fmt.Errorf("%w: cancellation requires an identified actor", apperrors.ErrValidation)
	}
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	title, err := s.titleRepo.FindTitleByID(ctx, companyID, titleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find title %s: %w", titleID, err)
	}

	if title.Status == domain.TitleCancelled {
		return nil, fmt.Errorf("%w: title is already cancelled", apperrors.ErrDomain)
	}
	if title.Status == domain.TitleSettled || title.Status == domain.TitlePartial || title.HasSettlementActivity() {
		return nil, fmt.Errorf("%w: title has settlements; reverse them before cancelling", apperrors.ErrForbiddenState)
	}

	now := time.Now().UTC()
	priorStatus := title.Status
	title.Status = domain.TitleCancelled
	title.LastUpdatedAt = now
	title.LastUpdatedBy = requestingUserID

	audit := domain.AuditEntry{
		AuditID:   uuid.NewString(),
		EventType: domain.AuditTitleCancelled,
		Severity:  domain.SeverityWarning,
		ActorID:   requestingUserID,
		CompanyID: companyID,
		EntityID:  title.TitleID,
		Details: map[string]string{
			"justification": req.Justification,
			"priorStatus":   string(priorStatus),
			"total":         title.Total.StringFixed(2),
			"outstanding":   title.OutstandingBalance.StringFixed(2),
		},
		Success:   true,
		Timestamp: now,
	}

	if err := s.titleRepo.CancelTitle(ctx, *title, audit); err != nil {
		s.LogError(ctx, err, "Failed to cancel title", slog.String("title_id", titleID))
		return nil, fmt.Errorf("failed to cancel title: %w", err)
	}

	s.LogInfo(ctx, "Title cancelled", slog.String("title_id", titleID))
	return title, nil
}

// GenerateInstallments splits one obligation into n amount-balanced titles
// persisted in a single batch.
func (s *titleService) GenerateInstallments(ctx context.Context, companyID string, req dto.GenerateInstallmentsRequest, creatorUserID string) ([]domain.Title, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, companyID, req.CounterpartyID, req.CategoryID, req.Nature); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	parts := money.SplitInstallments(req.TotalAmount, req.Count)

	titles := make([]domain.Title, req.Count)
	for i := 0; i < req.Count; i++ {
		dueDate := req.FirstDueDate.AddDate(0, 0, i*req.IntervalDays)
		titles[i] = domain.Title{
			TitleID:           uuid.NewString(),
			CompanyID:         companyID,
			Nature:            req.Nature,
			CounterpartyID:    req.CounterpartyID,
			CategoryID:        req.CategoryID,
			Document:          req.Document,
			Series:            req.Series,
			InstallmentNumber: i + 1,
			Kind:              req.Kind,
			Description:       fmt.Sprintf("%s (%d/%d)", req.Description, i+1, req.Count),
			IssueDate:         req.IssueDate,
			DueDate:           dueDate,
			Principal:         parts[i],
			Additions:         decimal.Zero,
			Discounts:         decimal.Zero,
			Total:             parts[i],
			OutstandingBalance: parts[i],
			Status:             domain.TitlePending,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}

	audit := &domain.AuditEntry{
		AuditID:   uuid.NewString(),
		EventType: domain.AuditInstallmentsCreated,
		Severity:  domain.SeverityInfo,
		ActorID:   creatorUserID,
		CompanyID: companyID,
		EntityID:  titles[0].TitleID,
		Details: map[string]string{
			"document":       req.Document,
			"count":          fmt.Sprintf("%d", req.Count),
			"total":          req.TotalAmount.StringFixed(2),
			"counterpartyID": req.CounterpartyID,
		},
		Success:   true,
		Timestamp: now,
	}

	if err := s.titleRepo.SaveTitlesBatch(ctx, titles, audit); err != nil {
		s.LogError(ctx, err, "Failed to save installment batch", slog.String("company_id", companyID), slog.Int("count", req.Count))
		return nil, fmt.Errorf("failed to save installments: %w", err)
	}

	s.LogInfo(ctx, "Installments generated", slog.String("document", req.Document), slog.Int("count", req.Count))
	return titles, nil
}

// SoftDeleteTitle stamps the soft-delete marker; no balance mutation.
func (s *titleService) SoftDeleteTitle(ctx context.Context, companyID string, titleID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return err
	}

	// Confirm the title exists (and is visible) before stamping.
	if _, err := s.titleRepo.FindTitleByID(ctx, companyID, titleID); err != nil {
		return fmt.Errorf("failed to find title %s: %w", titleID, err)
	}

	now := time.Now().UTC()
	if err := s.titleRepo.SoftDeleteTitle(ctx, companyID, titleID, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to soft delete title", slog.String("title_id", titleID))
		return fmt.Errorf("failed to delete title: %w", err)
	}

	if err := s.auditRepo.SaveAuditEntry(ctx, domain.AuditEntry{
		AuditID:   uuid.NewString(),
		EventType: domain.AuditTitleDeleted,
		Severity:  domain.SeverityWarning,
		ActorID:   requestingUserID,
		CompanyID: companyID,
		EntityID:  titleID,
		Details:   map[string]string{},
		Success:   true,
		Timestamp: now,
	}); err != nil {
		s.LogWarn(ctx, "Failed to write deletion audit entry", slog.String("title_id", titleID), slog.String("error", err.Error()))
	}

	s.LogInfo(ctx, "Title soft deleted", slog.String("title_id", titleID))
	return nil
}
