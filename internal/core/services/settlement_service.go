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

// settlementService performs baixa (settlement) and estorno (reversal)
// operations against titles. All balance effects commit atomically through
// the settlement repository, which re-checks the outstanding balance under
// a row lock.
type settlementService struct {
	BaseService
	settlementRepo  portsrepo.SettlementRepositoryFacade
	titleRepo       portsrepo.TitleRepositoryFacade
	bankAccountRepo portsrepo.BankAccountRepositoryFacade
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(
	settlementRepo portsrepo.SettlementRepositoryFacade,
	titleRepo portsrepo.TitleRepositoryFacade,
	bankAccountRepo portsrepo.BankAccountRepositoryFacade,
	authorizer portssvc.CompanyAuthorizerSvc,
) portssvc.SettlementSvcFacade {
	return &settlementService{
		BaseService:     BaseService{CompanyAuthorizer: authorizer},
		settlementRepo:  settlementRepo,
		titleRepo:       titleRepo,
		bankAccountRepo: bankAccountRepo,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// movementTypeFor maps title nature to the bank movement direction:
// receiving money credits the account, paying debits it.
func movementTypeFor(nature domain.TitleNature) domain.MovementType {
	if nature == domain.Receivable {
		return domain.MovementCredit
	}
	return domain.MovementDebit
}

// reversalMovementType is the opposite direction, used by estorno.
func reversalMovementType(t domain.MovementType) domain.MovementType {
	if t == domain.MovementCredit {
		return domain.MovementDebit
	}
	return domain.MovementCredit
}

// SettleTitle applies a baixa: decrements the outstanding balance, stamps
// the settlement date, flips the status to PARTIAL or SETTLED, and moves
// the cash through the bank account when one is given.
func (s *settlementService) SettleTitle(ctx context.Context, companyID string, titleID string, req dto.SettleTitleRequest, requestingUserID string) (*domain.Title, *domain.Settlement, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	title, err := s.titleRepo.FindTitleByID(ctx, companyID, titleID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find title %s: %w", titleID, err)
	}

	if title.Status == domain.TitleSettled {
		return nil, nil, fmt.Errorf("%w: title is already settled", apperrors.ErrDomain)
	}
	if title.Status == domain.TitleCancelled {
		return nil, nil, fmt.Errorf("%w: cancelled titles cannot be settled", apperrors.ErrForbiddenState)
	}

	amount := money.Round2(req.Amount)
	if amount.GreaterThan(title.OutstandingBalance) {
		return nil, nil, fmt.Errorf("%w: amount %s exceeds outstanding balance %s",
			apperrors.ErrInsufficientBalance, amount.StringFixed(2), title.OutstandingBalance.StringFixed(2))
	}

	now := time.Now().UTC()
	settleDate := dates.DayOnly(now)
	if req.Date != nil {
		settleDate = dates.DayOnly(*req.Date)
	}

	cashTotal := money.ComputeTotal(amount, req.Additions, req.Discounts)
	if cashTotal.IsNegative() {
		return nil, nil, fmt.Errorf("%w: discounts exceed settlement amount plus additions", apperrors.ErrValidation)
	}

	settlement := domain.Settlement{
		SettlementID: uuid.NewString(),
		TitleID:      title.TitleID,
		CompanyID:    companyID,
		Amount:       amount,
		Additions:    money.Round2(req.Additions),
		Discounts:    money.Round2(req.Discounts),
		Total:        cashTotal,
		// BalanceBefore/After are finalized by the repository from the
		// locked title row.
		BalanceBefore: title.OutstandingBalance,
		BalanceAfter:  title.OutstandingBalance.Sub(amount),
		Date:          settleDate,
		Status:        domain.SettlementActive,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	var movement *domain.BankMovement
	if req.BankAccountID != nil {
		account, err := s.bankAccountRepo.FindBankAccountByID(ctx, companyID, *req.BankAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, nil, fmt.Errorf("%w: bank account %s not found", apperrors.ErrValidation, *req.BankAccountID)
			}
			return nil, nil, fmt.Errorf("failed to resolve bank account: %w", err)
		}
		if !account.IsActive {
			return nil, nil, fmt.Errorf("%w: bank account %s is inactive", apperrors.ErrValidation, account.BankAccountID)
		}

		settlement.BankAccountID = &account.BankAccountID
		movementID := uuid.NewString()
		settlement.MovementID = &movementID
		movement = &domain.BankMovement{
			MovementID:    movementID,
			BankAccountID: account.BankAccountID,
			CompanyID:     companyID,
			SettlementID:  &settlement.SettlementID,
			Type:          movementTypeFor(title.Nature),
			Amount:        cashTotal,
			Date:          settleDate,
			Description:   fmt.Sprintf("Settlement of title %s (%s)", title.Document, title.TitleID),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		}
	}

	audit := &domain.AuditEntry{
		AuditID:   uuid.NewString(),
		EventType: domain.AuditTitleSettled,
		Severity:  domain.SeverityInfo,
		ActorID:   requestingUserID,
		CompanyID: companyID,
		EntityID:  title.TitleID,
		Details: map[string]string{
			"settlementID": settlement.SettlementID,
			"amount":       amount.StringFixed(2),
			"cashTotal":    cashTotal.StringFixed(2),
			"date":         settleDate.Format("2006-01-02"),
		},
		Success:   true,
		Timestamp: now,
	}

	updatedTitle, persisted, err := s.settlementRepo.ApplySettlement(ctx, settlement, movement, audit)
	if err != nil {
		s.LogError(ctx, err, "Failed to apply settlement", slog.String("title_id", titleID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Title settled",
		slog.String("title_id", titleID),
		slog.String("settlement_id", persisted.SettlementID),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("status", string(updatedTitle.Status)))
	return updatedTitle, persisted, nil
}

// ReverseSettlement performs an estorno: the original settlement row is
// kept and marked REVERSED, a compensating REVERSAL row restores the
// title's balance, and the linked bank movement is undone by an opposite
// movement. History is never deleted.
func (s *settlementService) ReverseSettlement(ctx context.Context, companyID string, settlementID string, req dto.ReverseSettlementRequest, requestingUserID string) (*domain.Title, *domain.Settlement, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	original, err := s.settlementRepo.FindSettlementByID(ctx, companyID, settlementID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find settlement %s: %w", settlementID, err)
	}

	if original.Status == domain.SettlementReversed {
		return nil, nil, fmt.Errorf("%w: settlement is already reversed", apperrors.ErrDomain)
	}
	if original.Status == domain.SettlementReversal {
		return nil, nil, fmt.Errorf("%w: a reversal entry cannot be reversed", apperrors.ErrDomain)
	}

	now := time.Now().UTC()
	reversal := domain.Settlement{
		SettlementID:  uuid.NewString(),
		TitleID:       original.TitleID,
		CompanyID:     companyID,
		BankAccountID: original.BankAccountID,
		Amount:        original.Amount,
		Additions:     original.Additions,
		Discounts:     original.Discounts,
		Total:         original.Total,
		BalanceBefore: original.BalanceAfter,
		BalanceAfter:  original.BalanceBefore,
		Date:          dates.DayOnly(now),
		Status:        domain.SettlementReversal,
		ReversalOfID:  &original.SettlementID,
		Notes:         req.Justification,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	var movement *domain.BankMovement
	if original.BankAccountID != nil {
		originalType := movementTypeFor(domain.Receivable)
		// The original direction is recoverable from the title's nature;
		// fetch the title to decide it.
		title, err := s.titleRepo.FindTitleByID(ctx, companyID, original.TitleID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to find title %s: %w", original.TitleID, err)
		}
		originalType = movementTypeFor(title.Nature)

		movementID := uuid.NewString()
		reversal.MovementID = &movementID
		movement = &domain.BankMovement{
			MovementID:    movementID,
			BankAccountID: *original.BankAccountID,
			CompanyID:     companyID,
			SettlementID:  &reversal.SettlementID,
			Type:          reversalMovementType(originalType),
			Amount:        original.Total,
			Date:          dates.DayOnly(now),
			Description:   fmt.Sprintf("Reversal of settlement %s", original.SettlementID),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		}
	}

	audit := &domain.AuditEntry{
		AuditID:   uuid.NewString(),
		EventType: domain.AuditSettlementReversed,
		Severity:  domain.SeverityWarning,
		ActorID:   requestingUserID,
		CompanyID: companyID,
		EntityID:  original.TitleID,
		Details: map[string]string{
			"settlementID":  original.SettlementID,
			"reversalID":    reversal.SettlementID,
			"amount":        original.Amount.StringFixed(2),
			"justification": req.Justification,
		},
		Success:   true,
		Timestamp: now,
	}

	updatedTitle, err := s.settlementRepo.ApplyReversal(ctx, *original, reversal, movement, audit)
	if err != nil {
		s.LogError(ctx, err, "Failed to apply reversal", slog.String("settlement_id", settlementID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Settlement reversed",
		slog.String("settlement_id", settlementID),
		slog.String("reversal_id", reversal.SettlementID),
		slog.String("title_id", original.TitleID),
		slog.String("restored_status", string(updatedTitle.Status)))
	return updatedTitle, &reversal, nil
}

// ListSettlementsByTitle returns the full settlement history of a title,
// reversed and reversal entries included.
func (s *settlementService) ListSettlementsByTitle(ctx context.Context, companyID string, titleID string, requestingUserID string) ([]domain.Settlement, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if _, err := s.titleRepo.FindTitleByID(ctx, companyID, titleID); err != nil {
		return nil, fmt.Errorf("failed to find title %s: %w", titleID, err)
	}
	settlements, err := s.settlementRepo.ListSettlementsByTitle(ctx, companyID, titleID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list settlements", slog.String("title_id", titleID))
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	return settlements, nil
}
