package services

import (
	"context"

	"github.com/finledger/fin_titles_app/internal/core/domain"
	"github.com/finledger/fin_titles_app/internal/dto"
)

// TitleSvcFacade is the lifecycle service for receivable/payable titles.
// Every call takes the acting user and company explicitly; there is no
// ambient tenant state.
type TitleSvcFacade interface {
	CreateTitle(ctx context.Context, companyID string, req dto.CreateTitleRequest, creatorUserID string) (*domain.Title, error)
	GetTitleByID(ctx context.Context, companyID string, titleID string, requestingUserID string) (*domain.Title, error)
	ListTitles(ctx context.Context, companyID string, params dto.ListTitlesParams, requestingUserID string) ([]domain.Title, *string, error)
	UpdateTitle(ctx context.Context, companyID string, titleID string, req dto.UpdateTitleRequest, requestingUserID string) (*domain.Title, error)
	CancelTitle(ctx context.Context, companyID string, titleID string, req dto.CancelTitleRequest, requestingUserID string) (*domain.Title, error)
	GenerateInstallments(ctx context.Context, companyID string, req dto.GenerateInstallmentsRequest, creatorUserID string) ([]domain.Title, error)
	SoftDeleteTitle(ctx context.Context, companyID string, titleID string, requestingUserID string) error
}

// SettlementSvcFacade performs baixa and estorno operations.
type SettlementSvcFacade interface {
	SettleTitle(ctx context.Context, companyID string, titleID string, req dto.SettleTitleRequest, requestingUserID string) (*domain.Title, *domain.Settlement, error)
	ReverseSettlement(ctx context.Context, companyID string, settlementID string, req dto.ReverseSettlementRequest, requestingUserID string) (*domain.Title, *domain.Settlement, error)
	ListSettlementsByTitle(ctx context.Context, companyID string, titleID string, requestingUserID string) ([]domain.Settlement, error)
}
