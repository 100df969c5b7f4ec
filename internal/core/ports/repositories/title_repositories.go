package repositories

import (
	"context"
	"time"

	"github.com/finledger/fin_titles_app/internal/core/domain"
	"github.com/finledger/fin_titles_app/internal/dto"
)

// TitleRepositoryFacade persists titles. Every read excludes soft-deleted
// rows; every multi-row write is atomic.
type TitleRepositoryFacade interface {
	// SaveTitle inserts a new title.
	SaveTitle(ctx context.Context, title domain.Title) error

	// SaveTitlesBatch inserts a batch of titles (installments) and the
	// optional audit entry in one transaction.
	SaveTitlesBatch(ctx context.Context, titles []domain.Title, audit *domain.AuditEntry) error

	// FindTitleByID fetches one title scoped to a company.
	FindTitleByID(ctx context.Context, companyID string, titleID string) (*domain.Title, error)

	// ListTitles pages titles ordered by due date using a cursor token.
	ListTitles(ctx context.Context, companyID string, params dto.ListTitlesParams) ([]domain.Title, *string, error)

	// UpdateTitle rewrites the mutable columns of a title.
	UpdateTitle(ctx context.Context, title domain.Title) error

	// CancelTitle marks the title CANCELLED and writes the mandatory audit
	// entry in the same transaction; audit failure aborts the cancellation.
	CancelTitle(ctx context.Context, title domain.Title, audit domain.AuditEntry) error

	// SoftDeleteTitle stamps the soft-delete marker.
	SoftDeleteTitle(ctx context.Context, companyID string, titleID string, deletedBy string, deletedAt time.Time) error
}
