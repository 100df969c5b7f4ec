package repositories

import (
	"context"

	"github.com/finledger/fin_titles_app/internal/core/domain"
)

// AuditRepositoryFacade appends and reads audit entries. Callers that
// require audit durability (cancellation) write through the transactional
// repository methods instead; this facade serves standalone writes and
// queries.
type AuditRepositoryFacade interface {
	SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error
	ListAuditEntriesByEntity(ctx context.Context, companyID string, entityID string) ([]domain.AuditEntry, error)
}
