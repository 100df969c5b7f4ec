package pgsql

import (
	"context"

	"github.com/finledger/fin_titles_app/internal/apperrors"
	"github.com/finledger/fin_titles_app/internal/core/domain"
	portsrepo "github.com/finledger/fin_titles_app/internal/core/ports/repositories"
	"github.com/finledger/fin_titles_app/internal/models"
	"github.com/finledger/fin_titles_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const insertAuditQuery = `
	INSERT INTO audit_entries (
		audit_id, event_type, severity, actor_id, company_id, entity_id,
		details, success, event_timestamp
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`

// insertAuditEntryTx writes an audit entry inside an existing transaction.
// Shared by the repositories whose operations carry a mandatory audit
// trail (cancellation, settlement, reversal, installment batches).
func insertAuditEntryTx(ctx context.Context, tx pgx.Tx, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)
	_, err := tx.Exec(ctx, insertAuditQuery,
		m.AuditID, m.EventType, m.Severity, m.ActorID, m.CompanyID, m.EntityID,
		m.Details, m.Success, m.Timestamp,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entry "+m.AuditID, err)
	}
	return nil
}

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for audit log data.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// SaveAuditEntry inserts a standalone audit entry outside any transaction.
func (r *PgxAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)
	_, err := r.Pool.Exec(ctx, insertAuditQuery,
		m.AuditID, m.EventType, m.Severity, m.ActorID, m.CompanyID, m.EntityID,
		m.Details, m.Success, m.Timestamp,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entry "+m.AuditID, err)
	}
	return nil
}

// ListAuditEntriesByEntity returns the audit trail of one entity, newest
// first.
func (r *PgxAuditRepository) ListAuditEntriesByEntity(ctx context.Context, companyID string, entityID string) ([]domain.AuditEntry, error) {
	query := `
		SELECT audit_id, event_type, severity, actor_id, company_id, entity_id,
		       details, success, event_timestamp
		FROM audit_entries
		WHERE company_id = $1 AND entity_id = $2
		ORDER BY event_timestamp DESC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit entries for entity "+entityID, err)
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var m models.AuditEntry
		if err := rows.Scan(
			&m.AuditID, &m.EventType, &m.Severity, &m.ActorID, &m.CompanyID, &m.EntityID,
			&m.Details, &m.Success, &m.Timestamp,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit entry row for entity "+entityID, err)
		}
		entries = append(entries, mapping.ToDomainAuditEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit entry rows for entity "+entityID, err)
	}
	return entries, nil
}
