package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/finledger/fin_titles_app/internal/apperrors"
	"github.com/finledger/fin_titles_app/internal/core/domain"
	portsrepo "github.com/finledger/fin_titles_app/internal/core/ports/repositories"
	"github.com/finledger/fin_titles_app/internal/dto"
	"github.com/finledger/fin_titles_app/internal/models"
	"github.com/finledger/fin_titles_app/internal/utils/mapping"
	"github.com/finledger/fin_titles_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const titleColumns = `
	title_id, company_id, nature, counterparty_id, category_id,
	document, series, installment_number, kind, description,
	issue_date, due_date, settlement_date,
	principal, additions, discounts, total, outstanding_balance,
	status, created_at, created_by, last_updated_at, last_updated_by
`

type PgxTitleRepository struct {
	BaseRepository
}

// newPgxTitleRepository creates a new repository for title data.
func newPgxTitleRepository(pool *pgxpool.Pool) portsrepo.TitleRepositoryFacade {
	return &PgxTitleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TitleRepositoryFacade = (*PgxTitleRepository)(nil)

const insertTitleQuery = `
	INSERT INTO titles (
		title_id, company_id, nature, counterparty_id, category_id,
		document, series, installment_number, kind, description,
		issue_date, due_date, settlement_date,
		principal, additions, discounts, total, outstanding_balance,
		status, created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
`

func titleInsertArgs(m models.Title) []any {
	return []any{
		m.TitleID, m.CompanyID, m.Nature, m.CounterpartyID, m.CategoryID,
		m.Document, m.Series, m.InstallmentNumber, m.Kind, m.Description,
		m.IssueDate, m.DueDate, m.SettlementDate,
		m.Principal, m.Additions, m.Discounts, m.Total, m.OutstandingBalance,
		m.Status, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

// SaveTitle inserts a new title.
func (r *PgxTitleRepository) SaveTitle(ctx context.Context, title domain.Title) error {
	m := mapping.ToModelTitle(title)
	_, err := r.Pool.Exec(ctx, insertTitleQuery, titleInsertArgs(m)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: title %s already exists", apperrors.ErrDuplicate, m.TitleID)
		}
		return apperrors.NewAppError(500, "failed to insert title "+m.TitleID, err)
	}
	return nil
}

// SaveTitlesBatch inserts the installment titles and the audit entry in
// one transaction.
func (r *PgxTitleRepository) SaveTitlesBatch(ctx context.Context, titles []domain.Title, audit *domain.AuditEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, title := range titles {
		batch.Queue(insertTitleQuery, titleInsertArgs(mapping.ToModelTitle(title))...)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute title batch insert", err)
	}

	if audit != nil {
		if err := insertAuditEntryTx(ctx, tx, *audit); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

func scanTitle(row pgx.Row) (models.Title, error) {
	var m models.Title
	err := row.Scan(
		&m.TitleID, &m.CompanyID, &m.Nature, &m.CounterpartyID, &m.CategoryID,
		&m.Document, &m.Series, &m.InstallmentNumber, &m.Kind, &m.Description,
		&m.IssueDate, &m.DueDate, &m.SettlementDate,
		&m.Principal, &m.Additions, &m.Discounts, &m.Total, &m.OutstandingBalance,
		&m.Status, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindTitleByID retrieves a title scoped to a company, soft-deleted rows
// excluded.
func (r *PgxTitleRepository) FindTitleByID(ctx context.Context, companyID string, titleID string) (*domain.Title, error) {
	query := `
		SELECT ` + titleColumns + `
		FROM titles
		WHERE title_id = $1 AND company_id = $2 AND deleted_at IS NULL;
	`
	m, err := scanTitle(r.Pool.QueryRow(ctx, query, titleID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find title by ID "+titleID, err)
	}
	d := mapping.ToDomainTitle(m)
	return &d, nil
}

// ListTitles retrieves a paginated page of titles using token-based
// pagination over (due_date, created_at).
func (r *PgxTitleRepository) ListTitles(ctx context.Context, companyID string, params dto.ListTitlesParams) ([]domain.Title, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + titleColumns + `
		FROM titles
	`
	filterClause := `WHERE company_id = $1 AND deleted_at IS NULL`
	args := []any{companyID}

	if params.Nature != nil {
		args = append(args, string(*params.Nature))
		filterClause += ` AND nature = $` + strconv.Itoa(len(args))
	}
	if params.Status != nil {
		if *params.Status == domain.TitleOverdue {
			// OVERDUE is never stored; it means an open title past due.
			args = append(args, string(domain.TitlePending), string(domain.TitlePartial))
			filterClause += ` AND status IN ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `) AND due_date < CURRENT_DATE`
		} else {
			args = append(args, string(*params.Status))
			filterClause += ` AND status = $` + strconv.Itoa(len(args))
		}
	}
	if params.CounterpartyID != nil {
		args = append(args, *params.CounterpartyID)
		filterClause += ` AND counterparty_id = $` + strconv.Itoa(len(args))
	}
	if params.From != nil {
		args = append(args, *params.From)
		filterClause += ` AND due_date >= $` + strconv.Itoa(len(args))
	}
	if params.To != nil {
		args = append(args, *params.To)
		filterClause += ` AND due_date <= $` + strconv.Itoa(len(args))
	}

	orderByClause := `ORDER BY due_date DESC, created_at DESC`

	if params.NextToken != nil && *params.NextToken != "" {
		lastDueDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*params.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDueDate, lastCreatedAt)
		filterClause += ` AND (due_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query titles for company "+companyID, err)
	}
	defer rows.Close()

	modelTitles := make([]models.Title, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanTitle(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan title row for company "+companyID, scanErr)
		}
		modelTitles = append(modelTitles, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating title rows for company "+companyID, err)
	}

	var nextTokenVal *string
	results := modelTitles
	if len(modelTitles) > limit {
		last := modelTitles[limit-1]
		token := pagination.EncodeToken(last.DueDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelTitles[:limit]
	}

	return mapping.ToDomainTitleSlice(results), nextTokenVal, nil
}

// UpdateTitle rewrites the mutable columns of a title.
func (r *PgxTitleRepository) UpdateTitle(ctx context.Context, title domain.Title) error {
	m := mapping.ToModelTitle(title)
	query := `
		UPDATE titles
		SET counterparty_id = $3,
		    category_id = $4,
		    document = $5,
		    series = $6,
		    kind = $7,
		    description = $8,
		    issue_date = $9,
		    due_date = $10,
		    principal = $11,
		    additions = $12,
		    discounts = $13,
		    total = $14,
		    outstanding_balance = $15,
		    last_updated_at = $16,
		    last_updated_by = $17
		WHERE title_id = $1 AND company_id = $2 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TitleID, m.CompanyID,
		m.CounterpartyID, m.CategoryID,
		m.Document, m.Series, m.Kind, m.Description,
		m.IssueDate, m.DueDate,
		m.Principal, m.Additions, m.Discounts, m.Total, m.OutstandingBalance,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update title "+m.TitleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CancelTitle marks the title CANCELLED and writes the audit entry in the
// same transaction. A failed audit insert aborts the cancellation.
func (r *PgxTitleRepository) CancelTitle(ctx context.Context, title domain.Title, audit domain.AuditEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTitle(title)
	query := `
		UPDATE titles
		SET status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE title_id = $1 AND company_id = $2 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, m.TitleID, m.CompanyID, m.Status, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to cancel title "+m.TitleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertAuditEntryTx(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SoftDeleteTitle stamps the soft-delete marker.
func (r *PgxTitleRepository) SoftDeleteTitle(ctx context.Context, companyID string, titleID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE titles
		SET deleted_at = $3,
		    deleted_by = $4,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE title_id = $1 AND company_id = $2 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, titleID, companyID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to soft delete title "+titleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
