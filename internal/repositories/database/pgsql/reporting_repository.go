package pgsql

import (
	"context"
	"strconv"
	"time"

	"github.com/finledger/fin_titles_app/internal/apperrors"
	"github.com/finledger/fin_titles_app/internal/core/domain"
	portsrepo "github.com/finledger/fin_titles_app/internal/core/ports/repositories"
	"github.com/finledger/fin_titles_app/internal/dto"
	"github.com/finledger/fin_titles_app/internal/models"
	"github.com/finledger/fin_titles_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for the read-only
// report queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

func axisColumn(axis domain.ReportDateAxis) string {
	switch axis {
	case domain.AxisIssue:
		return "t.issue_date"
	case domain.AxisSettlement:
		// Unsettled titles keep filtering on due date.
		return "COALESCE(t.settlement_date, t.due_date)"
	default:
		return "t.due_date"
	}
}

// FindTitleRows returns flat report rows with counterparty and category
// names joined, filtered on the requested date axis.
func (r *PgxReportingRepository) FindTitleRows(ctx context.Context, companyID string, params dto.TitleReportParams) ([]domain.TitleReportRow, error) {
	baseQuery := `
		SELECT t.title_id, t.nature, t.document, t.series,
		       t.counterparty_id, cp.name,
		       t.category_id, cat.name,
		       t.issue_date, t.due_date, t.settlement_date,
		       t.status, t.total, t.outstanding_balance
		FROM titles t
		JOIN counterparties cp ON cp.counterparty_id = t.counterparty_id
		JOIN categories cat ON cat.category_id = t.category_id
	`
	filterClause := `WHERE t.company_id = $1 AND t.deleted_at IS NULL`
	args := []any{companyID}

	if params.Nature != nil {
		args = append(args, string(*params.Nature))
		filterClause += ` AND t.nature = $` + strconv.Itoa(len(args))
	}
	if params.Status != nil {
		args = append(args, string(*params.Status))
		filterClause += ` AND t.status = $` + strconv.Itoa(len(args))
	}
	if params.CounterpartyID != nil {
		args = append(args, *params.CounterpartyID)
		filterClause += ` AND t.counterparty_id = $` + strconv.Itoa(len(args))
	}

	axis := axisColumn(params.Axis)
	if params.From != nil {
		args = append(args, *params.From)
		filterClause += ` AND ` + axis + ` >= $` + strconv.Itoa(len(args))
	}
	if params.To != nil {
		args = append(args, *params.To)
		filterClause += ` AND ` + axis + ` <= $` + strconv.Itoa(len(args))
	}

	query := baseQuery + " " + filterClause + " ORDER BY " + axis + ", t.created_at;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query report rows for company "+companyID, err)
	}
	defer rows.Close()

	reportRows := []domain.TitleReportRow{}
	for rows.Next() {
		var row domain.TitleReportRow
		var nature, status string
		if err := rows.Scan(
			&row.TitleID, &nature, &row.Document, &row.Series,
			&row.CounterpartyID, &row.CounterpartyName,
			&row.CategoryID, &row.CategoryName,
			&row.IssueDate, &row.DueDate, &row.SettlementDate,
			&status, &row.Total, &row.Outstanding,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan report row for company "+companyID, err)
		}
		row.Nature = domain.TitleNature(nature)
		row.Status = domain.TitleStatus(status)
		reportRows = append(reportRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating report rows for company "+companyID, err)
	}
	return reportRows, nil
}

// FindOpenTitles returns PENDING/PARTIAL titles of one nature for the
// aging distribution.
func (r *PgxReportingRepository) FindOpenTitles(ctx context.Context, companyID string, nature domain.TitleNature) ([]domain.Title, error) {
	query := `
		SELECT ` + titleColumns + `
		FROM titles
		WHERE company_id = $1 AND nature = $2
		  AND status IN ($3, $4)
		  AND deleted_at IS NULL
		ORDER BY due_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query,
		companyID, string(nature),
		string(domain.TitlePending), string(domain.TitlePartial),
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open titles for company "+companyID, err)
	}
	defer rows.Close()

	modelTitles := []models.Title{}
	for rows.Next() {
		m, scanErr := scanTitle(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan open title row for company "+companyID, scanErr)
		}
		modelTitles = append(modelTitles, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating open title rows for company "+companyID, err)
	}
	return mapping.ToDomainTitleSlice(modelTitles), nil
}

// FindCashFlowTitles returns every non-deleted title that can touch the
// projection range, with a counterparty id to name lookup. A nil
// companyID spans all companies.
func (r *PgxReportingRepository) FindCashFlowTitles(ctx context.Context, companyID *string, start, end time.Time) ([]domain.Title, map[string]string, error) {
	filterClause := `WHERE t.deleted_at IS NULL`
	args := []any{}

	if companyID != nil {
		args = append(args, *companyID)
		filterClause += ` AND t.company_id = $` + strconv.Itoa(len(args))
	}

	args = append(args, start, end)
	startIdx := strconv.Itoa(len(args) - 1)
	endIdx := strconv.Itoa(len(args))
	args = append(args, string(domain.TitlePending), string(domain.TitlePartial))
	pendingIdx := strconv.Itoa(len(args) - 1)
	partialIdx := strconv.Itoa(len(args))

	filterClause += ` AND (
		(t.settlement_date IS NOT NULL AND t.settlement_date >= $` + startIdx + ` AND t.settlement_date <= $` + endIdx + `)
		OR (t.status IN ($` + pendingIdx + `, $` + partialIdx + `) AND t.due_date >= $` + startIdx + ` AND t.due_date <= $` + endIdx + `)
	)`

	query := `
		SELECT t.title_id, t.company_id, t.nature, t.counterparty_id, t.category_id,
		       t.document, t.series, t.installment_number, t.kind, t.description,
		       t.issue_date, t.due_date, t.settlement_date,
		       t.principal, t.additions, t.discounts, t.total, t.outstanding_balance,
		       t.status, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by,
		       cp.name
		FROM titles t
		JOIN counterparties cp ON cp.counterparty_id = t.counterparty_id
		` + filterClause + `
		ORDER BY t.due_date, t.created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query cash flow titles", err)
	}
	defer rows.Close()

	modelTitles := []models.Title{}
	names := map[string]string{}
	for rows.Next() {
		var m models.Title
		var counterpartyName string
		if err := rows.Scan(
			&m.TitleID, &m.CompanyID, &m.Nature, &m.CounterpartyID, &m.CategoryID,
			&m.Document, &m.Series, &m.InstallmentNumber, &m.Kind, &m.Description,
			&m.IssueDate, &m.DueDate, &m.SettlementDate,
			&m.Principal, &m.Additions, &m.Discounts, &m.Total, &m.OutstandingBalance,
			&m.Status, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			&counterpartyName,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan cash flow title row", err)
		}
		modelTitles = append(modelTitles, m)
		names[m.CounterpartyID] = counterpartyName
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating cash flow title rows", err)
	}
	return mapping.ToDomainTitleSlice(modelTitles), names, nil
}
