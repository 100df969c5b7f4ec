package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finledger/fin_titles_app/internal/apperrors"
	"github.com/finledger/fin_titles_app/internal/core/domain"
	portsrepo "github.com/finledger/fin_titles_app/internal/core/ports/repositories"
	"github.com/finledger/fin_titles_app/internal/models"
	"github.com/finledger/fin_titles_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const counterpartyColumns = `
	counterparty_id, company_id, name, tax_id, counterparty_type, email,
	is_active, created_at, created_by, last_updated_at, last_updated_by
`

type PgxCounterpartyRepository struct {
	BaseRepository
}

// newPgxCounterpartyRepository creates a new repository for counterparty data.
func newPgxCounterpartyRepository(pool *pgxpool.Pool) portsrepo.CounterpartyRepositoryFacade {
	return &PgxCounterpartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CounterpartyRepositoryFacade = (*PgxCounterpartyRepository)(nil)

// SaveCounterparty inserts a new counterparty. The (company_id, tax_id)
// unique index surfaces duplicates.
func (r *PgxCounterpartyRepository) SaveCounterparty(ctx context.Context, cp domain.Counterparty) error {
	m := mapping.ToModelCounterparty(cp)
	query := `
		INSERT INTO counterparties (
			counterparty_id, company_id, name, tax_id, counterparty_type, email,
			is_active, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CounterpartyID, m.CompanyID, m.Name, m.TaxID, m.Type, m.Email,
		m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: counterparty with tax id %s already exists", apperrors.ErrDuplicate, m.TaxID)
		}
		return apperrors.NewAppError(500, "failed to insert counterparty "+m.CounterpartyID, err)
	}
	return nil
}

func scanCounterparty(row pgx.Row) (models.Counterparty, error) {
	var m models.Counterparty
	err := row.Scan(
		&m.CounterpartyID, &m.CompanyID, &m.Name, &m.TaxID, &m.Type, &m.Email,
		&m.IsActive, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindCounterpartyByID retrieves one counterparty scoped to a company.
func (r *PgxCounterpartyRepository) FindCounterpartyByID(ctx context.Context, companyID string, counterpartyID string) (*domain.Counterparty, error) {
	query := `
		SELECT ` + counterpartyColumns + `
		FROM counterparties
		WHERE counterparty_id = $1 AND company_id = $2 AND deleted_at IS NULL;
	`
	m, err := scanCounterparty(r.Pool.QueryRow(ctx, query, counterpartyID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find counterparty by ID "+counterpartyID, err)
	}
	d := mapping.ToDomainCounterparty(m)
	return &d, nil
}

// ListCounterparties returns all counterparties of a company ordered by name.
func (r *PgxCounterpartyRepository) ListCounterparties(ctx context.Context, companyID string) ([]domain.Counterparty, error) {
	query := `
		SELECT ` + counterpartyColumns + `
		FROM counterparties
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query counterparties for company "+companyID, err)
	}
	defer rows.Close()

	counterparties := []domain.Counterparty{}
	for rows.Next() {
		m, scanErr := scanCounterparty(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan counterparty row for company "+companyID, scanErr)
		}
		counterparties = append(counterparties, mapping.ToDomainCounterparty(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating counterparty rows for company "+companyID, err)
	}
	return counterparties, nil
}

const categoryColumns = `
	category_id, company_id, name, code, kind, parent_id,
	is_active, created_at, created_by, last_updated_at, last_updated_by
`

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

// SaveCategory inserts a new chart-of-accounts node. The (company_id, code)
// unique index surfaces duplicates.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, cat domain.Category) error {
	m := mapping.ToModelCategory(cat)
	query := `
		INSERT INTO categories (
			category_id, company_id, name, code, kind, parent_id,
			is_active, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID, m.CompanyID, m.Name, m.Code, m.Kind, m.ParentID,
		m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: category with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return apperrors.NewAppError(500, "failed to insert category "+m.CategoryID, err)
	}
	return nil
}

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID, &m.CompanyID, &m.Name, &m.Code, &m.Kind, &m.ParentID,
		&m.IsActive, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindCategoryByID retrieves one category scoped to a company.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, companyID string, categoryID string) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE category_id = $1 AND company_id = $2 AND deleted_at IS NULL;
	`
	m, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find category by ID "+categoryID, err)
	}
	d := mapping.ToDomainCategory(m)
	return &d, nil
}

// ListCategories returns all categories of a company ordered by code.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, companyID string) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories for company "+companyID, err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		m, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row for company "+companyID, scanErr)
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows for company "+companyID, err)
	}
	return categories, nil
}
