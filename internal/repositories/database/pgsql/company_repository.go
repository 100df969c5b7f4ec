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

const companyColumns = `
	company_id, name, tax_id, branch_of, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

// SaveCompany inserts a new company.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	query := `
		INSERT INTO companies (
			company_id, name, tax_id, branch_of, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.Name, m.TaxID, m.BranchOf, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: company with tax id %s already exists", apperrors.ErrDuplicate, m.TaxID)
		}
		return apperrors.NewAppError(500, "failed to insert company "+m.CompanyID, err)
	}
	return nil
}

func scanCompany(row pgx.Row) (models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID, &m.Name, &m.TaxID, &m.BranchOf, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindCompanyByID retrieves one company.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE company_id = $1;
	`
	m, err := scanCompany(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find company by ID "+companyID, err)
	}
	d := mapping.ToDomainCompany(m)
	return &d, nil
}

// ListCompaniesByUser returns every company the user is a member of,
// ordered by name.
func (r *PgxCompanyRepository) ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error) {
	query := `
		SELECT c.company_id, c.name, c.tax_id, c.branch_of, c.is_active,
		       c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM companies c
		JOIN user_companies uc ON uc.company_id = c.company_id
		WHERE uc.user_id = $1
		ORDER BY c.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query companies for user "+userID, err)
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		m, scanErr := scanCompany(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan company row for user "+userID, scanErr)
		}
		companies = append(companies, mapping.ToDomainCompany(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating company rows for user "+userID, err)
	}
	return companies, nil
}

// UpdateCompany rewrites the mutable columns of a company.
func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	query := `
		UPDATE companies
		SET name = $2,
		    branch_of = $3,
		    is_active = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE company_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.Name, m.BranchOf, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update company "+m.CompanyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AddUserToCompany inserts a membership row.
func (r *PgxCompanyRepository) AddUserToCompany(ctx context.Context, membership domain.UserCompany) error {
	m := mapping.ToModelUserCompany(membership)
	query := `
		INSERT INTO user_companies (
			user_id, company_id, role,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.CompanyID, m.Role,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: user %s is already a member of company %s", apperrors.ErrDuplicate, m.UserID, m.CompanyID)
		}
		return apperrors.NewAppError(500, "failed to add user "+m.UserID+" to company "+m.CompanyID, err)
	}
	return nil
}

// FindUserCompanyRole returns the user's role inside a company.
func (r *PgxCompanyRepository) FindUserCompanyRole(ctx context.Context, userID string, companyID string) (*domain.UserCompanyRole, error) {
	query := `
		SELECT role
		FROM user_companies
		WHERE user_id = $1 AND company_id = $2;
	`
	var role string
	if err := r.Pool.QueryRow(ctx, query, userID, companyID).Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find role for user "+userID+" in company "+companyID, err)
	}
	r2 := domain.UserCompanyRole(role)
	return &r2, nil
}
