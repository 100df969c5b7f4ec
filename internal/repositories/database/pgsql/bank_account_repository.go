package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/finledger/fin_titles_app/internal/apperrors"
	"github.com/finledger/fin_titles_app/internal/core/domain"
	portsrepo "github.com/finledger/fin_titles_app/internal/core/ports/repositories"
	"github.com/finledger/fin_titles_app/internal/models"
	"github.com/finledger/fin_titles_app/internal/utils/mapping"
	"github.com/finledger/fin_titles_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bankAccountColumns = `
	bank_account_id, company_id, name, bank_code, agency, number,
	balance, is_active, created_at, created_by, last_updated_at, last_updated_by
`

const bankMovementColumns = `
	movement_id, bank_account_id, company_id, settlement_id,
	movement_type, amount, balance_after, movement_date, description,
	created_at, created_by, last_updated_at, last_updated_by
`

type PgxBankAccountRepository struct {
	BaseRepository
}

// newPgxBankAccountRepository creates a new repository for bank account data.
func newPgxBankAccountRepository(pool *pgxpool.Pool) portsrepo.BankAccountRepositoryFacade {
	return &PgxBankAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

// SaveBankAccount inserts the account and, when an opening balance exists,
// its opening movement in the same transaction.
func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount, opening *domain.BankMovement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBankAccount(account)
	query := `
		INSERT INTO bank_accounts (
			bank_account_id, company_id, name, bank_code, agency, number,
			balance, is_active, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	if _, err := tx.Exec(ctx, query,
		m.BankAccountID, m.CompanyID, m.Name, m.BankCode, m.Agency, m.Number,
		m.Balance, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: bank account %s already exists", apperrors.ErrDuplicate, m.BankAccountID)
		}
		return apperrors.NewAppError(500, "failed to insert bank account "+m.BankAccountID, err)
	}

	if opening != nil {
		om := mapping.ToModelBankMovement(*opening)
		openingQuery := `
			INSERT INTO bank_movements (` + bankMovementColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
		`
		if _, err := tx.Exec(ctx, openingQuery,
			om.MovementID, om.BankAccountID, om.CompanyID, om.SettlementID,
			om.Type, om.Amount, om.BalanceAfter, om.Date, om.Description,
			om.CreatedAt, om.CreatedBy, om.LastUpdatedAt, om.LastUpdatedBy,
		); err != nil {
			return apperrors.NewAppError(500, "failed to insert opening movement for account "+om.BankAccountID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func scanBankAccount(row pgx.Row) (models.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.BankAccountID, &m.CompanyID, &m.Name, &m.BankCode, &m.Agency, &m.Number,
		&m.Balance, &m.IsActive, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindBankAccountByID retrieves one account scoped to a company.
func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, companyID string, bankAccountID string) (*domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE bank_account_id = $1 AND company_id = $2 AND deleted_at IS NULL;
	`
	m, err := scanBankAccount(r.Pool.QueryRow(ctx, query, bankAccountID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank account by ID "+bankAccountID, err)
	}
	d := mapping.ToDomainBankAccount(m)
	return &d, nil
}

// ListBankAccounts returns all accounts of a company ordered by name.
func (r *PgxBankAccountRepository) ListBankAccounts(ctx context.Context, companyID string) ([]domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank accounts for company "+companyID, err)
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		m, scanErr := scanBankAccount(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank account row for company "+companyID, scanErr)
		}
		accounts = append(accounts, mapping.ToDomainBankAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank account rows for company "+companyID, err)
	}
	return accounts, nil
}

// ListMovements retrieves a page of account movements using token-based
// pagination over (movement_date, created_at), newest first.
func (r *PgxBankAccountRepository) ListMovements(ctx context.Context, companyID string, bankAccountID string, limit int, nextToken *string) ([]domain.BankMovement, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	filterClause := `WHERE bank_account_id = $1 AND company_id = $2`
	args := []any{bankAccountID, companyID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (movement_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := `
		SELECT ` + bankMovementColumns + `
		FROM bank_movements
		` + filterClause + `
		ORDER BY movement_date DESC, created_at DESC
		LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query movements for account "+bankAccountID, err)
	}
	defer rows.Close()

	movements := make([]models.BankMovement, 0, fetchLimit)
	for rows.Next() {
		var m models.BankMovement
		if err := rows.Scan(
			&m.MovementID, &m.BankAccountID, &m.CompanyID, &m.SettlementID,
			&m.Type, &m.Amount, &m.BalanceAfter, &m.Date, &m.Description,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan movement row for account "+bankAccountID, err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating movement rows for account "+bankAccountID, err)
	}

	var nextTokenVal *string
	results := movements
	if len(movements) > limit {
		last := movements[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		results = movements[:limit]
	}

	return mapping.ToDomainBankMovementSlice(results), nextTokenVal, nil
}
