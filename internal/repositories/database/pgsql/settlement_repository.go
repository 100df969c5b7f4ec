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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const settlementColumns = `
	settlement_id, title_id, company_id, bank_account_id, movement_id,
	amount, additions, discounts, total,
	balance_before, balance_after,
	settlement_date, status,
	reversal_of_id, reversed_by_id, reversed_at,
	notes, created_at, created_by, last_updated_at, last_updated_by
`

type PgxSettlementRepository struct {
	BaseRepository
}

// newPgxSettlementRepository creates a new repository for settlement data.
func newPgxSettlementRepository(pool *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

// lockTitleForUpdate fetches the title row under FOR UPDATE so no
// concurrent settlement can act on a stale balance.
func lockTitleForUpdate(ctx context.Context, tx pgx.Tx, companyID, titleID string) (models.Title, error) {
	query := `
		SELECT ` + titleColumns + `
		FROM titles
		WHERE title_id = $1 AND company_id = $2 AND deleted_at IS NULL
		FOR UPDATE;
	`
	m, err := scanTitle(tx.QueryRow(ctx, query, titleID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Title{}, apperrors.ErrNotFound
		}
		return models.Title{}, apperrors.NewAppError(500, "failed to lock title "+titleID, err)
	}
	return m, nil
}

// applyMovementTx locks the bank account, recomputes its balance, inserts
// the movement with its finalized balance_after, and updates the account.
func applyMovementTx(ctx context.Context, tx pgx.Tx, movement *domain.BankMovement) (decimal.Decimal, error) {
	var balance decimal.Decimal
	lockQuery := `
		SELECT balance
		FROM bank_accounts
		WHERE bank_account_id = $1 AND company_id = $2 AND deleted_at IS NULL
		FOR UPDATE;
	`
	if err := tx.QueryRow(ctx, lockQuery, movement.BankAccountID, movement.CompanyID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: bank account %s", apperrors.ErrNotFound, movement.BankAccountID)
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to lock bank account "+movement.BankAccountID, err)
	}

	newBalance := balance.Add(movement.SignedAmount())
	movement.BalanceAfter = newBalance

	m := mapping.ToModelBankMovement(*movement)
	insertQuery := `
		INSERT INTO bank_movements (
			movement_id, bank_account_id, company_id, settlement_id,
			movement_type, amount, balance_after, movement_date, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	if _, err := tx.Exec(ctx, insertQuery,
		m.MovementID, m.BankAccountID, m.CompanyID, m.SettlementID,
		m.Type, m.Amount, m.BalanceAfter, m.Date, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to insert bank movement "+m.MovementID, err)
	}

	updateQuery := `
		UPDATE bank_accounts
		SET balance = $3, last_updated_at = $4, last_updated_by = $5
		WHERE bank_account_id = $1 AND company_id = $2;
	`
	if _, err := tx.Exec(ctx, updateQuery,
		m.BankAccountID, m.CompanyID, newBalance, m.LastUpdatedAt, m.LastUpdatedBy,
	); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to update bank account balance "+m.BankAccountID, err)
	}

	return newBalance, nil
}

func insertSettlementTx(ctx context.Context, tx pgx.Tx, m models.Settlement) error {
	query := `
		INSERT INTO settlements (
			settlement_id, title_id, company_id, bank_account_id, movement_id,
			amount, additions, discounts, total,
			balance_before, balance_after,
			settlement_date, status,
			reversal_of_id, reversed_by_id, reversed_at,
			notes, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	if _, err := tx.Exec(ctx, query,
		m.SettlementID, m.TitleID, m.CompanyID, m.BankAccountID, m.MovementID,
		m.Amount, m.Additions, m.Discounts, m.Total,
		m.BalanceBefore, m.BalanceAfter,
		m.Date, m.Status,
		m.ReversalOfID, m.ReversedByID, m.ReversedAt,
		m.Notes, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	); err != nil {
		return apperrors.NewAppError(500, "failed to insert settlement "+m.SettlementID, err)
	}
	return nil
}

func updateTitleBalanceTx(ctx context.Context, tx pgx.Tx, m models.Title) error {
	query := `
		UPDATE titles
		SET outstanding_balance = $3,
		    status = $4,
		    settlement_date = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE title_id = $1 AND company_id = $2;
	`
	if _, err := tx.Exec(ctx, query,
		m.TitleID, m.CompanyID,
		m.OutstandingBalance, m.Status, m.SettlementDate,
		m.LastUpdatedAt, m.LastUpdatedBy,
	); err != nil {
		return apperrors.NewAppError(500, "failed to update title balance "+m.TitleID, err)
	}
	return nil
}

// ApplySettlement performs the whole baixa atomically. The outstanding
// balance is re-checked under the row lock: the service's earlier check
// ran against a snapshot and a concurrent settlement may have drained the
// balance since.
func (r *PgxSettlementRepository) ApplySettlement(ctx context.Context, settlement domain.Settlement, movement *domain.BankMovement, audit *domain.AuditEntry) (*domain.Title, *domain.Settlement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	lockedTitle, err := lockTitleForUpdate(ctx, tx, settlement.CompanyID, settlement.TitleID)
	if err != nil {
		return nil, nil, err
	}

	switch domain.TitleStatus(lockedTitle.Status) {
	case domain.TitleSettled:
		return nil, nil, fmt.Errorf("%w: title is already settled", apperrors.ErrDomain)
	case domain.TitleCancelled:
		return nil, nil, fmt.Errorf("%w: cancelled titles cannot be settled", apperrors.ErrForbiddenState)
	}
	if settlement.Amount.GreaterThan(lockedTitle.OutstandingBalance) {
		return nil, nil, fmt.Errorf("%w: amount %s exceeds outstanding balance %s",
			apperrors.ErrInsufficientBalance,
			settlement.Amount.StringFixed(2), lockedTitle.OutstandingBalance.StringFixed(2))
	}

	// Finalize the balance figures from the locked row.
	settlement.BalanceBefore = lockedTitle.OutstandingBalance
	settlement.BalanceAfter = lockedTitle.OutstandingBalance.Sub(settlement.Amount)

	lockedTitle.OutstandingBalance = settlement.BalanceAfter
	settlementDate := settlement.Date
	lockedTitle.SettlementDate = &settlementDate
	if settlement.BalanceAfter.IsZero() {
		lockedTitle.Status = string(domain.TitleSettled)
	} else {
		lockedTitle.Status = string(domain.TitlePartial)
	}
	lockedTitle.LastUpdatedAt = settlement.LastUpdatedAt
	lockedTitle.LastUpdatedBy = settlement.LastUpdatedBy

	if err := updateTitleBalanceTx(ctx, tx, lockedTitle); err != nil {
		return nil, nil, err
	}

	if movement != nil {
		if _, err := applyMovementTx(ctx, tx, movement); err != nil {
			return nil, nil, err
		}
	}

	if err := insertSettlementTx(ctx, tx, mapping.ToModelSettlement(settlement)); err != nil {
		return nil, nil, err
	}

	if audit != nil {
		if err := insertAuditEntryTx(ctx, tx, *audit); err != nil {
			return nil, nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	updated := mapping.ToDomainTitle(lockedTitle)
	return &updated, &settlement, nil
}

// ApplyReversal performs the estorno atomically: the original row is
// marked REVERSED, the compensating REVERSAL row is inserted, the title
// balance and status are restored, and the bank movement is undone.
func (r *PgxSettlementRepository) ApplyReversal(ctx context.Context, original domain.Settlement, reversal domain.Settlement, movement *domain.BankMovement, audit *domain.AuditEntry) (*domain.Title, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockedTitle, err := lockTitleForUpdate(ctx, tx, original.CompanyID, original.TitleID)
	if err != nil {
		return nil, err
	}

	// Re-check the original under lock; a concurrent estorno may have won.
	var currentStatus string
	statusQuery := `
		SELECT status FROM settlements
		WHERE settlement_id = $1 AND company_id = $2 AND deleted_at IS NULL
		FOR UPDATE;
	`
	if err := tx.QueryRow(ctx, statusQuery, original.SettlementID, original.CompanyID).Scan(&currentStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock settlement "+original.SettlementID, err)
	}
	if domain.SettlementStatus(currentStatus) != domain.SettlementActive {
		return nil, fmt.Errorf("%w: settlement is no longer active", apperrors.ErrDomain)
	}

	reversedAt := reversal.CreatedAt
	markQuery := `
		UPDATE settlements
		SET status = $3,
		    reversed_by_id = $4,
		    reversed_at = $5,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE settlement_id = $1 AND company_id = $2;
	`
	if _, err := tx.Exec(ctx, markQuery,
		original.SettlementID, original.CompanyID,
		string(domain.SettlementReversed), reversal.SettlementID, reversedAt, reversal.CreatedBy,
	); err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark settlement reversed "+original.SettlementID, err)
	}

	if err := insertSettlementTx(ctx, tx, mapping.ToModelSettlement(reversal)); err != nil {
		return nil, err
	}

	// Restore the title balance and derive the status from what remains.
	restored := lockedTitle.OutstandingBalance.Add(original.Amount)
	lockedTitle.OutstandingBalance = restored
	if restored.GreaterThanOrEqual(lockedTitle.Total) {
		lockedTitle.Status = string(domain.TitlePending)
	} else {
		lockedTitle.Status = string(domain.TitlePartial)
	}

	// The title's settlement date tracks the latest still-active baixa.
	lastDateQuery := `
		SELECT MAX(settlement_date)
		FROM settlements
		WHERE title_id = $1 AND company_id = $2 AND status = $3 AND deleted_at IS NULL;
	`
	if err := tx.QueryRow(ctx, lastDateQuery,
		original.TitleID, original.CompanyID, string(domain.SettlementActive),
	).Scan(&lockedTitle.SettlementDate); err != nil {
		return nil, apperrors.NewAppError(500, "failed to resolve latest active settlement date for title "+original.TitleID, err)
	}

	lockedTitle.LastUpdatedAt = reversal.LastUpdatedAt
	lockedTitle.LastUpdatedBy = reversal.LastUpdatedBy
	if err := updateTitleBalanceTx(ctx, tx, lockedTitle); err != nil {
		return nil, err
	}

	if movement != nil {
		if _, err := applyMovementTx(ctx, tx, movement); err != nil {
			return nil, err
		}
	}

	if audit != nil {
		if err := insertAuditEntryTx(ctx, tx, *audit); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	updated := mapping.ToDomainTitle(lockedTitle)
	return &updated, nil
}

func scanSettlement(row pgx.Row) (models.Settlement, error) {
	var m models.Settlement
	err := row.Scan(
		&m.SettlementID, &m.TitleID, &m.CompanyID, &m.BankAccountID, &m.MovementID,
		&m.Amount, &m.Additions, &m.Discounts, &m.Total,
		&m.BalanceBefore, &m.BalanceAfter,
		&m.Date, &m.Status,
		&m.ReversalOfID, &m.ReversedByID, &m.ReversedAt,
		&m.Notes, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindSettlementByID retrieves one settlement scoped to a company.
func (r *PgxSettlementRepository) FindSettlementByID(ctx context.Context, companyID string, settlementID string) (*domain.Settlement, error) {
	query := `
		SELECT ` + settlementColumns + `
		FROM settlements
		WHERE settlement_id = $1 AND company_id = $2 AND deleted_at IS NULL;
	`
	m, err := scanSettlement(r.Pool.QueryRow(ctx, query, settlementID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find settlement by ID "+settlementID, err)
	}
	d := mapping.ToDomainSettlement(m)
	return &d, nil
}

// ListSettlementsByTitle returns the full settlement history of a title,
// ordered by settlement date then creation time.
func (r *PgxSettlementRepository) ListSettlementsByTitle(ctx context.Context, companyID string, titleID string) ([]domain.Settlement, error) {
	query := `
		SELECT ` + settlementColumns + `
		FROM settlements
		WHERE title_id = $1 AND company_id = $2 AND deleted_at IS NULL
		ORDER BY settlement_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, titleID, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query settlements for title "+titleID, err)
	}
	defer rows.Close()

	settlements := []models.Settlement{}
	for rows.Next() {
		m, scanErr := scanSettlement(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan settlement row for title "+titleID, scanErr)
		}
		settlements = append(settlements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating settlement rows for title "+titleID, err)
	}
	return mapping.ToDomainSettlementSlice(settlements), nil
}
