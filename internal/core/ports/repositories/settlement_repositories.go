package repositories

import (
	"context"

	"github.com/finledger/fin_titles_app/internal/core/domain"
)

// SettlementRepositoryFacade persists settlements and applies their
// balance effects. Both mutating methods run inside one database
// transaction holding row locks on the title (and bank account, when one
// is involved), re-checking the balance under the lock so concurrent
// settlements cannot double-spend the outstanding balance.
type SettlementRepositoryFacade interface {
	// ApplySettlement inserts the settlement, decrements the title's
	// outstanding balance, records the bank movement and credits/debits the
	// account, and writes the audit entry, all atomically. The settlement's
	// BalanceBefore/BalanceAfter are finalized from the locked title row.
	// Returns the updated title and the persisted settlement.
	ApplySettlement(ctx context.Context, settlement domain.Settlement, movement *domain.BankMovement, audit *domain.AuditEntry) (*domain.Title, *domain.Settlement, error)

	// ApplyReversal marks the original settlement REVERSED, inserts the
	// compensating reversal row, restores the title balance and status,
	// undoes the bank movement, and writes the audit entry, atomically.
	// Returns the updated title.
	ApplyReversal(ctx context.Context, original domain.Settlement, reversal domain.Settlement, movement *domain.BankMovement, audit *domain.AuditEntry) (*domain.Title, error)

	// FindSettlementByID fetches one settlement scoped to a company.
	FindSettlementByID(ctx context.Context, companyID string, settlementID string) (*domain.Settlement, error)

	// ListSettlementsByTitle returns all settlements of a title ordered by
	// date then creation time, including reversed and reversal rows.
	ListSettlementsByTitle(ctx context.Context, companyID string, titleID string) ([]domain.Settlement, error)
}
