package repositories

import (
	"context"

	"github.com/finledger/fin_titles_app/internal/core/domain"
)

// BankAccountRepositoryFacade persists bank accounts and their movement
// history. Balance mutation happens only through the settlement
// repository's transactional methods.
type BankAccountRepositoryFacade interface {
	SaveBankAccount(ctx context.Context, account domain.BankAccount, opening *domain.BankMovement) error
	FindBankAccountByID(ctx context.Context, companyID string, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, companyID string) ([]domain.BankAccount, error)
	ListMovements(ctx context.Context, companyID string, bankAccountID string, limit int, nextToken *string) ([]domain.BankMovement, *string, error)
}
