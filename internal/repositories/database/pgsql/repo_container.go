package pgsql

import (
	portsrepo "github.com/finledger/fin_titles_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	titleRepo := newPgxTitleRepository(dbPool)
	settlementRepo := newPgxSettlementRepository(dbPool)
	bankAccountRepo := newPgxBankAccountRepository(dbPool)
	counterpartyRepo := newPgxCounterpartyRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	companyRepo := newPgxCompanyRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TitleRepo:        titleRepo,
		SettlementRepo:   settlementRepo,
		BankAccountRepo:  bankAccountRepo,
		CounterpartyRepo: counterpartyRepo,
		CategoryRepo:     categoryRepo,
		CompanyRepo:      companyRepo,
		AuditRepo:        auditRepo,
		ReportingRepo:    reportingRepo,
	}
}
