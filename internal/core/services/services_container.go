package services

import (
	portsrepo "github.com/finledger/fin_titles_app/internal/core/ports/repositories"
	portssvc "github.com/finledger/fin_titles_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The company service doubles as the authorizer every other service
	// consults, so it must exist first.
	container.Company = NewCompanyService(repos.CompanyRepo)
	authorizer := container.Company.(portssvc.CompanyAuthorizerSvc)

	container.Title = NewTitleService(
		repos.TitleRepo,
		repos.CounterpartyRepo,
		repos.CategoryRepo,
		repos.AuditRepo,
		authorizer,
	)
	container.Settlement = NewSettlementService(
		repos.SettlementRepo,
		repos.TitleRepo,
		repos.BankAccountRepo,
		authorizer,
	)
	container.Counterparty = NewCounterpartyService(repos.CounterpartyRepo, authorizer)
	container.Category = NewCategoryService(repos.CategoryRepo, authorizer)
	container.BankAccount = NewBankAccountService(repos.BankAccountRepo, authorizer)
	container.Reporting = NewReportingService(repos.ReportingRepo, authorizer)
	container.CashFlow = NewCashFlowService(repos.ReportingRepo, repos.BankAccountRepo, authorizer)

	return container
}
