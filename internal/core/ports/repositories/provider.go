package repositories

// RepositoryProvider bundles every repository facade for injection into
// the service layer.
type RepositoryProvider struct {
	TitleRepo        TitleRepositoryFacade
	SettlementRepo   SettlementRepositoryFacade
	BankAccountRepo  BankAccountRepositoryFacade
	CounterpartyRepo CounterpartyRepositoryFacade
	CategoryRepo     CategoryRepositoryFacade
	CompanyRepo      CompanyRepositoryFacade
	AuditRepo        AuditRepositoryFacade
	ReportingRepo    ReportingRepositoryFacade
}
