package services

// ServiceContainer holds instances of all the application services. This
// is the main entry point for accessing service functionality and is used
// throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Company      CompanySvcFacade
	Title        TitleSvcFacade
	Settlement   SettlementSvcFacade
	Counterparty CounterpartySvcFacade
	Category     CategorySvcFacade
	BankAccount  BankAccountSvcFacade
	Reporting    ReportingSvcFacade
	CashFlow     CashFlowSvcFacade
}
