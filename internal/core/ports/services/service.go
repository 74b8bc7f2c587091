package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Invoice InvoiceSvcFacade
	Payment PaymentSvcFacade
	Ledger  LedgerSvcFacade
	Period  PeriodSvcFacade
	Account AccountSvcFacade

	Scheduler OverdueSchedulerSvc
	Notifier  EventNotifier
}
