package services

// ServiceContainer is what the HTTP layer depends on: one facade per resource.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Transaction TransactionSvcFacade
}
