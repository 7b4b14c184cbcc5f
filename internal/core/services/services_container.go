package services

import (
	portsrepo "github.com/SscSPs/transaction_processor/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transaction_processor/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher, txOptions ...TransactionServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account: NewAccountService(
			repos.AccountRepo,
			repos.ClientRepo,
			repos.LedgerRepo,
			WithAccountEventPublisher(publisher),
		),
		Transaction: NewTransactionService(
			repos.AccountRepo,
			repos.LedgerRepo,
			publisher,
			txOptions...,
		),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
)
