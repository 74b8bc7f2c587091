package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/tirtatour/travel_billing_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	proofRepo := newPgxPaymentProofRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	mappingRepo := newPgxAccountMappingRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	periodRepo := newPgxPeriodRepository(dbPool)

	return portsrepo.RepositoryProvider{
		InvoiceRepo:        invoiceRepo,
		PaymentProofRepo:   proofRepo,
		AccountRepo:        accountRepo,
		AccountMappingRepo: mappingRepo,
		JournalRepo:        journalRepo,
		PeriodRepo:         periodRepo,
	}
}
