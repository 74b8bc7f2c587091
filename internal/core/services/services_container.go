package services

import (
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	portsrepo "github.com/tirtatour/travel_billing_app/internal/core/ports/repositories"
	portssvc "github.com/tirtatour/travel_billing_app/internal/core/ports/services"
	"github.com/tirtatour/travel_billing_app/pkg/config"
)

// NewServiceContainer wires all application services from the repository
// provider and configuration. Construction order follows the dependency
// chain: periods feed the ledger, the ledger feeds payments.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, notifier portssvc.EventNotifier) *portssvc.ServiceContainer {
	rates := domain.RateTable{
		BaseCurrency: cfg.BaseCurrency,
		Rates:        cfg.ExchangeRates,
	}
	deadlines := InvoiceDeadlines{
		DPDue:          cfg.DPDueGrace,
		FullPaymentDue: cfg.FullPaymentDueGrace,
		AutoCancel:     cfg.AutoCancelGrace,
	}

	periodSvc := NewPeriodService(repos.PeriodRepo)
	accountSvc := NewAccountService(repos.AccountRepo, repos.AccountMappingRepo)
	ledgerSvc := NewLedgerService(repos.JournalRepo, repos.AccountMappingRepo, repos.AccountRepo, periodSvc, rates)
	paymentSvc := NewPaymentService(repos.InvoiceRepo, repos.PaymentProofRepo, ledgerSvc, notifier)
	invoiceSvc := NewInvoiceService(repos.InvoiceRepo, deadlines, notifier)
	scheduler := NewOverdueScheduler(repos.InvoiceRepo, notifier, cfg.SweepInterval, cfg.SweepBatchSize)

	return &portssvc.ServiceContainer{
		Invoice:   invoiceSvc,
		Payment:   paymentSvc,
		Ledger:    ledgerSvc,
		Period:    periodSvc,
		Account:   accountSvc,
		Scheduler: scheduler,
		Notifier:  notifier,
	}
}
