package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves a specific invoice by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByIDForUpdate retrieves an invoice inside tx with a row lock held until commit.
	FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices using token-based pagination,
	// optionally filtered by status. It returns the invoices, a token for the next page, and an error.
	ListInvoices(ctx context.Context, status *domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// ListOverdueCandidates retrieves unblocked invoices still awaiting their down
	// payment whose auto-cancel deadline has passed as of the given instant.
	ListOverdueCandidates(ctx context.Context, asOf time.Time, limit int) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice persists changes to an existing invoice.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoiceInTx persists changes to an existing invoice within the given transaction.
	UpdateInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
// This is a facade for clients that need access to all operations
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
