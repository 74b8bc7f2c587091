package services

import (
	"context"

	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	"github.com/tirtatour/travel_billing_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a specific invoice by its ID.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices.
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)
}

// InvoiceWriterSvc defines lifecycle operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice persists a new draft invoice for an order.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorID string) (*domain.Invoice, error)

	// IssueInvoice moves a draft invoice into the awaiting-payment state and stamps
	// its payment deadlines.
	IssueInvoice(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error)

	// CancelInvoice cancels an invoice that has not yet entered fulfilment.
	CancelInvoice(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error)

	// UnblockInvoice lifts the overdue block from an invoice after manual review.
	UnblockInvoice(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error)

	// MarkOrderUpdated flags an invoice whose underlying order changed after issue,
	// forcing re-confirmation of amounts before further payment processing.
	MarkOrderUpdated(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error)

	// ConfirmOrderUpdate re-issues an invoice flagged by an order change, optionally
	// with a revised total.
	ConfirmOrderUpdate(ctx context.Context, invoiceID string, req dto.ConfirmOrderUpdateRequest, actorID string) (*domain.Invoice, error)

	// StartProcessing moves a settled invoice into fulfilment.
	StartProcessing(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error)

	// CompleteInvoice closes out a fully processed invoice.
	CompleteInvoice(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
// This is a facade for clients that need access to all operations
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
