package services

import (
	"context"

	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	"github.com/tirtatour/travel_billing_app/internal/dto"
)

// PaymentProofReaderSvc defines read operations for payment proofs
type PaymentProofReaderSvc interface {
	// GetProofByID retrieves a specific payment proof by its ID.
	GetProofByID(ctx context.Context, proofID string) (*domain.PaymentProof, error)

	// ListProofsByInvoice retrieves all payment proofs for an invoice, oldest first.
	ListProofsByInvoice(ctx context.Context, invoiceID string) ([]domain.PaymentProof, error)
}

// PaymentVerificationSvc defines the proof intake and verification operations
type PaymentVerificationSvc interface {
	// SubmitProof records an uploaded transfer proof against an invoice, pending review.
	SubmitProof(ctx context.Context, invoiceID string, req dto.SubmitProofRequest, uploaderID string) (*domain.PaymentProof, error)

	// VerifyPayment accepts a pending proof, applies its amount to the invoice,
	// posts the cash-receipt journal entry, and advances the invoice status.
	// Verifying an already-verified proof returns the invoice unchanged.
	VerifyPayment(ctx context.Context, invoiceID string, proofID string, verifierID string) (*domain.Invoice, error)

	// RejectProof declines a pending proof without touching the invoice balance.
	RejectProof(ctx context.Context, invoiceID string, proofID string, req dto.RejectProofRequest, verifierID string) (*domain.PaymentProof, error)
}

// OverpaymentSvc defines resolution operations for overpaid invoices
type OverpaymentSvc interface {
	// ResolveOverpayment applies the chosen resolution to an overpaid invoice:
	// transfer the excess to another invoice, keep it as received income, or
	// open a refund.
	ResolveOverpayment(ctx context.Context, invoiceID string, req dto.ResolveOverpaymentRequest, actorID string) (*domain.Invoice, error)

	// ConfirmRefund finalizes a pending refund once the money has left the bank.
	ConfirmRefund(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error)

	// CancelRefund abandons a pending refund and keeps the excess as received income.
	CancelRefund(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentProofReaderSvc
	PaymentVerificationSvc
	OverpaymentSvc
}
