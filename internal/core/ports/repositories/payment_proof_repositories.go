package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
)

// PaymentProofReader defines read operations for payment proof data
type PaymentProofReader interface {
	// FindProofByID retrieves a specific payment proof by its unique identifier.
	FindProofByID(ctx context.Context, proofID string) (*domain.PaymentProof, error)

	// FindProofByIDForUpdate retrieves a payment proof inside tx with a row lock held until commit.
	FindProofByIDForUpdate(ctx context.Context, tx pgx.Tx, proofID string) (*domain.PaymentProof, error)

	// ListProofsByInvoice retrieves all payment proofs submitted against an invoice,
	// oldest first.
	ListProofsByInvoice(ctx context.Context, invoiceID string) ([]domain.PaymentProof, error)
}

// PaymentProofWriter defines write operations for payment proof data
type PaymentProofWriter interface {
	// SaveProof persists a new payment proof.
	SaveProof(ctx context.Context, proof domain.PaymentProof) error

	// UpdateProofInTx persists changes to an existing payment proof within the given transaction.
	UpdateProofInTx(ctx context.Context, tx pgx.Tx, proof domain.PaymentProof) error
}

// PaymentProofRepositoryFacade combines all payment-proof repository interfaces
type PaymentProofRepositoryFacade interface {
	PaymentProofReader
	PaymentProofWriter
}

// PaymentProofRepositoryWithTx extends PaymentProofRepositoryFacade with transaction capabilities
type PaymentProofRepositoryWithTx interface {
	PaymentProofRepositoryFacade
	TransactionManager
}
