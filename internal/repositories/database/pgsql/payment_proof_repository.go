package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tirtatour/travel_billing_app/internal/apperrors"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	portsrepo "github.com/tirtatour/travel_billing_app/internal/core/ports/repositories"
	"github.com/tirtatour/travel_billing_app/internal/models"
	"github.com/tirtatour/travel_billing_app/internal/utils/mapping"
)

type PgxPaymentProofRepository struct {
	BaseRepository
}

// newPgxPaymentProofRepository creates a new repository for payment proof data.
func newPgxPaymentProofRepository(pool *pgxpool.Pool) portsrepo.PaymentProofRepositoryWithTx {
	return &PgxPaymentProofRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPaymentProofRepository implements portsrepo.PaymentProofRepositoryWithTx
var _ portsrepo.PaymentProofRepositoryWithTx = (*PgxPaymentProofRepository)(nil)

const proofColumns = `
	proof_id, invoice_id, amount, currency_code, payment_type, bank_reference,
	transfer_date, file_ref, uploaded_by, status, verified_by, verified_at,
	reject_reason, created_at, created_by, last_updated_at, last_updated_by`

func scanProof(row rowScanner) (models.PaymentProof, error) {
	var m models.PaymentProof
	err := row.Scan(
		&m.ProofID,
		&m.InvoiceID,
		&m.Amount,
		&m.CurrencyCode,
		&m.PaymentType,
		&m.BankReference,
		&m.TransferDate,
		&m.FileRef,
		&m.UploadedBy,
		&m.Status,
		&m.VerifiedBy,
		&m.VerifiedAt,
		&m.RejectReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPaymentProofRepository) findProofByID(ctx context.Context, q rowQuerier, proofID string, forUpdate bool) (*domain.PaymentProof, error) {
	query := `SELECT ` + proofColumns + ` FROM payment_proofs WHERE proof_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	m, err := scanProof(q.QueryRow(ctx, query, proofID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment proof by ID "+proofID, err)
	}

	proof := mapping.ToDomainPaymentProof(m)
	return &proof, nil
}

// FindProofByID retrieves a payment proof by its ID.
func (r *PgxPaymentProofRepository) FindProofByID(ctx context.Context, proofID string) (*domain.PaymentProof, error) {
	return r.findProofByID(ctx, r.Pool, proofID, false)
}

// FindProofByIDForUpdate retrieves a payment proof inside tx, holding a row lock until commit.
func (r *PgxPaymentProofRepository) FindProofByIDForUpdate(ctx context.Context, tx pgx.Tx, proofID string) (*domain.PaymentProof, error) {
	return r.findProofByID(ctx, tx, proofID, true)
}

// ListProofsByInvoice retrieves all payment proofs for an invoice, oldest first.
func (r *PgxPaymentProofRepository) ListProofsByInvoice(ctx context.Context, invoiceID string) ([]domain.PaymentProof, error) {
	query := `SELECT ` + proofColumns + `
		FROM payment_proofs
		WHERE invoice_id = $1
		ORDER BY created_at, proof_id;`

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payment proofs for invoice "+invoiceID, err)
	}
	defer rows.Close()

	proofs := []models.PaymentProof{}
	for rows.Next() {
		m, scanErr := scanProof(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment proof row", scanErr)
		}
		proofs = append(proofs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment proof rows", err)
	}

	return mapping.ToDomainPaymentProofSlice(proofs), nil
}

// SaveProof persists a new payment proof.
func (r *PgxPaymentProofRepository) SaveProof(ctx context.Context, proof domain.PaymentProof) error {
	m := mapping.ToModelPaymentProof(proof)
	query := `
		INSERT INTO payment_proofs (` + proofColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`

	_, err := r.Pool.Exec(ctx, query,
		m.ProofID, m.InvoiceID, m.Amount, m.CurrencyCode, m.PaymentType, m.BankReference,
		m.TransferDate, m.FileRef, m.UploadedBy, m.Status, m.VerifiedBy, m.VerifiedAt,
		m.RejectReason, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment proof "+m.ProofID, err)
	}
	return nil
}

// UpdateProofInTx persists verification-state changes to a proof within the given transaction.
func (r *PgxPaymentProofRepository) UpdateProofInTx(ctx context.Context, tx pgx.Tx, proof domain.PaymentProof) error {
	m := mapping.ToModelPaymentProof(proof)
	query := `
		UPDATE payment_proofs SET
			status = $2,
			verified_by = $3,
			verified_at = $4,
			reject_reason = $5,
			last_updated_at = $6,
			last_updated_by = $7
		WHERE proof_id = $1;`

	tag, err := tx.Exec(ctx, query,
		m.ProofID, m.Status, m.VerifiedBy, m.VerifiedAt, m.RejectReason,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment proof "+m.ProofID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
