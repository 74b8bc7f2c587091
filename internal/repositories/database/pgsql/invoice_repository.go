package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tirtatour/travel_billing_app/internal/apperrors"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	portsrepo "github.com/tirtatour/travel_billing_app/internal/core/ports/repositories"
	"github.com/tirtatour/travel_billing_app/internal/models"
	"github.com/tirtatour/travel_billing_app/internal/utils/mapping"
	"github.com/tirtatour/travel_billing_app/internal/utils/pagination"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryWithTx
var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `
	invoice_id, invoice_number, order_id, owner_id, branch_id, currency_code,
	total_amount, dp_percent, dp_amount, paid_amount, remaining_amount, status,
	issued_at, dp_due_at, full_payment_due_at, auto_cancel_at,
	is_blocked, is_overdue, overdue_activated_by, overdue_activated_at,
	overpaid_excess, credit_target_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row rowScanner) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceNumber,
		&m.OrderID,
		&m.OwnerID,
		&m.BranchID,
		&m.CurrencyCode,
		&m.TotalAmount,
		&m.DPPercent,
		&m.DPAmount,
		&m.PaidAmount,
		&m.RemainingAmount,
		&m.Status,
		&m.IssuedAt,
		&m.DPDueAt,
		&m.FullPaymentDueAt,
		&m.AutoCancelAt,
		&m.IsBlocked,
		&m.IsOverdue,
		&m.OverdueActivatedBy,
		&m.OverdueActivatedAt,
		&m.OverpaidExcess,
		&m.CreditTargetID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxInvoiceRepository) findInvoiceByID(ctx context.Context, q rowQuerier, invoiceID string, forUpdate bool) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	m, err := scanInvoice(q.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}

	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoiceByID(ctx, r.Pool, invoiceID, false)
}

// FindInvoiceByIDForUpdate retrieves an invoice inside tx, holding a row lock until commit.
func (r *PgxInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoiceByID(ctx, tx, invoiceID, true)
}

// ListInvoices retrieves a paginated list of invoices using token-based pagination.
// Newest invoices come first; (created_at, invoice_id) is the stable cursor.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, status *domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	args := []any{}

	if status != nil {
		args = append(args, string(*status))
		baseQuery += ` AND status = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		fields, decodeErr := pagination.DecodeMultiFieldToken(*nextToken)
		if decodeErr != nil || len(fields) != 2 {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		lastCreatedAt, parseErr := time.Parse(time.RFC3339Nano, fields[0])
		if parseErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", parseErr)
		}
		args = append(args, lastCreatedAt, fields[1])
		baseQuery += ` AND (created_at, invoice_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY created_at DESC, invoice_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query invoices", err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		m, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan invoice row", scanErr)
		}
		invoices = append(invoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	var newNextToken *string
	if len(invoices) > limit {
		last := invoices[limit-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.InvoiceID)
		newNextToken = &token
		invoices = invoices[:limit]
	}

	return mapping.ToDomainInvoiceSlice(invoices), newNextToken, nil
}

// ListOverdueCandidates retrieves unblocked invoices still awaiting their down
// payment whose auto-cancel deadline has passed as of the given instant.
func (r *PgxInvoiceRepository) ListOverdueCandidates(ctx context.Context, asOf time.Time, limit int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE is_blocked = FALSE
		  AND status IN ('TENTATIVE', 'PARTIAL_PAID')
		  AND auto_cancel_at IS NOT NULL
		  AND auto_cancel_at <= $1
		  AND paid_amount < dp_amount
		ORDER BY auto_cancel_at
		LIMIT $2;`

	return r.queryInvoices(ctx, query, asOf, limit)
}

func (r *PgxInvoiceRepository) queryInvoices(ctx context.Context, query string, args ...any) ([]domain.Invoice, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices", err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		m, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", scanErr)
		}
		invoices = append(invoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	return mapping.ToDomainInvoiceSlice(invoices), nil
}

// SaveInvoice persists a new invoice.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24, $25, $26);`

	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID, m.InvoiceNumber, m.OrderID, m.OwnerID, m.BranchID, m.CurrencyCode,
		m.TotalAmount, m.DPPercent, m.DPAmount, m.PaidAmount, m.RemainingAmount, m.Status,
		m.IssuedAt, m.DPDueAt, m.FullPaymentDueAt, m.AutoCancelAt,
		m.IsBlocked, m.IsOverdue, m.OverdueActivatedBy, m.OverdueActivatedAt,
		m.OverpaidExcess, m.CreditTargetID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "invoice already exists for order "+invoice.OrderID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}
	return nil
}

const updateInvoiceQuery = `
	UPDATE invoices SET
		currency_code = $2,
		total_amount = $3,
		dp_percent = $4,
		dp_amount = $5,
		paid_amount = $6,
		remaining_amount = $7,
		status = $8,
		issued_at = $9,
		dp_due_at = $10,
		full_payment_due_at = $11,
		auto_cancel_at = $12,
		is_blocked = $13,
		is_overdue = $14,
		overdue_activated_by = $15,
		overdue_activated_at = $16,
		overpaid_excess = $17,
		credit_target_id = $18,
		last_updated_at = $19,
		last_updated_by = $20
	WHERE invoice_id = $1;`

func invoiceUpdateArgs(m models.Invoice) []any {
	return []any{
		m.InvoiceID,
		m.CurrencyCode,
		m.TotalAmount,
		m.DPPercent,
		m.DPAmount,
		m.PaidAmount,
		m.RemainingAmount,
		m.Status,
		m.IssuedAt,
		m.DPDueAt,
		m.FullPaymentDueAt,
		m.AutoCancelAt,
		m.IsBlocked,
		m.IsOverdue,
		m.OverdueActivatedBy,
		m.OverdueActivatedAt,
		m.OverpaidExcess,
		m.CreditTargetID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// UpdateInvoice persists changes to an existing invoice.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	tag, err := r.Pool.Exec(ctx, updateInvoiceQuery, invoiceUpdateArgs(m)...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateInvoiceInTx persists changes to an existing invoice within the given transaction.
func (r *PgxInvoiceRepository) UpdateInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	tag, err := tx.Exec(ctx, updateInvoiceQuery, invoiceUpdateArgs(m)...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
