package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus mirrors domain.InvoiceStatus for persistence.
type InvoiceStatus string

// Invoice is the invoices table row.
type Invoice struct {
	InvoiceID       string          `db:"invoice_id"`
	InvoiceNumber   string          `db:"invoice_number"`
	OrderID         string          `db:"order_id"`
	OwnerID         string          `db:"owner_id"`
	BranchID        string          `db:"branch_id"`
	CurrencyCode    string          `db:"currency_code"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	DPPercent       decimal.Decimal `db:"dp_percent"`
	DPAmount        decimal.Decimal `db:"dp_amount"`
	PaidAmount      decimal.Decimal `db:"paid_amount"`
	RemainingAmount decimal.Decimal `db:"remaining_amount"`
	Status          InvoiceStatus   `db:"status"`

	IssuedAt         *time.Time `db:"issued_at"`
	DPDueAt          *time.Time `db:"dp_due_at"`
	FullPaymentDueAt *time.Time `db:"full_payment_due_at"`
	AutoCancelAt     *time.Time `db:"auto_cancel_at"`

	IsBlocked          bool       `db:"is_blocked"`
	IsOverdue          bool       `db:"is_overdue"`
	OverdueActivatedBy string     `db:"overdue_activated_by"`
	OverdueActivatedAt *time.Time `db:"overdue_activated_at"`

	OverpaidExcess decimal.Decimal `db:"overpaid_excess"`
	CreditTargetID string          `db:"credit_target_id"`

	AuditFields
}

// PaymentProof is the payment_proofs table row.
type PaymentProof struct {
	ProofID       string          `db:"proof_id"`
	InvoiceID     string          `db:"invoice_id"`
	Amount        decimal.Decimal `db:"amount"`
	CurrencyCode  string          `db:"currency_code"`
	PaymentType   string          `db:"payment_type"`
	BankReference string          `db:"bank_reference"`
	TransferDate  time.Time       `db:"transfer_date"`
	FileRef       string          `db:"file_ref"`
	UploadedBy    string          `db:"uploaded_by"`
	Status        string          `db:"status"`
	VerifiedBy    string          `db:"verified_by"`
	VerifiedAt    *time.Time      `db:"verified_at"`
	RejectReason  string          `db:"reject_reason"`
	AuditFields
}
