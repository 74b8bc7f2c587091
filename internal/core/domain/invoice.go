package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the closed set of invoice lifecycle states. New states
// are a code change plus migration, never a runtime-mutable enum.
type InvoiceStatus string

const (
	StatusDraft                 InvoiceStatus = "DRAFT"
	StatusTentative             InvoiceStatus = "TENTATIVE"
	StatusPartialPaid           InvoiceStatus = "PARTIAL_PAID"
	StatusPaid                  InvoiceStatus = "PAID"
	StatusProcessing            InvoiceStatus = "PROCESSING"
	StatusCompleted             InvoiceStatus = "COMPLETED"
	StatusOverdue               InvoiceStatus = "OVERDUE"
	StatusCanceled              InvoiceStatus = "CANCELED"
	StatusOverpaid              InvoiceStatus = "OVERPAID"
	StatusOverpaidTransferred   InvoiceStatus = "OVERPAID_TRANSFERRED"
	StatusOverpaidReceived      InvoiceStatus = "OVERPAID_RECEIVED"
	StatusOverpaidRefundPending InvoiceStatus = "OVERPAID_REFUND_PENDING"
	StatusRefundCanceled        InvoiceStatus = "REFUND_CANCELED"
	StatusRefunded              InvoiceStatus = "REFUNDED"
	StatusOrderUpdated          InvoiceStatus = "ORDER_UPDATED"
)

// terminalStatuses are states an invoice never leaves.
var terminalStatuses = map[InvoiceStatus]bool{
	StatusCompleted:           true,
	StatusCanceled:            true,
	StatusOverpaidTransferred: true,
	StatusOverpaidReceived:    true,
	StatusRefundCanceled:      true,
	StatusRefunded:            true,
}

// IsTerminal reports whether the status is final.
func (s InvoiceStatus) IsTerminal() bool {
	return terminalStatuses[s]
}

// prePaymentStatuses are the states in which the overdue sweep may still
// block an invoice (no verified DP yet, or DP only partially covered).
var prePaymentStatuses = map[InvoiceStatus]bool{
	StatusTentative:   true,
	StatusPartialPaid: true,
}

// IsPrePayment reports whether the invoice can still be auto-blocked.
func (s InvoiceStatus) IsPrePayment() bool {
	return prePaymentStatuses[s]
}

// Invoice is one order's billing record. Cancellation is a status, never a
// row deletion. Invariant at every settled state:
// PaidAmount + RemainingAmount == TotalAmount and RemainingAmount >= 0.
type Invoice struct {
	InvoiceID       string          `json:"invoiceID"` // Primary Key (UUID)
	InvoiceNumber   string          `json:"invoiceNumber"`
	OrderID         string          `json:"orderID"`  // Read once from the order subsystem
	OwnerID         string          `json:"ownerID"`  // Customer owning the order
	BranchID        string          `json:"branchID"` // Issuing branch
	CurrencyCode    string          `json:"currencyCode"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	DPPercent       decimal.Decimal `json:"dpPercent"` // Down-payment percentage (0..100)
	DPAmount        decimal.Decimal `json:"dpAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Status          InvoiceStatus   `json:"status"`

	IssuedAt         *time.Time `json:"issuedAt"`
	DPDueAt          *time.Time `json:"dpDueAt"`
	FullPaymentDueAt *time.Time `json:"fullPaymentDueAt"`
	AutoCancelAt     *time.Time `json:"autoCancelAt"`

	IsBlocked          bool       `json:"isBlocked"`
	IsOverdue          bool       `json:"isOverdue"`
	OverdueActivatedBy string     `json:"overdueActivatedBy"` // Actor that flipped the flag ("system" for the sweep)
	OverdueActivatedAt *time.Time `json:"overdueActivatedAt"`

	// Overpayment bookkeeping, populated when verified paid exceeds total.
	OverpaidExcess decimal.Decimal `json:"overpaidExcess"`
	CreditTargetID string          `json:"creditTargetID"` // Invoice/order the excess was transferred to

	AuditFields
}

// Excess returns the verified amount above the invoice total, never negative.
func (i Invoice) Excess() decimal.Decimal {
	excess := i.PaidAmount.Sub(i.TotalAmount)
	if excess.IsNegative() {
		return decimal.Zero
	}
	return excess
}

// DPCovered reports whether verified payments cover the down payment.
func (i Invoice) DPCovered() bool {
	return i.PaidAmount.GreaterThanOrEqual(i.DPAmount)
}
