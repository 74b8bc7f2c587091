package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
)

// CreateInvoiceRequest defines the data needed to open a new draft invoice.
type CreateInvoiceRequest struct {
	OrderID      string          `json:"orderID" binding:"required"`
	OwnerID      string          `json:"ownerID" binding:"required"`
	BranchID     string          `json:"branchID" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	TotalAmount  decimal.Decimal `json:"totalAmount" binding:"required,dgt0"`
	DPPercent    decimal.Decimal `json:"dpPercent"` // Optional, 0 means full payment upfront
}

// ConfirmOrderUpdateRequest carries the re-confirmed amounts for an invoice
// whose order changed after issue. A nil total keeps the current amount.
type ConfirmOrderUpdateRequest struct {
	NewTotalAmount *decimal.Decimal `json:"newTotalAmount"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Status    *string `form:"status"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID       string               `json:"invoiceID"`
	InvoiceNumber   string               `json:"invoiceNumber"`
	OrderID         string               `json:"orderID"`
	OwnerID         string               `json:"ownerID"`
	BranchID        string               `json:"branchID"`
	CurrencyCode    string               `json:"currencyCode"`
	TotalAmount     decimal.Decimal      `json:"totalAmount"`
	DPPercent       decimal.Decimal      `json:"dpPercent"`
	DPAmount        decimal.Decimal      `json:"dpAmount"`
	PaidAmount      decimal.Decimal      `json:"paidAmount"`
	RemainingAmount decimal.Decimal      `json:"remainingAmount"`
	Status          domain.InvoiceStatus `json:"status"`

	IssuedAt         *time.Time `json:"issuedAt,omitempty"`
	DPDueAt          *time.Time `json:"dpDueAt,omitempty"`
	FullPaymentDueAt *time.Time `json:"fullPaymentDueAt,omitempty"`
	AutoCancelAt     *time.Time `json:"autoCancelAt,omitempty"`

	IsBlocked          bool       `json:"isBlocked"`
	IsOverdue          bool       `json:"isOverdue"`
	OverdueActivatedBy string     `json:"overdueActivatedBy,omitempty"`
	OverdueActivatedAt *time.Time `json:"overdueActivatedAt,omitempty"`

	OverpaidExcess decimal.Decimal `json:"overpaidExcess"`
	CreditTargetID string          `json:"creditTargetID,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ListInvoicesResponse wraps a page of invoices with the token for the next page.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:          inv.InvoiceID,
		InvoiceNumber:      inv.InvoiceNumber,
		OrderID:            inv.OrderID,
		OwnerID:            inv.OwnerID,
		BranchID:           inv.BranchID,
		CurrencyCode:       inv.CurrencyCode,
		TotalAmount:        inv.TotalAmount,
		DPPercent:          inv.DPPercent,
		DPAmount:           inv.DPAmount,
		PaidAmount:         inv.PaidAmount,
		RemainingAmount:    inv.RemainingAmount,
		Status:             inv.Status,
		IssuedAt:           inv.IssuedAt,
		DPDueAt:            inv.DPDueAt,
		FullPaymentDueAt:   inv.FullPaymentDueAt,
		AutoCancelAt:       inv.AutoCancelAt,
		IsBlocked:          inv.IsBlocked,
		IsOverdue:          inv.IsOverdue,
		OverdueActivatedBy: inv.OverdueActivatedBy,
		OverdueActivatedAt: inv.OverdueActivatedAt,
		OverpaidExcess:     inv.OverpaidExcess,
		CreditTargetID:     inv.CreditTargetID,
		CreatedAt:          inv.CreatedAt,
		CreatedBy:          inv.CreatedBy,
	}
}

// ToInvoiceResponses converts a slice of domain.Invoice to []InvoiceResponse.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		responses[i] = ToInvoiceResponse(&inv)
	}
	return responses
}
