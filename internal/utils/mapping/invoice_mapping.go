package mapping

import (
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	"github.com/tirtatour/travel_billing_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:          d.InvoiceID,
		InvoiceNumber:      d.InvoiceNumber,
		OrderID:            d.OrderID,
		OwnerID:            d.OwnerID,
		BranchID:           d.BranchID,
		CurrencyCode:       d.CurrencyCode,
		TotalAmount:        d.TotalAmount,
		DPPercent:          d.DPPercent,
		DPAmount:           d.DPAmount,
		PaidAmount:         d.PaidAmount,
		RemainingAmount:    d.RemainingAmount,
		Status:             models.InvoiceStatus(d.Status),
		IssuedAt:           d.IssuedAt,
		DPDueAt:            d.DPDueAt,
		FullPaymentDueAt:   d.FullPaymentDueAt,
		AutoCancelAt:       d.AutoCancelAt,
		IsBlocked:          d.IsBlocked,
		IsOverdue:          d.IsOverdue,
		OverdueActivatedBy: d.OverdueActivatedBy,
		OverdueActivatedAt: d.OverdueActivatedAt,
		OverpaidExcess:     d.OverpaidExcess,
		CreditTargetID:     d.CreditTargetID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:          m.InvoiceID,
		InvoiceNumber:      m.InvoiceNumber,
		OrderID:            m.OrderID,
		OwnerID:            m.OwnerID,
		BranchID:           m.BranchID,
		CurrencyCode:       m.CurrencyCode,
		TotalAmount:        m.TotalAmount,
		DPPercent:          m.DPPercent,
		DPAmount:           m.DPAmount,
		PaidAmount:         m.PaidAmount,
		RemainingAmount:    m.RemainingAmount,
		Status:             domain.InvoiceStatus(m.Status),
		IssuedAt:           m.IssuedAt,
		DPDueAt:            m.DPDueAt,
		FullPaymentDueAt:   m.FullPaymentDueAt,
		AutoCancelAt:       m.AutoCancelAt,
		IsBlocked:          m.IsBlocked,
		IsOverdue:          m.IsOverdue,
		OverdueActivatedBy: m.OverdueActivatedBy,
		OverdueActivatedAt: m.OverdueActivatedAt,
		OverpaidExcess:     m.OverpaidExcess,
		CreditTargetID:     m.CreditTargetID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	out := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		out[i] = ToDomainInvoice(m)
	}
	return out
}

// ToModelPaymentProof converts a domain PaymentProof to a model PaymentProof
func ToModelPaymentProof(d domain.PaymentProof) models.PaymentProof {
	return models.PaymentProof{
		ProofID:       d.ProofID,
		InvoiceID:     d.InvoiceID,
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		PaymentType:   string(d.PaymentType),
		BankReference: d.BankReference,
		TransferDate:  d.TransferDate,
		FileRef:       d.FileRef,
		UploadedBy:    d.UploadedBy,
		Status:        string(d.Status),
		VerifiedBy:    d.VerifiedBy,
		VerifiedAt:    d.VerifiedAt,
		RejectReason:  d.RejectReason,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentProof converts a model PaymentProof to a domain PaymentProof
func ToDomainPaymentProof(m models.PaymentProof) domain.PaymentProof {
	return domain.PaymentProof{
		ProofID:       m.ProofID,
		InvoiceID:     m.InvoiceID,
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		PaymentType:   domain.ProofPaymentType(m.PaymentType),
		BankReference: m.BankReference,
		TransferDate:  m.TransferDate,
		FileRef:       m.FileRef,
		UploadedBy:    m.UploadedBy,
		Status:        domain.ProofStatus(m.Status),
		VerifiedBy:    m.VerifiedBy,
		VerifiedAt:    m.VerifiedAt,
		RejectReason:  m.RejectReason,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentProofSlice converts a slice of model PaymentProofs to domain PaymentProofs
func ToDomainPaymentProofSlice(ms []models.PaymentProof) []domain.PaymentProof {
	out := make([]domain.PaymentProof, len(ms))
	for i, m := range ms {
		out[i] = ToDomainPaymentProof(m)
	}
	return out
}
