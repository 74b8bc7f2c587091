package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
)

// SubmitProofRequest defines the data needed to record an uploaded transfer proof.
// FileRef is the storage handle returned by the file-upload collaborator.
type SubmitProofRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required,dgt0"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3"`
	PaymentType   string          `json:"paymentType" binding:"required,oneof=DP PARTIAL FULL"`
	BankReference string          `json:"bankReference" binding:"required"`
	TransferDate  time.Time       `json:"transferDate" binding:"required"`
	FileRef       string          `json:"fileRef" binding:"required"`
}

// RejectProofRequest defines the data needed to decline a pending proof.
type RejectProofRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PaymentProofResponse defines the data returned for a payment proof.
type PaymentProofResponse struct {
	ProofID       string          `json:"proofID"`
	InvoiceID     string          `json:"invoiceID"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	PaymentType   string          `json:"paymentType"`
	BankReference string          `json:"bankReference"`
	TransferDate  time.Time       `json:"transferDate"`
	FileRef       string          `json:"fileRef"`
	UploadedBy    string          `json:"uploadedBy"`
	Status        string          `json:"status"`
	VerifiedBy    string          `json:"verifiedBy,omitempty"`
	VerifiedAt    *time.Time      `json:"verifiedAt,omitempty"`
	RejectReason  string          `json:"rejectReason,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToPaymentProofResponse converts a domain.PaymentProof to PaymentProofResponse DTO.
func ToPaymentProofResponse(p *domain.PaymentProof) PaymentProofResponse {
	return PaymentProofResponse{
		ProofID:       p.ProofID,
		InvoiceID:     p.InvoiceID,
		Amount:        p.Amount,
		CurrencyCode:  p.CurrencyCode,
		PaymentType:   string(p.PaymentType),
		BankReference: p.BankReference,
		TransferDate:  p.TransferDate,
		FileRef:       p.FileRef,
		UploadedBy:    p.UploadedBy,
		Status:        string(p.Status),
		VerifiedBy:    p.VerifiedBy,
		VerifiedAt:    p.VerifiedAt,
		RejectReason:  p.RejectReason,
		CreatedAt:     p.CreatedAt,
	}
}

// ToPaymentProofResponses converts a slice of domain.PaymentProof to []PaymentProofResponse.
func ToPaymentProofResponses(proofs []domain.PaymentProof) []PaymentProofResponse {
	responses := make([]PaymentProofResponse, len(proofs))
	for i, p := range proofs {
		responses[i] = ToPaymentProofResponse(&p)
	}
	return responses
}

// ResolveOverpaymentRequest selects how to settle an overpaid invoice's excess.
type ResolveOverpaymentRequest struct {
	Resolution      string  `json:"resolution" binding:"required,oneof=TRANSFER RECEIVE REFUND"`
	TargetInvoiceID *string `json:"targetInvoiceID"` // Required for TRANSFER
	RefundBankInfo  *string `json:"refundBankInfo"`  // Required for REFUND
}
