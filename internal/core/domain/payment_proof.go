package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProofPaymentType is what the uploader declared the transfer to be.
type ProofPaymentType string

const (
	ProofTypeDP      ProofPaymentType = "DP"
	ProofTypePartial ProofPaymentType = "PARTIAL"
	ProofTypeFull    ProofPaymentType = "FULL"
)

// ProofStatus is the verification state of an uploaded proof. A proof is
// mutated exactly once: PENDING -> VERIFIED or PENDING -> REJECTED.
type ProofStatus string

const (
	ProofPending  ProofStatus = "PENDING"
	ProofVerified ProofStatus = "VERIFIED"
	ProofRejected ProofStatus = "REJECTED"
)

// PaymentProof is one submitted evidence of a bank transfer. The image
// itself lives in the file-storage collaborator; FileRef is an opaque
// reference string, never bytes.
type PaymentProof struct {
	ProofID       string           `json:"proofID"` // Primary Key (UUID)
	InvoiceID     string           `json:"invoiceID"`
	Amount        decimal.Decimal  `json:"amount"`
	CurrencyCode  string           `json:"currencyCode"`
	PaymentType   ProofPaymentType `json:"paymentType"`
	BankReference string           `json:"bankReference"`
	TransferDate  time.Time        `json:"transferDate"`
	FileRef       string           `json:"fileRef"`
	UploadedBy    string           `json:"uploadedBy"`
	Status        ProofStatus      `json:"status"`
	VerifiedBy    string           `json:"verifiedBy"`
	VerifiedAt    *time.Time       `json:"verifiedAt"`
	RejectReason  string           `json:"rejectReason"`
	AuditFields
}
