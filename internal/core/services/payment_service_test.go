package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tirtatour/travel_billing_app/internal/apperrors"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	portssvc "github.com/tirtatour/travel_billing_app/internal/core/ports/services"
	"github.com/tirtatour/travel_billing_app/internal/core/services"
	"github.com/tirtatour/travel_billing_app/internal/dto"
)

// --- Test Suite Setup ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockProofRepo   *MockPaymentProofRepository
	mockLedger      *MockLedgerPoster
	mockNotifier    *MockEventNotifier
	service         portssvc.PaymentSvcFacade
	verifierID      string
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockProofRepo = new(MockPaymentProofRepository)
	suite.mockLedger = new(MockLedgerPoster)
	suite.mockNotifier = new(MockEventNotifier)
	suite.service = services.NewPaymentService(suite.mockInvoiceRepo, suite.mockProofRepo, suite.mockLedger, suite.mockNotifier)
	suite.verifierID = uuid.NewString()
}

// newTentativeInvoice builds an issued invoice awaiting its down payment.
// 5,500,000 IDR with a 30% DP is the typical tour package shape.
func (suite *PaymentServiceTestSuite) newTentativeInvoice() *domain.Invoice {
	issuedAt := time.Now().UTC().Add(-24 * time.Hour)
	autoCancelAt := issuedAt.Add(96 * time.Hour)
	return &domain.Invoice{
		InvoiceID:       uuid.NewString(),
		InvoiceNumber:   "INV-202608-AB12CD34",
		OrderID:         uuid.NewString(),
		OwnerID:         uuid.NewString(),
		BranchID:        "branch-jakarta",
		CurrencyCode:    "IDR",
		TotalAmount:     decimal.NewFromInt(5500000),
		DPPercent:       decimal.NewFromInt(30),
		DPAmount:        decimal.NewFromInt(1650000),
		PaidAmount:      decimal.Zero,
		RemainingAmount: decimal.NewFromInt(5500000),
		Status:          domain.StatusTentative,
		IssuedAt:        &issuedAt,
		AutoCancelAt:    &autoCancelAt,
	}
}

func (suite *PaymentServiceTestSuite) newPendingProof(invoiceID string, amount int64) *domain.PaymentProof {
	return &domain.PaymentProof{
		ProofID:       uuid.NewString(),
		InvoiceID:     invoiceID,
		Amount:        decimal.NewFromInt(amount),
		CurrencyCode:  "IDR",
		PaymentType:   domain.ProofTypeDP,
		BankReference: "TRF/2026/08/001",
		TransferDate:  time.Now().UTC().Add(-time.Hour),
		UploadedBy:    uuid.NewString(),
		Status:        domain.ProofPending,
	}
}

func (suite *PaymentServiceTestSuite) expectTx() {
	suite.mockInvoiceRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockInvoiceRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
}

// --- SubmitProof ---

func (suite *PaymentServiceTestSuite) TestSubmitProof_Success() {
	ctx := context.Background()
	invoice := suite.newTentativeInvoice()
	uploaderID := uuid.NewString()
	req := dto.SubmitProofRequest{
		Amount:        decimal.NewFromInt(1650000),
		CurrencyCode:  "IDR",
		PaymentType:   "DP",
		BankReference: "TRF/2026/08/001",
		TransferDate:  time.Now().UTC(),
		FileRef:       "proofs/2026/08/slip.jpg",
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockProofRepo.On("SaveProof", ctx, mock.AnythingOfType("domain.PaymentProof")).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, "payment_proof_submitted", uploaderID, mock.Anything).Return().Once()

	proof, err := suite.service.SubmitProof(ctx, invoice.InvoiceID, req, uploaderID)

	suite.Require().NoError(err)
	suite.Require().NotNil(proof)
	suite.Equal(domain.ProofPending, proof.Status)
	suite.Equal(invoice.InvoiceID, proof.InvoiceID)
	suite.Equal(uploaderID, proof.UploadedBy)
	suite.mockProofRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestSubmitProof_DraftInvoiceRejected() {
	ctx := context.Background()
	invoice := suite.newTentativeInvoice()
	invoice.Status = domain.StatusDraft

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	_, err := suite.service.SubmitProof(ctx, invoice.InvoiceID, dto.SubmitProofRequest{
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "IDR",
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockProofRepo.AssertNotCalled(suite.T(), "SaveProof", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestSubmitProof_OrderUpdatedHeld() {
	ctx := context.Background()
	invoice := suite.newTentativeInvoice()
	invoice.Status = domain.StatusOrderUpdated

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	_, err := suite.service.SubmitProof(ctx, invoice.InvoiceID, dto.SubmitProofRequest{
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "IDR",
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *PaymentServiceTestSuite) TestSubmitProof_TerminalInvoiceClosed() {
	ctx := context.Background()
	invoice := suite.newTentativeInvoice()
	invoice.Status = domain.StatusCompleted

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	_, err := suite.service.SubmitProof(ctx, invoice.InvoiceID, dto.SubmitProofRequest{
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "IDR",
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrInvoiceClosed))
}

func (suite *PaymentServiceTestSuite) TestSubmitProof_CurrencyMismatch() {
	ctx := context.Background()
	invoice := suite.newTentativeInvoice()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	_, err := suite.service.SubmitProof(ctx, invoice.InvoiceID, dto.SubmitProofRequest{
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "USD",
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

// --- VerifyPayment ---

func (suite *PaymentServiceTestSuite) TestVerifyPayment_DownPaymentMovesToPartialPaid() {
	ctx := context.Background()
	invoice := suite.newTentativeInvoice()
	proof := suite.newPendingProof(invoice.InvoiceID, 1650000)

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockProofRepo.On("FindProofByIDForUpdate", ctx, mock.Anything, proof.ProofID).Return(proof, nil).Once()
	suite.mockProofRepo.On("UpdateProofInTx", ctx, mock.Anything, mock.MatchedBy(func(p domain.PaymentProof) bool {
		return p.Status == domain.ProofVerified && p.VerifiedBy == suite.verifierID && p.VerifiedAt != nil
	})).Return(nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceInTx", ctx, mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.StatusPartialPaid &&
			inv.PaidAmount.Equal(decimal.NewFromInt(1650000)) &&
			inv.RemainingAmount.Equal(decimal.NewFromInt(3850000))
	})).Return(nil).Once()
	suite.mockLedger.On("PostEventInTx", ctx, mock.Anything, mock.MatchedBy(func(req dto.PostEventRequest) bool {
		return req.Category == domain.CategoryCashReceipt &&
			req.SourceType == services.SourceTypeInvoicePayment &&
			req.SourceID == proof.ProofID &&
			req.Amount.Equal(proof.Amount) &&
			req.CostCenter == invoice.BranchID
	}), suite.verifierID).Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, "payment_verified", suite.verifierID, mock.Anything).Return().Once()

	updated, err := suite.service.VerifyPayment(ctx, invoice.InvoiceID, proof.ProofID, suite.verifierID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal(domain.StatusPartialPaid, updated.Status)
	suite.True(updated.PaidAmount.Add(updated.RemainingAmount).Equal(updated.TotalAmount))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestVerifyPayment_FinalPaymentSettles() {
	ctx := context.Background()
	invoice := suite.newTentativeInvoice()
	invoice.Status = domain.StatusPartialPaid
	invoice.PaidAmount = decimal.NewFromInt(1650000)
	invoice.RemainingAmount = decimal.NewFromInt(3850000)
	proof := suite.newPendingProof(invoice.InvoiceID, 3850000)
	proof.PaymentType = domain.ProofTypeFull

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockProofRepo.On("FindProofByIDForUpdate", ctx, mock.Anything, proof.ProofID).Return(proof, nil).Once()
	suite.mockProofRepo.On("UpdateProofInTx", ctx, mock.Anything, mock.AnythingOfType("domain.PaymentProof")).Return(nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceInTx", ctx, mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.StatusPaid && inv.RemainingAmount.IsZero()
	})).Return(nil).Once()
	suite.mockLedger.On("PostEventInTx", ctx, mock.Anything, mock.AnythingOfType("dto.PostEventRequest"), suite.verifierID).
		Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, "payment_verified", suite.verifierID, mock.Anything).Return().Once()

	updated, err := suite.service.VerifyPayment(ctx, invoice.InvoiceID, proof.ProofID, suite.verifierID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, updated.Status)
	suite.True(updated.PaidAmount.Equal(decimal.NewFromInt(5500000)))
	suite.True(updated.RemainingAmount.IsZero())
}

func (suite *PaymentServiceTestSuite) TestVerifyPayment_OverpaymentDetected() {
	ctx := context.Background()
	invoice := suite.newTentativeInvoice()
	proof := suite.newPendingProof(invoice.InvoiceID, 6000000)

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockProofRepo.On("FindProofByIDForUpdate", ctx, mock.Anything, proof.ProofID).Return(proof, nil).Once()
	suite.mockProofRepo.On("UpdateProofInTx", ctx, mock.Anything, mock.AnythingOfType("domain.PaymentProof")).Return(nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceInTx", ctx, mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.StatusOverpaid &&
			inv.OverpaidExcess.Equal(decimal.NewFromInt(500000)) &&
			inv.RemainingAmount.IsZero()
	})).Return(nil).Once()
	suite.mockLedger.On("PostEventInTx", ctx, mock.Anything, mock.MatchedBy(func(req dto.PostEventRequest) bool {
		// The full received amount is booked; the excess is settled separately.
		return req.Category == domain.CategoryCashReceipt && req.Amount.Equal(decimal.NewFromInt(6000000))
	}), suite.verifierID).Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, "payment_verified", suite.verifierID, mock.Anything).Return().Once()
	suite.mockNotifier.On("Notify", ctx, "overpayment_detected", suite.verifierID, mock.Anything).Return().Once()

	updated, err := suite.service.VerifyPayment(ctx, invoice.InvoiceID, proof.ProofID, suite.verifierID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusOverpaid, updated.Status)
	suite.True(updated.OverpaidExcess.Equal(decimal.NewFromInt(500000)))
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestVerifyPayment_AlreadyVerifiedIsNoOp() {
	ctx := context.Background()
	invoice := suite.newTentativeInvoice()
	invoice.Status = domain.StatusPartialPaid
	invoice.PaidAmount = decimal.NewFromInt(1650000)
	proof := suite.newPendingProof(invoice.InvoiceID, 1650000)
	proof.Status = domain.ProofVerified

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockProofRepo.On("FindProofByIDForUpdate", ctx, mock.Anything, proof.ProofID).Return(proof, nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.VerifyPayment(ctx, invoice.InvoiceID, proof.ProofID, suite.verifierID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPartialPaid, result.Status)
	suite.True(result.PaidAmount.Equal(decimal.NewFromInt(1650000)))
	suite.mockProofRepo.AssertNotCalled(suite.T(), "UpdateProofInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedger.AssertNotCalled(suite.T(), "PostEventInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestVerifyPayment_DuplicatePostingTolerated() {
	ctx := context.Background()
	invoice := suite.newTentativeInvoice()
	proof := suite.newPendingProof(invoice.InvoiceID, 1650000)
	existing := &domain.JournalEntry{EntryID: uuid.NewString(), EntryNumber: "JV-2026-000042"}

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockProofRepo.On("FindProofByIDForUpdate", ctx, mock.Anything, proof.ProofID).Return(proof, nil).Once()
	suite.mockProofRepo.On("UpdateProofInTx", ctx, mock.Anything, mock.AnythingOfType("domain.PaymentProof")).Return(nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()
	suite.mockLedger.On("PostEventInTx", ctx, mock.Anything, mock.AnythingOfType("dto.PostEventRequest"), suite.verifierID).
		Return(existing, apperrors.ErrDuplicatePosting).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, "payment_verified", suite.verifierID, mock.Anything).Return().Once()

	updated, err := suite.service.VerifyPayment(ctx, invoice.InvoiceID, proof.ProofID, suite.verifierID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPartialPaid, updated.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestVerifyPayment_ProofBelongsToOtherInvoice() {
	ctx := context.Background()
	invoice := suite.newTentativeInvoice()
	proof := suite.newPendingProof(uuid.NewString(), 1650000)

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockProofRepo.On("FindProofByIDForUpdate", ctx, mock.Anything, proof.ProofID).Return(proof, nil).Once()

	_, err := suite.service.VerifyPayment(ctx, invoice.InvoiceID, proof.ProofID, suite.verifierID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

// --- RejectProof ---

func (suite *PaymentServiceTestSuite) TestRejectProof_Success() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	proof := suite.newPendingProof(invoiceID, 1650000)

	suite.expectTx()
	suite.mockProofRepo.On("FindProofByIDForUpdate", ctx, mock.Anything, proof.ProofID).Return(proof, nil).Once()
	suite.mockProofRepo.On("UpdateProofInTx", ctx, mock.Anything, mock.MatchedBy(func(p domain.PaymentProof) bool {
		return p.Status == domain.ProofRejected && p.RejectReason == "amount does not match the transfer slip"
	})).Return(nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, "payment_proof_rejected", suite.verifierID, mock.Anything).Return().Once()

	rejected, err := suite.service.RejectProof(ctx, invoiceID, proof.ProofID, dto.RejectProofRequest{
		Reason: "amount does not match the transfer slip",
	}, suite.verifierID)

	suite.Require().NoError(err)
	suite.Equal(domain.ProofRejected, rejected.Status)
}

func (suite *PaymentServiceTestSuite) TestRejectProof_AlreadyProcessedIsNoOp() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	proof := suite.newPendingProof(invoiceID, 1650000)
	proof.Status = domain.ProofRejected

	suite.expectTx()
	suite.mockProofRepo.On("FindProofByIDForUpdate", ctx, mock.Anything, proof.ProofID).Return(proof, nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.RejectProof(ctx, invoiceID, proof.ProofID, dto.RejectProofRequest{Reason: "dup"}, suite.verifierID)

	suite.Require().NoError(err)
	suite.Equal(domain.ProofRejected, result.Status)
	suite.mockProofRepo.AssertNotCalled(suite.T(), "UpdateProofInTx", mock.Anything, mock.Anything, mock.Anything)
}

// --- ResolveOverpayment ---

func (suite *PaymentServiceTestSuite) newOverpaidInvoice() *domain.Invoice {
	invoice := suite.newTentativeInvoice()
	invoice.Status = domain.StatusOverpaid
	invoice.PaidAmount = decimal.NewFromInt(6000000)
	invoice.RemainingAmount = decimal.Zero
	invoice.OverpaidExcess = decimal.NewFromInt(500000)
	return invoice
}

func (suite *PaymentServiceTestSuite) TestResolveOverpayment_Receive() {
	ctx := context.Background()
	invoice := suite.newOverpaidInvoice()
	actorID := uuid.NewString()

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceInTx", ctx, mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.StatusOverpaidReceived
	})).Return(nil).Once()
	suite.mockLedger.On("PostEventInTx", ctx, mock.Anything, mock.MatchedBy(func(req dto.PostEventRequest) bool {
		return req.Category == domain.CategoryOverpaymentReceived &&
			req.SourceType == services.SourceTypeInvoiceOverpayment &&
			req.SourceID == invoice.InvoiceID &&
			req.Amount.Equal(decimal.NewFromInt(500000))
	}), actorID).Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, "overpayment_resolved", actorID, mock.Anything).Return().Once()

	updated, err := suite.service.ResolveOverpayment(ctx, invoice.InvoiceID, dto.ResolveOverpaymentRequest{Resolution: "RECEIVE"}, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusOverpaidReceived, updated.Status)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestResolveOverpayment_TransferRequiresTarget() {
	ctx := context.Background()
	invoice := suite.newOverpaidInvoice()

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(invoice, nil).Once()

	_, err := suite.service.ResolveOverpayment(ctx, invoice.InvoiceID, dto.ResolveOverpaymentRequest{Resolution: "TRANSFER"}, uuid.NewString())

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *PaymentServiceTestSuite) TestResolveOverpayment_TransferStampsCreditTarget() {
	ctx := context.Background()
	invoice := suite.newOverpaidInvoice()
	target := suite.newTentativeInvoice()
	actorID := uuid.NewString()

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, target.InvoiceID).Return(target, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceInTx", ctx, mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.StatusOverpaidTransferred && inv.CreditTargetID == target.InvoiceID
	})).Return(nil).Once()
	suite.mockLedger.On("PostEventInTx", ctx, mock.Anything, mock.MatchedBy(func(req dto.PostEventRequest) bool {
		return req.Category == domain.CategoryOverpaymentTransfer
	}), actorID).Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, "overpayment_resolved", actorID, mock.Anything).Return().Once()

	updated, err := suite.service.ResolveOverpayment(ctx, invoice.InvoiceID, dto.ResolveOverpaymentRequest{
		Resolution:      "TRANSFER",
		TargetInvoiceID: &target.InvoiceID,
	}, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusOverpaidTransferred, updated.Status)
	suite.Equal(target.InvoiceID, updated.CreditTargetID)
}

func (suite *PaymentServiceTestSuite) TestResolveOverpayment_RefundDefersPosting() {
	ctx := context.Background()
	invoice := suite.newOverpaidInvoice()
	actorID := uuid.NewString()
	bankInfo := "BCA 1234567890 a.n. Budi"

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceInTx", ctx, mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.StatusOverpaidRefundPending
	})).Return(nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, "overpayment_resolved", actorID, mock.Anything).Return().Once()

	updated, err := suite.service.ResolveOverpayment(ctx, invoice.InvoiceID, dto.ResolveOverpaymentRequest{
		Resolution:     "REFUND",
		RefundBankInfo: &bankInfo,
	}, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusOverpaidRefundPending, updated.Status)
	// Nothing posts until the refund is confirmed.
	suite.mockLedger.AssertNotCalled(suite.T(), "PostEventInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestResolveOverpayment_AlreadyResolved() {
	ctx := context.Background()
	invoice := suite.newOverpaidInvoice()
	invoice.Status = domain.StatusOverpaidReceived

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(invoice, nil).Once()

	_, err := suite.service.ResolveOverpayment(ctx, invoice.InvoiceID, dto.ResolveOverpaymentRequest{Resolution: "RECEIVE"}, uuid.NewString())

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrAlreadyResolved))
}

// --- Refund settlement ---

func (suite *PaymentServiceTestSuite) TestConfirmRefund_PostsRefundEntry() {
	ctx := context.Background()
	invoice := suite.newOverpaidInvoice()
	invoice.Status = domain.StatusOverpaidRefundPending
	actorID := uuid.NewString()

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceInTx", ctx, mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.StatusRefunded
	})).Return(nil).Once()
	suite.mockLedger.On("PostEventInTx", ctx, mock.Anything, mock.MatchedBy(func(req dto.PostEventRequest) bool {
		return req.Category == domain.CategoryOverpaymentRefund && req.Amount.Equal(decimal.NewFromInt(500000))
	}), actorID).Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, "refund_confirmed", actorID, mock.Anything).Return().Once()

	updated, err := suite.service.ConfirmRefund(ctx, invoice.InvoiceID, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRefunded, updated.Status)
}

func (suite *PaymentServiceTestSuite) TestCancelRefund_KeepsExcessAsIncome() {
	ctx := context.Background()
	invoice := suite.newOverpaidInvoice()
	invoice.Status = domain.StatusOverpaidRefundPending
	actorID := uuid.NewString()

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceInTx", ctx, mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.StatusRefundCanceled
	})).Return(nil).Once()
	suite.mockLedger.On("PostEventInTx", ctx, mock.Anything, mock.MatchedBy(func(req dto.PostEventRequest) bool {
		return req.Category == domain.CategoryOverpaymentReceived
	}), actorID).Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()
	suite.mockInvoiceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("Notify", ctx, "refund_canceled", actorID, mock.Anything).Return().Once()

	updated, err := suite.service.CancelRefund(ctx, invoice.InvoiceID, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRefundCanceled, updated.Status)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestConfirmRefund_WithoutPendingRefund() {
	ctx := context.Background()
	invoice := suite.newOverpaidInvoice()

	suite.expectTx()
	suite.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, mock.Anything, invoice.InvoiceID).Return(invoice, nil).Once()

	_, err := suite.service.ConfirmRefund(ctx, invoice.InvoiceID, uuid.NewString())

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrAlreadyResolved))
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
