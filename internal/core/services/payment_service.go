package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tirtatour/travel_billing_app/internal/apperrors"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	portsrepo "github.com/tirtatour/travel_billing_app/internal/core/ports/repositories"
	portssvc "github.com/tirtatour/travel_billing_app/internal/core/ports/services"
	"github.com/tirtatour/travel_billing_app/internal/dto"
	"github.com/tirtatour/travel_billing_app/internal/middleware"
)

// SourceTypeInvoicePayment keys cash-receipt postings by the proof that
// triggered them, so successive partial payments never collide.
const SourceTypeInvoicePayment = "invoice_payment"

// SourceTypeInvoiceOverpayment keys overpayment resolution postings by the
// invoice; each resolution category posts at most once per invoice.
const SourceTypeInvoiceOverpayment = "invoice_overpayment"

// paymentService handles proof intake, human verification, and overpayment
// resolution. Verification and resolution each run in one transaction that
// locks the invoice row first; the matching ledger posting commits or rolls
// back together with the status change.
type paymentService struct {
	invoiceRepo portsrepo.InvoiceRepositoryWithTx
	proofRepo   portsrepo.PaymentProofRepositoryFacade
	ledgerSvc   portssvc.LedgerPosterSvc
	notifier    portssvc.EventNotifier
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	invoiceRepo portsrepo.InvoiceRepositoryWithTx,
	proofRepo portsrepo.PaymentProofRepositoryFacade,
	ledgerSvc portssvc.LedgerPosterSvc,
	notifier portssvc.EventNotifier,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		invoiceRepo: invoiceRepo,
		proofRepo:   proofRepo,
		ledgerSvc:   ledgerSvc,
		notifier:    notifier,
	}
}

// Ensure paymentService implements the portssvc.PaymentSvcFacade interface
var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// GetProofByID retrieves a payment proof by its ID.
func (s *paymentService) GetProofByID(ctx context.Context, proofID string) (*domain.PaymentProof, error) {
	return s.proofRepo.FindProofByID(ctx, proofID)
}

// ListProofsByInvoice retrieves all payment proofs for an invoice, oldest first.
func (s *paymentService) ListProofsByInvoice(ctx context.Context, invoiceID string) ([]domain.PaymentProof, error) {
	if _, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.proofRepo.ListProofsByInvoice(ctx, invoiceID)
}

// SubmitProof records an uploaded transfer proof against an invoice, pending review.
func (s *paymentService) SubmitProof(ctx context.Context, invoiceID string, req dto.SubmitProofRequest, uploaderID string) (*domain.PaymentProof, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: invoice %s is %s", apperrors.ErrInvoiceClosed, invoice.InvoiceNumber, invoice.Status)
	}
	if invoice.Status == domain.StatusOrderUpdated {
		return nil, fmt.Errorf("%w: invoice amounts must be re-confirmed before new payments", apperrors.ErrValidation)
	}
	if invoice.Status == domain.StatusDraft {
		return nil, fmt.Errorf("%w: invoice has not been issued yet", apperrors.ErrValidation)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: proof amount must be positive", apperrors.ErrValidation)
	}
	if req.CurrencyCode != invoice.CurrencyCode {
		return nil, fmt.Errorf("%w: proof currency %s does not match invoice currency %s", apperrors.ErrValidation, req.CurrencyCode, invoice.CurrencyCode)
	}

	now := time.Now().UTC()
	proof := domain.PaymentProof{
		ProofID:       uuid.NewString(),
		InvoiceID:     invoiceID,
		Amount:        req.Amount,
		CurrencyCode:  req.CurrencyCode,
		PaymentType:   domain.ProofPaymentType(req.PaymentType),
		BankReference: req.BankReference,
		TransferDate:  req.TransferDate,
		FileRef:       req.FileRef,
		UploadedBy:    uploaderID,
		Status:        domain.ProofPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     uploaderID,
			LastUpdatedAt: now,
			LastUpdatedBy: uploaderID,
		},
	}

	if err := s.proofRepo.SaveProof(ctx, proof); err != nil {
		logger.Error("Failed to save payment proof", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment proof submitted", slog.String("invoice_id", invoiceID), slog.String("proof_id", proof.ProofID))
	s.notifier.Notify(ctx, "payment_proof_submitted", uploaderID, map[string]any{
		"invoice_id": invoiceID,
		"proof_id":   proof.ProofID,
		"amount":     proof.Amount.String(),
	})
	return &proof, nil
}

// VerifyPayment accepts a pending proof, applies its amount to the invoice,
// posts the cash-receipt journal entry in the same transaction, and advances
// the invoice status. Verifying a proof that already left PENDING is an
// idempotent no-op returning the invoice as it stands.
func (s *paymentService) VerifyPayment(ctx context.Context, invoiceID string, proofID string, verifierID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	// Invoice lock first; every writer touching this row takes it in the same
	// order, so verification and the overdue sweep serialize cleanly.
	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}

	proof, err := s.proofRepo.FindProofByIDForUpdate(ctx, tx, proofID)
	if err != nil {
		return nil, err
	}
	if proof.InvoiceID != invoiceID {
		return nil, fmt.Errorf("%w: proof %s does not belong to invoice %s", apperrors.ErrValidation, proofID, invoiceID)
	}

	if proof.Status != domain.ProofPending {
		logger.Warn("Proof already processed, verification is a no-op",
			slog.String("proof_id", proofID), slog.String("proof_status", string(proof.Status)))
		if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
			return nil, err
		}
		return invoice, nil
	}

	if invoice.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: invoice %s is %s", apperrors.ErrInvoiceClosed, invoice.InvoiceNumber, invoice.Status)
	}
	if proof.CurrencyCode != invoice.CurrencyCode {
		return nil, fmt.Errorf("%w: proof currency %s does not match invoice currency %s", apperrors.ErrValidation, proof.CurrencyCode, invoice.CurrencyCode)
	}

	now := time.Now().UTC()

	credited := *invoice
	credited.PaidAmount = credited.PaidAmount.Add(proof.Amount)

	event := domain.EventPaymentVerified
	if credited.PaidAmount.GreaterThan(credited.TotalAmount) {
		event = domain.EventOverpaymentDetected
	}

	updated, err := domain.Transition(credited, domain.TransitionInput{
		Event:   event,
		ActorID: verifierID,
		Now:     now,
	})
	if err != nil {
		return nil, err
	}

	verifiedAt := now
	proof.Status = domain.ProofVerified
	proof.VerifiedBy = verifierID
	proof.VerifiedAt = &verifiedAt
	proof.LastUpdatedAt = now
	proof.LastUpdatedBy = verifierID

	if err := s.proofRepo.UpdateProofInTx(ctx, tx, *proof); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.UpdateInvoiceInTx(ctx, tx, updated); err != nil {
		return nil, err
	}

	_, err = s.ledgerSvc.PostEventInTx(ctx, tx, dto.PostEventRequest{
		Category:      domain.CategoryCashReceipt,
		SourceType:    SourceTypeInvoicePayment,
		SourceID:      proof.ProofID,
		Amount:        proof.Amount,
		CurrencyCode:  proof.CurrencyCode,
		EntryDate:     now,
		Description:   "Cash receipt for invoice " + invoice.InvoiceNumber,
		ReferenceType: "invoice",
		ReferenceID:   invoice.InvoiceID,
		CostCenter:    invoice.BranchID,
	}, verifierID)
	if err != nil && !errors.Is(err, apperrors.ErrDuplicatePosting) {
		return nil, err
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Payment verified",
		slog.String("invoice_id", invoiceID),
		slog.String("proof_id", proofID),
		slog.String("status", string(updated.Status)),
		slog.String("paid_amount", updated.PaidAmount.String()))
	s.notifier.Notify(ctx, "payment_verified", verifierID, map[string]any{
		"invoice_id": invoiceID,
		"proof_id":   proofID,
		"status":     string(updated.Status),
		"amount":     proof.Amount.String(),
	})
	if updated.Status == domain.StatusOverpaid {
		s.notifier.Notify(ctx, "overpayment_detected", verifierID, map[string]any{
			"invoice_id": invoiceID,
			"excess":     updated.OverpaidExcess.String(),
		})
	}
	return &updated, nil
}

// RejectProof declines a pending proof without touching the invoice balance.
func (s *paymentService) RejectProof(ctx context.Context, invoiceID string, proofID string, req dto.RejectProofRequest, verifierID string) (*domain.PaymentProof, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	proof, err := s.proofRepo.FindProofByIDForUpdate(ctx, tx, proofID)
	if err != nil {
		return nil, err
	}
	if proof.InvoiceID != invoiceID {
		return nil, fmt.Errorf("%w: proof %s does not belong to invoice %s", apperrors.ErrValidation, proofID, invoiceID)
	}
	if proof.Status != domain.ProofPending {
		logger.Warn("Proof already processed, rejection is a no-op",
			slog.String("proof_id", proofID), slog.String("proof_status", string(proof.Status)))
		if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
			return nil, err
		}
		return proof, nil
	}

	now := time.Now().UTC()
	proof.Status = domain.ProofRejected
	proof.RejectReason = req.Reason
	proof.LastUpdatedAt = now
	proof.LastUpdatedBy = verifierID

	if err := s.proofRepo.UpdateProofInTx(ctx, tx, *proof); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Payment proof rejected", slog.String("invoice_id", invoiceID), slog.String("proof_id", proofID))
	s.notifier.Notify(ctx, "payment_proof_rejected", verifierID, map[string]any{
		"invoice_id": invoiceID,
		"proof_id":   proofID,
		"reason":     req.Reason,
	})
	return proof, nil
}

// ResolveOverpayment applies the chosen resolution to an overpaid invoice.
// All outcomes are mutually exclusive; once the invoice leaves OVERPAID any
// further resolution fails with ErrAlreadyResolved.
func (s *paymentService) ResolveOverpayment(ctx context.Context, invoiceID string, req dto.ResolveOverpaymentRequest, actorID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.StatusOverpaid {
		return nil, fmt.Errorf("%w: invoice %s is %s", apperrors.ErrAlreadyResolved, invoice.InvoiceNumber, invoice.Status)
	}

	now := time.Now().UTC()

	var event domain.InvoiceEvent
	var category domain.EventCategory
	postNow := true
	switch req.Resolution {
	case "TRANSFER":
		if req.TargetInvoiceID == nil || *req.TargetInvoiceID == "" {
			return nil, fmt.Errorf("%w: targetInvoiceID is required for TRANSFER", apperrors.ErrValidation)
		}
		if _, err := s.invoiceRepo.FindInvoiceByID(ctx, *req.TargetInvoiceID); err != nil {
			if apperrors.IsNotFound(err) {
				return nil, fmt.Errorf("%w: target invoice %s not found", apperrors.ErrValidation, *req.TargetInvoiceID)
			}
			return nil, err
		}
		event = domain.EventResolveTransferred
		category = domain.CategoryOverpaymentTransfer
		invoice.CreditTargetID = *req.TargetInvoiceID
	case "RECEIVE":
		event = domain.EventResolveReceived
		category = domain.CategoryOverpaymentReceived
	case "REFUND":
		if req.RefundBankInfo == nil || *req.RefundBankInfo == "" {
			return nil, fmt.Errorf("%w: refundBankInfo is required for REFUND", apperrors.ErrValidation)
		}
		// The refund posting happens on confirmation, when the money leaves the bank.
		event = domain.EventRefundRequested
		postNow = false
	default:
		return nil, fmt.Errorf("%w: unknown resolution %s", apperrors.ErrValidation, req.Resolution)
	}

	updated, err := domain.Transition(*invoice, domain.TransitionInput{
		Event:   event,
		ActorID: actorID,
		Now:     now,
	})
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.UpdateInvoiceInTx(ctx, tx, updated); err != nil {
		return nil, err
	}

	if postNow {
		_, err = s.ledgerSvc.PostEventInTx(ctx, tx, dto.PostEventRequest{
			Category:      category,
			SourceType:    SourceTypeInvoiceOverpayment,
			SourceID:      invoice.InvoiceID,
			Amount:        invoice.OverpaidExcess,
			CurrencyCode:  invoice.CurrencyCode,
			EntryDate:     now,
			Description:   "Overpayment resolution for invoice " + invoice.InvoiceNumber,
			ReferenceType: "invoice",
			ReferenceID:   invoice.InvoiceID,
			CostCenter:    invoice.BranchID,
		}, actorID)
		if err != nil && !errors.Is(err, apperrors.ErrDuplicatePosting) {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Overpayment resolved",
		slog.String("invoice_id", invoiceID),
		slog.String("resolution", req.Resolution),
		slog.String("excess", invoice.OverpaidExcess.String()))
	s.notifier.Notify(ctx, "overpayment_resolved", actorID, map[string]any{
		"invoice_id": invoiceID,
		"resolution": req.Resolution,
		"excess":     invoice.OverpaidExcess.String(),
	})
	return &updated, nil
}

// ConfirmRefund finalizes a pending refund once the money has left the bank,
// posting the refund entry in the same transaction.
func (s *paymentService) ConfirmRefund(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error) {
	return s.settleRefund(ctx, invoiceID, actorID, domain.EventRefundConfirmed, "refund_confirmed")
}

// CancelRefund abandons a pending refund; the excess stays as received income.
func (s *paymentService) CancelRefund(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error) {
	return s.settleRefund(ctx, invoiceID, actorID, domain.EventRefundCanceled, "refund_canceled")
}

func (s *paymentService) settleRefund(ctx context.Context, invoiceID string, actorID string, event domain.InvoiceEvent, notifyEvent string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.StatusOverpaidRefundPending {
		return nil, fmt.Errorf("%w: invoice %s is %s", apperrors.ErrAlreadyResolved, invoice.InvoiceNumber, invoice.Status)
	}

	now := time.Now().UTC()
	updated, err := domain.Transition(*invoice, domain.TransitionInput{
		Event:   event,
		ActorID: actorID,
		Now:     now,
	})
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.UpdateInvoiceInTx(ctx, tx, updated); err != nil {
		return nil, err
	}

	// Confirmed refunds post the outgoing payment; a canceled refund keeps the
	// excess on the books as received income.
	category := domain.CategoryOverpaymentRefund
	if event == domain.EventRefundCanceled {
		category = domain.CategoryOverpaymentReceived
	}
	_, err = s.ledgerSvc.PostEventInTx(ctx, tx, dto.PostEventRequest{
		Category:      category,
		SourceType:    SourceTypeInvoiceOverpayment,
		SourceID:      invoice.InvoiceID,
		Amount:        invoice.OverpaidExcess,
		CurrencyCode:  invoice.CurrencyCode,
		EntryDate:     now,
		Description:   "Overpayment refund settlement for invoice " + invoice.InvoiceNumber,
		ReferenceType: "invoice",
		ReferenceID:   invoice.InvoiceID,
		CostCenter:    invoice.BranchID,
	}, actorID)
	if err != nil && !errors.Is(err, apperrors.ErrDuplicatePosting) {
		return nil, err
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Refund settled", slog.String("invoice_id", invoiceID), slog.String("status", string(updated.Status)))
	s.notifier.Notify(ctx, notifyEvent, actorID, map[string]any{
		"invoice_id": invoiceID,
		"excess":     invoice.OverpaidExcess.String(),
	})
	return &updated, nil
}
