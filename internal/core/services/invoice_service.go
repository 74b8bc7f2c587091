package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
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

// InvoiceDeadlines carries the payment windows stamped at issue time. The
// auto-cancel window also restarts when an operator unblocks an invoice.
type InvoiceDeadlines struct {
	DPDue          time.Duration
	FullPaymentDue time.Duration
	AutoCancel     time.Duration
}

// invoiceService drives the invoice lifecycle. Every state change goes
// through domain.Transition; this service only decides which event to fire
// and stamps the deadline fields the transition table does not own.
type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryWithTx
	deadlines   InvoiceDeadlines
	notifier    portssvc.EventNotifier
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryWithTx,
	deadlines InvoiceDeadlines,
	notifier portssvc.EventNotifier,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		deadlines:   deadlines,
		notifier:    notifier,
	}
}

// Ensure invoiceService implements the portssvc.InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// GetInvoiceByID retrieves a specific invoice by its ID.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

// ListInvoices retrieves a paginated list of invoices.
func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	var status *domain.InvoiceStatus
	if params.Status != nil && *params.Status != "" {
		st := domain.InvoiceStatus(strings.ToUpper(*params.Status))
		status = &st
	}
	invoices, nextToken, err := s.invoiceRepo.ListInvoices(ctx, status, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListInvoicesResponse{
		Invoices:  dto.ToInvoiceResponses(invoices),
		NextToken: nextToken,
	}, nil
}

// CreateInvoice persists a new draft invoice for an order. Order data is read
// once at creation; later order changes go through MarkOrderUpdated.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}
	if req.DPPercent.IsNegative() || req.DPPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: dp percent must be between 0 and 100", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	dpAmount := req.TotalAmount.Mul(req.DPPercent).Div(decimal.NewFromInt(100)).Round(2)
	invoice := domain.Invoice{
		InvoiceID:       uuid.NewString(),
		InvoiceNumber:   newInvoiceNumber(now),
		OrderID:         req.OrderID,
		OwnerID:         req.OwnerID,
		BranchID:        req.BranchID,
		CurrencyCode:    strings.ToUpper(req.CurrencyCode),
		TotalAmount:     req.TotalAmount,
		DPPercent:       req.DPPercent,
		DPAmount:        dpAmount,
		PaidAmount:      decimal.Zero,
		RemainingAmount: req.TotalAmount,
		Status:          domain.StatusDraft,
		OverpaidExcess:  decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to save invoice", slog.String("order_id", req.OrderID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("order_id", req.OrderID))
	s.notifier.Notify(ctx, "invoice_created", creatorID, map[string]any{
		"invoice_id":   invoice.InvoiceID,
		"order_id":     req.OrderID,
		"total_amount": invoice.TotalAmount.String(),
	})
	return &invoice, nil
}

// IssueInvoice moves a draft invoice into the awaiting-payment state and
// stamps its payment deadlines from the configured windows.
func (s *invoiceService) IssueInvoice(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error) {
	return s.applyEvent(ctx, invoiceID, actorID, domain.EventIssue, "invoice_issued", func(inv *domain.Invoice, now time.Time) error {
		issuedAt := now
		dpDueAt := now.Add(s.deadlines.DPDue)
		fullDueAt := now.Add(s.deadlines.FullPaymentDue)
		autoCancelAt := now.Add(s.deadlines.AutoCancel)
		inv.IssuedAt = &issuedAt
		inv.DPDueAt = &dpDueAt
		inv.FullPaymentDueAt = &fullDueAt
		inv.AutoCancelAt = &autoCancelAt
		return nil
	})
}

// CancelInvoice cancels an overdue invoice after operator review.
func (s *invoiceService) CancelInvoice(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error) {
	return s.applyEvent(ctx, invoiceID, actorID, domain.EventCancel, "invoice_canceled", nil)
}

// UnblockInvoice lifts the overdue block after manual review and restarts the
// auto-cancel clock. Only valid while the down payment is still uncovered;
// past the DP stage there is no block to lift.
func (s *invoiceService) UnblockInvoice(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error) {
	return s.applyEvent(ctx, invoiceID, actorID, domain.EventUnblock, "invoice_unblocked", func(inv *domain.Invoice, now time.Time) error {
		if inv.DPCovered() {
			return fmt.Errorf("%w: invoice has progressed past the down-payment stage", apperrors.ErrValidation)
		}
		autoCancelAt := now.Add(s.deadlines.AutoCancel)
		inv.AutoCancelAt = &autoCancelAt
		return nil
	})
}

// MarkOrderUpdated flags an invoice whose underlying order changed after
// issue; further payment processing is held until amounts are re-confirmed.
func (s *invoiceService) MarkOrderUpdated(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error) {
	return s.applyEvent(ctx, invoiceID, actorID, domain.EventOrderUpdated, "invoice_order_updated", nil)
}

// ConfirmOrderUpdate re-issues an invoice flagged by an order change,
// optionally with a revised total. Deadlines are restamped from now.
func (s *invoiceService) ConfirmOrderUpdate(ctx context.Context, invoiceID string, req dto.ConfirmOrderUpdateRequest, actorID string) (*domain.Invoice, error) {
	return s.applyEvent(ctx, invoiceID, actorID, domain.EventIssue, "invoice_reissued", func(inv *domain.Invoice, now time.Time) error {
		if req.NewTotalAmount != nil {
			if req.NewTotalAmount.LessThanOrEqual(decimal.Zero) {
				return fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
			}
			inv.TotalAmount = *req.NewTotalAmount
			inv.DPAmount = inv.TotalAmount.Mul(inv.DPPercent).Div(decimal.NewFromInt(100)).Round(2)
			inv.RemainingAmount = inv.TotalAmount.Sub(inv.PaidAmount)
			if inv.RemainingAmount.IsNegative() {
				inv.RemainingAmount = decimal.Zero
			}
		}
		issuedAt := now
		dpDueAt := now.Add(s.deadlines.DPDue)
		fullDueAt := now.Add(s.deadlines.FullPaymentDue)
		autoCancelAt := now.Add(s.deadlines.AutoCancel)
		inv.IssuedAt = &issuedAt
		inv.DPDueAt = &dpDueAt
		inv.FullPaymentDueAt = &fullDueAt
		inv.AutoCancelAt = &autoCancelAt
		return nil
	})
}

// StartProcessing moves a settled invoice into fulfilment.
func (s *invoiceService) StartProcessing(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error) {
	return s.applyEvent(ctx, invoiceID, actorID, domain.EventStartProcessing, "invoice_processing_started", nil)
}

// CompleteInvoice closes out a fully processed invoice.
func (s *invoiceService) CompleteInvoice(ctx context.Context, invoiceID string, actorID string) (*domain.Invoice, error) {
	return s.applyEvent(ctx, invoiceID, actorID, domain.EventComplete, "invoice_completed", nil)
}

// applyEvent runs one lifecycle event in its own transaction: lock the row,
// apply the transition on the locked state, let mutate adjust fields the
// table does not own, persist, commit, then notify.
func (s *invoiceService) applyEvent(
	ctx context.Context,
	invoiceID string,
	actorID string,
	event domain.InvoiceEvent,
	notifyEvent string,
	mutate func(inv *domain.Invoice, now time.Time) error,
) (*domain.Invoice, error) {
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

	now := time.Now().UTC()
	current := *invoice
	if mutate != nil {
		if err := mutate(&current, now); err != nil {
			return nil, err
		}
	}

	updated, err := domain.Transition(current, domain.TransitionInput{
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
	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Invoice lifecycle event applied",
		slog.String("invoice_id", invoiceID),
		slog.String("event", string(event)),
		slog.String("status", string(updated.Status)))
	s.notifier.Notify(ctx, notifyEvent, actorID, map[string]any{
		"invoice_id": invoiceID,
		"status":     string(updated.Status),
	})
	return &updated, nil
}

// newInvoiceNumber builds a human-readable invoice reference. Uniqueness is
// ultimately guaranteed by the order id constraint, not this string.
func newInvoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("INV-%s-%s", now.Format("200601"), suffix)
}
