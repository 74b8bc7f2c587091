package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	portsrepo "github.com/tirtatour/travel_billing_app/internal/core/ports/repositories"
	portssvc "github.com/tirtatour/travel_billing_app/internal/core/ports/services"
	"github.com/tirtatour/travel_billing_app/internal/dto"
	"github.com/tirtatour/travel_billing_app/internal/middleware"
)

// overdueScheduler sweeps invoices whose auto-cancel deadline passed without
// a covered down payment, flipping them to OVERDUE and blocking the order.
// Each candidate gets its own transaction that re-reads the row FOR UPDATE
// and re-checks the predicate, so a concurrent verification wins cleanly.
type overdueScheduler struct {
	invoiceRepo portsrepo.InvoiceRepositoryWithTx
	notifier    portssvc.EventNotifier
	interval    time.Duration
	batchSize   int

	mu      sync.Mutex // single-flight guard for SweepOnce
	stopCh  chan struct{}
	stopped sync.Once
	wg      sync.WaitGroup
}

// NewOverdueScheduler creates a new OverdueScheduler.
func NewOverdueScheduler(
	invoiceRepo portsrepo.InvoiceRepositoryWithTx,
	notifier portssvc.EventNotifier,
	interval time.Duration,
	batchSize int,
) portssvc.OverdueSchedulerSvc {
	return &overdueScheduler{
		invoiceRepo: invoiceRepo,
		notifier:    notifier,
		interval:    interval,
		batchSize:   batchSize,
		stopCh:      make(chan struct{}),
	}
}

// Ensure overdueScheduler implements the portssvc.OverdueSchedulerSvc interface
var _ portssvc.OverdueSchedulerSvc = (*overdueScheduler)(nil)

// Start launches the periodic sweep loop. It returns immediately.
func (s *overdueScheduler) Start(ctx context.Context) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Overdue scheduler started", slog.Duration("interval", s.interval))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := s.SweepOnce(ctx); err != nil {
					logger.Error("Overdue sweep failed", slog.String("error", err.Error()))
				}
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the sweep loop and waits for an in-flight sweep to finish.
func (s *overdueScheduler) Stop() {
	s.stopped.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

// SweepOnce runs a single sweep pass. Per-row failures are logged and
// skipped; they never abort the rest of the batch.
func (s *overdueScheduler) SweepOnce(ctx context.Context) (*dto.SweepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()
	result := &dto.SweepResult{RanAt: now}

	candidates, err := s.invoiceRepo.ListOverdueCandidates(ctx, now, s.batchSize)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		blocked, err := s.blockInvoice(ctx, candidate.InvoiceID, now)
		if err != nil {
			logger.Error("Failed to block overdue invoice",
				slog.String("invoice_id", candidate.InvoiceID),
				slog.String("error", err.Error()))
			result.ErrorCount++
			continue
		}
		if !blocked {
			continue
		}
		result.FlaggedCount++
		s.notifier.Notify(ctx, "invoice_overdue_blocked", domain.SystemActor, map[string]any{
			"invoice_id": candidate.InvoiceID,
		})
	}

	if result.FlaggedCount > 0 || result.ErrorCount > 0 {
		logger.Info("Overdue sweep finished",
			slog.Int("flagged", result.FlaggedCount),
			slog.Int("errors", result.ErrorCount))
	}
	return result, nil
}

// blockInvoice flips one candidate to OVERDUE in its own transaction. The
// candidate predicate is re-checked on the locked row; a payment verified
// between the list query and the lock makes this a silent no-op.
func (s *overdueScheduler) blockInvoice(ctx context.Context, invoiceID string, now time.Time) (bool, error) {
	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return false, err
	}

	if !invoice.Status.IsPrePayment() || invoice.IsBlocked ||
		invoice.AutoCancelAt == nil || invoice.AutoCancelAt.After(now) ||
		invoice.DPCovered() {
		return false, s.invoiceRepo.Commit(ctx, tx)
	}

	updated, err := domain.Transition(*invoice, domain.TransitionInput{
		Event:   domain.EventOverdue,
		ActorID: domain.SystemActor,
		Now:     now,
	})
	if err != nil {
		return false, err
	}

	if err := s.invoiceRepo.UpdateInvoiceInTx(ctx, tx, updated); err != nil {
		return false, err
	}
	return true, s.invoiceRepo.Commit(ctx, tx)
}
