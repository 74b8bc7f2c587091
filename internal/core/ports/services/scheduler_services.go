package services

import (
	"context"

	"github.com/tirtatour/travel_billing_app/internal/dto"
)

// OverdueSchedulerSvc defines the background deadline sweeper
type OverdueSchedulerSvc interface {
	// Start launches the periodic sweep loop. It returns immediately.
	Start(ctx context.Context)

	// Stop halts the sweep loop and waits for an in-flight sweep to finish.
	Stop()

	// SweepOnce runs a single sweep pass, blocking invoices whose auto-cancel
	// deadline passed without a covered down payment.
	SweepOnce(ctx context.Context) (*dto.SweepResult, error)
}
