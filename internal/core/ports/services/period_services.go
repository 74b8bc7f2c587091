package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	"github.com/tirtatour/travel_billing_app/internal/dto"
)

// PeriodReaderSvc defines read operations for fiscal years and accounting periods
type PeriodReaderSvc interface {
	// ListFiscalYears retrieves all fiscal years, newest first.
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)

	// ListPeriods retrieves the accounting periods of a fiscal year.
	ListPeriods(ctx context.Context, fiscalYearID string) ([]domain.AccountingPeriod, error)

	// ResolvePeriod returns the open accounting period containing the given date.
	// It fails when no period covers the date or the covering period is locked.
	ResolvePeriod(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error)

	// ResolvePeriodInTx is ResolvePeriod executed within an existing transaction,
	// holding a share lock on the period row until the transaction ends. Posting
	// uses this so the lock check and the journal write commit atomically.
	ResolvePeriodInTx(ctx context.Context, tx pgx.Tx, date time.Time) (*domain.AccountingPeriod, error)
}

// PeriodWriterSvc defines lifecycle operations for fiscal years and accounting periods
type PeriodWriterSvc interface {
	// CreateFiscalYear creates a fiscal year with its twelve monthly periods.
	CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest, creatorID string) (*domain.FiscalYear, error)

	// LockPeriod locks a single accounting period against further postings.
	LockPeriod(ctx context.Context, periodID string, actorID string) (*domain.AccountingPeriod, error)

	// UnlockPeriod reopens a locked accounting period. Periods of a closed fiscal
	// year cannot be reopened.
	UnlockPeriod(ctx context.Context, periodID string, actorID string) (*domain.AccountingPeriod, error)

	// CloseFiscalYear permanently closes a fiscal year and locks all its periods.
	CloseFiscalYear(ctx context.Context, fiscalYearID string, actorID string) (*domain.FiscalYear, error)
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
}
