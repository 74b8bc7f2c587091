package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tirtatour/travel_billing_app/internal/core/domain"
)

// PeriodReader defines read operations for fiscal year and accounting period data
type PeriodReader interface {
	// FindFiscalYearByID retrieves a fiscal year by its unique identifier.
	FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// FindFiscalYearByYear retrieves the fiscal year covering the given calendar year.
	FindFiscalYearByYear(ctx context.Context, year int) (*domain.FiscalYear, error)

	// ListFiscalYears retrieves all fiscal years, newest first.
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)

	// FindPeriodByID retrieves an accounting period by its unique identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)

	// FindPeriodByDate retrieves the accounting period containing the given date.
	FindPeriodByDate(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error)

	// FindPeriodByDateInTx retrieves the accounting period containing the given
	// date within an existing transaction, share-locking the period row so its
	// lock state cannot change before the transaction commits.
	FindPeriodByDateInTx(ctx context.Context, tx pgx.Tx, date time.Time) (*domain.AccountingPeriod, error)

	// ListPeriodsByFiscalYear retrieves the periods of a fiscal year, ordered by month.
	ListPeriodsByFiscalYear(ctx context.Context, fiscalYearID string) ([]domain.AccountingPeriod, error)
}

// PeriodWriter defines write operations for fiscal year and accounting period data
type PeriodWriter interface {
	// SaveFiscalYear persists a fiscal year together with its monthly periods.
	SaveFiscalYear(ctx context.Context, year domain.FiscalYear, periods []domain.AccountingPeriod) error

	// UpdateFiscalYear persists changes to an existing fiscal year.
	UpdateFiscalYear(ctx context.Context, year domain.FiscalYear) error

	// UpdatePeriod persists changes to an existing accounting period.
	UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error

	// UpdatePeriodsByFiscalYear persists a lock-state change across every period
	// of a fiscal year in one statement.
	UpdatePeriodsByFiscalYear(ctx context.Context, fiscalYearID string, locked bool, updatedBy string, updatedAt time.Time) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
