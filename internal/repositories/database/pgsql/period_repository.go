package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tirtatour/travel_billing_app/internal/apperrors"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	portsrepo "github.com/tirtatour/travel_billing_app/internal/core/ports/repositories"
	"github.com/tirtatour/travel_billing_app/internal/models"
	"github.com/tirtatour/travel_billing_app/internal/utils/mapping"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for fiscal year and period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPeriodRepository implements portsrepo.PeriodRepositoryFacade
var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const fiscalYearColumns = `
	fiscal_year_id, year, start_date, end_date, is_closed, closed_by, closed_at,
	created_at, created_by, last_updated_at, last_updated_by`

const periodColumns = `
	period_id, fiscal_year_id, month, start_date, end_date, is_locked, locked_by, locked_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanFiscalYear(row rowScanner) (models.FiscalYear, error) {
	var m models.FiscalYear
	err := row.Scan(
		&m.FiscalYearID,
		&m.Year,
		&m.StartDate,
		&m.EndDate,
		&m.IsClosed,
		&m.ClosedBy,
		&m.ClosedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanPeriod(row rowScanner) (models.AccountingPeriod, error) {
	var m models.AccountingPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.FiscalYearID,
		&m.Month,
		&m.StartDate,
		&m.EndDate,
		&m.IsLocked,
		&m.LockedBy,
		&m.LockedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindFiscalYearByID retrieves a fiscal year by its ID.
func (r *PgxPeriodRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE fiscal_year_id = $1;`

	m, err := scanFiscalYear(r.Pool.QueryRow(ctx, query, fiscalYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fiscal year by ID "+fiscalYearID, err)
	}

	fy := mapping.ToDomainFiscalYear(m)
	return &fy, nil
}

// FindFiscalYearByYear retrieves the fiscal year covering the given calendar year.
func (r *PgxPeriodRepository) FindFiscalYearByYear(ctx context.Context, year int) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE year = $1;`

	m, err := scanFiscalYear(r.Pool.QueryRow(ctx, query, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fiscal year", err)
	}

	fy := mapping.ToDomainFiscalYear(m)
	return &fy, nil
}

// ListFiscalYears retrieves all fiscal years, newest first.
func (r *PgxPeriodRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years ORDER BY year DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal years", err)
	}
	defer rows.Close()

	years := []domain.FiscalYear{}
	for rows.Next() {
		m, scanErr := scanFiscalYear(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fiscal year row", scanErr)
		}
		years = append(years, mapping.ToDomainFiscalYear(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fiscal year rows", err)
	}

	return years, nil
}

// FindPeriodByID retrieves an accounting period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE period_id = $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find accounting period by ID "+periodID, err)
	}

	p := mapping.ToDomainAccountingPeriod(m)
	return &p, nil
}

// Periods are half-open [start_date, end_date) intervals, matching
// domain.AccountingPeriod.Contains.
const periodByDatePredicate = ` WHERE start_date <= $1 AND end_date > $1`

// FindPeriodByDate retrieves the accounting period containing the given date.
func (r *PgxPeriodRepository) FindPeriodByDate(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods` + periodByDatePredicate + `;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find accounting period for date", err)
	}

	p := mapping.ToDomainAccountingPeriod(m)
	return &p, nil
}

// FindPeriodByDateInTx is FindPeriodByDate executed within the given
// transaction. The share lock keeps a concurrent period lock from landing
// between the check and the journal insert.
func (r *PgxPeriodRepository) FindPeriodByDateInTx(ctx context.Context, tx pgx.Tx, date time.Time) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods` + periodByDatePredicate + ` FOR SHARE;`

	m, err := scanPeriod(tx.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find accounting period for date", err)
	}

	p := mapping.ToDomainAccountingPeriod(m)
	return &p, nil
}

// ListPeriodsByFiscalYear retrieves the periods of a fiscal year, ordered by month.
func (r *PgxPeriodRepository) ListPeriodsByFiscalYear(ctx context.Context, fiscalYearID string) ([]domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE fiscal_year_id = $1
		ORDER BY month;`

	rows, err := r.Pool.Query(ctx, query, fiscalYearID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounting periods", err)
	}
	defer rows.Close()

	periods := []domain.AccountingPeriod{}
	for rows.Next() {
		m, scanErr := scanPeriod(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan accounting period row", scanErr)
		}
		periods = append(periods, mapping.ToDomainAccountingPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating accounting period rows", err)
	}

	return periods, nil
}

// SaveFiscalYear persists a fiscal year together with its monthly periods in one transaction.
func (r *PgxPeriodRepository) SaveFiscalYear(ctx context.Context, year domain.FiscalYear, periods []domain.AccountingPeriod) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	fy := mapping.ToModelFiscalYear(year)
	yearQuery := `
		INSERT INTO fiscal_years (` + fiscalYearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`

	_, err = tx.Exec(ctx, yearQuery,
		fy.FiscalYearID, fy.Year, fy.StartDate, fy.EndDate, fy.IsClosed, fy.ClosedBy, fy.ClosedAt,
		fy.CreatedAt, fy.CreatedBy, fy.LastUpdatedAt, fy.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "fiscal year already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert fiscal year "+fy.FiscalYearID, err)
	}

	batch := &pgx.Batch{}
	periodQuery := `
		INSERT INTO accounting_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`

	for _, p := range periods {
		mp := mapping.ToModelAccountingPeriod(p)
		batch.Queue(periodQuery,
			mp.PeriodID, mp.FiscalYearID, mp.Month, mp.StartDate, mp.EndDate,
			mp.IsLocked, mp.LockedBy, mp.LockedAt,
			mp.CreatedAt, mp.CreatedBy, mp.LastUpdatedAt, mp.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute period batch for fiscal year "+fy.FiscalYearID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateFiscalYear persists changes to an existing fiscal year.
func (r *PgxPeriodRepository) UpdateFiscalYear(ctx context.Context, year domain.FiscalYear) error {
	fy := mapping.ToModelFiscalYear(year)
	query := `
		UPDATE fiscal_years SET
			is_closed = $2,
			closed_by = $3,
			closed_at = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE fiscal_year_id = $1;`

	tag, err := r.Pool.Exec(ctx, query,
		fy.FiscalYearID, fy.IsClosed, fy.ClosedBy, fy.ClosedAt, fy.LastUpdatedAt, fy.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fiscal year "+fy.FiscalYearID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdatePeriod persists changes to an existing accounting period.
func (r *PgxPeriodRepository) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	p := mapping.ToModelAccountingPeriod(period)
	query := `
		UPDATE accounting_periods SET
			is_locked = $2,
			locked_by = $3,
			locked_at = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE period_id = $1;`

	tag, err := r.Pool.Exec(ctx, query,
		p.PeriodID, p.IsLocked, p.LockedBy, p.LockedAt, p.LastUpdatedAt, p.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update accounting period "+p.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdatePeriodsByFiscalYear applies a lock-state change across every period of a
// fiscal year in one statement.
func (r *PgxPeriodRepository) UpdatePeriodsByFiscalYear(ctx context.Context, fiscalYearID string, locked bool, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE accounting_periods SET
			is_locked = $2,
			locked_by = $3,
			locked_at = $4,
			last_updated_at = $4,
			last_updated_by = $3
		WHERE fiscal_year_id = $1;`

	_, err := r.Pool.Exec(ctx, query, fiscalYearID, locked, updatedBy, updatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update periods for fiscal year "+fiscalYearID, err)
	}
	return nil
}
