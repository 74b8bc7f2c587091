package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tirtatour/travel_billing_app/internal/apperrors"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	portsrepo "github.com/tirtatour/travel_billing_app/internal/core/ports/repositories"
	portssvc "github.com/tirtatour/travel_billing_app/internal/core/ports/services"
	"github.com/tirtatour/travel_billing_app/internal/dto"
	"github.com/tirtatour/travel_billing_app/internal/middleware"
)

// periodService manages fiscal years, monthly periods, and the period locks
// the posting engine consults.
type periodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo}
}

// Ensure periodService implements the portssvc.PeriodSvcFacade interface
var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// ListFiscalYears retrieves all fiscal years, newest first.
func (s *periodService) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	return s.periodRepo.ListFiscalYears(ctx)
}

// ListPeriods retrieves the accounting periods of a fiscal year.
func (s *periodService) ListPeriods(ctx context.Context, fiscalYearID string) ([]domain.AccountingPeriod, error) {
	if _, err := s.periodRepo.FindFiscalYearByID(ctx, fiscalYearID); err != nil {
		return nil, err
	}
	return s.periodRepo.ListPeriodsByFiscalYear(ctx, fiscalYearID)
}

// ResolvePeriod returns the open accounting period containing the given date.
func (s *periodService) ResolvePeriod(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByDate(ctx, date)
	return checkResolvedPeriod(period, err, date)
}

// ResolvePeriodInTx returns the open accounting period containing the given
// date, reading through the caller's transaction so the period's lock state is
// pinned until that transaction commits.
func (s *periodService) ResolvePeriodInTx(ctx context.Context, tx pgx.Tx, date time.Time) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByDateInTx(ctx, tx, date)
	return checkResolvedPeriod(period, err, date)
}

func checkResolvedPeriod(period *domain.AccountingPeriod, err error, date time.Time) (*domain.AccountingPeriod, error) {
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("%w: no accounting period covers %s", apperrors.ErrNoOpenPeriod, date.Format("2006-01-02"))
		}
		return nil, err
	}
	if period.IsLocked {
		return nil, fmt.Errorf("%w: period %d-%02d is locked", apperrors.ErrPeriodLocked, date.Year(), period.Month)
	}
	return period, nil
}

// CreateFiscalYear creates a fiscal year with its twelve monthly periods.
func (s *periodService) CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest, creatorID string) (*domain.FiscalYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.periodRepo.FindFiscalYearByYear(ctx, req.Year); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: fiscal year %d already exists", apperrors.ErrDuplicate, req.Year)
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorID,
	}

	year := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		Year:         req.Year,
		StartDate:    time.Date(req.Year, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(req.Year+1, time.January, 1, 0, 0, 0, 0, time.UTC),
		AuditFields:  audit,
	}

	// Half-open [start, end) intervals: each period ends exactly where the
	// next one begins, so a timestamp late on a month's last day still
	// resolves to that month.
	periods := make([]domain.AccountingPeriod, 12)
	for month := 1; month <= 12; month++ {
		start := time.Date(req.Year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		periods[month-1] = domain.AccountingPeriod{
			PeriodID:     uuid.NewString(),
			FiscalYearID: year.FiscalYearID,
			Month:        month,
			StartDate:    start,
			EndDate:      end,
			AuditFields:  audit,
		}
	}

	if err := s.periodRepo.SaveFiscalYear(ctx, year, periods); err != nil {
		logger.Error("Failed to create fiscal year", slog.Int("year", req.Year), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Fiscal year created", slog.Int("year", req.Year), slog.String("fiscal_year_id", year.FiscalYearID))
	return &year, nil
}

// LockPeriod locks a single accounting period against further postings.
// Locking an already-locked period is a no-op.
func (s *periodService) LockPeriod(ctx context.Context, periodID string, actorID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.IsLocked {
		return period, nil
	}

	now := time.Now().UTC()
	period.IsLocked = true
	period.LockedBy = actorID
	period.LockedAt = &now
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorID

	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		return nil, err
	}
	return period, nil
}

// UnlockPeriod reopens a locked accounting period. Periods of a closed fiscal
// year stay locked forever.
func (s *periodService) UnlockPeriod(ctx context.Context, periodID string, actorID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}

	year, err := s.periodRepo.FindFiscalYearByID(ctx, period.FiscalYearID)
	if err != nil {
		return nil, err
	}
	if year.IsClosed {
		return nil, fmt.Errorf("%w: fiscal year %d is closed", apperrors.ErrPeriodLocked, year.Year)
	}

	if !period.IsLocked {
		return period, nil
	}

	now := time.Now().UTC()
	period.IsLocked = false
	period.LockedBy = ""
	period.LockedAt = nil
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorID

	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		return nil, err
	}
	return period, nil
}

// CloseFiscalYear permanently closes a fiscal year and locks all its periods.
func (s *periodService) CloseFiscalYear(ctx context.Context, fiscalYearID string, actorID string) (*domain.FiscalYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	year, err := s.periodRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if year.IsClosed {
		return year, nil
	}

	now := time.Now().UTC()
	year.IsClosed = true
	year.ClosedBy = actorID
	year.ClosedAt = &now
	year.LastUpdatedAt = now
	year.LastUpdatedBy = actorID

	if err := s.periodRepo.UpdateFiscalYear(ctx, *year); err != nil {
		return nil, err
	}
	if err := s.periodRepo.UpdatePeriodsByFiscalYear(ctx, fiscalYearID, true, actorID, now); err != nil {
		return nil, err
	}

	logger.Info("Fiscal year closed", slog.Int("year", year.Year), slog.String("closed_by", actorID))
	return year, nil
}
