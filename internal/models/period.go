package models

import "time"

// FiscalYear is the fiscal_years table row.
type FiscalYear struct {
	FiscalYearID string     `db:"fiscal_year_id"`
	Year         int        `db:"year"`
	StartDate    time.Time  `db:"start_date"`
	EndDate      time.Time  `db:"end_date"`
	IsClosed     bool       `db:"is_closed"`
	ClosedBy     string     `db:"closed_by"`
	ClosedAt     *time.Time `db:"closed_at"`
	AuditFields
}

// AccountingPeriod is the accounting_periods table row.
type AccountingPeriod struct {
	PeriodID     string     `db:"period_id"`
	FiscalYearID string     `db:"fiscal_year_id"`
	Month        int        `db:"month"`
	StartDate    time.Time  `db:"start_date"`
	EndDate      time.Time  `db:"end_date"`
	IsLocked     bool       `db:"is_locked"`
	LockedBy     string     `db:"locked_by"`
	LockedAt     *time.Time `db:"locked_at"`
	AuditFields
}
