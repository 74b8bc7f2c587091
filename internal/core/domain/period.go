package domain

import "time"

// FiscalYear groups exactly 12 contiguous calendar-month accounting
// periods. Closing a year is one-way: every period is locked and IsClosed
// flips, with no reopen operation.
type FiscalYear struct {
	FiscalYearID string     `json:"fiscalYearID"` // Primary Key (UUID)
	Year         int        `json:"year"`      // e.g. 2026
	StartDate    time.Time  `json:"startDate"` // First instant of January 1
	EndDate      time.Time  `json:"endDate"`   // Exclusive, first instant of the next year
	IsClosed     bool       `json:"isClosed"`
	ClosedBy     string     `json:"closedBy"`
	ClosedAt     *time.Time `json:"closedAt"`
	AuditFields
}

// AccountingPeriod is one calendar month of a fiscal year. Period locks are
// independent of each other; an entry date must resolve to an unlocked
// period inside an unclosed year to be postable.
type AccountingPeriod struct {
	PeriodID     string     `json:"periodID"` // Primary Key (UUID)
	FiscalYearID string     `json:"fiscalYearID"`
	Month        int        `json:"month"` // 1..12
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"` // Exclusive, first instant of the next month
	IsLocked     bool       `json:"isLocked"`
	LockedBy     string     `json:"lockedBy"`
	LockedAt     *time.Time `json:"lockedAt"`
	AuditFields
}

// Contains reports whether the timestamp falls inside the half-open
// [StartDate, EndDate) interval. This is the same containment rule the
// period lookup query applies.
func (p AccountingPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && date.Before(p.EndDate)
}
