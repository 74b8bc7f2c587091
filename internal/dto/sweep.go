package dto

import "time"

// SweepResult summarizes one pass of the overdue sweeper.
type SweepResult struct {
	RanAt        time.Time `json:"ranAt"`
	FlaggedCount int       `json:"flaggedCount"` // Invoices newly marked overdue and blocked
	ErrorCount   int       `json:"errorCount"`   // Rows skipped after a per-row failure
}
