package dto

import (
	"time"

	"github.com/tirtatour/travel_billing_app/internal/core/domain"
)

// CreateFiscalYearRequest defines the data needed to open a fiscal year.
// The twelve monthly periods are generated alongside it.
type CreateFiscalYearRequest struct {
	Year int `json:"year" binding:"required,min=2000,max=2200"`
}

// FiscalYearResponse defines the data returned for a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID string     `json:"fiscalYearID"`
	Year         int        `json:"year"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	IsClosed     bool       `json:"isClosed"`
	ClosedBy     string     `json:"closedBy,omitempty"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
}

// AccountingPeriodResponse defines the data returned for an accounting period.
type AccountingPeriodResponse struct {
	PeriodID     string     `json:"periodID"`
	FiscalYearID string     `json:"fiscalYearID"`
	Month        int        `json:"month"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	IsLocked     bool       `json:"isLocked"`
	LockedBy     string     `json:"lockedBy,omitempty"`
	LockedAt     *time.Time `json:"lockedAt,omitempty"`
}

// ToFiscalYearResponse converts a domain.FiscalYear to FiscalYearResponse DTO.
func ToFiscalYearResponse(fy *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID: fy.FiscalYearID,
		Year:         fy.Year,
		StartDate:    fy.StartDate,
		EndDate:      fy.EndDate,
		IsClosed:     fy.IsClosed,
		ClosedBy:     fy.ClosedBy,
		ClosedAt:     fy.ClosedAt,
	}
}

// ToFiscalYearResponses converts a slice of domain.FiscalYear to []FiscalYearResponse.
func ToFiscalYearResponses(years []domain.FiscalYear) []FiscalYearResponse {
	responses := make([]FiscalYearResponse, len(years))
	for i, fy := range years {
		responses[i] = ToFiscalYearResponse(&fy)
	}
	return responses
}

// ToAccountingPeriodResponse converts a domain.AccountingPeriod to AccountingPeriodResponse DTO.
func ToAccountingPeriodResponse(p *domain.AccountingPeriod) AccountingPeriodResponse {
	return AccountingPeriodResponse{
		PeriodID:     p.PeriodID,
		FiscalYearID: p.FiscalYearID,
		Month:        p.Month,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		IsLocked:     p.IsLocked,
		LockedBy:     p.LockedBy,
		LockedAt:     p.LockedAt,
	}
}

// ToAccountingPeriodResponses converts a slice of domain.AccountingPeriod to []AccountingPeriodResponse.
func ToAccountingPeriodResponses(periods []domain.AccountingPeriod) []AccountingPeriodResponse {
	responses := make([]AccountingPeriodResponse, len(periods))
	for i, p := range periods {
		responses[i] = ToAccountingPeriodResponse(&p)
	}
	return responses
}
