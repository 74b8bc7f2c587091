package mapping

import (
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	"github.com/tirtatour/travel_billing_app/internal/models"
)

// ToDomainFiscalYear converts a model FiscalYear to a domain FiscalYear
func ToDomainFiscalYear(m models.FiscalYear) domain.FiscalYear {
	return domain.FiscalYear{
		FiscalYearID: m.FiscalYearID,
		Year:         m.Year,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		IsClosed:     m.IsClosed,
		ClosedBy:     m.ClosedBy,
		ClosedAt:     m.ClosedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelFiscalYear converts a domain FiscalYear to a model FiscalYear
func ToModelFiscalYear(d domain.FiscalYear) models.FiscalYear {
	return models.FiscalYear{
		FiscalYearID: d.FiscalYearID,
		Year:         d.Year,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		IsClosed:     d.IsClosed,
		ClosedBy:     d.ClosedBy,
		ClosedAt:     d.ClosedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountingPeriod converts a model AccountingPeriod to a domain AccountingPeriod
func ToDomainAccountingPeriod(m models.AccountingPeriod) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:     m.PeriodID,
		FiscalYearID: m.FiscalYearID,
		Month:        m.Month,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		IsLocked:     m.IsLocked,
		LockedBy:     m.LockedBy,
		LockedAt:     m.LockedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAccountingPeriod converts a domain AccountingPeriod to a model AccountingPeriod
func ToModelAccountingPeriod(d domain.AccountingPeriod) models.AccountingPeriod {
	return models.AccountingPeriod{
		PeriodID:     d.PeriodID,
		FiscalYearID: d.FiscalYearID,
		Month:        d.Month,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		IsLocked:     d.IsLocked,
		LockedBy:     d.LockedBy,
		LockedAt:     d.LockedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}
