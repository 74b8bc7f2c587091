package mapping

import (
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	"github.com/tirtatour/travel_billing_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:      d.EntryID,
		EntryNumber:  d.EntryNumber,
		PeriodID:     d.PeriodID,
		EntryDate:    d.EntryDate,
		JournalType:  string(d.JournalType),
		SourceType:   d.SourceType,
		SourceID:     d.SourceID,
		Description:  d.Description,
		Status:       models.JournalEntryStatus(d.Status),
		TotalDebit:   d.TotalDebit,
		TotalCredit:  d.TotalCredit,
		CurrencyCode: d.CurrencyCode,
		ExchangeRate: d.ExchangeRate,
		BaseAmount:   d.BaseAmount,
		ApprovedBy:   d.ApprovedBy,
		PostedBy:     d.PostedBy,
		PostedAt:     d.PostedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      m.EntryID,
		EntryNumber:  m.EntryNumber,
		PeriodID:     m.PeriodID,
		EntryDate:    m.EntryDate,
		JournalType:  domain.EventCategory(m.JournalType),
		SourceType:   m.SourceType,
		SourceID:     m.SourceID,
		Description:  m.Description,
		Status:       domain.JournalEntryStatus(m.Status),
		TotalDebit:   m.TotalDebit,
		TotalCredit:  m.TotalCredit,
		CurrencyCode: m.CurrencyCode,
		ExchangeRate: m.ExchangeRate,
		BaseAmount:   m.BaseAmount,
		ApprovedBy:   m.ApprovedBy,
		PostedBy:     m.PostedBy,
		PostedAt:     m.PostedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:        d.LineID,
		EntryID:       d.EntryID,
		AccountID:     d.AccountID,
		DebitAmount:   d.DebitAmount,
		CreditAmount:  d.CreditAmount,
		Description:   d.Description,
		CostCenter:    d.CostCenter,
		ReferenceType: d.ReferenceType,
		ReferenceID:   d.ReferenceID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:        m.LineID,
		EntryID:       m.EntryID,
		AccountID:     m.AccountID,
		DebitAmount:   m.DebitAmount,
		CreditAmount:  m.CreditAmount,
		Description:   m.Description,
		CostCenter:    m.CostCenter,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model lines to domain lines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		out[i] = ToDomainJournalLine(m)
	}
	return out
}
