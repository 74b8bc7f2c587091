package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryStatus mirrors domain.JournalEntryStatus for persistence.
type JournalEntryStatus string

// JournalEntry is the journal_entries table row.
type JournalEntry struct {
	EntryID     string             `db:"entry_id"`
	EntryNumber string             `db:"entry_number"`
	PeriodID    string             `db:"period_id"`
	EntryDate   time.Time          `db:"entry_date"`
	JournalType string             `db:"journal_type"`
	SourceType  string             `db:"source_type"`
	SourceID    string             `db:"source_id"`
	Description string             `db:"description"`
	Status      JournalEntryStatus `db:"status"`
	TotalDebit  decimal.Decimal    `db:"total_debit"`
	TotalCredit decimal.Decimal    `db:"total_credit"`

	CurrencyCode string          `db:"currency_code"`
	ExchangeRate decimal.Decimal `db:"exchange_rate"`
	BaseAmount   decimal.Decimal `db:"base_amount"`

	ApprovedBy string     `db:"approved_by"`
	PostedBy   string     `db:"posted_by"`
	PostedAt   *time.Time `db:"posted_at"`
	AuditFields
}

// JournalLine is the journal_lines table row.
type JournalLine struct {
	LineID        string          `db:"line_id"`
	EntryID       string          `db:"entry_id"`
	AccountID     string          `db:"account_id"`
	DebitAmount   decimal.Decimal `db:"debit_amount"`
	CreditAmount  decimal.Decimal `db:"credit_amount"`
	Description   string          `db:"description"`
	CostCenter    string          `db:"cost_center"`
	ReferenceType string          `db:"reference_type"`
	ReferenceID   string          `db:"reference_id"`
	AuditFields
}
