package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryStatus is the posting state of a journal entry. Entries are
// append-only once POSTED; corrections are new reversing entries.
type JournalEntryStatus string

const (
	EntryDraft     JournalEntryStatus = "DRAFT"
	EntrySubmitted JournalEntryStatus = "SUBMITTED"
	EntryApproved  JournalEntryStatus = "APPROVED"
	EntryPosted    JournalEntryStatus = "POSTED"
	EntryReversed  JournalEntryStatus = "REVERSED"
)

// SourceTypeReversal links a correcting entry back to the entry it reverses.
const SourceTypeReversal = "reversal"

// JournalEntry is the header of one balanced double-entry posting.
// Invariant: TotalDebit equals TotalCredit, both equal to the sum of the
// corresponding line amounts.
type JournalEntry struct {
	EntryID     string             `json:"entryID"`     // Primary Key (UUID)
	EntryNumber string             `json:"entryNumber"` // Sequential, e.g. JV-2026-000042
	PeriodID    string             `json:"periodID"`    // FK -> accounting_periods
	EntryDate   time.Time          `json:"entryDate"`
	JournalType EventCategory      `json:"journalType"` // Business-event category tag
	SourceType  string             `json:"sourceType"`  // e.g. "invoice_payment"
	SourceID    string             `json:"sourceID"`    // Id of the originating business object
	Description string             `json:"description"`
	Status      JournalEntryStatus `json:"status"`
	TotalDebit  decimal.Decimal    `json:"totalDebit"`
	TotalCredit decimal.Decimal    `json:"totalCredit"`

	// Currency of the source amounts plus the conversion actually applied.
	// ExchangeRate and BaseAmount are stamped at posting time and never
	// recomputed when the rate table changes later.
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"` // 1 when already in base currency
	BaseAmount   decimal.Decimal `json:"baseAmount"`   // IDR equivalent of TotalDebit

	ApprovedBy string     `json:"approvedBy"`
	PostedBy   string     `json:"postedBy"`
	PostedAt   *time.Time `json:"postedAt"`
	Lines      []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is one row of an entry. Exactly one of DebitAmount and
// CreditAmount is non-zero; both are non-negative. AccountID must point at
// an active leaf of the chart of accounts.
type JournalLine struct {
	LineID        string          `json:"lineID"` // Primary Key (UUID)
	EntryID       string          `json:"entryID"`
	AccountID     string          `json:"accountID"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	Description   string          `json:"description"`
	CostCenter    string          `json:"costCenter"`    // Optional
	ReferenceType string          `json:"referenceType"` // Back-reference to the business object
	ReferenceID   string          `json:"referenceID"`
	AuditFields
}

// IsDebit reports which side of the entry the line sits on.
func (l JournalLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}
