package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
)

// PostingLineInput is one explicit journal line in a posting request. Exactly
// one of DebitAmount and CreditAmount must be positive.
type PostingLineInput struct {
	AccountID    string          `json:"accountID" binding:"required"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
}

// PostEventRequest describes one business event to be turned into a balanced
// journal entry. With no explicit Lines the engine builds the default
// two-line entry from the account mapping table. The (SourceType, SourceID,
// Category) triple is the idempotency key for the posting.
type PostEventRequest struct {
	Category      domain.EventCategory `json:"category" binding:"required"`
	SourceType    string               `json:"sourceType" binding:"required"`
	SourceID      string               `json:"sourceID" binding:"required"`
	Amount        decimal.Decimal      `json:"amount" binding:"required,dgt0"`
	CurrencyCode  string               `json:"currencyCode" binding:"required,len=3"`
	EntryDate     time.Time            `json:"entryDate" binding:"required"`
	Description   string               `json:"description"`
	ReferenceType string               `json:"referenceType"`
	ReferenceID   string               `json:"referenceID"`
	CostCenter    string               `json:"costCenter"`      // Branch attribution, optional
	Lines         []PostingLineInput   `json:"lines,omitempty"` // Optional explicit lines, e.g. multi-line payroll
}

// ReverseEntryRequest defines the payload for reversing a posted entry.
type ReverseEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// JournalLineResponse defines the data returned for one journal line.
type JournalLineResponse struct {
	LineID        string          `json:"lineID"`
	AccountID     string          `json:"accountID"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	Description   string          `json:"description,omitempty"`
	CostCenter    string          `json:"costCenter,omitempty"`
	ReferenceType string          `json:"referenceType,omitempty"`
	ReferenceID   string          `json:"referenceID,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID      string                `json:"entryID"`
	EntryNumber  string                `json:"entryNumber"`
	PeriodID     string                `json:"periodID"`
	EntryDate    time.Time             `json:"entryDate"`
	JournalType  string                `json:"journalType"`
	SourceType   string                `json:"sourceType"`
	SourceID     string                `json:"sourceID"`
	Description  string                `json:"description"`
	Status       string                `json:"status"`
	TotalDebit   decimal.Decimal       `json:"totalDebit"`
	TotalCredit  decimal.Decimal       `json:"totalCredit"`
	CurrencyCode string                `json:"currencyCode"`
	ExchangeRate decimal.Decimal       `json:"exchangeRate"`
	BaseAmount   decimal.Decimal       `json:"baseAmount"`
	PostedBy     string                `json:"postedBy"`
	PostedAt     *time.Time            `json:"postedAt,omitempty"`
	Lines        []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	PeriodID  *string `form:"periodID"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse wraps a page of journal entries with the token for
// the next page.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to JournalLineResponse DTO.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:        l.LineID,
		AccountID:     l.AccountID,
		DebitAmount:   l.DebitAmount,
		CreditAmount:  l.CreditAmount,
		Description:   l.Description,
		CostCenter:    l.CostCenter,
		ReferenceType: l.ReferenceType,
		ReferenceID:   l.ReferenceID,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = ToJournalLineResponse(&l)
	}
	return JournalEntryResponse{
		EntryID:      e.EntryID,
		EntryNumber:  e.EntryNumber,
		PeriodID:     e.PeriodID,
		EntryDate:    e.EntryDate,
		JournalType:  string(e.JournalType),
		SourceType:   e.SourceType,
		SourceID:     e.SourceID,
		Description:  e.Description,
		Status:       string(e.Status),
		TotalDebit:   e.TotalDebit,
		TotalCredit:  e.TotalCredit,
		CurrencyCode: e.CurrencyCode,
		ExchangeRate: e.ExchangeRate,
		BaseAmount:   e.BaseAmount,
		PostedBy:     e.PostedBy,
		PostedAt:     e.PostedAt,
		Lines:        lines,
		CreatedAt:    e.CreatedAt,
	}
}

// ToJournalEntryResponses converts a slice of domain.JournalEntry to []JournalEntryResponse.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToJournalEntryResponse(&e)
	}
	return responses
}
