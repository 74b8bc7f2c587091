package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	"github.com/tirtatour/travel_billing_app/internal/dto"
)

// LedgerReaderSvc defines read operations for posted journal entries
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a journal entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of journal entries.
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// LedgerPosterSvc defines the event-to-journal posting operations
type LedgerPosterSvc interface {
	// PostEvent posts one balanced journal entry for a business event in its own
	// transaction. Posting the same (sourceType, sourceID, category) twice returns
	// the original entry.
	PostEvent(ctx context.Context, req dto.PostEventRequest, actorID string) (*domain.JournalEntry, error)

	// PostEventInTx is PostEvent executed within an already-open transaction, so the
	// caller can commit the posting atomically with its own writes.
	PostEventInTx(ctx context.Context, tx pgx.Tx, req dto.PostEventRequest, actorID string) (*domain.JournalEntry, error)

	// ReverseEntry posts a correcting entry with every line's sides swapped and
	// marks the original REVERSED. Reversing an already-reversed entry returns
	// the existing reversal.
	ReverseEntry(ctx context.Context, entryID string, reason string, actorID string) (*domain.JournalEntry, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerPosterSvc
}
