package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entry data
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryBySource retrieves the entry previously posted for the given
	// (sourceType, sourceID, category) triple, or nil if none exists.
	FindEntryBySource(ctx context.Context, sourceType string, sourceID string, category domain.EventCategory) (*domain.JournalEntry, error)

	// FindEntryBySourceInTx is FindEntryBySource executed within the given transaction,
	// so the uniqueness check and the insert share one snapshot.
	FindEntryBySourceInTx(ctx context.Context, tx pgx.Tx, sourceType string, sourceID string, category domain.EventCategory) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of journal entries using token-based
	// pagination, optionally filtered by period. Newest entries come first.
	ListEntries(ctx context.Context, periodID *string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// FindLinesByEntryID retrieves all lines of a journal entry, ordered by creation.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)
}

// JournalEntryWriter defines write operations for journal entry data
type JournalEntryWriter interface {
	// NextEntryNumber allocates the next sequential entry number for the given year,
	// formatted as JV-YYYY-NNNNNN.
	NextEntryNumber(ctx context.Context, tx pgx.Tx, year int) (string, error)

	// SaveEntryInTx persists a journal entry and its lines within the given transaction.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error

	// MarkEntryReversedInTx flips a POSTED entry to REVERSED within the given
	// transaction. The entry itself is never modified beyond the status flip.
	MarkEntryReversedInTx(ctx context.Context, tx pgx.Tx, entryID string, actorID string, at time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
