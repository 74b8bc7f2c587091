package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tirtatour/travel_billing_app/internal/apperrors"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	portsrepo "github.com/tirtatour/travel_billing_app/internal/core/ports/repositories"
	"github.com/tirtatour/travel_billing_app/internal/models"
	"github.com/tirtatour/travel_billing_app/internal/utils/mapping"
	"github.com/tirtatour/travel_billing_app/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const entryColumns = `
	entry_id, entry_number, period_id, entry_date, journal_type, source_type, source_id,
	description, status, total_debit, total_credit, currency_code, exchange_rate,
	base_amount, approved_by, posted_by, posted_at,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `
	line_id, entry_id, account_id, debit_amount, credit_amount, description,
	cost_center, reference_type, reference_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row rowScanner) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.PeriodID,
		&m.EntryDate,
		&m.JournalType,
		&m.SourceType,
		&m.SourceID,
		&m.Description,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.BaseAmount,
		&m.ApprovedBy,
		&m.PostedBy,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row rowScanner) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.Description,
		&m.CostCenter,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindEntryByID retrieves a journal entry by its ID, without lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

func (r *PgxJournalRepository) findEntryBySource(ctx context.Context, q rowQuerier, sourceType string, sourceID string, category domain.EventCategory) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE source_type = $1 AND source_id = $2 AND journal_type = $3;`

	m, err := scanEntry(q.QueryRow(ctx, query, sourceType, sourceID, string(category)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry for source "+sourceType+"/"+sourceID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindEntryBySource retrieves the entry previously posted for the given
// (sourceType, sourceID, category) triple, or nil if none exists.
func (r *PgxJournalRepository) FindEntryBySource(ctx context.Context, sourceType string, sourceID string, category domain.EventCategory) (*domain.JournalEntry, error) {
	return r.findEntryBySource(ctx, r.Pool, sourceType, sourceID, category)
}

// FindEntryBySourceInTx is FindEntryBySource executed within the given transaction.
func (r *PgxJournalRepository) FindEntryBySourceInTx(ctx context.Context, tx pgx.Tx, sourceType string, sourceID string, category domain.EventCategory) (*domain.JournalEntry, error) {
	return r.findEntryBySource(ctx, tx, sourceType, sourceID, category)
}

// ListEntries retrieves a paginated list of journal entries using token-based
// pagination, newest first. (entry_date, created_at) is the stable cursor.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, periodID *string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries WHERE 1=1`
	args := []any{}

	if periodID != nil && *periodID != "" {
		args = append(args, *periodID)
		baseQuery += ` AND period_id = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastEntryDate, lastCreatedAt)
		baseQuery += ` AND (entry_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY entry_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", scanErr)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var newNextToken *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newNextToken = &token
		entries = entries[:limit]
	}

	domainEntries := make([]domain.JournalEntry, len(entries))
	for i, m := range entries {
		domainEntries[i] = mapping.ToDomainJournalEntry(m)
	}
	return domainEntries, newNextToken, nil
}

// FindLinesByEntryID retrieves all lines of a journal entry.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY created_at, line_id;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		m, scanErr := scanLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", scanErr)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}

	return mapping.ToDomainJournalLineSlice(lines), nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY created_at, line_id;`

	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	grouped := make(map[string][]domain.JournalLine)
	for rows.Next() {
		m, scanErr := scanLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", scanErr)
		}
		line := mapping.ToDomainJournalLine(m)
		grouped[line.EntryID] = append(grouped[line.EntryID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}

	return grouped, nil
}

// NextEntryNumber allocates the next sequential entry number for the given year,
// formatted as JV-YYYY-NNNNNN. The sequence never reuses numbers, so gaps from
// rolled-back transactions are expected.
func (r *PgxJournalRepository) NextEntryNumber(ctx context.Context, tx pgx.Tx, year int) (string, error) {
	var seq int64
	if err := tx.QueryRow(ctx, `SELECT nextval('journal_entry_number_seq');`).Scan(&seq); err != nil {
		return "", apperrors.NewAppError(500, "failed to allocate journal entry number", err)
	}
	return fmt.Sprintf("JV-%d-%06d", year, seq), nil
}

// SaveEntryInTx persists a journal entry and its lines within the given transaction.
// The partial unique index on (source_type, source_id, journal_type) backs the
// posting idempotency check; a violation surfaces as ErrDuplicatePosting.
func (r *PgxJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21);`

	_, err := tx.Exec(ctx, entryQuery,
		m.EntryID, m.EntryNumber, m.PeriodID, m.EntryDate, m.JournalType, m.SourceType, m.SourceID,
		m.Description, m.Status, m.TotalDebit, m.TotalCredit, m.CurrencyCode, m.ExchangeRate,
		m.BaseAmount, m.ApprovedBy, m.PostedBy, m.PostedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "entry already posted for source "+m.SourceType+"/"+m.SourceID, apperrors.ErrDuplicatePosting)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`

	for _, line := range lines {
		ml := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			ml.LineID, ml.EntryID, ml.AccountID, ml.DebitAmount, ml.CreditAmount, ml.Description,
			ml.CostCenter, ml.ReferenceType, ml.ReferenceID,
			ml.CreatedAt, ml.CreatedBy, ml.LastUpdatedAt, ml.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for entry "+m.EntryID, err)
	}

	return nil
}

// MarkEntryReversedInTx flips a POSTED entry to REVERSED. The status guard in
// the WHERE clause makes concurrent reversals lose cleanly.
func (r *PgxJournalRepository) MarkEntryReversedInTx(ctx context.Context, tx pgx.Tx, entryID string, actorID string, at time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $4 AND status = $5;`

	tag, err := tx.Exec(ctx, query, string(domain.EntryReversed), at, actorID, entryID, string(domain.EntryPosted))
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark journal entry "+entryID+" reversed", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "journal entry "+entryID+" is not in POSTED status", apperrors.ErrValidation)
	}
	return nil
}
