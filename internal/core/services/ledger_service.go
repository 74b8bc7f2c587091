package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tirtatour/travel_billing_app/internal/apperrors"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	portsrepo "github.com/tirtatour/travel_billing_app/internal/core/ports/repositories"
	portssvc "github.com/tirtatour/travel_billing_app/internal/core/ports/services"
	"github.com/tirtatour/travel_billing_app/internal/dto"
	"github.com/tirtatour/travel_billing_app/internal/middleware"
	"github.com/tirtatour/travel_billing_app/internal/utils/accounting"
)

// ledgerService turns business events into balanced journal entries via the
// account mapping table. It owns idempotency, period resolution, and the
// currency conversion stamp.
type ledgerService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	mappingRepo portsrepo.AccountMappingRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	periodSvc   portssvc.PeriodReaderSvc
	rates       domain.RateTable
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	mappingRepo portsrepo.AccountMappingRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	periodSvc portssvc.PeriodReaderSvc,
	rates domain.RateTable,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		journalRepo: journalRepo,
		mappingRepo: mappingRepo,
		accountRepo: accountRepo,
		periodSvc:   periodSvc,
		rates:       rates,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetEntryByID retrieves a journal entry with its lines.
func (s *ledgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of journal entries with their lines.
func (s *ledgerService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	entries, nextToken, err := s.journalRepo.ListEntries(ctx, params.PeriodID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	entryIDs := make([]string, len(entries))
	for i, e := range entries {
		entryIDs[i] = e.EntryID
	}
	linesByEntry, err := s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}

	return &dto.ListJournalEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// buildLines assembles the journal lines for a posting: the caller's explicit
// lines when given, otherwise the default two-line entry from the mapping table.
func (s *ledgerService) buildLines(ctx context.Context, req dto.PostEventRequest, entryID string, baseAmount decimal.Decimal, audit domain.AuditFields) ([]domain.JournalLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) > 0 {
		lines := make([]domain.JournalLine, len(req.Lines))
		for i, in := range req.Lines {
			description := in.Description
			if description == "" {
				description = req.Description
			}
			lines[i] = domain.JournalLine{
				LineID:        uuid.NewString(),
				EntryID:       entryID,
				AccountID:     in.AccountID,
				DebitAmount:   in.DebitAmount,
				CreditAmount:  in.CreditAmount,
				Description:   description,
				CostCenter:    req.CostCenter,
				ReferenceType: req.ReferenceType,
				ReferenceID:   req.ReferenceID,
				AuditFields:   audit,
			}
		}
		return lines, nil
	}

	accountMapping, err := s.mappingRepo.FindMappingByCategory(ctx, req.Category)
	if err != nil {
		if apperrors.IsNotFound(err) {
			logger.Error("No account mapping configured for event category", slog.String("category", string(req.Category)))
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnmappedCategory, req.Category)
		}
		return nil, err
	}

	return []domain.JournalLine{
		{
			LineID:        uuid.NewString(),
			EntryID:       entryID,
			AccountID:     accountMapping.DebitAccountID,
			DebitAmount:   baseAmount,
			CreditAmount:  decimal.Zero,
			Description:   req.Description,
			CostCenter:    req.CostCenter,
			ReferenceType: req.ReferenceType,
			ReferenceID:   req.ReferenceID,
			AuditFields:   audit,
		},
		{
			LineID:        uuid.NewString(),
			EntryID:       entryID,
			AccountID:     accountMapping.CreditAccountID,
			DebitAmount:   decimal.Zero,
			CreditAmount:  baseAmount,
			Description:   req.Description,
			CostCenter:    req.CostCenter,
			ReferenceType: req.ReferenceType,
			ReferenceID:   req.ReferenceID,
			AuditFields:   audit,
		},
	}, nil
}

// PostEvent posts one balanced journal entry for a business event in its own
// transaction.
func (s *ledgerService) PostEvent(ctx context.Context, req dto.PostEventRequest, actorID string) (*domain.JournalEntry, error) {
	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.journalRepo.Rollback(ctx, tx)

	entry, err := s.PostEventInTx(ctx, tx, req, actorID)
	if err != nil {
		// A duplicate wrote nothing; surface the existing entry with the sentinel.
		if errors.Is(err, apperrors.ErrDuplicatePosting) {
			return entry, err
		}
		return nil, err
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entry, nil
}

// PostEventInTx posts one balanced journal entry within an already-open
// transaction. Posting the same (sourceType, sourceID, category) twice returns
// the original entry without writing anything.
func (s *ledgerService) PostEventInTx(ctx context.Context, tx pgx.Tx, req dto.PostEventRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: posting amount must be positive", apperrors.ErrValidation)
	}

	// Idempotency check inside the same snapshot as the insert.
	existing, err := s.journalRepo.FindEntryBySourceInTx(ctx, tx, req.SourceType, req.SourceID, req.Category)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Warn("Duplicate posting skipped, returning original entry",
			slog.String("source_type", req.SourceType),
			slog.String("source_id", req.SourceID),
			slog.String("category", string(req.Category)),
			slog.String("entry_number", existing.EntryNumber))
		return existing, fmt.Errorf("%w: %s", apperrors.ErrDuplicatePosting, existing.EntryNumber)
	}

	// The period lock check shares the posting transaction, so a lock taken
	// concurrently either blocks this posting or happens after it commits.
	period, err := s.periodSvc.ResolvePeriodInTx(ctx, tx, req.EntryDate)
	if err != nil {
		return nil, err
	}

	baseAmount, rate, err := s.rates.Convert(req.Amount, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	entryNumber, err := s.journalRepo.NextEntryNumber(ctx, tx, req.EntryDate.Year())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	lines, err := s.buildLines(ctx, req, entryID, baseAmount, audit)
	if err != nil {
		return nil, err
	}

	accountIDs := make([]string, len(lines))
	for i, line := range lines {
		accountIDs[i] = line.AccountID
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	if err := accounting.ValidateLineAccounts(lines, accounts); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := accounting.ValidateEntryLines(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	totalDebit, totalCredit := accounting.SumLines(lines)
	postedAt := now
	entry := domain.JournalEntry{
		EntryID:      entryID,
		EntryNumber:  entryNumber,
		PeriodID:     period.PeriodID,
		EntryDate:    req.EntryDate,
		JournalType:  req.Category,
		SourceType:   req.SourceType,
		SourceID:     req.SourceID,
		Description:  req.Description,
		Status:       domain.EntryPosted,
		TotalDebit:   totalDebit,
		TotalCredit:  totalCredit,
		CurrencyCode: req.CurrencyCode,
		ExchangeRate: rate,
		BaseAmount:   baseAmount,
		PostedBy:     actorID,
		PostedAt:     &postedAt,
		Lines:        lines,
		AuditFields:  audit,
	}

	if err := s.journalRepo.SaveEntryInTx(ctx, tx, entry, lines); err != nil {
		return nil, err
	}

	logger.Info("Journal entry posted",
		slog.String("entry_number", entryNumber),
		slog.String("category", string(req.Category)),
		slog.String("source_id", req.SourceID),
		slog.String("base_amount", baseAmount.String()))
	return &entry, nil
}

// ReverseEntry posts a correcting entry with every line's debit and credit
// swapped, marks the original REVERSED and links the two through the reversal
// source. The reversal is dated now, so it lands in the currently open period
// even when the original's period has since been locked.
func (s *ledgerService) ReverseEntry(ctx context.Context, entryID string, reason string, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original.SourceType == domain.SourceTypeReversal {
		return nil, fmt.Errorf("%w: a reversal cannot be reversed, post a new entry instead", apperrors.ErrValidation)
	}
	if original.Status != domain.EntryPosted {
		return nil, fmt.Errorf("%w: only POSTED entries can be reversed", apperrors.ErrValidation)
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.journalRepo.Rollback(ctx, tx)

	existing, err := s.journalRepo.FindEntryBySourceInTx(ctx, tx, domain.SourceTypeReversal, entryID, original.JournalType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Warn("Entry already reversed, returning existing reversal",
			slog.String("entry_number", original.EntryNumber),
			slog.String("reversal_number", existing.EntryNumber))
		return existing, fmt.Errorf("%w: %s", apperrors.ErrDuplicatePosting, existing.EntryNumber)
	}

	now := time.Now().UTC()
	period, err := s.periodSvc.ResolvePeriodInTx(ctx, tx, now)
	if err != nil {
		return nil, err
	}

	entryNumber, err := s.journalRepo.NextEntryNumber(ctx, tx, now.Year())
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, reason)
	newEntryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	lines := make([]domain.JournalLine, len(originalLines))
	for i, l := range originalLines {
		lines[i] = domain.JournalLine{
			LineID:        uuid.NewString(),
			EntryID:       newEntryID,
			AccountID:     l.AccountID,
			DebitAmount:   l.CreditAmount,
			CreditAmount:  l.DebitAmount,
			Description:   description,
			CostCenter:    l.CostCenter,
			ReferenceType: l.ReferenceType,
			ReferenceID:   l.ReferenceID,
			AuditFields:   audit,
		}
	}

	postedAt := now
	entry := domain.JournalEntry{
		EntryID:     newEntryID,
		EntryNumber: entryNumber,
		PeriodID:    period.PeriodID,
		EntryDate:   now,
		JournalType: original.JournalType,
		SourceType:  domain.SourceTypeReversal,
		SourceID:    original.EntryID,
		Description: description,
		Status:      domain.EntryPosted,
		TotalDebit:  original.TotalCredit,
		TotalCredit: original.TotalDebit,

		// Conversion stamps carry over unchanged so the reversal cancels the
		// exact base amount the original booked.
		CurrencyCode: original.CurrencyCode,
		ExchangeRate: original.ExchangeRate,
		BaseAmount:   original.BaseAmount,

		PostedBy:    actorID,
		PostedAt:    &postedAt,
		Lines:       lines,
		AuditFields: audit,
	}

	if err := s.journalRepo.SaveEntryInTx(ctx, tx, entry, lines); err != nil {
		return nil, err
	}
	if err := s.journalRepo.MarkEntryReversedInTx(ctx, tx, original.EntryID, actorID, now); err != nil {
		return nil, err
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Journal entry reversed",
		slog.String("entry_number", original.EntryNumber),
		slog.String("reversal_number", entryNumber),
		slog.String("reason", reason))
	return &entry, nil
}
