package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tirtatour/travel_billing_app/internal/apperrors"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	portssvc "github.com/tirtatour/travel_billing_app/internal/core/ports/services"
	"github.com/tirtatour/travel_billing_app/internal/core/services"
	"github.com/tirtatour/travel_billing_app/internal/dto"
	"github.com/tirtatour/travel_billing_app/internal/utils/accounting"
)

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockMappingRepo *MockAccountMappingRepository
	mockAccountRepo *MockAccountRepository
	mockPeriodSvc   *MockPeriodReader
	service         portssvc.LedgerSvcFacade

	cashAccount       domain.ChartOfAccount
	receivableAccount domain.ChartOfAccount
	salaryAccount     domain.ChartOfAccount
	openPeriod        domain.AccountingPeriod
	actorID           string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockMappingRepo = new(MockAccountMappingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPeriodSvc = new(MockPeriodReader)

	rates := domain.RateTable{
		BaseCurrency: "IDR",
		Rates: map[string]decimal.Decimal{
			"IDR": decimal.NewFromInt(1),
			"USD": decimal.NewFromInt(16000),
		},
	}
	suite.service = services.NewLedgerService(suite.mockJournalRepo, suite.mockMappingRepo, suite.mockAccountRepo, suite.mockPeriodSvc, rates)

	suite.actorID = uuid.NewString()
	suite.cashAccount = domain.ChartOfAccount{
		AccountID:    uuid.NewString(),
		Code:         "1100",
		Name:         "Cash and Bank",
		AccountType:  domain.Asset,
		CurrencyCode: "IDR",
		IsActive:     true,
	}
	suite.receivableAccount = domain.ChartOfAccount{
		AccountID:    uuid.NewString(),
		Code:         "1200",
		Name:         "Accounts Receivable",
		AccountType:  domain.Asset,
		CurrencyCode: "IDR",
		IsActive:     true,
	}
	suite.salaryAccount = domain.ChartOfAccount{
		AccountID:    uuid.NewString(),
		Code:         "5100",
		Name:         "Salaries and Wages",
		AccountType:  domain.Expense,
		CurrencyCode: "IDR",
		IsActive:     true,
	}
	suite.openPeriod = domain.AccountingPeriod{
		PeriodID:     uuid.NewString(),
		FiscalYearID: uuid.NewString(),
		Month:        8,
		StartDate:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *LedgerServiceTestSuite) cashReceiptRequest() dto.PostEventRequest {
	return dto.PostEventRequest{
		Category:      domain.CategoryCashReceipt,
		SourceType:    services.SourceTypeInvoicePayment,
		SourceID:      uuid.NewString(),
		Amount:        decimal.NewFromInt(1650000),
		CurrencyCode:  "IDR",
		EntryDate:     time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		Description:   "Cash receipt for invoice INV-202608-AB12CD34",
		ReferenceType: "invoice",
		ReferenceID:   uuid.NewString(),
		CostCenter:    "branch-jakarta",
	}
}

func (suite *LedgerServiceTestSuite) cashReceiptMapping() *domain.AccountMapping {
	return &domain.AccountMapping{
		MappingID:       uuid.NewString(),
		Category:        domain.CategoryCashReceipt,
		DebitAccountID:  suite.cashAccount.AccountID,
		CreditAccountID: suite.receivableAccount.AccountID,
	}
}

func (suite *LedgerServiceTestSuite) TestPostEventInTx_BalancedTwoLineEntry() {
	ctx := context.Background()
	req := suite.cashReceiptRequest()

	suite.mockJournalRepo.On("FindEntryBySourceInTx", ctx, mock.Anything, req.SourceType, req.SourceID, req.Category).
		Return(nil, nil).Once()
	suite.mockPeriodSvc.On("ResolvePeriodInTx", ctx, mock.Anything, req.EntryDate).Return(&suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx, mock.Anything, 2026).Return("JV-2026-000001", nil).Once()
	suite.mockMappingRepo.On("FindMappingByCategory", ctx, domain.CategoryCashReceipt).
		Return(suite.cashReceiptMapping(), nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.cashAccount.AccountID, suite.receivableAccount.AccountID}).
		Return(map[string]domain.ChartOfAccount{
			suite.cashAccount.AccountID:       suite.cashAccount,
			suite.receivableAccount.AccountID: suite.receivableAccount,
		}, nil).Once()
	suite.mockJournalRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.EntryNumber == "JV-2026-000001" &&
			e.PeriodID == suite.openPeriod.PeriodID &&
			e.Status == domain.EntryPosted &&
			e.TotalDebit.Equal(e.TotalCredit) &&
			e.TotalDebit.Equal(decimal.NewFromInt(1650000))
	}), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.PostEventInTx(ctx, nil, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Require().Len(entry.Lines, 2)
	suite.Equal(suite.cashAccount.AccountID, entry.Lines[0].AccountID)
	suite.True(entry.Lines[0].DebitAmount.Equal(decimal.NewFromInt(1650000)))
	suite.Equal(suite.receivableAccount.AccountID, entry.Lines[1].AccountID)
	suite.True(entry.Lines[1].CreditAmount.Equal(decimal.NewFromInt(1650000)))

	totalDebit, totalCredit := accounting.SumLines(entry.Lines)
	suite.True(totalDebit.Equal(totalCredit))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostEventInTx_DuplicateReturnsOriginal() {
	ctx := context.Background()
	req := suite.cashReceiptRequest()
	existing := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: "JV-2026-000017",
	}

	suite.mockJournalRepo.On("FindEntryBySourceInTx", ctx, mock.Anything, req.SourceType, req.SourceID, req.Category).
		Return(existing, nil).Once()

	entry, err := suite.service.PostEventInTx(ctx, nil, req, suite.actorID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrDuplicatePosting))
	suite.Require().NotNil(entry)
	suite.Equal(existing.EntryNumber, entry.EntryNumber)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEventInTx_LockedPeriod() {
	ctx := context.Background()
	req := suite.cashReceiptRequest()

	suite.mockJournalRepo.On("FindEntryBySourceInTx", ctx, mock.Anything, req.SourceType, req.SourceID, req.Category).
		Return(nil, nil).Once()
	suite.mockPeriodSvc.On("ResolvePeriodInTx", ctx, mock.Anything, req.EntryDate).
		Return(nil, apperrors.ErrPeriodLocked).Once()

	_, err := suite.service.PostEventInTx(ctx, nil, req, suite.actorID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrPeriodLocked))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEventInTx_UnmappedCategory() {
	ctx := context.Background()
	req := suite.cashReceiptRequest()

	suite.mockJournalRepo.On("FindEntryBySourceInTx", ctx, mock.Anything, req.SourceType, req.SourceID, req.Category).
		Return(nil, nil).Once()
	suite.mockPeriodSvc.On("ResolvePeriodInTx", ctx, mock.Anything, req.EntryDate).Return(&suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx, mock.Anything, 2026).Return("JV-2026-000002", nil).Once()
	suite.mockMappingRepo.On("FindMappingByCategory", ctx, domain.CategoryCashReceipt).
		Return(nil, apperrors.NewNotFoundError("mapping not found")).Once()

	_, err := suite.service.PostEventInTx(ctx, nil, req, suite.actorID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrUnmappedCategory))
}

func (suite *LedgerServiceTestSuite) TestPostEventInTx_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := suite.cashReceiptRequest()
	req.Amount = decimal.Zero

	_, err := suite.service.PostEventInTx(ctx, nil, req, suite.actorID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *LedgerServiceTestSuite) TestPostEventInTx_ForeignCurrencyConverted() {
	ctx := context.Background()
	req := suite.cashReceiptRequest()
	req.Amount = decimal.NewFromInt(100)
	req.CurrencyCode = "USD"

	suite.mockJournalRepo.On("FindEntryBySourceInTx", ctx, mock.Anything, req.SourceType, req.SourceID, req.Category).
		Return(nil, nil).Once()
	suite.mockPeriodSvc.On("ResolvePeriodInTx", ctx, mock.Anything, req.EntryDate).Return(&suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx, mock.Anything, 2026).Return("JV-2026-000003", nil).Once()
	suite.mockMappingRepo.On("FindMappingByCategory", ctx, domain.CategoryCashReceipt).
		Return(suite.cashReceiptMapping(), nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(map[string]domain.ChartOfAccount{
			suite.cashAccount.AccountID:       suite.cashAccount,
			suite.receivableAccount.AccountID: suite.receivableAccount,
		}, nil).Once()
	suite.mockJournalRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Return(nil).Once()

	entry, err := suite.service.PostEventInTx(ctx, nil, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal("USD", entry.CurrencyCode)
	suite.True(entry.ExchangeRate.Equal(decimal.NewFromInt(16000)))
	suite.True(entry.BaseAmount.Equal(decimal.NewFromInt(1600000)))
	// Journal lines carry the base currency amounts.
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(1600000)))
}

func (suite *LedgerServiceTestSuite) TestPostEventInTx_UnknownCurrency() {
	ctx := context.Background()
	req := suite.cashReceiptRequest()
	req.CurrencyCode = "EUR"

	suite.mockJournalRepo.On("FindEntryBySourceInTx", ctx, mock.Anything, req.SourceType, req.SourceID, req.Category).
		Return(nil, nil).Once()
	suite.mockPeriodSvc.On("ResolvePeriodInTx", ctx, mock.Anything, req.EntryDate).Return(&suite.openPeriod, nil).Once()

	_, err := suite.service.PostEventInTx(ctx, nil, req, suite.actorID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *LedgerServiceTestSuite) TestPostEventInTx_ExplicitPayrollLines() {
	ctx := context.Background()
	req := dto.PostEventRequest{
		Category:     domain.CategoryPayroll,
		SourceType:   "payroll_run",
		SourceID:     uuid.NewString(),
		Amount:       decimal.NewFromInt(30000000),
		CurrencyCode: "IDR",
		EntryDate:    time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC),
		Description:  "August payroll",
		Lines: []dto.PostingLineInput{
			{AccountID: suite.salaryAccount.AccountID, DebitAmount: decimal.NewFromInt(30000000)},
			{AccountID: suite.cashAccount.AccountID, CreditAmount: decimal.NewFromInt(30000000)},
		},
	}

	suite.mockJournalRepo.On("FindEntryBySourceInTx", ctx, mock.Anything, req.SourceType, req.SourceID, req.Category).
		Return(nil, nil).Once()
	suite.mockPeriodSvc.On("ResolvePeriodInTx", ctx, mock.Anything, req.EntryDate).Return(&suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx, mock.Anything, 2026).Return("JV-2026-000004", nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.salaryAccount.AccountID, suite.cashAccount.AccountID}).
		Return(map[string]domain.ChartOfAccount{
			suite.salaryAccount.AccountID: suite.salaryAccount,
			suite.cashAccount.AccountID:   suite.cashAccount,
		}, nil).Once()
	suite.mockJournalRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Return(nil).Once()

	entry, err := suite.service.PostEventInTx(ctx, nil, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Len(entry.Lines, 2)
	suite.True(entry.TotalDebit.Equal(entry.TotalCredit))
	// Explicit lines skip the mapping table entirely.
	suite.mockMappingRepo.AssertNotCalled(suite.T(), "FindMappingByCategory", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEventInTx_UnbalancedExplicitLines() {
	ctx := context.Background()
	req := suite.cashReceiptRequest()
	req.Lines = []dto.PostingLineInput{
		{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
		{AccountID: suite.receivableAccount.AccountID, CreditAmount: decimal.NewFromInt(90)},
	}

	suite.mockJournalRepo.On("FindEntryBySourceInTx", ctx, mock.Anything, req.SourceType, req.SourceID, req.Category).
		Return(nil, nil).Once()
	suite.mockPeriodSvc.On("ResolvePeriodInTx", ctx, mock.Anything, req.EntryDate).Return(&suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx, mock.Anything, 2026).Return("JV-2026-000005", nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(map[string]domain.ChartOfAccount{
			suite.cashAccount.AccountID:       suite.cashAccount,
			suite.receivableAccount.AccountID: suite.receivableAccount,
		}, nil).Once()

	_, err := suite.service.PostEventInTx(ctx, nil, req, suite.actorID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEventInTx_HeaderAccountRejected() {
	ctx := context.Background()
	req := suite.cashReceiptRequest()
	header := suite.cashAccount
	header.IsHeader = true

	suite.mockJournalRepo.On("FindEntryBySourceInTx", ctx, mock.Anything, req.SourceType, req.SourceID, req.Category).
		Return(nil, nil).Once()
	suite.mockPeriodSvc.On("ResolvePeriodInTx", ctx, mock.Anything, req.EntryDate).Return(&suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx, mock.Anything, 2026).Return("JV-2026-000006", nil).Once()
	suite.mockMappingRepo.On("FindMappingByCategory", ctx, domain.CategoryCashReceipt).
		Return(suite.cashReceiptMapping(), nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(map[string]domain.ChartOfAccount{
			header.AccountID:                  header,
			suite.receivableAccount.AccountID: suite.receivableAccount,
		}, nil).Once()

	_, err := suite.service.PostEventInTx(ctx, nil, req, suite.actorID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *LedgerServiceTestSuite) TestPostEvent_CommitsOwnTransaction() {
	ctx := context.Background()
	req := suite.cashReceiptRequest()

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockJournalRepo.On("FindEntryBySourceInTx", ctx, mock.Anything, req.SourceType, req.SourceID, req.Category).
		Return(nil, nil).Once()
	suite.mockPeriodSvc.On("ResolvePeriodInTx", ctx, mock.Anything, req.EntryDate).Return(&suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx, mock.Anything, 2026).Return("JV-2026-000007", nil).Once()
	suite.mockMappingRepo.On("FindMappingByCategory", ctx, domain.CategoryCashReceipt).
		Return(suite.cashReceiptMapping(), nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(map[string]domain.ChartOfAccount{
			suite.cashAccount.AccountID:       suite.cashAccount,
			suite.receivableAccount.AccountID: suite.receivableAccount,
		}, nil).Once()
	suite.mockJournalRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Return(nil).Once()
	suite.mockJournalRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	entry, err := suite.service.PostEvent(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.NotNil(entry)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostEvent_DuplicateDoesNotCommit() {
	ctx := context.Background()
	req := suite.cashReceiptRequest()
	existing := &domain.JournalEntry{EntryID: uuid.NewString(), EntryNumber: "JV-2026-000008"}

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockJournalRepo.On("FindEntryBySourceInTx", ctx, mock.Anything, req.SourceType, req.SourceID, req.Category).
		Return(existing, nil).Once()

	entry, err := suite.service.PostEvent(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrDuplicatePosting))
	suite.Equal(existing.EntryNumber, entry.EntryNumber)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestGetEntryByID_LoadsLines() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{EntryID: entryID, EntryNumber: "JV-2026-000009"}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.receivableAccount.AccountID, CreditAmount: decimal.NewFromInt(100)},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	got, err := suite.service.GetEntryByID(ctx, entryID)

	suite.Require().NoError(err)
	suite.Len(got.Lines, 2)
}

func (suite *LedgerServiceTestSuite) postedCashReceipt() (*domain.JournalEntry, []domain.JournalLine) {
	entryID := uuid.NewString()
	postedAt := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	entry := &domain.JournalEntry{
		EntryID:      entryID,
		EntryNumber:  "JV-2026-000010",
		PeriodID:     suite.openPeriod.PeriodID,
		EntryDate:    postedAt,
		JournalType:  domain.CategoryCashReceipt,
		SourceType:   services.SourceTypeInvoicePayment,
		SourceID:     uuid.NewString(),
		Status:       domain.EntryPosted,
		TotalDebit:   decimal.NewFromInt(1650000),
		TotalCredit:  decimal.NewFromInt(1650000),
		CurrencyCode: "IDR",
		ExchangeRate: decimal.NewFromInt(1),
		BaseAmount:   decimal.NewFromInt(1650000),
		PostedAt:     &postedAt,
	}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(1650000), CreditAmount: decimal.Zero},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.receivableAccount.AccountID, DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(1650000)},
	}
	return entry, lines
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_SwapsSides() {
	ctx := context.Background()
	original, lines := suite.postedCashReceipt()

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, original.EntryID).Return(lines, nil).Once()
	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockJournalRepo.On("FindEntryBySourceInTx", ctx, mock.Anything, domain.SourceTypeReversal, original.EntryID, domain.CategoryCashReceipt).
		Return(nil, nil).Once()
	suite.mockPeriodSvc.On("ResolvePeriodInTx", ctx, mock.Anything, mock.AnythingOfType("time.Time")).Return(&suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("NextEntryNumber", ctx, mock.Anything, mock.AnythingOfType("int")).Return("JV-2026-000011", nil).Once()
	suite.mockJournalRepo.On("SaveEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.SourceType == domain.SourceTypeReversal &&
			e.SourceID == original.EntryID &&
			e.Status == domain.EntryPosted &&
			e.BaseAmount.Equal(original.BaseAmount)
	}), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()
	suite.mockJournalRepo.On("MarkEntryReversedInTx", ctx, mock.Anything, original.EntryID, suite.actorID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockJournalRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, original.EntryID, "wrong invoice", suite.actorID)

	suite.Require().NoError(err)
	suite.Require().Len(reversal.Lines, 2)
	// The cash debit comes back as a credit and vice versa.
	suite.Equal(suite.cashAccount.AccountID, reversal.Lines[0].AccountID)
	suite.True(reversal.Lines[0].CreditAmount.Equal(decimal.NewFromInt(1650000)))
	suite.True(reversal.Lines[0].DebitAmount.IsZero())
	suite.Equal(suite.receivableAccount.AccountID, reversal.Lines[1].AccountID)
	suite.True(reversal.Lines[1].DebitAmount.Equal(decimal.NewFromInt(1650000)))
	suite.True(reversal.TotalDebit.Equal(reversal.TotalCredit))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_AlreadyReversedReturnsExisting() {
	ctx := context.Background()
	original, lines := suite.postedCashReceipt()
	existingReversal := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: "JV-2026-000012",
		SourceType:  domain.SourceTypeReversal,
		SourceID:    original.EntryID,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, original.EntryID).Return(lines, nil).Once()
	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.mockJournalRepo.On("FindEntryBySourceInTx", ctx, mock.Anything, domain.SourceTypeReversal, original.EntryID, domain.CategoryCashReceipt).
		Return(existingReversal, nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, original.EntryID, "duplicate click", suite.actorID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrDuplicatePosting))
	suite.Equal(existingReversal.EntryNumber, reversal.EntryNumber)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_ReversalCannotBeReversed() {
	ctx := context.Background()
	original, _ := suite.postedCashReceipt()
	original.SourceType = domain.SourceTypeReversal

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, original.EntryID, "second thoughts", suite.actorID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_OnlyPostedEntries() {
	ctx := context.Background()
	original, _ := suite.postedCashReceipt()
	original.Status = domain.EntryReversed

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, original.EntryID, "already corrected", suite.actorID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
