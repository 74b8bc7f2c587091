package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tirtatour/travel_billing_app/internal/apperrors"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	portsrepo "github.com/tirtatour/travel_billing_app/internal/core/ports/repositories"
	portssvc "github.com/tirtatour/travel_billing_app/internal/core/ports/services"
	"github.com/tirtatour/travel_billing_app/internal/dto"
	"github.com/tirtatour/travel_billing_app/internal/middleware"
)

// accountService manages the chart of accounts and the event-category
// account mapping table the posting engine reads.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	mappingRepo portsrepo.AccountMappingRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, mappingRepo portsrepo.AccountMappingRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		mappingRepo: mappingRepo,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByID retrieves an account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ListAccounts retrieves all accounts, ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.ChartOfAccount, error) {
	return s.accountRepo.ListAccounts(ctx, activeOnly)
}

// CreateAccount persists a new ledger account.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.ChartOfAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	parentID := ""
	if req.ParentAccountID != nil {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, *req.ParentAccountID)
			}
			return nil, err
		}
		if !parent.IsHeader {
			return nil, fmt.Errorf("%w: parent account %s is not a header account", apperrors.ErrValidation, parent.Code)
		}
		parentID = parent.AccountID
	}

	now := time.Now().UTC()
	account := domain.ChartOfAccount{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		IsHeader:        req.IsHeader,
		CurrencyCode:    req.CurrencyCode,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to create account", slog.String("code", req.Code), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created", slog.String("code", account.Code), slog.String("account_id", account.AccountID))
	return &account, nil
}

// UpdateAccount updates mutable account details.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.ChartOfAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = actorID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeactivateAccount marks an account inactive so new postings cannot reference it.
// Historical journal lines keep pointing at it.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, actorID string) error {
	inactive := false
	_, err := s.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{IsActive: &inactive}, actorID)
	return err
}

// ListMappings retrieves all account mappings.
func (s *accountService) ListMappings(ctx context.Context) ([]domain.AccountMapping, error) {
	return s.mappingRepo.ListMappings(ctx)
}

// validateMappingAccounts checks that both sides of a mapping reference
// postable accounts.
func (s *accountService) validateMappingAccounts(ctx context.Context, debitAccountID, creditAccountID string) error {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{debitAccountID, creditAccountID})
	if err != nil {
		return err
	}
	for _, id := range []string{debitAccountID, creditAccountID} {
		account, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, id)
		}
		if !account.Postable() {
			return fmt.Errorf("%w: account %s does not accept postings", apperrors.ErrValidation, account.Code)
		}
	}
	return nil
}

// CreateMapping persists a new category-to-accounts mapping.
func (s *accountService) CreateMapping(ctx context.Context, req dto.CreateAccountMappingRequest, creatorID string) (*domain.AccountMapping, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateMappingAccounts(ctx, req.DebitAccountID, req.CreditAccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m := domain.AccountMapping{
		MappingID:       uuid.NewString(),
		Category:        domain.EventCategory(req.Category),
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		Description:     req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.mappingRepo.SaveMapping(ctx, m); err != nil {
		logger.Error("Failed to create account mapping", slog.String("category", req.Category), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account mapping created", slog.String("category", req.Category))
	return &m, nil
}

// UpdateMapping repoints an existing category mapping at different accounts.
// Existing journal entries are untouched; the new mapping applies to future
// postings only.
func (s *accountService) UpdateMapping(ctx context.Context, category domain.EventCategory, req dto.UpdateAccountMappingRequest, actorID string) (*domain.AccountMapping, error) {
	m, err := s.mappingRepo.FindMappingByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	if req.DebitAccountID != nil {
		m.DebitAccountID = *req.DebitAccountID
	}
	if req.CreditAccountID != nil {
		m.CreditAccountID = *req.CreditAccountID
	}
	if req.Description != nil {
		m.Description = *req.Description
	}

	if err := s.validateMappingAccounts(ctx, m.DebitAccountID, m.CreditAccountID); err != nil {
		return nil, err
	}

	m.LastUpdatedAt = time.Now().UTC()
	m.LastUpdatedBy = actorID

	if err := s.mappingRepo.UpdateMapping(ctx, *m); err != nil {
		return nil, err
	}
	return m, nil
}
