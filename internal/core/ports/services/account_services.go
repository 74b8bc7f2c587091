package services

import (
	"context"

	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	"github.com/tirtatour/travel_billing_app/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error)

	// ListAccounts retrieves all accounts, ordered by code.
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.ChartOfAccount, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.ChartOfAccount, error)

	// UpdateAccount updates mutable account details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.ChartOfAccount, error)

	// DeactivateAccount marks an account inactive so new postings cannot reference it.
	DeactivateAccount(ctx context.Context, accountID string, actorID string) error
}

// AccountMappingSvc defines management operations for event-category account mappings
type AccountMappingSvc interface {
	// ListMappings retrieves all account mappings.
	ListMappings(ctx context.Context) ([]domain.AccountMapping, error)

	// CreateMapping persists a new category-to-accounts mapping.
	CreateMapping(ctx context.Context, req dto.CreateAccountMappingRequest, creatorID string) (*domain.AccountMapping, error)

	// UpdateMapping repoints an existing category mapping at different accounts.
	UpdateMapping(ctx context.Context, category domain.EventCategory, req dto.UpdateAccountMappingRequest, actorID string) (*domain.AccountMapping, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountMappingSvc
}
