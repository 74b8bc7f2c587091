package repositories

import (
	"context"

	"github.com/tirtatour/travel_billing_app/internal/core/domain"
)

// AccountReader defines read operations for chart of accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error)

	// FindAccountByCode retrieves a specific account by its account code.
	FindAccountByCode(ctx context.Context, code string) (*domain.ChartOfAccount, error)

	// FindAccountsByIDs retrieves multiple accounts by their identifiers, keyed by ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.ChartOfAccount, error)

	// ListAccounts retrieves all accounts, ordered by code.
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.ChartOfAccount, error)
}

// AccountWriter defines write operations for chart of accounts data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.ChartOfAccount) error

	// UpdateAccount persists changes to an existing account.
	UpdateAccount(ctx context.Context, account domain.ChartOfAccount) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
