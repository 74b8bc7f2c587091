package repositories

import (
	"context"

	"github.com/tirtatour/travel_billing_app/internal/core/domain"
)

// AccountMappingReader defines read operations for event-category account mappings
type AccountMappingReader interface {
	// FindMappingByCategory retrieves the mapping row for a business event category.
	FindMappingByCategory(ctx context.Context, category domain.EventCategory) (*domain.AccountMapping, error)

	// ListMappings retrieves all account mappings, ordered by category.
	ListMappings(ctx context.Context) ([]domain.AccountMapping, error)
}

// AccountMappingWriter defines write operations for event-category account mappings
type AccountMappingWriter interface {
	// SaveMapping persists a new mapping.
	SaveMapping(ctx context.Context, mapping domain.AccountMapping) error

	// UpdateMapping persists changes to an existing mapping.
	UpdateMapping(ctx context.Context, mapping domain.AccountMapping) error
}

// AccountMappingRepositoryFacade combines all mapping-related repository interfaces
type AccountMappingRepositoryFacade interface {
	AccountMappingReader
	AccountMappingWriter
}
