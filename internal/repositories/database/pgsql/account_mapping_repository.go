package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tirtatour/travel_billing_app/internal/apperrors"
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	portsrepo "github.com/tirtatour/travel_billing_app/internal/core/ports/repositories"
	"github.com/tirtatour/travel_billing_app/internal/models"
	"github.com/tirtatour/travel_billing_app/internal/utils/mapping"
)

type PgxAccountMappingRepository struct {
	BaseRepository
}

// newPgxAccountMappingRepository creates a new repository for event-category account mappings.
func newPgxAccountMappingRepository(pool *pgxpool.Pool) portsrepo.AccountMappingRepositoryFacade {
	return &PgxAccountMappingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountMappingRepository implements portsrepo.AccountMappingRepositoryFacade
var _ portsrepo.AccountMappingRepositoryFacade = (*PgxAccountMappingRepository)(nil)

const mappingColumns = `
	mapping_id, category, debit_account_id, credit_account_id, description,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccountMapping(row rowScanner) (models.AccountMapping, error) {
	var m models.AccountMapping
	err := row.Scan(
		&m.MappingID,
		&m.Category,
		&m.DebitAccountID,
		&m.CreditAccountID,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindMappingByCategory retrieves the mapping row for a business event category.
func (r *PgxAccountMappingRepository) FindMappingByCategory(ctx context.Context, category domain.EventCategory) (*domain.AccountMapping, error) {
	query := `SELECT ` + mappingColumns + ` FROM account_mappings WHERE category = $1;`

	m, err := scanAccountMapping(r.Pool.QueryRow(ctx, query, string(category)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account mapping for category "+string(category), err)
	}

	am := mapping.ToDomainAccountMapping(m)
	return &am, nil
}

// ListMappings retrieves all account mappings, ordered by category.
func (r *PgxAccountMappingRepository) ListMappings(ctx context.Context) ([]domain.AccountMapping, error) {
	query := `SELECT ` + mappingColumns + ` FROM account_mappings ORDER BY category;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account mappings", err)
	}
	defer rows.Close()

	mappings := []domain.AccountMapping{}
	for rows.Next() {
		m, scanErr := scanAccountMapping(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account mapping row", scanErr)
		}
		mappings = append(mappings, mapping.ToDomainAccountMapping(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account mapping rows", err)
	}

	return mappings, nil
}

// SaveMapping persists a new mapping. Each category has at most one row.
func (r *PgxAccountMappingRepository) SaveMapping(ctx context.Context, am domain.AccountMapping) error {
	m := mapping.ToModelAccountMapping(am)
	query := `
		INSERT INTO account_mappings (` + mappingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	_, err := r.Pool.Exec(ctx, query,
		m.MappingID, m.Category, m.DebitAccountID, m.CreditAccountID, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "mapping for category "+m.Category+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert account mapping "+m.MappingID, err)
	}
	return nil
}

// UpdateMapping repoints an existing category mapping at different accounts.
func (r *PgxAccountMappingRepository) UpdateMapping(ctx context.Context, am domain.AccountMapping) error {
	m := mapping.ToModelAccountMapping(am)
	query := `
		UPDATE account_mappings SET
			debit_account_id = $2,
			credit_account_id = $3,
			description = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE mapping_id = $1;`

	tag, err := r.Pool.Exec(ctx, query,
		m.MappingID, m.DebitAccountID, m.CreditAccountID, m.Description,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account mapping "+m.MappingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
