package repository

import (
	"context"
	"database/sql"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
)

// MySQLCapabilityRepository implements Capability persistence for MySQL.
// Uses INSERT IGNORE for conflict-tolerant seeding.
type MySQLCapabilityRepository struct {
	db *sql.DB
}

// NewMySQLCapabilityRepository creates a new MySQL Capability repository.
func NewMySQLCapabilityRepository(db *sql.DB) *MySQLCapabilityRepository {
	return &MySQLCapabilityRepository{db: db}
}

// SeedAll inserts the given capability definitions, skipping keys that already
// exist. Returns the number of rows actually inserted.
func (m *MySQLCapabilityRepository) SeedAll(
	ctx context.Context,
	capabilities []authzDomain.Capability,
) (int, error) {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT IGNORE INTO capabilities (key_name, category, name, description, access_levels, is_system_critical)
			  VALUES (?, ?, ?, ?, ?, ?)`

	inserted := 0
	for _, capability := range capabilities {
		levelsJSON, err := marshalAccessLevels(capability.AccessLevels)
		if err != nil {
			return inserted, err
		}

		result, err := querier.ExecContext(
			ctx,
			query,
			capability.Key,
			capability.Category,
			capability.Name,
			capability.Description,
			levelsJSON,
			capability.IsSystemCritical,
		)
		if err != nil {
			return inserted, apperrors.Wrap(err, "failed to seed capability")
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return inserted, apperrors.Wrap(err, "failed to get rows affected")
		}
		inserted += int(rowsAffected)
	}

	return inserted, nil
}

// Get retrieves a capability by key. Returns ErrCapabilityNotFound if absent.
func (m *MySQLCapabilityRepository) Get(
	ctx context.Context,
	key string,
) (*authzDomain.Capability, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT key_name, category, name, description, access_levels, is_system_critical, created_at
			  FROM capabilities WHERE key_name = ?`

	return scanCapability(querier.QueryRowContext(ctx, query, key))
}

// ListByCategory retrieves all capabilities tagged with the given category,
// ordered by key.
func (m *MySQLCapabilityRepository) ListByCategory(
	ctx context.Context,
	category authzDomain.FeatureCategory,
) ([]*authzDomain.Capability, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT key_name, category, name, description, access_levels, is_system_critical, created_at
			  FROM capabilities WHERE category = ? ORDER BY key_name`

	rows, err := querier.QueryContext(ctx, query, category)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list capabilities by category")
	}
	defer rows.Close()

	return collectCapabilities(rows)
}

// List retrieves every capability in the registry, ordered by key.
func (m *MySQLCapabilityRepository) List(ctx context.Context) ([]*authzDomain.Capability, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT key_name, category, name, description, access_levels, is_system_critical, created_at
			  FROM capabilities ORDER BY key_name`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list capabilities")
	}
	defer rows.Close()

	return collectCapabilities(rows)
}
