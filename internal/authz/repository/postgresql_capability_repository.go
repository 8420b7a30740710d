// Package repository implements authorization persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
)

// PostgreSQLCapabilityRepository implements Capability persistence for PostgreSQL.
// Capabilities are immutable after seeding; there are no update or delete operations.
type PostgreSQLCapabilityRepository struct {
	db *sql.DB
}

// NewPostgreSQLCapabilityRepository creates a new PostgreSQL Capability repository.
func NewPostgreSQLCapabilityRepository(db *sql.DB) *PostgreSQLCapabilityRepository {
	return &PostgreSQLCapabilityRepository{db: db}
}

// SeedAll inserts the given capability definitions, skipping keys that already
// exist. Existing rows are never modified; the first write wins. Returns the
// number of rows actually inserted, so repeated seeding reports zero.
func (p *PostgreSQLCapabilityRepository) SeedAll(
	ctx context.Context,
	capabilities []authzDomain.Capability,
) (int, error) {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO capabilities (key, category, name, description, access_levels, is_system_critical)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (key) DO NOTHING`

	inserted := 0
	for _, capability := range capabilities {
		levelsJSON, err := json.Marshal(capability.AccessLevels)
		if err != nil {
			return inserted, apperrors.Wrap(err, "failed to marshal access levels")
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
func (p *PostgreSQLCapabilityRepository) Get(
	ctx context.Context,
	key string,
) (*authzDomain.Capability, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT key, category, name, description, access_levels, is_system_critical, created_at
			  FROM capabilities WHERE key = $1`

	return scanCapability(querier.QueryRowContext(ctx, query, key))
}

// ListByCategory retrieves all capabilities tagged with the given category,
// ordered by key.
func (p *PostgreSQLCapabilityRepository) ListByCategory(
	ctx context.Context,
	category authzDomain.FeatureCategory,
) ([]*authzDomain.Capability, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT key, category, name, description, access_levels, is_system_critical, created_at
			  FROM capabilities WHERE category = $1 ORDER BY key`

	rows, err := querier.QueryContext(ctx, query, category)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list capabilities by category")
	}
	defer rows.Close()

	return collectCapabilities(rows)
}

// List retrieves every capability in the registry, ordered by key.
func (p *PostgreSQLCapabilityRepository) List(ctx context.Context) ([]*authzDomain.Capability, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT key, category, name, description, access_levels, is_system_critical, created_at
			  FROM capabilities ORDER BY key`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list capabilities")
	}
	defer rows.Close()

	return collectCapabilities(rows)
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCapability(row rowScanner) (*authzDomain.Capability, error) {
	var capability authzDomain.Capability
	var levelsJSON []byte

	err := row.Scan(
		&capability.Key,
		&capability.Category,
		&capability.Name,
		&capability.Description,
		&levelsJSON,
		&capability.IsSystemCritical,
		&capability.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authzDomain.ErrCapabilityNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get capability")
	}

	if err := json.Unmarshal(levelsJSON, &capability.AccessLevels); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal access levels")
	}

	return &capability, nil
}

func collectCapabilities(rows *sql.Rows) ([]*authzDomain.Capability, error) {
	capabilities := []*authzDomain.Capability{}
	for rows.Next() {
		capability, err := scanCapability(rows)
		if err != nil {
			return nil, err
		}
		capabilities = append(capabilities, capability)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate capabilities")
	}
	return capabilities, nil
}
