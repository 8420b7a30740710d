package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
)

// MySQLGrantRepository implements RoleCapabilityGrant persistence for MySQL.
type MySQLGrantRepository struct {
	db *sql.DB
}

// NewMySQLGrantRepository creates a new MySQL grant repository.
func NewMySQLGrantRepository(db *sql.DB) *MySQLGrantRepository {
	return &MySQLGrantRepository{db: db}
}

// Upsert inserts a grant or updates the access level and constraints of an
// existing (role, capability) pair.
func (m *MySQLGrantRepository) Upsert(
	ctx context.Context,
	grant *authzDomain.RoleCapabilityGrant,
) error {
	querier := database.GetTx(ctx, m.db)

	constraintsJSON, err := marshalConstraints(grant.Constraints)
	if err != nil {
		return err
	}

	query := `INSERT INTO role_capability_grants (id, role_id, capability_key, access_level, constraints, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE access_level = VALUES(access_level), constraints = VALUES(constraints)`

	_, err = querier.ExecContext(
		ctx,
		query,
		grant.ID,
		grant.RoleID,
		grant.CapabilityKey,
		grant.AccessLevel,
		constraintsJSON,
		grant.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert grant")
	}
	return nil
}

// CreateIfAbsent inserts a grant, ignoring the insert when the (role,
// capability) pair already exists. Returns true when a row was inserted.
func (m *MySQLGrantRepository) CreateIfAbsent(
	ctx context.Context,
	grant *authzDomain.RoleCapabilityGrant,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	constraintsJSON, err := marshalConstraints(grant.Constraints)
	if err != nil {
		return false, err
	}

	query := `INSERT IGNORE INTO role_capability_grants (id, role_id, capability_key, access_level, constraints, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		grant.ID,
		grant.RoleID,
		grant.CapabilityKey,
		grant.AccessLevel,
		constraintsJSON,
		grant.CreatedAt,
	)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to seed grant")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to get rows affected")
	}
	return rowsAffected > 0, nil
}

// Get retrieves the grant for a (role, capability) pair.
// Returns ErrGrantNotFound if the role has no grant for the capability.
func (m *MySQLGrantRepository) Get(
	ctx context.Context,
	roleID uuid.UUID,
	capabilityKey string,
) (*authzDomain.RoleCapabilityGrant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, role_id, capability_key, access_level, constraints, created_at
			  FROM role_capability_grants WHERE role_id = ? AND capability_key = ?`

	return scanGrant(querier.QueryRowContext(ctx, query, roleID, capabilityKey))
}

// ListByRole retrieves all grants held by the role, ordered by capability key.
func (m *MySQLGrantRepository) ListByRole(
	ctx context.Context,
	roleID uuid.UUID,
) ([]*authzDomain.RoleCapabilityGrant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, role_id, capability_key, access_level, constraints, created_at
			  FROM role_capability_grants WHERE role_id = ? ORDER BY capability_key`

	rows, err := querier.QueryContext(ctx, query, roleID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list grants")
	}
	defer rows.Close()

	return collectGrants(rows)
}

// Delete removes the grant for a (role, capability) pair.
func (m *MySQLGrantRepository) Delete(
	ctx context.Context,
	roleID uuid.UUID,
	capabilityKey string,
) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM role_capability_grants WHERE role_id = ? AND capability_key = ?`,
		roleID,
		capabilityKey,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete grant")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return authzDomain.ErrGrantNotFound
	}
	return nil
}
