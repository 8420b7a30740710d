package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
)

// PostgreSQLGrantRepository implements RoleCapabilityGrant persistence for PostgreSQL.
type PostgreSQLGrantRepository struct {
	db *sql.DB
}

// NewPostgreSQLGrantRepository creates a new PostgreSQL grant repository.
func NewPostgreSQLGrantRepository(db *sql.DB) *PostgreSQLGrantRepository {
	return &PostgreSQLGrantRepository{db: db}
}

// Upsert inserts a grant or updates the access level and constraints of an
// existing (role, capability) pair.
func (p *PostgreSQLGrantRepository) Upsert(
	ctx context.Context,
	grant *authzDomain.RoleCapabilityGrant,
) error {
	querier := database.GetTx(ctx, p.db)

	constraintsJSON, err := marshalConstraints(grant.Constraints)
	if err != nil {
		return err
	}

	query := `INSERT INTO role_capability_grants (id, role_id, capability_key, access_level, constraints, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (role_id, capability_key)
			  DO UPDATE SET access_level = EXCLUDED.access_level, constraints = EXCLUDED.constraints`

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
// Used by seeding so concurrent startups never duplicate grants.
func (p *PostgreSQLGrantRepository) CreateIfAbsent(
	ctx context.Context,
	grant *authzDomain.RoleCapabilityGrant,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	constraintsJSON, err := marshalConstraints(grant.Constraints)
	if err != nil {
		return false, err
	}

	query := `INSERT INTO role_capability_grants (id, role_id, capability_key, access_level, constraints, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (role_id, capability_key) DO NOTHING`

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
func (p *PostgreSQLGrantRepository) Get(
	ctx context.Context,
	roleID uuid.UUID,
	capabilityKey string,
) (*authzDomain.RoleCapabilityGrant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, role_id, capability_key, access_level, constraints, created_at
			  FROM role_capability_grants WHERE role_id = $1 AND capability_key = $2`

	return scanGrant(querier.QueryRowContext(ctx, query, roleID, capabilityKey))
}

// ListByRole retrieves all grants held by the role, ordered by capability key.
func (p *PostgreSQLGrantRepository) ListByRole(
	ctx context.Context,
	roleID uuid.UUID,
) ([]*authzDomain.RoleCapabilityGrant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, role_id, capability_key, access_level, constraints, created_at
			  FROM role_capability_grants WHERE role_id = $1 ORDER BY capability_key`

	rows, err := querier.QueryContext(ctx, query, roleID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list grants")
	}
	defer rows.Close()

	return collectGrants(rows)
}

// Delete removes the grant for a (role, capability) pair.
func (p *PostgreSQLGrantRepository) Delete(
	ctx context.Context,
	roleID uuid.UUID,
	capabilityKey string,
) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM role_capability_grants WHERE role_id = $1 AND capability_key = $2`,
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

func scanGrant(row rowScanner) (*authzDomain.RoleCapabilityGrant, error) {
	var grant authzDomain.RoleCapabilityGrant
	var constraintsJSON []byte

	err := row.Scan(
		&grant.ID,
		&grant.RoleID,
		&grant.CapabilityKey,
		&grant.AccessLevel,
		&constraintsJSON,
		&grant.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authzDomain.ErrGrantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get grant")
	}

	grant.Constraints, err = unmarshalConstraints(constraintsJSON)
	if err != nil {
		return nil, err
	}

	return &grant, nil
}

func collectGrants(rows *sql.Rows) ([]*authzDomain.RoleCapabilityGrant, error) {
	grants := []*authzDomain.RoleCapabilityGrant{}
	for rows.Next() {
		grant, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate grants")
	}
	return grants, nil
}
