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

// PostgreSQLRoleRepository implements Role persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLRoleRepository struct {
	db *sql.DB
}

// NewPostgreSQLRoleRepository creates a new PostgreSQL Role repository.
func NewPostgreSQLRoleRepository(db *sql.DB) *PostgreSQLRoleRepository {
	return &PostgreSQLRoleRepository{db: db}
}

const postgresRoleColumns = `id, role_key, name, description, is_system_role, organization_id,
	source_template_keys, is_saved_as_template, customization, created_at, updated_at`

// Create inserts a new Role.
func (p *PostgreSQLRoleRepository) Create(ctx context.Context, role *authzDomain.Role) error {
	querier := database.GetTx(ctx, p.db)

	templateKeys, err := marshalTemplateKeys(role.SourceTemplateKeys)
	if err != nil {
		return err
	}

	query := `INSERT INTO roles (id, role_key, name, description, is_system_role, organization_id,
			  source_template_keys, is_saved_as_template, customization, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = querier.ExecContext(
		ctx,
		query,
		role.ID,
		role.RoleKey,
		role.Name,
		role.Description,
		role.IsSystemRole,
		role.OrganizationID,
		templateKeys,
		role.IsSavedAsTemplate,
		role.Customization,
		role.CreatedAt,
		role.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

// CreateIfAbsent inserts a system role, ignoring the insert when a system role
// with the same key already exists. Returns true when a row was inserted.
// Relies on the partial unique index over system role keys, so concurrent
// seeding across instances degrades to a no-op rather than an error.
func (p *PostgreSQLRoleRepository) CreateIfAbsent(
	ctx context.Context,
	role *authzDomain.Role,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO roles (id, role_key, name, description, is_system_role, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (role_key) WHERE organization_id IS NULL DO NOTHING`

	result, err := querier.ExecContext(
		ctx,
		query,
		role.ID,
		role.RoleKey,
		role.Name,
		role.Description,
		role.IsSystemRole,
		role.CreatedAt,
		role.UpdatedAt,
	)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to seed role")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to get rows affected")
	}
	return rowsAffected > 0, nil
}

// Get retrieves a role by ID. Returns ErrRoleNotFound if absent.
func (p *PostgreSQLRoleRepository) Get(ctx context.Context, roleID uuid.UUID) (*authzDomain.Role, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresRoleColumns + ` FROM roles WHERE id = $1`

	return scanRole(querier.QueryRowContext(ctx, query, roleID))
}

// GetByKey retrieves a role by key. A nil organizationID selects system roles;
// otherwise the organization's custom roles are searched.
func (p *PostgreSQLRoleRepository) GetByKey(
	ctx context.Context,
	organizationID *uuid.UUID,
	roleKey string,
) (*authzDomain.Role, error) {
	querier := database.GetTx(ctx, p.db)

	if organizationID == nil {
		query := `SELECT ` + postgresRoleColumns + ` FROM roles
				  WHERE role_key = $1 AND organization_id IS NULL`
		return scanRole(querier.QueryRowContext(ctx, query, roleKey))
	}

	query := `SELECT ` + postgresRoleColumns + ` FROM roles
			  WHERE role_key = $1 AND organization_id = $2`
	return scanRole(querier.QueryRowContext(ctx, query, roleKey, *organizationID))
}

// ListForOrganization retrieves the system roles plus the organization's
// custom roles, ordered by role key.
func (p *PostgreSQLRoleRepository) ListForOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
) ([]*authzDomain.Role, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresRoleColumns + ` FROM roles
			  WHERE organization_id IS NULL OR organization_id = $1
			  ORDER BY is_system_role DESC, role_key`

	rows, err := querier.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	defer rows.Close()

	return collectRoles(rows)
}

// Update modifies an existing role's mutable attributes.
func (p *PostgreSQLRoleRepository) Update(ctx context.Context, role *authzDomain.Role) error {
	querier := database.GetTx(ctx, p.db)

	templateKeys, err := marshalTemplateKeys(role.SourceTemplateKeys)
	if err != nil {
		return err
	}

	query := `UPDATE roles
			  SET name = $1,
			      description = $2,
			      source_template_keys = $3,
			      is_saved_as_template = $4,
			      customization = $5,
			      updated_at = $6
			  WHERE id = $7`

	result, err := querier.ExecContext(
		ctx,
		query,
		role.Name,
		role.Description,
		templateKeys,
		role.IsSavedAsTemplate,
		role.Customization,
		role.UpdatedAt,
		role.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update role")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return authzDomain.ErrRoleNotFound
	}
	return nil
}

// Delete removes a role by ID. Grants are removed by the foreign key cascade.
func (p *PostgreSQLRoleRepository) Delete(ctx context.Context, roleID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, roleID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete role")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return authzDomain.ErrRoleNotFound
	}
	return nil
}

// MembershipCount returns how many members currently hold the role.
func (p *PostgreSQLRoleRepository) MembershipCount(ctx context.Context, roleID uuid.UUID) (int, error) {
	querier := database.GetTx(ctx, p.db)

	var count int
	err := querier.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM memberships WHERE role_id = $1`,
		roleID,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count role memberships")
	}
	return count, nil
}

func scanRole(row rowScanner) (*authzDomain.Role, error) {
	var role authzDomain.Role
	var organizationID uuid.NullUUID
	var templateKeysJSON []byte
	var customization sql.NullString

	err := row.Scan(
		&role.ID,
		&role.RoleKey,
		&role.Name,
		&role.Description,
		&role.IsSystemRole,
		&organizationID,
		&templateKeysJSON,
		&role.IsSavedAsTemplate,
		&customization,
		&role.CreatedAt,
		&role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authzDomain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role")
	}

	if organizationID.Valid {
		role.OrganizationID = &organizationID.UUID
	}
	role.Customization = customization.String

	role.SourceTemplateKeys, err = unmarshalTemplateKeys(templateKeysJSON)
	if err != nil {
		return nil, err
	}

	return &role, nil
}

func collectRoles(rows *sql.Rows) ([]*authzDomain.Role, error) {
	roles := []*authzDomain.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}
	return roles, nil
}
