package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
)

// MySQLRoleRepository implements Role persistence for MySQL.
// UUIDs are stored as CHAR(36) columns.
type MySQLRoleRepository struct {
	db *sql.DB
}

// NewMySQLRoleRepository creates a new MySQL Role repository.
func NewMySQLRoleRepository(db *sql.DB) *MySQLRoleRepository {
	return &MySQLRoleRepository{db: db}
}

const mysqlRoleColumns = `id, role_key, name, description, is_system_role, organization_id,
	source_template_keys, is_saved_as_template, customization, created_at, updated_at`

// Create inserts a new Role.
func (m *MySQLRoleRepository) Create(ctx context.Context, role *authzDomain.Role) error {
	querier := database.GetTx(ctx, m.db)

	templateKeys, err := marshalTemplateKeys(role.SourceTemplateKeys)
	if err != nil {
		return err
	}

	query := `INSERT INTO roles (id, role_key, name, description, is_system_role, organization_id,
			  source_template_keys, is_saved_as_template, customization, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

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

// CreateIfAbsent inserts a system role unless a system role with the same key
// already exists. MySQL has no partial unique indexes, so the insert is
// guarded with a NOT EXISTS subquery; concurrent seeders race to a single row
// because the statement runs atomically.
func (m *MySQLRoleRepository) CreateIfAbsent(
	ctx context.Context,
	role *authzDomain.Role,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO roles (id, role_key, name, description, is_system_role, created_at, updated_at)
			  SELECT ?, ?, ?, ?, ?, ?, ?
			  FROM DUAL
			  WHERE NOT EXISTS (
			      SELECT 1 FROM roles WHERE role_key = ? AND organization_id IS NULL
			  )`

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
		role.RoleKey,
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
func (m *MySQLRoleRepository) Get(ctx context.Context, roleID uuid.UUID) (*authzDomain.Role, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlRoleColumns + ` FROM roles WHERE id = ?`

	return scanRole(querier.QueryRowContext(ctx, query, roleID))
}

// GetByKey retrieves a role by key. A nil organizationID selects system roles.
func (m *MySQLRoleRepository) GetByKey(
	ctx context.Context,
	organizationID *uuid.UUID,
	roleKey string,
) (*authzDomain.Role, error) {
	querier := database.GetTx(ctx, m.db)

	if organizationID == nil {
		query := `SELECT ` + mysqlRoleColumns + ` FROM roles
				  WHERE role_key = ? AND organization_id IS NULL`
		return scanRole(querier.QueryRowContext(ctx, query, roleKey))
	}

	query := `SELECT ` + mysqlRoleColumns + ` FROM roles
			  WHERE role_key = ? AND organization_id = ?`
	return scanRole(querier.QueryRowContext(ctx, query, roleKey, *organizationID))
}

// ListForOrganization retrieves the system roles plus the organization's
// custom roles, ordered by role key.
func (m *MySQLRoleRepository) ListForOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
) ([]*authzDomain.Role, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlRoleColumns + ` FROM roles
			  WHERE organization_id IS NULL OR organization_id = ?
			  ORDER BY is_system_role DESC, role_key`

	rows, err := querier.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	defer rows.Close()

	return collectRoles(rows)
}

// Update modifies an existing role's mutable attributes.
func (m *MySQLRoleRepository) Update(ctx context.Context, role *authzDomain.Role) error {
	querier := database.GetTx(ctx, m.db)

	templateKeys, err := marshalTemplateKeys(role.SourceTemplateKeys)
	if err != nil {
		return err
	}

	query := `UPDATE roles
			  SET name = ?,
			      description = ?,
			      source_template_keys = ?,
			      is_saved_as_template = ?,
			      customization = ?,
			      updated_at = ?
			  WHERE id = ?`

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
func (m *MySQLRoleRepository) Delete(ctx context.Context, roleID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, roleID)
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
func (m *MySQLRoleRepository) MembershipCount(ctx context.Context, roleID uuid.UUID) (int, error) {
	querier := database.GetTx(ctx, m.db)

	var count int
	err := querier.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM memberships WHERE role_id = ?`,
		roleID,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count role memberships")
	}
	return count, nil
}
