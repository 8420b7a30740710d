package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
	orgDomain "github.com/allisson/fleet/internal/org/domain"
)

// MySQLMembershipRepository implements Membership persistence for MySQL.
// It also serves as the membership resolver consulted by capability checks.
type MySQLMembershipRepository struct {
	db *sql.DB
}

// NewMySQLMembershipRepository creates a new MySQL Membership repository.
func NewMySQLMembershipRepository(db *sql.DB) *MySQLMembershipRepository {
	return &MySQLMembershipRepository{db: db}
}

// Create inserts a new Membership.
func (m *MySQLMembershipRepository) Create(
	ctx context.Context,
	membership *orgDomain.Membership,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO memberships (id, organization_id, user_id, role_id, is_active,
			  created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		membership.ID,
		membership.OrganizationID,
		membership.UserID,
		membership.RoleID,
		membership.IsActive,
		membership.CreatedAt,
		membership.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create membership")
	}
	return nil
}

// Get retrieves the user's membership in the organization.
// Returns ErrMembershipNotFound if absent.
func (m *MySQLMembershipRepository) Get(
	ctx context.Context,
	organizationID, userID uuid.UUID,
) (*orgDomain.Membership, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + membershipColumns + ` FROM memberships
			  WHERE organization_id = ? AND user_id = ?`

	return scanMembership(querier.QueryRowContext(ctx, query, organizationID, userID))
}

// ListByOrganization retrieves the organization's memberships with pagination.
func (m *MySQLMembershipRepository) ListByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*orgDomain.Membership, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + membershipColumns + ` FROM memberships
			  WHERE organization_id = ?
			  ORDER BY created_at LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list memberships")
	}
	defer rows.Close()

	return collectMemberships(rows)
}

// Update modifies an existing membership's role and active flag.
func (m *MySQLMembershipRepository) Update(
	ctx context.Context,
	membership *orgDomain.Membership,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE memberships
			  SET role_id = ?,
			      is_active = ?,
			      updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		membership.RoleID,
		membership.IsActive,
		membership.UpdatedAt,
		membership.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update membership")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return orgDomain.ErrMembershipNotFound
	}
	return nil
}

// Delete removes a membership by ID.
func (m *MySQLMembershipRepository) Delete(ctx context.Context, membershipID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM memberships WHERE id = ?`, membershipID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete membership")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return orgDomain.ErrMembershipNotFound
	}
	return nil
}

// ResolveRoleID returns the role held by the user's active membership in the
// organization. Implements the resolver interface consulted on every
// capability check, so it reads a single indexed row.
func (m *MySQLMembershipRepository) ResolveRoleID(
	ctx context.Context,
	organizationID, userID uuid.UUID,
) (uuid.UUID, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT role_id FROM memberships
			  WHERE organization_id = ? AND user_id = ? AND is_active = TRUE`

	var roleID uuid.UUID
	err := querier.QueryRowContext(ctx, query, organizationID, userID).Scan(&roleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, orgDomain.ErrMembershipNotFound
		}
		return uuid.Nil, apperrors.Wrap(err, "failed to resolve membership role")
	}
	return roleID, nil
}
