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

// PostgreSQLMembershipRepository implements Membership persistence for PostgreSQL.
// It also serves as the membership resolver consulted by capability checks.
type PostgreSQLMembershipRepository struct {
	db *sql.DB
}

// NewPostgreSQLMembershipRepository creates a new PostgreSQL Membership repository.
func NewPostgreSQLMembershipRepository(db *sql.DB) *PostgreSQLMembershipRepository {
	return &PostgreSQLMembershipRepository{db: db}
}

const membershipColumns = `id, organization_id, user_id, role_id, is_active, created_at, updated_at`

// Create inserts a new Membership.
func (p *PostgreSQLMembershipRepository) Create(
	ctx context.Context,
	membership *orgDomain.Membership,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO memberships (id, organization_id, user_id, role_id, is_active,
			  created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

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
func (p *PostgreSQLMembershipRepository) Get(
	ctx context.Context,
	organizationID, userID uuid.UUID,
) (*orgDomain.Membership, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + membershipColumns + ` FROM memberships
			  WHERE organization_id = $1 AND user_id = $2`

	return scanMembership(querier.QueryRowContext(ctx, query, organizationID, userID))
}

// ListByOrganization retrieves the organization's memberships with pagination.
func (p *PostgreSQLMembershipRepository) ListByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*orgDomain.Membership, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + membershipColumns + ` FROM memberships
			  WHERE organization_id = $1
			  ORDER BY created_at LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list memberships")
	}
	defer rows.Close()

	return collectMemberships(rows)
}

// Update modifies an existing membership's role and active flag.
func (p *PostgreSQLMembershipRepository) Update(
	ctx context.Context,
	membership *orgDomain.Membership,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE memberships
			  SET role_id = $1,
			      is_active = $2,
			      updated_at = $3
			  WHERE id = $4`

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
func (p *PostgreSQLMembershipRepository) Delete(ctx context.Context, membershipID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM memberships WHERE id = $1`, membershipID)
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
func (p *PostgreSQLMembershipRepository) ResolveRoleID(
	ctx context.Context,
	organizationID, userID uuid.UUID,
) (uuid.UUID, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT role_id FROM memberships
			  WHERE organization_id = $1 AND user_id = $2 AND is_active = TRUE`

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

func scanMembership(row rowScanner) (*orgDomain.Membership, error) {
	var membership orgDomain.Membership

	err := row.Scan(
		&membership.ID,
		&membership.OrganizationID,
		&membership.UserID,
		&membership.RoleID,
		&membership.IsActive,
		&membership.CreatedAt,
		&membership.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orgDomain.ErrMembershipNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get membership")
	}

	return &membership, nil
}

func collectMemberships(rows *sql.Rows) ([]*orgDomain.Membership, error) {
	memberships := []*orgDomain.Membership{}
	for rows.Next() {
		membership, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, membership)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate memberships")
	}
	return memberships, nil
}
