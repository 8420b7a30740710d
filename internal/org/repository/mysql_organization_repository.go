package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
	orgDomain "github.com/allisson/fleet/internal/org/domain"
)

// MySQLOrganizationRepository implements Organization persistence for MySQL.
type MySQLOrganizationRepository struct {
	db *sql.DB
}

// NewMySQLOrganizationRepository creates a new MySQL Organization repository.
func NewMySQLOrganizationRepository(db *sql.DB) *MySQLOrganizationRepository {
	return &MySQLOrganizationRepository{db: db}
}

// Create inserts a new Organization.
func (m *MySQLOrganizationRepository) Create(
	ctx context.Context,
	organization *orgDomain.Organization,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO organizations (id, slug, name, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		organization.ID,
		organization.Slug,
		organization.Name,
		organization.CreatedAt,
		organization.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create organization")
	}
	return nil
}

// Get retrieves an organization by ID. Returns ErrOrganizationNotFound if absent.
func (m *MySQLOrganizationRepository) Get(
	ctx context.Context,
	organizationID uuid.UUID,
) (*orgDomain.Organization, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = ?`

	return scanOrganization(querier.QueryRowContext(ctx, query, organizationID))
}

// GetBySlug retrieves an organization by slug. Returns ErrOrganizationNotFound if absent.
func (m *MySQLOrganizationRepository) GetBySlug(
	ctx context.Context,
	slug string,
) (*orgDomain.Organization, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE slug = ?`

	return scanOrganization(querier.QueryRowContext(ctx, query, slug))
}

// List retrieves organizations ordered by slug with pagination.
func (m *MySQLOrganizationRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*orgDomain.Organization, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + organizationColumns + ` FROM organizations
			  ORDER BY slug LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list organizations")
	}
	defer rows.Close()

	return collectOrganizations(rows)
}
