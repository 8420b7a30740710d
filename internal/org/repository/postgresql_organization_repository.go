// Package repository provides persistence implementations for organizations,
// users, and memberships with support for PostgreSQL and MySQL.
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

// PostgreSQLOrganizationRepository implements Organization persistence for PostgreSQL.
type PostgreSQLOrganizationRepository struct {
	db *sql.DB
}

// NewPostgreSQLOrganizationRepository creates a new PostgreSQL Organization repository.
func NewPostgreSQLOrganizationRepository(db *sql.DB) *PostgreSQLOrganizationRepository {
	return &PostgreSQLOrganizationRepository{db: db}
}

const organizationColumns = `id, slug, name, created_at, updated_at`

// Create inserts a new Organization.
func (p *PostgreSQLOrganizationRepository) Create(
	ctx context.Context,
	organization *orgDomain.Organization,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO organizations (id, slug, name, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)`

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
func (p *PostgreSQLOrganizationRepository) Get(
	ctx context.Context,
	organizationID uuid.UUID,
) (*orgDomain.Organization, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`

	return scanOrganization(querier.QueryRowContext(ctx, query, organizationID))
}

// GetBySlug retrieves an organization by slug. Returns ErrOrganizationNotFound if absent.
func (p *PostgreSQLOrganizationRepository) GetBySlug(
	ctx context.Context,
	slug string,
) (*orgDomain.Organization, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE slug = $1`

	return scanOrganization(querier.QueryRowContext(ctx, query, slug))
}

// List retrieves organizations ordered by slug with pagination.
func (p *PostgreSQLOrganizationRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*orgDomain.Organization, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + organizationColumns + ` FROM organizations
			  ORDER BY slug LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list organizations")
	}
	defer rows.Close()

	return collectOrganizations(rows)
}

func scanOrganization(row rowScanner) (*orgDomain.Organization, error) {
	var organization orgDomain.Organization

	err := row.Scan(
		&organization.ID,
		&organization.Slug,
		&organization.Name,
		&organization.CreatedAt,
		&organization.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orgDomain.ErrOrganizationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get organization")
	}

	return &organization, nil
}

func collectOrganizations(rows *sql.Rows) ([]*orgDomain.Organization, error) {
	organizations := []*orgDomain.Organization{}
	for rows.Next() {
		organization, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		organizations = append(organizations, organization)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate organizations")
	}
	return organizations, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}
