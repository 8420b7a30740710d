// Package repository provides persistence implementations for fleet
// resources with support for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
	fleetDomain "github.com/allisson/fleet/internal/fleet/domain"
)

// PostgreSQLZoneRepository implements Zone persistence for PostgreSQL.
type PostgreSQLZoneRepository struct {
	db *sql.DB
}

// NewPostgreSQLZoneRepository creates a new PostgreSQL Zone repository.
func NewPostgreSQLZoneRepository(db *sql.DB) *PostgreSQLZoneRepository {
	return &PostgreSQLZoneRepository{db: db}
}

const zoneColumns = `id, organization_id, name, description, created_at, updated_at`

// Create inserts a new Zone.
func (p *PostgreSQLZoneRepository) Create(ctx context.Context, zone *fleetDomain.Zone) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO zones (id, organization_id, name, description, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		zone.ID,
		zone.OrganizationID,
		zone.Name,
		zone.Description,
		zone.CreatedAt,
		zone.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create zone")
	}
	return nil
}

// Get retrieves a zone scoped to the organization. Returns ErrZoneNotFound if absent.
func (p *PostgreSQLZoneRepository) Get(
	ctx context.Context,
	organizationID, zoneID uuid.UUID,
) (*fleetDomain.Zone, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + zoneColumns + ` FROM zones WHERE id = $1 AND organization_id = $2`

	return scanZone(querier.QueryRowContext(ctx, query, zoneID, organizationID))
}

// ListByOrganization retrieves the organization's zones ordered by name.
func (p *PostgreSQLZoneRepository) ListByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
) ([]*fleetDomain.Zone, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + zoneColumns + ` FROM zones WHERE organization_id = $1 ORDER BY name`

	rows, err := querier.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list zones")
	}
	defer rows.Close()

	return collectZones(rows)
}

// Update modifies an existing zone's name and description.
func (p *PostgreSQLZoneRepository) Update(ctx context.Context, zone *fleetDomain.Zone) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE zones
			  SET name = $1,
			      description = $2,
			      updated_at = $3
			  WHERE id = $4 AND organization_id = $5`

	result, err := querier.ExecContext(
		ctx,
		query,
		zone.Name,
		zone.Description,
		zone.UpdatedAt,
		zone.ID,
		zone.OrganizationID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update zone")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return fleetDomain.ErrZoneNotFound
	}
	return nil
}

// Delete removes a zone scoped to the organization. Vehicles and drivers in
// the zone have their assignment cleared by the foreign key.
func (p *PostgreSQLZoneRepository) Delete(
	ctx context.Context,
	organizationID, zoneID uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM zones WHERE id = $1 AND organization_id = $2`,
		zoneID,
		organizationID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete zone")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return fleetDomain.ErrZoneNotFound
	}
	return nil
}

func scanZone(row rowScanner) (*fleetDomain.Zone, error) {
	var zone fleetDomain.Zone

	err := row.Scan(
		&zone.ID,
		&zone.OrganizationID,
		&zone.Name,
		&zone.Description,
		&zone.CreatedAt,
		&zone.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fleetDomain.ErrZoneNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get zone")
	}

	return &zone, nil
}

func collectZones(rows *sql.Rows) ([]*fleetDomain.Zone, error) {
	zones := []*fleetDomain.Zone{}
	for rows.Next() {
		zone, err := scanZone(rows)
		if err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate zones")
	}
	return zones, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}
