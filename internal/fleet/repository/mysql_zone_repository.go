package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
	fleetDomain "github.com/allisson/fleet/internal/fleet/domain"
)

// MySQLZoneRepository implements Zone persistence for MySQL.
type MySQLZoneRepository struct {
	db *sql.DB
}

// NewMySQLZoneRepository creates a new MySQL Zone repository.
func NewMySQLZoneRepository(db *sql.DB) *MySQLZoneRepository {
	return &MySQLZoneRepository{db: db}
}

// Create inserts a new Zone.
func (m *MySQLZoneRepository) Create(ctx context.Context, zone *fleetDomain.Zone) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO zones (id, organization_id, name, description, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

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
func (m *MySQLZoneRepository) Get(
	ctx context.Context,
	organizationID, zoneID uuid.UUID,
) (*fleetDomain.Zone, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + zoneColumns + ` FROM zones WHERE id = ? AND organization_id = ?`

	return scanZone(querier.QueryRowContext(ctx, query, zoneID, organizationID))
}

// ListByOrganization retrieves the organization's zones ordered by name.
func (m *MySQLZoneRepository) ListByOrganization(
	ctx context.Context,
	organizationID uuid.UUID,
) ([]*fleetDomain.Zone, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + zoneColumns + ` FROM zones WHERE organization_id = ? ORDER BY name`

	rows, err := querier.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list zones")
	}
	defer rows.Close()

	return collectZones(rows)
}

// Update modifies an existing zone's name and description.
func (m *MySQLZoneRepository) Update(ctx context.Context, zone *fleetDomain.Zone) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE zones
			  SET name = ?,
			      description = ?,
			      updated_at = ?
			  WHERE id = ? AND organization_id = ?`

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
func (m *MySQLZoneRepository) Delete(
	ctx context.Context,
	organizationID, zoneID uuid.UUID,
) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM zones WHERE id = ? AND organization_id = ?`,
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
