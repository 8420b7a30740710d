package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
	fleetDomain "github.com/allisson/fleet/internal/fleet/domain"
)

// PostgreSQLVehicleRepository implements Vehicle persistence for PostgreSQL.
type PostgreSQLVehicleRepository struct {
	db *sql.DB
}

// NewPostgreSQLVehicleRepository creates a new PostgreSQL Vehicle repository.
func NewPostgreSQLVehicleRepository(db *sql.DB) *PostgreSQLVehicleRepository {
	return &PostgreSQLVehicleRepository{db: db}
}

const vehicleColumns = `id, organization_id, zone_id, plate_number, model, status, created_at, updated_at`

// Create inserts a new Vehicle.
func (p *PostgreSQLVehicleRepository) Create(ctx context.Context, vehicle *fleetDomain.Vehicle) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO vehicles (id, organization_id, zone_id, plate_number, model, status,
			  created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		vehicle.ID,
		vehicle.OrganizationID,
		vehicle.ZoneID,
		vehicle.PlateNumber,
		vehicle.Model,
		vehicle.Status,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create vehicle")
	}
	return nil
}

// Get retrieves a vehicle scoped to the organization. Returns ErrVehicleNotFound if absent.
func (p *PostgreSQLVehicleRepository) Get(
	ctx context.Context,
	organizationID, vehicleID uuid.UUID,
) (*fleetDomain.Vehicle, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 AND organization_id = $2`

	return scanVehicle(querier.QueryRowContext(ctx, query, vehicleID, organizationID))
}

// GetByPlate retrieves a vehicle by plate number inside the organization.
// Returns ErrVehicleNotFound if absent.
func (p *PostgreSQLVehicleRepository) GetByPlate(
	ctx context.Context,
	organizationID uuid.UUID,
	plateNumber string,
) (*fleetDomain.Vehicle, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + vehicleColumns + ` FROM vehicles
			  WHERE plate_number = $1 AND organization_id = $2`

	return scanVehicle(querier.QueryRowContext(ctx, query, plateNumber, organizationID))
}

// List retrieves the organization's vehicles with pagination. A non-empty
// zoneIDs filter restricts the result to vehicles assigned to those zones.
func (p *PostgreSQLVehicleRepository) List(
	ctx context.Context,
	organizationID uuid.UUID,
	zoneIDs []uuid.UUID,
	offset, limit int,
) ([]*fleetDomain.Vehicle, error) {
	querier := database.GetTx(ctx, p.db)

	var rows *sql.Rows
	var err error

	if len(zoneIDs) > 0 {
		query := `SELECT ` + vehicleColumns + ` FROM vehicles
				  WHERE organization_id = $1 AND zone_id = ANY($2)
				  ORDER BY plate_number LIMIT $3 OFFSET $4`
		rows, err = querier.QueryContext(ctx, query, organizationID, pq.Array(zoneIDs), limit, offset)
	} else {
		query := `SELECT ` + vehicleColumns + ` FROM vehicles
				  WHERE organization_id = $1
				  ORDER BY plate_number LIMIT $2 OFFSET $3`
		rows, err = querier.QueryContext(ctx, query, organizationID, limit, offset)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vehicles")
	}
	defer rows.Close()

	return collectVehicles(rows)
}

// Update modifies an existing vehicle's zone, model, and status.
func (p *PostgreSQLVehicleRepository) Update(ctx context.Context, vehicle *fleetDomain.Vehicle) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE vehicles
			  SET zone_id = $1,
			      model = $2,
			      status = $3,
			      updated_at = $4
			  WHERE id = $5 AND organization_id = $6`

	result, err := querier.ExecContext(
		ctx,
		query,
		vehicle.ZoneID,
		vehicle.Model,
		vehicle.Status,
		vehicle.UpdatedAt,
		vehicle.ID,
		vehicle.OrganizationID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update vehicle")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return fleetDomain.ErrVehicleNotFound
	}
	return nil
}

// Delete removes a vehicle scoped to the organization.
func (p *PostgreSQLVehicleRepository) Delete(
	ctx context.Context,
	organizationID, vehicleID uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM vehicles WHERE id = $1 AND organization_id = $2`,
		vehicleID,
		organizationID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete vehicle")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return fleetDomain.ErrVehicleNotFound
	}
	return nil
}

func scanVehicle(row rowScanner) (*fleetDomain.Vehicle, error) {
	var vehicle fleetDomain.Vehicle
	var zoneID uuid.NullUUID

	err := row.Scan(
		&vehicle.ID,
		&vehicle.OrganizationID,
		&zoneID,
		&vehicle.PlateNumber,
		&vehicle.Model,
		&vehicle.Status,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fleetDomain.ErrVehicleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get vehicle")
	}

	if zoneID.Valid {
		vehicle.ZoneID = &zoneID.UUID
	}

	return &vehicle, nil
}

func collectVehicles(rows *sql.Rows) ([]*fleetDomain.Vehicle, error) {
	vehicles := []*fleetDomain.Vehicle{}
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vehicles")
	}
	return vehicles, nil
}
