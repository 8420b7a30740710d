package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
	fleetDomain "github.com/allisson/fleet/internal/fleet/domain"
)

// MySQLVehicleRepository implements Vehicle persistence for MySQL.
type MySQLVehicleRepository struct {
	db *sql.DB
}

// NewMySQLVehicleRepository creates a new MySQL Vehicle repository.
func NewMySQLVehicleRepository(db *sql.DB) *MySQLVehicleRepository {
	return &MySQLVehicleRepository{db: db}
}

// Create inserts a new Vehicle.
func (m *MySQLVehicleRepository) Create(ctx context.Context, vehicle *fleetDomain.Vehicle) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO vehicles (id, organization_id, zone_id, plate_number, model, status,
			  created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

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
func (m *MySQLVehicleRepository) Get(
	ctx context.Context,
	organizationID, vehicleID uuid.UUID,
) (*fleetDomain.Vehicle, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = ? AND organization_id = ?`

	return scanVehicle(querier.QueryRowContext(ctx, query, vehicleID, organizationID))
}

// GetByPlate retrieves a vehicle by plate number inside the organization.
// Returns ErrVehicleNotFound if absent.
func (m *MySQLVehicleRepository) GetByPlate(
	ctx context.Context,
	organizationID uuid.UUID,
	plateNumber string,
) (*fleetDomain.Vehicle, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + vehicleColumns + ` FROM vehicles
			  WHERE plate_number = ? AND organization_id = ?`

	return scanVehicle(querier.QueryRowContext(ctx, query, plateNumber, organizationID))
}

// List retrieves the organization's vehicles with pagination. A non-empty
// zoneIDs filter restricts the result to vehicles assigned to those zones.
func (m *MySQLVehicleRepository) List(
	ctx context.Context,
	organizationID uuid.UUID,
	zoneIDs []uuid.UUID,
	offset, limit int,
) ([]*fleetDomain.Vehicle, error) {
	querier := database.GetTx(ctx, m.db)

	var rows *sql.Rows
	var err error

	if len(zoneIDs) > 0 {
		query := `SELECT ` + vehicleColumns + ` FROM vehicles
				  WHERE organization_id = ? AND zone_id IN (` + placeholders(len(zoneIDs)) + `)
				  ORDER BY plate_number LIMIT ? OFFSET ?`

		args := make([]any, 0, len(zoneIDs)+3)
		args = append(args, organizationID)
		for _, zoneID := range zoneIDs {
			args = append(args, zoneID)
		}
		args = append(args, limit, offset)

		rows, err = querier.QueryContext(ctx, query, args...)
	} else {
		query := `SELECT ` + vehicleColumns + ` FROM vehicles
				  WHERE organization_id = ?
				  ORDER BY plate_number LIMIT ? OFFSET ?`
		rows, err = querier.QueryContext(ctx, query, organizationID, limit, offset)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vehicles")
	}
	defer rows.Close()

	return collectVehicles(rows)
}

// Update modifies an existing vehicle's zone, model, and status.
func (m *MySQLVehicleRepository) Update(ctx context.Context, vehicle *fleetDomain.Vehicle) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE vehicles
			  SET zone_id = ?,
			      model = ?,
			      status = ?,
			      updated_at = ?
			  WHERE id = ? AND organization_id = ?`

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
func (m *MySQLVehicleRepository) Delete(
	ctx context.Context,
	organizationID, vehicleID uuid.UUID,
) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM vehicles WHERE id = ? AND organization_id = ?`,
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

// placeholders builds a comma-separated list of n MySQL placeholders.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
