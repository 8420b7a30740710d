package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
	fleetDomain "github.com/allisson/fleet/internal/fleet/domain"
)

// MySQLDriverRepository implements Driver persistence for MySQL.
type MySQLDriverRepository struct {
	db *sql.DB
}

// NewMySQLDriverRepository creates a new MySQL Driver repository.
func NewMySQLDriverRepository(db *sql.DB) *MySQLDriverRepository {
	return &MySQLDriverRepository{db: db}
}

// Create inserts a new Driver.
func (m *MySQLDriverRepository) Create(ctx context.Context, driver *fleetDomain.Driver) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO drivers (id, organization_id, zone_id, user_id, name, license_number,
			  status, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		driver.ID,
		driver.OrganizationID,
		driver.ZoneID,
		driver.UserID,
		driver.Name,
		driver.LicenseNumber,
		driver.Status,
		driver.CreatedAt,
		driver.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create driver")
	}
	return nil
}

// Get retrieves a driver scoped to the organization. Returns ErrDriverNotFound if absent.
func (m *MySQLDriverRepository) Get(
	ctx context.Context,
	organizationID, driverID uuid.UUID,
) (*fleetDomain.Driver, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = ? AND organization_id = ?`

	return scanDriver(querier.QueryRowContext(ctx, query, driverID, organizationID))
}

// List retrieves the organization's drivers with pagination. A non-empty
// zoneIDs filter restricts the result to drivers assigned to those zones.
func (m *MySQLDriverRepository) List(
	ctx context.Context,
	organizationID uuid.UUID,
	zoneIDs []uuid.UUID,
	offset, limit int,
) ([]*fleetDomain.Driver, error) {
	querier := database.GetTx(ctx, m.db)

	var rows *sql.Rows
	var err error

	if len(zoneIDs) > 0 {
		query := `SELECT ` + driverColumns + ` FROM drivers
				  WHERE organization_id = ? AND zone_id IN (` + placeholders(len(zoneIDs)) + `)
				  ORDER BY name LIMIT ? OFFSET ?`

		args := make([]any, 0, len(zoneIDs)+3)
		args = append(args, organizationID)
		for _, zoneID := range zoneIDs {
			args = append(args, zoneID)
		}
		args = append(args, limit, offset)

		rows, err = querier.QueryContext(ctx, query, args...)
	} else {
		query := `SELECT ` + driverColumns + ` FROM drivers
				  WHERE organization_id = ?
				  ORDER BY name LIMIT ? OFFSET ?`
		rows, err = querier.QueryContext(ctx, query, organizationID, limit, offset)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list drivers")
	}
	defer rows.Close()

	return collectDrivers(rows)
}

// Update modifies an existing driver's zone, name, and status.
func (m *MySQLDriverRepository) Update(ctx context.Context, driver *fleetDomain.Driver) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE drivers
			  SET zone_id = ?,
			      user_id = ?,
			      name = ?,
			      status = ?,
			      updated_at = ?
			  WHERE id = ? AND organization_id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		driver.ZoneID,
		driver.UserID,
		driver.Name,
		driver.Status,
		driver.UpdatedAt,
		driver.ID,
		driver.OrganizationID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update driver")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return fleetDomain.ErrDriverNotFound
	}
	return nil
}

// Delete removes a driver scoped to the organization.
func (m *MySQLDriverRepository) Delete(
	ctx context.Context,
	organizationID, driverID uuid.UUID,
) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM drivers WHERE id = ? AND organization_id = ?`,
		driverID,
		organizationID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete driver")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return fleetDomain.ErrDriverNotFound
	}
	return nil
}
