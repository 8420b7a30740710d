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

// PostgreSQLDriverRepository implements Driver persistence for PostgreSQL.
type PostgreSQLDriverRepository struct {
	db *sql.DB
}

// NewPostgreSQLDriverRepository creates a new PostgreSQL Driver repository.
func NewPostgreSQLDriverRepository(db *sql.DB) *PostgreSQLDriverRepository {
	return &PostgreSQLDriverRepository{db: db}
}

const driverColumns = `id, organization_id, zone_id, user_id, name, license_number, status,
	created_at, updated_at`

// Create inserts a new Driver.
func (p *PostgreSQLDriverRepository) Create(ctx context.Context, driver *fleetDomain.Driver) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO drivers (id, organization_id, zone_id, user_id, name, license_number,
			  status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

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
func (p *PostgreSQLDriverRepository) Get(
	ctx context.Context,
	organizationID, driverID uuid.UUID,
) (*fleetDomain.Driver, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1 AND organization_id = $2`

	return scanDriver(querier.QueryRowContext(ctx, query, driverID, organizationID))
}

// List retrieves the organization's drivers with pagination. A non-empty
// zoneIDs filter restricts the result to drivers assigned to those zones.
func (p *PostgreSQLDriverRepository) List(
	ctx context.Context,
	organizationID uuid.UUID,
	zoneIDs []uuid.UUID,
	offset, limit int,
) ([]*fleetDomain.Driver, error) {
	querier := database.GetTx(ctx, p.db)

	var rows *sql.Rows
	var err error

	if len(zoneIDs) > 0 {
		query := `SELECT ` + driverColumns + ` FROM drivers
				  WHERE organization_id = $1 AND zone_id = ANY($2)
				  ORDER BY name LIMIT $3 OFFSET $4`
		rows, err = querier.QueryContext(ctx, query, organizationID, pq.Array(zoneIDs), limit, offset)
	} else {
		query := `SELECT ` + driverColumns + ` FROM drivers
				  WHERE organization_id = $1
				  ORDER BY name LIMIT $2 OFFSET $3`
		rows, err = querier.QueryContext(ctx, query, organizationID, limit, offset)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list drivers")
	}
	defer rows.Close()

	return collectDrivers(rows)
}

// Update modifies an existing driver's zone, name, and status.
func (p *PostgreSQLDriverRepository) Update(ctx context.Context, driver *fleetDomain.Driver) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE drivers
			  SET zone_id = $1,
			      user_id = $2,
			      name = $3,
			      status = $4,
			      updated_at = $5
			  WHERE id = $6 AND organization_id = $7`

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
func (p *PostgreSQLDriverRepository) Delete(
	ctx context.Context,
	organizationID, driverID uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM drivers WHERE id = $1 AND organization_id = $2`,
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

func scanDriver(row rowScanner) (*fleetDomain.Driver, error) {
	var driver fleetDomain.Driver
	var zoneID uuid.NullUUID
	var userID uuid.NullUUID

	err := row.Scan(
		&driver.ID,
		&driver.OrganizationID,
		&zoneID,
		&userID,
		&driver.Name,
		&driver.LicenseNumber,
		&driver.Status,
		&driver.CreatedAt,
		&driver.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fleetDomain.ErrDriverNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get driver")
	}

	if zoneID.Valid {
		driver.ZoneID = &zoneID.UUID
	}
	if userID.Valid {
		driver.UserID = &userID.UUID
	}

	return &driver, nil
}

func collectDrivers(rows *sql.Rows) ([]*fleetDomain.Driver, error) {
	drivers := []*fleetDomain.Driver{}
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate drivers")
	}
	return drivers, nil
}
