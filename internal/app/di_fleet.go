package app

import (
	"fmt"

	fleetRepository "github.com/allisson/fleet/internal/fleet/repository"
	fleetUseCase "github.com/allisson/fleet/internal/fleet/usecase"
)

// ZoneRepository returns the zone repository instance.
func (c *Container) ZoneRepository() (fleetUseCase.ZoneRepository, error) {
	var err error
	c.zoneRepoInit.Do(func() {
		c.zoneRepo, err = c.initZoneRepository()
		if err != nil {
			c.initErrors["zoneRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["zoneRepo"]; exists {
		return nil, storedErr
	}
	return c.zoneRepo, nil
}

// VehicleRepository returns the vehicle repository instance.
func (c *Container) VehicleRepository() (fleetUseCase.VehicleRepository, error) {
	var err error
	c.vehicleRepoInit.Do(func() {
		c.vehicleRepo, err = c.initVehicleRepository()
		if err != nil {
			c.initErrors["vehicleRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vehicleRepo"]; exists {
		return nil, storedErr
	}
	return c.vehicleRepo, nil
}

// DriverRepository returns the driver repository instance.
func (c *Container) DriverRepository() (fleetUseCase.DriverRepository, error) {
	var err error
	c.driverRepoInit.Do(func() {
		c.driverRepo, err = c.initDriverRepository()
		if err != nil {
			c.initErrors["driverRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["driverRepo"]; exists {
		return nil, storedErr
	}
	return c.driverRepo, nil
}

// ZoneUseCase returns the zone use case instance.
func (c *Container) ZoneUseCase() (fleetUseCase.ZoneUseCase, error) {
	var err error
	c.zoneUseCaseInit.Do(func() {
		c.zoneUseCase, err = c.initZoneUseCase()
		if err != nil {
			c.initErrors["zoneUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["zoneUseCase"]; exists {
		return nil, storedErr
	}
	return c.zoneUseCase, nil
}

// VehicleUseCase returns the vehicle use case instance.
func (c *Container) VehicleUseCase() (fleetUseCase.VehicleUseCase, error) {
	var err error
	c.vehicleUseCaseInit.Do(func() {
		c.vehicleUseCase, err = c.initVehicleUseCase()
		if err != nil {
			c.initErrors["vehicleUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vehicleUseCase"]; exists {
		return nil, storedErr
	}
	return c.vehicleUseCase, nil
}

// DriverUseCase returns the driver use case instance.
func (c *Container) DriverUseCase() (fleetUseCase.DriverUseCase, error) {
	var err error
	c.driverUseCaseInit.Do(func() {
		c.driverUseCase, err = c.initDriverUseCase()
		if err != nil {
			c.initErrors["driverUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["driverUseCase"]; exists {
		return nil, storedErr
	}
	return c.driverUseCase, nil
}

// initZoneRepository creates the zone repository instance.
func (c *Container) initZoneRepository() (fleetUseCase.ZoneRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for zone repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return fleetRepository.NewMySQLZoneRepository(db), nil
	case "postgres":
		return fleetRepository.NewPostgreSQLZoneRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initVehicleRepository creates the vehicle repository instance.
func (c *Container) initVehicleRepository() (fleetUseCase.VehicleRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for vehicle repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return fleetRepository.NewMySQLVehicleRepository(db), nil
	case "postgres":
		return fleetRepository.NewPostgreSQLVehicleRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initDriverRepository creates the driver repository instance.
func (c *Container) initDriverRepository() (fleetUseCase.DriverRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for driver repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return fleetRepository.NewMySQLDriverRepository(db), nil
	case "postgres":
		return fleetRepository.NewPostgreSQLDriverRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initZoneUseCase creates the zone use case with all its dependencies.
func (c *Container) initZoneUseCase() (fleetUseCase.ZoneUseCase, error) {
	zoneRepo, err := c.ZoneRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get zone repository for zone use case: %w", err)
	}

	return fleetUseCase.NewZoneUseCase(zoneRepo), nil
}

// initVehicleUseCase creates the vehicle use case with all its dependencies.
func (c *Container) initVehicleUseCase() (fleetUseCase.VehicleUseCase, error) {
	vehicleRepo, err := c.VehicleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle repository for vehicle use case: %w", err)
	}

	zoneRepo, err := c.ZoneRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get zone repository for vehicle use case: %w", err)
	}

	return fleetUseCase.NewVehicleUseCase(vehicleRepo, zoneRepo), nil
}

// initDriverUseCase creates the driver use case with all its dependencies.
func (c *Container) initDriverUseCase() (fleetUseCase.DriverUseCase, error) {
	driverRepo, err := c.DriverRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get driver repository for driver use case: %w", err)
	}

	zoneRepo, err := c.ZoneRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get zone repository for driver use case: %w", err)
	}

	return fleetUseCase.NewDriverUseCase(driverRepo, zoneRepo), nil
}
