package app

import (
	"fmt"

	authzRepository "github.com/allisson/fleet/internal/authz/repository"
	authzUseCase "github.com/allisson/fleet/internal/authz/usecase"
)

// CapabilityRepository returns the capability repository instance.
func (c *Container) CapabilityRepository() (authzUseCase.CapabilityRepository, error) {
	var err error
	c.capabilityRepoInit.Do(func() {
		c.capabilityRepo, err = c.initCapabilityRepository()
		if err != nil {
			c.initErrors["capabilityRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["capabilityRepo"]; exists {
		return nil, storedErr
	}
	return c.capabilityRepo, nil
}

// RoleRepository returns the role repository instance.
func (c *Container) RoleRepository() (authzUseCase.RoleRepository, error) {
	var err error
	c.roleRepoInit.Do(func() {
		c.roleRepo, err = c.initRoleRepository()
		if err != nil {
			c.initErrors["roleRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["roleRepo"]; exists {
		return nil, storedErr
	}
	return c.roleRepo, nil
}

// GrantRepository returns the role capability grant repository instance.
func (c *Container) GrantRepository() (authzUseCase.GrantRepository, error) {
	var err error
	c.grantRepoInit.Do(func() {
		c.grantRepo, err = c.initGrantRepository()
		if err != nil {
			c.initErrors["grantRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["grantRepo"]; exists {
		return nil, storedErr
	}
	return c.grantRepo, nil
}

// RegistryUseCase returns the capability registry use case instance.
func (c *Container) RegistryUseCase() (authzUseCase.RegistryUseCase, error) {
	var err error
	c.registryUseCaseInit.Do(func() {
		c.registryUseCase, err = c.initRegistryUseCase()
		if err != nil {
			c.initErrors["registryUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["registryUseCase"]; exists {
		return nil, storedErr
	}
	return c.registryUseCase, nil
}

// TemplateUseCase returns the role template use case instance.
func (c *Container) TemplateUseCase() (authzUseCase.TemplateUseCase, error) {
	var err error
	c.templateUseCaseInit.Do(func() {
		c.templateUseCase, err = c.initTemplateUseCase()
		if err != nil {
			c.initErrors["templateUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["templateUseCase"]; exists {
		return nil, storedErr
	}
	return c.templateUseCase, nil
}

// RoleUseCase returns the role use case instance.
func (c *Container) RoleUseCase() (authzUseCase.RoleUseCase, error) {
	var err error
	c.roleUseCaseInit.Do(func() {
		c.roleUseCase, err = c.initRoleUseCase()
		if err != nil {
			c.initErrors["roleUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["roleUseCase"]; exists {
		return nil, storedErr
	}
	return c.roleUseCase, nil
}

// CheckUseCase returns the capability check use case instance.
// When metrics are enabled, checks are instrumented with operation counters.
func (c *Container) CheckUseCase() (authzUseCase.CheckUseCase, error) {
	var err error
	c.checkUseCaseInit.Do(func() {
		c.checkUseCase, err = c.initCheckUseCase()
		if err != nil {
			c.initErrors["checkUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["checkUseCase"]; exists {
		return nil, storedErr
	}
	return c.checkUseCase, nil
}

// initCapabilityRepository creates the capability repository instance.
func (c *Container) initCapabilityRepository() (authzUseCase.CapabilityRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for capability repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return authzRepository.NewMySQLCapabilityRepository(db), nil
	case "postgres":
		return authzRepository.NewPostgreSQLCapabilityRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRoleRepository creates the role repository instance.
func (c *Container) initRoleRepository() (authzUseCase.RoleRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for role repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return authzRepository.NewMySQLRoleRepository(db), nil
	case "postgres":
		return authzRepository.NewPostgreSQLRoleRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initGrantRepository creates the grant repository instance.
func (c *Container) initGrantRepository() (authzUseCase.GrantRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for grant repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return authzRepository.NewMySQLGrantRepository(db), nil
	case "postgres":
		return authzRepository.NewPostgreSQLGrantRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRegistryUseCase creates the capability registry use case with all its dependencies.
func (c *Container) initRegistryUseCase() (authzUseCase.RegistryUseCase, error) {
	capabilityRepo, err := c.CapabilityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability repository for registry use case: %w", err)
	}

	return authzUseCase.NewRegistryUseCase(capabilityRepo, c.Logger()), nil
}

// initTemplateUseCase creates the role template use case with all its dependencies.
func (c *Container) initTemplateUseCase() (authzUseCase.TemplateUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for template use case: %w", err)
	}

	roleRepo, err := c.RoleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get role repository for template use case: %w", err)
	}

	grantRepo, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for template use case: %w", err)
	}

	return authzUseCase.NewTemplateUseCase(txManager, roleRepo, grantRepo, c.Logger()), nil
}

// initRoleUseCase creates the role use case with all its dependencies.
func (c *Container) initRoleUseCase() (authzUseCase.RoleUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for role use case: %w", err)
	}

	roleRepo, err := c.RoleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get role repository for role use case: %w", err)
	}

	grantRepo, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for role use case: %w", err)
	}

	capabilityRepo, err := c.CapabilityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability repository for role use case: %w", err)
	}

	templateUseCase, err := c.TemplateUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get template use case for role use case: %w", err)
	}

	return authzUseCase.NewRoleUseCase(txManager, roleRepo, grantRepo, capabilityRepo, templateUseCase), nil
}

// initCheckUseCase creates the capability check use case with all its dependencies.
func (c *Container) initCheckUseCase() (authzUseCase.CheckUseCase, error) {
	membershipRepo, err := c.MembershipRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership repository for check use case: %w", err)
	}

	grantRepo, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for check use case: %w", err)
	}

	checkUseCase := authzUseCase.NewCheckUseCase(membershipRepo, grantRepo)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for check use case: %w", err)
		}
		checkUseCase = authzUseCase.NewCheckUseCaseWithMetrics(checkUseCase, businessMetrics)
	}

	return checkUseCase, nil
}
