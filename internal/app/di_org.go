package app

import (
	"fmt"

	orgRepository "github.com/allisson/fleet/internal/org/repository"
	orgService "github.com/allisson/fleet/internal/org/service"
	orgUseCase "github.com/allisson/fleet/internal/org/usecase"
)

// OrganizationRepository returns the organization repository instance.
func (c *Container) OrganizationRepository() (orgUseCase.OrganizationRepository, error) {
	var err error
	c.organizationRepoInit.Do(func() {
		c.organizationRepo, err = c.initOrganizationRepository()
		if err != nil {
			c.initErrors["organizationRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["organizationRepo"]; exists {
		return nil, storedErr
	}
	return c.organizationRepo, nil
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (orgUseCase.UserRepository, error) {
	var err error
	c.userRepoInit.Do(func() {
		c.userRepo, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// MembershipRepository returns the membership repository instance.
func (c *Container) MembershipRepository() (orgUseCase.MembershipRepository, error) {
	var err error
	c.membershipRepoInit.Do(func() {
		c.membershipRepo, err = c.initMembershipRepository()
		if err != nil {
			c.initErrors["membershipRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["membershipRepo"]; exists {
		return nil, storedErr
	}
	return c.membershipRepo, nil
}

// TokenService returns the API token service instance.
func (c *Container) TokenService() orgService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = orgService.NewTokenService()
	})
	return c.tokenService
}

// OrganizationUseCase returns the organization use case instance.
func (c *Container) OrganizationUseCase() (orgUseCase.OrganizationUseCase, error) {
	var err error
	c.organizationUseCaseInit.Do(func() {
		c.organizationUseCase, err = c.initOrganizationUseCase()
		if err != nil {
			c.initErrors["organizationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["organizationUseCase"]; exists {
		return nil, storedErr
	}
	return c.organizationUseCase, nil
}

// UserUseCase returns the user use case instance.
func (c *Container) UserUseCase() (orgUseCase.UserUseCase, error) {
	var err error
	c.userUseCaseInit.Do(func() {
		c.userUseCase, err = c.initUserUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// MembershipUseCase returns the membership use case instance.
func (c *Container) MembershipUseCase() (orgUseCase.MembershipUseCase, error) {
	var err error
	c.membershipUseCaseInit.Do(func() {
		c.membershipUseCase, err = c.initMembershipUseCase()
		if err != nil {
			c.initErrors["membershipUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["membershipUseCase"]; exists {
		return nil, storedErr
	}
	return c.membershipUseCase, nil
}

// initOrganizationRepository creates the organization repository instance.
func (c *Container) initOrganizationRepository() (orgUseCase.OrganizationRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for organization repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return orgRepository.NewMySQLOrganizationRepository(db), nil
	case "postgres":
		return orgRepository.NewPostgreSQLOrganizationRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initUserRepository creates the user repository instance.
func (c *Container) initUserRepository() (orgUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return orgRepository.NewMySQLUserRepository(db), nil
	case "postgres":
		return orgRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMembershipRepository creates the membership repository instance.
func (c *Container) initMembershipRepository() (orgUseCase.MembershipRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for membership repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return orgRepository.NewMySQLMembershipRepository(db), nil
	case "postgres":
		return orgRepository.NewPostgreSQLMembershipRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initOrganizationUseCase creates the organization use case with all its dependencies.
func (c *Container) initOrganizationUseCase() (orgUseCase.OrganizationUseCase, error) {
	organizationRepo, err := c.OrganizationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get organization repository for organization use case: %w", err)
	}

	return orgUseCase.NewOrganizationUseCase(organizationRepo), nil
}

// initUserUseCase creates the user use case with all its dependencies.
func (c *Container) initUserUseCase() (orgUseCase.UserUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	useCase, err := orgUseCase.NewUserUseCase(userRepo, c.TokenService())
	if err != nil {
		return nil, fmt.Errorf("failed to create user use case: %w", err)
	}

	return useCase, nil
}

// initMembershipUseCase creates the membership use case with all its dependencies.
func (c *Container) initMembershipUseCase() (orgUseCase.MembershipUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for membership use case: %w", err)
	}

	membershipRepo, err := c.MembershipRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership repository for membership use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for membership use case: %w", err)
	}

	roleRepo, err := c.RoleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get role repository for membership use case: %w", err)
	}

	return orgUseCase.NewMembershipUseCase(txManager, membershipRepo, userRepo, roleRepo), nil
}
