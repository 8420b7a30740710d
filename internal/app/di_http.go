package app

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	authzHTTP "github.com/allisson/fleet/internal/authz/http"
	fleetHTTP "github.com/allisson/fleet/internal/fleet/http"
	"github.com/allisson/fleet/internal/http"
	orgHTTP "github.com/allisson/fleet/internal/org/http"
	orgUseCase "github.com/allisson/fleet/internal/org/usecase"
)

// buildHandlers assembles every HTTP handler wired into the API router.
func (c *Container) buildHandlers() (http.Handlers, error) {
	logger := c.Logger()

	registryUseCase, err := c.RegistryUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get registry use case for handlers: %w", err)
	}

	templateUseCase, err := c.TemplateUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get template use case for handlers: %w", err)
	}

	roleUseCase, err := c.RoleUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get role use case for handlers: %w", err)
	}

	checkUseCase, err := c.CheckUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get check use case for handlers: %w", err)
	}

	organizationUseCase, err := c.OrganizationUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get organization use case for handlers: %w", err)
	}

	userUseCase, err := c.UserUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get user use case for handlers: %w", err)
	}

	membershipUseCase, err := c.MembershipUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get membership use case for handlers: %w", err)
	}

	zoneUseCase, err := c.ZoneUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get zone use case for handlers: %w", err)
	}

	vehicleUseCase, err := c.VehicleUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get vehicle use case for handlers: %w", err)
	}

	driverUseCase, err := c.DriverUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get driver use case for handlers: %w", err)
	}

	return http.Handlers{
		Capability:   authzHTTP.NewCapabilityHandler(registryUseCase, logger),
		Template:     authzHTTP.NewTemplateHandler(templateUseCase, logger),
		Role:         authzHTTP.NewRoleHandler(roleUseCase, logger),
		Check:        authzHTTP.NewCheckHandler(checkUseCase, logger),
		Organization: orgHTTP.NewOrganizationHandler(organizationUseCase, logger),
		User:         orgHTTP.NewUserHandler(userUseCase, logger),
		Membership:   orgHTTP.NewMembershipHandler(membershipUseCase, logger),
		Zone:         fleetHTTP.NewZoneHandler(zoneUseCase, logger),
		Vehicle:      fleetHTTP.NewVehicleHandler(vehicleUseCase, logger),
		Driver:       fleetHTTP.NewDriverHandler(driverUseCase, logger),
	}, nil
}

// orgHTTPAuthentication builds the bearer token authentication middleware.
func orgHTTPAuthentication(
	userUseCase orgUseCase.UserUseCase,
	organizationUseCase orgUseCase.OrganizationUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return orgHTTP.AuthenticationMiddleware(userUseCase, organizationUseCase, logger)
}
