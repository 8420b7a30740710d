// Package http provides the HTTP server and route wiring for the API.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	authzHTTP "github.com/allisson/fleet/internal/authz/http"
	authzUseCase "github.com/allisson/fleet/internal/authz/usecase"
	fleetHTTP "github.com/allisson/fleet/internal/fleet/http"
	orgHTTP "github.com/allisson/fleet/internal/org/http"
)

// ServerConfig holds the settings used to build the API server.
type ServerConfig struct {
	Host                    string
	Port                    int
	CORSEnabled             bool
	CORSAllowOrigins        string
	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int
}

// Handlers groups every HTTP handler wired into the API router.
type Handlers struct {
	Capability   *authzHTTP.CapabilityHandler
	Template     *authzHTTP.TemplateHandler
	Role         *authzHTTP.RoleHandler
	Check        *authzHTTP.CheckHandler
	Organization *orgHTTP.OrganizationHandler
	User         *orgHTTP.UserHandler
	Membership   *orgHTTP.MembershipHandler
	Zone         *fleetHTTP.ZoneHandler
	Vehicle      *fleetHTTP.VehicleHandler
	Driver       *fleetHTTP.DriverHandler
}

// Server represents the API HTTP server.
type Server struct {
	config         ServerConfig
	server         *http.Server
	logger         *slog.Logger
	handlers       Handlers
	authentication gin.HandlerFunc
	checkUseCase   authzUseCase.CheckUseCase
}

// NewServer creates a new API server. The authentication middleware resolves
// the caller from the bearer token and organization header; capability checks
// per route are wired here.
func NewServer(
	config ServerConfig,
	handlers Handlers,
	authentication gin.HandlerFunc,
	checkUseCase authzUseCase.CheckUseCase,
	logger *slog.Logger,
) *Server {
	return &Server{
		config:         config,
		logger:         logger,
		handlers:       handlers,
		authentication: authentication,
		checkUseCase:   checkUseCase,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Router builds the gin router with all routes registered. Exposed for
// handler tests; Start uses it with the server lifecycle context.
func (s *Server) Router(ctx context.Context) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(LoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		s.config.CORSEnabled,
		s.config.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", HealthHandler())
	router.GET("/ready", ReadinessHandler(ctx))

	v1 := router.Group("/v1")
	v1.Use(s.authentication)

	if s.config.RateLimitEnabled {
		v1.Use(orgHTTP.RateLimitMiddleware(
			s.config.RateLimitRequestsPerSec,
			s.config.RateLimitBurst,
			s.logger,
		))
	}

	s.registerAuthzRoutes(v1)
	s.registerOrgRoutes(v1)
	s.registerFleetRoutes(v1)

	return router
}

// requireCapability gates a route group behind a capability check.
func (s *Server) requireCapability(key string, minLevel authzDomain.AccessLevel) gin.HandlerFunc {
	return authzHTTP.RequireCapability(s.checkUseCase, key, minLevel, s.logger)
}

func (s *Server) registerAuthzRoutes(v1 *gin.RouterGroup) {
	roleView := s.requireCapability("role.manage", authzDomain.AccessLevelView)
	roleFull := s.requireCapability("role.manage", authzDomain.AccessLevelFull)

	capabilities := v1.Group("/capabilities")
	capabilities.GET("", roleView, s.handlers.Capability.ListHandler)
	capabilities.GET("/:key", roleView, s.handlers.Capability.GetHandler)

	templates := v1.Group("/role-templates")
	templates.GET("", roleView, s.handlers.Template.ListHandler)
	templates.GET("/:key", roleView, s.handlers.Template.GetHandler)
	templates.POST("/merge", roleView, s.handlers.Template.MergeHandler)
	templates.POST("/compare", roleView, s.handlers.Template.CompareHandler)

	roles := v1.Group("/roles")
	roles.POST("", roleFull, s.handlers.Role.CreateHandler)
	roles.GET("", roleView, s.handlers.Role.ListHandler)
	roles.GET("/:id", roleView, s.handlers.Role.GetHandler)
	roles.PUT("/:id", roleFull, s.handlers.Role.UpdateHandler)
	roles.DELETE("/:id", roleFull, s.handlers.Role.DeleteHandler)
	roles.GET("/:id/grants", roleView, s.handlers.Role.ListGrantsHandler)
	roles.PUT("/:id/grants", roleFull, s.handlers.Role.SetGrantHandler)
	roles.DELETE("/:id/grants/:capability_key", roleFull, s.handlers.Role.RemoveGrantHandler)

	// The check endpoint only needs authentication; denial is a valid answer.
	v1.POST("/authz/check", s.handlers.Check.CheckHandler)
}

func (s *Server) registerOrgRoutes(v1 *gin.RouterGroup) {
	organizations := v1.Group("/organizations")
	organizations.POST(
		"",
		s.requireCapability("organization.manage", authzDomain.AccessLevelFull),
		s.handlers.Organization.CreateHandler,
	)
	organizations.GET("/current", s.handlers.Organization.GetCurrentHandler)

	userFull := s.requireCapability("user.manage", authzDomain.AccessLevelFull)

	users := v1.Group("/users")
	users.POST("", userFull, s.handlers.User.RegisterHandler)
	users.GET("/me", s.handlers.User.GetMeHandler)
	users.POST("/me/token", s.handlers.User.RotateTokenHandler)
	users.DELETE("/:id", userFull, s.handlers.User.DeactivateHandler)

	assignFull := s.requireCapability("role.assign", authzDomain.AccessLevelFull)

	memberships := v1.Group("/memberships")
	memberships.PUT("", assignFull, s.handlers.Membership.AssignRoleHandler)
	memberships.GET(
		"",
		s.requireCapability("user.manage", authzDomain.AccessLevelView),
		s.handlers.Membership.ListHandler,
	)
	memberships.DELETE("/:user_id", assignFull, s.handlers.Membership.RemoveHandler)
}

func (s *Server) registerFleetRoutes(v1 *gin.RouterGroup) {
	zoneView := s.requireCapability("zone.manage", authzDomain.AccessLevelView)
	zoneFull := s.requireCapability("zone.manage", authzDomain.AccessLevelFull)

	zones := v1.Group("/zones")
	zones.POST("", zoneFull, s.handlers.Zone.CreateHandler)
	zones.GET("", zoneView, s.handlers.Zone.ListHandler)
	zones.GET("/:id", zoneView, s.handlers.Zone.GetHandler)
	zones.PUT("/:id", zoneFull, s.handlers.Zone.UpdateHandler)
	zones.DELETE("/:id", zoneFull, s.handlers.Zone.DeleteHandler)

	vehicleView := s.requireCapability("vehicle.manage", authzDomain.AccessLevelView)
	vehicleFull := s.requireCapability("vehicle.manage", authzDomain.AccessLevelFull)

	vehicles := v1.Group("/vehicles")
	vehicles.POST("", vehicleFull, s.handlers.Vehicle.CreateHandler)
	vehicles.GET("", vehicleView, s.handlers.Vehicle.ListHandler)
	vehicles.GET("/:id", vehicleView, s.handlers.Vehicle.GetHandler)
	vehicles.PUT(
		"/:id/zone",
		s.requireCapability("vehicle.assign", authzDomain.AccessLevelFull),
		s.handlers.Vehicle.AssignZoneHandler,
	)
	vehicles.PUT(
		"/:id/status",
		s.requireCapability("vehicle.manage", authzDomain.AccessLevelLimited),
		s.handlers.Vehicle.UpdateStatusHandler,
	)
	vehicles.DELETE("/:id", vehicleFull, s.handlers.Vehicle.DeleteHandler)

	driverView := s.requireCapability("driver.manage", authzDomain.AccessLevelView)
	driverFull := s.requireCapability("driver.manage", authzDomain.AccessLevelFull)

	drivers := v1.Group("/drivers")
	drivers.POST("", driverFull, s.handlers.Driver.CreateHandler)
	drivers.GET("", driverView, s.handlers.Driver.ListHandler)
	drivers.GET("/:id", driverView, s.handlers.Driver.GetHandler)
	drivers.PUT("/:id/zone", driverFull, s.handlers.Driver.AssignZoneHandler)
	drivers.PUT(
		"/:id/status",
		s.requireCapability("driver.schedule", authzDomain.AccessLevelLimited),
		s.handlers.Driver.UpdateStatusHandler,
	)
	drivers.DELETE("/:id", driverFull, s.handlers.Driver.DeleteHandler)
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.Router(ctx)

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
