package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/fleet/internal/app"
	"github.com/allisson/fleet/internal/config"
)

// RunServer starts the HTTP server with graceful shutdown support.
// Loads configuration, initializes the DI container, optionally seeds the
// capability registry and predefined roles, and starts the Gin HTTP server.
// Blocks until receiving SIGINT/SIGTERM or encountering a fatal error. On
// shutdown signal, gracefully stops the server within DBConnMaxLifetime timeout.
func RunServer(ctx context.Context, version string) error {
	// Load configuration
	cfg := config.Load()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Set Gin mode based on log level
	gin.SetMode(cfg.GetGinMode())

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Seed the capability registry and predefined roles before serving traffic.
	// A seeding failure is logged and skipped so a replica racing another
	// replica's seed run does not refuse to start.
	if cfg.SeedOnStartup {
		if err := seedOnStartup(ctx, container, logger); err != nil {
			logger.Warn("startup seeding failed, continuing", slog.Any("error", err))
		}
	}

	// Get HTTP server from container (this initializes all dependencies)
	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	// Get Metrics server from container
	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start servers; a failure in one cancels the group context
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.Start(groupCtx); err != nil {
			return fmt.Errorf("api server error: %w", err)
		}
		return nil
	})

	if metricsServer != nil {
		group.Go(func() error {
			if err := metricsServer.Start(groupCtx); err != nil {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	// Wait for shutdown signal or server error
	<-groupCtx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.DBConnMaxLifetime)
	defer shutdownCancel()

	var shutdownErrors []error

	if err := server.Shutdown(shutdownCtx); err != nil {
		shutdownErrors = append(shutdownErrors, fmt.Errorf("api server shutdown: %w", err))
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if err := group.Wait(); err != nil {
		shutdownErrors = append(shutdownErrors, err)
	}

	return errors.Join(shutdownErrors...)
}

// seedOnStartup seeds the capability registry and predefined roles.
func seedOnStartup(ctx context.Context, container *app.Container, logger *slog.Logger) error {
	registryUseCase, err := container.RegistryUseCase()
	if err != nil {
		return fmt.Errorf("failed to get registry use case: %w", err)
	}

	templateUseCase, err := container.TemplateUseCase()
	if err != nil {
		return fmt.Errorf("failed to get template use case: %w", err)
	}

	capabilityCount, err := registryUseCase.RegisterAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed capabilities: %w", err)
	}

	roleCount, err := templateUseCase.SeedPredefinedRoles(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed predefined roles: %w", err)
	}

	logger.Info("startup seeding completed",
		slog.Int("capabilities_created", capabilityCount),
		slog.Int("roles_created", roleCount),
	)

	return nil
}
