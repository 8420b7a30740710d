package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authzUseCase "github.com/allisson/fleet/internal/authz/usecase"
)

// RunSeed seeds the capability registry and materializes the predefined role
// templates as system roles. Both steps are idempotent: existing rows are left
// untouched and the reported counts cover only rows actually created.
//
// Requirements: Database must be migrated and accessible.
func RunSeed(
	ctx context.Context,
	registryUseCase authzUseCase.RegistryUseCase,
	templateUseCase authzUseCase.TemplateUseCase,
	logger *slog.Logger,
	writer io.Writer,
) error {
	logger.Info("seeding capability registry")

	capabilityCount, err := registryUseCase.RegisterAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed capabilities: %w", err)
	}

	logger.Info("seeding predefined roles")

	roleCount, err := templateUseCase.SeedPredefinedRoles(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed predefined roles: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Capabilities created: %d\n", capabilityCount)
	_, _ = fmt.Fprintf(writer, "Predefined roles created: %d\n", roleCount)

	logger.Info("seeding completed successfully",
		slog.Int("capabilities_created", capabilityCount),
		slog.Int("roles_created", roleCount),
	)

	return nil
}
