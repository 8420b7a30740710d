// Package usecase implements business logic orchestration for authorization operations.
package usecase

import (
	"context"
	"log/slog"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	apperrors "github.com/allisson/fleet/internal/errors"
)

// registryUseCase implements RegistryUseCase over the capability repository.
type registryUseCase struct {
	capabilityRepo CapabilityRepository
	logger         *slog.Logger
}

// NewRegistryUseCase creates a new RegistryUseCase with the provided dependencies.
func NewRegistryUseCase(capabilityRepo CapabilityRepository, logger *slog.Logger) RegistryUseCase {
	return &registryUseCase{
		capabilityRepo: capabilityRepo,
		logger:         logger,
	}
}

// RegisterAll seeds the fixed capability catalog. Existing rows are never
// modified: the first write wins, which keeps system-critical definitions from
// being down-specified by a later deployment. When an existing row diverges
// from the catalog the divergence is logged so operators can see it.
func (r *registryUseCase) RegisterAll(ctx context.Context) (int, error) {
	definitions := authzDomain.CapabilityDefinitions()

	inserted, err := r.capabilityRepo.SeedAll(ctx, definitions)
	if err != nil {
		return inserted, apperrors.Wrap(err, "failed to register capabilities")
	}

	if inserted > 0 {
		r.logger.Info("capability registry seeded",
			slog.Int("inserted", inserted),
			slog.Int("catalog_size", len(definitions)),
		)
	}

	if inserted < len(definitions) {
		r.logDivergence(ctx, definitions)
	}

	return inserted, nil
}

// Get retrieves a capability definition by key.
func (r *registryUseCase) Get(ctx context.Context, key string) (*authzDomain.Capability, error) {
	return r.capabilityRepo.Get(ctx, key)
}

// ListByCategory retrieves capabilities tagged with the category.
func (r *registryUseCase) ListByCategory(
	ctx context.Context,
	category authzDomain.FeatureCategory,
) ([]*authzDomain.Capability, error) {
	if !category.IsValid() {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unknown feature category")
	}
	return r.capabilityRepo.ListByCategory(ctx, category)
}

// List retrieves the whole registry.
func (r *registryUseCase) List(ctx context.Context) ([]*authzDomain.Capability, error) {
	return r.capabilityRepo.List(ctx)
}

// logDivergence warns when a stored capability no longer matches its catalog
// definition. Nothing is corrected: seeding is strictly insert-if-absent.
func (r *registryUseCase) logDivergence(ctx context.Context, definitions []authzDomain.Capability) {
	for _, definition := range definitions {
		stored, err := r.capabilityRepo.Get(ctx, definition.Key)
		if err != nil {
			continue
		}

		if stored.IsSystemCritical != definition.IsSystemCritical ||
			len(stored.AccessLevels) != len(definition.AccessLevels) {
			r.logger.Warn("stored capability diverges from catalog definition",
				slog.String("capability_key", definition.Key),
			)
		}
	}
}
