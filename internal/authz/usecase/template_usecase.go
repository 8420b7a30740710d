package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
)

// templateUseCase implements TemplateUseCase over the in-memory template
// catalog and the role/grant repositories.
type templateUseCase struct {
	txManager database.TxManager
	roleRepo  RoleRepository
	grantRepo GrantRepository
	logger    *slog.Logger

	templates map[string]authzDomain.RoleTemplate
	order     []string
}

// NewTemplateUseCase creates a new TemplateUseCase with the provided dependencies.
func NewTemplateUseCase(
	txManager database.TxManager,
	roleRepo RoleRepository,
	grantRepo GrantRepository,
	logger *slog.Logger,
) TemplateUseCase {
	catalog := authzDomain.RoleTemplates()
	templates := make(map[string]authzDomain.RoleTemplate, len(catalog))
	order := make([]string, 0, len(catalog))
	for _, template := range catalog {
		templates[template.RoleKey] = template
		order = append(order, template.RoleKey)
	}

	return &templateUseCase{
		txManager: txManager,
		roleRepo:  roleRepo,
		grantRepo: grantRepo,
		logger:    logger,
		templates: templates,
		order:     order,
	}
}

// List returns the predefined templates in catalog order.
func (t *templateUseCase) List() []authzDomain.RoleTemplate {
	templates := make([]authzDomain.RoleTemplate, 0, len(t.order))
	for _, key := range t.order {
		templates = append(templates, t.templates[key])
	}
	return templates
}

// Get returns the template for the role key.
func (t *templateUseCase) Get(roleKey string) (*authzDomain.RoleTemplate, error) {
	template, ok := t.templates[roleKey]
	if !ok {
		return nil, authzDomain.ErrTemplateNotFound
	}
	return &template, nil
}

// SeedPredefinedRoles creates a system role and its grants for every template
// not yet present in storage. Inserts use conflict-ignoring semantics, so
// running it on every startup, or concurrently from several instances, never
// duplicates rows: at worst one instance's insert is a no-op.
func (t *templateUseCase) SeedPredefinedRoles(ctx context.Context) (int, error) {
	created := 0

	for _, key := range t.order {
		template := t.templates[key]

		err := t.txManager.WithTx(ctx, func(ctx context.Context) error {
			role := &authzDomain.Role{
				ID:           uuid.Must(uuid.NewV7()),
				RoleKey:      template.RoleKey,
				Name:         template.Name,
				Description:  template.Description,
				IsSystemRole: true,
				CreatedAt:    time.Now().UTC(),
				UpdatedAt:    time.Now().UTC(),
			}

			inserted, err := t.roleRepo.CreateIfAbsent(ctx, role)
			if err != nil {
				return err
			}
			if inserted {
				created++
			} else {
				// Another instance (or a previous run) created the role;
				// reuse its ID so missing grants still get filled in.
				existing, err := t.roleRepo.GetByKey(ctx, nil, template.RoleKey)
				if err != nil {
					return err
				}
				role = existing
			}

			for capabilityKey, level := range template.Grants {
				grant := &authzDomain.RoleCapabilityGrant{
					ID:            uuid.Must(uuid.NewV7()),
					RoleID:        role.ID,
					CapabilityKey: capabilityKey,
					AccessLevel:   level,
					CreatedAt:     time.Now().UTC(),
				}
				if _, err := t.grantRepo.CreateIfAbsent(ctx, grant); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return created, apperrors.Wrap(err, fmt.Sprintf("failed to seed role %q", template.RoleKey))
		}
	}

	if created > 0 {
		t.logger.Info("predefined roles seeded", slog.Int("created", created))
	}

	return created, nil
}

// Merge combines the templates' capability sets. Union keeps every key at the
// highest contributed level; intersection keeps only keys present in every
// template at the lowest contributed level. Input order never changes the result.
func (t *templateUseCase) Merge(
	templateKeys []string,
	strategy authzDomain.MergeStrategy,
) (map[string]authzDomain.AccessLevel, error) {
	templates, err := t.resolve(templateKeys, 1)
	if err != nil {
		return nil, err
	}

	switch strategy {
	case authzDomain.MergeStrategyUnion:
		return mergeUnion(templates), nil
	case authzDomain.MergeStrategyIntersection:
		return mergeIntersection(templates), nil
	default:
		return nil, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("unknown merge strategy %q", strategy),
		)
	}
}

// Compare builds a side-by-side view over the union of the templates'
// capability keys. Templates lacking a key simply have no entry for it.
func (t *templateUseCase) Compare(templateKeys []string) (*TemplateComparison, error) {
	templates, err := t.resolve(templateKeys, 2)
	if err != nil {
		return nil, err
	}

	levels := make(map[string]map[string]authzDomain.AccessLevel)
	for _, template := range templates {
		for capabilityKey, level := range template.Grants {
			if levels[capabilityKey] == nil {
				levels[capabilityKey] = make(map[string]authzDomain.AccessLevel)
			}
			levels[capabilityKey][template.RoleKey] = level
		}
	}

	return &TemplateComparison{
		TemplateKeys: templateKeys,
		Levels:       levels,
	}, nil
}

// resolve looks up the given keys, enforcing a minimum count and rejecting
// unknown keys with ErrInvalidInput.
func (t *templateUseCase) resolve(
	templateKeys []string,
	minimum int,
) ([]authzDomain.RoleTemplate, error) {
	if len(templateKeys) < minimum {
		return nil, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("at least %d template keys required", minimum),
		)
	}

	templates := make([]authzDomain.RoleTemplate, 0, len(templateKeys))
	for _, key := range templateKeys {
		template, ok := t.templates[key]
		if !ok {
			return nil, apperrors.Wrap(
				apperrors.ErrInvalidInput,
				fmt.Sprintf("unknown template key %q", key),
			)
		}
		templates = append(templates, template)
	}
	return templates, nil
}

func mergeUnion(templates []authzDomain.RoleTemplate) map[string]authzDomain.AccessLevel {
	merged := make(map[string]authzDomain.AccessLevel)
	for _, template := range templates {
		for capabilityKey, level := range template.Grants {
			current, ok := merged[capabilityKey]
			if !ok || level.Rank() > current.Rank() {
				merged[capabilityKey] = level
			}
		}
	}
	return merged
}

func mergeIntersection(templates []authzDomain.RoleTemplate) map[string]authzDomain.AccessLevel {
	merged := make(map[string]authzDomain.AccessLevel)

	for capabilityKey, level := range templates[0].Grants {
		lowest := level
		inAll := true

		for _, template := range templates[1:] {
			other, ok := template.Grants[capabilityKey]
			if !ok {
				inAll = false
				break
			}
			if other.Rank() < lowest.Rank() {
				lowest = other
			}
		}

		if inAll {
			merged[capabilityKey] = lowest
		}
	}

	return merged
}
