package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/fleet/internal/errors"
	orgDomain "github.com/allisson/fleet/internal/org/domain"
)

// organizationUseCase implements OrganizationUseCase.
type organizationUseCase struct {
	organizationRepo OrganizationRepository
}

// NewOrganizationUseCase creates a new OrganizationUseCase with the provided dependencies.
func NewOrganizationUseCase(organizationRepo OrganizationRepository) OrganizationUseCase {
	return &organizationUseCase{
		organizationRepo: organizationRepo,
	}
}

// Create creates a new organization with a unique slug.
func (o *organizationUseCase) Create(
	ctx context.Context,
	input *CreateOrganizationInput,
) (*orgDomain.Organization, error) {
	slug := strings.TrimSpace(strings.ToLower(input.Slug))

	_, err := o.organizationRepo.GetBySlug(ctx, slug)
	if err == nil {
		return nil, orgDomain.ErrOrganizationAlreadyExists
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	organization := &orgDomain.Organization{
		ID:        uuid.Must(uuid.NewV7()),
		Slug:      slug,
		Name:      strings.TrimSpace(input.Name),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := o.organizationRepo.Create(ctx, organization); err != nil {
		return nil, err
	}
	return organization, nil
}

// Get retrieves an organization by ID.
func (o *organizationUseCase) Get(
	ctx context.Context,
	organizationID uuid.UUID,
) (*orgDomain.Organization, error) {
	return o.organizationRepo.Get(ctx, organizationID)
}

// GetBySlug retrieves an organization by slug.
func (o *organizationUseCase) GetBySlug(
	ctx context.Context,
	slug string,
) (*orgDomain.Organization, error) {
	return o.organizationRepo.GetBySlug(ctx, slug)
}

// List retrieves organizations with pagination.
func (o *organizationUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*orgDomain.Organization, error) {
	return o.organizationRepo.List(ctx, offset, limit)
}
