package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	fleetDomain "github.com/allisson/fleet/internal/fleet/domain"
)

// zoneUseCase implements ZoneUseCase.
type zoneUseCase struct {
	zoneRepo ZoneRepository
}

// NewZoneUseCase creates a new ZoneUseCase with the provided dependencies.
func NewZoneUseCase(zoneRepo ZoneRepository) ZoneUseCase {
	return &zoneUseCase{
		zoneRepo: zoneRepo,
	}
}

// Create creates a new zone in the organization. Creating zones requires an
// unconstrained grant, so no constraint parameter is taken.
func (z *zoneUseCase) Create(
	ctx context.Context,
	input *CreateZoneInput,
) (*fleetDomain.Zone, error) {
	zone := &fleetDomain.Zone{
		ID:             uuid.Must(uuid.NewV7()),
		OrganizationID: input.OrganizationID,
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := z.zoneRepo.Create(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// Get retrieves a zone the caller's constraints allow.
func (z *zoneUseCase) Get(
	ctx context.Context,
	organizationID, zoneID uuid.UUID,
	constraints *authzDomain.GrantConstraints,
) (*fleetDomain.Zone, error) {
	zone, err := z.zoneRepo.Get(ctx, organizationID, zoneID)
	if err != nil {
		return nil, err
	}

	if !constraints.AllowsZone(&zone.ID) {
		return nil, fleetDomain.ErrZoneAccessDenied
	}
	return zone, nil
}

// List retrieves the organization's zones the caller's constraints allow.
func (z *zoneUseCase) List(
	ctx context.Context,
	organizationID uuid.UUID,
	constraints *authzDomain.GrantConstraints,
) ([]*fleetDomain.Zone, error) {
	zones, err := z.zoneRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if constraints.IsZero() {
		return zones, nil
	}

	allowed := make([]*fleetDomain.Zone, 0, len(zones))
	for _, zone := range zones {
		if constraints.AllowsZone(&zone.ID) {
			allowed = append(allowed, zone)
		}
	}
	return allowed, nil
}

// Update modifies a zone the caller's constraints allow.
func (z *zoneUseCase) Update(
	ctx context.Context,
	organizationID, zoneID uuid.UUID,
	input *UpdateZoneInput,
	constraints *authzDomain.GrantConstraints,
) (*fleetDomain.Zone, error) {
	zone, err := z.Get(ctx, organizationID, zoneID, constraints)
	if err != nil {
		return nil, err
	}

	zone.Name = strings.TrimSpace(input.Name)
	zone.Description = input.Description
	zone.UpdatedAt = time.Now().UTC()

	if err := z.zoneRepo.Update(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// Delete removes a zone the caller's constraints allow.
func (z *zoneUseCase) Delete(
	ctx context.Context,
	organizationID, zoneID uuid.UUID,
	constraints *authzDomain.GrantConstraints,
) error {
	if _, err := z.Get(ctx, organizationID, zoneID, constraints); err != nil {
		return err
	}
	return z.zoneRepo.Delete(ctx, organizationID, zoneID)
}
