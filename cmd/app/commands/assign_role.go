package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	orgUseCase "github.com/allisson/fleet/internal/org/usecase"
)

// RunAssignRole grants a user a role inside an organization. The organization
// is resolved by slug and the user by email; the role key resolves against
// the organization's custom roles first, then the system roles. An existing
// membership moves to the new role.
//
// Requirements: Database must be migrated and seeded, and the organization
// and user must already exist.
func RunAssignRole(
	ctx context.Context,
	membershipUseCase orgUseCase.MembershipUseCase,
	organizationUseCase orgUseCase.OrganizationUseCase,
	userUseCase orgUseCase.UserUseCase,
	logger *slog.Logger,
	writer io.Writer,
	organizationSlug string,
	email string,
	roleKey string,
	format string,
) error {
	logger.Info("assigning role",
		slog.String("organization", organizationSlug),
		slog.String("email", email),
		slog.String("role_key", roleKey),
	)

	organization, err := organizationUseCase.GetBySlug(ctx, organizationSlug)
	if err != nil {
		return fmt.Errorf("failed to resolve organization: %w", err)
	}

	user, err := userUseCase.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to resolve user: %w", err)
	}

	input := &orgUseCase.AssignRoleInput{
		OrganizationID: organization.ID,
		UserID:         user.ID,
		RoleKey:        roleKey,
	}

	membership, err := membershipUseCase.AssignRole(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputJSON(map[string]string{
			"membership_id":   membership.ID.String(),
			"organization_id": membership.OrganizationID.String(),
			"user_id":         membership.UserID.String(),
			"role_id":         membership.RoleID.String(),
		}, writer)
	} else {
		_, _ = fmt.Fprintln(writer, "\nRole assigned successfully!")
		_, _ = fmt.Fprintf(writer, "Membership ID: %s\n", membership.ID.String())
		_, _ = fmt.Fprintf(writer, "Role ID: %s\n", membership.RoleID.String())
	}

	logger.Info("role assigned successfully",
		slog.String("membership_id", membership.ID.String()),
		slog.String("role_key", roleKey),
	)

	return nil
}
