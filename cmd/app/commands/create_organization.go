package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	orgUseCase "github.com/allisson/fleet/internal/org/usecase"
)

// RunCreateOrganization creates a new organization with the given slug and
// name. Outputs the organization ID in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateOrganization(
	ctx context.Context,
	organizationUseCase orgUseCase.OrganizationUseCase,
	logger *slog.Logger,
	writer io.Writer,
	slug string,
	name string,
	format string,
) error {
	logger.Info("creating new organization", slog.String("slug", slug))

	input := &orgUseCase.CreateOrganizationInput{
		Slug: slug,
		Name: name,
	}

	organization, err := organizationUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputJSON(map[string]string{
			"organization_id": organization.ID.String(),
			"slug":            organization.Slug,
			"name":            organization.Name,
		}, writer)
	} else {
		_, _ = fmt.Fprintln(writer, "\nOrganization created successfully!")
		_, _ = fmt.Fprintf(writer, "Organization ID: %s\n", organization.ID.String())
		_, _ = fmt.Fprintf(writer, "Slug: %s\n", organization.Slug)
	}

	logger.Info("organization created successfully",
		slog.String("organization_id", organization.ID.String()),
		slog.String("slug", organization.Slug),
	)

	return nil
}

// outputJSON outputs the result in JSON format for machine consumption.
func outputJSON(result map[string]string, writer io.Writer) {
	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
