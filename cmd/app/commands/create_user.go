package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	orgUseCase "github.com/allisson/fleet/internal/org/usecase"
)

// RunCreateUser registers a new user and prints the API token. The plain
// token is shown only once and never stored; only its hash is persisted.
// Outputs the user ID and token in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase orgUseCase.UserUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	email string,
	password string,
	format string,
) error {
	logger.Info("creating new user", slog.String("email", email))

	input := &orgUseCase.RegisterUserInput{
		Name:     name,
		Email:    email,
		Password: password,
	}

	user, plainToken, err := userUseCase.Register(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputJSON(map[string]string{
			"user_id":   user.ID.String(),
			"email":     user.Email,
			"api_token": plainToken,
		}, writer)
	} else {
		_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
		_, _ = fmt.Fprintf(writer, "User ID: %s\n", user.ID.String())
		_, _ = fmt.Fprintf(writer, "API Token: %s\n", plainToken)
		_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The API token is shown only once. Store it securely.")
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email),
	)

	return nil
}
