package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/fleet/cmd/app/commands"
	"github.com/allisson/fleet/internal/app"
	"github.com/allisson/fleet/internal/config"
)

func getOrgCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-organization",
			Usage: "Create a new organization",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "slug",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "URL-safe organization identifier (e.g., acme-logistics)",
				},
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable organization name",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				organizationUseCase, err := container.OrganizationUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateOrganization(
					ctx,
					organizationUseCase,
					container.Logger(),
					commands.DefaultWriter(),
					cmd.String("slug"),
					cmd.String("name"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "create-user",
			Usage: "Register a new user and print the API token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable user name",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "User email address",
				},
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "User password",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateUser(
					ctx,
					userUseCase,
					container.Logger(),
					commands.DefaultWriter(),
					cmd.String("name"),
					cmd.String("email"),
					cmd.String("password"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "assign-role",
			Usage: "Grant a user a role inside an organization",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "organization",
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "Organization slug",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "User email address",
				},
				&cli.StringFlag{
					Name:     "role",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Role key (e.g., fleet_manager or a custom role key)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				membershipUseCase, err := container.MembershipUseCase()
				if err != nil {
					return err
				}

				organizationUseCase, err := container.OrganizationUseCase()
				if err != nil {
					return err
				}

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunAssignRole(
					ctx,
					membershipUseCase,
					organizationUseCase,
					userUseCase,
					container.Logger(),
					commands.DefaultWriter(),
					cmd.String("organization"),
					cmd.String("email"),
					cmd.String("role"),
					cmd.String("format"),
				)
			},
		},
	}
}
