package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/fleet/cmd/app/commands"
	"github.com/allisson/fleet/internal/app"
	"github.com/allisson/fleet/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "seed",
			Usage: "Seed the capability registry and predefined roles",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				registryUseCase, err := container.RegistryUseCase()
				if err != nil {
					return err
				}

				templateUseCase, err := container.TemplateUseCase()
				if err != nil {
					return err
				}

				return commands.RunSeed(
					ctx,
					registryUseCase,
					templateUseCase,
					container.Logger(),
					commands.DefaultWriter(),
				)
			},
		},
	}
}
