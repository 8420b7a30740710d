package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/fleet/cmd/app/commands"
	"github.com/allisson/fleet/internal/app"
	"github.com/allisson/fleet/internal/config"
)

func getAuthzCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "merge-templates",
			Usage: "Merge predefined role template capability sets",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "templates",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Comma-separated template keys (e.g., fleet_manager,dispatcher)",
				},
				&cli.StringFlag{
					Name:    "strategy",
					Aliases: []string{"s"},
					Value:   "union",
					Usage:   "Merge strategy: 'union' or 'intersection'",
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

				templateUseCase, err := container.TemplateUseCase()
				if err != nil {
					return err
				}

				return commands.RunMergeTemplates(
					templateUseCase,
					commands.DefaultWriter(),
					cmd.String("templates"),
					cmd.String("strategy"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "compare-templates",
			Usage: "Compare predefined role templates side by side",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "templates",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Comma-separated template keys (at least two)",
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

				templateUseCase, err := container.TemplateUseCase()
				if err != nil {
					return err
				}

				return commands.RunCompareTemplates(
					templateUseCase,
					commands.DefaultWriter(),
					cmd.String("templates"),
					cmd.String("format"),
				)
			},
		},
	}
}
