package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/ansuz/internal"
	pkgconfig "github.com/starford/ansuz/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfPresent(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func runPublish(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithSkipExport(cmd.Bool("skip-export")),
		internal.WithWatch(cmd.Bool("watch")),
	}
	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("publish error: %w", err)
	}
	return nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.Serve(ctx, internal.WithConfig(cfg))
}

func runHistory(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.History(ctx, internal.WithConfig(cfg))
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.MCP(ctx, internal.WithConfig(cfg))
}

func main() {
	publishFlags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "skip-export",
			Usage: "Reconcile the existing export tree without invoking the exporter",
		},
		&cli.BoolFlag{
			Name:  "watch",
			Usage: "Keep running and republish whenever the export tree changes (implies --skip-export)",
		},
	}

	cmd := &cli.Command{
		Name:   "ansuz",
		Usage:  "Publish tagged notes from a personal note store into a static-site content tree",
		Action: runPublish,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		}, publishFlags...),
		Commands: []*cli.Command{
			{
				Name:   "publish",
				Usage:  "Run the publish pipeline once (the default command)",
				Flags:  publishFlags,
				Action: runPublish,
			},
			{
				Name:   "serve",
				Usage:  "Serve the published content tree over HTTP for local preview",
				Action: runServe,
			},
			{
				Name:   "history",
				Usage:  "Show recent publish runs from the journal",
				Action: runHistory,
			},
			{
				Name:   "mcp",
				Usage:  "Serve publish tools over the Model Context Protocol (stdio)",
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
