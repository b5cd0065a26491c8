package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ashwell/codecards/internal"
	pkgconfig "github.com/ashwell/codecards/pkg/config"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()

	if configPath := cmd.String("config"); configPath != "" {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Explicitly set flags win over config file values.
	if cmd.IsSet("dir") {
		cfg.Scan.Dir = cmd.String("dir")
	}
	if cmd.IsSet("exts") {
		cfg.Scan.Extensions = cmd.String("exts")
	}
	if cmd.IsSet("model") {
		cfg.LLM.Model = cmd.String("model")
	}
	if cmd.IsSet("key") {
		cfg.LLM.APIKey = cmd.String("key")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runGenerate(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.Run(ctx, internal.WithConfig(cfg))
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunServe(ctx, internal.WithConfig(cfg))
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Usage:   "Root directory to scan",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:    "model",
			Aliases: []string{"m"},
			Usage:   "Completion model identifier",
			Value:   "gpt-4o",
		},
		&cli.StringFlag{
			Name:    "exts",
			Aliases: []string{"e"},
			Usage:   "Comma-separated file extensions to include",
			Value:   "js,ts,py,java,go",
		},
		&cli.StringFlag{
			Name:    "key",
			Aliases: []string{"k"},
			Usage:   "API key (falls back to OPENAI_API_KEY, then an interactive prompt)",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to config file",
			Sources: cli.EnvVars("APP_CONFIG_FILE"),
		},
	}
}

func main() {
	cmd := &cli.Command{
		Name:   "codecards",
		Usage:  "Generate per-file LLM code cards and an aggregate document for a source tree",
		Action: runGenerate,
		Flags:  flags(),
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve generated cards and on-demand generation over MCP (stdio)",
				Action: runServe,
				Flags:  flags(),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
