// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ashwell/codecards/internal/apikey"
	"github.com/ashwell/codecards/internal/cards"
	"github.com/ashwell/codecards/internal/llm/openai"
	"github.com/ashwell/codecards/internal/mcpserver"
	"github.com/ashwell/codecards/internal/pipeline"
	"github.com/ashwell/codecards/internal/scan"
)

// Run executes one card-generation run with the given options. Per-file
// failures are logged and absorbed; Run returns an error only for startup
// failures (missing credential, unusable directories) or an aborted scan.
func Run(ctx context.Context, opts ...Option) error {
	app, logger, err := setup(opts)
	if err != nil {
		return err
	}

	runner, err := app.buildRunner(logger)
	if err != nil {
		return err
	}

	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("run complete",
		slog.Int("cards_written", report.CardsWritten()),
		slog.Int("failed", len(report.Failures())),
		slog.String("cards_dir", runner.Store.Root()),
		slog.String("aggregate", report.AggregatePath))
	return nil
}

// RunServe starts the MCP stdio server over the cards directory.
func RunServe(ctx context.Context, opts ...Option) error {
	app, logger, err := setup(opts)
	if err != nil {
		return err
	}

	runner, err := app.buildRunner(logger)
	if err != nil {
		return err
	}

	srv := mcpserver.New(runner.Store, runner)
	logger.Info("MCP server starting",
		slog.String("cards_dir", runner.Store.Root()),
		slog.String("scan_dir", runner.Root))

	g, gCtx := errgroup.WithContext(ctx)
	serveCtx, cancel := context.WithCancel(gCtx)
	defer cancel()

	g.Go(func() error {
		if err := srv.Listen(serveCtx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
		}
		cancel()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped")
	return nil
}

// setup applies options and initialises the structured logger. Logs go to
// stderr: per-file diagnostics belong on the error stream and stdout must
// stay clean for the MCP stdio transport.
func setup(opts []Option) (*application, *slog.Logger, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, nil, fmt.Errorf("config is required")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: app.config.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("configuration loaded",
		slog.String("scan_dir", app.config.Scan.Dir),
		slog.String("extensions", app.config.Scan.Extensions),
		slog.String("model", app.config.LLM.Model),
		slog.String("log_level", app.config.App.LogLevel.String()))

	return app, logger, nil
}

// buildRunner resolves the credential, ensures the cards directory, and wires
// the pipeline collaborators. A missing credential fails fast here, before
// any scanning begins.
func (a *application) buildRunner(logger *slog.Logger) (*pipeline.Runner, error) {
	cfg := a.config

	root, err := filepath.Abs(cfg.Scan.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve scan dir: %w", err)
	}

	client := a.client
	if client == nil {
		keyPrompt := a.keyPrompt
		if keyPrompt == nil {
			keyPrompt = apikey.TerminalPrompt
		}
		key, err := apikey.Resolve(cfg.LLM.APIKey, os.Getenv, keyPrompt)
		if err != nil {
			return nil, fmt.Errorf("resolve API key: %w", err)
		}
		client = openai.New(cfg.LLM.Model, key,
			openai.WithBaseURL(cfg.LLM.BaseURL),
			openai.WithTimeout(time.Duration(cfg.LLM.TimeoutSeconds)*time.Second))
	}

	cardsDir := filepath.Join(root, cfg.Scan.OutputDir)
	if err := os.MkdirAll(cardsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create cards dir: %w", err)
	}
	store, err := cards.NewStore(cardsDir)
	if err != nil {
		return nil, fmt.Errorf("init card store: %w", err)
	}

	return &pipeline.Runner{
		Root:   root,
		Exts:   scan.ParseExts(cfg.Scan.Extensions),
		Client: client,
		Store:  store,
		Logger: logger,
	}, nil
}
