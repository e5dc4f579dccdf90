// Command mcp serves the OptiFlow MCP tools over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/optiflow/adapter/cli"
	"github.com/felixgeelhaar/optiflow/internal/app"
	mcpinternal "github.com/felixgeelhaar/optiflow/internal/mcp"
	"github.com/felixgeelhaar/optiflow/pkg/config"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if cfg.IsDevelopment() {
		level = string(observability.LogLevelDebug)
	}
	logger := observability.LoggerFor(cfg.AppEnv, level, cfg.LogFormat, cli.Version)
	slog.SetDefault(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	err = mcpinternal.Serve(ctx, cfg, mcpinternal.NewCLIApp(container), logger)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
