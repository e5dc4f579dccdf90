package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/optiflow/adapter/cli"
	"github.com/felixgeelhaar/optiflow/adapter/cli/mcp"
	"github.com/felixgeelhaar/optiflow/adapter/cli/serve"
	"github.com/felixgeelhaar/optiflow/adapter/cli/task"
	"github.com/felixgeelhaar/optiflow/internal/app"
	mcpinternal "github.com/felixgeelhaar/optiflow/internal/mcp"
	"github.com/felixgeelhaar/optiflow/pkg/config"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

func main() {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Logs go to stderr so command output stays clean
	logger := observability.LoggerFor(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat, cli.Version)
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	cli.SetApp(mcpinternal.NewCLIApp(container))

	// Register commands
	cli.AddCommand(task.Cmd)
	cli.AddCommand(mcp.Cmd)
	cli.AddCommand(serve.Cmd)

	// Execute CLI
	cli.Execute(ctx)
}
