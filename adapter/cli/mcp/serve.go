package mcp

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/optiflow/adapter/cli"
	mcpinternal "github.com/felixgeelhaar/optiflow/internal/mcp"
	"github.com/felixgeelhaar/optiflow/pkg/config"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

// Cmd groups the MCP subcommands.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose OptiFlow to MCP clients",
}

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start an MCP server over HTTP that exposes the task, planning and
focus tools. Set MCP_AUTH_TOKEN to require a bearer token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.MCPAddr = serveAddr
		}

		logger := observability.LoggerFor(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat, cli.Version)
		logger = logger.With(slog.String("component", "mcp"))

		err = mcpinternal.Serve(cmd.Context(), cfg, app, logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	Cmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default MCP_ADDR)")
}
