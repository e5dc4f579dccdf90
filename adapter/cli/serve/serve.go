// Package serve provides the command that runs the HTTP API.
package serve

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/optiflow/adapter/api"
	"github.com/felixgeelhaar/optiflow/adapter/cli"
	"github.com/felixgeelhaar/optiflow/pkg/config"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

var (
	addr      string
	withFocus bool
)

// Cmd starts the HTTP API server.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the JSON API over HTTP.

Routes:
  GET    /health
  GET    /api/v1/tasks            ?status= &priority= &bucket= &category= &due= &active=true
  POST   /api/v1/tasks
  POST   /api/v1/tasks/quick
  GET    /api/v1/tasks/:id
  PATCH  /api/v1/tasks/:id
  DELETE /api/v1/tasks/:id
  POST   /api/v1/tasks/:id/toggle
  GET    /api/v1/matrix | abcde | board | stats
  GET    /api/v1/plan | schedule | schedule.ics  ?date=YYYY-MM-DD`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		serverCfg := api.DefaultServerConfig()
		serverCfg.Addr = cfg.HTTPAddr
		if addr != "" {
			serverCfg.Addr = addr
		}
		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		logger := observability.LoggerFor(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat, cli.Version).
			With(slog.String("component", "api"))

		// Keep the focus clock ticking while the server runs.
		if withFocus && app.FocusService != nil {
			if err := app.FocusService.StartTicker(cmd.Context()); err != nil {
				return err
			}
			defer app.FocusService.Stop()
		}

		return api.NewServer(serverCfg, app, logger).Serve(cmd.Context())
	},
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "listen address (default HTTP_ADDR)")
	Cmd.Flags().BoolVar(&withFocus, "focus", false, "also advance the focus clock (instead of running cmd/worker)")
}
