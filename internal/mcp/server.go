package mcp

import (
	"context"
	"errors"
	"log/slog"

	mcpgo "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/middleware"

	"github.com/felixgeelhaar/optiflow/adapter/cli"
	mcplocal "github.com/felixgeelhaar/optiflow/adapter/mcp"
	"github.com/felixgeelhaar/optiflow/pkg/config"
)

// NewServer builds an MCP server exposing the CLI tools, resources and prompts.
func NewServer(cliApp *cli.App, logger *slog.Logger) (*mcpgo.Server, error) {
	if cliApp == nil {
		return nil, errors.New("CLI app is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	srv := mcpgo.NewServer(mcpgo.ServerInfo{
		Name:    "optiflow-mcp",
		Version: cli.Version,
		Capabilities: mcpgo.Capabilities{
			Tools:     true,
			Resources: true,
			Prompts:   true,
		},
	})

	deps := mcplocal.ToolDependencies{App: cliApp}

	if err := mcplocal.RegisterCLITools(srv, deps); err != nil {
		return nil, err
	}

	// Resources and prompts are optional.
	if err := mcplocal.RegisterResources(srv, deps); err != nil {
		logger.Warn("failed to register MCP resources", "error", err)
	}
	if err := mcplocal.RegisterPrompts(srv, deps); err != nil {
		logger.Warn("failed to register MCP prompts", "error", err)
	}

	return srv, nil
}

// Serve starts an MCP server that mirrors CLI behavior and blocks until the context is canceled.
func Serve(ctx context.Context, cfg *config.Config, cliApp *cli.App, logger *slog.Logger) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	srv, err := NewServer(cliApp, logger)
	if err != nil {
		return err
	}

	mwLogger := mcpLogger{logger: logger}
	stack := middleware.DefaultStack(mwLogger)

	if cfg.MCPAuthToken != "" {
		authenticator := middleware.BearerTokenAuthenticator(middleware.StaticTokens(map[string]*middleware.Identity{
			cfg.MCPAuthToken: {ID: "mcp", Name: "mcp"},
		}))
		stack = append([]middleware.Middleware{middleware.Auth(authenticator, middleware.WithAuthLogger(mwLogger))}, stack...)
	} else if cfg.IsProduction() {
		logger.Warn("MCP_AUTH_TOKEN not set; MCP requests are unauthenticated")
	}

	logger.Info("mcp server listening", "addr", cfg.MCPAddr)
	return mcpgo.ServeHTTPWithMiddleware(ctx, srv, cfg.MCPAddr, nil, mcpgo.WithMiddleware(stack...))
}

// mcpLogger routes mcp-go middleware logs into slog.
type mcpLogger struct {
	logger *slog.Logger
}

func (l mcpLogger) Debug(msg string, fields ...middleware.Field) { l.log(slog.LevelDebug, msg, fields) }
func (l mcpLogger) Info(msg string, fields ...middleware.Field)  { l.log(slog.LevelInfo, msg, fields) }
func (l mcpLogger) Warn(msg string, fields ...middleware.Field)  { l.log(slog.LevelWarn, msg, fields) }
func (l mcpLogger) Error(msg string, fields ...middleware.Field) { l.log(slog.LevelError, msg, fields) }

func (l mcpLogger) log(level slog.Level, msg string, fields []middleware.Field) {
	attrs := make([]slog.Attr, 0, len(fields)+1)
	attrs = append(attrs, slog.String("component", "mcp"))
	for _, field := range fields {
		attrs = append(attrs, slog.Any(field.Key, field.Value))
	}
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}
