package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/optiflow/adapter/cli"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

func registerCoreTools(srv *mcp.Server, ts *toolset) error {
	srv.Tool("cli.health").
		Description("Report the task store, persistence breaker and focus store health").
		Handler(ts.health)

	srv.Tool("cli.version").
		Description("Report the OptiFlow build serving these tools").
		Handler(ts.version)

	return nil
}

// Without a registry there is nothing to fail, so the process reports healthy.
func (ts *toolset) health(ctx context.Context, input struct{}) (*observability.OverallHealth, error) {
	if ts.app.Health == nil {
		return &observability.OverallHealth{Status: observability.HealthStatusHealthy}, nil
	}
	health := ts.app.Health.GetOverallHealth(ctx)
	return &health, nil
}

func (ts *toolset) version(ctx context.Context, input struct{}) (*cli.BuildInfo, error) {
	build := cli.CurrentBuild()
	return &build, nil
}
