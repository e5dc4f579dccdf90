package mcp

import (
	"github.com/felixgeelhaar/optiflow/adapter/cli"
	"github.com/felixgeelhaar/optiflow/internal/app"
)

// NewCLIApp creates a CLI application instance backed by the provided container.
func NewCLIApp(container *app.Container) *cli.App {
	cliApp := cli.NewApp(
		container.CreateTaskHandler,
		container.QuickAddHandler,
		container.UpdateTaskHandler,
		container.ToggleCompleteHandler,
		container.DeleteTaskHandler,
		container.ListTasksHandler,
		container.GetTaskHandler,
		container.PlanningHandler,
		container.ICSExporter,
	)

	if container.FocusService != nil {
		cliApp.SetFocusService(container.FocusService)
	}
	if container.Health != nil {
		cliApp.SetHealth(container.Health)
	}
	if container.Metrics != nil {
		cliApp.SetMetrics(container.Metrics)
	}

	return cliApp
}
