package cli

import (
	focusApp "github.com/felixgeelhaar/optiflow/internal/focus/application"
	planningQueries "github.com/felixgeelhaar/optiflow/internal/planning/application/queries"
	"github.com/felixgeelhaar/optiflow/internal/planning/infrastructure/ical"
	"github.com/felixgeelhaar/optiflow/internal/productivity/application/commands"
	"github.com/felixgeelhaar/optiflow/internal/productivity/application/queries"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

// App holds the CLI application dependencies.
type App struct {
	// Task Command Handlers
	CreateTaskHandler     *commands.CreateTaskHandler
	QuickAddHandler       *commands.QuickAddHandler
	UpdateTaskHandler     *commands.UpdateTaskHandler
	ToggleCompleteHandler *commands.ToggleCompleteHandler
	DeleteTaskHandler     *commands.DeleteTaskHandler

	// Task Query Handlers
	ListTasksHandler *queries.ListTasksHandler
	GetTaskHandler   *queries.GetTaskHandler

	// Planning
	PlanningHandler *planningQueries.PlanningHandler
	ICSExporter     *ical.Exporter

	// Focus clock
	FocusService *focusApp.Service

	// Health and metrics
	Health  *observability.HealthRegistry
	Metrics observability.Metrics
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	createTaskHandler *commands.CreateTaskHandler,
	quickAddHandler *commands.QuickAddHandler,
	updateTaskHandler *commands.UpdateTaskHandler,
	toggleCompleteHandler *commands.ToggleCompleteHandler,
	deleteTaskHandler *commands.DeleteTaskHandler,
	listTasksHandler *queries.ListTasksHandler,
	getTaskHandler *queries.GetTaskHandler,
	planningHandler *planningQueries.PlanningHandler,
	icsExporter *ical.Exporter,
) *App {
	return &App{
		CreateTaskHandler:     createTaskHandler,
		QuickAddHandler:       quickAddHandler,
		UpdateTaskHandler:     updateTaskHandler,
		ToggleCompleteHandler: toggleCompleteHandler,
		DeleteTaskHandler:     deleteTaskHandler,
		ListTasksHandler:      listTasksHandler,
		GetTaskHandler:        getTaskHandler,
		PlanningHandler:       planningHandler,
		ICSExporter:           icsExporter,
	}
}

// SetFocusService updates the focus service.
func (a *App) SetFocusService(service *focusApp.Service) {
	a.FocusService = service
}

// SetHealth updates the health registry.
func (a *App) SetHealth(registry *observability.HealthRegistry) {
	a.Health = registry
}

// SetMetrics updates the metrics collector used by the servers.
func (a *App) SetMetrics(metrics observability.Metrics) {
	a.Metrics = metrics
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
