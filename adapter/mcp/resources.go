package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	planningQueries "github.com/felixgeelhaar/optiflow/internal/planning/application/queries"
	productivityQueries "github.com/felixgeelhaar/optiflow/internal/productivity/application/queries"
)

// RegisterResources registers MCP resources that expose OptiFlow data.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	if deps.App == nil {
		return fmt.Errorf("app is required")
	}

	if err := registerTaskResources(srv, deps); err != nil {
		return err
	}
	if err := registerPlanningResources(srv, deps); err != nil {
		return err
	}

	return nil
}

func registerTaskResources(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Resource("optiflow://tasks").
		Name("Tasks").
		Description("All tasks").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app.ListTasksHandler == nil {
				return nil, errNotConfigured
			}
			tasks, err := app.ListTasksHandler.Handle(ctx, productivityQueries.ListTasksQuery{})
			if err != nil {
				return nil, err
			}
			return jsonContent(uri, tasks)
		})

	srv.Resource("optiflow://tasks/active").
		Name("Active Tasks").
		Description("Tasks that are not completed").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app.ListTasksHandler == nil {
				return nil, errNotConfigured
			}
			tasks, err := app.ListTasksHandler.Handle(ctx, productivityQueries.ListTasksQuery{Active: true})
			if err != nil {
				return nil, err
			}
			return jsonContent(uri, tasks)
		})

	return nil
}

func registerPlanningResources(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Resource("optiflow://matrix").
		Name("Eisenhower Matrix").
		Description("Tasks in the four Eisenhower quadrants").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app.PlanningHandler == nil {
				return nil, errNotConfigured
			}
			matrix, err := app.PlanningHandler.Matrix(ctx)
			if err != nil {
				return nil, err
			}
			return jsonContent(uri, matrix)
		})

	srv.Resource("optiflow://plan/today").
		Name("Today's 1-3-5 Plan").
		Description("Today's tasks split into the major, medium and small buckets").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app.PlanningHandler == nil {
				return nil, errNotConfigured
			}
			plan, err := app.PlanningHandler.DayPlan(ctx, planningQueries.DateQuery{})
			if err != nil {
				return nil, err
			}
			return jsonContent(uri, plan)
		})

	srv.Resource("optiflow://schedule/today").
		Name("Today's Schedule").
		Description("Today's time blocks with the 1-3-5 plan bound to them").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app.PlanningHandler == nil {
				return nil, errNotConfigured
			}
			schedule, err := app.PlanningHandler.Schedule(ctx, planningQueries.DateQuery{})
			if err != nil {
				return nil, err
			}
			return jsonContent(uri, schedule)
		})

	srv.Resource("optiflow://schedule/today.ics").
		Name("Today's Schedule (iCalendar)").
		Description("Today's time blocks as an iCalendar document").
		MimeType("text/calendar").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app.PlanningHandler == nil || app.ICSExporter == nil {
				return nil, errNotConfigured
			}
			blocks, day, err := app.PlanningHandler.TimeBlocks(ctx, planningQueries.DateQuery{})
			if err != nil {
				return nil, err
			}
			data, err := app.ICSExporter.Export(day, blocks)
			if err != nil {
				return nil, err
			}
			return &mcp.ResourceContent{
				URI:      uri,
				MimeType: "text/calendar",
				Text:     string(data),
			}, nil
		})

	return nil
}

func jsonContent(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
