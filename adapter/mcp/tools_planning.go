package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	planningQueries "github.com/felixgeelhaar/optiflow/internal/planning/application/queries"
)

type dateInput struct {
	Date string `json:"date,omitempty"`
}

type icsResult struct {
	Date     string `json:"date"`
	Blocks   int    `json:"blocks"`
	Calendar string `json:"calendar"`
}

func registerPlanningTools(srv *mcp.Server, ts *toolset) error {
	srv.Tool("planning.matrix").
		Description("Eisenhower matrix of all tasks, grouped by ABCDE priority inside each quadrant").
		Handler(ts.matrix)

	srv.Tool("planning.abcde").
		Description("Active tasks grouped by ABCDE priority").
		Handler(ts.abcde)

	srv.Tool("planning.board").
		Description("Tasks grouped into Kanban columns by status").
		Handler(ts.board)

	srv.Tool("planning.day_plan").
		Description("1-3-5 plan of a day (default today): one major, three medium and five small tasks").
		Handler(ts.dayPlan)

	srv.Tool("planning.schedule").
		Description("Time-blocked schedule of a day (default today) with the 1-3-5 plan bound to its blocks").
		Handler(ts.schedule)

	srv.Tool("planning.schedule_ics").
		Description("Time-blocked schedule of a day (default today) as an iCalendar document").
		Handler(ts.scheduleICS)

	srv.Tool("planning.stats").
		Description("Task counts by status and the completion rate").
		Handler(ts.stats)

	return nil
}

func (ts *toolset) matrix(ctx context.Context, input struct{}) (*planningQueries.MatrixDTO, error) {
	if ts.app.PlanningHandler == nil {
		return nil, errNotConfigured
	}
	return ts.app.PlanningHandler.Matrix(ctx)
}

func (ts *toolset) abcde(ctx context.Context, input struct{}) ([]planningQueries.PriorityGroupDTO, error) {
	if ts.app.PlanningHandler == nil {
		return nil, errNotConfigured
	}
	return ts.app.PlanningHandler.ABCDE(ctx)
}

func (ts *toolset) board(ctx context.Context, input struct{}) ([]planningQueries.BoardColumnDTO, error) {
	if ts.app.PlanningHandler == nil {
		return nil, errNotConfigured
	}
	return ts.app.PlanningHandler.Board(ctx)
}

func (ts *toolset) dayPlan(ctx context.Context, input dateInput) (*planningQueries.DayPlanDTO, error) {
	if ts.app.PlanningHandler == nil {
		return nil, errNotConfigured
	}
	date, err := parseDate("date", input.Date)
	if err != nil {
		return nil, err
	}
	return ts.app.PlanningHandler.DayPlan(ctx, planningQueries.DateQuery{Date: date})
}

func (ts *toolset) schedule(ctx context.Context, input dateInput) (*planningQueries.ScheduleDTO, error) {
	if ts.app.PlanningHandler == nil {
		return nil, errNotConfigured
	}
	date, err := parseDate("date", input.Date)
	if err != nil {
		return nil, err
	}
	return ts.app.PlanningHandler.Schedule(ctx, planningQueries.DateQuery{Date: date})
}

func (ts *toolset) scheduleICS(ctx context.Context, input dateInput) (*icsResult, error) {
	if ts.app.PlanningHandler == nil || ts.app.ICSExporter == nil {
		return nil, errNotConfigured
	}
	date, err := parseDate("date", input.Date)
	if err != nil {
		return nil, err
	}
	blocks, day, err := ts.app.PlanningHandler.TimeBlocks(ctx, planningQueries.DateQuery{Date: date})
	if err != nil {
		return nil, err
	}
	data, err := ts.app.ICSExporter.Export(day, blocks)
	if err != nil {
		return nil, err
	}
	return &icsResult{Date: day.String(), Blocks: len(blocks), Calendar: string(data)}, nil
}

func (ts *toolset) stats(ctx context.Context, input struct{}) (*planningQueries.StatsDTO, error) {
	if ts.app.PlanningHandler == nil {
		return nil, errNotConfigured
	}
	return ts.app.PlanningHandler.Stats(ctx)
}
