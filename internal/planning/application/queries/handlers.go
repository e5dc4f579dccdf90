package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/optiflow/internal/planning/domain"
	productivityQueries "github.com/felixgeelhaar/optiflow/internal/productivity/application/queries"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

// Clock returns the current time.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// DateQuery selects a day. A nil Date means today.
type DateQuery struct {
	Date *value_objects.Date
}

// PlanningHandler serves the read-only planning views. Every call takes a
// fresh snapshot of the task list and runs the pure engine functions on it.
type PlanningHandler struct {
	taskRepo task.Repository
	clock    Clock
}

// NewPlanningHandler creates a new PlanningHandler.
func NewPlanningHandler(taskRepo task.Repository, clock Clock) *PlanningHandler {
	return &PlanningHandler{taskRepo: taskRepo, clock: clock}
}

// Matrix returns the combined Eisenhower/ABCDE matrix of active tasks.
func (h *PlanningHandler) Matrix(ctx context.Context) (*MatrixDTO, error) {
	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dto := toMatrixDTO(domain.BuildCombinedMatrix(tasks, h.clock.now()))
	return &dto, nil
}

// DayPlan returns the 1-3-5 plan of the selected day.
func (h *PlanningHandler) DayPlan(ctx context.Context, query DateQuery) (*DayPlanDTO, error) {
	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dto := toDayPlanDTO(domain.PlanDay(tasks, h.resolveDate(query)))
	return &dto, nil
}

// TimeBlocks returns the synthesized blocks of the selected day and the day itself.
func (h *PlanningHandler) TimeBlocks(ctx context.Context, query DateQuery) ([]domain.TimeBlock, value_objects.Date, error) {
	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, value_objects.Date{}, err
	}
	date := h.resolveDate(query)
	return domain.SynthesizeTimeBlocks(tasks, date), date, nil
}

// Schedule returns the synthesized schedule of the selected day.
func (h *PlanningHandler) Schedule(ctx context.Context, query DateQuery) (*ScheduleDTO, error) {
	blocks, date, err := h.TimeBlocks(ctx, query)
	if err != nil {
		return nil, err
	}
	dto := toScheduleDTO(date, blocks)
	return &dto, nil
}

// ABCDE returns active tasks grouped by priority.
func (h *PlanningHandler) ABCDE(ctx context.Context) ([]PriorityGroupDTO, error) {
	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	groups := domain.GroupByPriority(tasks)
	out := make([]PriorityGroupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, PriorityGroupDTO{
			Priority: g.Priority.String(),
			Label:    g.Priority.Label(),
			Tasks:    productivityQueries.ToTaskDTOs(g.Tasks),
		})
	}
	return out, nil
}

// Board returns all tasks grouped by status.
func (h *PlanningHandler) Board(ctx context.Context) ([]BoardColumnDTO, error) {
	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	columns := domain.BuildBoard(tasks)
	out := make([]BoardColumnDTO, 0, len(columns))
	for _, c := range columns {
		out = append(out, BoardColumnDTO{
			Status: c.Status.String(),
			Tasks:  productivityQueries.ToTaskDTOs(c.Tasks),
		})
	}
	return out, nil
}

// Stats returns task counts by status.
func (h *PlanningHandler) Stats(ctx context.Context) (*StatsDTO, error) {
	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s := domain.ComputeStats(tasks)
	return &StatsDTO{
		Total:          s.Total,
		Completed:      s.Completed,
		InProgress:     s.InProgress,
		Todo:           s.Todo,
		Delegated:      s.Delegated,
		CompletionRate: s.CompletionRate(),
	}, nil
}

func (h *PlanningHandler) resolveDate(query DateQuery) value_objects.Date {
	if query.Date != nil {
		return *query.Date
	}
	return value_objects.DateOf(h.clock.now())
}
