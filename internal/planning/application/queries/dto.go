package queries

import (
	"time"

	"github.com/felixgeelhaar/optiflow/internal/planning/domain"
	productivityQueries "github.com/felixgeelhaar/optiflow/internal/productivity/application/queries"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

// MatrixGroupDTO is a priority group inside a quadrant.
type MatrixGroupDTO struct {
	Label    string                        `json:"label"`
	Priority string                        `json:"priority,omitempty"`
	Tasks    []productivityQueries.TaskDTO `json:"tasks"`
}

// QuadrantDTO is one cell of the Eisenhower matrix.
type QuadrantDTO struct {
	Quadrant string           `json:"quadrant"`
	Title    string           `json:"title"`
	Hint     string           `json:"hint"`
	Total    int              `json:"total"`
	Groups   []MatrixGroupDTO `json:"groups"`
}

// MatrixDTO is the combined Eisenhower/ABCDE matrix.
type MatrixDTO struct {
	Quadrants []QuadrantDTO `json:"quadrants"`
}

// BucketPlanDTO is the 1-3-5 view of one bucket.
type BucketPlanDTO struct {
	Bucket     string                        `json:"bucket"`
	Quota      int                           `json:"quota"`
	Scheduled  []productivityQueries.TaskDTO `json:"scheduled"`
	TotalCount int                           `json:"totalCount"`
	Exceeded   bool                          `json:"exceeded"`
}

// DayPlanDTO is the 1-3-5 plan of a date.
type DayPlanDTO struct {
	Date    string          `json:"date"`
	Buckets []BucketPlanDTO `json:"buckets"`
}

// TimeBlockDTO is one slot of the daily schedule.
type TimeBlockDTO struct {
	SlotID      string  `json:"slotId"`
	TimeRange   string  `json:"timeRange"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Activity    string  `json:"activity"`
	Description string  `json:"description"`
	TaskID      *string `json:"taskId,omitempty"`
	Fixed       bool    `json:"fixed"`
}

// ScheduleDTO is the synthesized schedule of a date.
type ScheduleDTO struct {
	Date   string         `json:"date"`
	Blocks []TimeBlockDTO `json:"blocks"`
}

// PriorityGroupDTO holds the tasks of one ABCDE priority.
type PriorityGroupDTO struct {
	Priority string                        `json:"priority"`
	Label    string                        `json:"label"`
	Tasks    []productivityQueries.TaskDTO `json:"tasks"`
}

// BoardColumnDTO is one status column of the board.
type BoardColumnDTO struct {
	Status string                        `json:"status"`
	Tasks  []productivityQueries.TaskDTO `json:"tasks"`
}

// StatsDTO summarizes the task list.
type StatsDTO struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"inProgress"`
	Todo           int     `json:"todo"`
	Delegated      int     `json:"delegated"`
	CompletionRate float64 `json:"completionRate"`
}

func toMatrixDTO(m domain.CombinedMatrix) MatrixDTO {
	dto := MatrixDTO{Quadrants: make([]QuadrantDTO, 0, len(m.Quadrants))}
	for _, q := range m.Quadrants {
		qd := QuadrantDTO{
			Quadrant: q.Quadrant.String(),
			Title:    q.Quadrant.Title(),
			Hint:     q.Quadrant.Hint(),
			Total:    q.Total(),
			Groups:   make([]MatrixGroupDTO, 0, len(q.Groups)),
		}
		for _, g := range q.Groups {
			gd := MatrixGroupDTO{Label: g.Label, Tasks: productivityQueries.ToTaskDTOs(g.Tasks)}
			if g.Priority != nil {
				gd.Priority = g.Priority.String()
			}
			qd.Groups = append(qd.Groups, gd)
		}
		dto.Quadrants = append(dto.Quadrants, qd)
	}
	return dto
}

func toDayPlanDTO(p domain.DayPlan) DayPlanDTO {
	dto := DayPlanDTO{Date: p.Date.String()}
	for _, b := range p.Buckets() {
		dto.Buckets = append(dto.Buckets, BucketPlanDTO{
			Bucket:     b.Bucket.String(),
			Quota:      b.Quota,
			Scheduled:  productivityQueries.ToTaskDTOs(b.Scheduled),
			TotalCount: b.TotalCount,
			Exceeded:   b.Exceeded,
		})
	}
	return dto
}

func toScheduleDTO(date value_objects.Date, blocks []domain.TimeBlock) ScheduleDTO {
	dto := ScheduleDTO{Date: date.String(), Blocks: make([]TimeBlockDTO, 0, len(blocks))}
	for _, b := range blocks {
		dto.Blocks = append(dto.Blocks, TimeBlockDTO{
			SlotID:      b.SlotID,
			TimeRange:   b.TimeRange(),
			Start:       hhmm(b.StartAt(date, time.UTC)),
			End:         hhmm(b.EndAt(date, time.UTC)),
			Activity:    b.Activity,
			Description: b.Description,
			TaskID:      b.BoundTaskID,
			Fixed:       b.Fixed,
		})
	}
	return dto
}

func hhmm(t time.Time) string {
	return t.Format("15:04")
}
