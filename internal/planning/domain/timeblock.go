package domain

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

// Slot identifiers of the daily template.
const (
	SlotMorning1   = "morning1"
	SlotMorning2   = "morning2"
	SlotLunch      = "lunch"
	SlotAfternoon1 = "afternoon1"
	SlotAfternoon2 = "afternoon2"
)

// TimeBlock is one slot of the synthesized daily schedule.
// Start and End are offsets from midnight.
type TimeBlock struct {
	SlotID      string
	Start       time.Duration
	End         time.Duration
	Activity    string
	Description string
	BoundTaskID *string
	Fixed       bool
}

// TimeRange renders the slot as "8:30am - 10:30am".
func (b TimeBlock) TimeRange() string {
	return formatClock(b.Start) + " - " + formatClock(b.End)
}

// StartAt returns the absolute start of the block on date.
func (b TimeBlock) StartAt(date value_objects.Date, loc *time.Location) time.Time {
	return date.Time(loc).Add(b.Start)
}

// EndAt returns the absolute end of the block on date.
func (b TimeBlock) EndAt(date value_objects.Date, loc *time.Location) time.Time {
	return date.Time(loc).Add(b.End)
}

// IsBound reports whether a task occupies the block.
func (b TimeBlock) IsBound() bool {
	return b.BoundTaskID != nil
}

func clock(h, m int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
}

// DefaultTemplate returns a fresh copy of the daily slot template.
func DefaultTemplate() []TimeBlock {
	return []TimeBlock{
		{SlotID: SlotMorning1, Start: clock(8, 30), End: clock(10, 30), Activity: "Deep Work", Description: "Focus on most important task"},
		{SlotID: SlotMorning2, Start: clock(10, 30), End: clock(11, 30), Activity: "Important Work", Description: "Continue priority tasks"},
		{SlotID: SlotLunch, Start: clock(11, 30), End: clock(12, 30), Activity: "Lunch Break", Description: "Rest and recharge", Fixed: true},
		{SlotID: SlotAfternoon1, Start: clock(12, 30), End: clock(14, 0), Activity: "Medium Priority", Description: "Work on important but less urgent tasks"},
		{SlotID: SlotAfternoon2, Start: clock(14, 0), End: clock(15, 30), Activity: "Team Collaboration", Description: "Meetings and coordination"},
	}
}

var mediumSlots = []string{SlotMorning2, SlotAfternoon1}

// SynthesizeTimeBlocks fills the daily template from the 1-3-5 plan of today.
// The first major task takes morning1, the first two medium tasks take morning2
// and afternoon1. Completed tasks leave their slot at the default.
func SynthesizeTimeBlocks(tasks []*task.Task, today value_objects.Date) []TimeBlock {
	blocks := DefaultTemplate()
	plan := PlanDay(tasks, today)

	if len(plan.Major.Scheduled) > 0 {
		bind(blocks, SlotMorning1, plan.Major.Scheduled[0])
	}
	for i, t := range plan.Medium.Scheduled {
		if i >= len(mediumSlots) {
			break
		}
		bind(blocks, mediumSlots[i], t)
	}
	return blocks
}

func bind(blocks []TimeBlock, slotID string, t *task.Task) {
	if t.IsCompleted() {
		return
	}
	for i := range blocks {
		if blocks[i].SlotID != slotID || blocks[i].Fixed {
			continue
		}
		id := t.ID()
		blocks[i].Activity = t.Name()
		if t.Description() != "" {
			blocks[i].Description = t.Description()
		}
		blocks[i].BoundTaskID = &id
		return
	}
}

func formatClock(offset time.Duration) string {
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	suffix := "am"
	if h >= 12 {
		suffix = "pm"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d%s", h12, m, suffix)
}
