package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/optiflow/internal/planning/domain"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockByID(blocks []domain.TimeBlock, id string) domain.TimeBlock {
	for _, b := range blocks {
		if b.SlotID == id {
			return b
		}
	}
	return domain.TimeBlock{}
}

func TestDefaultTemplate(t *testing.T) {
	blocks := domain.DefaultTemplate()

	require.Len(t, blocks, 5)
	expected := []struct {
		id, timeRange, activity string
	}{
		{domain.SlotMorning1, "8:30am - 10:30am", "Deep Work"},
		{domain.SlotMorning2, "10:30am - 11:30am", "Important Work"},
		{domain.SlotLunch, "11:30am - 12:30pm", "Lunch Break"},
		{domain.SlotAfternoon1, "12:30pm - 2:00pm", "Medium Priority"},
		{domain.SlotAfternoon2, "2:00pm - 3:30pm", "Team Collaboration"},
	}
	for i, e := range expected {
		assert.Equal(t, e.id, blocks[i].SlotID)
		assert.Equal(t, e.timeRange, blocks[i].TimeRange())
		assert.Equal(t, e.activity, blocks[i].Activity)
		assert.Nil(t, blocks[i].BoundTaskID)
	}
	assert.True(t, blocks[2].Fixed)
}

func TestSynthesizeTimeBlocks(t *testing.T) {
	major := newTask(t, "Write proposal", value_objects.PriorityA, day(0), withDescription("Draft v1"))
	m1 := newTask(t, "Review PRs", value_objects.PriorityB, day(0))
	m2 := newTask(t, "Plan sprint", value_objects.PriorityB, day(0), withDescription("Q3"))
	m3 := newTask(t, "Third medium", value_objects.PriorityB, day(0))
	small := newTask(t, "Small", value_objects.PriorityC, day(0))

	blocks := domain.SynthesizeTimeBlocks([]*task.Task{major, m1, m2, m3, small}, today())

	b := blockByID(blocks, domain.SlotMorning1)
	assert.Equal(t, "Write proposal", b.Activity)
	assert.Equal(t, "Draft v1", b.Description)
	require.NotNil(t, b.BoundTaskID)
	assert.Equal(t, major.ID(), *b.BoundTaskID)

	b = blockByID(blocks, domain.SlotMorning2)
	assert.Equal(t, "Review PRs", b.Activity)
	assert.Equal(t, "Continue priority tasks", b.Description)

	b = blockByID(blocks, domain.SlotAfternoon1)
	assert.Equal(t, "Plan sprint", b.Activity)
	assert.Equal(t, "Q3", b.Description)

	assert.Equal(t, "Lunch Break", blockByID(blocks, domain.SlotLunch).Activity)
	assert.Nil(t, blockByID(blocks, domain.SlotAfternoon2).BoundTaskID)
	for _, blk := range blocks {
		if blk.BoundTaskID != nil {
			assert.NotEqual(t, small.ID(), *blk.BoundTaskID)
			assert.NotEqual(t, m3.ID(), *blk.BoundTaskID)
		}
	}
}

func TestSynthesizeTimeBlocks_CompletedLeavesDefault(t *testing.T) {
	major := newTask(t, "done major", value_objects.PriorityA, day(0), withStatus(task.StatusCompleted))
	m1 := newTask(t, "done medium", value_objects.PriorityB, day(0), withStatus(task.StatusCompleted))
	m2 := newTask(t, "open medium", value_objects.PriorityB, day(0))

	blocks := domain.SynthesizeTimeBlocks([]*task.Task{major, m1, m2}, today())

	assert.Equal(t, "Deep Work", blockByID(blocks, domain.SlotMorning1).Activity)
	assert.Equal(t, "Important Work", blockByID(blocks, domain.SlotMorning2).Activity)
	assert.Equal(t, "open medium", blockByID(blocks, domain.SlotAfternoon1).Activity)
}

func TestSynthesizeTimeBlocks_OnlyToday(t *testing.T) {
	tomorrow := newTask(t, "tomorrow", value_objects.PriorityA, day(1))

	blocks := domain.SynthesizeTimeBlocks([]*task.Task{tomorrow}, today())

	assert.Equal(t, domain.DefaultTemplate(), blocks)
}

func TestSynthesizeTimeBlocks_DoesNotMutateTasks(t *testing.T) {
	major := newTask(t, "major", value_objects.PriorityA, day(0))
	before := major.UpdatedAt()

	_ = domain.SynthesizeTimeBlocks([]*task.Task{major}, today())
	again := domain.SynthesizeTimeBlocks(nil, today())

	assert.Equal(t, before, major.UpdatedAt())
	assert.Equal(t, "Deep Work", blockByID(again, domain.SlotMorning1).Activity)
}

func TestTimeBlock_StartEnd(t *testing.T) {
	b := domain.DefaultTemplate()[0]
	d := value_objects.NewDate(2024, time.May, 10)

	assert.Equal(t, time.Date(2024, 5, 10, 8, 30, 0, 0, time.UTC), b.StartAt(d, time.UTC))
	assert.Equal(t, time.Date(2024, 5, 10, 10, 30, 0, 0, time.UTC), b.EndAt(d, time.UTC))
}
