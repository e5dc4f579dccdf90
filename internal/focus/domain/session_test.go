package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, work, brk time.Duration) *Session {
	t.Helper()
	s, err := NewSession("", work, brk, t0)
	require.NoError(t, err)
	return s
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, DefaultWorkDuration, DefaultBreakDuration)

	assert.Equal(t, DefaultSessionID, s.ID)
	assert.Equal(t, PhaseWork, s.Phase)
	assert.Equal(t, StateIdle, s.State)
	assert.Equal(t, 25*time.Minute, s.Remaining)
	assert.Equal(t, "25:00", s.Clock())
}

func TestNewSession_InvalidDurations(t *testing.T) {
	tests := []struct {
		name string
		work time.Duration
		brk  time.Duration
	}{
		{"zero work", 0, time.Minute},
		{"negative work", -time.Minute, 0},
		{"negative break", time.Minute, -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession("x", tt.work, tt.brk, t0)
			assert.ErrorIs(t, err, ErrInvalidDuration)
		})
	}
}

func TestSession_Countdown(t *testing.T) {
	s := newTestSession(t, 25*time.Minute, 0)
	require.NoError(t, s.Start(t0))

	_, done := s.Tick(time.Second, t0.Add(time.Second))
	assert.False(t, done)
	assert.Equal(t, 24, s.Minutes())
	assert.Equal(t, 59, s.Seconds())
	assert.Equal(t, "24:59", s.Clock())

	for i := 0; i < 59; i++ {
		s.Tick(time.Second, t0)
	}
	assert.Equal(t, "24:00", s.Clock())
}

func TestSession_TickIgnoredWhenNotRunning(t *testing.T) {
	s := newTestSession(t, time.Minute, 0)

	_, done := s.Tick(time.Second, t0)
	assert.False(t, done)
	assert.Equal(t, time.Minute, s.Remaining)

	require.NoError(t, s.Start(t0))
	require.NoError(t, s.Pause(t0))
	s.Tick(time.Second, t0)
	assert.Equal(t, time.Minute, s.Remaining)
}

func TestSession_WorkWithoutBreakEndsCycle(t *testing.T) {
	s := newTestSession(t, 2*time.Second, 0)
	require.NoError(t, s.Start(t0))

	s.Tick(time.Second, t0)
	phase, done := s.Tick(time.Second, t0)

	assert.True(t, done)
	assert.Equal(t, PhaseWork, phase)
	assert.Equal(t, StateIdle, s.State)
	assert.Equal(t, 2*time.Second, s.Remaining)
	assert.Equal(t, 1, s.CompletedCount)
}

func TestSession_WorkThenBreak(t *testing.T) {
	s := newTestSession(t, time.Second, 2*time.Second)
	require.NoError(t, s.Start(t0))

	phase, done := s.Tick(time.Second, t0)
	require.True(t, done)
	assert.Equal(t, PhaseWork, phase)
	assert.Equal(t, PhaseBreak, s.Phase)
	assert.True(t, s.IsRunning())
	assert.Equal(t, 2*time.Second, s.Remaining)

	s.Tick(time.Second, t0)
	phase, done = s.Tick(time.Second, t0)
	require.True(t, done)
	assert.Equal(t, PhaseBreak, phase)
	assert.Equal(t, PhaseWork, s.Phase)
	assert.Equal(t, StateIdle, s.State)
	assert.Equal(t, time.Second, s.Remaining)
	assert.Equal(t, 1, s.CompletedCount)
}

func TestSession_Transitions(t *testing.T) {
	s := newTestSession(t, time.Minute, 0)

	assert.ErrorIs(t, s.Pause(t0), ErrNotRunning)
	assert.ErrorIs(t, s.Resume(t0), ErrNotPaused)

	require.NoError(t, s.Start(t0))
	assert.ErrorIs(t, s.Start(t0), ErrAlreadyRunning)

	require.NoError(t, s.Pause(t0))
	assert.Equal(t, StatePaused, s.State)

	require.NoError(t, s.Start(t0))
	assert.Equal(t, StateRunning, s.State)
}

func TestSession_Reset(t *testing.T) {
	s := newTestSession(t, time.Minute, time.Minute)
	require.NoError(t, s.Start(t0))
	s.Tick(time.Minute, t0)
	require.Equal(t, PhaseBreak, s.Phase)

	later := t0.Add(time.Hour)
	s.Reset(later)

	assert.Equal(t, PhaseWork, s.Phase)
	assert.Equal(t, StateIdle, s.State)
	assert.Equal(t, time.Minute, s.Remaining)
	assert.Equal(t, 1, s.CompletedCount)
	assert.Equal(t, later, s.UpdatedAt)
}

func TestSession_Clone(t *testing.T) {
	s := newTestSession(t, time.Minute, 0)
	c := s.Clone()
	c.Remaining = time.Second

	assert.Equal(t, time.Minute, s.Remaining)
}
