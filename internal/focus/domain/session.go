package domain

import (
	"errors"
	"fmt"
	"time"
)

// Default durations of a focus session.
const (
	DefaultWorkDuration  = 25 * time.Minute
	DefaultBreakDuration = 5 * time.Minute
)

// DefaultSessionID names the single session of a local user.
const DefaultSessionID = "default"

var (
	ErrInvalidDuration = errors.New("work duration must be positive and break duration non-negative")
	ErrAlreadyRunning  = errors.New("focus session is already running")
	ErrNotRunning      = errors.New("focus session is not running")
	ErrNotPaused       = errors.New("focus session is not paused")
)

// Phase is the part of the cycle a session is counting down.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// State is the run state of a session.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Session is a pomodoro countdown. A work phase is followed by an optional
// break phase; when the cycle ends the session goes idle with a full work
// countdown again.
type Session struct {
	ID             string        `json:"id"`
	Phase          Phase         `json:"phase"`
	State          State         `json:"state"`
	WorkDuration   time.Duration `json:"workDuration"`
	BreakDuration  time.Duration `json:"breakDuration"`
	Remaining      time.Duration `json:"remaining"`
	CompletedCount int           `json:"completedCount"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// NewSession creates an idle session ready to count down work.
func NewSession(id string, work, brk time.Duration, now time.Time) (*Session, error) {
	if work <= 0 || brk < 0 {
		return nil, ErrInvalidDuration
	}
	if id == "" {
		id = DefaultSessionID
	}
	return &Session{
		ID:            id,
		Phase:         PhaseWork,
		State:         StateIdle,
		WorkDuration:  work,
		BreakDuration: brk,
		Remaining:     work,
		UpdatedAt:     now,
	}, nil
}

// Start begins counting down. Starting a paused session resumes it.
func (s *Session) Start(now time.Time) error {
	switch s.State {
	case StateRunning:
		return ErrAlreadyRunning
	case StatePaused:
		return s.Resume(now)
	}
	s.State = StateRunning
	s.UpdatedAt = now
	return nil
}

// Pause stops the countdown and keeps the remaining time.
func (s *Session) Pause(now time.Time) error {
	if s.State != StateRunning {
		return ErrNotRunning
	}
	s.State = StatePaused
	s.UpdatedAt = now
	return nil
}

// Resume continues a paused countdown.
func (s *Session) Resume(now time.Time) error {
	if s.State != StatePaused {
		return ErrNotPaused
	}
	s.State = StateRunning
	s.UpdatedAt = now
	return nil
}

// Reset returns the session to an idle work phase with the full duration.
// The completed count is kept.
func (s *Session) Reset(now time.Time) {
	s.Phase = PhaseWork
	s.State = StateIdle
	s.Remaining = s.WorkDuration
	s.UpdatedAt = now
}

// Tick advances a running countdown by elapsed. It returns the phase that
// finished during this tick, if any. A finished work phase moves into the
// break phase when one is configured; otherwise the cycle ends.
func (s *Session) Tick(elapsed time.Duration, now time.Time) (Phase, bool) {
	if s.State != StateRunning || elapsed <= 0 {
		return "", false
	}
	s.UpdatedAt = now
	s.Remaining -= elapsed
	if s.Remaining > 0 {
		return "", false
	}

	finished := s.Phase
	if finished == PhaseWork {
		s.CompletedCount++
		if s.BreakDuration > 0 {
			s.Phase = PhaseBreak
			s.Remaining = s.BreakDuration
			return finished, true
		}
	}
	s.Phase = PhaseWork
	s.State = StateIdle
	s.Remaining = s.WorkDuration
	return finished, true
}

// Minutes returns the whole minutes left on the countdown.
func (s *Session) Minutes() int {
	return int(s.Remaining.Round(time.Second) / time.Minute)
}

// Seconds returns the seconds left past the whole minutes.
func (s *Session) Seconds() int {
	return int((s.Remaining.Round(time.Second) % time.Minute) / time.Second)
}

// Clock formats the remaining time as MM:SS.
func (s *Session) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.Minutes(), s.Seconds())
}

// IsRunning reports whether the countdown is active.
func (s *Session) IsRunning() bool {
	return s.State == StateRunning
}

// Clone returns an independent copy of the session.
func (s *Session) Clone() *Session {
	c := *s
	return &c
}
