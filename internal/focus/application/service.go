package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/optiflow/internal/focus/domain"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

// Config holds configuration for the focus clock.
type Config struct {
	SessionID     string
	WorkDuration  time.Duration
	BreakDuration time.Duration
	TickInterval  time.Duration
}

// DefaultConfig returns a 25 minute work phase with a 5 minute break.
func DefaultConfig() Config {
	return Config{
		SessionID:     domain.DefaultSessionID,
		WorkDuration:  domain.DefaultWorkDuration,
		BreakDuration: domain.DefaultBreakDuration,
		TickInterval:  time.Second,
	}
}

// Listener observes the session after every tick. finished is empty unless a
// phase ended on that tick.
type Listener func(session domain.Session, finished domain.Phase)

// Service drives a focus session. Commands load, mutate and save the session;
// the ticker loop advances it once per interval in its own goroutine.
type Service struct {
	store    domain.SessionStore
	config   Config
	metrics  observability.Metrics
	logger   *slog.Logger
	now      func() time.Time
	listener Listener

	sessionMu sync.Mutex

	wg       sync.WaitGroup
	stopChan chan struct{}
	running  bool
	mu       sync.Mutex
}

// NewService creates a new focus service.
func NewService(store domain.SessionStore, config Config, metrics observability.Metrics, logger *slog.Logger) *Service {
	if config.SessionID == "" {
		config.SessionID = domain.DefaultSessionID
	}
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &Service{
		store:    store,
		config:   config,
		metrics:  metrics,
		logger:   observability.OrDefault(logger),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

// SetListener registers the tick observer. It must be called before StartTicker.
func (s *Service) SetListener(l Listener) {
	s.listener = l
}

// Status returns the current session, creating an idle one when none is stored.
func (s *Service) Status(ctx context.Context) (*domain.Session, error) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	return s.load(ctx)
}

// Start begins or resumes the countdown.
func (s *Service) Start(ctx context.Context) (*domain.Session, error) {
	return s.mutate(ctx, "start", func(session *domain.Session, now time.Time) error {
		return session.Start(now)
	})
}

// Pause stops the countdown.
func (s *Service) Pause(ctx context.Context) (*domain.Session, error) {
	return s.mutate(ctx, "pause", func(session *domain.Session, now time.Time) error {
		return session.Pause(now)
	})
}

// Resume continues a paused countdown.
func (s *Service) Resume(ctx context.Context) (*domain.Session, error) {
	return s.mutate(ctx, "resume", func(session *domain.Session, now time.Time) error {
		return session.Resume(now)
	})
}

// Reset returns the session to a full idle work phase.
func (s *Service) Reset(ctx context.Context) (*domain.Session, error) {
	return s.mutate(ctx, "reset", func(session *domain.Session, now time.Time) error {
		session.Reset(now)
		return nil
	})
}

// Tick advances a running session by elapsed.
func (s *Service) Tick(ctx context.Context, elapsed time.Duration) (*domain.Session, domain.Phase, error) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	session, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	if !session.IsRunning() {
		return session, "", nil
	}

	finished, done := session.Tick(elapsed, s.now())
	if err := s.store.Save(ctx, session); err != nil {
		return nil, "", err
	}
	s.metrics.Gauge(observability.MetricFocusRemaining, session.Remaining.Seconds(), observability.T("phase", string(session.Phase)))
	if done {
		s.logger.Info("focus phase finished",
			"session_id", session.ID,
			"phase", finished,
			"completed", session.CompletedCount,
		)
		if finished == domain.PhaseWork {
			s.metrics.Counter(observability.MetricFocusSessions, 1)
		}
	}
	return session, finished, nil
}

// StartTicker begins the countdown loop in a goroutine.
func (s *Service) StartTicker(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	stop := make(chan struct{})
	s.stopChan = stop
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx, stop)

	s.logger.Debug("focus ticker started", "interval", s.config.TickInterval)
	return nil
}

// Stop stops the countdown loop and waits for it to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Debug("focus ticker stopped")
}

// IsTicking returns true if the countdown loop is running.
func (s *Service) IsTicking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Service) run(ctx context.Context, stop chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			if s.running && s.stopChan == stop {
				s.running = false
			}
			s.mu.Unlock()
			s.logger.Debug("focus ticker stopped", "reason", ctx.Err())
			return
		case <-stop:
			return
		case <-ticker.C:
			session, finished, err := s.Tick(ctx, s.config.TickInterval)
			if err != nil {
				s.logger.Error("failed to advance focus session", "error", err)
				continue
			}
			if s.listener != nil {
				s.listener(*session, finished)
			}
		}
	}
}

func (s *Service) mutate(ctx context.Context, op string, fn func(*domain.Session, time.Time) error) (*domain.Session, error) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	session, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(session, s.now()); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Debug("focus session updated", "op", op, "state", session.State, "remaining", session.Clock())
	return session, nil
}

func (s *Service) load(ctx context.Context) (*domain.Session, error) {
	session, err := s.store.Load(ctx, s.config.SessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return domain.NewSession(s.config.SessionID, s.config.WorkDuration, s.config.BreakDuration, s.now())
	}
	return session, err
}
