// Package api provides the HTTP API of OptiFlow.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/felixgeelhaar/optiflow/adapter/cli"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

const requestIDHeader = "X-Request-ID"

// Server is the HTTP API server.
type Server struct {
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
	app    *cli.App
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "127.0.0.1:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new API server backed by the application handlers.
func NewServer(cfg ServerConfig, app *cli.App, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	var metrics observability.Metrics = observability.NoopMetrics{}
	if app != nil && app.Metrics != nil {
		metrics = app.Metrics
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger, metrics), cors.Default())

	s := &Server{
		router: router,
		logger: logger,
		app:    app,
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// registerRoutes sets up the API routes.
func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/tasks", s.listTasks)
		v1.POST("/tasks", s.createTask)
		v1.POST("/tasks/quick", s.quickAdd)
		v1.GET("/tasks/:id", s.getTask)
		v1.PATCH("/tasks/:id", s.updateTask)
		v1.DELETE("/tasks/:id", s.deleteTask)
		v1.POST("/tasks/:id/toggle", s.toggleComplete)

		v1.GET("/matrix", s.matrix)
		v1.GET("/abcde", s.abcde)
		v1.GET("/board", s.board)
		v1.GET("/plan", s.dayPlan)
		v1.GET("/schedule", s.schedule)
		v1.GET("/schedule.ics", s.scheduleICS)
		v1.GET("/stats", s.stats)
	}
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(c *gin.Context) {
	if s.app == nil || s.app.Health == nil {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	health := s.app.Health.GetOverallHealth(c.Request.Context())
	status := http.StatusOK
	if health.Status == observability.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, health)
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting API server",
		"addr", s.server.Addr,
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

// Serve runs the server until ctx is canceled, then shuts it down.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// requestLogger tags the request context with a request id (taken from
// X-Request-ID when the client sends one) and times the request.
func requestLogger(logger *slog.Logger, metrics observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := observability.WithRequestID(c.Request.Context(), c.GetHeader(requestIDHeader))
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, observability.RequestIDFromContext(ctx))

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		timer := observability.StartTimer(ctx, c.Request.Method+" "+route, logger, metrics)

		c.Next()

		var err error
		if last := c.Errors.Last(); last != nil {
			err = last.Err
		}
		status := c.Writer.Status()
		timer.Stop(err, []observability.Tag{observability.T("status", strconv.Itoa(status))}, "status", status)
	}
}
