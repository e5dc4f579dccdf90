package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felixgeelhaar/optiflow/adapter/cli"
	"github.com/felixgeelhaar/optiflow/internal/app"
	"github.com/felixgeelhaar/optiflow/pkg/config"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

const statsInterval = time.Minute

func main() {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.LoggerFor(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat, cli.Version).
		With(slog.String("component", "worker"))
	logger.Info("starting optiflow worker")

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	// The worker owns the focus clock so detached sessions keep counting down.
	focus := container.FocusService
	if err := focus.StartTicker(ctx); err != nil {
		logger.Error("failed to start focus ticker", "error", err)
		os.Exit(1)
	}
	defer focus.Stop()

	container.Health.Register("focus_ticker", func(ctx context.Context) observability.HealthCheckResult {
		if !focus.IsTicking() {
			return observability.HealthCheckResult{Status: observability.HealthStatusUnhealthy, Message: "ticker stopped"}
		}
		return observability.HealthCheckResult{Status: observability.HealthStatusHealthy}
	})

	if cfg.WorkerHealthAddr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			response := map[string]any{
				"status":  "ok",
				"ticking": focus.IsTicking(),
			}
			if session, err := focus.Status(r.Context()); err == nil {
				response["phase"] = session.Phase
				response["state"] = session.State
				response["remaining"] = session.Clock()
				response["completed"] = session.CompletedCount
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(response)
		})

		mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
			checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			health := container.Health.GetOverallHealth(checkCtx)
			w.Header().Set("Content-Type", "application/json")
			if health.Status == observability.HealthStatusUnhealthy {
				w.WriteHeader(http.StatusServiceUnavailable)
			}
			_ = json.NewEncoder(w).Encode(health)
		})

		healthSrv := &http.Server{
			Addr:              cfg.WorkerHealthAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			logger.Info("health server starting", "addr", cfg.WorkerHealthAddr)
			if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("health server error", "error", err)
			}
		}()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := healthSrv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("health server shutdown error", "error", err)
			}
		}()
	}

	statsTicker := time.NewTicker(statsInterval)
	defer statsTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopped")
			return
		case <-statsTicker.C:
			session, err := focus.Status(ctx)
			if err != nil {
				logger.Warn("focus status failed", "error", err)
				continue
			}
			logger.Info("focus stats",
				"phase", session.Phase,
				"state", session.State,
				"remaining", session.Clock(),
				"completed", session.CompletedCount,
			)
		}
	}
}
