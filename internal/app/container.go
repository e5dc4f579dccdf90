package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	focusApp "github.com/felixgeelhaar/optiflow/internal/focus/application"
	focusDomain "github.com/felixgeelhaar/optiflow/internal/focus/domain"
	focusInfra "github.com/felixgeelhaar/optiflow/internal/focus/infrastructure"
	planningQueries "github.com/felixgeelhaar/optiflow/internal/planning/application/queries"
	planningServices "github.com/felixgeelhaar/optiflow/internal/planning/application/services"
	"github.com/felixgeelhaar/optiflow/internal/planning/infrastructure/ical"
	"github.com/felixgeelhaar/optiflow/internal/productivity/application/commands"
	"github.com/felixgeelhaar/optiflow/internal/productivity/application/queries"
	productivityServices "github.com/felixgeelhaar/optiflow/internal/productivity/application/services"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/infrastructure/persistence"
	sharedApplication "github.com/felixgeelhaar/optiflow/internal/shared/application"
	"github.com/felixgeelhaar/optiflow/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/optiflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/optiflow/internal/shared/infrastructure/migrations"
	sharedPersistence "github.com/felixgeelhaar/optiflow/internal/shared/infrastructure/persistence"
	"github.com/felixgeelhaar/optiflow/pkg/config"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

// MeterScope is the instrumentation scope of the application's metrics.
const MeterScope = "github.com/felixgeelhaar/optiflow"

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics observability.Metrics
	Health  *observability.HealthRegistry

	// SQLite (nil when tasks live in the JSON snapshot)
	DB *sql.DB

	// Redis (nil when focus sessions live in memory)
	RedisClient *redis.Client

	// Task store
	TaskRepo  task.Repository
	Persister *persistence.BreakerPersister

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Events
	EventBus *eventbus.InProcessEventBus

	// Planning
	CapacityGuard   *planningServices.CapacityGuard
	PlanningHandler *planningQueries.PlanningHandler
	ICSExporter     *ical.Exporter

	// Task Command Handlers
	CreateTaskHandler     *commands.CreateTaskHandler
	QuickAddHandler       *commands.QuickAddHandler
	UpdateTaskHandler     *commands.UpdateTaskHandler
	ToggleCompleteHandler *commands.ToggleCompleteHandler
	DeleteTaskHandler     *commands.DeleteTaskHandler

	// Task Query Handlers
	ListTasksHandler *queries.ListTasksHandler
	GetTaskHandler   *queries.GetTaskHandler

	// Focus clock
	FocusStore   focusDomain.SessionStore
	FocusService *focusApp.Service
}

// NewContainer wires the application for cfg. Tasks are kept in the JSON
// snapshot unless the SQLite store is configured.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	logger = observability.OrDefault(logger)
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewGlobalOTelMetrics(MeterScope),
		Health:  observability.NewHealthRegistry(),
	}

	if err := c.initTaskStore(ctx); err != nil {
		return nil, err
	}
	c.initRedis(ctx)

	// Create event bus
	c.EventBus = eventbus.NewInProcessEventBus(logger)
	c.EventBus.RegisterConsumer(productivityServices.NewTaskMetricsConsumer(c.Metrics))

	// Create planning services
	c.CapacityGuard = planningServices.NewCapacityGuard(c.Metrics, logger)
	c.PlanningHandler = planningQueries.NewPlanningHandler(c.TaskRepo, nil)
	c.ICSExporter = ical.NewExporter(time.Local)

	// Create task command handlers
	c.CreateTaskHandler = commands.NewCreateTaskHandler(c.TaskRepo, c.UnitOfWork, c.CapacityGuard, c.EventBus, nil, logger)
	c.QuickAddHandler = commands.NewQuickAddHandler(c.CreateTaskHandler)
	c.UpdateTaskHandler = commands.NewUpdateTaskHandler(c.TaskRepo, c.UnitOfWork, c.CapacityGuard, c.EventBus, logger)
	c.ToggleCompleteHandler = commands.NewToggleCompleteHandler(c.TaskRepo, c.UnitOfWork, c.EventBus, logger)
	c.DeleteTaskHandler = commands.NewDeleteTaskHandler(c.TaskRepo, c.UnitOfWork, c.EventBus, logger)

	// Create task query handlers
	c.ListTasksHandler = queries.NewListTasksHandler(c.TaskRepo)
	c.GetTaskHandler = queries.NewGetTaskHandler(c.TaskRepo)

	// Create focus clock
	focusConfig := focusApp.DefaultConfig()
	if cfg.FocusDuration > 0 {
		focusConfig.WorkDuration = cfg.FocusDuration
	}
	if cfg.BreakDuration >= 0 {
		focusConfig.BreakDuration = cfg.BreakDuration
	}
	c.FocusService = focusApp.NewService(c.FocusStore, focusConfig, c.Metrics, logger)

	logger.Info("container ready",
		"store", cfg.Store,
		"focus_store", focusStoreName(c.RedisClient),
	)

	return c, nil
}

func (c *Container) initTaskStore(ctx context.Context) error {
	cfg := c.Config
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to initialize SQLite: %w", err)
		}
		applied, err := migrations.RunSQLiteMigrations(ctx, db)
		if err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to run SQLite migrations: %w", err)
		}
		if len(applied) > 0 {
			c.Logger.Info("applied SQLite migrations", "versions", applied)
		}

		repo := persistence.NewSQLiteTaskRepository(db)
		c.DB = db
		c.TaskRepo = repo
		c.UnitOfWork = sharedPersistence.NewSQLiteUnitOfWork(db)
		c.Health.Register("store", observability.StoreHealthChecker(repo.Ping))
		c.Logger.Info("using SQLite task store", "database", cfg.SQLitePath)

	case config.StoreJSON, "":
		breakerConfig := persistence.DefaultBreakerConfig()
		if cfg.PersistBreakerMaxFailures > 0 {
			breakerConfig.MaxFailures = uint32(cfg.PersistBreakerMaxFailures)
		}
		if cfg.PersistBreakerTimeout > 0 {
			breakerConfig.Timeout = cfg.PersistBreakerTimeout
		}

		file := persistence.NewJSONFilePersister(cfg.DataFile, c.Logger)
		c.Persister = persistence.NewBreakerPersister(file, breakerConfig, c.Logger, c.Metrics)
		repo := persistence.NewMemoryTaskRepository(c.Persister, c.Logger)
		c.TaskRepo = repo
		c.UnitOfWork = sharedPersistence.NewLockUnitOfWork()
		c.Health.Register("store", observability.StoreHealthChecker(repo.Ping))
		c.Health.Register("persistence", observability.BreakerHealthChecker(c.Persister.State))
		c.Health.Register("snapshot", observability.ProbeChecker("task snapshot", observability.HealthStatusDegraded, file.Check))
		c.Logger.Info("using JSON task store", "file", file.Path())

	default:
		return fmt.Errorf("unsupported task store: %q", cfg.Store)
	}
	return nil
}

// initRedis connects the focus session store. Outside production an
// unreachable Redis falls back to memory.
func (c *Container) initRedis(ctx context.Context) {
	c.FocusStore = focusInfra.NewInMemorySessionStore()
	if !c.Config.HasRedis() {
		return
	}

	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		c.Logger.Warn("invalid Redis URL, focus sessions will use in-memory fallback", "error", err)
		return
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		c.Logger.Warn("Redis not available, focus sessions will use in-memory fallback", "error", err)
		return
	}

	store := focusInfra.NewRedisSessionStore(client, focusInfra.DefaultSessionTTL)
	c.RedisClient = client
	c.FocusStore = store
	c.Health.Register("redis", observability.RedisHealthChecker(store.Ping))
	c.Logger.Info("connected to Redis")
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.FocusService != nil {
		c.FocusService.Stop()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		} else {
			c.Logger.Info("Redis connection closed")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Logger.Warn("error closing SQLite connection", "error", err)
		} else {
			c.Logger.Info("SQLite connection closed")
		}
	}
}

func focusStoreName(client *redis.Client) string {
	if client != nil {
		return "redis"
	}
	return "memory"
}
