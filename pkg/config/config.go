package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends for the task list.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Task store
	Store      string
	DataFile   string
	SQLitePath string

	// Focus session store; empty keeps sessions in memory.
	RedisURL string

	// Listeners
	HTTPAddr         string
	MCPAddr          string
	MCPAuthToken     string
	WorkerHealthAddr string

	// Focus clock
	FocusDuration time.Duration
	BreakDuration time.Duration

	// Persistence circuit breaker
	PersistBreakerMaxFailures int
	PersistBreakerTimeout     time.Duration
}

// Load reads the configuration from the environment and an optional .env
// file in the working directory. Malformed values are reported together.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var env envReader
	cfg := &Config{
		AppEnv:    env.str("APP_ENV", "development"),
		LogLevel:  env.str("LOG_LEVEL", "info"),
		LogFormat: env.str("LOG_FORMAT", "text"),

		Store:      env.str("OPTIFLOW_STORE", StoreJSON),
		DataFile:   env.str("OPTIFLOW_DATA_FILE", defaultDataPath("tasks.json")),
		SQLitePath: env.str("SQLITE_PATH", defaultDataPath("optiflow.db")),

		RedisURL: env.str("REDIS_URL", ""),

		HTTPAddr:         env.str("HTTP_ADDR", "127.0.0.1:8080"),
		MCPAddr:          env.str("MCP_ADDR", "127.0.0.1:8082"),
		MCPAuthToken:     env.str("MCP_AUTH_TOKEN", ""),
		WorkerHealthAddr: env.str("WORKER_HEALTH_ADDR", ""),

		FocusDuration: env.minutes("FOCUS_MINUTES", 25),
		BreakDuration: env.minutes("FOCUS_BREAK_MINUTES", 5),

		PersistBreakerMaxFailures: env.int("PERSIST_BREAKER_MAX_FAILURES", 3),
		PersistBreakerTimeout:     env.duration("PERSIST_BREAKER_TIMEOUT", 30*time.Second),
	}

	if err := errors.Join(append(env.errs, cfg.Validate())...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains([]string{StoreJSON, StoreSQLite}, c.Store) {
		errs = append(errs, fmt.Errorf("OPTIFLOW_STORE: unknown store %q", c.Store))
	}
	if !slices.Contains([]string{"text", "json"}, c.LogFormat) {
		errs = append(errs, fmt.Errorf("LOG_FORMAT: unknown format %q", c.LogFormat))
	}
	if c.PersistBreakerMaxFailures < 1 {
		errs = append(errs, errors.New("PERSIST_BREAKER_MAX_FAILURES: must be at least 1"))
	}
	return errors.Join(errs...)
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// IsSQLite returns true if tasks are stored in SQLite.
func (c *Config) IsSQLite() bool {
	return c.Store == StoreSQLite
}

// HasRedis returns true if a Redis URL is configured.
func (c *Config) HasRedis() bool {
	return c.RedisURL != ""
}

// envReader looks up variables and collects parse failures. Unset or empty
// variables take the default.
type envReader struct {
	errs []error
}

func (r *envReader) str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (r *envReader) int(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %q is not an integer", key, v))
		return def
	}
	return n
}

func (r *envReader) minutes(key string, def int) time.Duration {
	n := r.int(key, def)
	if n <= 0 {
		r.errs = append(r.errs, fmt.Errorf("%s: must be a positive number of minutes", key))
		n = def
	}
	return time.Duration(n) * time.Minute
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".optiflow", name)
	}
	return filepath.Join(home, ".optiflow", name)
}
