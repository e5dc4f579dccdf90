package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"APP_ENV", "LOG_LEVEL", "LOG_FORMAT",
	"OPTIFLOW_STORE", "OPTIFLOW_DATA_FILE", "SQLITE_PATH",
	"REDIS_URL", "HTTP_ADDR", "MCP_ADDR", "MCP_AUTH_TOKEN",
	"FOCUS_MINUTES", "FOCUS_BREAK_MINUTES", "WORKER_HEALTH_ADDR",
	"PERSIST_BREAKER_MAX_FAILURES", "PERSIST_BREAKER_TIMEOUT",
}

// isolate blanks every variable Load reads and runs from an empty directory
// so no .env file is picked up.
func isolate(t *testing.T, set map[string]string) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	for key, value := range set {
		t.Setenv(key, value)
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t, nil)

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, StoreJSON, cfg.Store)
	assert.False(t, cfg.IsSQLite())
	assert.Equal(t, "tasks.json", filepath.Base(cfg.DataFile))
	assert.Equal(t, ".optiflow", filepath.Base(filepath.Dir(cfg.DataFile)))
	assert.Equal(t, "optiflow.db", filepath.Base(cfg.SQLitePath))
	assert.False(t, cfg.HasRedis())
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddr)
	assert.Equal(t, "127.0.0.1:8082", cfg.MCPAddr)
	assert.Empty(t, cfg.MCPAuthToken)
	assert.Empty(t, cfg.WorkerHealthAddr)
	assert.Equal(t, 25*time.Minute, cfg.FocusDuration)
	assert.Equal(t, 5*time.Minute, cfg.BreakDuration)
	assert.Equal(t, 3, cfg.PersistBreakerMaxFailures)
	assert.Equal(t, 30*time.Second, cfg.PersistBreakerTimeout)
}

func TestLoad_FromEnv(t *testing.T) {
	isolate(t, map[string]string{
		"APP_ENV":                 "production",
		"LOG_FORMAT":              "json",
		"OPTIFLOW_STORE":          "sqlite",
		"SQLITE_PATH":             "/tmp/test.db",
		"REDIS_URL":               "redis://localhost:6379/1",
		"FOCUS_MINUTES":           "50",
		"FOCUS_BREAK_MINUTES":     "10",
		"PERSIST_BREAKER_TIMEOUT": "1m",
		"WORKER_HEALTH_ADDR":      ":9090",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.IsSQLite())
	assert.Equal(t, "/tmp/test.db", cfg.SQLitePath)
	assert.True(t, cfg.HasRedis())
	assert.Equal(t, 50*time.Minute, cfg.FocusDuration)
	assert.Equal(t, 10*time.Minute, cfg.BreakDuration)
	assert.Equal(t, time.Minute, cfg.PersistBreakerTimeout)
	assert.Equal(t, ":9090", cfg.WorkerHealthAddr)
}

func TestLoad_ReportsEveryBadValue(t *testing.T) {
	isolate(t, map[string]string{
		"OPTIFLOW_STORE":          "postgres",
		"FOCUS_MINUTES":           "twenty",
		"FOCUS_BREAK_MINUTES":     "0",
		"PERSIST_BREAKER_TIMEOUT": "soon",
	})

	cfg, err := Load()

	require.Error(t, err)
	assert.Nil(t, cfg)
	for _, want := range []string{
		`OPTIFLOW_STORE: unknown store "postgres"`,
		`FOCUS_MINUTES: "twenty" is not an integer`,
		"FOCUS_BREAK_MINUTES: must be a positive number of minutes",
		"PERSIST_BREAKER_TIMEOUT:",
	} {
		assert.ErrorContains(t, err, want)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t, nil)
	// godotenv never overrides a variable that exists, even when empty.
	require.NoError(t, os.Unsetenv("FOCUS_MINUTES"))
	require.NoError(t, os.Unsetenv("HTTP_ADDR"))
	require.NoError(t, writeFile(".env", "FOCUS_MINUTES=45\nHTTP_ADDR=127.0.0.1:9000\n"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 45*time.Minute, cfg.FocusDuration)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Store: StoreJSON, LogFormat: "text", PersistBreakerMaxFailures: 1}
	assert.NoError(t, valid.Validate())

	bad := Config{Store: "csv", LogFormat: "xml"}
	err := bad.Validate()
	assert.ErrorContains(t, err, `unknown store "csv"`)
	assert.ErrorContains(t, err, `unknown format "xml"`)
	assert.ErrorContains(t, err, "PERSIST_BREAKER_MAX_FAILURES")
}

func TestConfig_Modes(t *testing.T) {
	tests := []struct {
		env         string
		development bool
		production  bool
	}{
		{"development", true, false},
		{"production", false, true},
		{"test", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := &Config{AppEnv: tt.env}
			assert.Equal(t, tt.development, cfg.IsDevelopment())
			assert.Equal(t, tt.production, cfg.IsProduction())
		})
	}
}

func writeFile(name, content string) error {
	return os.WriteFile(name, []byte(content), 0o600)
}
