// Package observability provides structured logging, metrics collection,
// and health reporting for OptiFlow.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// LogLevel is the configured verbosity, as read from LOG_LEVEL.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Redacted replaces the value of secret attributes.
const Redacted = "[REDACTED]"

// secretKeys are attribute keys never written in clear, matched case-insensitively.
var secretKeys = map[string]bool{
	"token":          true,
	"authorization":  true,
	"mcp_auth_token": true,
	"redis_url":      true,
}

// LogConfig configures NewLogger. A nil Output writes to stderr so command
// output on stdout stays clean.
type LogConfig struct {
	Level          LogLevel
	Format         LogFormat
	Output         io.Writer
	AddSource      bool
	ServiceName    string
	ServiceVersion string
}

// DefaultLogConfig returns the defaults used by the CLI.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:          LogLevelInfo,
		Format:         LogFormatText,
		Output:         os.Stderr,
		ServiceName:    "optiflow",
		ServiceVersion: "dev",
	}
}

// NewLogger builds a logger that stamps service attributes and the
// correlation and request IDs found on the context.
func NewLogger(cfg LogConfig) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level:       parseSlogLevel(cfg.Level),
		AddSource:   cfg.AddSource,
		ReplaceAttr: redactSecrets,
	}

	var inner slog.Handler = slog.NewTextHandler(out, opts)
	if cfg.Format == LogFormatJSON {
		inner = slog.NewJSONHandler(out, opts)
	}

	var service []slog.Attr
	if cfg.ServiceName != "" {
		service = append(service, slog.String("service", cfg.ServiceName))
	}
	if cfg.ServiceVersion != "" {
		service = append(service, slog.String("version", cfg.ServiceVersion))
	}
	return slog.New(&contextHandler{inner: inner, service: service})
}

// LoggerFor builds a logger from configuration strings. Production logs JSON
// with source locations unless format says otherwise.
func LoggerFor(env, level, format, version string) *slog.Logger {
	cfg := DefaultLogConfig()
	if env == "production" {
		cfg.Format, cfg.AddSource = LogFormatJSON, true
	}
	if level != "" {
		cfg.Level = LogLevel(level)
	}
	if format != "" {
		cfg.Format = LogFormat(format)
	}
	if version != "" {
		cfg.ServiceVersion = version
	}
	return NewLogger(cfg)
}

// OrDefault returns logger, or slog.Default() when logger is nil.
func OrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// parseSlogLevel accepts the slog spellings ("warn", "DEBUG", "info+2").
// Anything else logs at info.
func parseSlogLevel(level LogLevel) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func redactSecrets(groups []string, a slog.Attr) slog.Attr {
	if secretKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, Redacted)
	}
	return a
}

type contextHandler struct {
	inner   slog.Handler
	service []slog.Attr
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(h.service...)
	if id := CorrelationIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String(CorrelationIDKey, id))
	}
	if id := RequestIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String(RequestIDKey, id))
	}
	return h.inner.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{inner: h.inner.WithAttrs(attrs), service: h.service}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{inner: h.inner.WithGroup(name), service: h.service}
}
