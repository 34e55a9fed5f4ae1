package logger

import (
	"context"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

// requestIDKey carries the per-request correlation id through context
const requestIDKey contextKey = "requestID"

var (
	base     *logrus.Logger
	baseOnce sync.Once
)

// Config controls the shared logger instance
type Config struct {
	Level string `json:"level" mapstructure:"level"`
	// Environment toggles the formatter: "local" uses text, everything else JSON
	Environment string `json:"environment" mapstructure:"environment"`
}

// Init configures the shared logger. Safe to call more than once; only the
// first call takes effect.
func Init(cfg Config) *logrus.Logger {
	baseOnce.Do(func() {
		l := logrus.New()
		l.SetOutput(os.Stdout)

		level, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			level = logrus.InfoLevel
		}
		l.SetLevel(level)

		if cfg.Environment == "local" {
			l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		} else {
			l.SetFormatter(&logrus.JSONFormatter{})
		}
		base = l
	})
	return base
}

// WithRequestID returns a context tagged with a fresh request id, or the
// context unchanged if one is already present.
func WithRequestID(ctx context.Context) context.Context {
	if RequestID(ctx) != "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, uuid.NewString())
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// Logger returns a logrus entry scoped to the request in ctx.
func Logger(ctx context.Context) *logrus.Entry {
	l := base
	if l == nil {
		l = Init(Config{Level: "info", Environment: "local"})
	}

	entry := logrus.NewEntry(l)
	if id := RequestID(ctx); id != "" {
		entry = entry.WithField("requestID", id)
	}
	return entry
}
