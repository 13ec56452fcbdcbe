package fpstore

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with fpstore-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithDocument adds a document name field to the logger.
func (l *Logger) WithDocument(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("doc", name),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogLoad logs the result of loading the document registry.
func (l *Logger) LogLoad(ctx context.Context, documents, failed int, elapsed time.Duration, err error) {
	switch {
	case err != nil && documents == 0:
		l.ErrorContext(ctx, "load failed",
			"failed", failed,
			"error", err,
		)
	case failed > 0:
		l.WarnContext(ctx, "load completed with failures",
			"documents", documents,
			"failed", failed,
			"elapsed", elapsed,
			"error", err,
		)
	default:
		l.InfoContext(ctx, "load completed",
			"documents", documents,
			"elapsed", elapsed,
		)
	}
}

// LogQuery logs a similarity query.
func (l *Logger) LogQuery(ctx context.Context, doc string, cutoff float32, hits int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"doc", doc,
			"cutoff", cutoff,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "query completed",
			"doc", doc,
			"cutoff", cutoff,
			"hits", hits,
		)
	}
}
