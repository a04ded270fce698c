package strintern

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with interner-specific helpers.
// This keeps field names consistent across operations.
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

// WithName adds a name field to the logger (useful for telling interners apart).
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("interner", name),
	}
}

// LogGrow logs a capacity change of the span sequence or the hash index.
func (l *Logger) LogGrow(component string, length, capacity int) {
	l.Debug("interner grew",
		"component", component,
		"len", length,
		"cap", capacity,
	)
}

// LogChunk logs a new arena chunk.
func (l *Logger) LogChunk(size int, chunks uint64) {
	l.Debug("arena chunk allocated",
		"size", size,
		"chunks", chunks,
	)
}

// LogShrink logs a ShrinkToFit call.
func (l *Logger) LogShrink(length, before, after int) {
	l.Debug("interner shrunk",
		"len", length,
		"cap_before", before,
		"cap_after", after,
	)
}

// LogClone logs a Clone call.
func (l *Logger) LogClone(length int, err error) {
	if err != nil {
		l.Error("clone failed",
			"len", length,
			"error", err,
		)
	} else {
		l.Debug("interner cloned",
			"len", length,
		)
	}
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(ctx context.Context, op, name string, count int, size int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot "+op+" failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot "+op+" completed",
			"name", name,
			"count", count,
			"bytes", size,
		)
	}
}
