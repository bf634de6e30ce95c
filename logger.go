package prost

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with prost-specific field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
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
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithShard adds a shard field to the logger.
func (l *Logger) WithShard(shard int) *Logger {
	return &Logger{
		Logger: l.Logger.With("shard", shard),
	}
}

// LogRejected logs a sequence skipped while building a store.
func (l *Logger) LogRejected(ctx context.Context, id string, err error) {
	l.WarnContext(ctx, "sequence rejected",
		"id", id,
		"reason", err,
	)
}

// LogQuantized logs a sequence turned into a fingerprint.
func (l *Logger) LogQuantized(ctx context.Context, id string, residues int, cached bool) {
	l.DebugContext(ctx, "sequence quantized",
		"id", id,
		"residues", residues,
		"cached", cached,
	)
}

// LogSearch logs a finished query.
func (l *Logger) LogSearch(ctx context.Context, query string, matches, terms int) {
	l.DebugContext(ctx, "query searched",
		"query", query,
		"matches", matches,
		"terms", terms,
	)
}

// LogShard logs the completion of a search shard.
func (l *Logger) LogShard(ctx context.Context, shard, start, stop int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "shard failed",
			"shard", shard,
			"start", start,
			"stop", stop,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "shard completed",
		"shard", shard,
		"queries", stop-start,
	)
}

// LogFlush logs a sequence cache write.
func (l *Logger) LogFlush(ctx context.Context, name string, entries int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "cache flush failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "cache flushed",
		"name", name,
		"entries", entries,
	)
}
