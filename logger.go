package cavegen

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with cavegen-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithDimensions adds the grid dimensions to the logger. depth 0 marks a 2D
// grid.
func (l *Logger) WithDimensions(width, height, depth int) *Logger {
	if depth == 0 {
		return &Logger{
			Logger: l.Logger.With("width", width, "height", height),
		}
	}
	return &Logger{
		Logger: l.Logger.With("width", width, "height", height, "depth", depth),
	}
}

// WithIterations adds an iteration count field to the logger.
func (l *Logger) WithIterations(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("iterations", n),
	}
}

// LogFill logs a grid fill operation.
func (l *Logger) LogFill(ctx context.Context, density float64, population int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fill failed",
			"density", density,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "fill completed",
			"density", density,
			"population", population,
		)
	}
}

// LogSmooth logs one smoothing iteration.
func (l *Logger) LogSmooth(ctx context.Context, iteration, population int) {
	l.DebugContext(ctx, "smooth iteration completed",
		"iteration", iteration,
		"population", population,
	)
}

// LogExtract logs a mesh extraction.
func (l *Logger) LogExtract(ctx context.Context, vertices, faces int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "extract failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "extract completed",
			"vertices", vertices,
			"faces", faces,
		)
	}
}
