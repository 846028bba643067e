package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with a component name attached to every record
type Logger struct {
	*slog.Logger
	component string
}

// Config holds logger configuration
type Config struct {
	Level     slog.Level
	Component string
	Writer    io.Writer
}

// DebugEnabled returns true if debug mode is enabled via OT_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("OT_DEBUG") != ""
}

// DefaultConfig returns the CLI defaults: warnings and above to stderr,
// debug when OT_DEBUG is set or verbose is requested.
func DefaultConfig(component string, verbose bool) Config {
	level := slog.LevelWarn
	if verbose || DebugEnabled() {
		level = slog.LevelDebug
	}
	return Config{
		Level:     level,
		Component: component,
		Writer:    os.Stderr,
	}
}

// New creates a new logger with the given configuration
func New(config Config) *Logger {
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: config.Level})

	component := config.Component
	if component == "" {
		component = "ot"
	}

	return &Logger{
		Logger:    slog.New(handler).With("component", component),
		component: component,
	}
}

// Discard returns a logger that drops everything. Used in tests and as the
// fallback when a constructor receives a nil logger.
func Discard() *Logger {
	return New(Config{Level: slog.LevelError + 1, Writer: io.Discard})
}

// WithComponent returns a child logger tagged with a different component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With("component", component),
		component: component,
	}
}

// Component returns the logger's component name
func (l *Logger) Component() string {
	return l.component
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *Logger) *Logger {
	if l == nil {
		return Discard()
	}
	return l
}
