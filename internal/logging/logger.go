// Package logging configures the structured diagnostics logger. User-facing
// output does not go through here; it is printed directly by the commands.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Field and component names shared across packages.
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldPath      = "path"
	FieldDuration  = "duration_ms"

	ComponentCLI    = "cli"
	ComponentLoader = "loader"
	ComponentCache  = "cache"
	ComponentDaemon = "daemon"
	ComponentTUI    = "tui"
)

// Config holds logger configuration.
type Config struct {
	Level  slog.Level
	Output io.Writer
	JSON   bool
}

// DefaultConfig logs warnings and errors as text to stderr.
func DefaultConfig() Config {
	return Config{Level: slog.LevelWarn, Output: os.Stderr}
}

var (
	mu   sync.RWMutex
	base = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

// Setup replaces the process logger and slog's default.
func Setup(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}

	l := slog.New(h)
	mu.Lock()
	base = l
	mu.Unlock()
	slog.SetDefault(l)
	return l
}

// LevelFor maps the CLI verbosity flags to a level.
func LevelFor(verbose, quiet bool) slog.Level {
	switch {
	case verbose:
		return slog.LevelDebug
	case quiet:
		return slog.LevelError
	}
	return slog.LevelWarn
}

// For returns the process logger tagged with a component.
func For(component string) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With(FieldComponent, component)
}

// Err is a slog attribute for an error, empty when err is nil.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(FieldError, err.Error())
}
