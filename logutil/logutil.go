// Package logutil configures the process-wide structured logger.
// Diagnostics go to stderr so they never mix with the browser list on stdout.
package logutil

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// EnvDebug enables debug logging when set to "true".
const EnvDebug = "WEBPICK_DEBUG"

var mu sync.Mutex

// Setup configures the default slog logger.
//
// When debug is true (or WEBPICK_DEBUG=true), debug-level records are
// emitted. When structured is true the output is JSON, otherwise the text
// handler is used.
func Setup(debug, structured bool) {
	SetupWriter(os.Stderr, debug, structured)
}

// SetupWriter is Setup with an explicit destination, used by tests.
func SetupWriter(w io.Writer, debug, structured bool) {
	mu.Lock()
	defer mu.Unlock()

	level := slog.LevelInfo
	if debug || os.Getenv(EnvDebug) == "true" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if structured {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// NewLogger returns a logger scoped to a named component.
func NewLogger(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
