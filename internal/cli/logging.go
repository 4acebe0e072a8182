package cli

import (
	"io"
	"log/slog"
)

// NewLogger returns the diagnostic logger. Case output goes to stdout; the
// logger only carries warnings, or debug detail when verbose is set.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
