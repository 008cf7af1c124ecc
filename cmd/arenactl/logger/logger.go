// Package logger holds the process-wide slog logger used by arenactl and
// handed to the allocator.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// L is the global logger instance. It discards all output until Init
// enables it.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures the logger initialization.
type Options struct {
	Level string    // "", "debug", "info", "warn" or "error"; "" disables logging
	File  string    // JSON log file; empty means text on Stderr
	Out   io.Writer // Text destination when File is empty. Default: os.Stderr
}

// Init configures logging. The returned closer releases the log file, if any.
func Init(opts Options) (io.Closer, error) {
	if opts.Level == "" {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nopCloser{}, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(opts.Level))); err != nil {
		return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
	}
	hopts := &slog.HandlerOptions{Level: level}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		L = slog.New(slog.NewJSONHandler(f, hopts))
		return f, nil
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	L = slog.New(slog.NewTextHandler(out, hopts))
	return nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
