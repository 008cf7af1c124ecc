package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/arena/dirty"
	"github.com/joshuapare/arenakit/cmd/arenactl/logger"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	limit    string
	logLevel string
	logFile  string

	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "arenactl",
	Short: "Inspect and edit file-backed allocator arenas",
	Long: `arenactl creates, inspects, validates and edits arena files managed by
the boundary-tag allocator. Every command that modifies an arena flushes the
touched pages before exiting.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := logger.Init(logger.Options{Level: logLevel, File: logFile})
		logCloser = c
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser == nil {
			return nil
		}
		return logCloser.Close()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&limit, "limit", humanize.IBytes(arena.DefaultLimit), "Maximum arena size (e.g. 64MiB)")
	rootCmd.PersistentFlags().
		StringVar(&logLevel, "log-level", "", "Allocator log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write JSON logs to this file")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// parseSize accepts plain byte counts and humanized sizes ("4KiB", "1MB").
func parseSize(s string) (int, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n > uint64(maxInt) {
		return 0, fmt.Errorf("size %q too large", s)
	}
	return int(n), nil
}

const maxInt = int(^uint(0) >> 1)

// parseRef accepts decimal or 0x-prefixed references.
func parseRef(s string) (alloc.Ref, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return alloc.Nil, fmt.Errorf("invalid reference %q: %w", s, err)
	}
	return alloc.Ref(v), nil
}

// session is an open arena file with its allocator and dirty tracker.
type session struct {
	file *arena.File
	a    *alloc.Allocator
	dt   *dirty.Tracker
}

// openSession maps path and adopts the arena in it. With create set, an
// empty or missing file is initialized with cfg instead.
func openSession(path string, create bool, cfg alloc.Config) (*session, error) {
	lim, err := parseSize(limit)
	if err != nil {
		return nil, err
	}
	f, err := arena.OpenFile(path, lim)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	s := &session{file: f, dt: dirty.NewTracker(f)}
	cfg.Dirty = s.dt
	cfg.Logger = logger.L

	switch {
	case create && f.Len() == 0:
		printVerbose("Initializing arena: %s\n", path)
		s.a, err = alloc.New(f, &cfg)
	case create:
		err = fmt.Errorf("%s is not empty; use --force to reinitialize", path)
	default:
		printVerbose("Opening arena: %s (%s)\n", path, humanize.IBytes(uint64(f.Len())))
		s.a, err = alloc.Open(f, &cfg)
	}
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

// close flushes dirty pages and unmaps the file.
func (s *session) close() error {
	err := s.dt.Flush(context.Background())
	if serr := s.file.Sync(); err == nil {
		err = serr
	}
	return errors.Join(err, s.file.Close())
}

// discard unmaps the file without flushing.
func (s *session) discard() {
	_ = s.file.Close()
}
