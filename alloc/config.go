package alloc

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joshuapare/arenakit/internal/format"
)

// DefaultChunkSize is the minimum number of bytes requested from the extender
// when no free block fits (classic CHUNKSIZE, one page).
const DefaultChunkSize = 1 << 12

// Runtime debug flag for allocation logging - controlled by ARENA_LOG_ALLOC env var.
var logAlloc = os.Getenv("ARENA_LOG_ALLOC") != ""

// Config tunes an Allocator. A nil *Config passed to New or Open means
// DefaultConfig.
type Config struct {
	// ChunkSize is the minimum growth step on the allocation slow path.
	ChunkSize int

	// Classes lays out the free-space directory. Zero value means DefaultClasses.
	Classes SizeClassConfig

	// Dirty receives every byte range the allocator writes. May be nil.
	Dirty DirtyTracker

	// Logger receives growth, trim and corruption events. Nil discards them
	// unless ARENA_LOG_ALLOC is set, in which case debug output goes to stderr.
	Logger *slog.Logger
}

// DefaultConfig is the configuration used when none is supplied.
var DefaultConfig = Config{
	ChunkSize: DefaultChunkSize,
	Classes:   DefaultClasses,
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if c.ChunkSize < 0 {
		return fmt.Errorf("alloc config: negative ChunkSize %d", c.ChunkSize)
	}
	if c.Classes.isZero() {
		return nil
	}
	return c.Classes.Validate()
}

// normalized fills zero fields with defaults.
func (c Config) normalized() Config {
	if c.ChunkSize == 0 {
		c.ChunkSize = DefaultChunkSize
	}
	c.ChunkSize = max(format.Align8(c.ChunkSize), format.MinBlockSize)
	if c.Classes.isZero() {
		c.Classes = DefaultClasses
	}
	if c.Logger == nil {
		c.Logger = defaultLogger()
	}
	return c
}

func defaultLogger() *slog.Logger {
	if logAlloc {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
