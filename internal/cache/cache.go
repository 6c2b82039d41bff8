// Package cache stores rendered skeleton documents keyed by file content, so
// unchanged files are not parsed again.
//
// Two tiers are available: an in-memory otter cache for the lifetime of a
// process and a SQLite database under the cache root that survives restarts.
// Open combines them according to Options.
package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Entry is a cached skeleton document.
type Entry struct {
	Text      string
	Truncated bool
	CreatedAt time.Time
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int64 `json:"entries"`
}

// Store is a skeleton document cache. Implementations are safe for concurrent use.
type Store interface {
	// Get returns the entry for key. A miss is (Entry{}, false, nil).
	Get(ctx context.Context, key Key) (Entry, bool, error)
	Put(ctx context.Context, key Key, entry Entry) error
	// InvalidatePath drops every entry for the absolute file path.
	InvalidatePath(ctx context.Context, path string) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (Stats, error)
	Close() error
}

// Options configures Open.
type Options struct {
	Enabled       bool
	MemoryEntries int
	TTL           time.Duration
	// Location is the directory of the persistent tier.
	// If empty, defaults to ~/.skeleton/cache
	Location string
}

// DefaultLocation returns ~/.skeleton/cache.
func DefaultLocation() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".skeleton", "cache")
}

// Open builds the configured store. A disabled cache is a Nop.
func Open(opts Options, logger *logrus.Logger) (Store, error) {
	if !opts.Enabled {
		return Nop{}, nil
	}

	memory, err := NewMemory(opts.MemoryEntries, opts.TTL)
	if err != nil {
		return nil, err
	}

	location := opts.Location
	if location == "" {
		location = DefaultLocation()
	}
	disk, err := OpenDisk(location)
	if err != nil {
		memory.Close()
		return nil, fmt.Errorf("failed to open persistent cache: %w", err)
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"location":       location,
			"memory_entries": opts.MemoryEntries,
			"ttl":            opts.TTL,
		}).Debug("skeleton cache opened")
	}
	return NewLayered(memory, disk), nil
}

// Nop caches nothing.
type Nop struct{}

func (Nop) Get(context.Context, Key) (Entry, bool, error) { return Entry{}, false, nil }
func (Nop) Put(context.Context, Key, Entry) error { return nil }
func (Nop) InvalidatePath(context.Context, string) error { return nil }
func (Nop) Clear(context.Context) error { return nil }
func (Nop) Stats(context.Context) (Stats, error) { return Stats{}, nil }
func (Nop) Close() error { return nil }
