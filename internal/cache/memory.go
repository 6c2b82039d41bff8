package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/maypok86/otter"
)

const (
	// DefaultMemoryEntries bounds the in-memory tier when nothing is configured.
	DefaultMemoryEntries = 1024

	// DefaultTTL is how long an in-memory entry lives.
	DefaultTTL = time.Hour
)

// Memory is the in-process tier. Every entry costs 1, so capacity is an entry count.
type Memory struct {
	cache otter.Cache[Key, Entry]
}

// NewMemory creates an in-memory tier holding up to entries documents for ttl.
// Non-positive arguments fall back to the defaults.
func NewMemory(entries int, ttl time.Duration) (*Memory, error) {
	if entries <= 0 {
		entries = DefaultMemoryEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c, err := otter.MustBuilder[Key, Entry](entries).
		CollectStats().
		Cost(func(Key, Entry) uint32 { return 1 }).
		WithTTL(ttl).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build memory cache: %w", err)
	}
	return &Memory{cache: c}, nil
}

func (m *Memory) Get(_ context.Context, key Key) (Entry, bool, error) {
	entry, ok := m.cache.Get(key)
	return entry, ok, nil
}

func (m *Memory) Put(_ context.Context, key Key, entry Entry) error {
	m.cache.Set(key, entry)
	return nil
}

func (m *Memory) InvalidatePath(_ context.Context, path string) error {
	m.cache.DeleteByFunc(func(key Key, _ Entry) bool {
		return key.Path == path
	})
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.cache.Clear()
	return nil
}

func (m *Memory) Stats(context.Context) (Stats, error) {
	s := m.cache.Stats()
	return Stats{
		Hits:    s.Hits(),
		Misses:  s.Misses(),
		Entries: int64(m.cache.Size()),
	}, nil
}

func (m *Memory) Close() error {
	m.cache.Close()
	return nil
}
