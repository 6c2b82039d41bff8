package cache

import (
	"context"
	"errors"
	"sync/atomic"
)

// Layered reads through a fast front tier to a persistent back tier.
// Back-tier hits are promoted to the front.
type Layered struct {
	front  Store
	back   Store
	hits   atomic.Int64
	misses atomic.Int64
}

// NewLayered stacks front over back.
func NewLayered(front, back Store) *Layered {
	return &Layered{front: front, back: back}
}

func (l *Layered) Get(ctx context.Context, key Key) (Entry, bool, error) {
	if entry, ok, err := l.front.Get(ctx, key); err != nil || ok {
		if ok {
			l.hits.Add(1)
		}
		return entry, ok, err
	}

	entry, ok, err := l.back.Get(ctx, key)
	if err != nil || !ok {
		if err == nil {
			l.misses.Add(1)
		}
		return Entry{}, false, err
	}

	l.hits.Add(1)
	if err := l.front.Put(ctx, key, entry); err != nil {
		return entry, true, err
	}
	return entry, true, nil
}

func (l *Layered) Put(ctx context.Context, key Key, entry Entry) error {
	return errors.Join(l.front.Put(ctx, key, entry), l.back.Put(ctx, key, entry))
}

func (l *Layered) InvalidatePath(ctx context.Context, path string) error {
	return errors.Join(l.front.InvalidatePath(ctx, path), l.back.InvalidatePath(ctx, path))
}

func (l *Layered) Clear(ctx context.Context) error {
	return errors.Join(l.front.Clear(ctx), l.back.Clear(ctx))
}

// Stats counts hits at either tier; Entries is the persistent count.
func (l *Layered) Stats(ctx context.Context) (Stats, error) {
	back, err := l.back.Stats(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Hits: l.hits.Load(), Misses: l.misses.Load(), Entries: back.Entries}, nil
}

func (l *Layered) Close() error {
	return errors.Join(l.front.Close(), l.back.Close())
}
