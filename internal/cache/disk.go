package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// DatabaseFile is the name of the SQLite file inside the cache location.
const DatabaseFile = "skeleton.db"

const createSkeletonsTable = `
CREATE TABLE IF NOT EXISTS skeletons (
	id TEXT PRIMARY KEY,
	cache_key TEXT NOT NULL UNIQUE,
	path TEXT NOT NULL,
	language TEXT NOT NULL,
	range_start INTEGER NOT NULL,
	range_end INTEGER NOT NULL,
	digest TEXT NOT NULL,
	document TEXT NOT NULL,
	truncated INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
)`

const createSkeletonsPathIndex = `CREATE INDEX IF NOT EXISTS idx_skeletons_path ON skeletons(path)`

// Disk is the persistent tier backed by SQLite.
type Disk struct {
	db     *sql.DB
	path   string
	hits   atomic.Int64
	misses atomic.Int64
}

// OpenDisk opens (creating if needed) the cache database in dir.
func OpenDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, DatabaseFile)
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Disk{db: db, path: dbPath}, nil
}

// createSchema creates the skeletons table and its index in one transaction.
func createSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ddl := range []string{createSkeletonsTable, createSkeletonsPathIndex} {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("failed to create cache schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (d *Disk) Path() string {
	return d.path
}

func (d *Disk) Get(ctx context.Context, key Key) (Entry, bool, error) {
	var (
		entry     Entry
		truncated int
		createdAt string
	)
	err := d.db.QueryRowContext(ctx,
		`SELECT document, truncated, created_at FROM skeletons WHERE cache_key = ?`,
		key.String(),
	).Scan(&entry.Text, &truncated, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		d.misses.Add(1)
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	entry.Truncated = truncated != 0
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		entry.CreatedAt = t
	}
	d.hits.Add(1)
	return entry, true, nil
}

func (d *Disk) Put(ctx context.Context, key Key, entry Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	truncated := 0
	if entry.Truncated {
		truncated = 1
	}

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO skeletons (id, cache_key, path, language, range_start, range_end, digest, document, truncated, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			document = excluded.document,
			truncated = excluded.truncated,
			created_at = excluded.created_at`,
		uuid.NewString(), key.String(), key.Path, key.Language, key.Start, key.End, key.Digest,
		entry.Text, truncated, createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

func (d *Disk) InvalidatePath(ctx context.Context, path string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM skeletons WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to invalidate %s: %w", path, err)
	}
	return nil
}

func (d *Disk) Clear(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM skeletons`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

func (d *Disk) Stats(ctx context.Context) (Stats, error) {
	var count int64
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM skeletons`).Scan(&count); err != nil {
		return Stats{}, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return Stats{Hits: d.hits.Load(), Misses: d.misses.Load(), Entries: count}, nil
}

func (d *Disk) Close() error {
	return d.db.Close()
}
