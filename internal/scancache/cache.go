package scancache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"dubstrip/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS inspections (
	path      TEXT PRIMARY KEY,
	size      INTEGER NOT NULL,
	mtime_ns  INTEGER NOT NULL,
	probe_json BLOB NOT NULL,
	cached_at TEXT NOT NULL
);
`

// Entry summarizes one cached inspection for listing.
type Entry struct {
	Path     string
	Size     int64
	CachedAt time.Time
}

// Store manages inspection persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// Open initializes or connects to the cache database at dir/inspections.db
// and acquires the cache lock. It fails when another run holds the lock.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory %q: %w", dir, err)
	}

	lock := flock.New(filepath.Join(dir, "inspections.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !locked {
		return nil, errors.New("inspection cache is locked by another dubstrip run")
	}

	dbPath := filepath.Join(dir, "inspections.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("apply cache schema: %w", err)
	}

	return &Store{
		db:     db,
		path:   dbPath,
		lock:   lock,
		logger: logging.NewComponentLogger(logger, "scancache"),
	}, nil
}

// Close releases the database connection and the cache lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var dbErr error
	if s.db != nil {
		dbErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && dbErr == nil {
			dbErr = err
		}
	}
	return dbErr
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Lookup returns the cached ffprobe payload for path when the stored
// fingerprint still matches the file on disk.
func (s *Store) Lookup(ctx context.Context, path string) ([]byte, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, nil
	}

	var (
		size    int64
		mtimeNS int64
		payload []byte
	)
	row := s.db.QueryRowContext(ctx, `SELECT size, mtime_ns, probe_json FROM inspections WHERE path = ?`, path)
	if err := row.Scan(&size, &mtimeNS, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query cache: %w", err)
	}

	if size != info.Size() || mtimeNS != info.ModTime().UnixNano() {
		s.logger.Debug("stale cache entry", logging.String(logging.FieldPath, path))
		return nil, false, nil
	}
	return payload, true, nil
}

// Store records the ffprobe payload for path with the file's current
// fingerprint, replacing any previous entry.
func (s *Store) Store(ctx context.Context, path string, payload []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO inspections (path, size, mtime_ns, probe_json, cached_at) VALUES (?, ?, ?, ?, ?)`,
		path, info.Size(), info.ModTime().UnixNano(), payload, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

// Entries lists all cached inspections sorted by path.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, size, cached_at FROM inspections ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("list cache: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry    Entry
			cachedAt string
		)
		if err := rows.Scan(&entry.Path, &entry.Size, &cachedAt); err != nil {
			return nil, fmt.Errorf("scan cache row: %w", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, cachedAt); parseErr == nil {
			entry.CachedAt = parsed
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Count returns the number of cached inspections.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inspections`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count cache: %w", err)
	}
	return count, nil
}

// Clear removes every cached inspection.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM inspections`); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}
