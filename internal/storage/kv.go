package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Persisted keys, one per store. Widget processes read the same keys
// independently and fall back to the empty default shape when a key is
// absent.
const (
	KeyActivities  = "activities"
	KeySchedule    = "schedule"
	KeyNotes       = "notes"
	KeyFiles       = "files"
	KeyPreferences = "preferences"
	KeyRecentScans = "recent_scans"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

const timeLayout = time.RFC3339Nano

// KV is a durable key-value store holding one JSON-serialized blob per
// application store. It is the only channel between the app process and
// the widget readers.
type KV struct {
	db *sql.DB
}

func New(db *sql.DB) (*KV, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &KV{db: db}, nil
}

// Open opens (creating if needed) the store at path. WAL keeps
// out-of-process widget reads from blocking app-side writes.
func Open(path string) (*KV, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	kv, err := New(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return kv, nil
}

// OpenReadOnly opens the store for a widget process. The reader sees the
// last committed snapshot; staleness between app writes and widget
// refreshes is accepted.
func OpenReadOnly(path string) (*KV, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite read-only: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &KV{db: db}, nil
}

func (s *KV) Close() error {
	return s.db.Close()
}

// Save serializes v and stores it under key, replacing any previous
// value. Callers save after every mutation; last write wins.
func (s *KV) Save(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(payload), time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Load deserializes the value stored under key into dest. The second
// return is false when the key is absent or its value no longer
// deserializes; callers treat both as "use the empty default".
func (s *KV) Load(ctx context.Context, key string, dest any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *KV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// UpdatedAt returns when key was last written, or false if it never was.
func (s *KV) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM kv WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("updated_at %s: %w", key, err)
	}
	at, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("updated_at %s: %w", key, err)
	}
	return at, true, nil
}

func (s *KV) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		out = append(out, key)
	}
	return out, rows.Err()
}
