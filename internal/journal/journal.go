// Package journal keeps a SQLite log of optimistic mutation outcomes.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"moving-progress/internal/optimistic"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Entry is one stored mutation outcome.
type Entry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Key         string    `json:"key"`
	State       string    `json:"state"`
	FailureKind string    `json:"failure_kind,omitempty"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	DurationMS  int64     `json:"duration_ms"`
}

// ListOptions filters List.
type ListOptions struct {
	Limit int
	State string
}

// Journal wraps the SQLite connection.
type Journal struct {
	conn *sql.DB
	path string
	mu   sync.RWMutex
}

// Open opens the journal at path, creating parent directories.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	return &Journal{conn: conn, path: path}, nil
}

// Path returns the database file path.
func (j *Journal) Path() string {
	return j.path
}

// Close closes the connection.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.conn.Close()
}

// Ping checks the connection, used by the readiness probe.
func (j *Journal) Ping(ctx context.Context) error {
	return j.conn.PingContext(ctx)
}

// Migrate applies pending schema migrations.
func (j *Journal) Migrate() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, err := j.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	var current int
	if err := j.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current); err != nil {
		return fmt.Errorf("get schema version: %w", err)
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migrationV1Mutations},
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := j.conn.Begin()
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration v%d: %w", m.version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration v%d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration v%d: %w", m.version, err)
		}
	}
	return nil
}

const migrationV1Mutations = `
CREATE TABLE IF NOT EXISTS mutations (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	key TEXT NOT NULL,
	state TEXT NOT NULL,
	failure_kind TEXT NOT NULL DEFAULT '',
	error TEXT NOT NULL DEFAULT '',
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	duration_ms INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_mutations_state ON mutations(state);
CREATE INDEX IF NOT EXISTS idx_mutations_started_at ON mutations(started_at);
`

// Record stores o. It satisfies optimistic.Recorder.
func (j *Journal) Record(ctx context.Context, o optimistic.Outcome) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	errText := ""
	if o.Err != nil {
		errText = o.Err.Error()
	}

	_, err := j.conn.ExecContext(ctx, `
		INSERT INTO mutations (id, name, key, state, failure_kind, error, started_at, finished_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		o.MutationID,
		o.Name,
		o.Key,
		string(o.State),
		string(o.Failure),
		errText,
		formatTime(o.StartedAt),
		formatTime(o.FinishedAt),
		o.Duration().Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert mutation %s: %w", o.MutationID, err)
	}
	return nil
}

// List returns the most recent entries first.
func (j *Journal) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	query := `SELECT id, name, key, state, failure_kind, error, started_at, finished_at, duration_ms FROM mutations`
	args := []any{}
	if opts.State != "" {
		query += ` WHERE state = ?`
		args = append(args, opts.State)
	}
	query += ` ORDER BY started_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := j.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mutations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var started, finished string
		if err := rows.Scan(&e.ID, &e.Name, &e.Key, &e.State, &e.FailureKind, &e.Error, &started, &finished, &e.DurationMS); err != nil {
			return nil, fmt.Errorf("scan mutation: %w", err)
		}
		e.StartedAt = parseTime(started)
		e.FinishedAt = parseTime(finished)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mutations: %w", err)
	}
	return entries, nil
}

// timeLayout keeps nine fractional digits so stored values sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
