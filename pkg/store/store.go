// Package store persists checkbox and radio state and an activation history
// in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS checked_state (
	menu       TEXT NOT NULL,
	path       TEXT NOT NULL,
	checked    INTEGER NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (menu, path)
);
CREATE TABLE IF NOT EXISTS activations (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	menu       TEXT NOT NULL,
	path       TEXT NOT NULL,
	at         INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS activations_menu_at ON activations (menu, at);
`

// Activation is one recorded selection.
type Activation struct {
	Menu string
	Path string
	At   time.Time
}

// Store wraps the state database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" is accepted for
// tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating state directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveChecked records the checked flag of the item at path.
func (s *Store) SaveChecked(ctx context.Context, menu, path string, checked bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checked_state (menu, path, checked, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (menu, path) DO UPDATE SET checked = excluded.checked, updated_at = excluded.updated_at`,
		menu, path, boolToInt(checked), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("saving checked state for %s: %w", path, err)
	}
	return nil
}

// LoadChecked returns every saved checked flag for menu, keyed by item path.
func (s *Store) LoadChecked(ctx context.Context, menu string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, checked FROM checked_state WHERE menu = ?`, menu)
	if err != nil {
		return nil, fmt.Errorf("loading checked state: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var path string
		var checked int
		if err := rows.Scan(&path, &checked); err != nil {
			return nil, err
		}
		out[path] = checked != 0
	}
	return out, rows.Err()
}

// RecordActivation appends a selection to the history.
func (s *Store) RecordActivation(ctx context.Context, menu, path string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO activations (menu, path, at) VALUES (?, ?, ?)`,
		menu, path, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("recording activation of %s: %w", path, err)
	}
	return nil
}

// RecentActivations returns up to limit selections for menu, newest first.
func (s *Store) RecentActivations(ctx context.Context, menu string, limit int) ([]Activation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT menu, path, at FROM activations WHERE menu = ? ORDER BY at DESC, id DESC LIMIT ?`,
		menu, limit)
	if err != nil {
		return nil, fmt.Errorf("loading activations: %w", err)
	}
	defer rows.Close()

	var out []Activation
	for rows.Next() {
		var a Activation
		var ms int64
		if err := rows.Scan(&a.Menu, &a.Path, &ms); err != nil {
			return nil, err
		}
		a.At = time.UnixMilli(ms)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Counts returns how often each path of menu was activated.
func (s *Store) Counts(ctx context.Context, menu string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, COUNT(*) FROM activations WHERE menu = ? GROUP BY path`, menu)
	if err != nil {
		return nil, fmt.Errorf("counting activations: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var path string
		var n int
		if err := rows.Scan(&path, &n); err != nil {
			return nil, err
		}
		out[path] = n
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
