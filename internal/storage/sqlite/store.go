package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed storage provider. List and map fields of the
// models are stored as JSON text columns; date keys are YYYY-MM-DD strings.
type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: expandPath(path)}
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.ensureSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'sprout init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.ensureSchema()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS habits (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			icon TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			folder TEXT NOT NULL DEFAULT '',
			times_per_day INTEGER NOT NULL DEFAULT 1,
			repeat_mode TEXT NOT NULL,
			repeat_interval INTEGER NOT NULL DEFAULT 0,
			selected_weekdays TEXT NOT NULL DEFAULT '[]',
			time_mode TEXT NOT NULL,
			notification_times TEXT NOT NULL DEFAULT '[]',
			weekday_times TEXT NOT NULL DEFAULT '{}',
			created_at TEXT NOT NULL,
			completed_dates TEXT NOT NULL DEFAULT '[]',
			skipped_dates TEXT NOT NULL DEFAULT '[]',
			missed_dates TEXT NOT NULL DEFAULT '[]'
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			due_date TEXT NOT NULL,
			priority INTEGER NOT NULL DEFAULT 4,
			completed INTEGER NOT NULL DEFAULT 0,
			subtasks TEXT NOT NULL DEFAULT '[]',
			folder TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS day_records (
			day TEXT NOT NULL,
			completion_key TEXT NOT NULL,
			done INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (day, completion_key)
		);
	`)
	return err
}
