package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Store is the PostgreSQL-backed storage provider, selected when the config
// value is a postgres:// connection string. Schema mirrors the SQLite
// backend; JSON-encoded fields use jsonb columns.
type Store struct {
	connStr string
	db      *sql.DB
}

func New(connStr string) *Store {
	return &Store{connStr: connStr}
}

func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	if err := s.ensureSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.ensureSchema()
}

func (s *Store) open() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.connStr
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
			selected_weekdays JSONB NOT NULL DEFAULT '[]',
			time_mode TEXT NOT NULL,
			notification_times JSONB NOT NULL DEFAULT '[]',
			weekday_times JSONB NOT NULL DEFAULT '{}',
			created_at TEXT NOT NULL,
			completed_dates JSONB NOT NULL DEFAULT '[]',
			skipped_dates JSONB NOT NULL DEFAULT '[]',
			missed_dates JSONB NOT NULL DEFAULT '[]'
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			due_date TEXT NOT NULL,
			priority INTEGER NOT NULL DEFAULT 4,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			subtasks JSONB NOT NULL DEFAULT '[]',
			folder TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS day_records (
			day TEXT NOT NULL,
			completion_key TEXT NOT NULL,
			done BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (day, completion_key)
		);
	`)
	return err
}
