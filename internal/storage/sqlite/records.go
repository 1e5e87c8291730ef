package sqlite

import (
	"fmt"

	"github.com/sprouthq/sprout/internal/models"
)

func (s *Store) GetDayRecord(day string) (models.CompletionRecord, error) {
	rows, err := s.db.Query(`SELECT completion_key, done FROM day_records WHERE day = ?`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rec := models.CompletionRecord{}
	for rows.Next() {
		var key string
		var done bool
		if err := rows.Scan(&key, &done); err != nil {
			return nil, fmt.Errorf("failed to scan day record: %w", err)
		}
		rec[key] = done
	}
	return rec, rows.Err()
}

// UpsertDayRecord writes only the keys present in partial. Rows for other
// completion keys on the same day are left untouched, which is what makes
// sibling occurrences safe to toggle independently.
func (s *Store) UpsertDayRecord(day string, partial models.CompletionRecord) error {
	if len(partial) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, done := range partial {
		_, err := tx.Exec(`
			INSERT INTO day_records (day, completion_key, done)
			VALUES (?, ?, ?)
			ON CONFLICT(day, completion_key) DO UPDATE SET done = excluded.done`,
			day, key, done)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
