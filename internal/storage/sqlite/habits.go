package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sprouthq/sprout/internal/models"
)

func (s *Store) AddHabit(h models.Habit) error {
	return s.UpdateHabit(h)
}

func (s *Store) UpdateHabit(h models.Habit) error {
	weekdays, err := json.Marshal(h.SelectedWeekdays)
	if err != nil {
		return fmt.Errorf("failed to encode selected weekdays: %w", err)
	}
	times, err := json.Marshal(orEmptyList(h.NotificationTimes))
	if err != nil {
		return fmt.Errorf("failed to encode notification times: %w", err)
	}
	weekdayTimes, err := json.Marshal(h.WeekdayTimes)
	if err != nil {
		return fmt.Errorf("failed to encode weekday times: %w", err)
	}
	completed, err := json.Marshal(orEmptyList(h.CompletedDates))
	if err != nil {
		return fmt.Errorf("failed to encode completed dates: %w", err)
	}
	skipped, err := json.Marshal(orEmptyList(h.SkippedDates))
	if err != nil {
		return fmt.Errorf("failed to encode skipped dates: %w", err)
	}
	missed, err := json.Marshal(orEmptyList(h.MissedDates))
	if err != nil {
		return fmt.Errorf("failed to encode missed dates: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO habits (id, name, icon, color, folder, times_per_day,
			repeat_mode, repeat_interval, selected_weekdays, time_mode,
			notification_times, weekday_times, created_at,
			completed_dates, skipped_dates, missed_dates)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			icon = excluded.icon,
			color = excluded.color,
			folder = excluded.folder,
			times_per_day = excluded.times_per_day,
			repeat_mode = excluded.repeat_mode,
			repeat_interval = excluded.repeat_interval,
			selected_weekdays = excluded.selected_weekdays,
			time_mode = excluded.time_mode,
			notification_times = excluded.notification_times,
			weekday_times = excluded.weekday_times,
			completed_dates = excluded.completed_dates,
			skipped_dates = excluded.skipped_dates,
			missed_dates = excluded.missed_dates`,
		h.ID, h.Name, h.Icon, h.Color, h.Folder, h.TimesPerDay,
		string(h.RepeatMode), h.RepeatInterval, string(weekdays), string(h.TimeMode),
		string(times), string(weekdayTimes), h.CreatedAt.Format(time.RFC3339),
		string(completed), string(skipped), string(missed))

	return err
}

const habitColumns = `id, name, icon, color, folder, times_per_day,
	repeat_mode, repeat_interval, selected_weekdays, time_mode,
	notification_times, weekday_times, created_at,
	completed_dates, skipped_dates, missed_dates`

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	return scanHabit(row)
}

func (s *Store) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`SELECT ` + habitColumns + ` FROM habits ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabitDates(id string, completed, skipped, missed []string) error {
	completedJSON, err := json.Marshal(orEmptyList(completed))
	if err != nil {
		return fmt.Errorf("failed to encode completed dates: %w", err)
	}
	skippedJSON, err := json.Marshal(orEmptyList(skipped))
	if err != nil {
		return fmt.Errorf("failed to encode skipped dates: %w", err)
	}
	missedJSON, err := json.Marshal(orEmptyList(missed))
	if err != nil {
		return fmt.Errorf("failed to encode missed dates: %w", err)
	}

	result, err := s.db.Exec(`
		UPDATE habits SET completed_dates = ?, skipped_dates = ?, missed_dates = ?
		WHERE id = ?`,
		string(completedJSON), string(skippedJSON), string(missedJSON), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit %s not found", id)
	}
	return nil
}

func (s *Store) DeleteHabit(id string) error {
	result, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit %s not found", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var repeatMode, timeMode, createdAt string
	var weekdays, times, weekdayTimes, completed, skipped, missed string

	err := row.Scan(&h.ID, &h.Name, &h.Icon, &h.Color, &h.Folder, &h.TimesPerDay,
		&repeatMode, &h.RepeatInterval, &weekdays, &timeMode,
		&times, &weekdayTimes, &createdAt,
		&completed, &skipped, &missed)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Habit{}, err
		}
		return models.Habit{}, fmt.Errorf("failed to scan habit: %w", err)
	}

	h.RepeatMode = models.RepeatMode(repeatMode)
	h.TimeMode = models.TimeMode(timeMode)

	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}

	for _, field := range []struct {
		raw  string
		dest any
	}{
		{weekdays, &h.SelectedWeekdays},
		{times, &h.NotificationTimes},
		{weekdayTimes, &h.WeekdayTimes},
		{completed, &h.CompletedDates},
		{skipped, &h.SkippedDates},
		{missed, &h.MissedDates},
	} {
		if field.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(field.raw), field.dest); err != nil {
			return models.Habit{}, fmt.Errorf("failed to decode habit %s: %w", h.ID, err)
		}
	}

	return h, nil
}

// orEmptyList keeps nil slices encoding as [] instead of null.
func orEmptyList(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
