package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sprouthq/sprout/internal/models"
)

func (s *Store) AddTask(t models.Task) error {
	return s.UpdateTask(t)
}

func (s *Store) UpdateTask(t models.Task) error {
	subtasks, err := json.Marshal(orEmptySubtasks(t.Subtasks))
	if err != nil {
		return fmt.Errorf("failed to encode subtasks: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO tasks (id, name, due_date, priority, completed, subtasks,
			folder, icon, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			due_date = excluded.due_date,
			priority = excluded.priority,
			completed = excluded.completed,
			subtasks = excluded.subtasks,
			folder = excluded.folder,
			icon = excluded.icon,
			color = excluded.color`,
		t.ID, t.Name, t.DueDate.Format(time.RFC3339), t.Priority, t.Completed,
		string(subtasks), t.Folder, t.Icon, t.Color, t.CreatedAt.Format(time.RFC3339))

	return err
}

const taskColumns = `id, name, due_date, priority, completed, subtasks, folder, icon, color, created_at`

func (s *Store) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

func (s *Store) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`SELECT ` + taskColumns + ` FROM tasks ORDER BY due_date, priority, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) DeleteTask(id string) error {
	result, err := s.db.Exec(`DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var dueDate, createdAt string
	var subtasks []byte

	err := row.Scan(&t.ID, &t.Name, &dueDate, &t.Priority, &t.Completed,
		&subtasks, &t.Folder, &t.Icon, &t.Color, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Task{}, err
		}
		return models.Task{}, fmt.Errorf("failed to scan task: %w", err)
	}

	t.DueDate, err = time.Parse(time.RFC3339, dueDate)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to parse due_date for task %s: %w", t.ID, err)
	}
	t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to parse created_at for task %s: %w", t.ID, err)
	}

	if len(subtasks) > 0 {
		if err := json.Unmarshal(subtasks, &t.Subtasks); err != nil {
			return models.Task{}, fmt.Errorf("failed to decode subtasks for task %s: %w", t.ID, err)
		}
	}

	return t, nil
}

func orEmptySubtasks(s []models.Subtask) []models.Subtask {
	if s == nil {
		return []models.Subtask{}
	}
	return s
}
