package models

import "time"

// Subtask is one checklist line under a task.
type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task is a one-shot item with a single due date. Tasks have no recurrence;
// recurring work is modeled as a Habit.
type Task struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	DueDate   time.Time `json:"due_date"`
	Priority  int       `json:"priority"` // 1 (highest) .. 4 (lowest)
	Completed bool      `json:"completed"`
	Subtasks  []Subtask `json:"subtasks,omitempty"`
	Folder    string    `json:"folder,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
