package storage

import "github.com/sprouthq/sprout/internal/models"

// Provider is the minimal read/write contract against the backing store.
// All date parameters and keys use YYYY-MM-DD strings.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// UpdateHabitDates replaces only the three completion-tracking date
	// arrays of a habit, leaving every other field untouched.
	UpdateHabitDates(id string, completed, skipped, missed []string) error
	DeleteHabit(id string) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error

	// Daily completion records. UpsertDayRecord is a merge upsert: keys
	// absent from partial are preserved, and a record for a day that does
	// not exist yet is created.
	GetDayRecord(day string) (models.CompletionRecord, error)
	UpsertDayRecord(day string, partial models.CompletionRecord) error

	// Utils
	GetConfigPath() string
}
