package habit

import (
	"fmt"

	"github.com/sprouthq/sprout/internal/models"
)

// fakeStore is an in-memory storage.Provider for engine tests. It records
// the partial maps passed to UpsertDayRecord so tests can assert that
// toggles never touch sibling keys.
type fakeStore struct {
	habits  map[string]models.Habit
	tasks   map[string]models.Task
	records map[string]models.CompletionRecord

	upserts          []models.CompletionRecord
	updateDatesCalls int
	failWrites       bool
}

func newFakeStore(habits ...models.Habit) *fakeStore {
	s := &fakeStore{
		habits:  map[string]models.Habit{},
		tasks:   map[string]models.Task{},
		records: map[string]models.CompletionRecord{},
	}
	for _, h := range habits {
		s.habits[h.ID] = h
	}
	return s
}

func (s *fakeStore) Init() error  { return nil }
func (s *fakeStore) Load() error  { return nil }
func (s *fakeStore) Close() error { return nil }

func (s *fakeStore) AddHabit(h models.Habit) error    { s.habits[h.ID] = h; return nil }
func (s *fakeStore) UpdateHabit(h models.Habit) error { s.habits[h.ID] = h; return nil }

func (s *fakeStore) GetHabit(id string) (models.Habit, error) {
	h, ok := s.habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit %s not found", id)
	}
	return h, nil
}

func (s *fakeStore) GetAllHabits() ([]models.Habit, error) {
	var habits []models.Habit
	for _, h := range s.habits {
		habits = append(habits, h)
	}
	return habits, nil
}

func (s *fakeStore) UpdateHabitDates(id string, completed, skipped, missed []string) error {
	if s.failWrites {
		return fmt.Errorf("store unavailable")
	}
	s.updateDatesCalls++
	h, ok := s.habits[id]
	if !ok {
		return fmt.Errorf("habit %s not found", id)
	}
	h.CompletedDates = completed
	h.SkippedDates = skipped
	h.MissedDates = missed
	s.habits[id] = h
	return nil
}

func (s *fakeStore) DeleteHabit(id string) error { delete(s.habits, id); return nil }

func (s *fakeStore) AddTask(t models.Task) error    { s.tasks[t.ID] = t; return nil }
func (s *fakeStore) UpdateTask(t models.Task) error { s.tasks[t.ID] = t; return nil }

func (s *fakeStore) GetTask(id string) (models.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("task %s not found", id)
	}
	return t, nil
}

func (s *fakeStore) GetAllTasks() ([]models.Task, error) {
	var tasks []models.Task
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (s *fakeStore) DeleteTask(id string) error { delete(s.tasks, id); return nil }

func (s *fakeStore) GetDayRecord(day string) (models.CompletionRecord, error) {
	rec := models.CompletionRecord{}
	for k, v := range s.records[day] {
		rec[k] = v
	}
	return rec, nil
}

func (s *fakeStore) UpsertDayRecord(day string, partial models.CompletionRecord) error {
	if s.failWrites {
		return fmt.Errorf("store unavailable")
	}
	s.upserts = append(s.upserts, partial)
	rec, ok := s.records[day]
	if !ok {
		rec = models.CompletionRecord{}
		s.records[day] = rec
	}
	for k, v := range partial {
		rec[k] = v
	}
	return nil
}

func (s *fakeStore) GetConfigPath() string { return "fake" }
