package tui

import (
	"testing"
	"time"

	"github.com/sprouthq/sprout/internal/habit"
	"github.com/sprouthq/sprout/internal/models"
	"github.com/sprouthq/sprout/internal/storage"
)

// stubProvider implements the slice of the Provider contract the today view
// touches. The embedded interface panics on anything else.
type stubProvider struct {
	storage.Provider
	habits  map[string]models.Habit
	records map[string]models.CompletionRecord
}

func newStubProvider(habits ...models.Habit) *stubProvider {
	s := &stubProvider{
		habits:  map[string]models.Habit{},
		records: map[string]models.CompletionRecord{},
	}
	for _, h := range habits {
		s.habits[h.ID] = h
	}
	return s
}

func (s *stubProvider) GetAllHabits() ([]models.Habit, error) {
	var habits []models.Habit
	for _, h := range s.habits {
		habits = append(habits, h)
	}
	return habits, nil
}

func (s *stubProvider) UpdateHabitDates(id string, completed, skipped, missed []string) error {
	h := s.habits[id]
	h.CompletedDates = completed
	h.SkippedDates = skipped
	h.MissedDates = missed
	s.habits[id] = h
	return nil
}

func (s *stubProvider) GetDayRecord(day string) (models.CompletionRecord, error) {
	rec := models.CompletionRecord{}
	for k, v := range s.records[day] {
		rec[k] = v
	}
	return rec, nil
}

func (s *stubProvider) UpsertDayRecord(day string, partial models.CompletionRecord) error {
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

func dailyHabit(id string, createdAt time.Time) models.Habit {
	return models.Habit{
		ID:                id,
		Name:              id,
		TimesPerDay:       1,
		RepeatMode:        models.RepeatDaily,
		TimeMode:          models.TimeSameEveryDay,
		NotificationTimes: []string{"08:00"},
		CreatedAt:         createdAt,
	}
}

func TestSubscribe_AssignsSubscriptionInUpdate(t *testing.T) {
	store := newStubProvider(dailyHabit("h1", time.Now()))
	m := NewModel(store, habit.NewSweeper())

	msg := m.subscribe()
	sub, ok := msg.(subscribedMsg)
	if !ok {
		t.Fatalf("expected subscribedMsg, got %T", msg)
	}
	if m.sub != nil {
		t.Error("subscription must not be assigned outside Update")
	}

	_, cmd := m.Update(sub)
	if m.sub == nil {
		t.Fatal("Update(subscribedMsg) must assign the subscription")
	}
	if cmd == nil {
		t.Fatal("Update(subscribedMsg) must start waiting for snapshots")
	}

	// The initial snapshot was pushed on subscribe; the wait command picks
	// it up and delivery happens through Update.
	snap, ok := cmd().(snapshotMsg)
	if !ok {
		t.Fatal("expected the initial snapshot")
	}
	m.Update(snap)
	if len(m.habits) != 1 {
		t.Errorf("expected 1 habit after snapshot, got %d", len(m.habits))
	}
}

func TestMutateHabit_CommandLeavesModelUntouched(t *testing.T) {
	h := dailyHabit("h1", time.Now())
	store := newStubProvider(h)
	m := NewModel(store, habit.NewSweeper())
	m.habits = []models.Habit{h}
	day := m.day

	cmd := m.mutateHabit("h1", func(h *models.Habit) error {
		return habit.ToggleCompletedDate(store, h, day)
	})
	if cmd == nil {
		t.Fatal("expected a command for a known habit")
	}

	if msg := cmd(); msg != nil {
		t.Fatalf("unexpected message: %v", msg)
	}

	// The write reached the store but the model's habit list is only
	// updated by the snapshot that comes back through Update.
	if stored := store.habits["h1"]; !stored.HasCompleted(day) {
		t.Error("store was not updated")
	}
	if m.habits[0].HasCompleted(day) {
		t.Error("command must not write the model's habit list")
	}

	updated, _ := store.GetAllHabits()
	m.Update(snapshotMsg(updated))
	if !m.habits[0].HasCompleted(day) {
		t.Error("snapshot delivery should update the model's habit list")
	}
}

func TestMutateHabit_UnknownHabitIsNoCommand(t *testing.T) {
	m := NewModel(newStubProvider(), habit.NewSweeper())
	if cmd := m.mutateHabit("missing", func(*models.Habit) error { return nil }); cmd != nil {
		t.Error("expected no command for an unknown habit")
	}
}

func TestSweep_CommandCopiesHabits(t *testing.T) {
	created := time.Now().AddDate(0, 0, -3)
	h := dailyHabit("h1", created)
	store := newStubProvider(h)
	m := NewModel(store, habit.NewSweeper())
	m.habits = []models.Habit{h}

	if msg := m.sweep()(); msg != nil {
		t.Fatalf("unexpected message: %v", msg)
	}

	if stored := store.habits["h1"]; len(stored.MissedDates) == 0 {
		t.Error("sweep should have flagged missed days in the store")
	}
	if len(m.habits[0].MissedDates) != 0 {
		t.Error("sweep command must not write the model's habit list")
	}
}
