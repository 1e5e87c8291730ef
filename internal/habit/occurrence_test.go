package habit

import (
	"testing"
	"time"

	"github.com/sprouthq/sprout/internal/models"
)

func TestExpand_SingleDailyOccurrence(t *testing.T) {
	h := models.Habit{
		ID:                "habit-1",
		Name:              "Water plants",
		RepeatMode:        models.RepeatDaily,
		TimesPerDay:       1,
		TimeMode:          models.TimeSameEveryDay,
		NotificationTimes: []string{"08:00"},
		CreatedAt:         mustDate(t, "2024-01-01"),
	}

	occs, err := Expand(h, mustDate(t, "2024-01-05"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occs) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occs))
	}
	if occs[0].CompletionKey() != "habit-1_0" {
		t.Errorf("completion key = %q, want %q", occs[0].CompletionKey(), "habit-1_0")
	}
	if occs[0].ScheduledTime != "08:00" {
		t.Errorf("scheduled time = %q, want %q", occs[0].ScheduledTime, "08:00")
	}
	if occs[0].Day != "2024-01-05" {
		t.Errorf("day = %q, want %q", occs[0].Day, "2024-01-05")
	}
}

func TestExpand_MultiplePerDayUniqueKeys(t *testing.T) {
	h := models.Habit{
		ID:                "habit-1",
		Name:              "Stretch",
		RepeatMode:        models.RepeatDaily,
		TimesPerDay:       3,
		TimeMode:          models.TimeSameEveryDay,
		NotificationTimes: []string{"07:00", "12:30", "21:00"},
		CreatedAt:         mustDate(t, "2024-01-01"),
	}

	occs, err := Expand(h, mustDate(t, "2024-02-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occs) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(occs))
	}

	seen := map[string]bool{}
	for i, o := range occs {
		if o.Index != i {
			t.Errorf("occurrence %d has index %d", i, o.Index)
		}
		key := o.CompletionKey()
		if seen[key] {
			t.Errorf("duplicate completion key %q", key)
		}
		seen[key] = true
	}
}

func TestExpand_NotDueIsEmpty(t *testing.T) {
	h := models.Habit{
		ID:                "habit-1",
		RepeatMode:        models.RepeatSelectedWeekdays,
		SelectedWeekdays:  []time.Weekday{time.Monday},
		TimesPerDay:       1,
		TimeMode:          models.TimeSameEveryDay,
		NotificationTimes: []string{"09:00"},
		CreatedAt:         mustDate(t, "2024-01-01"),
	}

	occs, err := Expand(h, mustDate(t, "2024-01-02")) // Tuesday
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occs) != 0 {
		t.Errorf("expected no occurrences on a non-due day, got %d", len(occs))
	}
}

func TestExpand_PerWeekdayConfigurationGap(t *testing.T) {
	// Due on Mon/Wed/Fri but only Monday and Friday have times configured.
	// Wednesday stays due yet expands to nothing.
	h := models.Habit{
		ID:               "habit-1",
		RepeatMode:       models.RepeatSelectedWeekdays,
		SelectedWeekdays: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		TimesPerDay:      2,
		TimeMode:         models.TimePerWeekday,
		WeekdayTimes: map[time.Weekday][]string{
			time.Monday: {"07:00"},
			time.Friday: {"07:00", "19:00"},
		},
		CreatedAt: mustDate(t, "2024-01-01"),
	}

	wednesday := mustDate(t, "2024-01-03")
	due, err := IsDueOn(h, wednesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !due {
		t.Fatal("habit should be due on Wednesday")
	}

	occs, err := Expand(h, wednesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occs) != 0 {
		t.Errorf("expected no occurrences for unconfigured weekday, got %d", len(occs))
	}

	friday := mustDate(t, "2024-01-05")
	occs, err = Expand(h, friday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occs) != 2 {
		t.Errorf("expected 2 occurrences on Friday, got %d", len(occs))
	}
}

func TestDaySchedule_SortedWithDeterministicTies(t *testing.T) {
	created := mustDate(t, "2024-01-01")
	habits := []models.Habit{
		{
			ID: "b", Name: "B", RepeatMode: models.RepeatDaily, TimesPerDay: 1,
			TimeMode: models.TimeSameEveryDay, NotificationTimes: []string{"08:00"}, CreatedAt: created,
		},
		{
			ID: "a", Name: "A", RepeatMode: models.RepeatDaily, TimesPerDay: 2,
			TimeMode: models.TimeSameEveryDay, NotificationTimes: []string{"08:00", "06:00"}, CreatedAt: created,
		},
	}

	occs := DaySchedule(habits, mustDate(t, "2024-03-01"))
	if len(occs) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(occs))
	}

	// 06:00 a#1, then the 08:00 tie resolves a before b.
	want := []string{"a_1", "a_0", "b_0"}
	for i, o := range occs {
		if o.CompletionKey() != want[i] {
			t.Errorf("position %d: got %q, want %q", i, o.CompletionKey(), want[i])
		}
	}
}

func TestDaySchedule_SkipsInvalidHabit(t *testing.T) {
	created := mustDate(t, "2024-01-01")
	habits := []models.Habit{
		{
			ID: "bad", Name: "Bad", RepeatMode: models.RepeatMode("hourly"), TimesPerDay: 1,
			TimeMode: models.TimeSameEveryDay, NotificationTimes: []string{"08:00"}, CreatedAt: created,
		},
		{
			ID: "good", Name: "Good", RepeatMode: models.RepeatDaily, TimesPerDay: 1,
			TimeMode: models.TimeSameEveryDay, NotificationTimes: []string{"09:00"}, CreatedAt: created,
		},
	}

	occs := DaySchedule(habits, mustDate(t, "2024-03-01"))
	if len(occs) != 1 {
		t.Fatalf("expected the invalid habit to be skipped, got %d occurrences", len(occs))
	}
	if occs[0].HabitID != "good" {
		t.Errorf("unexpected habit %q in schedule", occs[0].HabitID)
	}
}
