package habit

import (
	"errors"
	"reflect"
	"testing"

	sprouterrors "github.com/sprouthq/sprout/internal/errors"
	"github.com/sprouthq/sprout/internal/models"
)

func TestPresent_DefaultsToNotDone(t *testing.T) {
	occs := []models.Occurrence{
		{HabitID: "h1", Index: 0, ScheduledTime: "08:00"},
		{HabitID: "h1", Index: 1, ScheduledTime: "20:00"},
	}
	rec := models.CompletionRecord{"h1_0": true}

	items := Present(occs, rec)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !items[0].Done {
		t.Error("h1_0 should be done")
	}
	if items[1].Done {
		t.Error("h1_1 has no record and should default to not done")
	}
}

func TestPresent_Deterministic(t *testing.T) {
	occs := []models.Occurrence{
		{HabitID: "h1", Index: 0, ScheduledTime: "08:00"},
		{HabitID: "h2", Index: 0, ScheduledTime: "09:00"},
	}
	rec := models.CompletionRecord{"h2_0": true}

	first := Present(occs, rec)
	second := Present(occs, rec)
	if !reflect.DeepEqual(first, second) {
		t.Error("Present must return identical output for identical input")
	}
}

func TestToggleOccurrence_SelfInverting(t *testing.T) {
	store := newFakeStore()
	day := "2024-02-01"

	next, err := ToggleOccurrence(store, day, "h1", 0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next {
		t.Error("first toggle should turn the flag on")
	}

	next, err = ToggleOccurrence(store, day, "h1", 0, next)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next {
		t.Error("second toggle should restore the original state")
	}

	rec, _ := store.GetDayRecord(day)
	if rec["h1_0"] {
		t.Error("record should show the occurrence as not done after double toggle")
	}
}

func TestToggleOccurrence_PartialUpdateOnly(t *testing.T) {
	store := newFakeStore()
	day := "2024-02-01"

	// Sibling occurrence already completed.
	if err := store.UpsertDayRecord(day, models.CompletionRecord{"h1_1": true}); err != nil {
		t.Fatal(err)
	}
	store.upserts = nil

	if _, err := ToggleOccurrence(store, day, "h1", 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.upserts) != 1 {
		t.Fatalf("expected exactly one upsert, got %d", len(store.upserts))
	}
	if len(store.upserts[0]) != 1 {
		t.Errorf("toggle must write only its own key, wrote %v", store.upserts[0])
	}

	rec, _ := store.GetDayRecord(day)
	if !rec["h1_1"] {
		t.Error("sibling key was clobbered by the toggle")
	}
	if !rec["h1_0"] {
		t.Error("toggled key not written")
	}
}

func TestToggleOccurrence_PersistenceError(t *testing.T) {
	store := newFakeStore()
	store.failWrites = true

	_, err := ToggleOccurrence(store, "2024-02-01", "h1", 0, false)
	if err == nil {
		t.Fatal("expected a persistence error")
	}
	if !errors.Is(err, sprouterrors.ErrPersistence) {
		t.Errorf("expected ErrPersistence, got %v", err)
	}
}

func TestToggleCompletedDate(t *testing.T) {
	h := models.Habit{ID: "h1", Name: "Read"}
	store := newFakeStore(h)

	if err := ToggleCompletedDate(store, &h, "2024-02-01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !h.HasCompleted("2024-02-01") {
		t.Error("date should be completed after first toggle")
	}

	if err := ToggleCompletedDate(store, &h, "2024-02-01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.HasCompleted("2024-02-01") {
		t.Error("date should be removed after second toggle")
	}
}

func TestSkipDate_EnforcesAtMostOneSet(t *testing.T) {
	h := models.Habit{
		ID:             "h1",
		Name:           "Read",
		CompletedDates: []string{"2024-02-01"},
		MissedDates:    []string{"2024-01-15"},
	}
	store := newFakeStore(h)

	if err := SkipDate(store, &h, "2024-02-01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(h.CompletedDates) != 0 {
		t.Errorf("completed dates should be empty, got %v", h.CompletedDates)
	}
	if !reflect.DeepEqual(h.SkippedDates, []string{"2024-02-01"}) {
		t.Errorf("skipped dates = %v, want [2024-02-01]", h.SkippedDates)
	}
	if !reflect.DeepEqual(h.MissedDates, []string{"2024-01-15"}) {
		t.Errorf("unrelated missed dates must be untouched, got %v", h.MissedDates)
	}

	// Skipping again is idempotent.
	if err := SkipDate(store, &h, "2024-02-01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.SkippedDates) != 1 {
		t.Errorf("repeated skip should not duplicate the date, got %v", h.SkippedDates)
	}
}

func TestAtMostOneSetUnderAnySequence(t *testing.T) {
	h := models.Habit{ID: "h1", Name: "Read", MissedDates: []string{"2024-02-01"}}
	store := newFakeStore(h)
	date := "2024-02-01"

	ops := []func() error{
		func() error { return ToggleCompletedDate(store, &h, date) },
		func() error { return SkipDate(store, &h, date) },
		func() error { return ToggleCompletedDate(store, &h, date) },
		func() error { return ToggleCompletedDate(store, &h, date) },
		func() error { return SkipDate(store, &h, date) },
	}

	for i, op := range ops {
		if err := op(); err != nil {
			t.Fatalf("op %d failed: %v", i, err)
		}
		count := 0
		if h.HasCompleted(date) {
			count++
		}
		if h.HasSkipped(date) {
			count++
		}
		if h.HasMissed(date) {
			count++
		}
		if count > 1 {
			t.Fatalf("after op %d the date is in %d sets", i, count)
		}
	}
}

func TestCoarseToggle_PersistenceErrorLeavesHabitUntouched(t *testing.T) {
	h := models.Habit{ID: "h1", Name: "Read", SkippedDates: []string{"2024-02-01"}}
	store := newFakeStore(h)
	store.failWrites = true

	err := ToggleCompletedDate(store, &h, "2024-02-01")
	if !errors.Is(err, sprouterrors.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}

	// No local state is durable until the write acknowledges.
	if !h.HasSkipped("2024-02-01") || h.HasCompleted("2024-02-01") {
		t.Error("habit must be unchanged when the write fails")
	}
}
