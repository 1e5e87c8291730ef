package habit

import (
	"slices"

	"github.com/sprouthq/sprout/internal/errors"
	"github.com/sprouthq/sprout/internal/models"
	"github.com/sprouthq/sprout/internal/storage"
)

// Present joins occurrences with a day's completion record. A key absent
// from the record means not completed. Pure; safe to call on every render.
func Present(occs []models.Occurrence, rec models.CompletionRecord) []models.DisplayItem {
	items := make([]models.DisplayItem, 0, len(occs))
	for _, o := range occs {
		items = append(items, models.DisplayItem{
			Occurrence: o,
			Done:       rec[o.CompletionKey()],
		})
	}
	return items
}

// ToggleOccurrence flips the completion flag of a single occurrence for the
// given day and persists only that key. Sibling keys in the same day's
// record are untouched; a record for a day that does not exist yet is
// created by the merge upsert. Returns the new state.
func ToggleOccurrence(store storage.Provider, day, habitID string, index int, current bool) (bool, error) {
	next := !current
	partial := models.CompletionRecord{
		models.CompletionKey(habitID, index): next,
	}
	if err := store.UpsertDayRecord(day, partial); err != nil {
		return current, errors.Persistence("toggle occurrence", err)
	}
	return next, nil
}

// ToggleCompletedDate is the coarse, whole-day completion toggle used by
// single-occurrence views. If date is already completed it is removed;
// otherwise it is added to CompletedDates and removed from the skipped and
// missed sets, keeping a date in at most one of the three arrays. The habit
// is mutated in place only after the write succeeds.
func ToggleCompletedDate(store storage.Provider, h *models.Habit, date string) error {
	completed := h.CompletedDates
	skipped := h.SkippedDates
	missed := h.MissedDates

	if slices.Contains(completed, date) {
		completed = removeDate(completed, date)
	} else {
		completed = addDate(completed, date)
		skipped = removeDate(skipped, date)
		missed = removeDate(missed, date)
	}

	if err := store.UpdateHabitDates(h.ID, completed, skipped, missed); err != nil {
		return errors.Persistence("toggle completed date", err)
	}

	h.CompletedDates = completed
	h.SkippedDates = skipped
	h.MissedDates = missed
	return nil
}

// SkipDate marks a date as explicitly skipped, removing it from the
// completed and missed sets. Idempotent under repeated calls.
func SkipDate(store storage.Provider, h *models.Habit, date string) error {
	skipped := addDate(h.SkippedDates, date)
	completed := removeDate(h.CompletedDates, date)
	missed := removeDate(h.MissedDates, date)

	if err := store.UpdateHabitDates(h.ID, completed, skipped, missed); err != nil {
		return errors.Persistence("skip date", err)
	}

	h.CompletedDates = completed
	h.SkippedDates = skipped
	h.MissedDates = missed
	return nil
}

func addDate(dates []string, date string) []string {
	if slices.Contains(dates, date) {
		return dates
	}
	out := make([]string, len(dates), len(dates)+1)
	copy(out, dates)
	return append(out, date)
}

func removeDate(dates []string, date string) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if d != date {
			out = append(out, d)
		}
	}
	return out
}
