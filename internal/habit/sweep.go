package habit

import (
	"sync"
	"time"

	"github.com/sprouthq/sprout/internal/errors"
	"github.com/sprouthq/sprout/internal/logger"
	"github.com/sprouthq/sprout/internal/models"
	"github.com/sprouthq/sprout/internal/storage"
	"github.com/sprouthq/sprout/internal/utils"
)

// SweepMissed walks every calendar date from the habit's creation date
// through yesterday (both inclusive, day-truncated) and returns the dates
// the habit was due but has no completed, skipped, or already-missed
// record. Pure; applying the result is a separate step. A habit with an
// invalid definition yields an empty result and a logged diagnostic.
func SweepMissed(h models.Habit, today time.Time) []string {
	start := utils.TruncateToDay(h.CreatedAt)
	end := utils.TruncateToDay(today).AddDate(0, 0, -1)

	var missed []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		due, err := IsDueOn(h, d)
		if err != nil {
			logger.Error("Missed-day sweep aborted for habit", "habit", h.ID, "error", err)
			return nil
		}
		if !due {
			continue
		}
		ds := utils.FormatDate(d)
		if h.HasCompleted(ds) || h.HasSkipped(ds) || h.HasMissed(ds) {
			continue
		}
		missed = append(missed, ds)
	}
	return missed
}

// ApplySweep merges newly detected missed dates into the habit's missed
// set and persists the three date arrays. The merge is additive only; it
// never removes dates. A no-op when dates is empty.
func ApplySweep(store storage.Provider, h *models.Habit, dates []string) error {
	if len(dates) == 0 {
		return nil
	}

	missed := h.MissedDates
	for _, d := range dates {
		missed = addDate(missed, d)
	}

	if err := store.UpdateHabitDates(h.ID, h.CompletedDates, h.SkippedDates, missed); err != nil {
		return errors.Persistence("apply missed-day sweep", err)
	}

	h.MissedDates = missed
	return nil
}

// Sweeper runs the missed-day sweep at most once per habit per session.
// Snapshot subscriptions redeliver the habit list after every write,
// including the sweep's own, so without the guard the sweep would re-run
// on its own echo.
type Sweeper struct {
	mu    sync.Mutex
	swept map[string]bool
}

func NewSweeper() *Sweeper {
	return &Sweeper{swept: make(map[string]bool)}
}

// Run sweeps each not-yet-swept habit and persists any newly missed dates.
// The habits slice is mutated in place so callers see the updated missed
// sets. The first persistence failure stops the run and is returned.
func (s *Sweeper) Run(store storage.Provider, habits []models.Habit, today time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range habits {
		h := &habits[i]
		if s.swept[h.ID] {
			continue
		}
		dates := SweepMissed(*h, today)
		if err := ApplySweep(store, h, dates); err != nil {
			return err
		}
		s.swept[h.ID] = true
		if len(dates) > 0 {
			logger.Debug("Flagged missed days", "habit", h.ID, "count", len(dates))
		}
	}
	return nil
}
