package habit

import (
	"sort"
	"time"

	"github.com/sprouthq/sprout/internal/logger"
	"github.com/sprouthq/sprout/internal/models"
	"github.com/sprouthq/sprout/internal/utils"
)

// Expand produces the dated, timed occurrences of a habit for one calendar
// day. It returns an empty slice when the habit is not due, and also when
// the habit is due but has no time configured for that weekday under
// per-weekday times (a configuration gap, not an error).
func Expand(h models.Habit, date time.Time) ([]models.Occurrence, error) {
	due, err := IsDueOn(h, date)
	if err != nil {
		return nil, err
	}
	if !due {
		return nil, nil
	}

	times := h.TimesOn(utils.TruncateToDay(date).Weekday())
	if len(times) == 0 {
		return nil, nil
	}

	day := utils.FormatDate(date)
	occs := make([]models.Occurrence, 0, len(times))
	for i, t := range times {
		occs = append(occs, models.Occurrence{
			HabitID:       h.ID,
			HabitName:     h.Name,
			Day:           day,
			Index:         i,
			ScheduledTime: t,
		})
	}
	return occs, nil
}

// DaySchedule expands every habit for the given date and merges the results
// into one list sorted ascending by scheduled time, with ties broken by
// habit ID then occurrence index so the ordering is deterministic. Habits
// with an unrecognized repeat mode are skipped with a logged diagnostic
// instead of failing the whole day's view.
func DaySchedule(habits []models.Habit, date time.Time) []models.Occurrence {
	var combined []models.Occurrence
	for _, h := range habits {
		occs, err := Expand(h, date)
		if err != nil {
			logger.Error("Skipping habit with invalid definition", "habit", h.ID, "error", err)
			continue
		}
		combined = append(combined, occs...)
	}

	sort.Slice(combined, func(i, j int) bool {
		a, b := combined[i], combined[j]
		if a.ScheduledTime != b.ScheduledTime {
			return a.ScheduledTime < b.ScheduledTime
		}
		if a.HabitID != b.HabitID {
			return a.HabitID < b.HabitID
		}
		return a.Index < b.Index
	})
	return combined
}
