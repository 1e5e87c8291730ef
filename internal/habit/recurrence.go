package habit

import (
	"time"

	"github.com/sprouthq/sprout/internal/errors"
	"github.com/sprouthq/sprout/internal/logger"
	"github.com/sprouthq/sprout/internal/models"
	"github.com/sprouthq/sprout/internal/utils"
)

// IsDueOn decides whether a habit is due on the given calendar date based
// on its repeat rule. Dates are compared at day granularity; any
// time-of-day on date is ignored.
func IsDueOn(h models.Habit, date time.Time) (bool, error) {
	switch h.RepeatMode {
	case models.RepeatDaily:
		return true, nil

	case models.RepeatEveryNDays:
		interval := h.RepeatInterval
		if interval < 1 {
			// Validation rejects this at write time; clamp rather than
			// divide by zero if it slips through anyway.
			logger.Warn("Habit has non-positive repeat interval, clamping to 1",
				"habit", h.ID, "interval", h.RepeatInterval)
			interval = 1
		}
		days := utils.DaysBetween(h.CreatedAt, date)
		return ((days%interval)+interval)%interval == 0, nil

	case models.RepeatSelectedWeekdays:
		return h.RepeatsOnWeekday(utils.TruncateToDay(date).Weekday()), nil

	default:
		return false, errors.DataIntegrityf("unknown repeat mode %q for habit %s", h.RepeatMode, h.ID)
	}
}
