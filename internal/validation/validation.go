package validation

import (
	"time"

	"github.com/sprouthq/sprout/internal/constants"
	"github.com/sprouthq/sprout/internal/errors"
	"github.com/sprouthq/sprout/internal/models"
	"github.com/sprouthq/sprout/internal/utils"
)

// ValidateHabit is the hard validation boundary for habit writes. Anything
// it rejects here is treated as unreachable by the occurrence engine, which
// lets the evaluator surface leftovers as data-integrity faults instead of
// guessing.
func ValidateHabit(h models.Habit) error {
	if h.Name == "" {
		return errors.Configurationf("habit name must not be empty")
	}
	if h.TimesPerDay < 1 {
		return errors.Configurationf("times per day must be >= 1, got %d", h.TimesPerDay)
	}

	switch h.RepeatMode {
	case models.RepeatDaily:
	case models.RepeatEveryNDays:
		if h.RepeatInterval < 1 {
			return errors.Configurationf("repeat interval must be >= 1, got %d", h.RepeatInterval)
		}
	case models.RepeatSelectedWeekdays:
		if len(h.SelectedWeekdays) == 0 {
			return errors.Configurationf("weekday repeat requires at least one selected weekday")
		}
		for _, wd := range h.SelectedWeekdays {
			if wd < time.Sunday || wd > time.Saturday {
				return errors.Configurationf("invalid weekday %d", wd)
			}
		}
	default:
		return errors.Configurationf("unknown repeat mode %q", h.RepeatMode)
	}

	switch h.TimeMode {
	case models.TimeSameEveryDay:
		if err := validateTimeList(h.NotificationTimes, h.TimesPerDay); err != nil {
			return err
		}
	case models.TimePerWeekday:
		if h.RepeatMode != models.RepeatSelectedWeekdays {
			return errors.Configurationf("per-weekday times are only valid with a weekday repeat")
		}
		for wd, times := range h.WeekdayTimes {
			if !h.RepeatsOnWeekday(wd) {
				return errors.Configurationf("times configured for %s but the habit does not repeat on it", wd)
			}
			if err := validateTimeList(times, h.TimesPerDay); err != nil {
				return err
			}
		}
	default:
		return errors.Configurationf("unknown time mode %q", h.TimeMode)
	}

	return nil
}

func validateTimeList(times []string, timesPerDay int) error {
	if len(times) != timesPerDay {
		return errors.Configurationf("expected %d scheduled time(s), got %d", timesPerDay, len(times))
	}
	for _, t := range times {
		if !utils.ValidateTimeFormat(t) {
			return errors.Configurationf("invalid time %q (expected HH:MM)", t)
		}
	}
	return nil
}

// ValidateTask checks a task before it is written.
func ValidateTask(t models.Task) error {
	if t.Name == "" {
		return errors.Configurationf("task name must not be empty")
	}
	if t.Priority < constants.MinPriority || t.Priority > constants.MaxPriority {
		return errors.Configurationf("priority must be between %d and %d, got %d",
			constants.MinPriority, constants.MaxPriority, t.Priority)
	}
	return nil
}
