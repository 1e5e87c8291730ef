package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sprouthq/sprout/internal/habit"
	"github.com/sprouthq/sprout/internal/models"
	"github.com/sprouthq/sprout/internal/storage"
	"github.com/sprouthq/sprout/internal/utils"
)

type Context struct {
	Store   storage.Provider
	Sweeper *habit.Sweeper
}

// ResolveDate returns today when dateStr is empty, otherwise validates it.
func ResolveDate(dateStr string) (string, error) {
	if dateStr == "" {
		return utils.Today(), nil
	}
	if !utils.ValidateDateFormat(dateStr) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", dateStr)
	}
	return dateStr, nil
}

// FindHabit resolves a habit by name first, then by ID.
func FindHabit(store storage.Provider, nameOrID string) (models.Habit, error) {
	habits, err := store.GetAllHabits()
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if h.Name == nameOrID {
			return h, nil
		}
	}
	for _, h := range habits {
		if h.ID == nameOrID {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", nameOrID)
}

// ParseWeekdays parses a comma-separated list of weekdays, accepting names,
// three-letter abbreviations, or numbers (0=Sunday, 6=Saturday).
func ParseWeekdays(s string) ([]time.Weekday, error) {
	dayMap := map[string]time.Weekday{
		"sun": time.Sunday, "sunday": time.Sunday,
		"mon": time.Monday, "monday": time.Monday,
		"tue": time.Tuesday, "tuesday": time.Tuesday,
		"wed": time.Wednesday, "wednesday": time.Wednesday,
		"thu": time.Thursday, "thursday": time.Thursday,
		"fri": time.Friday, "friday": time.Friday,
		"sat": time.Saturday, "saturday": time.Saturday,
	}

	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err == nil && num >= 0 && num <= 6 {
			weekdays = append(weekdays, time.Weekday(num))
		} else {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
	}
	return weekdays, nil
}

// FormatRepeat formats a habit's repeat rule into a human-readable string.
func FormatRepeat(h models.Habit) string {
	switch h.RepeatMode {
	case models.RepeatDaily:
		return "daily"
	case models.RepeatEveryNDays:
		return fmt.Sprintf("every %d days", h.RepeatInterval)
	case models.RepeatSelectedWeekdays:
		var days []string
		for _, wd := range h.SelectedWeekdays {
			days = append(days, wd.String()[:3])
		}
		return fmt.Sprintf("weekly on %s", strings.Join(days, ","))
	default:
		return "unknown"
	}
}
