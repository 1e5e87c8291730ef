package models

import (
	"slices"
	"time"
)

// RepeatMode controls which calendar days a habit is due.
type RepeatMode string

const (
	RepeatDaily            RepeatMode = "daily"
	RepeatEveryNDays       RepeatMode = "every_n_days"
	RepeatSelectedWeekdays RepeatMode = "selected_weekdays"
)

// TimeMode controls how the scheduled times for a due day are resolved.
type TimeMode string

const (
	// TimeSameEveryDay uses NotificationTimes for every due day.
	TimeSameEveryDay TimeMode = "same_every_day"
	// TimePerWeekday looks up WeekdayTimes by the day's weekday. Only valid
	// together with RepeatSelectedWeekdays.
	TimePerWeekday TimeMode = "per_weekday"
)

// Habit represents a recurring activity definition. The three date arrays
// (CompletedDates, SkippedDates, MissedDates) hold YYYY-MM-DD strings and a
// date lives in at most one of them; the toggle operations enforce that,
// not the storage layer.
type Habit struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon,omitempty"`
	Color  string `json:"color,omitempty"`
	Folder string `json:"folder,omitempty"`

	TimesPerDay      int            `json:"times_per_day"`
	RepeatMode       RepeatMode     `json:"repeat_mode"`
	RepeatInterval   int            `json:"repeat_interval,omitempty"`
	SelectedWeekdays []time.Weekday `json:"selected_weekdays,omitempty"`

	TimeMode          TimeMode                  `json:"time_mode"`
	NotificationTimes []string                  `json:"notification_times,omitempty"` // HH:MM
	WeekdayTimes      map[time.Weekday][]string `json:"weekday_times,omitempty"`      // weekday -> HH:MM list

	CreatedAt time.Time `json:"created_at"`

	CompletedDates []string `json:"completed_dates,omitempty"`
	SkippedDates   []string `json:"skipped_dates,omitempty"`
	MissedDates    []string `json:"missed_dates,omitempty"`
}

// TimesOn returns the scheduled times for the given weekday, honoring the
// habit's time mode. A nil result means no time is configured for that day.
func (h Habit) TimesOn(wd time.Weekday) []string {
	if h.TimeMode == TimePerWeekday {
		return h.WeekdayTimes[wd]
	}
	return h.NotificationTimes
}

// HasCompleted reports whether the given YYYY-MM-DD date is recorded as
// completed under the coarse date-array scheme.
func (h Habit) HasCompleted(date string) bool {
	return slices.Contains(h.CompletedDates, date)
}

// HasSkipped reports whether the given date is recorded as skipped.
func (h Habit) HasSkipped(date string) bool {
	return slices.Contains(h.SkippedDates, date)
}

// HasMissed reports whether the given date is recorded as missed.
func (h Habit) HasMissed(date string) bool {
	return slices.Contains(h.MissedDates, date)
}

// RepeatsOnWeekday reports whether wd is in the habit's selected weekday set.
func (h Habit) RepeatsOnWeekday(wd time.Weekday) bool {
	return slices.Contains(h.SelectedWeekdays, wd)
}
