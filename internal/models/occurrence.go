package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Occurrence is one due instance of a habit on one calendar day at one
// scheduled time. Occurrences are derived on every render pass and never
// persisted; only their completion flags are.
type Occurrence struct {
	HabitID       string `json:"habit_id"`
	HabitName     string `json:"habit_name"`
	Day           string `json:"day"`            // YYYY-MM-DD
	Index         int    `json:"index"`          // 0-based position within the day's expansion
	ScheduledTime string `json:"scheduled_time"` // HH:MM
}

// CompletionKey is the join key into the day's completion record. It is
// only stable within a single day; the expansion recomputes it daily.
func (o Occurrence) CompletionKey() string {
	return CompletionKey(o.HabitID, o.Index)
}

// CompletionKey builds the habitID_index join key.
func CompletionKey(habitID string, index int) string {
	return fmt.Sprintf("%s_%d", habitID, index)
}

// ParseCompletionKey splits a completion key back into habit ID and index.
// Habit IDs may themselves contain underscores, so the split is on the last
// separator.
func ParseCompletionKey(key string) (habitID string, index int, err error) {
	i := strings.LastIndex(key, "_")
	if i < 1 || i == len(key)-1 {
		return "", 0, fmt.Errorf("malformed completion key %q", key)
	}
	index, err = strconv.Atoi(key[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("malformed completion key %q: %w", key, err)
	}
	return key[:i], index, nil
}

// CompletionRecord maps completion keys to done flags for one calendar day.
type CompletionRecord map[string]bool

// DisplayItem is an occurrence joined with its completion state, ready for
// rendering.
type DisplayItem struct {
	Occurrence
	Done bool `json:"done"`
}
