package habit

import (
	"errors"
	"testing"
	"time"

	sprouterrors "github.com/sprouthq/sprout/internal/errors"
	"github.com/sprouthq/sprout/internal/models"
	"github.com/sprouthq/sprout/internal/utils"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestIsDueOn_Daily(t *testing.T) {
	h := models.Habit{
		ID:         "h1",
		RepeatMode: models.RepeatDaily,
		CreatedAt:  mustDate(t, "2024-01-01"),
	}

	for _, ds := range []string{"2024-01-01", "2024-01-05", "2024-06-30", "2025-12-31"} {
		due, err := IsDueOn(h, mustDate(t, ds))
		if err != nil {
			t.Fatalf("IsDueOn(%s) returned error: %v", ds, err)
		}
		if !due {
			t.Errorf("daily habit should be due on %s", ds)
		}
	}
}

func TestIsDueOn_EveryNDays(t *testing.T) {
	h := models.Habit{
		ID:             "h1",
		RepeatMode:     models.RepeatEveryNDays,
		RepeatInterval: 3,
		CreatedAt:      mustDate(t, "2024-01-01"),
	}

	tests := []struct {
		date string
		want bool
	}{
		{"2024-01-01", true}, // creation date is always due
		{"2024-01-02", false},
		{"2024-01-03", false},
		{"2024-01-04", true},
		{"2024-01-05", false},
		{"2024-01-07", true},
		{"2024-01-31", true}, // 30 days later
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			due, err := IsDueOn(h, mustDate(t, tt.date))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if due != tt.want {
				t.Errorf("IsDueOn(%s) = %v, want %v", tt.date, due, tt.want)
			}
		})
	}
}

func TestIsDueOn_EveryNDays_ClampsInvalidInterval(t *testing.T) {
	h := models.Habit{
		ID:             "h1",
		RepeatMode:     models.RepeatEveryNDays,
		RepeatInterval: 0,
		CreatedAt:      mustDate(t, "2024-01-01"),
	}

	// Clamped to 1, so every day is due instead of dividing by zero.
	due, err := IsDueOn(h, mustDate(t, "2024-01-02"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !due {
		t.Error("interval 0 should clamp to 1 and be due daily")
	}
}

func TestIsDueOn_SelectedWeekdays(t *testing.T) {
	h := models.Habit{
		ID:               "h1",
		RepeatMode:       models.RepeatSelectedWeekdays,
		SelectedWeekdays: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		CreatedAt:        mustDate(t, "2024-01-01"),
	}

	tests := []struct {
		date string
		want bool
	}{
		{"2024-01-01", true},  // Monday
		{"2024-01-02", false}, // Tuesday
		{"2024-01-03", true},  // Wednesday
		{"2024-01-05", true},  // Friday
		{"2024-01-06", false}, // Saturday
		{"2024-01-07", false}, // Sunday
	}
	for _, tt := range tests {
		due, err := IsDueOn(h, mustDate(t, tt.date))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if due != tt.want {
			t.Errorf("IsDueOn(%s) = %v, want %v", tt.date, due, tt.want)
		}
	}
}

func TestIsDueOn_UnknownRepeatMode(t *testing.T) {
	h := models.Habit{
		ID:         "h1",
		RepeatMode: models.RepeatMode("monthly"),
		CreatedAt:  mustDate(t, "2024-01-01"),
	}

	due, err := IsDueOn(h, mustDate(t, "2024-01-02"))
	if err == nil {
		t.Fatal("expected an error for unknown repeat mode")
	}
	if !errors.Is(err, sprouterrors.ErrDataIntegrity) {
		t.Errorf("expected ErrDataIntegrity, got %v", err)
	}
	if due {
		t.Error("unknown repeat mode must not report due")
	}
}

func TestIsDueOn_IgnoresTimeOfDay(t *testing.T) {
	h := models.Habit{
		ID:               "h1",
		RepeatMode:       models.RepeatSelectedWeekdays,
		SelectedWeekdays: []time.Weekday{time.Wednesday},
		CreatedAt:        mustDate(t, "2024-01-01"),
	}

	// 2024-01-03 is a Wednesday; late evening must not bleed into Thursday.
	late := mustDate(t, "2024-01-03").Add(23*time.Hour + 59*time.Minute)
	due, err := IsDueOn(h, late)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !due {
		t.Error("due decision must compare at day granularity")
	}
}
