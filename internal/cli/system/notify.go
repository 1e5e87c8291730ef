package system

import (
	"fmt"
	"time"

	"github.com/sprouthq/sprout/internal/cli"
	"github.com/sprouthq/sprout/internal/habit"
	"github.com/sprouthq/sprout/internal/logger"
	"github.com/sprouthq/sprout/internal/notifier"
	"github.com/sprouthq/sprout/internal/utils"
)

// NotifyCmd delivers reminders for habit occurrences scheduled at the
// current minute. Intended to run from a cron entry or the tray app, not
// interactively.
type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	now := time.Now()
	currentTime := now.Format("15:04")
	day := utils.Today()

	rec, err := ctx.Store.GetDayRecord(day)
	if err != nil {
		return err
	}

	n := notifier.New()
	for _, item := range habit.Present(habit.DaySchedule(habits, now), rec) {
		if item.ScheduledTime != currentTime || item.Done {
			continue
		}
		text := fmt.Sprintf("Time for %s (%s)", item.HabitName, item.ScheduledTime)
		if c.DryRun {
			fmt.Println(text)
			continue
		}
		if err := n.Notify(text); err != nil {
			logger.Warn("Failed to deliver reminder", "habit", item.HabitID, "error", err)
		}
	}
	return nil
}
