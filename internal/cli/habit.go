package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/sprouthq/sprout/internal/constants"
	"github.com/sprouthq/sprout/internal/habit"
	"github.com/sprouthq/sprout/internal/models"
	"github.com/sprouthq/sprout/internal/utils"
	"github.com/sprouthq/sprout/internal/validation"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Today  HabitTodayCmd  `cmd:"" help:"Show today's occurrences and their completion state."`
	Done   HabitDoneCmd   `cmd:"" help:"Toggle whole-day completion for a habit."`
	Skip   HabitSkipCmd   `cmd:"" help:"Mark a habit as skipped for a day."`
	Check  HabitCheckCmd  `cmd:"" help:"Toggle a single occurrence by index."`
	Due    HabitDueCmd    `cmd:"" help:"Show today's scheduled times for a habit."`
	Log    HabitLogCmd    `cmd:"" help:"Show a habit's completion history."`
	Sweep  HabitSweepCmd  `cmd:"" help:"Flag past due days with no record as missed."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
}

type HabitAddCmd struct {
	Name         string   `arg:"" optional:"" help:"Habit name."`
	Repeat       string   `help:"Repeat mode: daily, every-n-days, weekdays." default:"daily"`
	Interval     int      `help:"Day interval for every-n-days." default:"0"`
	Weekdays     string   `help:"Comma-separated weekdays for the weekdays mode."`
	Times        string   `help:"Comma-separated HH:MM times, one per daily occurrence."`
	WeekdayTimes []string `name:"weekday-times" help:"Per-weekday times as day=HH:MM[,HH:MM], repeatable. Only valid with the weekdays mode."`
	Folder       string   `help:"Folder label for grouping."`
	Icon         string   `help:"Display icon."`
	Color        string   `help:"Display color."`
	Interactive  bool     `short:"i" help:"Prompt for the habit definition instead of using flags."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	h := models.Habit{
		ID:        uuid.New().String(),
		Name:      c.Name,
		Folder:    c.Folder,
		Icon:      c.Icon,
		Color:     c.Color,
		TimeMode:  models.TimeSameEveryDay,
		CreatedAt: time.Now(),
	}

	if c.Interactive {
		if err := runHabitForm(&h); err != nil {
			return err
		}
	} else {
		switch c.Repeat {
		case "daily":
			h.RepeatMode = models.RepeatDaily
		case "every-n-days":
			h.RepeatMode = models.RepeatEveryNDays
			h.RepeatInterval = c.Interval
		case "weekdays":
			h.RepeatMode = models.RepeatSelectedWeekdays
			if c.Weekdays != "" {
				weekdays, err := ParseWeekdays(c.Weekdays)
				if err != nil {
					return err
				}
				h.SelectedWeekdays = weekdays
			}
		default:
			return fmt.Errorf("unknown repeat mode %q (expected daily, every-n-days, or weekdays)", c.Repeat)
		}

		switch {
		case len(c.WeekdayTimes) > 0:
			if c.Times != "" {
				return fmt.Errorf("cannot combine --times with --weekday-times")
			}
			table, perDay, err := parseWeekdayTimes(c.WeekdayTimes)
			if err != nil {
				return err
			}
			h.TimeMode = models.TimePerWeekday
			h.WeekdayTimes = table
			h.TimesPerDay = perDay
			if len(h.SelectedWeekdays) == 0 {
				for wd := range table {
					h.SelectedWeekdays = append(h.SelectedWeekdays, wd)
				}
				sort.Slice(h.SelectedWeekdays, func(i, j int) bool {
					return h.SelectedWeekdays[i] < h.SelectedWeekdays[j]
				})
			}
		case c.Times == "":
			h.NotificationTimes = []string{constants.DefaultNotificationTime}
			h.TimesPerDay = 1
		default:
			for _, t := range strings.Split(c.Times, ",") {
				h.NotificationTimes = append(h.NotificationTimes, strings.TrimSpace(t))
			}
			h.TimesPerDay = len(h.NotificationTimes)
		}
	}

	if err := validation.ValidateHabit(h); err != nil {
		return err
	}

	if err := ctx.Store.AddHabit(h); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s, %d time(s) per day)\n", h.Name, FormatRepeat(h), h.TimesPerDay)
	return nil
}

// parseWeekdayTimes parses repeated day=HH:MM[,HH:MM] entries into a
// per-weekday time table. Every weekday must carry the same number of
// times so occurrence indexes stay stable across days. A day token may
// name several weekdays (e.g. mon,wed=07:00) to share one list.
func parseWeekdayTimes(entries []string) (map[time.Weekday][]string, int, error) {
	table := make(map[time.Weekday][]string, len(entries))
	perDay := 0
	for _, entry := range entries {
		day, list, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, 0, fmt.Errorf("invalid weekday times %q (expected day=HH:MM[,HH:MM])", entry)
		}
		weekdays, err := ParseWeekdays(day)
		if err != nil {
			return nil, 0, err
		}

		var times []string
		for _, t := range strings.Split(list, ",") {
			times = append(times, strings.TrimSpace(t))
		}
		if perDay == 0 {
			perDay = len(times)
		} else if len(times) != perDay {
			return nil, 0, fmt.Errorf("every weekday needs the same number of times (got %d for %q, want %d)", len(times), day, perDay)
		}

		for _, wd := range weekdays {
			if _, dup := table[wd]; dup {
				return nil, 0, fmt.Errorf("weekday %s listed twice in --weekday-times", wd)
			}
			table[wd] = times
		}
	}
	return table, perDay, nil
}

func runHabitForm(h *models.Habit) error {
	var repeatMode, weekdays, times, interval string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit name").
				Value(&h.Name),
			huh.NewSelect[string]().
				Title("Repeat").
				Options(
					huh.NewOption("Every day", "daily"),
					huh.NewOption("Every N days", "every-n-days"),
					huh.NewOption("Specific weekdays", "weekdays"),
				).
				Value(&repeatMode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Interval in days (every-n-days only)").
				Placeholder("3").
				Value(&interval),
			huh.NewInput().
				Title("Weekdays (weekdays only, e.g. mon,wed,fri)").
				Value(&weekdays),
			huh.NewInput().
				Title("Times per day (HH:MM, comma-separated)").
				Placeholder("09:00").
				Value(&times),
			huh.NewInput().
				Title("Folder").
				Value(&h.Folder),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	switch repeatMode {
	case "every-n-days":
		h.RepeatMode = models.RepeatEveryNDays
		if _, err := fmt.Sscanf(interval, "%d", &h.RepeatInterval); err != nil {
			return fmt.Errorf("invalid interval %q", interval)
		}
	case "weekdays":
		h.RepeatMode = models.RepeatSelectedWeekdays
		parsed, err := ParseWeekdays(weekdays)
		if err != nil {
			return err
		}
		h.SelectedWeekdays = parsed
	default:
		h.RepeatMode = models.RepeatDaily
	}

	if times == "" {
		times = constants.DefaultNotificationTime
	}
	for _, t := range strings.Split(times, ",") {
		h.NotificationTimes = append(h.NotificationTimes, strings.TrimSpace(t))
	}
	h.TimesPerDay = len(h.NotificationTimes)
	return nil
}

type HabitListCmd struct {
	Folder string `help:"Only show habits in this folder."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	shown := 0
	for _, h := range habits {
		if c.Folder != "" && h.Folder != c.Folder {
			continue
		}
		folder := ""
		if h.Folder != "" {
			folder = fmt.Sprintf(" [%s]", h.Folder)
		}
		fmt.Printf("%s%s  %s\n", h.Name, folder, FormatRepeat(h))
		shown++
	}
	if shown == 0 {
		fmt.Println("No habits found.")
	}
	return nil
}

type HabitTodayCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitTodayCmd) Run(ctx *Context) error {
	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	date, err := utils.ParseDate(day)
	if err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	// Flag past missed days before rendering; runs at most once per habit
	// per process.
	if err := ctx.Sweeper.Run(ctx.Store, habits, time.Now()); err != nil {
		return err
	}

	occs := habit.DaySchedule(habits, date)
	if len(occs) == 0 {
		fmt.Printf("Nothing due on %s.\n", day)
		return nil
	}

	rec, err := ctx.Store.GetDayRecord(day)
	if err != nil {
		return err
	}

	for _, item := range habit.Present(occs, rec) {
		mark := "[ ]"
		if item.Done {
			mark = "[x]"
		}
		fmt.Printf("%s %s  %s (#%d)\n", mark, item.ScheduledTime, item.HabitName, item.Index)
	}
	return nil
}

type HabitDoneCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	h, err := FindHabit(ctx.Store, c.Name)
	if err != nil {
		return err
	}

	wasDone := h.HasCompleted(day)
	if err := habit.ToggleCompletedDate(ctx.Store, &h, day); err != nil {
		return err
	}

	if wasDone {
		fmt.Printf("Unmarked %q for %s\n", h.Name, day)
	} else {
		fmt.Printf("Completed %q for %s\n", h.Name, day)
	}
	return nil
}

type HabitSkipCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitSkipCmd) Run(ctx *Context) error {
	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	h, err := FindHabit(ctx.Store, c.Name)
	if err != nil {
		return err
	}

	if err := habit.SkipDate(ctx.Store, &h, day); err != nil {
		return err
	}

	fmt.Printf("Skipped %q for %s\n", h.Name, day)
	return nil
}

type HabitCheckCmd struct {
	Name  string `arg:"" help:"Habit name or ID."`
	Index int    `arg:"" help:"0-based occurrence index within the day."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitCheckCmd) Run(ctx *Context) error {
	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	h, err := FindHabit(ctx.Store, c.Name)
	if err != nil {
		return err
	}
	if c.Index < 0 || c.Index >= h.TimesPerDay {
		return fmt.Errorf("occurrence index %d out of range (habit has %d per day)", c.Index, h.TimesPerDay)
	}

	rec, err := ctx.Store.GetDayRecord(day)
	if err != nil {
		return err
	}
	current := rec[models.CompletionKey(h.ID, c.Index)]

	next, err := habit.ToggleOccurrence(ctx.Store, day, h.ID, c.Index, current)
	if err != nil {
		return err
	}

	state := "pending"
	if next {
		state = "done"
	}
	fmt.Printf("%q occurrence #%d on %s: %s\n", h.Name, c.Index, day, state)
	return nil
}

type HabitDueCmd struct {
	Name string `arg:"" optional:"" help:"Habit name or ID (default: all habits)."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitDueCmd) Run(ctx *Context) error {
	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	date, err := utils.ParseDate(day)
	if err != nil {
		return err
	}

	var habits []models.Habit
	if c.Name != "" {
		h, err := FindHabit(ctx.Store, c.Name)
		if err != nil {
			return err
		}
		habits = []models.Habit{h}
	} else {
		if habits, err = ctx.Store.GetAllHabits(); err != nil {
			return err
		}
	}

	occs := habit.DaySchedule(habits, date)
	if len(occs) == 0 {
		fmt.Printf("Nothing scheduled on %s.\n", day)
		return nil
	}
	for _, o := range occs {
		fmt.Printf("%s  %s\n", o.ScheduledTime, o.HabitName)
	}
	return nil
}

type HabitLogCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
	Days int    `help:"Number of trailing days to show." default:"30"`
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	h, err := FindHabit(ctx.Store, c.Name)
	if err != nil {
		return err
	}

	end := utils.TruncateToDay(time.Now())
	start := end.AddDate(0, 0, -(c.Days - 1))
	if created := utils.TruncateToDay(h.CreatedAt); created.After(start) {
		start = created
	}

	fmt.Printf("%s (%s)\n", h.Name, FormatRepeat(h))
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		due, err := habit.IsDueOn(h, d)
		if err != nil {
			return err
		}
		if !due {
			continue
		}
		ds := utils.FormatDate(d)
		mark := " "
		switch {
		case h.HasCompleted(ds):
			mark = "x"
		case h.HasSkipped(ds):
			mark = "s"
		case h.HasMissed(ds):
			mark = "!"
		}
		fmt.Printf("%s [%s]\n", ds, mark)
	}
	return nil
}

type HabitSweepCmd struct{}

func (c *HabitSweepCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	flagged := 0
	for i := range habits {
		dates := habit.SweepMissed(habits[i], time.Now())
		if err := habit.ApplySweep(ctx.Store, &habits[i], dates); err != nil {
			return err
		}
		flagged += len(dates)
	}

	fmt.Printf("Flagged %d missed day(s) across %d habit(s).\n", flagged, len(habits))
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	h, err := FindHabit(ctx.Store, c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteHabit(h.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", h.Name)
	return nil
}
