package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sprouthq/sprout/internal/habit"
	"github.com/sprouthq/sprout/internal/models"
	"github.com/sprouthq/sprout/internal/storage"
	"github.com/sprouthq/sprout/internal/utils"
)

// Model renders today's combined occurrence list and wires key presses to
// the completion toggles. Habit snapshots arrive through a watcher
// subscription, so writes made elsewhere in the process show up live.
//
// Commands run on their own goroutines, so command closures never write
// model fields: they do store I/O on values captured while still inside
// Update and report back with a message. Every field assignment happens in
// Update on the program goroutine.
type Model struct {
	store   storage.Provider
	sweeper *habit.Sweeper
	watcher *storage.HabitWatcher
	sub     *storage.Subscription

	day    string
	habits []models.Habit
	items  []models.DisplayItem
	cursor int

	keys     keyMap
	help     help.Model
	err      error
	quitting bool
}

type subscribedMsg struct{ sub *storage.Subscription }

type snapshotMsg []models.Habit

type recordMsg models.CompletionRecord

type errMsg struct{ err error }

func NewModel(store storage.Provider, sweeper *habit.Sweeper) *Model {
	return &Model{
		store:   store,
		sweeper: sweeper,
		watcher: storage.NewHabitWatcher(store),
		day:     utils.Today(),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.subscribe, m.loadRecord)
}

func (m *Model) subscribe() tea.Msg {
	sub, err := m.watcher.Subscribe()
	if err != nil {
		return errMsg{err}
	}
	return subscribedMsg{sub}
}

func waitForSnapshot(sub *storage.Subscription) tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-sub.C
		if !ok {
			return nil
		}
		return snapshotMsg(snapshot)
	}
}

func (m *Model) loadRecord() tea.Msg {
	rec, err := m.store.GetDayRecord(m.day)
	if err != nil {
		return errMsg{err}
	}
	return recordMsg(rec)
}

// rebuild recomputes the display items from the current habit snapshot and
// completion record. Re-running on a redundant snapshot is harmless; the
// expansion is pure.
func (m *Model) rebuild(rec models.CompletionRecord) {
	date, err := utils.ParseDate(m.day)
	if err != nil {
		m.err = err
		return
	}
	m.items = habit.Present(habit.DaySchedule(m.habits, date), rec)
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selected() (models.DisplayItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return models.DisplayItem{}, false
	}
	return m.items[m.cursor], true
}

// mutateHabit looks the habit up while still on the update loop and hands a
// copy to the command closure. The closure writes through the store and
// republishes; the model's own habit list only changes when the snapshot
// comes back through Update.
func (m *Model) mutateHabit(habitID string, fn func(*models.Habit) error) tea.Cmd {
	for _, h := range m.habits {
		if h.ID != habitID {
			continue
		}
		watcher := m.watcher
		return func() tea.Msg {
			if err := fn(&h); err != nil {
				return errMsg{err}
			}
			watcher.Notify()
			return nil
		}
	}
	return nil
}

// sweep hands the sweeper a copy of the habit slice so its writes land on
// the copy's backing array, not the model's.
func (m *Model) sweep() tea.Cmd {
	habits := make([]models.Habit, len(m.habits))
	copy(habits, m.habits)
	return func() tea.Msg {
		if err := m.sweeper.Run(m.store, habits, time.Now()); err != nil {
			return errMsg{err}
		}
		return nil
	}
}
