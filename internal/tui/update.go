package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sprouthq/sprout/internal/habit"
	"github.com/sprouthq/sprout/internal/models"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case subscribedMsg:
		m.sub = msg.sub
		return m, waitForSnapshot(msg.sub)

	case snapshotMsg:
		m.habits = msg
		return m, tea.Batch(m.loadRecord, m.sweep(), waitForSnapshot(m.sub))

	case recordMsg:
		m.rebuild(map[string]bool(msg))
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if m.sub != nil {
			m.sub.Unsubscribe()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if item, ok := m.selected(); ok {
			return m, func() tea.Msg {
				_, err := habit.ToggleOccurrence(m.store, m.day, item.HabitID, item.Index, item.Done)
				if err != nil {
					return errMsg{err}
				}
				return m.loadRecord()
			}
		}

	case key.Matches(msg, m.keys.Done):
		if item, ok := m.selected(); ok {
			return m, m.mutateHabit(item.HabitID, func(h *models.Habit) error {
				return habit.ToggleCompletedDate(m.store, h, m.day)
			})
		}

	case key.Matches(msg, m.keys.Skip):
		if item, ok := m.selected(); ok {
			return m, m.mutateHabit(item.HabitID, func(h *models.Habit) error {
				return habit.SkipDate(m.store, h, m.day)
			})
		}
	}

	return m, nil
}
