package tui

import (
	"fmt"
	"strings"

	"github.com/sprouthq/sprout/internal/errors"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Today  %s", m.day)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(errors.Format(m.err)))
		b.WriteString("\n\n")
	}

	if len(m.items) == 0 {
		b.WriteString("Nothing due today.\n")
	}

	for i, item := range m.items {
		mark := "[ ]"
		if item.Done {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s  %s", mark, timeStyle.Render(item.ScheduledTime), item.HabitName)
		if item.Done {
			line = fmt.Sprintf("%s %s  %s", mark, item.ScheduledTime, doneStyle.Render(item.HabitName))
		}
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return docStyle.Render(b.String())
}
