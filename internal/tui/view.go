package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tudo/internal/output"
	"tudo/internal/provider"
	"tudo/internal/timestamp"
)

// Column widths of the task table.
const (
	dueWidth   = 16
	titleWidth = 32
	notesWidth = 48
)

// View implements tea.Model.
func (m *Model) View() string {
	lists := m.state.Provider().Tasklists()
	if len(lists) == 0 {
		return m.styles.App.Render(m.styles.NoLists.Render("No tasklists") + "\n\n" + m.help.View(m.keys))
	}

	var b strings.Builder
	b.WriteString(m.renderTabs(lists))
	b.WriteString("\n")

	list, _ := m.state.ActiveTasklist()
	if list.IsEmpty() {
		b.WriteString(m.styles.Empty.Render("No todos in this list!"))
	} else {
		b.WriteString(m.renderTasks(list))
	}
	b.WriteString("\n\n")

	if line := m.statusLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	return m.styles.App.Render(b.String())
}

func (m *Model) renderTabs(lists []provider.Tasklist) string {
	tabs := make([]string, 0, len(lists))
	for i, l := range lists {
		style := m.styles.Tab
		if i == m.state.ActiveIndex() {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(output.NormalizeTitle(l.Title)))
	}
	return m.styles.TabBar.Render(strings.Join(tabs, "│"))
}

func (m *Model) renderTasks(list provider.Tasklist) string {
	rows := make([]string, 0, list.Len()+1)
	rows = append(rows, m.styles.Header.Render(
		"  "+cell("", 1)+" "+cell("Due", dueWidth)+" "+cell("Title", titleWidth)+" "+cell("Notes", notesWidth),
	))

	selected, hasSelection := m.state.Selection()
	for i, task := range list.Tasks {
		cursor, style := "  ", m.styles.Row
		if hasSelection && i == selected {
			cursor, style = "> ", m.styles.RowSelected
		}

		due, urgency := m.dueText(task)
		notes := ""
		if task.Notes != nil {
			notes = strings.ReplaceAll(*task.Notes, "\n", " ")
		}

		row := cursor +
			cell(statusGlyph(task.Status), 1) + " " +
			dueStyle(urgency).Render(cell(due, dueWidth)) + " " +
			cell(output.NormalizeTitle(task.Title), titleWidth) + " " +
			cell(notes, notesWidth)
		rows = append(rows, style.Render(row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// dueText shows open tasks relative to now and everything else as a date.
func (m *Model) dueText(task provider.Task) (string, timestamp.Urgency) {
	if task.Due == nil {
		return "", timestamp.UrgencyNone
	}
	if task.Status == provider.StatusTodo {
		return timestamp.Relative(*task.Due, m.now())
	}
	return timestamp.Absolute(*task.Due)
}

func (m *Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render("error: " + m.err.Error())
	}
	if m.status != "" {
		return m.styles.Status.Render(m.status)
	}
	return ""
}

func statusGlyph(s provider.Status) string {
	switch s {
	case provider.StatusTodo:
		return "☐"
	case provider.StatusDone:
		return "☑"
	default:
		return "?"
	}
}

// cell truncates or pads s to exactly width terminal columns.
func cell(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}
