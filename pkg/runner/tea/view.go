package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/planner/pkg/notify"
	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/tree"
)

const helpText = `Navigation
  j/k, up/down   move          g/G      top/bottom
  enter, l/h     fold sub-tasks

Tasks
  a   add (quick syntax: title @2025-03-05 @15:00 !high)
  A   add sub-task      e   edit selected
  x   toggle complete   d   delete (with sub-tasks)
  c   save selected task as a calendar event

View
  s   cycle status      p   cycle priority
  o   cycle sort        !   overdue only

Alerts
  n   enable/disable    L   cycle lead time

q quit, any key closes this help`

// View renders the UI
func (m Model) View() string {
	if m.mode == modeHelp {
		return m.theme.Alert.Render(helpText)
	}
	if m.mode == modeAlert && m.alert != nil {
		return m.alertView(*m.alert)
	}

	var b strings.Builder
	b.WriteString(m.theme.Header.Render("Tasks"))
	b.WriteString("  ")
	b.WriteString(m.theme.Stats.Render(m.statsLine()))
	b.WriteString("\n")
	b.WriteString(m.theme.Stats.Render(m.filterLine()))
	b.WriteString("\n")

	if m.cfg.Service != nil && !m.opts.OverdueOnly {
		if n := len(m.cfg.Service.Overdue()); n > 0 {
			b.WriteString(m.theme.Banner.Render(fmt.Sprintf("You have %d overdue task(s).", n)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(m.theme.Stats.Render("No tasks to show."))
		b.WriteString("\n")
	}
	start, rows := m.visibleRows()
	for i, r := range rows {
		b.WriteString(m.renderRow(r, start+i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

// chromeLines is the header and footer height around the task list.
const chromeLines = 7

// visibleRows returns the slice of rows that fits the terminal, keeping the
// cursor in view, along with the index of its first row.
func (m Model) visibleRows() (int, []tree.Row) {
	height := m.termHeight - chromeLines
	if m.termHeight == 0 || height >= len(m.rows) {
		return 0, m.rows
	}
	if height < 1 {
		height = 1
	}
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	return start, m.rows[start : start+height]
}

func (m Model) statsLine() string {
	if m.cfg.Service == nil {
		return ""
	}
	st := m.cfg.Service.Stats()
	line := fmt.Sprintf("%d total, %d active, %d done (%d%%)", st.Total, st.Active, st.Completed, st.Percent)
	if st.Overdue > 0 {
		line += fmt.Sprintf(", %d overdue", st.Overdue)
	}
	return line
}

func (m Model) filterLine() string {
	parts := []string{
		"status: " + string(m.opts.Status),
		"priority: " + string(m.opts.Priority),
		"sort: " + m.sortBy.Label(),
	}
	if m.opts.OverdueOnly {
		parts = append(parts, "overdue only")
	}
	if s := m.cfg.Scheduler; s != nil {
		alerts := "off"
		if s.Enabled() {
			alerts = "on, " + notify.LeadLabel(s.LeadTime())
		}
		parts = append(parts, "alerts: "+alerts)
	}
	return strings.Join(parts, "  |  ")
}

func (m Model) renderRow(r tree.Row, selected bool) string {
	t := r.Task
	now := m.cfg.Now()

	cursor := "  "
	if selected {
		cursor = m.theme.Cursor.Render("> ")
	}
	fold := "  "
	if r.HasKids {
		fold = "▸ "
		if r.Expanded {
			fold = "▾ "
		}
	}
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	indent := strings.Repeat("  ", r.Depth)

	titleWidth := 60
	if m.termWidth > 0 {
		titleWidth = m.termWidth - len(indent) - 40
		if titleWidth < 10 {
			titleWidth = 10
		}
	}
	title := truncate.StringWithTail(t.Title, uint(titleWidth), "…")
	switch {
	case t.Completed:
		title = m.theme.Done.Render(title)
	case selected:
		title = m.theme.Cursor.Render(title)
	}

	prio := m.theme.Priority(t.Priority)
	if t.Completed {
		prio = m.theme.Muted(t.Priority)
	}
	line := cursor + indent + fold + box + " " + title + " " + prio.Render(t.Priority.Label())

	if t.DueDate.Set() {
		due := t.DueDate.Instant().Local().Format("2006-01-02 15:04")
		if t.Overdue(now) {
			line += " " + m.theme.Overdue.Render(due+" (overdue)")
		} else {
			line += " " + m.theme.Due.Render(due)
		}
	}
	return line
}

func (m Model) footer() string {
	switch m.mode {
	case modeInput:
		label := "Add"
		switch m.action {
		case actionAddSub:
			label = "Add sub-task"
		case actionEdit:
			label = "Edit"
		}
		return m.theme.Footer.Help.Render(label+": ") + m.input.View()
	case modeConfirmDelete:
		return m.theme.Footer.Error.Render(m.status)
	}
	if m.err != nil {
		return m.theme.Footer.Error.Render("Error: " + m.err.Error())
	}
	return m.theme.Footer.Status.Render(m.status)
}

func (m Model) alertView(t task.Task) string {
	lines := []string{
		m.theme.Overdue.Bold(true).Render("Task Due: " + t.Title),
	}
	if t.Description != "" {
		lines = append(lines, t.Description)
	}
	if t.DueDate.Set() {
		lines = append(lines, m.theme.Due.Render("Due "+t.DueDate.Instant().Local().Format("Mon Jan 2 15:04")))
	}
	lines = append(lines, "", m.theme.Footer.Help.Render("press enter to acknowledge"))
	box := m.theme.Alert.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	if m.termWidth > 0 && m.termHeight > 0 {
		return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
