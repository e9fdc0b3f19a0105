package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/task"
)

// Task prints the fields of t as a two column table.
func (pp *PrettyPrint) Task(t task.Task) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 72
	tbl.AddRow(bold.Sprint("ID"), t.ID)
	tbl.AddRow(bold.Sprint("Title"), t.Title)
	tbl.AddRow(bold.Sprint("Priority"), PriorityColor(t.Priority).Sprint(t.Priority.Label()))
	status := "active"
	if t.Completed {
		status = "completed " + t.CompletionDate.Instant().Local().Format(dateLayout)
	}
	tbl.AddRow(bold.Sprint("Status"), status)
	if t.DueDate.Set() {
		due := t.DueDate.Local().Format(dateLayout)
		if t.Overdue(pp.now()) {
			due = color.New(color.FgRed).Sprint(due + " (overdue)")
		}
		tbl.AddRow(bold.Sprint("Due"), due)
	}
	tbl.AddRow(bold.Sprint("Created"), t.CreatedAt.Local().Format(dateLayout))
	if t.HasParent() {
		tbl.AddRow(bold.Sprint("Parent"), t.ParentID)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Stats prints the productivity summary.
func (pp *PrettyPrint) Stats(st app.Stats) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Total"), st.Total)
	completed := "0 (no tasks yet)"
	if st.Total > 0 {
		completed = fmt.Sprintf("%d (%d%% completed)", st.Completed, st.Percent)
	}
	tbl.AddRow(bold.Sprint("Completed"), completed)
	tbl.AddRow(bold.Sprint("Active"), st.Active)
	if st.Overdue > 0 {
		tbl.AddRow(bold.Sprint("Overdue"), color.New(color.FgRed).Sprint(st.Overdue))
	}
	for _, pc := range st.ByPriority {
		bar := strings.Repeat("■", pc.Count)
		tbl.AddRow(PriorityColor(pc.Priority).Sprint(pc.Priority.Label()), fmt.Sprintf("%-3d %s", pc.Count, PriorityColor(pc.Priority).Sprint(bar)))
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Report prints a completion report. label names the window.
func (pp *PrettyPrint) Report(result app.ReportResult, label string) {
	w := pp.out()
	since := result.Since.Local().Format("2006-01-02 15:04")
	until := result.Until.Local().Format("2006-01-02 15:04")
	pp.Title(fmt.Sprintf("Report · last %s (%s → %s)", label, since, until))

	if result.Total == 0 {
		pp.Notice("  No completed tasks found in this window.")
		pp.NewLine()
		return
	}

	included := make(map[string]task.Task, len(result.Items))
	for _, item := range result.Items {
		included[item.Task.ID] = item.Task
	}
	for _, item := range result.Items {
		indent := strings.Repeat("  ", depthFor(item.Task, included))
		line := fmt.Sprintf("  %s%s", indent, item.Task.Title)
		if item.Completed {
			line = fmt.Sprintf("  %s[x] %s  (completed %s)", indent, item.Task.Title, item.CompletedAt.Local().Format("2006-01-02 15:04"))
		} else {
			line = color.New(color.Faint).Sprint(line)
		}
		_, _ = fmt.Fprintln(w, line)
	}
	pp.NewLine()
}

func depthFor(t task.Task, included map[string]task.Task) int {
	depth := 0
	visited := make(map[string]bool)
	parentID := t.ParentID
	for parentID != "" {
		if visited[parentID] {
			break
		}
		visited[parentID] = true
		parent, ok := included[parentID]
		if !ok {
			break
		}
		depth++
		parentID = parent.ParentID
	}
	return depth
}
