package printers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"tableflip.dev/planner/pkg/task"
)

// Markdown describes t and its direct sub-tasks as a markdown document.
func Markdown(t task.Task, subtasks []task.Task) string {
	var b strings.Builder
	box := " "
	if t.Completed {
		box = "x"
	}
	fmt.Fprintf(&b, "# [%s] %s\n\n", box, t.Title)
	fmt.Fprintf(&b, "**Priority:** %s", t.Priority.Label())
	if t.DueDate.Set() {
		fmt.Fprintf(&b, "  \n**Due:** %s", t.DueDate.Local().Format(dateLayout))
	}
	if t.Completed && t.CompletionDate.Set() {
		fmt.Fprintf(&b, "  \n**Completed:** %s", t.CompletionDate.Local().Format(dateLayout))
	}
	b.WriteString("\n\n")
	if d := strings.TrimSpace(t.Description); d != "" {
		b.WriteString(d)
		b.WriteString("\n\n")
	}
	if len(subtasks) > 0 {
		b.WriteString("## Sub-tasks\n\n")
		for _, s := range subtasks {
			mark := " "
			if s.Completed {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s\n", mark, s.Title)
		}
	}
	return b.String()
}

// RenderMarkdown renders md for the terminal, wrapped at width.
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
