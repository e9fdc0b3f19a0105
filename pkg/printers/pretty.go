package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"

	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/tree"
)

const (
	dateLayout  = "Jan 2, 2006 15:04"
	titleWidth  = 60
	idPadding   = 2
	indentWidth = 4
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
	Now    time.Time
}

func init() {
	if termenv.EnvColorProfile() == termenv.Ascii {
		color.NoColor = true
	}
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now.IsZero() {
		return time.Now()
	}
	return pp.Now
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " task")
	default:
		_, _ = c.Fprintln(pp.out(), " tasks")
	}
}

// Notice prints a faint one-line message.
func (pp *PrettyPrint) Notice(format string, args ...interface{}) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(pp.out(), format+"\n", args...)
}

// Warning prints a highlighted one-line message.
func (pp *PrettyPrint) Warning(format string, args ...interface{}) {
	w := color.New(color.FgRed, color.Bold)
	_, _ = w.Fprintf(pp.out(), format+"\n", args...)
}

// PriorityColor is the terminal color used for p.
func PriorityColor(p task.Priority) *color.Color {
	switch p {
	case task.Urgent:
		return color.New(color.FgRed, color.Bold)
	case task.High:
		return color.New(color.FgYellow)
	case task.Medium:
		return color.New(color.FgBlue)
	case task.Low:
		return color.New(color.FgGreen)
	default:
		return color.New(color.Faint)
	}
}

// Tree prints a display tree, one task per line, sub-tasks indented.
func (pp *PrettyPrint) Tree(nodes []*tree.Node) {
	if len(nodes) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	width := 0
	if pp.ShowID {
		for _, r := range tree.Flatten(nodes, nil) {
			if len(r.Task.ID) > width {
				width = len(r.Task.ID)
			}
		}
	}
	for _, r := range tree.Flatten(nodes, nil) {
		pp.Row(r, width)
	}
	pp.NewLine()
}

// Row prints a single flattened row. idWidth pads the id column when ids
// are shown.
func (pp *PrettyPrint) Row(r tree.Row, idWidth int) {
	w := pp.out()
	t := r.Task
	if pp.ShowID {
		y := color.New(color.FgHiYellow, color.Italic, color.Faint)
		_, _ = y.Fprint(w, t.ID+strings.Repeat(" ", idWidth-len(t.ID)+idPadding))
	}
	_, _ = fmt.Fprint(w, strings.Repeat(" ", r.Depth*indentWidth))

	box := "[ ]"
	title := truncate.StringWithTail(t.Title, titleWidth, "…")
	if t.Completed {
		box = "[x]"
		title = color.New(color.Faint, color.CrossedOut).Sprint(title)
	}
	_, _ = fmt.Fprintf(w, "%s %s %s", box, PriorityColor(t.Priority).Sprintf("%-6s", t.Priority), title)

	if t.DueDate.Set() {
		due := "due " + t.DueDate.Local().Format(dateLayout)
		if t.Overdue(pp.now()) {
			_, _ = color.New(color.FgRed).Fprintf(w, "  %s (overdue)", due)
		} else {
			_, _ = color.New(color.Faint).Fprintf(w, "  %s", due)
		}
	}
	_, _ = fmt.Fprintln(w, "")
}
