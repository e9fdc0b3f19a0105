package theme

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/planner/pkg/task"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header   lipgloss.Style
	Stats    lipgloss.Style
	Banner   lipgloss.Style
	Cursor   lipgloss.Style
	Done     lipgloss.Style
	Due      lipgloss.Style
	Overdue  lipgloss.Style
	Alert    lipgloss.Style
	Footer   FooterTheme
	priority map[task.Priority]lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

var priorityHex = map[task.Priority]string{
	task.Urgent: "#ef4444",
	task.High:   "#f59e0b",
	task.Medium: "#3b82f6",
	task.Low:    "#22c55e",
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	prio := make(map[task.Priority]lipgloss.Style, len(priorityHex))
	for p, hex := range priorityHex {
		prio[p] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(p == task.Urgent)
	}
	urgent, _ := colorful.Hex(priorityHex[task.Urgent])
	paper, _ := colorful.Hex("#ffffff")

	return Theme{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Stats:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Banner:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color(urgent.BlendLab(paper, 0.1).Hex())).Padding(0, 1),
		Cursor:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Done:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true),
		Due:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Overdue: lipgloss.NewStyle().Foreground(lipgloss.Color(priorityHex[task.Urgent])),
		Alert: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(priorityHex[task.Urgent])).
			Padding(1, 2),
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(priorityHex[task.Urgent])),
		},
		priority: prio,
	}
}

// Priority returns the style for p; unknown priorities render faint.
func (t Theme) Priority(p task.Priority) lipgloss.Style {
	if s, ok := t.priority[p]; ok {
		return s
	}
	return lipgloss.NewStyle().Faint(true)
}

// Muted blends a priority color toward grey for completed rows.
func (t Theme) Muted(p task.Priority) lipgloss.Style {
	hex, ok := priorityHex[p]
	if !ok {
		return lipgloss.NewStyle().Faint(true)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.NewStyle().Faint(true)
	}
	grey, _ := colorful.Hex("#808080")
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.BlendLab(grey, 0.7).Hex()))
}
