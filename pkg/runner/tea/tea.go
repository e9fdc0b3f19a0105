package teaui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run launches the Bubble Tea UI and blocks until the user quits.
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
