// Package styles holds the lipgloss styles of the terminal UI.
package styles

import "github.com/charmbracelet/lipgloss"

// Layout styles that do not depend on the theme
var (
	App = lipgloss.NewStyle().
		Padding(0, 1)

	Header = lipgloss.NewStyle().
		Bold(true).
		MarginBottom(1)

	Pane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
)
