package styles

import (
	"casper/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles derived from the configured colours.
type Theme struct {
	Title     lipgloss.Style
	Cursor    lipgloss.Style
	Directory lipgloss.Style
	File      lipgloss.Style
	Hidden    lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Pane      lipgloss.Style
	Focused   lipgloss.Style
	Help      lipgloss.Style
}

// NewTheme builds a Theme from cfg.Theme. Empty colours fall back to the
// named theme.
func NewTheme(cfg *config.Config) Theme {
	colors := config.GetTheme(cfg.Theme.Name)
	pick := func(value, key string) lipgloss.Color {
		if value != "" {
			return lipgloss.Color(value)
		}
		return lipgloss.Color(colors[key])
	}

	primary := pick(cfg.Theme.Primary, "primary")
	accent := pick(cfg.Theme.Accent, "accent")
	muted := pick(cfg.Theme.Muted, "muted")
	errColor := pick(cfg.Theme.Error, "error")
	border := pick(cfg.Theme.Border, "border")

	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Cursor: lipgloss.NewStyle().
			Reverse(true).
			Foreground(primary),
		Directory: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		File: lipgloss.NewStyle(),
		Hidden: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Error: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		Pane: Pane.
			BorderForeground(muted),
		Focused: Pane.
			BorderForeground(border),
		Help: lipgloss.NewStyle().
			Foreground(muted),
	}
}
