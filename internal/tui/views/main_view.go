package views

import (
	"strings"

	"casper/internal/tui/common"
	"casper/internal/tui/components"
	"casper/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// RenderMainView lays out the location header, the sidebar beside the
// folder contents, then any open prompt, the status bar and the key help.
func RenderMainView(m common.ModelReader) string {
	theme := m.Theme()
	var sb strings.Builder

	sb.WriteString(styles.Header.Render(theme.Title.Render(m.Location())))
	sb.WriteString("\n")

	sidePane, bodyPane := theme.Pane, theme.Focused
	if m.SidebarFocused() {
		sidePane, bodyPane = theme.Focused, theme.Pane
	}
	side := sidePane.Render(components.RenderSidebar(m.SidebarItems(), m.SidebarCursor(), m.SidebarFocused(), theme))
	body := bodyPane.Render(m.Body())
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, side, body))
	sb.WriteString("\n")

	if prompt := RenderPrompt(m); prompt != "" {
		sb.WriteString(prompt + "\n")
	}

	text, isError := m.Status()
	bar := components.NewStatusBar(theme)
	bar.SetEntries(m.Entries())
	bar.SetText(text, isError)
	sb.WriteString(bar.View() + "\n")
	sb.WriteString(m.HelpView())

	return styles.App.Render(sb.String())
}

// RenderPrompt draws the active prompt, if any.
func RenderPrompt(m common.ModelReader) string {
	theme := m.Theme()
	switch m.Mode() {
	case common.PathBar, common.ChooseDirectory:
		return theme.Title.Render(m.Prompt()) + " " + m.InputView()
	case common.Confirm:
		return theme.Title.Render(m.Prompt()) + theme.Help.Render(" [y/n]")
	case common.ChooseApp:
		lines := []string{theme.Title.Render(m.Prompt())}
		for i, choice := range m.Choices() {
			if i == m.ChoiceCursor() {
				lines = append(lines, theme.Cursor.Render("> "+choice))
			} else {
				lines = append(lines, "  "+choice)
			}
		}
		lines = append(lines, theme.Help.Render("enter: open  esc: cancel"))
		return strings.Join(lines, "\n")
	default:
		return ""
	}
}
