package components

import (
	"strings"

	"casper/internal/sidebar"
	"casper/internal/tui/styles"
)

const sidebarWidth = 18

// SidebarWidth is the rendered width of the sidebar, border excluded.
func SidebarWidth() int {
	return sidebarWidth
}

// RenderSidebar draws the sidebar rows; the cursor is shown only when the
// sidebar has focus.
func RenderSidebar(items []sidebar.Item, cursor int, focused bool, theme styles.Theme) string {
	lines := make([]string, len(items))
	for i, item := range items {
		if item.IsSeparator {
			lines[i] = theme.Muted.Render(strings.Repeat("─", sidebarWidth))
			continue
		}
		text := pad(item.Label, sidebarWidth)
		if focused && i == cursor {
			lines[i] = theme.Cursor.Render(text)
		} else {
			lines[i] = text
		}
	}
	return strings.Join(lines, "\n")
}
