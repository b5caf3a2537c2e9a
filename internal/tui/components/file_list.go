package components

import (
	"fmt"
	"strings"

	"casper/internal/listing"
	"casper/internal/tui/styles"
	"casper/pkg/types"
)

const (
	gridCellWidth = 20
	sizeWidth     = 9
	timeWidth     = 16
)

// FileList renders the current listing as rows or as a grid of names.
type FileList struct {
	entries []listing.Entry
	cursor  int
	mode    types.ViewMode
	width   int
	focused bool
	theme   styles.Theme
}

func NewFileList(theme styles.Theme) *FileList {
	return &FileList{theme: theme, width: 80, focused: true}
}

func (fl *FileList) SetEntries(entries []listing.Entry) {
	fl.entries = entries
}

func (fl *FileList) SetCursor(cursor int) {
	fl.cursor = cursor
}

func (fl *FileList) SetViewMode(mode types.ViewMode) {
	fl.mode = mode
}

func (fl *FileList) SetWidth(width int) {
	fl.width = width
}

func (fl *FileList) SetFocused(focused bool) {
	fl.focused = focused
}

// GridColumns returns how many grid cells fit in width.
func GridColumns(width int) int {
	if cols := width / gridCellWidth; cols > 1 {
		return cols
	}
	return 1
}

// CursorLine returns the output line holding the cursor.
func (fl *FileList) CursorLine() int {
	if fl.mode == types.ViewGrid {
		return fl.cursor / GridColumns(fl.width)
	}
	return fl.cursor
}

func (fl *FileList) View() string {
	if len(fl.entries) == 0 {
		return fl.theme.Muted.Render("Folder is empty")
	}
	if fl.mode == types.ViewGrid {
		return fl.gridView()
	}
	return fl.listView()
}

func (fl *FileList) listView() string {
	nameWidth := fl.width - sizeWidth - timeWidth - 4
	if nameWidth < 10 {
		nameWidth = 10
	}

	lines := make([]string, len(fl.entries))
	for i, e := range fl.entries {
		row := fmt.Sprintf("%s  %*s  %-*s",
			pad(displayName(e), nameWidth), sizeWidth, e.SizeDisplay, timeWidth, e.ModifiedDisplay)
		lines[i] = fl.render(i, e, row)
	}
	return strings.Join(lines, "\n")
}

func (fl *FileList) gridView() string {
	cols := GridColumns(fl.width)
	var lines []string
	var line strings.Builder
	for i, e := range fl.entries {
		line.WriteString(fl.render(i, e, pad(displayName(e), gridCellWidth-1)))
		line.WriteString(" ")
		if (i+1)%cols == 0 {
			lines = append(lines, strings.TrimRight(line.String(), " "))
			line.Reset()
		}
	}
	if line.Len() > 0 {
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	return strings.Join(lines, "\n")
}

func (fl *FileList) render(i int, e listing.Entry, text string) string {
	if i == fl.cursor && fl.focused {
		return fl.theme.Cursor.Render(text)
	}
	switch {
	case e.IsDir():
		return fl.theme.Directory.Render(text)
	case e.Hidden:
		return fl.theme.Hidden.Render(text)
	default:
		return fl.theme.File.Render(text)
	}
}

func displayName(e listing.Entry) string {
	if e.IsDir() {
		return e.Name + "/"
	}
	return e.Name
}

// pad truncates or pads s to exactly width runes.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}
