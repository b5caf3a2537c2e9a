package components

import (
	"fmt"

	"casper/internal/fsys"
	"casper/internal/listing"
	"casper/internal/tui/styles"

	"github.com/dustin/go-humanize"
)

type StatusBar struct {
	text    string
	isError bool
	summary string
	theme   styles.Theme
}

func NewStatusBar(theme styles.Theme) *StatusBar {
	return &StatusBar{theme: theme}
}

func (s *StatusBar) SetText(text string, isError bool) {
	s.text = text
	s.isError = isError
}

// SetEntries summarizes the listing: item count and the total size of the
// regular files in it.
func (s *StatusBar) SetEntries(entries []listing.Entry) {
	var total uint64
	for _, e := range entries {
		if e.Kind == fsys.RegularFile && e.Size > 0 {
			total += uint64(e.Size)
		}
	}
	s.summary = fmt.Sprintf("%d items, %s", len(entries), humanize.Bytes(total))
}

func (s *StatusBar) View() string {
	out := s.theme.Muted.Render(s.summary)
	if s.text == "" {
		return out
	}
	if s.isError {
		return out + "  " + s.theme.Error.Render(s.text)
	}
	return out + "  " + s.text
}
