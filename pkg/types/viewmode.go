package types

import "fmt"

// ViewMode selects which projection of the listing is on screen.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewGrid
)

func (v ViewMode) String() string {
	switch v {
	case ViewList:
		return "list"
	case ViewGrid:
		return "grid"
	default:
		return fmt.Sprintf("ViewMode(%d)", int(v))
	}
}

// Toggle returns the other view.
func (v ViewMode) Toggle() ViewMode {
	if v == ViewGrid {
		return ViewList
	}
	return ViewGrid
}

// ParseViewMode parses "list" or "grid".
func ParseViewMode(s string) (ViewMode, error) {
	switch s {
	case "list", "":
		return ViewList, nil
	case "grid":
		return ViewGrid, nil
	default:
		return ViewList, fmt.Errorf("unknown view mode %q", s)
	}
}
