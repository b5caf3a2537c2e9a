package common

import (
	"casper/internal/listing"
	"casper/internal/sidebar"
	"casper/internal/tui/styles"
	"casper/pkg/types"
)

// Mode is what the keyboard currently drives.
type Mode int

const (
	Normal          Mode = iota
	PathBar              // typing a location
	Confirm              // yes/no question
	ChooseDirectory      // typing a destination folder
	ChooseApp            // picking an application
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case PathBar:
		return "path"
	case Confirm:
		return "confirm"
	case ChooseDirectory:
		return "choose-directory"
	case ChooseApp:
		return "choose-app"
	default:
		return "unknown"
	}
}

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Location() string
	Entries() []listing.Entry
	Cursor() int
	Body() string
	ViewMode() types.ViewMode
	SidebarItems() []sidebar.Item
	SidebarCursor() int
	SidebarFocused() bool
	Mode() Mode
	Prompt() string
	InputView() string
	Choices() []string
	ChoiceCursor() int
	Status() (text string, isError bool)
	ShowHelp() bool
	HelpView() string
	Size() (width, height int)
	Theme() styles.Theme
}
