package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the terminal front end.
type KeyMap struct {
	// General
	Help key.Binding
	Quit key.Binding

	// Cursor
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding // grid only
	Right  key.Binding // grid only
	Top    key.Binding
	Bottom key.Binding

	// Navigation
	Activate key.Binding // open the entry under the cursor
	Parent   key.Binding
	Back     key.Binding
	Forward  key.Binding
	Refresh  key.Binding
	PathBar  key.Binding
	Sidebar  key.Binding

	// Actions on the entry under the cursor
	Open       key.Binding
	OpenWith   key.Binding
	Cut        key.Binding
	Copy       key.Binding
	Paste      key.Binding
	MoveTo     key.Binding
	Delete     key.Binding
	ToggleView key.Binding

	// Prompts
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns vim-flavoured bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),

		Activate: key.NewBinding(key.WithKeys("enter", "l"), key.WithHelp("enter/l", "open")),
		Parent:   key.NewBinding(key.WithKeys("h", "backspace"), key.WithHelp("h", "up a folder")),
		Back:     key.NewBinding(key.WithKeys("H", "alt+left"), key.WithHelp("H", "back")),
		Forward:  key.NewBinding(key.WithKeys("L", "alt+right"), key.WithHelp("L", "forward")),
		Refresh:  key.NewBinding(key.WithKeys("r", "f5"), key.WithHelp("r", "refresh")),
		PathBar:  key.NewBinding(key.WithKeys(":", "ctrl+l"), key.WithHelp(":", "go to path")),
		Sidebar:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "places")),

		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		OpenWith:   key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "open with")),
		Cut:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cut")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Paste:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
		MoveTo:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move to")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "trash")),
		ToggleView: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "list/grid")),

		Confirm: key.NewBinding(key.WithKeys("enter", "y"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "n"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Parent, k.Back, k.ToggleView, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.Left, k.Right},
		{k.Activate, k.Parent, k.Back, k.Forward, k.Refresh, k.PathBar, k.Sidebar},
		{k.Open, k.OpenWith, k.Cut, k.Copy, k.Paste, k.MoveTo, k.Delete},
		{k.ToggleView, k.Help, k.Quit},
	}
}
