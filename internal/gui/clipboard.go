//go:build !nogui

package gui

import (
	"fyne.io/fyne/v2"
)

// WindowClipboard stores clipboard payloads through the window's clipboard
// so that the toolkit owns the selection.
type WindowClipboard struct {
	window fyne.Window
}

// NewClipboardBackend returns a clipboard.Backend over w's clipboard.
func NewClipboardBackend(w fyne.Window) *WindowClipboard {
	return &WindowClipboard{window: w}
}

func (c *WindowClipboard) ReadText() (string, error) {
	return c.window.Clipboard().Content(), nil
}

func (c *WindowClipboard) WriteText(text string) error {
	c.window.Clipboard().SetContent(text)
	return nil
}
