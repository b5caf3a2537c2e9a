// Package messages holds the tea.Msg types exchanged inside the terminal UI.
package messages

import "casper/internal/watch"

// DirectoryChangeMsg carries a coalesced change to the current folder.
type DirectoryChangeMsg struct {
	Change watch.Change
}

// WatchClosedMsg reports that auto-refresh stopped delivering changes.
type WatchClosedMsg struct{}
