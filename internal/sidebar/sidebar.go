// Package sidebar builds the list of shortcut locations shown beside the
// file views: home, the standard folders, mounted volumes and the trash.
package sidebar

import (
	"path/filepath"

	"casper/internal/format"
	"casper/internal/location"
	"casper/internal/log"
)

// Icon names used by sidebar items.
const (
	IconHome   = "user-home-symbolic"
	IconFolder = "folder-symbolic"
	IconDrive  = "drive-harddisk-symbolic"
	IconTrash  = "user-trash-symbolic"
)

var standardIcons = map[string]string{
	"Desktop":   "user-desktop-symbolic",
	"Documents": "folder-documents-symbolic",
	"Downloads": "folder-download-symbolic",
	"Music":     "folder-music-symbolic",
	"Pictures":  "folder-pictures-symbolic",
	"Public":    "folder-publicshare-symbolic",
	"Templates": "folder-templates-symbolic",
	"Videos":    "folder-videos-symbolic",
}

// DefaultStandardDirs are the home sub-folders offered when present.
var DefaultStandardDirs = []string{"Downloads", "Music", "Pictures", "Videos", "Documents"}

// Item is one sidebar row. Separators carry no target.
type Item struct {
	Label       string
	IconHint    string
	Target      location.Location
	IsSeparator bool
	Detail      string // e.g. free space of a volume
}

// DirChecker reports whether a path is an existing directory.
type DirChecker interface {
	ExistsAndIsDirectory(path string) bool
}

// Navigator receives sidebar activations.
type Navigator interface {
	NavigateTo(loc location.Location) error
}

// Options controls which sections are built.
type Options struct {
	StandardDirs []string
	ShowMounts   bool
	// UserDirs maps a standard folder name to its configured, possibly
	// localized, path. Names without an entry fall back to home/name.
	UserDirs map[string]string
}

// Model is the sidebar built at startup. It is not refreshed afterwards.
type Model struct {
	items []Item
}

// Build assembles the sidebar for home.
func Build(home string, dirs DirChecker, mounts MountSource, opts Options) *Model {
	m := &Model{}
	m.add(Item{Label: "Home", IconHint: IconHome, Target: location.FromPath(home)})
	m.separator()

	for _, name := range opts.StandardDirs {
		label, path := name, filepath.Join(home, name)
		if dir := opts.UserDirs[name]; dir != "" {
			if filepath.Clean(dir) == filepath.Clean(home) {
				continue
			}
			label, path = filepath.Base(dir), dir
		}
		if !dirs.ExistsAndIsDirectory(path) {
			continue
		}
		icon, ok := standardIcons[name]
		if !ok {
			icon = IconFolder
		}
		m.add(Item{Label: label, IconHint: icon, Target: location.FromPath(path)})
	}

	if opts.ShowMounts && mounts != nil {
		vols, err := mounts.Mounts()
		if err != nil {
			log.LogWithError(err).Warn("cannot list mounted volumes")
		}
		if len(vols) > 0 {
			m.separator()
			for _, v := range vols {
				item := Item{Label: v.Name, IconHint: IconDrive, Target: location.FromPath(v.Path)}
				if v.Free > 0 {
					item.Detail = format.Size(int64(v.Free)) + " free"
				}
				m.add(item)
			}
		}
	}

	m.separator()
	m.add(Item{Label: "Trash", IconHint: IconTrash, Target: location.Trash})
	return m
}

func (m *Model) add(item Item) {
	m.items = append(m.items, item)
}

func (m *Model) separator() {
	m.items = append(m.items, Item{IsSeparator: true})
}

// Items returns the rows in display order.
func (m *Model) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the number of rows, separators included.
func (m *Model) Len() int {
	return len(m.items)
}

// At returns row i.
func (m *Model) At(i int) Item {
	return m.items[i]
}

// Activate navigates to row i. Separators and out-of-range rows are inert.
func (m *Model) Activate(i int, nav Navigator) error {
	if i < 0 || i >= len(m.items) || m.items[i].IsSeparator {
		return nil
	}
	return nav.NavigateTo(m.items[i].Target)
}
