package fsys

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rkoesters/xdg/desktop"

	"casper/internal/errors"
	"casper/internal/location"
	"casper/internal/log"
)

// AppsForType scans the desktop entries in the XDG data directories for
// applications declaring contentType. Entries in $XDG_DATA_HOME shadow the
// system ones with the same ID.
func (l *Local) AppsForType(contentType string) ([]App, error) {
	want := baseType(contentType)
	if want == "" {
		return nil, nil
	}

	seen := make(map[string]bool)
	var apps []App
	for _, dir := range l.applicationDirs() {
		matches, err := filepath.Glob(filepath.Join(dir, "*.desktop"))
		if err != nil {
			continue
		}
		for _, path := range matches {
			id := filepath.Base(path)
			if seen[id] {
				continue
			}
			seen[id] = true

			entry, err := readDesktopEntry(path)
			if err != nil {
				log.LogWithFields(log.F("path", path)).Debugf("skipping desktop entry: %v", err)
				continue
			}
			if !launchable(entry, want) {
				continue
			}
			name := entry.Name
			if name == "" {
				name = strings.TrimSuffix(id, ".desktop")
			}
			apps = append(apps, App{ID: id, Name: name, Exec: entry.Exec})
		}
	}

	sort.SliceStable(apps, func(i, j int) bool {
		return strings.ToLower(apps[i].Name) < strings.ToLower(apps[j].Name)
	})
	return apps, nil
}

func (l *Local) applicationDirs() []string {
	dirs := []string{filepath.Join(l.dataHome, "applications")}
	for _, d := range l.dataDirs {
		dirs = append(dirs, filepath.Join(d, "applications"))
	}
	return dirs
}

// Launch starts app with loc as its argument.
func (l *Local) Launch(app App, loc location.Location) error {
	p, err := l.resolve(loc)
	if err != nil {
		return err
	}
	args := ExpandExec(app.Exec, p)
	if len(args) == 0 {
		return errors.NewFileError("application has no command", app.ID, errors.NoApplication, nil)
	}
	return start(exec.Command(args[0], args[1:]...), p)
}

// readDesktopEntry parses the .desktop file at path.
func readDesktopEntry(path string) (*desktop.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return desktop.New(f)
}

// launchable reports whether e is a visible application declaring
// contentType.
func launchable(e *desktop.Entry, contentType string) bool {
	if e.Type != desktop.Application || e.Hidden || e.NoDisplay || e.Exec == "" {
		return false
	}
	for _, mt := range e.MimeType {
		if mt == contentType {
			return true
		}
	}
	return false
}

// ExpandExec splits a desktop entry Exec line and substitutes its field
// codes for path. When the line has no file code the path is appended.
func ExpandExec(execLine, path string) []string {
	uri := location.FromPath(path).URI()
	var args []string
	used := false

	for _, tok := range splitExec(execLine) {
		switch tok {
		case "%f", "%F":
			args = append(args, path)
			used = true
			continue
		case "%u", "%U":
			args = append(args, uri)
			used = true
			continue
		case "%i", "%c", "%k":
			continue
		}
		var b strings.Builder
		for i := 0; i < len(tok); i++ {
			if tok[i] != '%' || i+1 == len(tok) {
				b.WriteByte(tok[i])
				continue
			}
			i++
			switch tok[i] {
			case '%':
				b.WriteByte('%')
			case 'f', 'F':
				b.WriteString(path)
				used = true
			case 'u', 'U':
				b.WriteString(uri)
				used = true
			}
		}
		if b.Len() > 0 {
			args = append(args, b.String())
		}
	}
	if len(args) > 0 && !used {
		args = append(args, path)
	}
	return args
}

// splitExec tokenizes on whitespace, honoring double quotes and backslash
// escapes inside them.
func splitExec(s string) []string {
	var (
		tokens  []string
		cur     strings.Builder
		quoted  bool
		pending bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quoted && c == '\\' && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case c == '"':
			quoted = !quoted
			pending = true
		case !quoted && (c == ' ' || c == '\t'):
			if pending {
				tokens = append(tokens, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteByte(c)
			pending = true
		}
	}
	if pending {
		tokens = append(tokens, cur.String())
	}
	return tokens
}
