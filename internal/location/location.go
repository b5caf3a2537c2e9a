// Package location defines the handle casper uses for "a place that can be
// listed": an absolute filesystem path, or a virtual root such as trash://.
package location

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"casper/internal/errors"
)

const (
	// SchemeFile is the scheme of ordinary filesystem locations.
	SchemeFile = "file"
	// SchemeTrash is the scheme of the desktop trash.
	SchemeTrash = "trash"
)

// Location is an immutable, comparable handle. The zero value is invalid.
type Location struct {
	scheme string
	path   string
}

// Trash is the root of the desktop trash.
var Trash = Location{scheme: SchemeTrash, path: "/"}

// FromPath returns the location of an absolute (or cwd-relative) path.
func FromPath(p string) Location {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return Location{scheme: SchemeFile, path: filepath.Clean(p)}
}

// FromURI parses file:// and virtual-root URIs.
func FromURI(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, errors.NewFileError("invalid location", raw, errors.InvalidPath, err)
	}
	// "docs:2024" is a file name with a colon, not a URI
	if u.Scheme != "" && !strings.HasPrefix(strings.ToLower(raw), u.Scheme+"://") {
		return Location{}, errors.NewFileError("location is not a hierarchical URI", raw, errors.InvalidPath, nil)
	}

	switch u.Scheme {
	case SchemeFile:
		if u.Path == "" {
			return Location{}, errors.NewFileError("invalid location", raw, errors.InvalidPath, nil)
		}
		return Location{scheme: SchemeFile, path: filepath.Clean(u.Path)}, nil
	case "":
		return Location{}, errors.NewFileError("location has no scheme", raw, errors.InvalidPath, nil)
	default:
		p := path.Clean("/" + strings.TrimPrefix(u.Host+u.Path, "/"))
		return Location{scheme: u.Scheme, path: p}, nil
	}
}

// IsZero reports whether l was never initialized.
func (l Location) IsZero() bool {
	return l.scheme == ""
}

// IsVirtual reports whether l is not backed by a plain filesystem path.
func (l Location) IsVirtual() bool {
	return l.scheme != SchemeFile
}

// Scheme returns "file" or the virtual root's scheme.
func (l Location) Scheme() string {
	return l.scheme
}

// Path returns the filesystem path, or the path inside a virtual root.
func (l Location) Path() string {
	return l.path
}

// Base returns the last path element.
func (l Location) Base() string {
	if l.IsVirtual() {
		return path.Base(l.path)
	}
	return filepath.Base(l.path)
}

// Parent returns the containing location. Filesystem roots and virtual
// roots have none.
func (l Location) Parent() (Location, bool) {
	if l.IsZero() {
		return Location{}, false
	}
	if l.IsVirtual() {
		if l.path == "/" {
			return Location{}, false
		}
		return Location{scheme: l.scheme, path: path.Dir(l.path)}, true
	}
	parent := filepath.Dir(l.path)
	if parent == l.path {
		return Location{}, false
	}
	return Location{scheme: SchemeFile, path: parent}, true
}

// Child returns the location of a direct child called name.
func (l Location) Child(name string) Location {
	if l.IsVirtual() {
		return Location{scheme: l.scheme, path: path.Join(l.path, name)}
	}
	return Location{scheme: SchemeFile, path: filepath.Join(l.path, name)}
}

// Equal reports whether both handles point at the same place.
func (l Location) Equal(other Location) bool {
	return l == other
}

// URI renders l as a URI, e.g. file:///home/u or trash:///.
func (l Location) URI() string {
	u := url.URL{Scheme: l.scheme, Path: l.path}
	return u.String()
}

// String returns the path for filesystem locations and the URI otherwise.
func (l Location) String() string {
	if l.IsZero() {
		return ""
	}
	if l.IsVirtual() {
		return l.URI()
	}
	return l.path
}
