// Package fsys is casper's filesystem access layer: enumerating directories,
// querying metadata, moving, copying, trashing and launching files.
package fsys

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"casper/internal/errors"
	"casper/internal/location"
	"casper/internal/log"
)

// Kind classifies a directory child.
type Kind int

const (
	Directory Kind = iota
	RegularFile
	Other
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case RegularFile:
		return "file"
	default:
		return "other"
	}
}

// KindOf maps a file mode onto a Kind.
func KindOf(mode fs.FileMode) Kind {
	switch {
	case mode.IsDir():
		return Directory
	case mode.IsRegular():
		return RegularFile
	default:
		return Other
	}
}

// Child is one raw directory entry.
type Child struct {
	Name    string
	Kind    Kind
	Size    int64
	ModTime time.Time
}

// App is an application able to open a content type.
type App struct {
	ID   string // desktop file name, e.g. "org.gnome.eog.desktop"
	Name string
	Exec string
}

// FS is everything the core needs from the filesystem.
type FS interface {
	EnumerateChildren(loc location.Location) ([]Child, error)
	QueryKind(loc location.Location) (Kind, error)
	QueryContentType(loc location.Location) (string, error)
	Move(src, dst location.Location) error
	Copy(src, dst location.Location) error
	Trash(loc location.Location) error
	LaunchDefault(loc location.Location) error
	AppsForType(contentType string) ([]App, error)
	Launch(app App, loc location.Location) error
	ParentOf(loc location.Location) (location.Location, bool)
	ExistsAndIsDirectory(path string) bool
}

// Local implements FS on the local disk.
type Local struct {
	opener   string
	dataHome string
	dataDirs []string
}

var _ FS = (*Local)(nil)

// Option configures a Local.
type Option func(*Local)

// WithOpener sets the command used to open files with their default
// application.
func WithOpener(cmd string) Option {
	return func(l *Local) {
		if cmd != "" {
			l.opener = cmd
		}
	}
}

// WithDataHome overrides $XDG_DATA_HOME, which holds the trash and the
// user's desktop entries.
func WithDataHome(dir string) Option {
	return func(l *Local) {
		l.dataHome = dir
	}
}

// WithDataDirs overrides $XDG_DATA_DIRS.
func WithDataDirs(dirs ...string) Option {
	return func(l *Local) {
		l.dataDirs = dirs
	}
}

// NewLocal creates a Local using the XDG base directories of the current user.
func NewLocal(opts ...Option) *Local {
	l := &Local{
		opener:   "xdg-open",
		dataHome: xdg.DataHome,
		dataDirs: xdg.DataDirs,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// EnumerateChildren lists the direct children of loc. Symlinks are followed;
// dangling ones are reported as Other.
func (l *Local) EnumerateChildren(loc location.Location) ([]Child, error) {
	dir, err := l.resolve(loc)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// The trash folders only appear once something has been trashed
		if loc.Equal(location.Trash) && errors.Is(err, fs.ErrNotExist) {
			return []Child{}, nil
		}
		return nil, fileError("cannot list directory", dir, err)
	}

	children := make([]Child, 0, len(entries))
	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		info, err := os.Stat(full)
		if err != nil {
			info, err = os.Lstat(full)
			if err != nil {
				log.LogWithFields(log.F("path", full)).Debugf("skipping vanished entry: %v", err)
				continue
			}
		}
		kind := KindOf(info.Mode())
		if info.Mode()&fs.ModeSymlink != 0 {
			kind = Other
		}
		children = append(children, Child{
			Name:    e.Name(),
			Kind:    kind,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return children, nil
}

// QueryKind stats loc.
func (l *Local) QueryKind(loc location.Location) (Kind, error) {
	p, err := l.resolve(loc)
	if err != nil {
		return Other, err
	}
	info, err := os.Stat(p)
	if err != nil {
		return Other, fileError("cannot query file", p, err)
	}
	return KindOf(info.Mode()), nil
}

// ParentOf returns the parent of loc, if any.
func (l *Local) ParentOf(loc location.Location) (location.Location, bool) {
	return loc.Parent()
}

// ExistsAndIsDirectory reports whether path names an existing directory.
func (l *Local) ExistsAndIsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// resolve maps a Location onto a path on disk.
func (l *Local) resolve(loc location.Location) (string, error) {
	switch {
	case loc.IsZero():
		return "", errors.NewFileError("empty location", "", errors.InvalidPath, nil)
	case !loc.IsVirtual():
		return loc.Path(), nil
	case loc.Scheme() == location.SchemeTrash:
		return filepath.Join(l.trashFiles(), filepath.FromSlash(loc.Path())), nil
	default:
		return "", errors.NewFileError("unsupported location", loc.URI(), errors.InvalidPath, nil)
	}
}

// fileError wraps an os error into a FileError of the matching kind.
func fileError(msg, path string, err error) error {
	kind := errors.FileOperationFailed
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = errors.FileNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = errors.FileAccessDenied
	case isNotDir(err):
		kind = errors.NotADirectory
	}
	return errors.NewFileError(msg, path, kind, err)
}
