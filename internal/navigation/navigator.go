package navigation

import (
	"os"
	"path/filepath"

	"casper/internal/errors"
	"casper/internal/listing"
	"casper/internal/location"
	"casper/internal/log"
)

var userHomeDir = os.UserHomeDir

// Loader loads a location into the listing views.
type Loader interface {
	Load(loc location.Location) (listing.Listing, error)
}

// DirChecker answers whether a typed path is an existing directory.
type DirChecker interface {
	ExistsAndIsDirectory(path string) bool
}

// Navigator couples a State with a Loader. Every transition loads its
// target first and commits the new state only if the load succeeded.
type Navigator struct {
	state     State
	loader    Loader
	dirs      DirChecker
	observers []func(State)
}

// NewNavigator creates a Navigator at initial. Call Start to load it.
func NewNavigator(initial location.Location, loader Loader, dirs DirChecker) *Navigator {
	return &Navigator{
		state:  NewState(initial),
		loader: loader,
		dirs:   dirs,
	}
}

// OnChange registers fn to receive every committed state.
func (n *Navigator) OnChange(fn func(State)) {
	n.observers = append(n.observers, fn)
}

// State returns a snapshot of the current state.
func (n *Navigator) State() State {
	return n.state
}

// Current returns the current location.
func (n *Navigator) Current() location.Location {
	return n.state.current
}

// Start loads the initial location without touching history.
func (n *Navigator) Start() error {
	return n.commit(n.state)
}

// NavigateTo is an explicit navigation to loc.
func (n *Navigator) NavigateTo(loc location.Location) error {
	return n.commit(n.state.Push(loc))
}

// GoBack replays the previous location. It is a no-op with empty history.
func (n *Navigator) GoBack() error {
	next, ok := n.state.Back()
	if !ok {
		return nil
	}
	return n.commit(next)
}

// GoForward replays the next location. It is a no-op with empty history.
func (n *Navigator) GoForward() error {
	next, ok := n.state.Forward()
	if !ok {
		return nil
	}
	return n.commit(next)
}

// GoUp navigates to the parent of current. It is a no-op at a root.
func (n *Navigator) GoUp() error {
	parent, ok := n.state.current.Parent()
	if !ok {
		return nil
	}
	return n.NavigateTo(parent)
}

// NavigateToPath handles a typed path: it must be an existing directory.
func (n *Navigator) NavigateToPath(path string) error {
	if path == "" {
		return errors.NewFileError("empty path", path, errors.InvalidPath, nil)
	}
	if loc, err := location.FromURI(path); err == nil {
		if loc.IsVirtual() {
			return n.NavigateTo(loc)
		}
		path = loc.Path()
	}
	path = expandHome(path)
	if !n.dirs.ExistsAndIsDirectory(path) {
		return errors.NewFileError("not an existing folder", path, errors.NotADirectory, nil)
	}
	return n.NavigateTo(location.FromPath(path))
}

func (n *Navigator) CanGoBack() bool {
	return n.state.CanGoBack()
}

func (n *Navigator) CanGoForward() bool {
	return n.state.CanGoForward()
}

func (n *Navigator) CanGoUp() bool {
	return n.state.CanGoUp()
}

// commit loads next.current and adopts next only on success.
func (n *Navigator) commit(next State) error {
	if _, err := n.loader.Load(next.current); err != nil {
		return err
	}
	n.state = next
	log.LogWithFields(
		log.F("location", next.current.String()),
		log.F("back", len(next.back)),
		log.F("forward", len(next.forward)),
	).Debug("navigated")
	for _, fn := range n.observers {
		fn(next)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !hasHomePrefix(path) {
		return path
	}
	home, err := userHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

func hasHomePrefix(path string) bool {
	return len(path) > 1 && path[0] == '~' && path[1] == filepath.Separator
}
