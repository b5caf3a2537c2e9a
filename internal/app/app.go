// Package app assembles the file manager core into one AppState that every
// front end drives through Dispatch.
package app

import (
	"os"
	"strconv"

	"casper/internal/actions"
	"casper/internal/clipboard"
	"casper/internal/config"
	"casper/internal/errors"
	"casper/internal/fsys"
	"casper/internal/listing"
	"casper/internal/location"
	"casper/internal/log"
	"casper/internal/navigation"
	"casper/internal/sidebar"
	"casper/internal/watch"
	"casper/pkg/types"
)

// Options overrides the collaborators New would otherwise build from the
// configuration.
type Options struct {
	Config    *config.Config
	FS        fsys.FS
	Mounts    sidebar.MountSource
	Clipboard clipboard.Backend
	Prompter  actions.Prompter
	Home      string
	StartDir  string // wins over start.directory
}

// AppState owns the navigation state, the listing and its two projections,
// the sidebar and the selection. It is not safe for concurrent use; every
// call must come from the front end's event thread.
type AppState struct {
	Config   *config.Config
	FS       fsys.FS
	Listing  *listing.Service
	ListView *listing.Projection
	GridView *listing.Projection
	Nav      *navigation.Navigator
	Sidebar  *sidebar.Model
	Actions  *actions.Dispatcher

	prompt  actions.Prompter
	mode    types.ViewMode
	watcher *watch.DirWatcher
}

// New builds an AppState. Call Start to load the first location.
func New(opts Options) (*AppState, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}

	fs := opts.FS
	if fs == nil {
		fs = fsys.NewLocal(fsys.WithOpener(cfg.Launcher.OpenCommand))
	}

	home := opts.Home
	var userDirs map[string]string
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "cannot determine home directory")
		}
		home = h
		userDirs = sidebar.UserDirs()
	}

	start := opts.StartDir
	if start == "" {
		dir, err := cfg.StartDirectory()
		if err != nil {
			return nil, errors.Wrap(err, "cannot determine start directory")
		}
		start = dir
	}

	mounts := opts.Mounts
	if mounts == nil {
		mounts = sidebar.SystemMounts{SkipFSTypes: cfg.Sidebar.SkipFSTypes}
	}

	backend := opts.Clipboard
	if backend == nil {
		backend = clipboard.NewBackend(cfg.Clipboard.Backend)
	}

	prompt := opts.Prompter
	if prompt == nil {
		prompt = HeadlessPrompter{}
	}

	s := &AppState{
		Config: cfg,
		FS:     fs,
		prompt: prompt,
		mode:   cfg.ViewMode(),
	}
	s.Listing = listing.NewService(fs)
	s.ListView = s.Listing.Project(types.ViewList.String())
	s.GridView = s.Listing.Project(types.ViewGrid.String())
	s.Nav = navigation.NewNavigator(location.FromPath(start), s.Listing, fs)
	s.Sidebar = sidebar.Build(home, fs, mounts, sidebar.Options{
		StandardDirs: cfg.Sidebar.StandardDirs,
		ShowMounts:   cfg.Sidebar.ShowMounts,
		UserDirs:     userDirs,
	})
	s.Actions = actions.NewDispatcher(fs, s.Nav, s.Listing, clipboard.NewChannel(backend), prompt)

	// A reload invalidates row identity, so the selection goes with it
	s.Listing.Subscribe(func(listing.Listing) { s.Actions.Clear() })

	log.LogWithFields(log.F("start", start), log.F("view", s.mode.String())).Debug("application state ready")
	return s, nil
}

// Start loads the initial location.
func (s *AppState) Start() error {
	if err := s.Nav.Start(); err != nil {
		s.prompt.ShowError("Cannot open folder", err)
		return err
	}
	return nil
}

// SetPrompter installs the front end's dialogs.
func (s *AppState) SetPrompter(p actions.Prompter) {
	s.prompt = p
	s.Actions.SetPrompter(p)
}

// Current returns the current location.
func (s *AppState) Current() location.Location {
	return s.Nav.Current()
}

// ViewMode returns the active view.
func (s *AppState) ViewMode() types.ViewMode {
	return s.mode
}

// View returns the projection backing the active view.
func (s *AppState) View() *listing.Projection {
	if s.mode == types.ViewGrid {
		return s.GridView
	}
	return s.ListView
}

// ToggleView switches between list and grid and drops the selection.
func (s *AppState) ToggleView() types.ViewMode {
	s.mode = s.mode.Toggle()
	s.Actions.Clear()
	return s.mode
}

// Dispatch runs intent. arg carries the typed path, the entry name or the
// sidebar row, depending on the intent. Errors have already been shown to
// the user when Dispatch returns them.
func (s *AppState) Dispatch(intent types.Intent, arg string) error {
	log.LogWithFields(log.F("intent", intent.String()), log.F("arg", arg)).Debug("dispatch")

	switch intent {
	case types.IntentBack:
		return s.navigate(s.Nav.GoBack())
	case types.IntentForward:
		return s.navigate(s.Nav.GoForward())
	case types.IntentUp:
		return s.navigate(s.Nav.GoUp())
	case types.IntentRefresh:
		_, err := s.Listing.Refresh()
		return s.navigate(err)
	case types.IntentNavigatePath:
		return s.navigate(s.Nav.NavigateToPath(arg))
	case types.IntentActivateEntry:
		return s.Actions.Activate(s.Current().Child(arg))
	case types.IntentActivateSidebar:
		row, err := strconv.Atoi(arg)
		if err != nil {
			return errors.Wrapf(err, "invalid sidebar row %q", arg)
		}
		return s.navigate(s.Sidebar.Activate(row, s.Nav))
	case types.IntentSelectEntry:
		if arg == "" {
			s.Actions.Clear()
		} else {
			s.Actions.SelectEntry(arg)
		}
		return nil
	case types.IntentToggleView:
		s.ToggleView()
		return nil
	case types.IntentOpen:
		return s.Actions.Open()
	case types.IntentOpenWith:
		return s.Actions.OpenWith()
	case types.IntentCut:
		return s.Actions.Cut()
	case types.IntentCopy:
		return s.Actions.Copy()
	case types.IntentPaste:
		var result error
		s.Actions.Paste(func(err error) { result = err })
		return result
	case types.IntentMoveTo:
		return s.Actions.MoveTo()
	case types.IntentDelete:
		return s.Actions.Delete()
	default:
		return errors.Newf("unknown intent %d", int(intent))
	}
}

func (s *AppState) navigate(err error) error {
	if err != nil {
		s.prompt.ShowError("Cannot open folder", err)
	}
	return err
}

// EnableAutoRefresh watches the current folder and keeps the watch on
// whatever folder is loaded next. Drain Changes and pass each value to
// HandleChange on the event thread.
func (s *AppState) EnableAutoRefresh() error {
	if s.watcher != nil {
		return nil
	}
	w, err := watch.New(watch.DefaultDebounce)
	if err != nil {
		return err
	}
	s.watcher = w
	s.Listing.Subscribe(func(l listing.Listing) { s.retarget(l.Location) })
	s.retarget(s.Current())
	return w.Start()
}

func (s *AppState) retarget(loc location.Location) {
	dir := ""
	if !loc.IsVirtual() {
		dir = loc.Path()
	}
	if err := s.watcher.Retarget(dir); err != nil {
		log.LogWithError(err).Warn("cannot watch folder")
	}
}

// Changes delivers coalesced changes to the current folder. It is nil
// unless auto-refresh is enabled.
func (s *AppState) Changes() <-chan watch.Change {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Changes()
}

// HandleChange reloads the listing if change concerns the current folder.
func (s *AppState) HandleChange(change watch.Change) error {
	cur := s.Current()
	if cur.IsVirtual() || cur.Path() != change.Dir {
		return nil
	}
	_, err := s.Listing.Refresh()
	return err
}

// Close releases the watcher.
func (s *AppState) Close() {
	if s.watcher != nil {
		s.watcher.Stop()
	}
}
