//go:build !nogui

// Package gui is the fyne desktop front end: a toolbar with history
// buttons and a path bar, the sidebar, and the list and grid views of the
// current folder.
package gui

import (
	"fmt"
	"strconv"
	"sync"

	"casper/internal/app"
	"casper/internal/config"
	"casper/internal/listing"
	"casper/internal/log"
	"casper/internal/watch"
	"casper/pkg/types"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	state      *app.AppState

	// Serializes access to state between the event thread and the
	// auto-refresh goroutine
	mu sync.Mutex

	// Copies of the projections taken by sync. The widget callbacks read
	// these instead of the state, since Refresh calls them while mu is held.
	rowsMu sync.RWMutex
	rows   map[types.ViewMode][]listing.Entry

	pathEntry     *widget.Entry
	backButton    *widget.Button
	forwardButton *widget.Button
	upButton      *widget.Button
	viewButton    *widget.Button
	list          *widget.List
	grid          *widget.GridWrap
	sidebarList   *widget.List
	statusLabel   *widget.Label
	contextMenu   *fyne.Menu // last menu shown, kept for tests
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}

// Run opens the file manager window and blocks until it is closed.
func Run(opts app.Options) error {
	a, err := NewApp(fyneapp.NewWithID("io.github.casper"), opts)
	if err != nil {
		return err
	}
	a.Run()
	return nil
}

// NewApp creates the window and the application state behind it.
func NewApp(fyneApp fyne.App, opts app.Options) (*App, error) {
	if opts.Config == nil {
		opts.Config = config.New()
	}

	a := &App{fyneApp: fyneApp, rows: make(map[types.ViewMode][]listing.Entry)}
	a.mainWindow = fyneApp.NewWindow("File Manager")

	if opts.Clipboard == nil && opts.Config.Clipboard.Backend != "memory" {
		opts.Clipboard = NewClipboardBackend(a.mainWindow)
	}
	opts.Prompter = a

	state, err := app.New(opts)
	if err != nil {
		return nil, err
	}
	a.state = state

	a.setupMainWindow()
	return a, nil
}

// Run starts the GUI application
func (a *App) Run() {
	a.Start()
	a.mainWindow.ShowAndRun()
	a.state.Close()
}

// Start loads the first folder and, when configured, starts following
// changes to the current folder.
func (a *App) Start() {
	a.do(func() {
		if err := a.state.Start(); err != nil {
			return
		}
		if !a.state.Config.View.AutoRefresh {
			return
		}
		if err := a.state.EnableAutoRefresh(); err != nil {
			log.LogWithError(err).Warn("auto-refresh disabled")
			return
		}
		go a.followChanges(a.state.Changes())
	})
}

func (a *App) followChanges(changes <-chan watch.Change) {
	for change := range changes {
		a.do(func() {
			if err := a.state.HandleChange(change); err != nil {
				log.LogWithError(err).Warn("auto-refresh failed")
			}
		})
	}
}

// GetMainWindow returns the main window for testing purposes
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// State exposes the application state for testing purposes
func (a *App) State() *app.AppState {
	return a.state
}

// do runs fn against the state and brings the widgets up to date.
func (a *App) do(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn()
	a.sync()
}

func (a *App) dispatch(intent types.Intent, arg string) {
	a.do(func() {
		// errors have already been shown by the prompter
		_ = a.state.Dispatch(intent, arg)
	})
}

// setupMainWindow sets up the main window content
func (a *App) setupMainWindow() {
	a.mainWindow.Resize(fyne.NewSize(900, 600))

	toolbar := a.createToolbar()
	sidebar := a.createSidebar()
	views := container.NewStack(a.createListView(), a.createGridView())
	a.statusLabel = widget.NewLabel("")

	split := container.NewHSplit(sidebar, views)
	split.Offset = 0.22

	a.mainWindow.SetContent(container.NewBorder(toolbar, a.statusLabel, nil, nil, split))

	a.mainWindow.Canvas().SetOnTypedKey(func(ke *fyne.KeyEvent) {
		switch ke.Name {
		case fyne.KeyF5:
			a.dispatch(types.IntentRefresh, "")
		case fyne.KeyBackspace:
			a.dispatch(types.IntentUp, "")
		case fyne.KeyDelete:
			a.dispatch(types.IntentDelete, "")
		case fyne.KeyReturn:
			a.dispatch(types.IntentOpen, "")
		}
	})

	a.do(func() {})
}

func (a *App) createToolbar() fyne.CanvasObject {
	a.backButton = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		a.dispatch(types.IntentBack, "")
	})
	a.forwardButton = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		a.dispatch(types.IntentForward, "")
	})
	a.upButton = widget.NewButtonWithIcon("", theme.MoveUpIcon(), func() {
		a.dispatch(types.IntentUp, "")
	})
	refresh := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		a.dispatch(types.IntentRefresh, "")
	})
	paste := widget.NewButtonWithIcon("", theme.ContentPasteIcon(), func() {
		a.dispatch(types.IntentPaste, "")
	})
	a.viewButton = widget.NewButtonWithIcon("", theme.GridIcon(), func() {
		a.dispatch(types.IntentToggleView, "")
	})

	a.pathEntry = widget.NewEntry()
	a.pathEntry.OnSubmitted = func(text string) {
		a.dispatch(types.IntentNavigatePath, text)
	}

	left := container.NewHBox(a.backButton, a.forwardButton, a.upButton, refresh)
	right := container.NewHBox(paste, a.viewButton)
	return container.NewBorder(nil, nil, left, right, a.pathEntry)
}

func (a *App) createSidebar() fyne.CanvasObject {
	a.sidebarList = widget.NewList(
		func() int { return a.state.Sidebar.Len() },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, widget.NewIcon(nil), widget.NewLabel(""), widget.NewLabel("Sidebar item"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			item := a.state.Sidebar.At(id)
			row := obj.(*fyne.Container)
			label := row.Objects[0].(*widget.Label)
			icon := row.Objects[1].(*widget.Icon)
			detail := row.Objects[2].(*widget.Label)
			if item.IsSeparator {
				label.SetText("")
				detail.SetText("")
				icon.Hide()
				return
			}
			icon.Show()
			icon.SetResource(sidebarIcon(item))
			label.SetText(item.Label)
			detail.SetText(item.Detail)
		},
	)
	a.sidebarList.OnSelected = func(id widget.ListItemID) {
		a.sidebarList.Unselect(id)
		a.dispatch(types.IntentActivateSidebar, strconv.Itoa(id))
	}
	return a.sidebarList
}

func (a *App) createListView() fyne.CanvasObject {
	a.list = widget.NewList(
		func() int { return a.rowCount(types.ViewList) },
		func() fyne.CanvasObject { return a.wireRow(newListRow()) },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if e, ok := a.rowAt(types.ViewList, id); ok {
				obj.(*entryRow).set(id, e)
			}
		},
	)
	return a.list
}

func (a *App) createGridView() fyne.CanvasObject {
	a.grid = widget.NewGridWrap(
		func() int { return a.rowCount(types.ViewGrid) },
		func() fyne.CanvasObject { return a.wireRow(newGridCell()) },
		func(id widget.GridWrapItemID, obj fyne.CanvasObject) {
			if e, ok := a.rowAt(types.ViewGrid, id); ok {
				obj.(*entryRow).set(id, e)
			}
		},
	)
	return a.grid
}

func (a *App) rowCount(mode types.ViewMode) int {
	a.rowsMu.RLock()
	defer a.rowsMu.RUnlock()
	return len(a.rows[mode])
}

// rowAt returns the id'th row of the last synced projection. Ids left over
// from a longer listing report false.
func (a *App) rowAt(mode types.ViewMode, id int) (listing.Entry, bool) {
	a.rowsMu.RLock()
	defer a.rowsMu.RUnlock()
	rows := a.rows[mode]
	if id < 0 || id >= len(rows) {
		return listing.Entry{}, false
	}
	return rows[id], true
}

func (a *App) wireRow(r *entryRow) *entryRow {
	r.onTapped = a.selectRow
	r.onDoubleTapped = func(id int) {
		if e, ok := a.entryAt(id); ok {
			a.dispatch(types.IntentActivateEntry, e.Name)
		}
	}
	r.onSecondary = func(id int, at fyne.Position) {
		e, ok := a.entryAt(id)
		if !ok {
			return
		}
		a.selectRow(id)
		a.contextMenu = a.menuFor(e)
		widget.ShowPopUpMenuAtPosition(a.contextMenu, a.mainWindow.Canvas(), at)
	}
	return r
}

func (a *App) entryAt(id int) (listing.Entry, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	view := a.state.View()
	if id < 0 || id >= view.Len() {
		return listing.Entry{}, false
	}
	return view.At(id), true
}

func (a *App) selectRow(id int) {
	a.do(func() {
		view := a.state.View()
		if id < 0 || id >= view.Len() {
			return
		}
		_ = a.state.Dispatch(types.IntentSelectEntry, view.At(id).Name)
		if a.state.ViewMode() == types.ViewGrid {
			a.grid.Select(id)
		} else {
			a.list.Select(id)
		}
	})
}

// menuFor builds the context menu for e. Open with is only offered for
// files.
func (a *App) menuFor(e listing.Entry) *fyne.Menu {
	item := func(label string, intent types.Intent) *fyne.MenuItem {
		return fyne.NewMenuItem(label, func() { a.dispatch(intent, "") })
	}

	items := []*fyne.MenuItem{item("Open", types.IntentOpen)}
	if !e.IsDir() {
		items = append(items, item("Open with...", types.IntentOpenWith))
	}
	items = append(items,
		item("Cut", types.IntentCut),
		item("Copy", types.IntentCopy),
		item("Paste", types.IntentPaste),
		item("Move to...", types.IntentMoveTo),
		item("Delete", types.IntentDelete),
	)
	return fyne.NewMenu("", items...)
}

// sync pushes the state into the widgets. Callers hold mu.
func (a *App) sync() {
	s := a.state
	a.rowsMu.Lock()
	a.rows[types.ViewList] = s.ListView.Entries()
	a.rows[types.ViewGrid] = s.GridView.Entries()
	a.rowsMu.Unlock()

	if a.pathEntry == nil {
		return
	}
	a.pathEntry.SetText(s.Current().String())
	enable(a.backButton, s.Nav.CanGoBack())
	enable(a.forwardButton, s.Nav.CanGoForward())
	enable(a.upButton, s.Nav.CanGoUp())

	if s.ViewMode() == types.ViewGrid {
		a.list.Hide()
		a.grid.Show()
		a.viewButton.SetIcon(theme.ListIcon())
	} else {
		a.grid.Hide()
		a.list.Show()
		a.viewButton.SetIcon(theme.GridIcon())
	}
	if _, ok := s.Actions.Selected(); !ok {
		a.list.UnselectAll()
		a.grid.UnselectAll()
	}
	a.list.Refresh()
	a.grid.Refresh()

	a.statusLabel.SetText(fmt.Sprintf("%d items", s.View().Len()))
	a.mainWindow.SetTitle(fmt.Sprintf("%s - File Manager", s.Current().Base()))
}

func enable(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}
