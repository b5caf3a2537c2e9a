// Package tui is the bubbletea front end. It drives the same AppState as
// the desktop window and doubles as its Prompter: questions become inline
// prompts answered from the keyboard.
package tui

import (
	"strconv"
	"strings"

	"casper/internal/app"
	"casper/internal/config"
	"casper/internal/fsys"
	"casper/internal/listing"
	"casper/internal/location"
	"casper/internal/log"
	"casper/internal/sidebar"
	"casper/internal/tui/common"
	"casper/internal/tui/components"
	"casper/internal/tui/messages"
	"casper/internal/tui/styles"
	"casper/internal/tui/views"
	"casper/internal/watch"
	"casper/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

type Model struct {
	// Core state
	state    *app.AppState
	keys     types.KeyMap
	theme    styles.Theme
	mode     common.Mode
	cursor   int
	location location.Location
	showHelp bool

	// Sidebar focus
	sidebarFocused bool
	sidebarCursor  int

	// Prompt state
	prompt      string
	input       textinput.Model
	onConfirm   func(bool)
	onDirectory func(location.Location, bool)
	apps        []fsys.App
	appCursor   int
	onApp       func(fsys.App, bool)

	// Status line
	status    string
	statusErr bool

	// Rendering
	width    int
	height   int
	help     help.Model
	viewport viewport.Model
	fileList *components.FileList
}

// New creates the model and installs it as the state's prompter.
func New(state *app.AppState) *Model {
	theme := styles.NewTheme(state.Config)
	input := textinput.New()
	input.Prompt = ""

	m := &Model{
		state:    state,
		keys:     types.DefaultKeyMap(),
		theme:    theme,
		mode:     common.Normal,
		location: state.Current(),
		input:    input,
		width:    defaultWidth,
		height:   defaultHeight,
		help:     help.New(),
		viewport: viewport.New(defaultWidth, defaultHeight),
		fileList: components.NewFileList(theme),
	}
	state.SetPrompter(m)
	return m
}

// Run starts the terminal interface and blocks until the user quits.
func Run(state *app.AppState) error {
	if err := state.Start(); err != nil {
		return err
	}
	if state.Config.View.AutoRefresh {
		if err := state.EnableAutoRefresh(); err != nil {
			log.LogWithError(err).Warn("auto-refresh disabled")
		}
	}
	defer state.Close()

	_, err := tea.NewProgram(New(state), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return waitForChange(m.state.Changes())
}

func waitForChange(changes <-chan watch.Change) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return messages.WatchClosedMsg{}
		}
		return messages.DirectoryChangeMsg{Change: change}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case messages.DirectoryChangeMsg:
		if err := m.state.HandleChange(msg.Change); err != nil {
			m.ShowError("Cannot refresh", err)
		}
		m.sync()
		return m, waitForChange(m.state.Changes())
	case messages.WatchClosedMsg:
		log.Debug("folder watch closed")
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case common.PathBar, common.ChooseDirectory:
		return m.handleInputKeys(msg)
	case common.Confirm:
		return m.handleConfirmKeys(msg)
	case common.ChooseApp:
		return m.handleAppKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Sidebar):
		m.sidebarFocused = !m.sidebarFocused
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-m.rowStep())
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.rowStep())
	case key.Matches(msg, m.keys.Left):
		if m.state.ViewMode() == types.ViewGrid {
			m.moveCursor(-1)
		}
	case key.Matches(msg, m.keys.Right):
		if m.state.ViewMode() == types.ViewGrid {
			m.moveCursor(1)
		}
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-m.itemCount())
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(m.itemCount())
	case key.Matches(msg, m.keys.Activate):
		m.activate()
	case key.Matches(msg, m.keys.Parent):
		m.run(types.IntentUp, "")
	case key.Matches(msg, m.keys.Back):
		m.run(types.IntentBack, "")
	case key.Matches(msg, m.keys.Forward):
		m.run(types.IntentForward, "")
	case key.Matches(msg, m.keys.Refresh):
		m.run(types.IntentRefresh, "")
	case key.Matches(msg, m.keys.PathBar):
		m.openInput(common.PathBar, "Go to:", m.state.Current().String())
		return m, textinput.Blink
	case key.Matches(msg, m.keys.ToggleView):
		m.run(types.IntentToggleView, "")
	case key.Matches(msg, m.keys.Paste):
		m.run(types.IntentPaste, "")
	case key.Matches(msg, m.keys.Open):
		m.onEntry(types.IntentOpen)
	case key.Matches(msg, m.keys.OpenWith):
		m.openWith()
	case key.Matches(msg, m.keys.Cut):
		m.onEntry(types.IntentCut)
	case key.Matches(msg, m.keys.Copy):
		m.onEntry(types.IntentCopy)
	case key.Matches(msg, m.keys.MoveTo):
		m.onEntry(types.IntentMoveTo)
		if m.mode == common.ChooseDirectory {
			return m, textinput.Blink
		}
	case key.Matches(msg, m.keys.Delete):
		m.onEntry(types.IntentDelete)
	}
	return m, nil
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput(false)
		return m, nil
	case tea.KeyEnter:
		m.closeInput(true)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var yes bool
	switch {
	case key.Matches(msg, m.keys.Confirm):
		yes = true
	case key.Matches(msg, m.keys.Cancel):
	default:
		return m, nil
	}
	answer := m.onConfirm
	m.resetPrompt()
	answer(yes)
	m.sync()
	return m, nil
}

func (m *Model) handleAppKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.appCursor > 0 {
			m.appCursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.appCursor < len(m.apps)-1 {
			m.appCursor++
		}
		return m, nil
	case msg.Type == tea.KeyEnter:
		if len(m.apps) == 0 {
			return m, nil
		}
		chosen, choice := m.onApp, m.apps[m.appCursor]
		m.resetPrompt()
		chosen(choice, true)
	case key.Matches(msg, m.keys.Cancel):
		chosen := m.onApp
		m.resetPrompt()
		chosen(fsys.App{}, false)
	default:
		return m, nil
	}
	m.sync()
	return m, nil
}

// run dispatches intent; failures have been reported through ShowError.
func (m *Model) run(intent types.Intent, arg string) {
	m.status, m.statusErr = "", false
	_ = m.state.Dispatch(intent, arg)
	m.sync()
}

// onEntry selects the entry under the cursor and runs intent on it.
func (m *Model) onEntry(intent types.Intent) {
	e, ok := m.current()
	if !ok {
		return
	}
	m.run(types.IntentSelectEntry, e.Name)
	m.run(intent, "")

	if m.statusErr {
		return
	}
	switch intent {
	case types.IntentCut:
		m.ShowInfo("Cut", "Cut "+e.Name)
	case types.IntentCopy:
		m.ShowInfo("Copy", "Copied "+e.Name)
	}
}

func (m *Model) openWith() {
	e, ok := m.current()
	if !ok {
		return
	}
	m.run(types.IntentSelectEntry, e.Name)
	if !m.state.Actions.CanOpenWith() {
		m.ShowInfo("Open With", "Open with is only available for files.")
		return
	}
	m.run(types.IntentOpenWith, "")
}

func (m *Model) activate() {
	if m.sidebarFocused {
		item := m.state.Sidebar.At(m.sidebarCursor)
		if item.IsSeparator {
			return
		}
		m.run(types.IntentActivateSidebar, strconv.Itoa(m.sidebarCursor))
		m.sidebarFocused = false
		return
	}
	if e, ok := m.current(); ok {
		m.run(types.IntentActivateEntry, e.Name)
	}
}

func (m *Model) openInput(mode common.Mode, prompt, value string) {
	m.mode = mode
	m.prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) closeInput(submit bool) {
	mode, value := m.mode, strings.TrimSpace(m.input.Value())
	chosen := m.onDirectory
	m.resetPrompt()

	switch mode {
	case common.PathBar:
		if submit && value != "" {
			m.run(types.IntentNavigatePath, value)
		}
	case common.ChooseDirectory:
		if submit && value != "" {
			chosen(location.FromPath(config.ExpandHome(value)), true)
		} else {
			chosen(location.Location{}, false)
		}
		m.sync()
	}
}

func (m *Model) resetPrompt() {
	m.mode = common.Normal
	m.prompt = ""
	m.input.Blur()
	m.input.SetValue("")
	m.onConfirm = nil
	m.onDirectory = nil
	m.onApp = nil
	m.apps = nil
	m.appCursor = 0
}

// sync resets the cursor after a location change and keeps it in range.
func (m *Model) sync() {
	if cur := m.state.Current(); cur != m.location {
		m.location = cur
		m.cursor = 0
	}
	if n := m.itemCount(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) moveCursor(delta int) {
	if m.sidebarFocused {
		next := m.sidebarCursor + delta
		for next >= 0 && next < m.state.Sidebar.Len() && m.state.Sidebar.At(next).IsSeparator {
			if delta < 0 {
				next--
			} else {
				next++
			}
		}
		if next >= 0 && next < m.state.Sidebar.Len() {
			m.sidebarCursor = next
		}
		return
	}
	m.cursor += delta
	if m.cursor >= m.itemCount() {
		m.cursor = m.itemCount() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) rowStep() int {
	if m.sidebarFocused || m.state.ViewMode() == types.ViewList {
		return 1
	}
	return components.GridColumns(m.contentWidth())
}

func (m *Model) itemCount() int {
	return m.state.View().Len()
}

func (m *Model) current() (listing.Entry, bool) {
	view := m.state.View()
	if m.sidebarFocused || m.cursor < 0 || m.cursor >= view.Len() {
		return listing.Entry{}, false
	}
	return view.At(m.cursor), true
}

func (m *Model) contentWidth() int {
	w := m.width - components.SidebarWidth() - 10
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) bodyHeight() int {
	footer := 2
	if m.showHelp {
		footer += len(m.keys.FullHelp()[0])
	}
	switch m.mode {
	case common.ChooseApp:
		footer += len(m.apps) + 2
	case common.Normal:
	default:
		footer++
	}
	h := m.height - footer - 5
	if h < 3 {
		h = 3
	}
	return h
}

// ShowError implements actions.Prompter
func (m *Model) ShowError(title string, err error) {
	m.status = title + ": " + err.Error()
	m.statusErr = true
}

// ShowInfo implements actions.Prompter
func (m *Model) ShowInfo(_, message string) {
	m.status = message
	m.statusErr = false
}

// Confirm implements actions.Prompter
func (m *Model) Confirm(_, message string, answer func(bool)) {
	m.mode = common.Confirm
	m.prompt = message
	m.onConfirm = answer
}

// ChooseDirectory implements actions.Prompter
func (m *Model) ChooseDirectory(start location.Location, chosen func(location.Location, bool)) {
	value := ""
	if !start.IsVirtual() {
		value = strings.TrimSuffix(start.Path(), "/") + "/"
	}
	m.openInput(common.ChooseDirectory, "Move to:", value)
	m.onDirectory = chosen
}

// ChooseApp implements actions.Prompter
func (m *Model) ChooseApp(apps []fsys.App, chosen func(fsys.App, bool)) {
	m.mode = common.ChooseApp
	m.prompt = "Open With"
	m.apps = apps
	m.appCursor = 0
	m.onApp = chosen
}

// ModelReader implementation

func (m *Model) Location() string {
	return m.state.Current().String()
}

func (m *Model) Entries() []listing.Entry {
	return m.state.View().Entries()
}

func (m *Model) Cursor() int {
	return m.cursor
}

func (m *Model) Body() string {
	w, h := m.contentWidth(), m.bodyHeight()
	m.fileList.SetEntries(m.Entries())
	m.fileList.SetCursor(m.cursor)
	m.fileList.SetViewMode(m.state.ViewMode())
	m.fileList.SetWidth(w)
	m.fileList.SetFocused(!m.sidebarFocused)

	m.viewport.Width, m.viewport.Height = w, h
	m.viewport.SetContent(m.fileList.View())
	line := m.fileList.CursorLine()
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	} else if line >= m.viewport.YOffset+h {
		m.viewport.SetYOffset(line - h + 1)
	}
	return m.viewport.View()
}

func (m *Model) ViewMode() types.ViewMode {
	return m.state.ViewMode()
}

func (m *Model) SidebarItems() []sidebar.Item {
	return m.state.Sidebar.Items()
}

func (m *Model) SidebarCursor() int {
	return m.sidebarCursor
}

func (m *Model) SidebarFocused() bool {
	return m.sidebarFocused
}

func (m *Model) Mode() common.Mode {
	return m.mode
}

func (m *Model) Prompt() string {
	return m.prompt
}

func (m *Model) InputView() string {
	return m.input.View()
}

func (m *Model) Choices() []string {
	names := make([]string, len(m.apps))
	for i, a := range m.apps {
		names[i] = a.Name
	}
	return names
}

func (m *Model) ChoiceCursor() int {
	return m.appCursor
}

func (m *Model) Status() (string, bool) {
	return m.status, m.statusErr
}

func (m *Model) ShowHelp() bool {
	return m.showHelp
}

func (m *Model) HelpView() string {
	m.help.ShowAll = m.showHelp
	return m.help.View(m.keys)
}

func (m *Model) Size() (int, int) {
	return m.width, m.height
}

func (m *Model) Theme() styles.Theme {
	return m.theme
}
