package app_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"casper/internal/app"
	"casper/internal/clipboard"
	"casper/internal/config"
	"casper/internal/fsys"
	"casper/internal/location"
	"casper/internal/sidebar"
	"casper/pkg/testutils"
	"casper/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noMounts struct{}

func (noMounts) Mounts() ([]sidebar.Mount, error) { return nil, nil }

type recordingPrompter struct {
	errors  []string
	infos   []string
	confirm bool
	target  location.Location
}

func (p *recordingPrompter) ShowError(title string, _ error) { p.errors = append(p.errors, title) }
func (p *recordingPrompter) ShowInfo(_, message string)     { p.infos = append(p.infos, message) }
func (p *recordingPrompter) Confirm(_, _ string, answer func(bool)) {
	answer(p.confirm)
}
func (p *recordingPrompter) ChooseDirectory(_ location.Location, chosen func(location.Location, bool)) {
	chosen(p.target, !p.target.IsZero())
}
func (p *recordingPrompter) ChooseApp(_ []fsys.App, chosen func(fsys.App, bool)) {
	chosen(fsys.App{}, false)
}

type fixture struct {
	state  *app.AppState
	prompt *recordingPrompter
	home   string
	data   string
}

func newFixture(t *testing.T, mutate func(*config.Config)) *fixture {
	t.Helper()
	home := testutils.CreateHome(t)
	data := t.TempDir()

	cfg := config.New()
	if mutate != nil {
		mutate(cfg)
	}
	prompt := &recordingPrompter{}
	state, err := app.New(app.Options{
		Config:    cfg,
		FS:        fsys.NewLocal(fsys.WithDataHome(data), fsys.WithDataDirs(), fsys.WithOpener("true")),
		Mounts:    noMounts{},
		Clipboard: &clipboard.Memory{},
		Prompter:  prompt,
		Home:      home,
		StartDir:  home,
	})
	require.NoError(t, err)
	t.Cleanup(state.Close)
	require.NoError(t, state.Start())
	return &fixture{state: state, prompt: prompt, home: home, data: data}
}

func names(t *testing.T, s *app.AppState) []string {
	t.Helper()
	var out []string
	for _, e := range s.View().Entries() {
		out = append(out, e.Name)
	}
	return out
}

func TestStartLoadsBothProjections(t *testing.T) {
	f := newFixture(t, nil)

	assert.Equal(t, location.FromPath(f.home), f.state.Current())
	assert.Equal(t, []string{"Music", "docs", "notes.txt"}, names(t, f.state))
	assert.Equal(t, f.state.ListView.Entries(), f.state.GridView.Entries())
	assert.Equal(t, types.ViewList, f.state.ViewMode())
}

func TestConfiguredViewMode(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.View.Mode = "grid" })
	assert.Equal(t, types.ViewGrid, f.state.ViewMode())
	assert.Same(t, f.state.GridView, f.state.View())
}

func TestSidebarBuiltFromHome(t *testing.T) {
	f := newFixture(t, nil)

	var labels []string
	for _, item := range f.state.Sidebar.Items() {
		if !item.IsSeparator {
			labels = append(labels, item.Label)
		}
	}
	assert.Equal(t, []string{"Home", "Music", "Trash"}, labels)
}

func TestDispatchNavigation(t *testing.T) {
	f := newFixture(t, nil)
	s := f.state
	home := location.FromPath(f.home)
	docs := home.Child("docs")

	require.NoError(t, s.Dispatch(types.IntentActivateEntry, "docs"))
	assert.Equal(t, docs, s.Current())
	assert.Empty(t, names(t, s))

	require.NoError(t, s.Dispatch(types.IntentBack, ""))
	assert.Equal(t, home, s.Current())
	assert.True(t, s.Nav.CanGoForward())

	require.NoError(t, s.Dispatch(types.IntentForward, ""))
	assert.Equal(t, docs, s.Current())

	require.NoError(t, s.Dispatch(types.IntentUp, ""))
	assert.Equal(t, home, s.Current())
	assert.Equal(t, []location.Location{docs, home}, s.Nav.State().BackStack())

	require.NoError(t, s.Dispatch(types.IntentNavigatePath, filepath.Join(f.home, "Music")))
	assert.Equal(t, home.Child("Music"), s.Current())

	require.NoError(t, s.Dispatch(types.IntentActivateSidebar, "0"))
	assert.Equal(t, home, s.Current())
	assert.Empty(t, f.prompt.errors)
}

func TestDispatchNavigationFailureKeepsState(t *testing.T) {
	f := newFixture(t, nil)
	s := f.state
	before := s.Nav.State()

	err := s.Dispatch(types.IntentNavigatePath, filepath.Join(f.home, "notes.txt"))
	assert.Error(t, err)
	assert.Equal(t, before, s.Nav.State())
	assert.Equal(t, []string{"Cannot open folder"}, f.prompt.errors)

	assert.Error(t, s.Dispatch(types.IntentActivateSidebar, "not-a-row"))
	assert.Error(t, s.Dispatch(types.Intent(99), ""))
}

func TestSelectionClearedOnReloadAndToggle(t *testing.T) {
	f := newFixture(t, nil)
	s := f.state

	require.NoError(t, s.Dispatch(types.IntentSelectEntry, "notes.txt"))
	_, ok := s.Actions.Selected()
	require.True(t, ok)

	require.NoError(t, s.Dispatch(types.IntentRefresh, ""))
	_, ok = s.Actions.Selected()
	assert.False(t, ok, "reload drops the selection")

	require.NoError(t, s.Dispatch(types.IntentSelectEntry, "notes.txt"))
	require.NoError(t, s.Dispatch(types.IntentToggleView, ""))
	_, ok = s.Actions.Selected()
	assert.False(t, ok, "view toggle drops the selection")
	assert.Equal(t, types.ViewGrid, s.ViewMode())

	require.NoError(t, s.Dispatch(types.IntentSelectEntry, "notes.txt"))
	require.NoError(t, s.Dispatch(types.IntentSelectEntry, ""))
	_, ok = s.Actions.Selected()
	assert.False(t, ok)
}

func TestDispatchCopyPaste(t *testing.T) {
	f := newFixture(t, nil)
	s := f.state

	require.NoError(t, s.Dispatch(types.IntentSelectEntry, "notes.txt"))
	require.NoError(t, s.Dispatch(types.IntentCopy, ""))
	require.NoError(t, s.Dispatch(types.IntentActivateEntry, "docs"))
	require.NoError(t, s.Dispatch(types.IntentPaste, ""))

	assert.Equal(t, []string{"notes.txt"}, names(t, s))
	assert.FileExists(t, filepath.Join(f.home, "notes.txt"))
	assert.FileExists(t, filepath.Join(f.home, "docs", "notes.txt"))
	assert.Empty(t, f.prompt.errors)
}

func TestDispatchCutPaste(t *testing.T) {
	f := newFixture(t, nil)
	s := f.state

	require.NoError(t, s.Dispatch(types.IntentSelectEntry, "notes.txt"))
	require.NoError(t, s.Dispatch(types.IntentCut, ""))
	require.NoError(t, s.Dispatch(types.IntentActivateEntry, "docs"))
	require.NoError(t, s.Dispatch(types.IntentPaste, ""))

	assert.NoFileExists(t, filepath.Join(f.home, "notes.txt"))
	assert.FileExists(t, filepath.Join(f.home, "docs", "notes.txt"))

	// the source is gone now
	assert.Error(t, s.Dispatch(types.IntentPaste, ""))
	assert.Equal(t, []string{"Failed to paste"}, f.prompt.errors)
}

func TestDispatchMoveTo(t *testing.T) {
	f := newFixture(t, nil)
	s := f.state
	f.prompt.target = location.FromPath(filepath.Join(f.home, "Music"))

	require.NoError(t, s.Dispatch(types.IntentSelectEntry, "notes.txt"))
	require.NoError(t, s.Dispatch(types.IntentMoveTo, ""))

	assert.Equal(t, []string{"Music", "docs"}, names(t, s))
	assert.FileExists(t, filepath.Join(f.home, "Music", "notes.txt"))
}

func TestDispatchDelete(t *testing.T) {
	f := newFixture(t, nil)
	s := f.state

	f.prompt.confirm = false
	require.NoError(t, s.Dispatch(types.IntentSelectEntry, "notes.txt"))
	require.NoError(t, s.Dispatch(types.IntentDelete, ""))
	assert.FileExists(t, filepath.Join(f.home, "notes.txt"))

	f.prompt.confirm = true
	require.NoError(t, s.Dispatch(types.IntentSelectEntry, "notes.txt"))
	require.NoError(t, s.Dispatch(types.IntentDelete, ""))
	assert.NoFileExists(t, filepath.Join(f.home, "notes.txt"))
	assert.FileExists(t, filepath.Join(f.data, "Trash", "files", "notes.txt"))
	assert.Equal(t, []string{"Music", "docs"}, names(t, s))

	require.NoError(t, s.Dispatch(types.IntentActivateSidebar, "4"))
	assert.Equal(t, location.Trash, s.Current())
	assert.Equal(t, []string{"notes.txt"}, names(t, s))
}

func TestHandleChangeIgnoresOtherFolders(t *testing.T) {
	f := newFixture(t, nil)
	s := f.state
	assert.Nil(t, s.Changes())

	require.NoError(t, os.WriteFile(filepath.Join(f.home, "late.txt"), nil, 0o644))
	require.NoError(t, s.HandleChange(watchChange(filepath.Join(f.home, "docs"))))
	assert.NotContains(t, names(t, s), "late.txt")

	require.NoError(t, s.HandleChange(watchChange(f.home)))
	assert.Contains(t, names(t, s), "late.txt")
}

func TestAutoRefresh(t *testing.T) {
	f := newFixture(t, nil)
	s := f.state
	require.NoError(t, s.EnableAutoRefresh())
	require.NotNil(t, s.Changes())
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(f.home, "fresh.txt"), nil, 0o644))

	select {
	case change := <-s.Changes():
		require.NoError(t, s.HandleChange(change))
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for folder change")
	}
	assert.Contains(t, names(t, s), "fresh.txt")
}
