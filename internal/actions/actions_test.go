package actions

import (
	"testing"

	"casper/internal/clipboard"
	"casper/internal/errors"
	"casper/internal/fsys"
	"casper/internal/listing"
	"casper/internal/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	op  string
	src location.Location
	dst location.Location
}

// fakeFS records mutations against an in-memory set of known paths.
type fakeFS struct {
	fsys.FS
	kinds    map[string]fsys.Kind
	apps     []fsys.App
	failOps  map[string]bool
	calls    []call
	launched []fsys.App
	onTrash  func()
}

func newFakeFS() *fakeFS {
	return &fakeFS{kinds: map[string]fsys.Kind{}, failOps: map[string]bool{}}
}

func (f *fakeFS) record(op string, src, dst location.Location) error {
	f.calls = append(f.calls, call{op: op, src: src, dst: dst})
	if f.failOps[op] {
		return errors.NewFileError(op+" failed", src.Path(), errors.FileOperationFailed, nil)
	}
	if _, ok := f.kinds[src.Path()]; !ok {
		return errors.NewFileError("source unavailable", src.Path(), errors.FileNotFound, nil)
	}
	return nil
}

func (f *fakeFS) QueryKind(loc location.Location) (fsys.Kind, error) {
	k, ok := f.kinds[loc.Path()]
	if !ok {
		return fsys.Other, errors.NewFileError("cannot query file", loc.Path(), errors.FileNotFound, nil)
	}
	return k, nil
}

func (f *fakeFS) QueryContentType(loc location.Location) (string, error) {
	if _, err := f.QueryKind(loc); err != nil {
		return "", err
	}
	return "text/plain", nil
}

func (f *fakeFS) AppsForType(string) ([]fsys.App, error) {
	return f.apps, nil
}

func (f *fakeFS) Launch(app fsys.App, loc location.Location) error {
	if err := f.record("launch", loc, location.Location{}); err != nil {
		return err
	}
	f.launched = append(f.launched, app)
	return nil
}

func (f *fakeFS) LaunchDefault(loc location.Location) error {
	return f.record("launch-default", loc, location.Location{})
}

func (f *fakeFS) Move(src, dst location.Location) error {
	return f.record("move", src, dst)
}

func (f *fakeFS) Copy(src, dst location.Location) error {
	return f.record("copy", src, dst)
}

func (f *fakeFS) Trash(loc location.Location) error {
	if f.onTrash != nil {
		f.onTrash()
	}
	return f.record("trash", loc, location.Location{})
}

type fakeNav struct {
	current   location.Location
	navigated []location.Location
}

func (n *fakeNav) NavigateTo(loc location.Location) error {
	n.navigated = append(n.navigated, loc)
	n.current = loc
	return nil
}

func (n *fakeNav) Current() location.Location {
	return n.current
}

type fakeRefresher struct {
	refreshes int
}

func (r *fakeRefresher) Refresh() (listing.Listing, error) {
	r.refreshes++
	return listing.Listing{}, nil
}

// fakePrompter answers every question synchronously.
type fakePrompter struct {
	confirm   bool
	directory location.Location
	pickApp   bool
	errors    []string
	infos     []string
	asked     []string
}

func (p *fakePrompter) ShowError(title string, _ error) {
	p.errors = append(p.errors, title)
}

func (p *fakePrompter) ShowInfo(_, message string) {
	p.infos = append(p.infos, message)
}

func (p *fakePrompter) Confirm(_, message string, answer func(bool)) {
	p.asked = append(p.asked, message)
	answer(p.confirm)
}

func (p *fakePrompter) ChooseDirectory(_ location.Location, chosen func(location.Location, bool)) {
	chosen(p.directory, !p.directory.IsZero())
}

func (p *fakePrompter) ChooseApp(apps []fsys.App, chosen func(fsys.App, bool)) {
	if !p.pickApp {
		chosen(fsys.App{}, false)
		return
	}
	chosen(apps[0], true)
}

type fixture struct {
	fs     *fakeFS
	nav    *fakeNav
	list   *fakeRefresher
	clip   *clipboard.Memory
	prompt *fakePrompter
	d      *Dispatcher
}

func newFixture() *fixture {
	f := &fixture{
		fs:     newFakeFS(),
		nav:    &fakeNav{current: location.FromPath("/home/u")},
		list:   &fakeRefresher{},
		clip:   &clipboard.Memory{},
		prompt: &fakePrompter{},
	}
	f.fs.kinds["/home/u"] = fsys.Directory
	f.fs.kinds["/home/u/docs"] = fsys.Directory
	f.fs.kinds["/home/u/notes.txt"] = fsys.RegularFile
	f.d = NewDispatcher(f.fs, f.nav, f.list, clipboard.NewChannel(f.clip), f.prompt)
	return f
}

func TestSelection(t *testing.T) {
	f := newFixture()
	_, ok := f.d.Selected()
	assert.False(t, ok)

	f.d.SelectEntry("notes.txt")
	sel, ok := f.d.Selected()
	require.True(t, ok)
	assert.Equal(t, location.FromPath("/home/u/notes.txt"), sel)

	f.d.Clear()
	_, ok = f.d.Selected()
	assert.False(t, ok)
}

func TestActionsWithoutSelectionAreNoOps(t *testing.T) {
	f := newFixture()
	assert.NoError(t, f.d.Open())
	assert.NoError(t, f.d.OpenWith())
	assert.NoError(t, f.d.Cut())
	assert.NoError(t, f.d.Copy())
	assert.NoError(t, f.d.MoveTo())
	assert.NoError(t, f.d.Delete())
	assert.Empty(t, f.fs.calls)
	assert.Empty(t, f.prompt.asked)
	assert.False(t, f.d.CanOpenWith())
}

func TestOpenDirectoryNavigates(t *testing.T) {
	f := newFixture()
	f.d.SelectEntry("docs")

	require.NoError(t, f.d.Open())
	assert.Equal(t, []location.Location{location.FromPath("/home/u/docs")}, f.nav.navigated)
	assert.Empty(t, f.fs.calls)
	_, ok := f.d.Selected()
	assert.False(t, ok)
}

func TestOpenFileLaunchesDefault(t *testing.T) {
	f := newFixture()
	f.d.SelectEntry("notes.txt")

	require.NoError(t, f.d.Open())
	require.Len(t, f.fs.calls, 1)
	assert.Equal(t, "launch-default", f.fs.calls[0].op)
	assert.Empty(t, f.nav.navigated)
}

func TestOpenLaunchFailureKeepsSelection(t *testing.T) {
	f := newFixture()
	f.fs.failOps["launch-default"] = true
	f.d.SelectEntry("notes.txt")

	require.Error(t, f.d.Open())
	assert.Equal(t, []string{"Error opening file"}, f.prompt.errors)
	_, ok := f.d.Selected()
	assert.True(t, ok)
}

func TestOpenWith(t *testing.T) {
	f := newFixture()
	f.fs.apps = []fsys.App{{ID: "editor.desktop", Name: "Editor", Exec: "editor %f"}}
	f.prompt.pickApp = true
	f.d.SelectEntry("notes.txt")

	assert.True(t, f.d.CanOpenWith())
	require.NoError(t, f.d.OpenWith())
	require.Len(t, f.fs.launched, 1)
	assert.Equal(t, "editor.desktop", f.fs.launched[0].ID)
	_, ok := f.d.Selected()
	assert.False(t, ok)
}

func TestOpenWithNoApplications(t *testing.T) {
	f := newFixture()
	f.d.SelectEntry("notes.txt")

	require.NoError(t, f.d.OpenWith())
	assert.Equal(t, []string{"No applications found for this file type."}, f.prompt.infos)
	assert.Empty(t, f.fs.launched)
}

func TestCanOpenWithDirectory(t *testing.T) {
	f := newFixture()
	f.d.SelectEntry("docs")
	assert.False(t, f.d.CanOpenWith())
}

func TestCutCopyStorePayload(t *testing.T) {
	f := newFixture()

	f.d.SelectEntry("notes.txt")
	require.NoError(t, f.d.Cut())
	text, _ := f.clip.ReadText()
	assert.Equal(t, "cut\nfile:///home/u/notes.txt", text)

	f.d.SelectEntry("docs")
	require.NoError(t, f.d.Copy())
	text, _ = f.clip.ReadText()
	assert.Equal(t, "copy\nfile:///home/u/docs", text)
}

func TestPasteCutMovesIntoCurrent(t *testing.T) {
	f := newFixture()
	f.d.SelectEntry("notes.txt")
	require.NoError(t, f.d.Cut())

	f.nav.current = location.FromPath("/home/u/docs")
	var result error = errors.New("not called")
	f.d.Paste(func(err error) { result = err })

	require.NoError(t, result)
	require.Len(t, f.fs.calls, 1)
	assert.Equal(t, call{
		op:  "move",
		src: location.FromPath("/home/u/notes.txt"),
		dst: location.FromPath("/home/u/docs/notes.txt"),
	}, f.fs.calls[0])
	assert.Equal(t, 1, f.list.refreshes)
}

func TestPasteCopy(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.clip.WriteText("copy\nfile:///home/u/notes.txt"))
	f.nav.current = location.FromPath("/home/u/docs")

	require.NoError(t, f.d.PastePayload(clipboard.Decode("copy\nfile:///home/u/notes.txt")))
	require.Len(t, f.fs.calls, 1)
	assert.Equal(t, "copy", f.fs.calls[0].op)
	assert.Equal(t, 1, f.list.refreshes)
}

func TestPasteUnreachableSource(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.clip.WriteText("cut\nfile:///mnt/gone/report.pdf"))
	f.d.SelectEntry("notes.txt")

	var result error
	f.d.Paste(func(err error) { result = err })

	require.Error(t, result)
	assert.True(t, errors.IsFileNotFound(result))
	sel, ok := f.d.Selected()
	require.True(t, ok)
	assert.Equal(t, location.FromPath("/home/u/notes.txt"), sel)
	assert.Zero(t, f.list.refreshes)
	assert.Equal(t, []string{"Failed to paste"}, f.prompt.errors)
}

func TestPasteMalformedIsIgnored(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.clip.WriteText("just some text"))

	var result error = errors.New("not called")
	f.d.Paste(func(err error) { result = err })

	assert.NoError(t, result)
	assert.Empty(t, f.fs.calls)
	assert.Empty(t, f.prompt.errors)
	assert.Zero(t, f.list.refreshes)
}

func TestPasteIntoTrashRejected(t *testing.T) {
	f := newFixture()
	f.nav.current = location.Trash

	err := f.d.PastePayload(clipboard.Payload{Verb: clipboard.Copy, Source: location.FromPath("/home/u/notes.txt")}, nil)
	require.Error(t, err)
	assert.Empty(t, f.fs.calls)
}

func TestMoveTo(t *testing.T) {
	f := newFixture()
	f.prompt.directory = location.FromPath("/home/u/docs")
	f.d.SelectEntry("notes.txt")

	require.NoError(t, f.d.MoveTo())
	require.Len(t, f.fs.calls, 1)
	assert.Equal(t, location.FromPath("/home/u/docs/notes.txt"), f.fs.calls[0].dst)
	assert.Equal(t, 1, f.list.refreshes)
	_, ok := f.d.Selected()
	assert.False(t, ok)
}

func TestMoveToFailureKeepsSelection(t *testing.T) {
	f := newFixture()
	f.fs.failOps["move"] = true
	f.prompt.directory = location.FromPath("/home/u/docs")
	f.d.SelectEntry("notes.txt")

	require.NoError(t, f.d.MoveTo())
	assert.Equal(t, []string{"Failed to move file"}, f.prompt.errors)
	assert.Zero(t, f.list.refreshes)
	_, ok := f.d.Selected()
	assert.True(t, ok)
}

func TestMoveToCancelled(t *testing.T) {
	f := newFixture()
	f.d.SelectEntry("notes.txt")

	require.NoError(t, f.d.MoveTo())
	assert.Empty(t, f.fs.calls)
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name      string
		confirm   bool
		fail      bool
		trashed   bool
		refreshes int
		errors    []string
	}{
		{"confirmed", true, false, true, 1, nil},
		{"cancelled", false, false, false, 0, nil},
		{"trash fails", true, true, true, 0, []string{"Failed to delete file"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.prompt.confirm = tt.confirm
			f.fs.failOps["trash"] = tt.fail
			f.d.SelectEntry("notes.txt")

			require.NoError(t, f.d.Delete())
			assert.Equal(t, []string{"Are you sure you want to move 'notes.txt' to trash?"}, f.prompt.asked)
			assert.Equal(t, tt.trashed, len(f.fs.calls) == 1)
			assert.Equal(t, tt.refreshes, f.list.refreshes)
			assert.Equal(t, tt.errors, f.prompt.errors)

			// the selection is gone whatever the outcome
			_, ok := f.d.Selected()
			assert.False(t, ok)
		})
	}
}

func TestDeleteClearsSelectionBeforeTrashing(t *testing.T) {
	f := newFixture()
	f.prompt.confirm = true
	f.d.SelectEntry("notes.txt")

	stillSelected := true
	f.fs.onTrash = func() {
		_, stillSelected = f.d.Selected()
	}
	require.NoError(t, f.d.Delete())
	require.Len(t, f.fs.calls, 1)
	assert.False(t, stillSelected)
}
