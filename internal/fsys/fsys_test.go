package fsys

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"casper/internal/errors"
	"casper/internal/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) (*Local, string) {
	t.Helper()
	data := t.TempDir()
	return NewLocal(WithDataHome(data), WithDataDirs(), WithOpener("true")), data
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestEnumerateChildren(t *testing.T) {
	l, _ := newTestLocal(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "0123456789")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling")))

	mtime := time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "b.txt"), mtime, mtime))

	children, err := l.EnumerateChildren(location.FromPath(dir))
	require.NoError(t, err)
	require.Len(t, children, 3)

	byName := map[string]Child{}
	for _, c := range children {
		byName[c.Name] = c
	}
	assert.Equal(t, Directory, byName["a"].Kind)
	assert.Equal(t, RegularFile, byName["b.txt"].Kind)
	assert.Equal(t, int64(10), byName["b.txt"].Size)
	assert.True(t, byName["b.txt"].ModTime.Equal(mtime))
	assert.Equal(t, Other, byName["dangling"].Kind)
}

func TestEnumerateChildrenErrors(t *testing.T) {
	l, _ := newTestLocal(t)
	dir := t.TempDir()

	_, err := l.EnumerateChildren(location.FromPath(filepath.Join(dir, "nope")))
	require.Error(t, err)
	assert.True(t, errors.IsFileNotFound(err))

	file := filepath.Join(dir, "plain")
	writeFile(t, file, "x")
	_, err = l.EnumerateChildren(location.FromPath(file))
	require.Error(t, err)
	assert.True(t, errors.IsNotADirectory(err))
}

func TestQueryKindAndContentType(t *testing.T) {
	l, _ := newTestLocal(t)
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	writeFile(t, txt, "hello world\n")

	kind, err := l.QueryKind(location.FromPath(txt))
	require.NoError(t, err)
	assert.Equal(t, RegularFile, kind)

	kind, err = l.QueryKind(location.FromPath(dir))
	require.NoError(t, err)
	assert.Equal(t, Directory, kind)

	ct, err := l.QueryContentType(location.FromPath(txt))
	require.NoError(t, err)
	assert.Equal(t, "text/plain", ct)

	ct, err = l.QueryContentType(location.FromPath(dir))
	require.NoError(t, err)
	assert.Equal(t, DirectoryContentType, ct)

	_, err = l.QueryKind(location.FromPath(filepath.Join(dir, "gone")))
	assert.True(t, errors.IsFileNotFound(err))
}

func TestMove(t *testing.T) {
	l, _ := newTestLocal(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	writeFile(t, src, "data")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dest"), 0o755))

	dst := location.FromPath(filepath.Join(dir, "dest", "src.txt"))
	require.NoError(t, l.Move(location.FromPath(src), dst))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	content, err := os.ReadFile(dst.Path())
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestMoveRejects(t *testing.T) {
	l, _ := newTestLocal(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "b.txt"), "b")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder"), 0o755))

	tests := []struct {
		name string
		src  string
		dst  string
		kind errors.ErrorKind
	}{
		{"missing source", "gone.txt", "x.txt", errors.FileNotFound},
		{"existing destination", "a.txt", "b.txt", errors.FileOperationFailed},
		{"into itself", "folder", "folder/folder", errors.InvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.Move(location.FromPath(filepath.Join(dir, tt.src)), location.FromPath(filepath.Join(dir, tt.dst)))
			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.KindOf(err))
		})
	}

	content, err := os.ReadFile(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(content))
}

func TestCopyDirectory(t *testing.T) {
	l, _ := newTestLocal(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tree", "x", "y.txt"), "deep")

	dst := location.FromPath(filepath.Join(dir, "copy"))
	require.NoError(t, l.Copy(location.FromPath(filepath.Join(dir, "tree")), dst))

	content, err := os.ReadFile(filepath.Join(dir, "copy", "x", "y.txt"))
	require.NoError(t, err)
	assert.Equal(t, "deep", string(content))
	assert.FileExists(t, filepath.Join(dir, "tree", "x", "y.txt"))
}

func TestExistsAndIsDirectory(t *testing.T) {
	l, _ := newTestLocal(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "f"), "")

	assert.True(t, l.ExistsAndIsDirectory(dir))
	assert.False(t, l.ExistsAndIsDirectory(filepath.Join(dir, "f")))
	assert.False(t, l.ExistsAndIsDirectory(filepath.Join(dir, "missing")))
}

func TestParentOf(t *testing.T) {
	l, _ := newTestLocal(t)
	p, ok := l.ParentOf(location.FromPath("/home/u"))
	require.True(t, ok)
	assert.Equal(t, "/home", p.Path())

	_, ok = l.ParentOf(location.FromPath("/"))
	assert.False(t, ok)
}

func TestLaunchDefault(t *testing.T) {
	l, _ := newTestLocal(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.txt")
	writeFile(t, file, "x")

	assert.NoError(t, l.LaunchDefault(location.FromPath(file)))

	missing := NewLocal(WithOpener("casper-no-such-opener"))
	err := missing.LaunchDefault(location.FromPath(file))
	require.Error(t, err)
	assert.True(t, errors.IsNoApplication(err))

	err = l.LaunchDefault(location.FromPath(filepath.Join(dir, "gone")))
	assert.True(t, errors.IsFileNotFound(err))
}

func TestKindString(t *testing.T) {
	names := []string{Directory.String(), RegularFile.String(), Other.String()}
	sort.Strings(names)
	assert.Equal(t, []string{"directory", "file", "other"}, names)
}
