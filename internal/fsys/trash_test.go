package fsys

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"casper/internal/errors"
	"casper/internal/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrash(t *testing.T) {
	l, data := newTestLocal(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "report final.txt")
	writeFile(t, file, "bye")

	require.NoError(t, l.Trash(location.FromPath(file)))

	_, err := os.Stat(file)
	assert.True(t, os.IsNotExist(err))
	assert.FileExists(t, filepath.Join(data, "Trash", "files", "report final.txt"))

	info, err := os.ReadFile(filepath.Join(data, "Trash", "info", "report final.txt.trashinfo"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(info), "[Trash Info]\n"))
	assert.Contains(t, string(info), "Path="+strings.ReplaceAll(file, " ", "%20"))
	assert.Contains(t, string(info), "DeletionDate=")

	children, err := l.EnumerateChildren(location.Trash)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "report final.txt", children[0].Name)

	from, err := l.TrashedFrom(location.Trash.Child("report final.txt"))
	require.NoError(t, err)
	assert.Equal(t, file, from)
}

func TestTrashNameCollision(t *testing.T) {
	l, data := newTestLocal(t)
	dir := t.TempDir()

	for i := 0; i < 3; i++ {
		file := filepath.Join(dir, "a.txt")
		writeFile(t, file, "v")
		require.NoError(t, l.Trash(location.FromPath(file)))
	}

	files := filepath.Join(data, "Trash", "files")
	assert.FileExists(t, filepath.Join(files, "a.txt"))
	assert.FileExists(t, filepath.Join(files, "a.2.txt"))
	assert.FileExists(t, filepath.Join(files, "a.3.txt"))
	assert.FileExists(t, filepath.Join(data, "Trash", "info", "a.3.txt.trashinfo"))
}

func TestTrashErrors(t *testing.T) {
	l, _ := newTestLocal(t)

	err := l.Trash(location.FromPath(filepath.Join(t.TempDir(), "missing")))
	assert.Error(t, err)

	err = l.Trash(location.Trash.Child("x"))
	assert.Error(t, err)
}

func TestMoveOutOfTrashForgetsInfo(t *testing.T) {
	l, data := newTestLocal(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "keep.txt")
	writeFile(t, file, "k")
	require.NoError(t, l.Trash(location.FromPath(file)))

	require.NoError(t, l.Move(location.Trash.Child("keep.txt"), location.FromPath(file)))
	assert.FileExists(t, file)
	_, err := os.Stat(filepath.Join(data, "Trash", "info", "keep.txt.trashinfo"))
	assert.True(t, os.IsNotExist(err))
}

func TestEnumerateEmptyTrash(t *testing.T) {
	l, data := newTestLocal(t)

	children, err := l.EnumerateChildren(location.Trash)
	require.NoError(t, err)
	assert.Empty(t, children)
	assert.NoDirExists(t, filepath.Join(data, "Trash"))

	_, err = l.EnumerateChildren(location.Trash.Child("missing"))
	assert.True(t, errors.IsFileNotFound(err))
}
