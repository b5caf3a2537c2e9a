// Package testutils builds folder fixtures for tests across packages.
package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// CreateTree creates files under dir. Names ending in "/" become folders;
// intermediate folders are created as needed.
func CreateTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// CreateHome returns a temporary home holding Music/, docs/ and notes.txt
// ("hello"), the fixture the front-end tests share.
func CreateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	CreateTree(t, home, map[string]string{
		"Music/":    "",
		"docs/":     "",
		"notes.txt": "hello",
	})
	return home
}

// StripANSI removes terminal escape sequences from rendered output.
func StripANSI(s string) string {
	return ansi.Strip(s)
}
