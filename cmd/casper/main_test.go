package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"casper/internal/config"
	"casper/internal/location"
	"casper/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with a config file that does not exist,
// so every run starts from the defaults.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	return executeWith(t, cfgFile, args...)
}

func executeWith(t *testing.T, cfgFile string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgFile}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "casper dev\n", out)
}

func TestLsCommand(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTree(t, dir, map[string]string{
		"docs/": "",
		"b.txt": "12345",
		"A.txt": "",
	})

	out, err := execute(t, "ls", dir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "A.txt"))
	assert.True(t, strings.HasPrefix(lines[1], "b.txt"))
	assert.Contains(t, lines[1], "5 B")
	assert.True(t, strings.HasPrefix(lines[2], "docs/"))
}

func TestLsCommandMissingFolder(t *testing.T) {
	_, err := execute(t, "ls", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestLsCommandColonInName(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTree(t, dir, map[string]string{"docs:2024/report.txt": "x"})
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	out, err := execute(t, "ls", "docs:2024")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "report.txt"))

	out, err = execute(t, "ls", location.FromPath(filepath.Join(dir, "docs:2024")).URI())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "report.txt"))
}

func TestSidebarCommand(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(home, "Music"), 0o755))
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("sidebar:\n  show_mounts: false\n"), 0o644))

	out, err := executeWith(t, cfgFile, "sidebar")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Home"))
	assert.Contains(t, lines[0], home)
	assert.Equal(t, "--", strings.TrimSpace(lines[1]))
	assert.True(t, strings.HasPrefix(lines[2], "Music"))
	assert.Contains(t, lines[2], filepath.Join(home, "Music"))
	assert.True(t, strings.HasPrefix(lines[4], "Trash"))
	assert.Contains(t, lines[4], "trash:///")
}

func TestConfigCommands(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := executeWith(t, cfgFile, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, cfgFile+"\n", out)

	out, err = executeWith(t, cfgFile, "config", "init", "--theme", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+cfgFile)

	cfg, err := config.LoadConfigFile(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme.Name)

	_, err = executeWith(t, cfgFile, "config", "init")
	assert.Error(t, err, "existing file is kept without --force")

	_, err = executeWith(t, cfgFile, "config", "init", "--force")
	assert.NoError(t, err)

	out, err = executeWith(t, cfgFile, "config", "themes")
	require.NoError(t, err)
	assert.Contains(t, out, "monochrome")
}

func TestBrokenConfigFallsBackToDefaults(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("view: [unclosed"), 0o644))

	out, err := executeWith(t, cfgFile, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Using default settings.")
}
