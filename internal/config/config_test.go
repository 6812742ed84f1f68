package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TODO_CONFIG", "")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "classic", c.UI.Theme)
	assert.Equal(t, "auto", c.UI.Color)
	assert.Equal(t, "info", c.Log.Level)
	assert.Empty(t, c.Log.File)
	assert.True(t, c.DevTools.Enabled)
	assert.Equal(t, 50, c.DevTools.MaxAge)
	assert.Empty(t, c.DevTools.Export)
}

func TestLoad_FileAndEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[ui]
theme = "neon"

[devtools]
max_age = 10
export = "/tmp/session.json"
`), 0o644))
	t.Setenv("TODO_LOG_LEVEL", "debug")
	t.Setenv("TODO_DEVTOOLS_ENABLED", "false")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "neon", c.UI.Theme)
	assert.Equal(t, 10, c.DevTools.MaxAge)
	assert.Equal(t, "/tmp/session.json", c.DevTools.Export)
	assert.Equal(t, "debug", c.Log.Level)
	assert.False(t, c.DevTools.Enabled)
}

func TestLoad_ConfigEnvPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "todo.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ncolor = \"never\"\n"), 0o644))
	t.Setenv("TODO_CONFIG", path)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "never", c.UI.Color)
}

func TestLoad_DefaultLocation(t *testing.T) {
	isolate(t)
	dir := filepath.Join(os.Getenv("HOME"), ".config", "todo")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[ui]\ntheme = \"mono\"\n"), 0o644))

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mono", c.UI.Theme)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestLoad_BadLevel(t *testing.T) {
	isolate(t)
	t.Setenv("TODO_LOG_LEVEL", "chatty")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatty")
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)
}
