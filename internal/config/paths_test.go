package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	paths, err := DefaultPaths()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".vuec"), paths.HomeDir)
	assert.Equal(t, filepath.Join(home, ".vuec", "config.yaml"), paths.ConfigFile)
}

func TestDefaultConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Run("falls back to home config", func(t *testing.T) {
		t.Chdir(t.TempDir())

		path, err := DefaultConfigFile()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".vuec", "config.yaml"), path)
	})

	t.Run("prefers vuec.yaml in working directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, LocalConfigFile), nil, 0o644))
		t.Chdir(dir)

		path, err := DefaultConfigFile()
		require.NoError(t, err)
		assert.Equal(t, LocalConfigFile, filepath.Base(path))
	})
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty path", input: "", expected: ""},
		{name: "absolute path", input: "/absolute/path", expected: "/absolute/path"},
		{name: "relative path", input: "relative/path", expected: "relative/path"},
		{name: "home directory only", input: "~", expected: homeDir},
		{name: "path with tilde", input: "~/some/path", expected: filepath.Join(homeDir, "some/path")},
		{name: "other user", input: "~bob/path", expected: "~bob/path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(existing, nil, 0o644))

	ok, err := FileExists(existing)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = FileExists(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.False(t, ok)
}
