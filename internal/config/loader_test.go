package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "vuec.yaml")
		content := `
runtime: false
outputSourceRange: true
src:
  - src/**/*.vue
dest: dist
concurrency: 4
log:
  timestamps: false
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		cfg, err := NewLoader().Load(configFile)
		require.NoError(t, err)

		require.NotNil(t, cfg.Runtime)
		assert.False(t, *cfg.Runtime)
		require.NotNil(t, cfg.OutputSourceRange)
		assert.True(t, *cfg.OutputSourceRange)
		assert.Equal(t, []string{"src/**/*.vue"}, cfg.Src)
		assert.Equal(t, "dist", cfg.Dest)
		require.NotNil(t, cfg.Concurrency)
		assert.Equal(t, 4, *cfg.Concurrency)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
	})

	t.Run("unset keys stay nil", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "vuec.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("dest: dist\n"), 0o644))

		cfg, err := NewLoader().Load(configFile)
		require.NoError(t, err)

		assert.Equal(t, "dist", cfg.Dest)
		assert.Nil(t, cfg.Runtime)
		assert.Nil(t, cfg.Concurrency)
	})

	t.Run("returns empty config for missing file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "nonexistent.yaml")

		cfg, err := NewLoader().Load(configFile)
		require.NoError(t, err)
		assert.True(t, cfg.IsEmpty())
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "vuec.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("dest: [unclosed\n"), 0o644))

		_, err := NewLoader().Load(configFile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})
}
