package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg.Runtime)
	assert.True(t, *cfg.Runtime)
	require.NotNil(t, cfg.OutputSourceRange)
	assert.False(t, *cfg.OutputSourceRange)
	assert.Equal(t, []string{"./**/*.vue"}, cfg.Src)
	assert.Equal(t, "output", cfg.Dest)
	require.NotNil(t, cfg.Concurrency)
	assert.Equal(t, 0, *cfg.Concurrency)
	require.NotNil(t, cfg.Log.Timestamps)
	assert.True(t, *cfg.Log.Timestamps)
}

func TestConfigIsEmpty(t *testing.T) {
	t.Run("empty config", func(t *testing.T) {
		assert.True(t, (&Config{}).IsEmpty())
	})

	t.Run("non-empty config", func(t *testing.T) {
		assert.False(t, (&Config{Dest: "dist"}).IsEmpty())
		assert.False(t, DefaultConfig().IsEmpty())
	})
}
