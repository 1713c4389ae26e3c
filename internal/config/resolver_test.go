package config

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuesfc/vuec/internal/output"
)

func ptr[T any](v T) *T { return &v }

func valueFor(t *testing.T, r *Resolved, key string) ResolvedValue {
	t.Helper()
	for _, v := range r.Values {
		if v.Key == key {
			return v
		}
	}
	t.Fatalf("no resolved value for %q", key)
	return ResolvedValue{}
}

func TestResolve_Defaults(t *testing.T) {
	r, err := Resolve(ResolveOptions{})
	require.NoError(t, err)

	assert.True(t, r.Runtime)
	assert.False(t, r.OutputSourceRange)
	assert.Equal(t, []string{DefaultSrc}, r.Src)
	assert.Equal(t, DefaultDest, r.Dest)
	assert.Equal(t, 0, r.Concurrency)
	assert.True(t, r.Timestamps)

	for _, v := range r.Values {
		assert.Equal(t, SourceDefault, v.Source, v.Key)
		assert.Empty(t, v.Shadowed, v.Key)
	}
}

func TestResolve_FlagPrecedence(t *testing.T) {
	t.Setenv(EnvDest, "env-dest")
	t.Setenv(EnvRuntime, "true")

	r, err := Resolve(ResolveOptions{
		Config:  &Config{Dest: "config-dest", Runtime: ptr(true)},
		Dest:    "flag-dest",
		Runtime: ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "flag-dest", r.Dest)
	dest := valueFor(t, r, "dest")
	assert.Equal(t, SourceFlag, dest.Source)
	assert.Equal(t, "env-dest", dest.Shadowed[SourceEnv])
	assert.Equal(t, "config-dest", dest.Shadowed[SourceConfig])
	assert.Equal(t, DefaultDest, dest.Shadowed[SourceDefault])

	assert.False(t, r.Runtime)
	assert.Equal(t, SourceFlag, valueFor(t, r, "runtime").Source)
}

func TestResolve_EnvPrecedence(t *testing.T) {
	t.Setenv(EnvOutputSourceRange, "true")
	t.Setenv(EnvConcurrency, "3")

	r, err := Resolve(ResolveOptions{
		Config: &Config{OutputSourceRange: ptr(false), Concurrency: ptr(8)},
	})
	require.NoError(t, err)

	assert.True(t, r.OutputSourceRange)
	assert.Equal(t, 3, r.Concurrency)

	conc := valueFor(t, r, "concurrency")
	assert.Equal(t, SourceEnv, conc.Source)
	assert.Equal(t, 8, conc.Shadowed[SourceConfig])
	assert.NotContains(t, conc.Shadowed, SourceFlag)
}

func TestResolve_ConfigFallback(t *testing.T) {
	r, err := Resolve(ResolveOptions{
		Config: &Config{
			Src: []string{"src/**/*.vue"},
			Log: LogConfig{Timestamps: ptr(false)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/**/*.vue"}, r.Src)
	assert.False(t, r.Timestamps)
	assert.Equal(t, SourceConfig, valueFor(t, r, "src").Source)
	assert.Equal(t, SourceConfig, valueFor(t, r, "log.timestamps").Source)
}

func TestResolve_FlagSrcOverridesConfig(t *testing.T) {
	r, err := Resolve(ResolveOptions{
		Config: &Config{Src: []string{"src/**/*.vue"}},
		Src:    []string{"components/*.vue"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"components/*.vue"}, r.Src)
}

func TestResolve_InvalidEnv(t *testing.T) {
	t.Run("boolean", func(t *testing.T) {
		t.Setenv(EnvRuntime, "maybe")
		_, err := Resolve(ResolveOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvRuntime)
	})

	t.Run("integer", func(t *testing.T) {
		t.Setenv(EnvConcurrency, "many")
		_, err := Resolve(ResolveOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvConcurrency)
	})
}

func TestResolve_NegativeConcurrency(t *testing.T) {
	_, err := Resolve(ResolveOptions{Concurrency: ptr(-1)})
	require.Error(t, err)
}

func TestResolveConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	defaultPath := filepath.Join(home, ".vuec", "config.yaml")

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(EnvConfig, "/env/vuec.yaml")

		result, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: "/flag/vuec.yaml"})
		require.NoError(t, err)

		assert.Equal(t, "/flag/vuec.yaml", result.ConfigPath)
		assert.Equal(t, SourceFlag, result.Source)
		assert.Equal(t, "/env/vuec.yaml", result.Shadowed[SourceEnv])
		assert.Equal(t, defaultPath, result.Shadowed[SourceDefault])
	})

	t.Run("env over default", func(t *testing.T) {
		t.Setenv(EnvConfig, "/env/vuec.yaml")

		result, err := ResolveConfigPath(ResolveConfigPathOptions{})
		require.NoError(t, err)

		assert.Equal(t, "/env/vuec.yaml", result.ConfigPath)
		assert.Equal(t, SourceEnv, result.Source)
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvConfig, "")

		result, err := ResolveConfigPath(ResolveConfigPathOptions{})
		require.NoError(t, err)

		assert.Equal(t, defaultPath, result.ConfigPath)
		assert.Equal(t, SourceDefault, result.Source)
		assert.Empty(t, result.Shadowed)
	})
}

func TestLogResolvedValues(t *testing.T) {
	var buf bytes.Buffer
	output.SetupLogging(output.LogConfig{Verbose: true})
	output.SetLogWriter(&buf)
	t.Cleanup(func() {
		output.SetupLogging(output.LogConfig{})
	})

	LogResolvedValues([]ResolvedValue{{
		Key:      "dest",
		Value:    "dist",
		Source:   SourceFlag,
		Shadowed: map[ConfigSource]any{SourceConfig: "build"},
	}})

	out := buf.String()
	assert.Contains(t, out, "config value resolved")
	assert.Contains(t, out, "dist")
	assert.Contains(t, out, "shadowed by higher precedence")
	assert.Contains(t, out, "build")
}
