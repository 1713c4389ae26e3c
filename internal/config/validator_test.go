package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "valid full config",
			content: `runtime: true
outputSourceRange: false
src: ["src/**/*.vue"]
dest: dist
concurrency: 2
log:
  timestamps: false
`,
		},
		{name: "empty file", content: ""},
		{name: "unknown key", content: "registry: ghcr.io\n", wantErr: "registry"},
		{name: "unknown nested key", content: "log:\n  level: debug\n", wantErr: "log.level"},
		{name: "wrong type", content: "runtime: yes please\n", wantErr: "runtime"},
		{name: "negative concurrency", content: "concurrency: -1\n", wantErr: "concurrency"},
		{name: "empty dest", content: "dest: \"\"\n", wantErr: "dest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate("vuec.yaml", []byte(tt.content))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidator_DefaultConfigIsValid(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	data, err := yaml.Marshal(DefaultConfig())
	require.NoError(t, err)

	assert.NoError(t, v.Validate("vuec.yaml", data))
}

func TestValidator_ValidateFile(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "vuec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dest: dist\n"), 0o644))
	assert.NoError(t, v.ValidateFile(path))

	err = v.ValidateFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidationErrors_Error(t *testing.T) {
	assert.Equal(t, "no validation errors", ValidationErrors{}.Error())

	errs := ValidationErrors{
		{Field: "dest", Message: "invalid value"},
		{Message: "invalid YAML"},
	}
	assert.Equal(t, "config validation failed:\n  dest: invalid value\n  invalid YAML\n", errs.Error())
}
