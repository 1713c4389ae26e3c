//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	assert.NotEqual(t, ErrValidation, ErrNotFound)
	assert.NotEqual(t, ErrValidation, ErrStreamingNotSupported)
	assert.NotEqual(t, ErrCompile, ErrStreamingNotSupported)
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "validation failed",
		Message:  "concurrency: conflicting values -1 and >=0",
		Location: "vuec.yaml",
		Hint:     "Run 'vuec config init' to regenerate defaults",
	}

	out := detail.Error()

	assert.Contains(t, out, "Error: validation failed")
	assert.Contains(t, out, "Location: vuec.yaml")
	assert.Contains(t, out, "conflicting values")
	assert.Contains(t, out, "Hint: Run 'vuec config init'")
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{Type: "test", Message: "test message", Cause: ErrValidation}

	assert.True(t, errors.Is(detail, ErrValidation))
	assert.Equal(t, ErrValidation, detail.Unwrap())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("bad value", "vuec.yaml", "fix it")

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "validation failed", detail.Type)
	assert.Equal(t, "bad value", detail.Message)
	assert.Equal(t, "vuec.yaml", detail.Location)
	assert.Equal(t, "fix it", detail.Hint)
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("no files matched", "src/**/*.vue", "")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrStreamingNotSupported, "App.vue")

	assert.True(t, errors.Is(wrapped, ErrStreamingNotSupported))
	assert.Equal(t, "App.vue: streaming not supported", wrapped.Error())
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"exit error", &ExitError{Code: 42, Err: errors.New("x")}, 42},
		{"validation", fmt.Errorf("config: %w", ErrValidation), ExitValidationError},
		{"not found", NewNotFoundError("x", "", ""), ExitNotFound},
		{"compile", Wrap(ErrCompile, "2 files failed"), ExitCompileError},
		{"streaming", Wrap(ErrStreamingNotSupported, "a.vue"), ExitCompileError},
		{"other", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Success", ExitCodeName(ExitSuccess))
	assert.Equal(t, "Compile Error", ExitCodeName(ExitCompileError))
	assert.Equal(t, "Unknown", ExitCodeName(99))
}
