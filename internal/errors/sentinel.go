package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a configuration schema validation failure.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a source file or pattern matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrStreamingNotSupported indicates a source file was delivered as a
	// stream instead of a whole buffer.
	ErrStreamingNotSupported = errors.New("streaming not supported")

	// ErrCompile indicates one or more files could not be compiled.
	ErrCompile = errors.New("compile error")
)
