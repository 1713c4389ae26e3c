// Package compiler defines the capability contracts the compile pipeline
// orchestrates: a template compiler that turns template markup into render
// function code, and a style compiler that turns style blocks into
// (optionally scoped) CSS. Concrete engines live in sub-packages.
package compiler

import (
	"context"
	"fmt"
)

// Message is a diagnostic produced by a capability.
type Message struct {
	Msg string `json:"msg" yaml:"msg"`

	// Start and End are byte offsets into the compiled source when
	// HasRange is true.
	Start    int  `json:"start,omitempty" yaml:"start,omitempty"`
	End      int  `json:"end,omitempty" yaml:"end,omitempty"`
	HasRange bool `json:"-" yaml:"-"`
}

// String returns the message text.
func (m Message) String() string {
	return m.Msg
}

// Errorf builds a message without a source range.
func Errorf(format string, args ...any) Message {
	return Message{Msg: fmt.Sprintf(format, args...)}
}

// RangeErrorf builds a message covering source[start:end].
func RangeErrorf(start, end int, format string, args ...any) Message {
	return Message{Msg: fmt.Sprintf(format, args...), Start: start, End: end, HasRange: true}
}

// TemplateInput is the input to a template compiler.
type TemplateInput struct {
	Source       string
	Filename     string
	Lang         string
	IsFunctional bool
}

// TemplateResult is the output of a template compiler.
type TemplateResult struct {
	// Code binds render and staticRenderFns.
	Code string

	// Source is the template source that was compiled.
	Source string

	Tips   []Message
	Errors []Message
}

// TemplateCompiler compiles template markup to render function code.
// Compilation problems are reported in the result; a returned error means
// the capability itself failed and the file cannot be compiled.
type TemplateCompiler interface {
	CompileTemplate(ctx context.Context, in TemplateInput) (*TemplateResult, error)
}

// CodeFramer is implemented by template compilers that can render a
// source frame around an error range.
type CodeFramer interface {
	CodeFrame(source string, start, end int) string
}

// StyleInput is the input to a style compiler.
type StyleInput struct {
	Source   string
	Filename string

	// ID is the scope id injected into selectors when Scoped is set.
	ID     string
	Scoped bool
	Trim   bool

	// PreprocessLang is the declared style language, "css" by default.
	PreprocessLang string
}

// StyleResult is the output of a style compiler.
type StyleResult struct {
	Code   string
	Errors []Message
}

// StyleCompiler compiles one style block to CSS. Like TemplateCompiler,
// problems go in the result and a returned error is reserved for failures
// of the capability itself.
type StyleCompiler interface {
	CompileStyle(ctx context.Context, in StyleInput) (*StyleResult, error)
}
