package pipeline

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/vuesfc/vuec/internal/diagnostics"
	"github.com/vuesfc/vuec/internal/sfc"
)

// Pipeline compiles one component file into its artifacts.
type Pipeline interface {
	// Compile runs every stage for file and returns once all of them have
	// settled.
	//
	// A nil result with a nil error means the file was skipped. Template and
	// style problems go to sink and never fail the call; only contract
	// violations (streamed input, a failing capability) return a FileError.
	Compile(ctx context.Context, file *SourceFile, sink diagnostics.Sink) (*Result, error)
}

// Options configures code generation.
type Options struct {
	// Runtime compiles templates to render functions. When false the raw
	// template string is attached for compilation in the browser.
	Runtime bool

	// OutputSourceRange renders template errors with a code frame when the
	// template compiler supports it.
	OutputSourceRange bool

	// Parse configures the block parser.
	Parse sfc.ParseOptions
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Runtime: true,
		Parse:   sfc.DefaultParseOptions(),
	}
}

// SourceFile is one input handed over by the I/O adapter.
type SourceFile struct {
	// Path is where the file was read from.
	Path string

	// Base is the directory Relative is resolved against.
	Base string

	// Relative is the slash-separated path below Base. It seeds the scope
	// id and is embedded in the module and in diagnostics.
	Relative string

	// Contents is the whole file. Nil means the file has no content.
	Contents []byte

	// Stream is set when the file is delivered in chunks.
	Stream io.Reader
}

// IsNull reports whether the file has no content at all.
func (f *SourceFile) IsNull() bool {
	return f.Contents == nil && f.Stream == nil
}

// IsStream reports whether the file is delivered as a stream.
func (f *SourceFile) IsStream() bool {
	return f.Stream != nil
}

// Artifact is an output file derived from a SourceFile. It keeps the
// source's base and relative path with a new extension.
type Artifact struct {
	Base     string `json:"base" yaml:"base"`
	Relative string `json:"relative" yaml:"relative"`
	Contents []byte `json:"-" yaml:"-"`
}

// derive returns an artifact for f with its extension replaced by ext.
func derive(f *SourceFile, ext string, contents string) *Artifact {
	rel := strings.TrimSuffix(f.Relative, path.Ext(f.Relative)) + ext
	return &Artifact{
		Base:     f.Base,
		Relative: rel,
		Contents: []byte(contents),
	}
}

// Result holds the artifacts of one compiled file.
type Result struct {
	// Module is always present.
	Module *Artifact

	// Style is nil when no style block produced CSS.
	Style *Artifact

	Descriptor *sfc.Descriptor
	ScopeID    string

	// Warnings and Errors count the diagnostics sent to the sink.
	Warnings int
	Errors   int
}
