// Package build is the filesystem driver around the compile pipeline. It
// discovers component files, compiles them in a bounded pool, writes the
// artifacts under a destination directory and reports on the run.
package build

import (
	"time"

	"github.com/vuesfc/vuec/internal/diagnostics"
	"github.com/vuesfc/vuec/internal/pipeline"
)

// Options configures a build run.
type Options struct {
	// Patterns are doublestar globs selecting component files.
	// The static prefix of each pattern is the base of the files it matches.
	Patterns []string

	// Dest is the directory artifacts are written to.
	Dest string

	// Concurrency bounds how many files compile at once.
	// Zero means one worker per CPU.
	Concurrency int

	// DryRun compiles without writing artifacts.
	DryRun bool

	// Pipeline configures code generation.
	Pipeline pipeline.Options
}

// DefaultPatterns is used when neither flags nor config name any source.
var DefaultPatterns = []string{"./**/*.vue"}

// Source is a discovered component file.
type Source struct {
	// Path is the file path as found on disk.
	Path string

	// Base is the static prefix of the pattern that matched.
	Base string

	// Relative is the slash-separated path below Base.
	Relative string
}

// FileResult is the outcome for one source file.
type FileResult struct {
	Source    string   `json:"source" yaml:"source"`
	ScopeID   string   `json:"scopeId,omitempty" yaml:"scopeId,omitempty"`
	Artifacts []string `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
	Skipped   bool     `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Warnings  int      `json:"warnings" yaml:"warnings"`
	Errors    int      `json:"errors" yaml:"errors"`

	Diagnostics []diagnostics.Entry `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`

	// Error is the message of Err, for reports.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Err is set when the file failed as a whole.
	Err error `json:"-" yaml:"-"`

	// Result holds the compiled artifacts. Nil when skipped or failed.
	Result *pipeline.Result `json:"-" yaml:"-"`
}

// Failed reports whether the file could not be compiled or written.
func (r *FileResult) Failed() bool {
	return r.Err != nil
}

func (r *FileResult) fail(err error) {
	r.Err = err
	r.Error = err.Error()
}

// PhaseTiming is the wall time of one build phase.
type PhaseTiming struct {
	Phase    string        `json:"phase" yaml:"phase"`
	Duration time.Duration `json:"-" yaml:"-"`

	// Elapsed is Duration rendered for reports.
	Elapsed string `json:"elapsed" yaml:"elapsed"`
}

// Summary totals a build run.
type Summary struct {
	Files     int `json:"files" yaml:"files"`
	Compiled  int `json:"compiled" yaml:"compiled"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Failed    int `json:"failed" yaml:"failed"`
	Artifacts int `json:"artifacts" yaml:"artifacts"`
	Warnings  int `json:"warnings" yaml:"warnings"`
	Errors    int `json:"errors" yaml:"errors"`
}

// Report is the machine-readable result of a build run.
type Report struct {
	Dest    string        `json:"dest" yaml:"dest"`
	DryRun  bool          `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	Files   []*FileResult `json:"files" yaml:"files"`
	Phases  []PhaseTiming `json:"phases" yaml:"phases"`
	Summary Summary       `json:"summary" yaml:"summary"`
}

func (r *Report) summarize() {
	s := Summary{Files: len(r.Files)}
	for _, f := range r.Files {
		switch {
		case f.Failed():
			s.Failed++
		case f.Skipped:
			s.Skipped++
		default:
			s.Compiled++
		}
		s.Artifacts += len(f.Artifacts)
		s.Warnings += f.Warnings
		s.Errors += f.Errors
	}
	r.Summary = s
}
