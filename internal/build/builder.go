package build

import (
	"context"
	"fmt"
	"time"

	oerrors "github.com/vuesfc/vuec/internal/errors"
	"github.com/vuesfc/vuec/internal/output"
	"github.com/vuesfc/vuec/internal/pipeline"
)

// Phase names, in run order.
const (
	PhaseDiscover = "discover"
	PhaseCompile  = "compile"
	PhaseWrite    = "write"
)

// Builder runs the discover, compile and write phases.
type Builder struct {
	opts     Options
	executor *Executor
}

// NewBuilder creates a Builder compiling with p. A nil sinkFor flushes
// diagnostics to the logger.
func NewBuilder(p pipeline.Pipeline, opts Options, sinkFor SinkFunc) *Builder {
	return &Builder{
		opts:     opts,
		executor: NewExecutor(p, opts.Concurrency, sinkFor),
	}
}

// Run executes a build.
//
// Discovery errors are returned with a nil report. Per-file failures do not
// stop the run: every file is attempted, the full report is returned, and
// the error wraps ErrCompile when any file failed.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	report := &Report{Dest: b.opts.Dest, DryRun: b.opts.DryRun}
	timer := newPhaseTimer()

	sources, err := Discover(b.opts.Patterns)
	if err != nil {
		return nil, err
	}
	timer.done(PhaseDiscover)

	report.Files = b.executor.Execute(ctx, sources)
	timer.done(PhaseCompile)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	writeArtifacts(b.opts.Dest, report.Files, b.opts.DryRun)
	timer.done(PhaseWrite)

	report.Phases = timer.phases
	report.summarize()

	output.Debug("build complete",
		"files", report.Summary.Files,
		"artifacts", report.Summary.Artifacts,
		"failed", report.Summary.Failed,
	)

	if report.Summary.Failed > 0 {
		return report, fmt.Errorf("%d of %d file(s) failed: %w",
			report.Summary.Failed, report.Summary.Files, oerrors.ErrCompile)
	}
	return report, nil
}

// Compile discovers and compiles without writing anything.
func (b *Builder) Compile(ctx context.Context) ([]*FileResult, error) {
	sources, err := Discover(b.opts.Patterns)
	if err != nil {
		return nil, err
	}
	results := b.executor.Execute(ctx, sources)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return results, nil
}

type phaseTimer struct {
	last   time.Time
	phases []PhaseTiming
}

func newPhaseTimer() *phaseTimer {
	return &phaseTimer{last: time.Now()}
}

func (t *phaseTimer) done(phase string) {
	now := time.Now()
	d := now.Sub(t.last)
	t.last = now
	t.phases = append(t.phases, PhaseTiming{
		Phase:    phase,
		Duration: d,
		Elapsed:  d.Round(time.Microsecond).String(),
	})
}

// PhaseTable renders phase timings as a table.
func PhaseTable(phases []PhaseTiming) string {
	tbl := output.NewTable("PHASE", "ELAPSED")
	for _, p := range phases {
		tbl.Row(p.Phase, p.Elapsed)
	}
	return tbl.String()
}
