package build

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/vuesfc/vuec/internal/diagnostics"
	"github.com/vuesfc/vuec/internal/output"
	"github.com/vuesfc/vuec/internal/pipeline"
)

// SinkFunc returns the sink a file's diagnostics are flushed to.
type SinkFunc func(relative string) diagnostics.Sink

// LogSinkFor flushes a file's diagnostics to the global logger, prefixed
// with the file path.
func LogSinkFor(relative string) diagnostics.Sink {
	return diagnostics.NewLogSink(output.FileLogger(relative))
}

// Executor compiles source files in parallel.
type Executor struct {
	pipeline pipeline.Pipeline
	workers  int
	sinkFor  SinkFunc

	// flushMu keeps the diagnostics of one file together in the log.
	flushMu sync.Mutex
}

// NewExecutor creates an Executor with the given worker count. Zero or less
// means one worker per CPU. A nil sinkFor flushes to the logger.
func NewExecutor(p pipeline.Pipeline, workers int, sinkFor SinkFunc) *Executor {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if sinkFor == nil {
		sinkFor = LogSinkFor
	}
	return &Executor{pipeline: p, workers: workers, sinkFor: sinkFor}
}

// job is a unit of work for a worker.
type job struct {
	index  int
	source Source
}

// Execute compiles every source and returns the results in source order.
// Per-file failures are recorded on the results; Execute itself never fails.
func (e *Executor) Execute(ctx context.Context, sources []Source) []*FileResult {
	results := make([]*FileResult, len(sources))
	if len(sources) == 0 {
		return results
	}

	workerCount := e.workers
	if workerCount > len(sources) {
		workerCount = len(sources)
	}
	output.Debug("compiling files", "count", len(sources), "workers", workerCount)

	jobs := make(chan job, len(sources))
	for i, src := range sources {
		jobs <- job{index: i, source: src}
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.runWorker(ctx, jobs, results)
		}()
	}
	wg.Wait()

	return results
}

func (e *Executor) runWorker(ctx context.Context, jobs <-chan job, results []*FileResult) {
	for j := range jobs {
		select {
		case <-ctx.Done():
			r := &FileResult{Source: j.source.Relative}
			r.fail(ctx.Err())
			results[j.index] = r
		default:
			results[j.index] = e.compile(ctx, j.source)
		}
	}
}

func (e *Executor) compile(ctx context.Context, src Source) *FileResult {
	result := &FileResult{Source: src.Relative}

	contents, err := os.ReadFile(src.Path)
	if err != nil {
		result.fail(fmt.Errorf("reading %s: %w", src.Path, err))
		e.flush(src.Relative, nil, result.Err)
		return result
	}
	if len(contents) == 0 {
		output.Debug("skipping empty file", "file", src.Relative)
		result.Skipped = true
		return result
	}

	rec := &diagnostics.Recorder{}
	res, err := e.pipeline.Compile(ctx, &pipeline.SourceFile{
		Path:     src.Path,
		Base:     src.Base,
		Relative: src.Relative,
		Contents: contents,
	}, rec)
	result.Diagnostics = rec.Entries()
	if err != nil {
		result.fail(err)
		e.flush(src.Relative, rec, nil)
		return result
	}
	if res == nil {
		result.Skipped = true
		return result
	}

	result.Result = res
	result.ScopeID = res.ScopeID
	result.Warnings = res.Warnings
	result.Errors = res.Errors
	e.flush(src.Relative, rec, nil)
	return result
}

// flush sends a file's diagnostics to its sink in one go.
func (e *Executor) flush(relative string, rec *diagnostics.Recorder, fatal error) {
	e.flushMu.Lock()
	defer e.flushMu.Unlock()

	sink := e.sinkFor(relative)
	if rec != nil {
		rec.Replay(sink)
	}
	if fatal != nil {
		sink.Error(fatal.Error())
	}
}
