package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vuesfc/vuec/internal/build"
	oerrors "github.com/vuesfc/vuec/internal/errors"
	"github.com/vuesfc/vuec/internal/output"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff [globs...]",
		Short: "Compare compiled output with artifacts on disk",
		Long: `Compile the matched components and show how the result differs from
the artifacts currently in the destination directory. Nothing is written.

Arguments:
  globs    Doublestar globs (default: config src, else ./**/*.vue)

Examples:
  # What would a build change in ./output?
  vuec diff

  # Compare one tree against dist
  vuec diff 'src/**/*.vue' --dest dist`,
		RunE: func(c *cobra.Command, args []string) error {
			return runDiff(c.Context(), c, args)
		},
	}

	return c
}

func runDiff(ctx context.Context, c *cobra.Command, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := GetResolvedConfig()
	builder := build.NewBuilder(newPipeline(), build.Options{
		Patterns:    sourcePatterns(args),
		Dest:        cfg.Dest,
		Concurrency: cfg.Concurrency,
		DryRun:      true,
		Pipeline:    pipelineOptions(),
	}, build.LogSinkFor)

	results, err := builder.Compile(ctx)
	if err != nil {
		return exitError(err, false)
	}

	diffs, err := build.Diff(cfg.Dest, results)
	if err != nil {
		return exitError(err, false)
	}

	var (
		added     []string
		modified  []output.ModifiedItem
		unchanged int
	)
	for _, d := range diffs {
		switch d.Status {
		case output.StatusAdded:
			added = append(added, d.Path)
		case output.StatusModified:
			modified = append(modified, output.ModifiedItem{Name: d.Path, Diff: d.Unified})
		default:
			unchanged++
		}
	}
	fmt.Fprintln(c.OutOrStdout(), output.RenderDiff(added, modified, unchanged))

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	if failed > 0 {
		err := fmt.Errorf("%d of %d file(s) failed: %w", failed, len(results), oerrors.ErrCompile)
		output.Error(err.Error())
		return exitError(err, true)
	}
	return nil
}
