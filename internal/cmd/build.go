package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vuesfc/vuec/internal/build"
	oerrors "github.com/vuesfc/vuec/internal/errors"
	"github.com/vuesfc/vuec/internal/output"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	var (
		dryRunFlag bool
		reportFlag string
	)

	c := &cobra.Command{
		Use:   "build [globs...]",
		Short: "Compile components to modules and stylesheets",
		Long: `Compile every component matched by the given globs.

Each component produces <dest>/<relative>.js and, when it has styles,
<dest>/<relative>.css. The relative path is the file's path below the
static prefix of the glob that matched it.

Arguments:
  globs    Doublestar globs (default: config src, else ./**/*.vue)

Examples:
  # Build every component below the working directory
  vuec build

  # Build one tree into dist
  vuec build 'src/components/**/*.vue' --dest dist

  # Compile without writing and print a JSON report
  vuec build --dry-run --report json`,
		RunE: func(c *cobra.Command, args []string) error {
			return runBuild(c.Context(), c, args, dryRunFlag, reportFlag)
		},
	}

	c.Flags().BoolVar(&dryRunFlag, "dry-run", false,
		"Compile without writing artifacts")
	c.Flags().StringVar(&reportFlag, "report", "",
		"Print a build report to stdout: yaml, json")

	return c
}

func runBuild(ctx context.Context, c *cobra.Command, args []string, dryRun bool, reportFmt string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reportFormat, valid := output.ParseFormat(reportFmt)
	if !valid {
		return exitError(fmt.Errorf("invalid report format %q (valid: yaml, json): %w",
			reportFmt, oerrors.ErrValidation), false)
	}

	cfg := GetResolvedConfig()
	opts := build.Options{
		Patterns:    sourcePatterns(args),
		Dest:        cfg.Dest,
		Concurrency: cfg.Concurrency,
		DryRun:      dryRun,
		Pipeline:    pipelineOptions(),
	}

	builder := build.NewBuilder(newPipeline(), opts, build.LogSinkFor)

	var (
		report *build.Report
		runErr error
	)
	action := func() error {
		report, runErr = builder.Run(ctx)
		return nil
	}
	if reportFormat == output.FormatText {
		if err := output.RunWithSpinner(ctx, action, output.WithTitle("Compiling components...")); err != nil {
			return exitError(err, false)
		}
	} else {
		_ = action()
	}

	if report == nil {
		return exitError(runErr, false)
	}

	if reportFormat != output.FormatText {
		if err := output.WriteStructured(c.OutOrStdout(), reportFormat, report); err != nil {
			return exitError(fmt.Errorf("writing report: %w", err), false)
		}
	} else {
		printBuild(report)
	}

	if runErr != nil {
		output.Error(runErr.Error())
		return exitError(runErr, true)
	}
	return nil
}

func printBuild(report *build.Report) {
	if report.DryRun {
		var entries []output.TreeEntry
		for _, f := range report.Files {
			note := ""
			if f.Result != nil && f.Result.Descriptor.Scoped() {
				note = f.ScopeID
			}
			for _, a := range f.Artifacts {
				rel, err := filepath.Rel(report.Dest, a)
				if err != nil {
					rel = a
				}
				entries = append(entries, output.TreeEntry{
					Path:   filepath.ToSlash(rel),
					Status: output.StatusAdded,
					Note:   note,
				})
			}
		}
		if tree := output.RenderArtifactTree(report.Dest, entries); tree != "" {
			output.Println(tree)
		}
	} else {
		for _, f := range report.Files {
			for _, a := range f.Artifacts {
				output.Println(output.FormatArtifactLine(a, output.StatusWritten))
			}
		}
	}

	for _, f := range report.Files {
		switch {
		case f.Failed():
			output.Println(output.FormatArtifactLine(f.Source, output.StatusFailed))
		case f.Skipped:
			output.Debug("skipped empty file", "file", f.Source)
		}
	}

	if verboseFlag {
		output.Println(build.PhaseTable(report.Phases))
	}

	s := report.Summary
	summary := output.FormatSummary(s.Compiled, s.Artifacts, s.Warnings, s.Errors)
	if s.Failed == 0 {
		summary = output.FormatCheckmark(summary)
	}
	output.Println(summary)
}
