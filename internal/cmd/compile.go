package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vuesfc/vuec/internal/build"
	"github.com/vuesfc/vuec/internal/diagnostics"
	oerrors "github.com/vuesfc/vuec/internal/errors"
	"github.com/vuesfc/vuec/internal/pipeline"
)

// cssMarker separates the module from the stylesheet in compile output.
const cssMarker = "/* css */"

// stdinArg reads the component from standard input.
const stdinArg = "-"

// NewCompileCmd creates the compile command.
func NewCompileCmd() *cobra.Command {
	var filenameFlag string

	c := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile one component to stdout",
		Long: `Compile a single component and print the module to stdout. When the
component has styles, the stylesheet follows a /* css */ marker line.

Arguments:
  file    Path to a .vue file, or - to read standard input

Examples:
  # Print the compiled module of one component
  vuec compile components/Button.vue

  # Compile from stdin; the filename seeds the scope id
  cat Button.vue | vuec compile - --filename components/Button.vue`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runCompile(c.Context(), c, args[0], filenameFlag)
		},
	}

	c.Flags().StringVar(&filenameFlag, "filename", "",
		"Relative path used for the scope id and diagnostics (default: the file argument, or stdin.vue)")

	return c
}

func runCompile(ctx context.Context, c *cobra.Command, arg, filename string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	file, err := readSource(c.InOrStdin(), arg, filename)
	if err != nil {
		return exitError(err, false)
	}

	rec := &diagnostics.Recorder{}
	res, err := newPipeline().Compile(ctx, file, rec)
	rec.Replay(build.LogSinkFor(file.Relative))
	if err != nil {
		return exitError(err, false)
	}
	if res == nil {
		return nil
	}

	out := c.OutOrStdout()
	fmt.Fprintln(out, string(res.Module.Contents))
	if res.Style != nil {
		fmt.Fprintln(out, cssMarker)
		fmt.Fprintln(out, string(res.Style.Contents))
	}
	return nil
}

// readSource reads a component from a path or, for "-", from stdin. An
// empty file yields a SourceFile with no contents.
func readSource(stdin io.Reader, arg, filename string) (*pipeline.SourceFile, error) {
	var (
		contents []byte
		err      error
	)
	if arg == stdinArg {
		contents, err = io.ReadAll(stdin)
		if filename == "" {
			filename = "stdin.vue"
		}
	} else {
		contents, err = os.ReadFile(arg)
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("component file not found", arg, "")
		}
		if filename == "" {
			filename = arg
		}
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", arg, err)
	}
	if len(contents) == 0 {
		contents = nil
	}

	base, rel := ".", filepath.ToSlash(filepath.Clean(filename))
	if filepath.IsAbs(filename) {
		base = filepath.Dir(filename)
		rel = filepath.Base(filename)
	}

	return &pipeline.SourceFile{
		Path:     arg,
		Base:     base,
		Relative: rel,
		Contents: contents,
	}, nil
}
