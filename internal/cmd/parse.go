package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	oerrors "github.com/vuesfc/vuec/internal/errors"
	"github.com/vuesfc/vuec/internal/output"
	"github.com/vuesfc/vuec/internal/sfc"
)

// NewParseCmd creates the parse command.
func NewParseCmd() *cobra.Command {
	var (
		outputFlag   string
		filenameFlag string
		padFlag      string
	)

	c := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the block descriptor of a component",
		Long: `Split a component into its top-level blocks and print the descriptor.

Arguments:
  file    Path to a .vue file, or - to read standard input

Examples:
  # Show the blocks of a component as YAML
  vuec parse components/Button.vue

  # As JSON, without line padding
  vuec parse components/Button.vue -o json --pad none`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runParse(c, args[0], filenameFlag, outputFlag, padFlag)
		},
	}

	c.Flags().StringVarP(&outputFlag, "output", "o", "yaml",
		"Output format: yaml, json")
	c.Flags().StringVar(&filenameFlag, "filename", "",
		"Relative path recorded in the descriptor (default: the file argument, or stdin.vue)")
	c.Flags().StringVar(&padFlag, "pad", string(sfc.PadLine),
		"Pad script and style content: line, space, none")

	return c
}

func runParse(c *cobra.Command, arg, filename, outputFmt, pad string) error {
	format, valid := output.ParseFormat(outputFmt)
	if !valid || format == output.FormatText {
		return exitError(fmt.Errorf("invalid output format %q (valid: yaml, json): %w",
			outputFmt, oerrors.ErrValidation), false)
	}

	opts := sfc.DefaultParseOptions()
	switch pad {
	case string(sfc.PadLine), string(sfc.PadSpace):
		opts.Pad = sfc.PadMode(pad)
	case "none":
		opts.Pad = sfc.PadNone
	default:
		return exitError(fmt.Errorf("invalid pad mode %q (valid: line, space, none): %w",
			pad, oerrors.ErrValidation), false)
	}

	file, err := readSource(c.InOrStdin(), arg, filename)
	if err != nil {
		return exitError(err, false)
	}

	desc := sfc.Parse(string(file.Contents), file.Relative, opts)
	for _, w := range desc.Warnings {
		output.FileLogger(file.Relative).Warn(w)
	}

	if err := output.WriteStructured(c.OutOrStdout(), format, desc); err != nil {
		return exitError(fmt.Errorf("writing descriptor: %w", err), false)
	}
	return nil
}
