package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vuesfc/vuec/internal/output"
	"github.com/vuesfc/vuec/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show vuec version information.

Displays:
  - vuec version, commit, and build date
  - Go toolchain, CUE SDK and CSS lexer versions`,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	output.Println(version.Get().String())
	return nil
}
