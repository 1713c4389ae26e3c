package cmd

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vuesfc/vuec/internal/config"
	oerrors "github.com/vuesfc/vuec/internal/errors"
	"github.com/vuesfc/vuec/internal/output"
)

// configHeader is written above the generated defaults.
const configHeader = `# vuec configuration.
# Precedence: flag > env (VUEC_*) > this file > built-in default.
`

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	var (
		forceFlag bool
		localFlag bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Write a configuration file holding every default value.

The file is written to ~/.vuec/config.yaml, to ./vuec.yaml with --local,
or to the path given by --config.

Examples:
  # Initialize the user configuration
  vuec config init

  # Initialize a project configuration
  vuec config init --local

  # Overwrite existing configuration
  vuec config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(forceFlag, localFlag)
		},
	}

	cmd.Flags().BoolVarP(&forceFlag, "force", "f", false,
		"Overwrite existing configuration")
	cmd.Flags().BoolVar(&localFlag, "local", false,
		"Write vuec.yaml in the working directory")

	return cmd
}

func runConfigInit(force, local bool) error {
	target, err := configInitTarget(local)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine config location")
	}

	if _, err := os.Stat(target); err == nil && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: target,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config.DefaultConfig()); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o700); err != nil {
		return oerrors.Wrap(err, "could not create config directory")
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o600); err != nil {
		return oerrors.Wrap(err, "could not write config file")
	}

	output.Println(output.FormatCheckmark("Configuration initialized at " + output.StyleNoun.Render(target)))
	output.Println("Validate with: vuec config vet")

	return nil
}

func configInitTarget(local bool) (string, error) {
	if configFlag != "" {
		return config.ExpandPath(configFlag)
	}
	if local {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(wd, config.LocalConfigFile), nil
	}
	paths, err := config.DefaultPaths()
	if err != nil {
		return "", err
	}
	return paths.ConfigFile, nil
}
