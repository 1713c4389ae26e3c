package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/vuesfc/vuec/internal/config"
	oerrors "github.com/vuesfc/vuec/internal/errors"
	"github.com/vuesfc/vuec/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the vuec configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. Every key is known and every value has the right type

The config path is resolved using precedence:
  --config flag > VUEC_CONFIG env > ./vuec.yaml > ~/.vuec/config.yaml

Examples:
  # Validate default configuration
  vuec config vet

  # Validate custom config path
  vuec config vet --config /path/to/vuec.yaml`,
		RunE: runConfigVet,
	}

	return cmd
}

func runConfigVet(cmd *cobra.Command, args []string) error {
	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: configFlag,
	})
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}

	configPath, err := config.ExpandPath(pathResult.ConfigPath)
	if err != nil {
		return err
	}

	output.Debug("validating config",
		"path", configPath,
		"source", pathResult.Source,
	)

	// Check 1: Config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: configPath,
			Hint:     "Run 'vuec config init' to create default configuration",
			Cause:    oerrors.ErrNotFound,
		}
	}

	// Checks 2 and 3: YAML and schema
	validator, err := config.NewValidator()
	if err != nil {
		return err
	}
	if err := validator.ValidateFile(configPath); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			return oerrors.NewValidationError(verrs.Error(), configPath,
				"Run 'vuec config init --force' to regenerate a valid file.")
		}
		return err
	}

	output.Println(output.FormatCheckmark("Config is valid: " + output.StyleNoun.Render(configPath)))
	return nil
}
