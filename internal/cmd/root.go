// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vuesfc/vuec/internal/compiler/style"
	"github.com/vuesfc/vuec/internal/compiler/template"
	"github.com/vuesfc/vuec/internal/config"
	oerrors "github.com/vuesfc/vuec/internal/errors"
	"github.com/vuesfc/vuec/internal/output"
	"github.com/vuesfc/vuec/internal/pipeline"
)

var (
	// Global flags
	configFlag            string
	verboseFlag           bool
	timestampsFlag        bool
	runtimeFlag           bool
	outputSourceRangeFlag bool
	destFlag              string
	concurrencyFlag       int

	// Resolved configuration (loaded during PersistentPreRunE)
	configPath     config.ResolveConfigPathResult
	resolvedConfig *config.Resolved
)

// NewRootCmd creates the root command for the vuec CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vuec",
		Short: "Vue single-file component compiler",
		Long: `vuec compiles Vue single-file components (.vue) into a JavaScript
module and a stylesheet per component.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: VUEC_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")
	rootCmd.PersistentFlags().BoolVar(&runtimeFlag, "runtime", true, "Compile templates to render functions (env: VUEC_RUNTIME)")
	rootCmd.PersistentFlags().BoolVar(&outputSourceRangeFlag, "output-source-range", false, "Show code frames for template errors (env: VUEC_OUTPUT_SOURCE_RANGE)")
	rootCmd.PersistentFlags().StringVarP(&destFlag, "dest", "d", "", "Output directory (env: VUEC_DEST)")
	rootCmd.PersistentFlags().IntVarP(&concurrencyFlag, "concurrency", "j", 0, "Files compiled at once, 0 for one per CPU (env: VUEC_CONCURRENCY)")

	rootCmd.AddCommand(NewBuildCmd())
	rootCmd.AddCommand(NewCompileCmd())
	rootCmd.AddCommand(NewParseCmd())
	rootCmd.AddCommand(NewDiffCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads the config file, resolves every value and sets
// up logging.
func initializeGlobals(cmd *cobra.Command) error {
	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: configFlag,
	})
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}
	configPath = pathResult

	// An unreadable file must not block `config vet` or `config init`.
	loaded, loadErr := config.NewLoader().Load(pathResult.ConfigPath)
	if loadErr != nil {
		loaded = &config.Config{}
	}

	flags := cmd.Flags()
	opts := config.ResolveOptions{Config: loaded}
	if flags.Changed("runtime") {
		opts.Runtime = output.BoolPtr(runtimeFlag)
	}
	if flags.Changed("output-source-range") {
		opts.OutputSourceRange = output.BoolPtr(outputSourceRangeFlag)
	}
	if flags.Changed("dest") {
		opts.Dest = destFlag
	}
	if flags.Changed("concurrency") {
		c := concurrencyFlag
		opts.Concurrency = &c
	}
	if flags.Changed("timestamps") {
		opts.Timestamps = output.BoolPtr(timestampsFlag)
	}

	resolved, err := config.Resolve(opts)
	if err != nil {
		output.SetupLogging(output.LogConfig{Verbose: verboseFlag})
		return oerrors.NewValidationError(err.Error(), pathResult.ConfigPath, "")
	}
	resolvedConfig = resolved

	output.SetupLogging(output.LogConfig{
		Verbose:    verboseFlag,
		Timestamps: output.BoolPtr(resolved.Timestamps),
	})

	if loadErr != nil {
		output.Warn("ignoring config file",
			"path", pathResult.ConfigPath,
			"error", loadErr,
			"hint", "run 'vuec config vet'",
		)
	}

	if verboseFlag {
		output.Debug("initializing CLI",
			"config", pathResult.ConfigPath,
			"config_source", pathResult.Source,
		)
		config.LogResolvedValues(resolved.Values)
	}

	return nil
}

// GetResolvedConfig returns the resolved configuration.
func GetResolvedConfig() *config.Resolved {
	if resolvedConfig != nil {
		return resolvedConfig
	}
	resolved, err := config.Resolve(config.ResolveOptions{})
	if err != nil {
		return &config.Resolved{
			Runtime:    true,
			Src:        []string{config.DefaultSrc},
			Dest:       config.DefaultDest,
			Timestamps: true,
		}
	}
	return resolved
}

// GetConfigPath returns the resolved config path value.
func GetConfigPath() string {
	if configPath.ConfigPath != "" {
		return configPath.ConfigPath
	}
	return configFlag
}

// pipelineOptions builds code generation options from the resolved config.
func pipelineOptions() pipeline.Options {
	cfg := GetResolvedConfig()
	opts := pipeline.DefaultOptions()
	opts.Runtime = cfg.Runtime
	opts.OutputSourceRange = cfg.OutputSourceRange
	return opts
}

// newPipeline returns a pipeline backed by the built-in compilers.
func newPipeline() pipeline.Pipeline {
	return pipeline.New(template.New(), style.New(), pipelineOptions())
}

// sourcePatterns returns the globs given as arguments, else the resolved
// src setting.
func sourcePatterns(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return GetResolvedConfig().Src
}

// exitError wraps err with the exit code derived from it. Printed marks
// errors that were already logged.
func exitError(err error, printed bool) error {
	return &oerrors.ExitError{
		Code:    oerrors.ExitCodeFromError(err),
		Err:     err,
		Printed: printed,
	}
}
