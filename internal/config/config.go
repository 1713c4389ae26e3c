// Package config provides configuration loading and management.
package config

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty" json:"timestamps,omitempty"`
}

// Config represents the vuec configuration file.
// Pointer fields distinguish "not set" from the zero value so that
// resolution can tell a config value apart from a default.
type Config struct {
	// Runtime selects compiled render functions (true) or a raw template
	// string (false).
	// Env: VUEC_RUNTIME, Default: true
	Runtime *bool `mapstructure:"runtime" yaml:"runtime,omitempty" json:"runtime,omitempty"`

	// OutputSourceRange renders template errors with code frames.
	// Env: VUEC_OUTPUT_SOURCE_RANGE, Default: false
	OutputSourceRange *bool `mapstructure:"outputSourceRange" yaml:"outputSourceRange,omitempty" json:"outputSourceRange,omitempty"`

	// Src lists the source globs used when none are given on the command line.
	Src []string `mapstructure:"src" yaml:"src,omitempty" json:"src,omitempty"`

	// Dest is the output directory.
	// Env: VUEC_DEST, Default: output
	Dest string `mapstructure:"dest" yaml:"dest,omitempty" json:"dest,omitempty"`

	// Concurrency bounds the number of files compiled at once; 0 means one
	// worker per CPU.
	// Env: VUEC_CONCURRENCY, Default: 0
	Concurrency *int `mapstructure:"concurrency" yaml:"concurrency,omitempty" json:"concurrency,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty" json:"log,omitempty"`
}

const (
	// DefaultDest is the output directory used when none is configured.
	DefaultDest = "output"

	// DefaultSrc is the source glob used when none is configured.
	DefaultSrc = "./**/*.vue"
)

// DefaultConfig returns a Config with all default values populated.
// Used by `vuec config init` to generate the initial config file.
func DefaultConfig() *Config {
	runtime := true
	sourceRange := false
	concurrency := 0
	timestamps := true
	return &Config{
		Runtime:           &runtime,
		OutputSourceRange: &sourceRange,
		Src:               []string{DefaultSrc},
		Dest:              DefaultDest,
		Concurrency:       &concurrency,
		Log:               LogConfig{Timestamps: &timestamps},
	}
}

// IsEmpty reports whether no value is set.
func (c *Config) IsEmpty() bool {
	return c.Runtime == nil &&
		c.OutputSourceRange == nil &&
		len(c.Src) == 0 &&
		c.Dest == "" &&
		c.Concurrency == nil &&
		c.Log.Timestamps == nil
}
