package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vuesfc/vuec/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// Environment variables consulted during resolution.
const (
	EnvRuntime           = "VUEC_RUNTIME"
	EnvOutputSourceRange = "VUEC_OUTPUT_SOURCE_RANGE"
	EnvDest              = "VUEC_DEST"
	EnvConcurrency       = "VUEC_CONCURRENCY"
)

// ResolvedValue records the winning value of one key and the lower
// precedence values it shadowed.
type ResolvedValue struct {
	Key      string
	Value    any
	Source   ConfigSource
	Shadowed map[ConfigSource]any
}

// ResolveOptions carries the loaded file and the flag values. A nil flag
// pointer (or empty slice/string) means the flag was not given.
type ResolveOptions struct {
	Config *Config

	Runtime           *bool
	OutputSourceRange *bool
	Src               []string
	Dest              string
	Concurrency       *int
	Timestamps        *bool
}

// Resolved is the effective configuration for one run.
type Resolved struct {
	Runtime           bool
	OutputSourceRange bool
	Src               []string
	Dest              string
	Concurrency       int
	Timestamps        bool

	// Values lists every key's resolution in a fixed order.
	Values []ResolvedValue
}

type candidate[T any] struct {
	source ConfigSource
	value  T
	ok     bool
}

func set[T any](source ConfigSource, p *T) candidate[T] {
	if p == nil {
		return candidate[T]{source: source}
	}
	return candidate[T]{source: source, value: *p, ok: true}
}

// pick returns the first present candidate, recording the others that are
// present as shadowed.
func pick[T any](key string, def T, candidates ...candidate[T]) (T, ResolvedValue) {
	rv := ResolvedValue{Key: key, Source: SourceDefault, Value: def, Shadowed: map[ConfigSource]any{}}
	result := def
	found := false
	for _, c := range candidates {
		if !c.ok {
			continue
		}
		if found {
			rv.Shadowed[c.source] = c.value
			continue
		}
		found = true
		result = c.value
		rv.Value = c.value
		rv.Source = c.source
	}
	if found {
		rv.Shadowed[SourceDefault] = def
	}
	return result, rv
}

// Resolve applies precedence flag > env > config > default to every key.
func Resolve(opts ResolveOptions) (*Resolved, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}
	defaults := DefaultConfig()

	envRuntime, err := envBool(EnvRuntime)
	if err != nil {
		return nil, err
	}
	envSourceRange, err := envBool(EnvOutputSourceRange)
	if err != nil {
		return nil, err
	}
	envConcurrency, err := envInt(EnvConcurrency)
	if err != nil {
		return nil, err
	}

	r := &Resolved{}
	var rv ResolvedValue

	r.Runtime, rv = pick("runtime", *defaults.Runtime,
		set(SourceFlag, opts.Runtime),
		set(SourceEnv, envRuntime),
		set(SourceConfig, cfg.Runtime))
	r.Values = append(r.Values, rv)

	r.OutputSourceRange, rv = pick("outputSourceRange", *defaults.OutputSourceRange,
		set(SourceFlag, opts.OutputSourceRange),
		set(SourceEnv, envSourceRange),
		set(SourceConfig, cfg.OutputSourceRange))
	r.Values = append(r.Values, rv)

	r.Src, rv = pick("src", defaults.Src,
		candidate[[]string]{source: SourceFlag, value: opts.Src, ok: len(opts.Src) > 0},
		candidate[[]string]{source: SourceConfig, value: cfg.Src, ok: len(cfg.Src) > 0})
	r.Values = append(r.Values, rv)

	r.Dest, rv = pick("dest", defaults.Dest,
		nonEmpty(SourceFlag, opts.Dest),
		nonEmpty(SourceEnv, os.Getenv(EnvDest)),
		nonEmpty(SourceConfig, cfg.Dest))
	r.Values = append(r.Values, rv)

	r.Concurrency, rv = pick("concurrency", *defaults.Concurrency,
		set(SourceFlag, opts.Concurrency),
		set(SourceEnv, envConcurrency),
		set(SourceConfig, cfg.Concurrency))
	r.Values = append(r.Values, rv)

	r.Timestamps, rv = pick("log.timestamps", *defaults.Log.Timestamps,
		set(SourceFlag, opts.Timestamps),
		set(SourceConfig, cfg.Log.Timestamps))
	r.Values = append(r.Values, rv)

	if r.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency must not be negative, got %d", r.Concurrency)
	}

	return r, nil
}

func nonEmpty(source ConfigSource, v string) candidate[string] {
	return candidate[string]{source: source, value: v, ok: v != ""}
}

func envBool(name string) (*bool, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid boolean %q", name, raw)
	}
	return &v, nil
}

func envInt(name string) (*int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid integer %q", name, raw)
	}
	return &v, nil
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) VUEC_CONFIG env, (3) ./vuec.yaml, else ~/.vuec/config.yaml
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(EnvConfig)

	defaultPath, err := DefaultConfigFile()
	if err != nil {
		return result, err
	}

	switch {
	case opts.FlagValue != "":
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
