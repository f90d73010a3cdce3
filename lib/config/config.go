// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/dagcbor/lib/dagcbor"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "DAGCBOR_CONFIG"

// DefaultSkip lists the fixture IDs skipped when a config does not
// name its own. A general-purpose decoder turns CBOR undefined into
// nil, which the adapter cannot tell apart from null.
var DefaultSkip = []string{"undefined_invalid_out"}

// Config is the configuration of a conformance run.
type Config struct {
	// Fixtures configures where fixture files come from.
	Fixtures FixturesConfig `yaml:"fixtures"`

	// Codec configures the strict codec profile.
	Codec CodecConfig `yaml:"codec"`

	// Report configures the report written at the end of a run.
	Report ReportConfig `yaml:"report"`

	// Runner configures execution.
	Runner RunnerConfig `yaml:"runner"`

	// Log configures the command logger.
	Log LogConfig `yaml:"log"`
}

// FixturesConfig configures fixture discovery.
type FixturesConfig struct {
	// Dir is the directory searched for fixture files. ${VAR} and
	// ${VAR:-default} patterns are expanded.
	// Default: fixtures/cbor
	Dir string `yaml:"dir"`

	// Skip lists case IDs reported as skipped (pass: null) instead of
	// being run. An explicit empty list skips nothing.
	// Default: [undefined_invalid_out]
	Skip []string `yaml:"skip"`

	// MaxFileSize bounds a fixture file after decompression, in bytes.
	// Zero means the fixture package default.
	MaxFileSize int64 `yaml:"max_file_size"`
}

// CodecConfig selects the codec profile.
type CodecConfig struct {
	// MaxDepth bounds container nesting. Default: 512
	MaxDepth int `yaml:"max_depth"`

	// MaxInputSize bounds a single decoded input, in bytes.
	// Default: 16 MiB
	MaxInputSize int `yaml:"max_input_size"`

	// Floats is "float64" (DAG-CBOR) or "reject". Default: float64
	Floats string `yaml:"floats"`

	// Tags is "link" (tag 42 only) or "any". Default: link
	Tags string `yaml:"tags"`
}

// ReportConfig configures report metadata and output.
type ReportConfig struct {
	// Link is recorded in the report metadata as the implementation's
	// home.
	Link string `yaml:"link"`

	// Version overrides the implementation version recorded in the
	// report. Empty means the version from build information.
	Version string `yaml:"version"`

	// Format is "json" or "cbor". Default: json
	Format string `yaml:"format"`
}

// RunnerConfig configures the conformance runner.
type RunnerConfig struct {
	// Parallelism is the number of fixture files processed at once.
	// Zero means runtime.GOMAXPROCS(0).
	Parallelism int `yaml:"parallelism"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is "debug", "info", "warn", or "error". Default: info
	Level string `yaml:"level"`
}

// Default returns the default configuration.
// These defaults are used as a base before loading the config file.
func Default() *Config {
	return &Config{
		Fixtures: FixturesConfig{
			Dir:  "fixtures/cbor",
			Skip: append([]string(nil), DefaultSkip...),
		},
		Codec: CodecConfig{
			MaxDepth:     dagcbor.DefaultMaxDepth,
			MaxInputSize: dagcbor.DefaultMaxInputSize,
			Floats:       dagcbor.FloatsFloat64Only.String(),
			Tags:         dagcbor.TagsLinkOnly.String(),
		},
		Report: ReportConfig{
			Link:   "https://github.com/bureau-foundation/dagcbor",
			Format: "json",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by DAGCBOR_CONFIG.
//
// There is no discovery: if the variable is not set, this fails.
// Callers that want defaults without a file use [Default].
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of a config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, layered over
// [Default]. Fields absent from the file keep their defaults.
//
// Environment variables do not override config values. The only
// expansion performed is ${VAR} and ${VAR:-default} in the fixture
// directory, for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		// An empty file leaves the defaults in place.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Fixtures.Dir = expandVars(c.Fixtures.Dir, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. Every problem is
// reported, not just the first.
func (c *Config) Validate() error {
	var errs []error

	if c.Fixtures.Dir == "" {
		errs = append(errs, fmt.Errorf("fixtures.dir is required"))
	}
	if c.Fixtures.MaxFileSize < 0 {
		errs = append(errs, fmt.Errorf("fixtures.max_file_size must not be negative"))
	}

	if c.Codec.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("codec.max_depth must be at least 1, got %d", c.Codec.MaxDepth))
	}
	if c.Codec.MaxInputSize < 1 {
		errs = append(errs, fmt.Errorf("codec.max_input_size must be at least 1, got %d", c.Codec.MaxInputSize))
	}
	if _, err := dagcbor.ParseFloatPolicy(c.Codec.Floats); err != nil {
		errs = append(errs, fmt.Errorf("codec.floats: %w", err))
	}
	if _, err := dagcbor.ParseTagPolicy(c.Codec.Tags); err != nil {
		errs = append(errs, fmt.Errorf("codec.tags: %w", err))
	}

	formatValues := []string{"json", "cbor"}
	if !contains(formatValues, c.Report.Format) {
		errs = append(errs, fmt.Errorf("report.format must be one of: %v", formatValues))
	}

	if c.Runner.Parallelism < 0 {
		errs = append(errs, fmt.Errorf("runner.parallelism must not be negative"))
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// DecodeOptions returns the strict decoder profile described by the
// codec section. Call [Config.Validate] first; unparseable policies
// fall back to the defaults.
func (c *Config) DecodeOptions() dagcbor.DecodeOptions {
	floats, _ := dagcbor.ParseFloatPolicy(c.Codec.Floats)
	tags, _ := dagcbor.ParseTagPolicy(c.Codec.Tags)
	return dagcbor.DecodeOptions{
		MaxDepth:     c.Codec.MaxDepth,
		MaxInputSize: c.Codec.MaxInputSize,
		Floats:       floats,
		Tags:         tags,
	}
}

// SkipSet returns the skip list as a set.
func (c *Config) SkipSet() map[string]bool {
	set := make(map[string]bool, len(c.Fixtures.Skip))
	for _, id := range c.Fixtures.Skip {
		set[id] = true
	}
	return set
}

// EffectiveParallelism resolves a zero parallelism to GOMAXPROCS.
func (c *Config) EffectiveParallelism() int {
	if c.Runner.Parallelism > 0 {
		return c.Runner.Parallelism
	}
	return runtime.GOMAXPROCS(0)
}

// ParseLevel parses a log level name. The empty string is info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown level %q (want debug, info, warn, or error)", name)
	}
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
