// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package conformance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/bureau-foundation/dagcbor/cmd/dagcbor/cli"
	"github.com/bureau-foundation/dagcbor/lib/config"
	"github.com/bureau-foundation/dagcbor/lib/conformance"
	"github.com/bureau-foundation/dagcbor/lib/version"
)

// conformanceParams holds the flags of "dagcbor conformance". Every
// flag left at its zero value defers to the config file.
type conformanceParams struct {
	Config        string   `json:"config"          flag:"config"          desc:"config file (default: $DAGCBOR_CONFIG, then built-in defaults)"`
	Fixtures      string   `json:"fixtures"        flag:"fixtures,f"      desc:"fixture directory (overrides fixtures.dir)"`
	Skip          []string `json:"skip"            flag:"skip"            desc:"additional case IDs to report as skipped"`
	NoDefaultSkip bool     `json:"no_default_skip" flag:"no-default-skip" desc:"run every case, ignoring the configured skip list"`
	Format        string   `json:"format"          flag:"format"          desc:"report format: json or cbor (overrides report.format)"`
	Output        string   `json:"output"          flag:"output,o"        desc:"write the report to this file instead of stdout"`
	ReportVersion string   `json:"report_version"  flag:"report-version"  desc:"implementation version recorded in the report (overrides report.version)"`
	Parallelism   int      `json:"parallelism"     flag:"parallelism,j"   desc:"fixture files processed at once (overrides runner.parallelism)"`
	LogLevel      string   `json:"log_level"       flag:"log-level"       desc:"debug, info, warn, or error (overrides log.level)"`
	FailOnFailure bool     `json:"fail_on_failure" flag:"fail-on-failure" desc:"exit 1 when any case fails"`
}

// Command returns the "conformance" command. level is the root
// logger's level, raised or lowered once the configuration is known.
func Command(level *slog.LevelVar) *cli.Command {
	var params conformanceParams

	return &cli.Command{
		Name:    "conformance",
		Summary: "Run DAG-CBOR fixture files and write a conformance report",
		Description: `Run every fixture file in a directory through the codec and write a
report of per-case results.

Fixture files are JSON arrays of cases (.json, or .jsonc with comments
and trailing commas, optionally compressed as .zst or .lz4):

  {"type": "roundtrip" | "invalid_in" | "invalid_out",
   "data": "<hex>", "tags": [...], "id": "<optional>"}

  roundtrip    decode, re-encode, and compare the bytes
  invalid_in   the strict decoder must reject the bytes
  invalid_out  a general CBOR decoder reads the bytes; converting the
               result to a DAG-CBOR value or encoding it must fail

The report maps each fixture name to its results:

  {"metadata": {"link": "...", "version": "..."},
   "files": {"<name>": [{"pass": true}, {"pass": false, "output": "<hex>"}]}}

Cases whose id is on the skip list report "pass": null. The default
skip list is [undefined_invalid_out]: a general decoder reads CBOR
undefined as null, so that case cannot fail as intended.

Settings come from the config file named by --config or
$DAGCBOR_CONFIG; flags override individual settings.`,
		Usage: "dagcbor conformance [flags]",
		Examples: []cli.Example{
			{
				Description: "Run the fixtures in the default directory",
				Command:     "dagcbor conformance > report.json",
			},
			{
				Description: "Run a fixture checkout, failing CI on any failed case",
				Command:     "dagcbor conformance -f ../dag-cbor-fixtures --fail-on-failure -o report.json",
			},
			{
				Description: "Run with a config file and per-case debug logging",
				Command:     "DAGCBOR_CONFIG=conformance.yaml dagcbor conformance --log-level debug",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("conformance takes no positional arguments, got %q", args[0])
			}
			return run(ctx, params, level, logger, os.Stdout)
		},
	}
}

// loadConfig resolves the configuration: an explicit --config, then
// $DAGCBOR_CONFIG, then defaults. Flags are applied on top.
func loadConfig(params conformanceParams) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case params.Config != "":
		cfg, err = config.LoadFile(params.Config)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("%w", err)
		}
		return nil, cli.Validation("%w", err)
	}

	if params.Fixtures != "" {
		cfg.Fixtures.Dir = params.Fixtures
	}
	if params.NoDefaultSkip {
		cfg.Fixtures.Skip = nil
	}
	cfg.Fixtures.Skip = append(cfg.Fixtures.Skip, params.Skip...)
	if params.Format != "" {
		cfg.Report.Format = params.Format
	}
	if params.ReportVersion != "" {
		cfg.Report.Version = params.ReportVersion
	}
	if params.Parallelism != 0 {
		cfg.Runner.Parallelism = params.Parallelism
	}
	if params.LogLevel != "" {
		cfg.Log.Level = params.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, params conformanceParams, level *slog.LevelVar, logger *slog.Logger, stdout io.Writer) error {
	cfg, err := loadConfig(params)
	if err != nil {
		return err
	}

	if level != nil {
		// Validate has already checked the name.
		parsed, _ := config.ParseLevel(cfg.Log.Level)
		level.Set(parsed)
	}

	runner := &conformance.Runner{
		Options:     cfg.DecodeOptions(),
		Skip:        cfg.SkipSet(),
		Parallelism: cfg.EffectiveParallelism(),
		MaxFileSize: cfg.Fixtures.MaxFileSize,
		Logger:      logger,
	}
	metadata := conformance.Metadata{
		Link:    cfg.Report.Link,
		Version: cfg.Report.Version,
	}
	if metadata.Version == "" {
		metadata.Version = version.Self()
	}

	report, runErr := runner.Run(ctx, cfg.Fixtures.Dir, metadata)
	if report == nil {
		if errors.Is(runErr, fs.ErrNotExist) {
			return cli.NotFound("%w", runErr)
		}
		return cli.Validation("%w", runErr)
	}

	if err := writeReport(report, cfg.Report.Format, params.Output, stdout); err != nil {
		return err
	}

	summary := report.Summary()
	logger.Info("conformance run complete",
		"files", len(report.Files),
		"passed", summary.Passed,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
	)

	switch {
	case errors.Is(runErr, context.Canceled), errors.Is(runErr, context.DeadlineExceeded):
		return cli.Internal("conformance run interrupted: %w", runErr)
	case runErr != nil:
		return cli.Validation("some fixture files could not be run:\n%w", runErr)
	case params.FailOnFailure && summary.Failed > 0:
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// writeReport writes the report to path, or to stdout when path is
// empty.
func writeReport(report *conformance.Report, format, path string, stdout io.Writer) error {
	if path == "" {
		if file, ok := stdout.(*os.File); ok && format == "cbor" && cli.IsTerminal(file) {
			return cli.Validation("refusing to write a CBOR report to a terminal; redirect stdout or pass --output")
		}
		return emit(report, format, stdout)
	}

	file, err := os.Create(path)
	if err != nil {
		return cli.Internal("create report: %w", err)
	}
	if err := emit(report, format, file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return cli.Internal("close report: %w", err)
	}
	return nil
}

func emit(report *conformance.Report, format string, w io.Writer) error {
	if err := report.Write(w, format); err != nil {
		return cli.Internal("%w", err)
	}
	if format == "json" {
		if _, err := fmt.Fprintln(w); err != nil {
			return cli.Internal("writing report: %w", err)
		}
	}
	return nil
}
