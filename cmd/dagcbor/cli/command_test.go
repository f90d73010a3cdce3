// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// quietRoot returns a root command whose help output and logs are
// discarded.
func quietRoot(subcommands ...*Command) *Command {
	return &Command{
		Name:        "dagcbor",
		Subcommands: subcommands,
		Logger:      slog.New(slog.DiscardHandler),
		Stderr:      io.Discard,
	}
}

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := quietRoot(
		&Command{
			Name: "version",
			Run: func(_ context.Context, args []string, _ *slog.Logger) error {
				called = "version"
				return nil
			},
		},
		&Command{
			Name: "conformance",
			Run: func(_ context.Context, args []string, _ *slog.Logger) error {
				called = "conformance"
				return nil
			},
		},
	)

	if err := root.Execute([]string{"conformance"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "conformance" {
		t.Errorf("dispatched to %q, want %q", called, "conformance")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := quietRoot(&Command{
		Name: "cbor",
		Subcommands: []*Command{
			{
				Name: "decode",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "cbor decode"
					receivedArgs = args
					return nil
				},
			},
		},
	})

	if err := root.Execute([]string{"cbor", "decode", "block.cbor"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "cbor decode" {
		t.Errorf("dispatched to %q, want %q", called, "cbor decode")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "block.cbor" {
		t.Errorf("args = %v, want [block.cbor]", receivedArgs)
	}
}

func TestCommand_Execute_PassesContextAndLogger(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "marker")

	var gotValue any
	var gotLogger *slog.Logger
	root := quietRoot(&Command{
		Name: "run",
		Run: func(ctx context.Context, _ []string, logger *slog.Logger) error {
			gotValue = ctx.Value(key{})
			gotLogger = logger
			return nil
		},
	})

	if err := root.ExecuteContext(ctx, []string{"run"}); err != nil {
		t.Fatalf("ExecuteContext() error: %v", err)
	}
	if gotValue != "marker" {
		t.Errorf("context value = %v, want marker", gotValue)
	}
	if gotLogger != root.Logger {
		t.Error("Run did not receive the root logger")
	}
}

func TestCommand_Execute_BuildsLoggerAtLevel(t *testing.T) {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)

	var gotLogger *slog.Logger
	root := &Command{
		Name:     "dagcbor",
		LogLevel: level,
		Stderr:   io.Discard,
		Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
			gotLogger = logger
			return nil
		},
	}
	if err := root.Execute(nil); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if gotLogger == nil {
		t.Fatal("Run received a nil logger")
	}
	if gotLogger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("logger enabled at Info with level Warn")
	}
	level.Set(slog.LevelDebug)
	if !gotLogger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("logger did not follow the LevelVar down to Debug")
	}
}

func TestCommand_Execute_ParamsBinding(t *testing.T) {
	type params struct {
		HexInput bool   `flag:"hex,x" desc:"hex input"`
		Format   string `flag:"format" desc:"output format" default:"json"`
	}
	var p params
	var target string

	command := &Command{
		Name:   "decode",
		Stderr: io.Discard,
		Params: func() any { return &p },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
		Logger: slog.New(slog.DiscardHandler),
	}

	if err := command.Execute([]string{"-x", "--format", "cbor", "input.hex"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !p.HexInput {
		t.Error("HexInput = false, want true")
	}
	if p.Format != "cbor" {
		t.Errorf("Format = %q, want cbor", p.Format)
	}
	if target != "input.hex" {
		t.Errorf("target = %q, want input.hex", target)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var fixtures string

	command := &Command{
		Name:   "conformance",
		Stderr: io.Discard,
		Logger: slog.New(slog.DiscardHandler),
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("conformance", pflag.ContinueOnError)
			flagSet.StringVar(&fixtures, "fixtures", "fixtures/cbor", "fixture directory")
			return flagSet
		},
		Run: func(context.Context, []string, *slog.Logger) error { return nil },
	}

	if err := command.Execute([]string{"--fixtures", "/tmp/vectors"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if fixtures != "/tmp/vectors" {
		t.Errorf("fixtures = %q, want %q", fixtures, "/tmp/vectors")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	type params struct {
		Parallelism int    `flag:"parallelism" desc:"workers"`
		Fixtures    string `flag:"fixtures" desc:"fixture directory"`
	}
	var p params
	command := &Command{
		Name:   "conformance",
		Stderr: io.Discard,
		Params: func() any { return &p },
		Run:    func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute([]string{"--fixturse", "x"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --fixtures") {
		t.Errorf("error = %q, want suggestion for '--fixtures'", errStr)
	}
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
	if CategoryOf(err) != CategoryValidation {
		t.Errorf("category = %q, want validation", CategoryOf(err))
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	type params struct {
		Compact bool `flag:"compact" desc:"compact"`
	}
	var p params
	command := &Command{
		Name:   "decode",
		Stderr: io.Discard,
		Params: func() any { return &p },
		Run:    func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute([]string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := quietRoot(
		&Command{Name: "cbor"},
		&Command{Name: "conformance"},
		&Command{Name: "version"},
	)

	err := root.Execute([]string{"verison"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "version"`) {
		t.Errorf("error = %q, want suggestion for 'version'", err.Error())
	}
}

func TestCommand_Execute_UnknownWordGoesToRun(t *testing.T) {
	var receivedArgs []string
	command := &Command{
		Name:        "cbor",
		Stderr:      io.Discard,
		Logger:      slog.New(slog.DiscardHandler),
		Subcommands: []*Command{{Name: "decode"}},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			receivedArgs = args
			return nil
		},
	}

	if err := command.Execute([]string{"block.cbor"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "block.cbor" {
		t.Errorf("args = %v, want [block.cbor]", receivedArgs)
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			var buffer bytes.Buffer
			root := &Command{
				Name:    "dagcbor",
				Summary: "Canonical DAG-CBOR tools",
				Stderr:  &buffer,
				Subcommands: []*Command{
					{Name: "cbor", Summary: "Inspect DAG-CBOR data"},
				},
			}

			if err := root.Execute([]string{helpArg}); err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
			if !strings.Contains(buffer.String(), "Inspect DAG-CBOR data") {
				t.Errorf("help output = %q, want subcommand summary", buffer.String())
			}
		})
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := quietRoot(&Command{Name: "cbor", Summary: "Inspect DAG-CBOR data"})

	err := root.Execute([]string{})
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing subcommand")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
}

func TestCommand_Execute_RunErrorPassesThrough(t *testing.T) {
	sentinel := &ExitError{Code: 3}
	root := quietRoot(&Command{
		Name: "validate",
		Run:  func(context.Context, []string, *slog.Logger) error { return sentinel },
	})

	err := root.Execute([]string{"validate"})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 3 {
		t.Errorf("Execute() error = %v, want ExitError code 3", err)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "dagcbor",
		Description: "Canonical DAG-CBOR codec tools.",
		Subcommands: []*Command{
			{Name: "cbor", Summary: "Inspect and produce DAG-CBOR"},
			{Name: "conformance", Summary: "Run fixture conformance tests"},
			{Name: "version", Summary: "Print version information"},
		},
		Examples: []Example{
			{
				Description: "Decode a block",
				Command:     "dagcbor cbor decode block.cbor",
			},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Canonical DAG-CBOR codec tools.",
		"Usage:",
		"dagcbor <command> [flags]",
		"Commands:",
		"conformance",
		"Run fixture conformance tests",
		"Examples:",
		"# Decode a block",
		"dagcbor cbor decode block.cbor",
		"Run 'dagcbor <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithParams(t *testing.T) {
	type params struct {
		HexInput bool `flag:"hex,x" desc:"treat input as hex-encoded CBOR"`
	}
	var p params
	command := &Command{
		Name:    "validate",
		Summary: "Check canonical form",
		Usage:   "dagcbor cbor validate [-x] [file]",
		Params:  func() any { return &p },
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"dagcbor cbor validate [-x] [file]",
		"Flags:",
		"--hex",
		"treat input as hex-encoded CBOR",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "dagcbor"}
	group := &Command{Name: "cbor", parent: root}
	leaf := &Command{Name: "decode", parent: group}

	if got := root.fullName(); got != "dagcbor" {
		t.Errorf("root.fullName() = %q, want %q", got, "dagcbor")
	}
	if got := leaf.fullName(); got != "dagcbor cbor decode" {
		t.Errorf("leaf.fullName() = %q, want %q", got, "dagcbor cbor decode")
	}
	if leaf.root() != root {
		t.Error("leaf.root() did not return the root command")
	}
}
