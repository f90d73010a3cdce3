// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// RunFunc is the signature of a command's Run function. args holds the
// positional arguments left after flag parsing.
type RunFunc func(ctx context.Context, args []string, logger *slog.Logger) error

// Command represents a CLI command or subcommand.
type Command struct {
	// Name is the command name as typed by the user (e.g., "cbor", "decode").
	Name string

	// Summary is a one-line description shown in the parent's help listing.
	Summary string

	// Description is a detailed multi-line description shown in the command's
	// own help output.
	Description string

	// Usage is the usage string (e.g., "dagcbor cbor decode [flags] [file]").
	// If empty, it is synthesized from the command path and subcommands.
	Usage string

	// Examples are shown in the help output after the description.
	Examples []Example

	// Params returns a pointer to the command's parameter struct. Flags
	// are bound from its struct tags (see [BindFlags]). The pointer must
	// be the same one the Run closure reads, so that parsed values are
	// visible to Run.
	Params func() any

	// Flags returns a configured *pflag.FlagSet for this command. Used
	// only when Params is nil, for commands that need flag types the
	// struct tags do not cover.
	Flags func() *pflag.FlagSet

	// Subcommands are nested commands dispatched by the first positional arg.
	Subcommands []*Command

	// Run executes the command with the remaining args (after flag parsing).
	// Exactly one of Run or Subcommands should be set. If both are set,
	// Run is used when no subcommand matches.
	Run RunFunc

	// Logger, when set on the root command, is handed to every Run.
	// Otherwise the root builds one with [NewCommandLogger] at LogLevel.
	Logger *slog.Logger

	// LogLevel controls the level of the logger built for the root
	// command. Commands holding the same LevelVar may raise or lower it
	// after parsing their own configuration.
	LogLevel *slog.LevelVar

	// Stderr receives help output. Defaults to os.Stderr.
	Stderr io.Writer

	// parent is set during dispatch to build the full command path for help.
	parent *Command
}

// Example is a usage example shown in help output.
type Example struct {
	// Description explains what the example does.
	Description string
	// Command is the literal command line.
	Command string
}

// Execute runs the command tree with a background context. See
// [Command.ExecuteContext].
func (c *Command) Execute(args []string) error {
	return c.ExecuteContext(context.Background(), args)
}

// ExecuteContext parses args and dispatches to the appropriate subcommand
// or Run function. This is the main entry point for the command tree.
func (c *Command) ExecuteContext(ctx context.Context, args []string) error {
	// Check for help flags before anything else.
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(c.stderr())
		return nil
	}

	// If we have subcommands, try to dispatch.
	if len(c.Subcommands) > 0 && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name := args[0]
		for _, sub := range c.Subcommands {
			if sub.Name == name {
				sub.parent = c
				return sub.ExecuteContext(ctx, args[1:])
			}
		}

		// A command with its own Run treats unknown words as arguments.
		if c.Run == nil {
			suggestion := suggestCommand(name, c.Subcommands)
			if suggestion != "" {
				return Validation("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.",
					name, suggestion, c.fullName())
			}
			return Validation("unknown command %q\n\nRun '%s --help' for usage.",
				name, c.fullName())
		}
	}

	// If we have subcommands but no args (and no Run), show help.
	if len(c.Subcommands) > 0 && c.Run == nil {
		c.PrintHelp(c.stderr())
		if len(args) == 0 {
			return Validation("subcommand required")
		}
		return Validation("subcommand required (got flag %q)", args[0])
	}

	if flagSet := c.flagSet(); flagSet != nil {
		// Suppress pflag's default error output and usage dump. We
		// format our own error messages with suggestions.
		flagSet.SetOutput(io.Discard)

		if err := flagSet.Parse(args); err != nil {
			errMsg := err.Error()

			if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "unknown shorthand flag") {
				// Suggest against a fresh flag set; the failed parse may
				// have consumed state.
				suggestion := suggestFlag(args, c.flagSet())
				if suggestion != "" {
					return Validation("%s (did you mean %s?)\n\nRun '%s --help' for usage.",
						errMsg, suggestion, c.fullName())
				}
			}

			return Validation("%s\n\nRun '%s --help' for usage.",
				errMsg, c.fullName())
		}
		args = flagSet.Args()
	}

	if c.Run != nil {
		return c.Run(ctx, args, c.root().logger())
	}

	// No Run and no matching subcommand: show help.
	c.PrintHelp(c.stderr())
	return fmt.Errorf("no action defined for %q", c.fullName())
}

// flagSet builds the command's flags from Params or Flags. Returns nil
// when the command takes no flags.
func (c *Command) flagSet() *pflag.FlagSet {
	switch {
	case c.Params != nil:
		return FlagsFromParams(c.Name, c.Params())
	case c.Flags != nil:
		return c.Flags()
	default:
		return nil
	}
}

// PrintHelp writes structured help output to w.
func (c *Command) PrintHelp(w io.Writer) {
	name := c.fullName()

	// Description or summary.
	if c.Description != "" {
		fmt.Fprintf(w, "%s\n\n", c.Description)
	} else if c.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	// Usage line.
	if c.Usage != "" {
		fmt.Fprintf(w, "Usage:\n  %s\n", c.Usage)
	} else if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "Usage:\n  %s <command> [flags]\n", name)
	} else {
		fmt.Fprintf(w, "Usage:\n  %s [flags]\n", name)
	}

	// Subcommands.
	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		tw.Flush()
	}

	// Flags.
	if flagSet := c.flagSet(); flagSet != nil {
		var flagHelp strings.Builder
		flagSet.SetOutput(&flagHelp)
		flagSet.PrintDefaults()
		if flagHelp.Len() > 0 {
			fmt.Fprintf(w, "\nFlags:\n%s", flagHelp.String())
		}
	}

	// Examples.
	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range c.Examples {
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
			if example.Description != "" {
				fmt.Fprintln(w)
			}
		}
	}

	// Footer: help hint for subcommands.
	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

// fullName returns the complete command path (e.g., "dagcbor cbor decode").
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func (c *Command) root() *Command {
	for c.parent != nil {
		c = c.parent
	}
	return c
}

// logger returns the root's logger, building it on first use.
func (c *Command) logger() *slog.Logger {
	if c.Logger == nil {
		if c.LogLevel == nil {
			c.LogLevel = new(slog.LevelVar)
		}
		c.Logger = NewCommandLogger(c.LogLevel)
	}
	return c.Logger
}

func (c *Command) stderr() io.Writer {
	if root := c.root(); root.Stderr != nil {
		return root.Stderr
	}
	return os.Stderr
}

// isHelpFlag returns true for common help flag variants.
func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
