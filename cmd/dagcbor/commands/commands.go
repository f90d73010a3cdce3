// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete dagcbor CLI command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	cborcmd "github.com/bureau-foundation/dagcbor/cmd/dagcbor/cbor"
	"github.com/bureau-foundation/dagcbor/cmd/dagcbor/cli"
	conformancecmd "github.com/bureau-foundation/dagcbor/cmd/dagcbor/conformance"
	"github.com/bureau-foundation/dagcbor/lib/version"
)

// Root builds and returns the complete dagcbor command tree. The
// conformance command shares the root's level so its configured log
// level applies to the logger every command receives.
func Root() *cli.Command {
	level := new(slog.LevelVar)

	return &cli.Command{
		Name: "dagcbor",
		Description: `dagcbor: a strict DAG-CBOR codec.

Decode, encode, and validate canonical DAG-CBOR blocks, compute their
CIDs, and run the codec against conformance fixtures.`,
		LogLevel: level,
		Subcommands: []*cli.Command{
			cborcmd.Command(),
			conformancecmd.Command(level),
			versionCommand(os.Stdout),
		},
		Examples: []cli.Example{
			{
				Description: "Check that a block is canonical DAG-CBOR",
				Command:     "dagcbor cbor validate block.cbor",
			},
			{
				Description: "Canonicalize DAG-JSON into DAG-CBOR hex",
				Command:     `echo '{"b":1,"a":2}' | dagcbor cbor encode --hex-output`,
			},
			{
				Description: "Print the CID of a block",
				Command:     "dagcbor cbor cid block.cbor",
			},
			{
				Description: "Run the conformance fixtures and write a report",
				Command:     "dagcbor conformance -f fixtures/cbor -o report.json",
			},
		},
	}
}

func versionCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("version takes no arguments, got %q", args[0])
			}
			fmt.Fprintf(stdout, "dagcbor %s\n", version.Full())
			fmt.Fprintf(stdout, "module %s %s\n", version.ModulePath, version.Self())
			return nil
		},
	}
}
