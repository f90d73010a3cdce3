// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"context"
	"log/slog"
	"os"

	"github.com/bureau-foundation/dagcbor/cmd/dagcbor/cli"
)

// Command returns the "cbor" command group. With no subcommand name it
// behaves like "cbor decode".
func Command() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "cbor",
		Summary: "Inspect, produce, and validate DAG-CBOR data",
		Description: `Tools for working with DAG-CBOR blocks from the command line.

With no subcommand, decodes DAG-CBOR on stdin (or a file argument) to
JSON on stdout, equivalent to "dagcbor cbor decode".

All subcommands accept an optional trailing file path argument. When
provided, input is read from the file instead of stdin.

With --hex, input is treated as hex-encoded CBOR rather than raw binary.
Whitespace in the hex input is ignored, so fixture vectors can be
pasted directly.`,
		Subcommands: []*cli.Command{
			decodeCommand(),
			encodeCommand(),
			diagCommand(),
			validateCommand(),
			cidCommand(),
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			data, remainingArgs, err := readInput(args, params.HexInput)
			if err != nil {
				return err
			}
			if err := noExtraArgs("cbor", remainingArgs); err != nil {
				return err
			}
			return decodeBlock(data, os.Stdout, params)
		},
		Examples: []cli.Example{
			{
				Description: "Decode a block to pretty JSON",
				Command:     "dagcbor cbor < block.cbor",
			},
			{
				Description: "Decode hex-encoded input",
				Command:     "echo a1616101 | dagcbor cbor --hex",
			},
			{
				Description: "Encode JSON to canonical DAG-CBOR",
				Command:     `echo '{"b":2,"a":1}' | dagcbor cbor encode --hex-output`,
			},
			{
				Description: "Check canonical form",
				Command:     "dagcbor cbor validate block.cbor",
			},
			{
				Description: "Look at a block the codec rejects",
				Command:     "dagcbor cbor diag block.cbor",
			},
			{
				Description: "Compute a block's CID",
				Command:     "dagcbor cbor cid block.cbor",
			},
		},
	}
}
