// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/dagcbor/cmd/dagcbor/cli"
	"github.com/bureau-foundation/dagcbor/lib/codec"
)

type diagParams struct {
	inputParams
}

func diagCommand() *cli.Command {
	var params diagParams

	return &cli.Command{
		Name:    "diag",
		Summary: "Convert CBOR to diagnostic notation",
		Description: `Read CBOR and write RFC 8949 diagnostic notation to stdout, one
line per item.

Unlike "decode", diag does not require canonical input. It shows the
bytes as they are, which makes it the tool for looking at a block that
"decode" or "validate" rejected: half-precision floats keep their
width suffix, indefinite-length items show their _ marker, and keys
appear in their encoded order.

  {"a": 1, "b": [true, null]}       text keys in wire order
  42(h'00017112...')                a link
  1.5_1                             a half-precision float`,
		Usage: "dagcbor cbor diag [-x] [file]",
		Examples: []cli.Example{
			{
				Description: "Show diagnostic notation for a block",
				Command:     "dagcbor cbor diag block.cbor",
			},
			{
				Description: "Inspect a rejected fixture vector",
				Command:     "echo a2616201616101 | dagcbor cbor diag -x",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			data, remainingArgs, err := readInput(args, params.HexInput)
			if err != nil {
				return err
			}
			if err := noExtraArgs("diag", remainingArgs); err != nil {
				return err
			}
			return diagCBOR(data, os.Stdout)
		},
	}
}

// diagCBOR writes diagnostic notation for each item in data to w.
func diagCBOR(data []byte, w io.Writer) error {
	remaining := data
	for len(remaining) > 0 {
		notation, rest, err := codec.DiagnoseFirst(remaining)
		if err != nil {
			offset := len(data) - len(remaining)
			return cli.Validation("diagnose CBOR at byte %d: %w", offset, err)
		}
		if _, err := fmt.Fprintln(w, notation); err != nil {
			return err
		}
		remaining = rest
	}
	return nil
}
