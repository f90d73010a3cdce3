// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/dagcbor/cmd/dagcbor/cli"
	"github.com/bureau-foundation/dagcbor/lib/dagcbor"
)

type decodeParams struct {
	cli.JSONOutput
	inputParams
	profileParams
}

func decodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert canonical DAG-CBOR to JSON",
		Description: `Read a DAG-CBOR block and write it as JSON to stdout.

Input is decoded strictly: anything that is not the canonical encoding
(non-minimal lengths, unsorted or duplicate map keys, indefinite-length
items, short floats, tags other than 42) is rejected with the error
kind and byte offset.

Kinds that JSON lacks are written in DAG-JSON form: byte strings as
{"/": {"bytes": "<base64>"}} and links as {"/": "<cid>"}. Map keys are
printed in JSON's sorted order, not the block's.`,
		Usage: "dagcbor cbor decode [-c] [-x] [file]",
		Examples: []cli.Example{
			{
				Description: "Decode a block to pretty JSON",
				Command:     "dagcbor cbor decode block.cbor",
			},
			{
				Description: "Decode hex-encoded input",
				Command:     "echo a1616101 | dagcbor cbor decode -x",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			data, remainingArgs, err := readInput(args, params.HexInput)
			if err != nil {
				return err
			}
			if err := noExtraArgs("decode", remainingArgs); err != nil {
				return err
			}
			return decodeBlock(data, os.Stdout, params)
		},
	}
}

// decodeBlock decodes data strictly and writes its JSON rendering to w.
func decodeBlock(data []byte, w io.Writer, params decodeParams) error {
	options, err := params.decodeOptions()
	if err != nil {
		return err
	}
	value, err := options.Decode(data)
	if err != nil {
		return codecError("decode", err)
	}
	return params.WriteJSON(w, dagcbor.ToJSON(value))
}
