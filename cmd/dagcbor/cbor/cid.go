// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/dagcbor/cmd/dagcbor/cli"
	"github.com/bureau-foundation/dagcbor/lib/dagcbor"
)

type cidParams struct {
	inputParams
	profileParams
	Hash   string `json:"hash"   flag:"hash"     desc:"multihash function: sha2-256 or blake3" default:"sha2-256"`
	Binary bool   `json:"binary" flag:"binary,b" desc:"print the binary CID as hex instead of the base32 string"`
	Link   bool   `json:"link"   flag:"link"     desc:"print the tag 42 link encoding as hex"`
}

func cidCommand() *cli.Command {
	var params cidParams

	return &cli.Command{
		Name:    "cid",
		Summary: "Compute the CID of a DAG-CBOR block",
		Description: `Read a block, check that it is canonical DAG-CBOR, and print its
CIDv1 (dag-cbor codec) in base32 form.

The block is hashed exactly as read; it is never re-encoded. Input that
is not canonical is rejected, since its CID would not match the CID
another implementation computes for the same value.`,
		Usage: "dagcbor cbor cid [--hash sha2-256|blake3] [-b] [--link] [-x] [file]",
		Examples: []cli.Example{
			{
				Description: "CID of a block",
				Command:     "dagcbor cbor cid block.cbor",
			},
			{
				Description: "BLAKE3 CID of an encoded JSON value",
				Command:     `echo '{"a":1}' | dagcbor cbor encode | dagcbor cbor cid --hash blake3`,
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			data, remainingArgs, err := readInput(args, params.HexInput)
			if err != nil {
				return err
			}
			if err := noExtraArgs("cid", remainingArgs); err != nil {
				return err
			}
			return computeCID(data, os.Stdout, params)
		},
	}
}

// computeCID validates data and writes its CID to w.
func computeCID(data []byte, w io.Writer, params cidParams) error {
	hash, err := dagcbor.ParseHashFunction(params.Hash)
	if err != nil {
		return cli.Validation("--hash: %w", err)
	}
	options, err := params.decodeOptions()
	if err != nil {
		return err
	}
	if _, err := options.Decode(data); err != nil {
		return codecError("block is not canonical DAG-CBOR", err)
	}

	cid := dagcbor.ComputeCID(data, hash)
	switch {
	case params.Link:
		encoded, err := dagcbor.Encode(dagcbor.NewLink(cid))
		if err != nil {
			return cli.Internal("encode link: %w", err)
		}
		_, err = fmt.Fprintln(w, hex.EncodeToString(encoded))
		return err
	case params.Binary:
		_, err = fmt.Fprintln(w, hex.EncodeToString(cid))
		return err
	default:
		_, err = fmt.Fprintln(w, dagcbor.FormatCID(cid))
		return err
	}
}
