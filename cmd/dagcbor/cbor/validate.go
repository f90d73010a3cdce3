// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/dagcbor/cmd/dagcbor/cli"
	"github.com/bureau-foundation/dagcbor/lib/dagcbor"
)

type validateParams struct {
	inputParams
	profileParams
}

func validateCommand() *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check whether input is canonical DAG-CBOR",
		Description: `Read a block and verify it is the canonical DAG-CBOR encoding of its
value. Prints "valid" and exits 0 if so. Otherwise prints "invalid"
with the rejection kind and byte offset and exits 1.

Validation decodes strictly, then re-encodes the value and compares
the bytes. A strict decode that succeeds always re-encodes to the same
bytes; a difference would indicate a codec bug and is reported with
the first differing offset.`,
		Usage: "dagcbor cbor validate [-x] [file]",
		Examples: []cli.Example{
			{
				Description: "Validate a block",
				Command:     "dagcbor cbor validate block.cbor",
			},
			{
				Description: "Unsorted keys are rejected",
				Command:     "echo a2616201616101 | dagcbor cbor validate -x",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remainingArgs, err := readInput(args, params.HexInput)
			if err != nil {
				return err
			}
			if err := noExtraArgs("validate", remainingArgs); err != nil {
				return err
			}
			err = validateBlock(data, os.Stdout, params)
			var exitErr *cli.ExitError
			if errors.As(err, &exitErr) {
				logger.Debug("input is not canonical", "bytes", len(data))
			}
			return err
		},
	}
}

// validateBlock reports on w whether data is canonical. A rejected
// input is reported on w and returned as an ExitError.
func validateBlock(data []byte, w io.Writer, params validateParams) error {
	options, err := params.decodeOptions()
	if err != nil {
		return err
	}

	value, err := options.Decode(data)
	if err != nil {
		var codecErr *dagcbor.Error
		if !errors.As(err, &codecErr) {
			return cli.Internal("decode: %w", err)
		}
		fmt.Fprintf(w, "invalid: %s", codecErr.Kind)
		if codecErr.Offset >= 0 {
			fmt.Fprintf(w, " at byte %d", codecErr.Offset)
		}
		if codecErr.Detail != "" {
			fmt.Fprintf(w, ": %s", codecErr.Detail)
		}
		fmt.Fprintln(w)
		return &cli.ExitError{Code: 1}
	}

	reencoded, err := options.EncodeOptions().Encode(value)
	if err != nil {
		return cli.Internal("re-encode: %w", err)
	}
	if !bytes.Equal(data, reencoded) {
		fmt.Fprintf(w, "invalid: %s\n", describeMismatch(data, reencoded))
		return &cli.ExitError{Code: 1}
	}

	fmt.Fprintln(w, "valid")
	return nil
}

func describeMismatch(original, reencoded []byte) string {
	offset := 0
	minLength := min(len(original), len(reencoded))
	for offset < minLength && original[offset] == reencoded[offset] {
		offset++
	}
	return fmt.Sprintf("re-encoding differs at byte %d (original %d bytes, re-encoded %d bytes)",
		offset, len(original), len(reencoded))
}
