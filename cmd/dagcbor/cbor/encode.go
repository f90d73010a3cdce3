// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bureau-foundation/dagcbor/cmd/dagcbor/cli"
	"github.com/bureau-foundation/dagcbor/lib/codec"
	"github.com/bureau-foundation/dagcbor/lib/dagcbor"
)

type encodeParams struct {
	inputParams
	profileParams
	From      string `json:"from"       flag:"from"       desc:"input format: json or cbor (any well-formed CBOR)" default:"json"`
	HexOutput bool   `json:"hex_output" flag:"hex-output" desc:"write hex instead of binary"`
}

func encodeCommand() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert JSON or general CBOR to canonical DAG-CBOR",
		Description: `Read a value and write its canonical DAG-CBOR encoding to stdout.

With --from json (the default) the input is JSON. Integers stay
integers; numbers with a fraction or exponent become 8-byte floats. The
DAG-JSON forms {"/": {"bytes": "<base64>"}} and {"/": "<cid>"} become
byte strings and links, so the output of "dagcbor cbor decode" encodes
back to the same block.

With --from cbor the input is any well-formed CBOR item. It is read
with a general decoder and re-encoded canonically: map keys sorted,
lengths minimal, floats widened to 8 bytes. Values DAG-CBOR cannot
express (undefined, bignums, non-text map keys, tags other than 42)
are rejected.

The output is binary unless --hex-output is given.`,
		Usage: "dagcbor cbor encode [--from json|cbor] [--hex-output] [file]",
		Examples: []cli.Example{
			{
				Description: "Encode JSON",
				Command:     `echo '{"b":1,"a":[true,null]}' | dagcbor cbor encode --hex-output`,
			},
			{
				Description: "Canonicalize a CBOR item",
				Command:     "dagcbor cbor encode --from cbor loose.cbor > block.cbor",
			},
			{
				Description: "Round-trip through JSON",
				Command:     "dagcbor cbor decode block.cbor | dagcbor cbor encode | cmp - block.cbor",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			data, remainingArgs, err := readInput(args, params.HexInput)
			if err != nil {
				return err
			}
			if err := noExtraArgs("encode", remainingArgs); err != nil {
				return err
			}
			return encodeBlock(data, os.Stdout, params)
		},
	}
}

// encodeBlock converts data to canonical DAG-CBOR and writes it to w.
func encodeBlock(data []byte, w io.Writer, params encodeParams) error {
	options, err := params.decodeOptions()
	if err != nil {
		return err
	}

	var generic any
	switch params.From {
	case "json":
		generic, err = parseJSON(data)
	case "cbor":
		generic, err = codec.DecodeGeneric(data)
		if err != nil {
			err = cli.Validation("decode CBOR: %w", err)
		}
	default:
		return cli.Validation("--from must be json or cbor, got %q", params.From)
	}
	if err != nil {
		return err
	}

	value, err := options.AdaptOptions().FromGeneric(generic)
	if err != nil {
		return codecError("convert", err)
	}
	encoded, err := options.EncodeOptions().Encode(value)
	if err != nil {
		return codecError("encode", err)
	}
	return writeOutput(w, encoded, params.HexOutput)
}

// parseJSON decodes a single JSON document, keeping numbers as
// json.Number so integers are not rounded through float64, and
// replaces DAG-JSON bytes and link objects with their values.
func parseJSON(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, cli.Validation("decode JSON: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, cli.Validation("decode JSON: unexpected data after the top-level value")
	}
	return fromDAGJSON(value)
}

// fromDAGJSON walks a decoded JSON tree and converts the reserved "/"
// objects.
func fromDAGJSON(v any) (any, error) {
	switch value := v.(type) {
	case map[string]any:
		if slash, ok := value["/"]; ok && len(value) == 1 {
			return reservedObject(slash)
		}
		for key, element := range value {
			converted, err := fromDAGJSON(element)
			if err != nil {
				return nil, err
			}
			value[key] = converted
		}
		return value, nil

	case []any:
		for index, element := range value {
			converted, err := fromDAGJSON(element)
			if err != nil {
				return nil, err
			}
			value[index] = converted
		}
		return value, nil

	default:
		return v, nil
	}
}

// reservedObject converts the value under a lone "/" key.
func reservedObject(slash any) (any, error) {
	switch content := slash.(type) {
	case string:
		cid, err := dagcbor.ParseCID(content)
		if err != nil {
			return nil, cli.Validation("link: %w", err)
		}
		return dagcbor.NewLink(cid), nil

	case map[string]any:
		encoded, ok := content["bytes"].(string)
		if !ok || len(content) != 1 {
			return nil, cli.Validation(`"/" object must hold a single "bytes" string`)
		}
		decoded, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return nil, cli.Validation("bytes: %w", err)
		}
		return dagcbor.Bytes(decoded), nil

	default:
		return nil, cli.Validation(`"/" must hold a CID string or a bytes object, got %T`, slash)
	}
}
