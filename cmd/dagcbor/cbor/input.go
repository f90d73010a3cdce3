// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/bureau-foundation/dagcbor/cmd/dagcbor/cli"
	"github.com/bureau-foundation/dagcbor/lib/dagcbor"
)

// stdin is replaced by tests.
var stdin io.Reader = os.Stdin

// inputParams is embedded by every subcommand that reads CBOR.
type inputParams struct {
	HexInput bool `json:"hex_input" flag:"hex,x" desc:"treat input as hex-encoded CBOR"`
}

// readInput resolves input data from either a file (the last element
// of args, if it names a regular file on disk) or stdin.
//
// When hexMode is true, the raw bytes are treated as hex-encoded CBOR:
// whitespace is stripped and the hex is decoded to binary.
//
// Returns the input bytes and the args with any consumed file path
// removed.
func readInput(args []string, hexMode bool) ([]byte, []string, error) {
	var data []byte
	remainingArgs := args

	if length := len(args); length > 0 {
		candidate := args[length-1]
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			data, err = readFile(candidate)
			if err != nil {
				return nil, nil, cli.Internal("read %s: %w", candidate, err)
			}
			remainingArgs = args[:length-1]
		}
	}

	if data == nil {
		var err error
		data, err = readLimited(stdin)
		if err != nil {
			return nil, nil, cli.Internal("read stdin: %w", err)
		}
	}

	if hexMode {
		decoded, err := decodeHexInput(data)
		if err != nil {
			return nil, nil, err
		}
		data = decoded
	}

	if len(data) == 0 {
		return nil, nil, cli.Validation("empty input: expected data on stdin or a file argument")
	}
	return data, remainingArgs, nil
}

// maxRead bounds how much input is buffered: the decoder's ceiling,
// doubled for hex, plus one byte so oversize input still reaches the
// decoder and fails there with InputTooLarge.
const maxRead = 2*dagcbor.DefaultMaxInputSize + 1

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return readLimited(file)
}

func readLimited(reader io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(reader, maxRead))
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it to binary bytes. Whitespace between hex digit pairs is allowed
// (e.g., "a1 61 61 01" or "a1616101").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, cli.Validation("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, cli.Validation("decode hex: %w", err)
	}
	return decoded[:count], nil
}

// noExtraArgs rejects positional arguments left after the optional file.
func noExtraArgs(command string, args []string) error {
	if len(args) > 0 {
		return cli.Validation("%s takes no positional arguments besides an optional file path, got %q", command, args[0])
	}
	return nil
}

// writeOutput writes binary output, or its hex form when hexOutput is
// set. Binary output is refused when w is an interactive terminal.
func writeOutput(w io.Writer, data []byte, hexOutput bool) error {
	if hexOutput {
		_, err := fmt.Fprintln(w, hex.EncodeToString(data))
		return err
	}
	if file, ok := w.(*os.File); ok && cli.IsTerminal(file) {
		return cli.Validation("refusing to write binary CBOR to a terminal; redirect stdout or pass --hex-output")
	}
	_, err := w.Write(data)
	return err
}
