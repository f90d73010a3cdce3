// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"io"
)

// JSONOutput is an embeddable struct that adds a --compact flag to a
// command's parameter struct, together with [JSONOutput.WriteJSON].
//
//	type decodeParams struct {
//	    cli.JSONOutput
//	    HexInput bool `flag:"hex,x" desc:"treat input as hex"`
//	}
type JSONOutput struct {
	Compact bool `json:"-" flag:"compact,c" desc:"compact output (no indentation)"`
}

// WriteJSON writes value to w as JSON with a trailing newline, indented
// unless --compact is set.
func (j *JSONOutput) WriteJSON(w io.Writer, value any) error {
	return WriteJSON(w, value, j.Compact)
}

// WriteJSON encodes value as JSON followed by a newline. HTML escaping
// is disabled so text values print as they are.
func WriteJSON(w io.Writer, value any, compact bool) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if !compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(value)
}
