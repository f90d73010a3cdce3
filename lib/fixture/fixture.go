// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fixture

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

// Type is what a case expects of the codec.
type Type string

const (
	// TypeRoundtrip: data decodes, and re-encoding reproduces it byte
	// for byte.
	TypeRoundtrip Type = "roundtrip"

	// TypeInvalidIn: data must be rejected by the strict decoder.
	TypeInvalidIn Type = "invalid_in"

	// TypeInvalidOut: data is well-formed CBOR that a general decoder
	// accepts, but the resulting value must be rejected by the
	// adapter or encoder.
	TypeInvalidOut Type = "invalid_out"
)

// Valid reports whether t is one of the known case types.
func (t Type) Valid() bool {
	switch t {
	case TypeRoundtrip, TypeInvalidIn, TypeInvalidOut:
		return true
	default:
		return false
	}
}

// Case is one entry of a fixture file.
type Case struct {
	Type Type     `json:"type"`
	Data string   `json:"data"`
	Tags []string `json:"tags,omitempty"`

	// ID names the case for skip lists. Many cases have none.
	ID string `json:"id,omitempty"`

	// Reason is free text explaining why an invalid case is invalid.
	Reason string `json:"reason,omitempty"`
}

// Bytes decodes the case's hex payload.
func (c Case) Bytes() ([]byte, error) {
	data, err := hex.DecodeString(c.Data)
	if err != nil {
		return nil, fmt.Errorf("case %s: invalid hex data: %w", c.label(), err)
	}
	return data, nil
}

// Validate checks that the case has a known type and a decodable
// payload.
func (c Case) Validate() error {
	if !c.Type.Valid() {
		return fmt.Errorf("case %s: unknown type %q", c.label(), c.Type)
	}
	_, err := c.Bytes()
	return err
}

func (c Case) label() string {
	if c.ID != "" {
		return fmt.Sprintf("%q", c.ID)
	}
	return fmt.Sprintf("with data %.16q", c.Data)
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result into a list of cases. Plain JSON passes
// through the stripping unchanged.
func Parse(data []byte) ([]Case, error) {
	stripped := jsonc.ToJSON(data)

	var cases []Case
	if err := json.Unmarshal(stripped, &cases); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return cases, nil
}
