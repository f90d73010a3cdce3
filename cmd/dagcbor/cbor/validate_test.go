// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/dagcbor/cmd/dagcbor/cli"
	"github.com/bureau-foundation/dagcbor/lib/dagcbor"
	"github.com/bureau-foundation/dagcbor/lib/testutil"
)

func strictValidate() validateParams {
	var params validateParams
	params.MaxDepth = dagcbor.DefaultMaxDepth
	params.Floats = "float64"
	params.Tags = "link"
	return params
}

func TestValidateBlock_Valid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"single-entry map", "a1616101"},
		{"length-first keys", "a261620262616101"},
		{"nested list", "8201820203"},
		{"double", "fb3ff8000000000000"},
		{"link", "d82a450001711220"},
		{"max uint64", "1bffffffffffffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			if err := validateBlock(testutil.Hex(t, tt.data), &output, strictValidate()); err != nil {
				t.Fatalf("expected valid, got error: %v (output %q)", err, output.String())
			}
			if output.String() != "valid\n" {
				t.Errorf("output = %q, want \"valid\\n\"", output.String())
			}
		})
	}
}

func TestValidateBlock_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"unsorted keys", "a2616201616101", "invalid: MapKeyOrder at byte 4"},
		{"duplicate keys", "a2616101616102", "invalid: DuplicateMapKey at byte 4"},
		{"non-minimal length", "5801ff", "invalid: NonCanonicalLength at byte 0"},
		{"indefinite map", "bf616101ff", "invalid: IndefiniteLength at byte 0"},
		{"invalid utf-8", "6180", "invalid: InvalidUtf8 at byte 0"},
		{"trailing data", "f6f6", "invalid: TrailingData at byte 1"},
		{"single float", "fa3fc00000", "invalid: NonCanonicalFloat at byte 0"},
		{"integer key", "a10100", "invalid: NonTextMapKey at byte 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			err := validateBlock(testutil.Hex(t, tt.data), &output, strictValidate())
			var exitErr *cli.ExitError
			if !errors.As(err, &exitErr) || exitErr.Code != 1 {
				t.Fatalf("error = %v, want ExitError code 1", err)
			}
			if !strings.HasPrefix(output.String(), tt.want) {
				t.Errorf("output = %q, want prefix %q", output.String(), tt.want)
			}
		})
	}
}

func TestDescribeMismatch(t *testing.T) {
	got := describeMismatch([]byte{1, 2, 3}, []byte{1, 2, 4, 5})
	want := "re-encoding differs at byte 2 (original 3 bytes, re-encoded 4 bytes)"
	if got != want {
		t.Errorf("describeMismatch = %q, want %q", got, want)
	}
}
