// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dagcbor

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/bureau-foundation/dagcbor/lib/testutil"
)

func TestEncode_Values(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"zero", NewInt(0), "00"},
		{"23", NewInt(23), "17"},
		{"24", NewInt(24), "1818"},
		{"500", NewInt(500), "1901f4"},
		{"2^32", NewInt(1 << 32), "1b0000000100000000"},
		{"max uint64", NewUint(math.MaxUint64), "1bffffffffffffffff"},
		{"minus one", NewInt(-1), "20"},
		{"minus 24", NewInt(-24), "37"},
		{"minus 25", NewInt(-25), "3818"},
		{"min int64", NewInt(math.MinInt64), "3b7fffffffffffffff"},
		{"null", Null{}, "f6"},
		{"true", Bool(true), "f5"},
		{"false", Bool(false), "f4"},
		{"double", Float(1.5), "fb3ff8000000000000"},
		{"whole double stays double", Float(1), "fb3ff0000000000000"},
		{"empty bytes", Bytes{}, "40"},
		{"nil bytes", Bytes(nil), "40"},
		{"text", String("a"), "6161"},
		{"empty list", List{}, "80"},
		{"list", List{NewInt(1), String("a")}, "82016161"},
		{"empty map", NewMap(), "a0"},
		{"single entry map", NewMap(Entry{"a", NewInt(1)}), "a1616101"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Encode(test.value)
			if err != nil {
				t.Fatalf("Encode error: %v", err)
			}
			if hex.EncodeToString(got) != test.want {
				t.Errorf("Encode = %x, want %s", got, test.want)
			}
		})
	}
}

func TestEncode_StringLengthBoundaries(t *testing.T) {
	tests := []struct {
		length int
		header string
	}{
		{23, "77"},
		{24, "7818"},
		{255, "78ff"},
		{256, "790100"},
	}
	for _, test := range tests {
		got, err := Encode(String(strings.Repeat("x", test.length)))
		if err != nil {
			t.Fatalf("Encode(%d-byte string) error: %v", test.length, err)
		}
		header := hex.EncodeToString(got[:len(got)-test.length])
		if header != test.header {
			t.Errorf("%d-byte string header = %s, want %s", test.length, header, test.header)
		}
	}
}

func TestEncode_MapOrder(t *testing.T) {
	forward := NewMap(Entry{"a", NewInt(2)}, Entry{"b", NewInt(1)})
	backward := NewMap(Entry{"b", NewInt(1)}, Entry{"a", NewInt(2)})

	first, err := Encode(forward)
	if err != nil {
		t.Fatalf("Encode(forward) error: %v", err)
	}
	second, err := Encode(backward)
	if err != nil {
		t.Fatalf("Encode(backward) error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("insertion order changed the encoding: %x vs %x", first, second)
	}
	if want := "a2616102616201"; hex.EncodeToString(first) != want {
		t.Errorf("Encode = %x, want %s", first, want)
	}

	// "b" sorts before "aa" because its encoding is shorter.
	lengthFirst, err := Encode(NewMap(Entry{"aa", NewInt(1)}, Entry{"b", NewInt(2)}))
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if want := "a261620262616101"; hex.EncodeToString(lengthFirst) != want {
		t.Errorf("Encode = %x, want %s", lengthFirst, want)
	}
}

func TestEncode_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		options EncodeOptions
		value   Value
		want    *Error
	}{
		{"nil", EncodeOptions{}, nil, ErrUnsupportedValue},
		{"nil inside list", EncodeOptions{}, List{nil}, ErrUnsupportedValue},
		{"nil inside map", EncodeOptions{}, NewMap(Entry{"a", nil}), ErrUnsupportedValue},
		{"nil map pointer", EncodeOptions{}, (*Map)(nil), ErrUnsupportedValue},
		{"NaN", EncodeOptions{}, Float(math.NaN()), ErrNonCanonicalFloat},
		{"infinity", EncodeOptions{}, Float(math.Inf(1)), ErrNonCanonicalFloat},
		{"float under reject policy", EncodeOptions{Floats: FloatsReject}, Float(1), ErrUnsupportedValue},
		{"invalid UTF-8 text", EncodeOptions{}, String("\xff"), ErrInvalidUTF8},
		{"invalid UTF-8 key", EncodeOptions{}, NewMap(Entry{"\xff", Null{}}), ErrInvalidUTF8},
		{
			name:    "duplicate key",
			options: EncodeOptions{},
			value:   NewMap(Entry{"a", NewInt(1)}, Entry{"b", NewInt(2)}, Entry{"a", NewInt(3)}),
			want:    ErrDuplicateMapKey,
		},
		{"unknown tag", EncodeOptions{}, Tag{Number: 1, Content: NewInt(0)}, ErrUnsupportedTag},
		{"link wrapping text", EncodeOptions{}, Tag{Number: TagCID, Content: String("x")}, ErrUnsupportedTag},
		{"link without prefix", EncodeOptions{}, Tag{Number: TagCID, Content: Bytes{0x01, 0x71}}, ErrUnsupportedTag},
		{"too deep", EncodeOptions{MaxDepth: 2}, List{List{List{}}}, ErrMaxDepthExceeded},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			encoded, err := test.options.Encode(test.value)
			if !errors.Is(err, test.want) {
				t.Fatalf("Encode error = %v, want %s", err, test.want.Kind)
			}
			if encoded != nil {
				t.Errorf("Encode returned %x alongside error", encoded)
			}
			var codecErr *Error
			if errors.As(err, &codecErr) && codecErr.Offset != -1 {
				t.Errorf("Offset = %d, want -1 for an encode error", codecErr.Offset)
			}
		})
	}
}

func TestEncode_DuplicateKeyMessageNamesKey(t *testing.T) {
	_, err := Encode(NewMap(Entry{"same", Null{}}, Entry{"same", Null{}}))
	if err == nil || !strings.Contains(err.Error(), `"same"`) {
		t.Errorf("error = %v, want it to name the key \"same\"", err)
	}
}

func TestEncode_DoesNotReorderInput(t *testing.T) {
	m := NewMap(Entry{"b", NewInt(1)}, Entry{"a", NewInt(2)})
	if _, err := Encode(m); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if m.Entries[0].Key != "b" || m.Entries[1].Key != "a" {
		t.Errorf("Encode mutated the map: %#v", m.Entries)
	}
}

// Every canonical input must decode and re-encode to identical bytes.
func TestRoundTrip_CanonicalInputs(t *testing.T) {
	inputs := []string{
		"00", "17", "1818", "19ffff", "1a00010000", "1bffffffffffffffff",
		"20", "3818", "3b7fffffffffffffff",
		"f4", "f5", "f6",
		"fb0000000000000000", "fb8000000000000000", "fbc010666666666666",
		"40", "43010203", "60", "6449455446",
		"80", "8301820203820405",
		"a0", "a1616101", "a2616101616202", "a2616201626161f5",
		"a161618261626163",
		"d82a58250001711220" + strings.Repeat("ab", 32),
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			data := testutil.Hex(t, input)
			value, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			encoded, err := Encode(value)
			if err != nil {
				t.Fatalf("Encode error: %v", err)
			}
			if !bytes.Equal(encoded, data) {
				t.Errorf("round trip = %x, want %x", encoded, data)
			}
		})
	}
}

// Encoding a decoded value and decoding again yields an equal tree.
func TestRoundTrip_EncodeThenDecode(t *testing.T) {
	original := NewMap(
		Entry{"list", List{NewInt(-5), Float(0.25), Bytes{0xde, 0xad}}},
		Entry{"nested", NewMap(Entry{"ok", Bool(true)}, Entry{"nothing", Null{}})},
		Entry{"big", NewUint(math.MaxUint64)},
	)
	encoded, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	reencoded, err := Encode(decoded)
	if err != nil {
		t.Fatalf("re-Encode error: %v", err)
	}
	if !bytes.Equal(encoded, reencoded) {
		t.Errorf("re-encoding differs: %x vs %x", encoded, reencoded)
	}

	// Decoded maps come back sorted.
	keys := make([]string, 0, 3)
	for _, entry := range decoded.(*Map).Entries {
		keys = append(keys, entry.Key)
	}
	if strings.Join(keys, ",") != "big,list,nested" {
		t.Errorf("decoded key order = %v, want [big list nested]", keys)
	}
}
