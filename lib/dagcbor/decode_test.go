// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dagcbor

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/bureau-foundation/dagcbor/lib/testutil"
)

func TestDecode_Scalars(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want Value
	}{
		{"zero", "00", NewInt(0)},
		{"largest immediate", "17", NewInt(23)},
		{"one-byte argument", "1818", NewInt(24)},
		{"one-byte max", "18ff", NewInt(255)},
		{"two-byte argument", "190100", NewInt(256)},
		{"four-byte argument", "1a00010000", NewInt(65536)},
		{"eight-byte argument", "1b0000000100000000", NewInt(1 << 32)},
		{"max uint64", "1bffffffffffffffff", NewUint(math.MaxUint64)},
		{"minus one", "20", NewInt(-1)},
		{"min int64", "3b7fffffffffffffff", NewInt(math.MinInt64)},
		{"false", "f4", Bool(false)},
		{"true", "f5", Bool(true)},
		{"null", "f6", Null{}},
		{"double", "fb3ff8000000000000", Float(1.5)},
		{"negative zero", "fb8000000000000000", Float(math.Copysign(0, -1))},
		{"empty bytes", "40", Bytes{}},
		{"bytes", "4401020304", Bytes{1, 2, 3, 4}},
		{"empty text", "60", String("")},
		{"text", "6161", String("a")},
		{"multibyte text", "62c3a9", String("é")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Decode(testutil.Hex(t, test.hex))
			if err != nil {
				t.Fatalf("Decode(%s) error: %v", test.hex, err)
			}
			if !Equal(got, test.want) {
				t.Errorf("Decode(%s) = %#v, want %#v", test.hex, got, test.want)
			}
		})
	}
}

func TestDecode_SingleEntryMap(t *testing.T) {
	input := testutil.Hex(t, "a1616101")

	value, err := Decode(input)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	decoded, ok := value.(*Map)
	if !ok {
		t.Fatalf("Decode returned %T, want *Map", value)
	}
	if decoded.Len() != 1 || decoded.Entries[0].Key != "a" {
		t.Fatalf("entries = %#v, want one entry with key \"a\"", decoded.Entries)
	}
	if !Equal(decoded.Entries[0].Value, NewInt(1)) {
		t.Errorf("value of \"a\" = %#v, want 1", decoded.Entries[0].Value)
	}

	encoded, err := Encode(value)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if !bytes.Equal(encoded, input) {
		t.Errorf("Encode = %x, want %x", encoded, input)
	}
}

func TestDecode_Containers(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want Value
	}{
		{"empty array", "80", List{}},
		{"array", "83010203", List{NewInt(1), NewInt(2), NewInt(3)}},
		{"nested array", "8281018102", List{List{NewInt(1)}, List{NewInt(2)}}},
		{"empty map", "a0", NewMap()},
		{
			name: "sorted keys",
			hex:  "a2616101616202",
			want: NewMap(Entry{"a", NewInt(1)}, Entry{"b", NewInt(2)}),
		},
		{
			name: "shorter key sorts first",
			hex:  "a2616201626161f5",
			want: NewMap(Entry{"b", NewInt(1)}, Entry{"aa", Bool(true)}),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Decode(testutil.Hex(t, test.hex))
			if err != nil {
				t.Fatalf("Decode(%s) error: %v", test.hex, err)
			}
			if !Equal(got, test.want) {
				t.Errorf("Decode(%s) = %#v, want %#v", test.hex, got, test.want)
			}
		})
	}
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want *Error
	}{
		{"empty input", "", ErrUnexpectedEnd},
		{"overlong uint8", "1817", ErrNonCanonicalLength},
		{"overlong uint16", "1900ff", ErrNonCanonicalLength},
		{"overlong uint32", "1a0000ffff", ErrNonCanonicalLength},
		{"overlong uint64", "1b00000000ffffffff", ErrNonCanonicalLength},
		{"overlong string length", "5801ff", ErrNonCanonicalLength},
		{"overlong tag number", "d8012a", ErrNonCanonicalLength},
		{"indefinite array", "9f00ff", ErrIndefiniteLength},
		{"indefinite bytes", "5f40ff", ErrIndefiniteLength},
		{"indefinite text", "7f60ff", ErrIndefiniteLength},
		{"indefinite map", "bfff", ErrIndefiniteLength},
		{"lone continuation byte", "6180", ErrInvalidUTF8},
		{"encoded surrogate", "63eda080", ErrInvalidUTF8},
		{"integer key", "a10101", ErrNonTextMapKey},
		{"byte string key", "a1416101", ErrNonTextMapKey},
		{"unsorted keys", "a2616201616101", ErrMapKeyOrder},
		{"longer key first", "a262616101616202", ErrMapKeyOrder},
		{"duplicate keys", "a2616101616102", ErrDuplicateMapKey},
		{"unknown tag", "c100", ErrUnsupportedTag},
		{"bignum tag", "c249010000000000000000", ErrUnsupportedTag},
		{"link too short", "d82a4100", ErrUnsupportedTag},
		{"link without identity prefix", "d82a420171", ErrUnsupportedTag},
		{"link wrapping text", "d82a6161", ErrUnsupportedTag},
		{"negative below int64", "3b8000000000000000", ErrIntegerOverflow},
		{"most negative cbor integer", "3bffffffffffffffff", ErrIntegerOverflow},
		{"half float", "f93c00", ErrNonCanonicalFloat},
		{"single float", "fa3fc00000", ErrNonCanonicalFloat},
		{"NaN", "fb7ff8000000000000", ErrNonCanonicalFloat},
		{"infinity", "fb7ff0000000000000", ErrNonCanonicalFloat},
		{"negative infinity", "fbfff0000000000000", ErrNonCanonicalFloat},
		{"undefined", "f7", ErrUnsupportedValue},
		{"small simple value", "f0", ErrUnsupportedValue},
		{"one-byte simple value", "f820", ErrUnsupportedValue},
		{"trailing data", "0000", ErrTrailingData},
		{"trailing after map", "a0f6", ErrTrailingData},
		{"reserved additional information", "1c", ErrMalformed},
		{"stray break", "ff", ErrMalformed},
		{"indefinite integer", "1f", ErrMalformed},
		{"truncated argument", "18", ErrUnexpectedEnd},
		{"truncated text", "6261", ErrUnexpectedEnd},
		{"truncated array", "830102", ErrUnexpectedEnd},
		{"truncated map value", "a16161", ErrUnexpectedEnd},
		{"truncated double", "fb3ff8", ErrUnexpectedEnd},
		{"huge declared length", "5bffffffffffffffff", ErrUnexpectedEnd},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			value, err := Decode(testutil.Hex(t, test.hex))
			if err == nil {
				t.Fatalf("Decode(%s) = %#v, want %s error", test.hex, value, test.want.Kind)
			}
			if !errors.Is(err, test.want) {
				t.Errorf("Decode(%s) error = %v, want kind %s", test.hex, err, test.want.Kind)
			}
			if value != nil {
				t.Errorf("Decode(%s) returned partial value %#v alongside error", test.hex, value)
			}
		})
	}
}

func TestDecode_ErrorOffset(t *testing.T) {
	// {"b": 1, "a": 1}: the offending key "a" starts at byte 4.
	_, err := Decode(testutil.Hex(t, "a2616201616101"))
	var codecErr *Error
	if !errors.As(err, &codecErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if codecErr.Kind != KindMapKeyOrder {
		t.Errorf("Kind = %s, want %s", codecErr.Kind, KindMapKeyOrder)
	}
	if codecErr.Offset != 4 {
		t.Errorf("Offset = %d, want 4", codecErr.Offset)
	}
	if KindOf(err) != KindMapKeyOrder {
		t.Errorf("KindOf = %s, want %s", KindOf(err), KindMapKeyOrder)
	}
}

func TestDecode_DepthCeiling(t *testing.T) {
	// 1000 nested single-element arrays around a zero.
	deep := append(bytes.Repeat([]byte{0x81}, 1000), 0x00)
	_, err := Decode(deep)
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("Decode(1000 nested arrays) error = %v, want %s", err, KindMaxDepthExceeded)
	}

	options := DecodeOptions{MaxDepth: 3}
	if _, err := options.Decode(testutil.Hex(t, "81818100")); err != nil {
		t.Errorf("depth 3 with MaxDepth 3: %v", err)
	}
	if _, err := options.Decode(testutil.Hex(t, "8181818100")); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("depth 4 with MaxDepth 3: error = %v, want %s", err, KindMaxDepthExceeded)
	}
	// Maps and tags count as levels too.
	if _, err := options.Decode(testutil.Hex(t, "a161618181a0")); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("map depth 4 with MaxDepth 3: error = %v, want %s", err, KindMaxDepthExceeded)
	}
}

func TestDecode_InputCeiling(t *testing.T) {
	options := DecodeOptions{MaxInputSize: 3}
	if _, err := options.Decode(testutil.Hex(t, "820102")); err != nil {
		t.Errorf("3-byte input with ceiling 3: %v", err)
	}
	if _, err := options.Decode(testutil.Hex(t, "83010203")); !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("4-byte input with ceiling 3: error = %v, want %s", err, KindInputTooLarge)
	}
}

func TestDecode_FloatPolicy(t *testing.T) {
	double := testutil.Hex(t, "fb3ff8000000000000")

	t.Run("float64 only", func(t *testing.T) {
		value, err := DecodeOptions{Floats: FloatsFloat64Only}.Decode(double)
		if err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		if !Equal(value, Float(1.5)) {
			t.Errorf("Decode = %#v, want 1.5", value)
		}
	})

	t.Run("reject", func(t *testing.T) {
		options := DecodeOptions{Floats: FloatsReject}
		for _, input := range []string{"fb3ff8000000000000", "f93c00", "fa3fc00000"} {
			if _, err := options.Decode(testutil.Hex(t, input)); !errors.Is(err, ErrUnsupportedValue) {
				t.Errorf("Decode(%s) error = %v, want %s", input, err, KindUnsupportedValue)
			}
		}
		// Integers are unaffected.
		if _, err := options.Decode(testutil.Hex(t, "01")); err != nil {
			t.Errorf("Decode(01) error: %v", err)
		}
	})
}

func TestDecode_TagPolicy(t *testing.T) {
	input := testutil.Hex(t, "c100")

	value, err := DecodeOptions{Tags: TagsAny}.Decode(input)
	if err != nil {
		t.Fatalf("Decode with TagsAny error: %v", err)
	}
	want := Tag{Number: 1, Content: NewInt(0)}
	if !Equal(value, want) {
		t.Errorf("Decode = %#v, want %#v", value, want)
	}

	encoded, err := EncodeOptions{Tags: TagsAny}.Encode(value)
	if err != nil {
		t.Fatalf("Encode with TagsAny error: %v", err)
	}
	if !bytes.Equal(encoded, input) {
		t.Errorf("Encode = %x, want %x", encoded, input)
	}

	// Tag 42 content rules apply under TagsAny as well.
	if _, err := (DecodeOptions{Tags: TagsAny}).Decode(testutil.Hex(t, "d82a6161")); !errors.Is(err, ErrUnsupportedTag) {
		t.Errorf("link wrapping text under TagsAny: error = %v, want %s", err, KindUnsupportedTag)
	}
}

func TestDecode_BytesAreCopied(t *testing.T) {
	input := testutil.Hex(t, "4401020304")
	value, err := Decode(input)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	input[1] = 0xff
	if got := value.(Bytes); got[0] != 0x01 {
		t.Errorf("decoded bytes alias the input: %x", got)
	}
}
