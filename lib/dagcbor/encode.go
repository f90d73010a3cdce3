// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dagcbor

import (
	"bytes"
	"encoding/binary"
	"math"
	"slices"
	"unicode/utf8"
)

// Encode returns the canonical DAG-CBOR encoding of v using the
// default profile.
func Encode(v Value) ([]byte, error) {
	return EncodeOptions{}.Encode(v)
}

// Encode returns the canonical encoding of v. Map entries are emitted
// in ascending order of their encoded keys regardless of the order in
// the Map; a Map holding the same key twice is rejected with
// [KindDuplicateMapKey]. The only other failures are values a caller
// can construct but DAG-CBOR cannot express: invalid UTF-8, NaN or
// infinite floats, disallowed tags, nil values, or nesting deeper than
// MaxDepth.
func (o EncodeOptions) Encode(v Value) ([]byte, error) {
	e := encoder{
		maxDepth: effectiveMaxDepth(o.MaxDepth),
		floats:   o.Floats,
		tags:     o.Tags,
	}
	if err := e.value(v, 0); err != nil {
		return nil, err
	}
	return e.buf, nil
}

type encoder struct {
	buf      []byte
	maxDepth int
	floats   FloatPolicy
	tags     TagPolicy
}

// encodedEntry is a map entry with its key already encoded, ready for
// sorting.
type encodedEntry struct {
	key   []byte
	value Value
}

func (e *encoder) enter(depth int) error {
	if depth+1 > e.maxDepth {
		return valueError(KindMaxDepthExceeded, "nesting exceeds %d", e.maxDepth)
	}
	return nil
}

func (e *encoder) value(v Value, depth int) error {
	switch value := v.(type) {
	case nil:
		return valueError(KindUnsupportedValue, "nil value")

	case Null:
		e.buf = append(e.buf, simpleNull)

	case Bool:
		if value {
			e.buf = append(e.buf, simpleTrue)
		} else {
			e.buf = append(e.buf, simpleFalse)
		}

	case Int:
		if value.negative {
			e.buf = appendHeader(e.buf, majorNegative, value.magnitude)
		} else {
			e.buf = appendHeader(e.buf, majorUnsigned, value.magnitude)
		}

	case Float:
		number := float64(value)
		if e.floats == FloatsReject {
			return valueError(KindUnsupportedValue, "floats are not accepted")
		}
		if math.IsNaN(number) || math.IsInf(number, 0) {
			return valueError(KindNonCanonicalFloat, "%v is not representable", number)
		}
		e.buf = append(e.buf, floatDouble)
		e.buf = binary.BigEndian.AppendUint64(e.buf, math.Float64bits(number))

	case Bytes:
		e.buf = appendHeader(e.buf, majorBytes, uint64(len(value)))
		e.buf = append(e.buf, value...)

	case String:
		if !utf8.ValidString(string(value)) {
			return valueError(KindInvalidUTF8, "text string is not valid UTF-8")
		}
		e.buf = appendHeader(e.buf, majorText, uint64(len(value)))
		e.buf = append(e.buf, value...)

	case List:
		if err := e.enter(depth); err != nil {
			return err
		}
		e.buf = appendHeader(e.buf, majorArray, uint64(len(value)))
		for _, item := range value {
			if err := e.value(item, depth+1); err != nil {
				return err
			}
		}

	case *Map:
		if value == nil {
			return valueError(KindUnsupportedValue, "nil map")
		}
		if err := e.enter(depth); err != nil {
			return err
		}
		return e.mapValue(value, depth)

	case Tag:
		if e.tags == TagsLinkOnly && value.Number != TagCID {
			return valueError(KindUnsupportedTag, "tag %d", value.Number)
		}
		if value.Number == TagCID {
			if err := checkLink(value); err != nil {
				return err
			}
		}
		if err := e.enter(depth); err != nil {
			return err
		}
		e.buf = appendHeader(e.buf, majorTag, value.Number)
		return e.value(value.Content, depth+1)

	default:
		return valueError(KindUnsupportedValue, "unknown value type %T", v)
	}
	return nil
}

func (e *encoder) mapValue(m *Map, depth int) error {
	entries := make([]encodedEntry, len(m.Entries))
	for i, entry := range m.Entries {
		if !utf8.ValidString(entry.Key) {
			return valueError(KindInvalidUTF8, "map key is not valid UTF-8")
		}
		key := appendHeader(make([]byte, 0, len(entry.Key)+9), majorText, uint64(len(entry.Key)))
		entries[i] = encodedEntry{key: append(key, entry.Key...), value: entry.Value}
	}

	// Byte-wise order of the encoded key puts shorter keys first (the
	// header grows with length) and breaks ties lexicographically.
	slices.SortFunc(entries, func(a, b encodedEntry) int {
		return bytes.Compare(a.key, b.key)
	})
	for i := 1; i < len(entries); i++ {
		if bytes.Equal(entries[i-1].key, entries[i].key) {
			return valueError(KindDuplicateMapKey, "duplicate key %q", keyText(entries[i].key))
		}
	}

	e.buf = appendHeader(e.buf, majorMap, uint64(len(entries)))
	for _, entry := range entries {
		e.buf = append(e.buf, entry.key...)
		if err := e.value(entry.value, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// keyText recovers the key string from its encoded form.
func keyText(encoded []byte) string {
	width := argumentWidth(encoded[0] & infoMask)
	return string(encoded[1+width:])
}
