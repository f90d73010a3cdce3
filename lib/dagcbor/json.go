// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dagcbor

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
)

// ToJSON renders v as a tree that encoding/json can marshal, following
// the DAG-JSON conventions for the kinds JSON lacks:
//
//   - Bytes → {"/": {"bytes": "<base64, no padding>"}}
//   - links (tag 42) → {"/": "<base32 CID string>"}
//   - other tags → {"tag": N, "value": ...}
//
// Floats always carry a fraction or exponent ("1.0", not "1") so that
// reading the JSON back yields a float again.
//
// This is a display form. Map key order is lost (encoding/json sorts
// keys lexicographically) and integers above 2^53 may lose precision
// in consumers that parse JSON numbers as doubles.
func ToJSON(v Value) any {
	switch value := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(value)
	case Int:
		if signed, ok := value.Int64(); ok {
			return signed
		}
		unsigned, _ := value.Uint64()
		return unsigned
	case Float:
		return floatNumber(float64(value))
	case String:
		return string(value)
	case Bytes:
		return map[string]any{
			"/": map[string]any{"bytes": base64.RawStdEncoding.EncodeToString(value)},
		}
	case List:
		items := make([]any, len(value))
		for i, item := range value {
			items[i] = ToJSON(item)
		}
		return items
	case *Map:
		result := make(map[string]any, value.Len())
		if value != nil {
			for _, entry := range value.Entries {
				result[entry.Key] = ToJSON(entry.Value)
			}
		}
		return result
	case Tag:
		if cid, ok := value.Link(); ok {
			return map[string]any{"/": FormatCID(cid)}
		}
		return map[string]any{"tag": value.Number, "value": ToJSON(value.Content)}
	default:
		return nil
	}
}

func floatNumber(f float64) json.Number {
	text := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(text, ".e") {
		text += ".0"
	}
	return json.Number(text)
}
