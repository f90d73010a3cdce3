// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dagcbor

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fxamacker/cbor/v2"
)

// FromGeneric converts a loosely-typed tree into a Value using the
// default profile. See [AdaptOptions.FromGeneric].
func FromGeneric(v any) (Value, error) {
	return AdaptOptions{}.FromGeneric(v)
}

// FromGeneric converts a loosely-typed tree, as produced by a
// general-purpose CBOR or JSON decoder, into a Value.
//
// Accepted shapes: nil, bool, every Go integer type, float32 and
// float64, json.Number, string, []byte, []any, map[string]any,
// map[any]any with string keys, cbor.Tag, and Value itself. Anything
// else (bignums, timestamps, CBOR simple values, structs) has no
// DAG-CBOR form and is reported as [KindUnsupportedValue]; a non-string
// map key is [KindNonTextMapKey]. The conversion never panics.
//
// Maps are converted in Go iteration order. The resulting Map is
// unsorted; [Encode] puts it in canonical order.
func (o AdaptOptions) FromGeneric(v any) (Value, error) {
	a := adapter{
		maxDepth: effectiveMaxDepth(o.MaxDepth),
		floats:   o.Floats,
		tags:     o.Tags,
	}
	return a.convert(v, 0)
}

type adapter struct {
	maxDepth int
	floats   FloatPolicy
	tags     TagPolicy
}

func (a *adapter) enter(depth int) error {
	if depth+1 > a.maxDepth {
		return valueError(KindMaxDepthExceeded, "nesting exceeds %d", a.maxDepth)
	}
	return nil
}

func (a *adapter) convert(v any, depth int) (Value, error) {
	switch value := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return value, nil

	case bool:
		return Bool(value), nil

	case int:
		return NewInt(int64(value)), nil
	case int8:
		return NewInt(int64(value)), nil
	case int16:
		return NewInt(int64(value)), nil
	case int32:
		return NewInt(int64(value)), nil
	case int64:
		return NewInt(value), nil
	case uint:
		return NewUint(uint64(value)), nil
	case uint8:
		return NewUint(uint64(value)), nil
	case uint16:
		return NewUint(uint64(value)), nil
	case uint32:
		return NewUint(uint64(value)), nil
	case uint64:
		return NewUint(value), nil

	case float32:
		return a.float(float64(value))
	case float64:
		return a.float(value)
	case json.Number:
		return a.number(value)

	case string:
		if !utf8.ValidString(value) {
			return nil, valueError(KindInvalidUTF8, "text string is not valid UTF-8")
		}
		return String(value), nil
	case []byte:
		return Bytes(value), nil

	case []any:
		if err := a.enter(depth); err != nil {
			return nil, err
		}
		items := make(List, len(value))
		for i, element := range value {
			item, err := a.convert(element, depth+1)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return items, nil

	case map[string]any:
		if err := a.enter(depth); err != nil {
			return nil, err
		}
		result := &Map{Entries: make([]Entry, 0, len(value))}
		for key, element := range value {
			if err := a.entry(result, key, element, depth); err != nil {
				return nil, err
			}
		}
		return result, nil

	case map[any]any:
		if err := a.enter(depth); err != nil {
			return nil, err
		}
		result := &Map{Entries: make([]Entry, 0, len(value))}
		for key, element := range value {
			text, ok := key.(string)
			if !ok {
				return nil, valueError(KindNonTextMapKey, "map key of type %T", key)
			}
			if err := a.entry(result, text, element, depth); err != nil {
				return nil, err
			}
		}
		return result, nil

	case cbor.Tag:
		return a.tag(value.Number, value.Content, depth)
	case *cbor.Tag:
		if value == nil {
			return nil, valueError(KindUnsupportedValue, "nil tag")
		}
		return a.tag(value.Number, value.Content, depth)

	case big.Int:
		return nil, bignumError(&value)
	case *big.Int:
		if value == nil {
			return nil, valueError(KindUnsupportedValue, "nil bignum")
		}
		return nil, bignumError(value)
	case time.Time:
		return nil, valueError(KindUnsupportedValue, "timestamp has no DAG-CBOR form")
	case cbor.SimpleValue:
		return nil, valueError(KindUnsupportedValue, "simple value %d", uint8(value))

	default:
		return nil, valueError(KindUnsupportedValue, "unsupported type %T", v)
	}
}

// bignumError classifies a big.Int, which general decoders produce for
// bignum tags and for negative integers below -2^63. Values outside the
// integer range are overflows. The rest are unsupported bignum forms.
func bignumError(value *big.Int) *Error {
	if value.IsInt64() || value.IsUint64() {
		return valueError(KindUnsupportedValue, "bignum %s has no DAG-CBOR form", value)
	}
	return valueError(KindIntegerOverflow, "integer %s outside [-2^63, 2^64-1]", value)
}

func (a *adapter) entry(m *Map, key string, element any, depth int) error {
	if !utf8.ValidString(key) {
		return valueError(KindInvalidUTF8, "map key is not valid UTF-8")
	}
	item, err := a.convert(element, depth+1)
	if err != nil {
		return err
	}
	m.Entries = append(m.Entries, Entry{Key: key, Value: item})
	return nil
}

func (a *adapter) tag(number uint64, content any, depth int) (Value, error) {
	if a.tags == TagsLinkOnly && number != TagCID {
		return nil, valueError(KindUnsupportedTag, "tag %d", number)
	}
	if err := a.enter(depth); err != nil {
		return nil, err
	}
	inner, err := a.convert(content, depth+1)
	if err != nil {
		return nil, err
	}
	tagged := Tag{Number: number, Content: inner}
	if number == TagCID {
		if err := checkLink(tagged); err != nil {
			return nil, err
		}
	}
	return tagged, nil
}

func (a *adapter) float(number float64) (Value, error) {
	if a.floats == FloatsReject {
		return nil, valueError(KindUnsupportedValue, "floats are not accepted")
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return nil, valueError(KindNonCanonicalFloat, "%v is not representable", number)
	}
	return Float(number), nil
}

// number converts a JSON number literal. Literals without a fraction
// or exponent are integers and must fit the integer range; the rest
// are floats.
func (a *adapter) number(literal json.Number) (Value, error) {
	text := literal.String()
	if !strings.ContainsAny(text, ".eE") {
		if signed, err := strconv.ParseInt(text, 10, 64); err == nil {
			return NewInt(signed), nil
		}
		if unsigned, err := strconv.ParseUint(text, 10, 64); err == nil {
			return NewUint(unsigned), nil
		}
		return nil, valueError(KindIntegerOverflow, "integer %s outside [-2^63, 2^64-1]", text)
	}
	number, err := literal.Float64()
	if err != nil {
		return nil, valueError(KindNonCanonicalFloat, "number %s is not a finite double", text)
	}
	return a.float(number)
}
