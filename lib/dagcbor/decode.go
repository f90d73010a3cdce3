// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dagcbor

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Decode parses data as a single canonical DAG-CBOR item using the
// default profile.
func Decode(data []byte) (Value, error) {
	return DecodeOptions{}.Decode(data)
}

// Decode parses data as a single canonical DAG-CBOR item. The whole
// input must be consumed. Any deviation from canonical form is an
// [*Error]; no partial value is returned.
func (o DecodeOptions) Decode(data []byte) (Value, error) {
	maxInput := o.MaxInputSize
	if maxInput <= 0 {
		maxInput = DefaultMaxInputSize
	}
	if len(data) > maxInput {
		return nil, decodeError(KindInputTooLarge, 0, "%d bytes exceeds limit of %d", len(data), maxInput)
	}
	if len(data) == 0 {
		return nil, decodeError(KindUnexpectedEnd, 0, "empty input")
	}

	d := decoder{
		data:     data,
		maxDepth: effectiveMaxDepth(o.MaxDepth),
		floats:   o.Floats,
		tags:     o.Tags,
	}
	value, err := d.value(0)
	if err != nil {
		return nil, err
	}
	if d.offset != len(data) {
		return nil, decodeError(KindTrailingData, d.offset, "%d bytes after top-level item", len(data)-d.offset)
	}
	return value, nil
}

type decoder struct {
	data     []byte
	offset   int
	maxDepth int
	floats   FloatPolicy
	tags     TagPolicy
}

func (d *decoder) remaining() int {
	return len(d.data) - d.offset
}

// value decodes the item at d.offset. depth is the number of
// containers enclosing it.
func (d *decoder) value(depth int) (Value, error) {
	start := d.offset
	if d.remaining() < 1 {
		return nil, decodeError(KindUnexpectedEnd, start, "expected item")
	}
	initial := d.data[d.offset]
	major := initial & majorMask
	info := initial & infoMask

	if major == majorSimple {
		return d.simple(start, initial)
	}

	if info == infoIndefinite {
		switch major {
		case majorBytes, majorText, majorArray, majorMap:
			return nil, decodeError(KindIndefiniteLength, start, "indefinite-length %s", majorName(major))
		default:
			return nil, decodeError(KindMalformed, start, "indefinite marker on %s", majorName(major))
		}
	}

	arg, err := d.argument(start, info)
	if err != nil {
		return nil, err
	}

	switch major {
	case majorUnsigned:
		return Int{magnitude: arg}, nil

	case majorNegative:
		if arg > math.MaxInt64 {
			return nil, decodeError(KindIntegerOverflow, start, "negative integer -1-%d below -2^63", arg)
		}
		return Int{negative: true, magnitude: arg}, nil

	case majorBytes:
		payload, err := d.payload(start, arg)
		if err != nil {
			return nil, err
		}
		return Bytes(bytes.Clone(payload)), nil

	case majorText:
		payload, err := d.payload(start, arg)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(payload) {
			return nil, decodeError(KindInvalidUTF8, start, "text string is not valid UTF-8")
		}
		return String(payload), nil

	case majorArray:
		return d.list(start, arg, depth)

	case majorMap:
		return d.mapValue(start, arg, depth)

	default:
		return d.tag(start, arg, depth)
	}
}

// argument reads the argument following the initial byte at start and
// enforces shortest-form encoding.
func (d *decoder) argument(start int, info byte) (uint64, error) {
	width := argumentWidth(info)
	if width < 0 {
		return 0, decodeError(KindMalformed, start, "reserved additional information %d", info)
	}
	d.offset++
	if width == 0 {
		return uint64(info), nil
	}
	if d.remaining() < width {
		return 0, decodeError(KindUnexpectedEnd, start, "%d-byte argument truncated", width)
	}
	raw := d.data[d.offset : d.offset+width]
	d.offset += width

	var arg uint64
	switch width {
	case 1:
		arg = uint64(raw[0])
	case 2:
		arg = uint64(binary.BigEndian.Uint16(raw))
	case 4:
		arg = uint64(binary.BigEndian.Uint32(raw))
	default:
		arg = binary.BigEndian.Uint64(raw)
	}
	if !minimalFor(width, arg) {
		return 0, decodeError(KindNonCanonicalLength, start, "argument %d encoded in %d bytes", arg, width)
	}
	return arg, nil
}

// payload returns the next length bytes of input.
func (d *decoder) payload(start int, length uint64) ([]byte, error) {
	if length > uint64(d.remaining()) {
		return nil, decodeError(KindUnexpectedEnd, start, "string of %d bytes but %d remain", length, d.remaining())
	}
	payload := d.data[d.offset : d.offset+int(length)]
	d.offset += int(length)
	return payload, nil
}

func (d *decoder) enter(start, depth int) error {
	if depth+1 > d.maxDepth {
		return decodeError(KindMaxDepthExceeded, start, "nesting exceeds %d", d.maxDepth)
	}
	return nil
}

func (d *decoder) list(start int, count uint64, depth int) (Value, error) {
	if err := d.enter(start, depth); err != nil {
		return nil, err
	}
	// Every element occupies at least one byte, so a count larger than
	// the remaining input is truncated and must not drive allocation.
	if count > uint64(d.remaining()) {
		return nil, decodeError(KindUnexpectedEnd, start, "array of %d items but %d bytes remain", count, d.remaining())
	}
	items := make(List, 0, count)
	for range count {
		item, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (d *decoder) mapValue(start int, count uint64, depth int) (Value, error) {
	if err := d.enter(start, depth); err != nil {
		return nil, err
	}
	if count > uint64(d.remaining())/2 {
		return nil, decodeError(KindUnexpectedEnd, start, "map of %d entries but %d bytes remain", count, d.remaining())
	}

	entries := make([]Entry, 0, count)
	var previousKey []byte
	for index := range count {
		keyStart := d.offset
		if d.remaining() < 1 {
			return nil, decodeError(KindUnexpectedEnd, keyStart, "expected map key")
		}
		if d.data[keyStart]&majorMask != majorText {
			return nil, decodeError(KindNonTextMapKey, keyStart, "map key is %s", describeInitial(d.data[keyStart]))
		}
		key, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}

		// The key's header was already checked for shortest form, so
		// the raw bytes are its canonical encoding.
		encodedKey := d.data[keyStart:d.offset]
		if index > 0 {
			switch order := bytes.Compare(previousKey, encodedKey); {
			case order == 0:
				return nil, decodeError(KindDuplicateMapKey, keyStart, "duplicate key %q", string(key.(String)))
			case order > 0:
				return nil, decodeError(KindMapKeyOrder, keyStart, "key %q sorts before the preceding key", string(key.(String)))
			}
		}
		previousKey = encodedKey

		value, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: string(key.(String)), Value: value})
	}
	return &Map{Entries: entries}, nil
}

func (d *decoder) tag(start int, number uint64, depth int) (Value, error) {
	if d.tags == TagsLinkOnly && number != TagCID {
		return nil, decodeError(KindUnsupportedTag, start, "tag %d", number)
	}
	if err := d.enter(start, depth); err != nil {
		return nil, err
	}
	content, err := d.value(depth + 1)
	if err != nil {
		return nil, err
	}
	tagged := Tag{Number: number, Content: content}
	if number == TagCID {
		if err := checkLink(tagged); err != nil {
			err.Offset = start
			return nil, err
		}
	}
	return tagged, nil
}

// simple decodes a major type 7 item: booleans, null, and floats.
func (d *decoder) simple(start int, initial byte) (Value, error) {
	switch initial {
	case simpleFalse:
		d.offset++
		return Bool(false), nil
	case simpleTrue:
		d.offset++
		return Bool(true), nil
	case simpleNull:
		d.offset++
		return Null{}, nil
	case simpleUndefined:
		return nil, decodeError(KindUnsupportedValue, start, "undefined")
	case floatHalf, floatSingle:
		width := 2
		if initial == floatSingle {
			width = 4
		}
		if d.remaining() < 1+width {
			return nil, decodeError(KindUnexpectedEnd, start, "%d-byte float truncated", width)
		}
		if d.floats == FloatsReject {
			return nil, decodeError(KindUnsupportedValue, start, "floats are not accepted")
		}
		return nil, decodeError(KindNonCanonicalFloat, start, "%d-byte float; only 8-byte floats are canonical", width)
	case floatDouble:
		if d.remaining() < 9 {
			return nil, decodeError(KindUnexpectedEnd, start, "8-byte float truncated")
		}
		if d.floats == FloatsReject {
			return nil, decodeError(KindUnsupportedValue, start, "floats are not accepted")
		}
		number := math.Float64frombits(binary.BigEndian.Uint64(d.data[d.offset+1 : d.offset+9]))
		if math.IsNaN(number) || math.IsInf(number, 0) {
			return nil, decodeError(KindNonCanonicalFloat, start, "%v is not representable", number)
		}
		d.offset += 9
		return Float(number), nil
	}

	switch info := initial & infoMask; {
	case info < infoUint8:
		return nil, decodeError(KindUnsupportedValue, start, "simple value %d", info)
	case info == infoUint8:
		if d.remaining() < 2 {
			return nil, decodeError(KindUnexpectedEnd, start, "simple value truncated")
		}
		return nil, decodeError(KindUnsupportedValue, start, "simple value %d", d.data[d.offset+1])
	case info == infoIndefinite:
		return nil, decodeError(KindMalformed, start, "break outside indefinite-length item")
	default:
		return nil, decodeError(KindMalformed, start, "reserved additional information %d", info)
	}
}

func majorName(major byte) string {
	switch major {
	case majorUnsigned:
		return "unsigned integer"
	case majorNegative:
		return "negative integer"
	case majorBytes:
		return "byte string"
	case majorText:
		return "text string"
	case majorArray:
		return "array"
	case majorMap:
		return "map"
	case majorTag:
		return "tag"
	default:
		return "simple value"
	}
}

func describeInitial(initial byte) string {
	switch initial {
	case simpleFalse, simpleTrue:
		return "a boolean"
	case simpleNull:
		return "null"
	case floatHalf, floatSingle, floatDouble:
		return "a float"
	}
	name := majorName(initial & majorMask)
	if name[0] == 'a' {
		return "an " + name
	}
	return "a " + name
}
