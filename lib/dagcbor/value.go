// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dagcbor

import (
	"math"
	"strconv"
)

// Type identifies the data model kind of a [Value].
type Type uint8

const (
	TypeNull Type = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeBytes
	TypeString
	TypeList
	TypeMap
	TypeTag
)

// String returns the lower-case name of the type.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBytes:
		return "bytes"
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeMap:
		return "map"
	case TypeTag:
		return "tag"
	default:
		return "unknown(" + strconv.Itoa(int(t)) + ")"
	}
}

// Value is a node in a DAG-CBOR data model tree. The interface is
// sealed: only the types in this package implement it.
type Value interface {
	Type() Type
	dagcborValue()
}

// Null is the CBOR null simple value.
type Null struct{}

// Bool is a CBOR boolean.
type Bool bool

// Int is a CBOR integer in the range [-2^63, 2^64-1]. Non-negative
// values above math.MaxInt64 are representable because CBOR major
// type 0 carries a full 64-bit unsigned argument.
//
// The zero value is the integer 0.
type Int struct {
	// negative selects major type 1, where the encoded value is
	// -1 - magnitude. A negative magnitude never exceeds math.MaxInt64.
	negative  bool
	magnitude uint64
}

// Float is an IEEE-754 double. NaN and the infinities are not part
// of the DAG-CBOR data model and are rejected by the encoder.
type Float float64

// Bytes is a CBOR byte string.
type Bytes []byte

// String is a CBOR text string. It must hold valid UTF-8.
type String string

// List is a CBOR array.
type List []Value

// Map is a CBOR map with text keys. Entries keep the order they were
// added or decoded in; the encoder sorts them canonically.
type Map struct {
	Entries []Entry
}

// Entry is a single key/value pair of a [Map].
type Entry struct {
	Key   string
	Value Value
}

// Tag is a CBOR tagged item. In the default profile the only accepted
// tag is [TagCID] wrapping a CID link; see [NewLink].
type Tag struct {
	Number  uint64
	Content Value
}

func (Null) Type() Type   { return TypeNull }
func (Bool) Type() Type   { return TypeBool }
func (Int) Type() Type    { return TypeInt }
func (Float) Type() Type  { return TypeFloat }
func (Bytes) Type() Type  { return TypeBytes }
func (String) Type() Type { return TypeString }
func (List) Type() Type   { return TypeList }
func (*Map) Type() Type   { return TypeMap }
func (Tag) Type() Type    { return TypeTag }

func (Null) dagcborValue()   {}
func (Bool) dagcborValue()   {}
func (Int) dagcborValue()    {}
func (Float) dagcborValue()  {}
func (Bytes) dagcborValue()  {}
func (String) dagcborValue() {}
func (List) dagcborValue()   {}
func (*Map) dagcborValue()   {}
func (Tag) dagcborValue()    {}

// NewInt returns the Int for a signed 64-bit value.
func NewInt(v int64) Int {
	if v < 0 {
		return Int{negative: true, magnitude: uint64(-(v + 1))}
	}
	return Int{magnitude: uint64(v)}
}

// NewUint returns the Int for an unsigned 64-bit value.
func NewUint(v uint64) Int {
	return Int{magnitude: v}
}

// IsNegative reports whether the integer is below zero.
func (i Int) IsNegative() bool {
	return i.negative
}

// Int64 returns the value as an int64. ok is false for non-negative
// values above math.MaxInt64.
func (i Int) Int64() (value int64, ok bool) {
	if i.negative {
		return -1 - int64(i.magnitude), true
	}
	if i.magnitude > math.MaxInt64 {
		return 0, false
	}
	return int64(i.magnitude), true
}

// Uint64 returns the value as a uint64. ok is false for negative values.
func (i Int) Uint64() (value uint64, ok bool) {
	if i.negative {
		return 0, false
	}
	return i.magnitude, true
}

// String formats the integer in decimal.
func (i Int) String() string {
	if i.negative {
		return strconv.FormatInt(-1-int64(i.magnitude), 10)
	}
	return strconv.FormatUint(i.magnitude, 10)
}

// NewMap builds a Map from entries. It neither sorts nor checks for
// duplicate keys; both happen at encode time.
func NewMap(entries ...Entry) *Map {
	return &Map{Entries: entries}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Entries)
}

// Get returns the value of the first entry with the given key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	for _, entry := range m.Entries {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of an existing key or appends a new entry.
func (m *Map) Set(key string, value Value) {
	for i := range m.Entries {
		if m.Entries[i].Key == key {
			m.Entries[i].Value = value
			return
		}
	}
	m.Entries = append(m.Entries, Entry{Key: key, Value: value})
}
