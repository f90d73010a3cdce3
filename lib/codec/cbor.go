// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// GenericMaxNestedLevels is the nesting ceiling of the generic decoder.
// It sits well above the strict codec's default so that depth failures
// are reported by the strict side with a typed error.
const GenericMaxNestedLevels = 4096

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Reports written as CBOR use it.
var encMode cbor.EncMode

// decMode decodes reports and other structured data. Unknown fields are
// silently ignored.
var decMode cbor.DecMode

// genericMode is the neutral decoder: it accepts any well-formed CBOR
// (non-minimal lengths, indefinite-length items, unsorted keys, every
// tag, invalid UTF-8) into loosely-typed Go values so that the strict
// adapter can pass judgement on the result. Duplicate map keys are the
// one thing it refuses, because a Go map cannot hold both entries.
var genericMode cbor.DecMode

// diagMode renders diagnostic notation with float width suffixes
// ("1.5_1" for a half-precision float) so that non-canonical floats are
// visible.
var diagMode cbor.DiagMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Targets of type any get map[string]any, which encoding/json
		// and the report types can consume directly.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}

	genericMode, err = cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		IndefLength:     cbor.IndefLengthAllowed,
		MaxNestedLevels: GenericMaxNestedLevels,
		UTF8:            cbor.UTF8DecodeInvalid,
		// Keys of any type survive so the adapter can report
		// NonTextMapKey instead of failing here.
		DefaultMapType: reflect.TypeOf(map[any]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: generic CBOR decoder initialization failed: " + err.Error())
	}

	diagMode, err = cbor.DiagOptions{
		FloatPrecisionIndicator: true,
		MaxNestedLevels:         GenericMaxNestedLevels,
	}.DiagMode()
	if err != nil {
		panic("codec: diagnostic mode initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// DecodeGeneric decodes data with the neutral decoder. The result is
// built from nil, bool, uint64, int64, big.Int, float64, string,
// []byte, []any, map[any]any, cbor.Tag, and the other types
// fxamacker/cbor produces for an any target.
func DecodeGeneric(data []byte) (any, error) {
	var value any
	if err := genericMode.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// IsDuplicateKey reports whether err is the generic decoder's
// rejection of a map holding the same key twice.
func IsDuplicateKey(err error) bool {
	var duplicate *cbor.DupMapKeyError
	return errors.As(err, &duplicate)
}

// Encoder is a CBOR stream encoder. Type alias so consumers import
// only lib/codec, not fxamacker/cbor directly.
type Encoder = cbor.Encoder

// Decoder is a CBOR stream decoder.
type Decoder = cbor.Decoder

// Tag is a generic CBOR tag as produced by [DecodeGeneric].
type Tag = cbor.Tag

// NewEncoder returns a CBOR encoder that writes to w using Core
// Deterministic Encoding.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a CBOR decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data. Floats carry their encoding width suffix.
func Diagnose(data []byte) (string, error) {
	return diagMode.Diagnose(data)
}

// DiagnoseFirst returns the CBOR diagnostic notation for the first
// data item in data, along with the remaining unconsumed bytes. Use
// this to process CBOR sequences one item at a time.
func DiagnoseFirst(data []byte) (string, []byte, error) {
	return diagMode.DiagnoseFirst(data)
}
