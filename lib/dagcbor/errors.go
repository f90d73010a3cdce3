// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dagcbor

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a value or byte sequence was rejected.
// The string form is stable and is what conformance reports record.
type ErrorKind string

const (
	// KindTrailingData: bytes remain after a complete top-level item.
	KindTrailingData ErrorKind = "TrailingData"

	// KindNonCanonicalLength: an integer, length, or tag number uses a
	// wider argument than its value needs.
	KindNonCanonicalLength ErrorKind = "NonCanonicalLength"

	// KindIndefiniteLength: a string, array, or map uses the
	// indefinite-length (streaming) form.
	KindIndefiniteLength ErrorKind = "IndefiniteLength"

	KindInvalidUTF8 ErrorKind = "InvalidUtf8"

	KindNonTextMapKey ErrorKind = "NonTextMapKey"

	// KindMapKeyOrder: map keys are not in ascending order of their
	// encoded bytes.
	KindMapKeyOrder ErrorKind = "MapKeyOrder"

	KindDuplicateMapKey ErrorKind = "DuplicateMapKey"

	// KindUnsupportedTag: a tag other than 42, or a tag 42 whose
	// content is not a CID byte string.
	KindUnsupportedTag ErrorKind = "UnsupportedTag"

	KindMaxDepthExceeded ErrorKind = "MaxDepthExceeded"

	// KindIntegerOverflow: a negative integer below -2^63, or a
	// generic integer outside the supported range.
	KindIntegerOverflow ErrorKind = "IntegerOverflow"

	// KindNonCanonicalFloat: a half or single precision float, or a
	// NaN or infinite value.
	KindNonCanonicalFloat ErrorKind = "NonCanonicalFloat"

	// KindUnsupportedValue: a value with no DAG-CBOR representation,
	// such as undefined, other simple values, floats when floats are
	// disabled, or an unknown Go type handed to the adapter.
	KindUnsupportedValue ErrorKind = "UnsupportedValue"

	// KindUnexpectedEnd: the input ends in the middle of an item.
	KindUnexpectedEnd ErrorKind = "UnexpectedEnd"

	// KindMalformed: the input is not well-formed CBOR (reserved
	// additional information values, a break outside an
	// indefinite-length item).
	KindMalformed ErrorKind = "Malformed"

	KindInputTooLarge ErrorKind = "InputTooLarge"
)

// Sentinels for errors.Is. An [*Error] matches the sentinel of the
// same kind regardless of offset and detail.
var (
	ErrTrailingData       = &Error{Kind: KindTrailingData}
	ErrNonCanonicalLength = &Error{Kind: KindNonCanonicalLength}
	ErrIndefiniteLength   = &Error{Kind: KindIndefiniteLength}
	ErrInvalidUTF8        = &Error{Kind: KindInvalidUTF8}
	ErrNonTextMapKey      = &Error{Kind: KindNonTextMapKey}
	ErrMapKeyOrder        = &Error{Kind: KindMapKeyOrder}
	ErrDuplicateMapKey    = &Error{Kind: KindDuplicateMapKey}
	ErrUnsupportedTag     = &Error{Kind: KindUnsupportedTag}
	ErrMaxDepthExceeded   = &Error{Kind: KindMaxDepthExceeded}
	ErrIntegerOverflow    = &Error{Kind: KindIntegerOverflow}
	ErrNonCanonicalFloat  = &Error{Kind: KindNonCanonicalFloat}
	ErrUnsupportedValue   = &Error{Kind: KindUnsupportedValue}
	ErrUnexpectedEnd      = &Error{Kind: KindUnexpectedEnd}
	ErrMalformed          = &Error{Kind: KindMalformed}
	ErrInputTooLarge      = &Error{Kind: KindInputTooLarge}
)

// Error is the error type returned by every operation in this package.
type Error struct {
	Kind ErrorKind

	// Offset is the byte offset of the item that was rejected, or -1
	// when the error did not come from decoding bytes.
	Offset int

	// Detail is a human-readable elaboration. May be empty.
	Detail string
}

func (e *Error) Error() string {
	message := "dagcbor: " + string(e.Kind)
	if e.Offset >= 0 {
		message += fmt.Sprintf(" at byte %d", e.Offset)
	}
	if e.Detail != "" {
		message += ": " + e.Detail
	}
	return message
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or ""
// if there is none.
func KindOf(err error) ErrorKind {
	var codecErr *Error
	if errors.As(err, &codecErr) {
		return codecErr.Kind
	}
	return ""
}

func decodeError(kind ErrorKind, offset int, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: offset, Detail: fmt.Sprintf(format, args...)}
}

func valueError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: -1, Detail: fmt.Sprintf(format, args...)}
}
