// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dagcbor implements a strict, canonical DAG-CBOR codec.
//
// DAG-CBOR is the deterministic CBOR profile used for content-addressed
// data. Every logical value has exactly one byte encoding: arguments use
// the shortest possible width, containers always carry a definite
// length, map keys are text strings sorted by their encoded bytes, and
// the only tag is 42 (a CID link). This package both produces that
// encoding and refuses anything else on input.
//
// The value model is the sealed [Value] interface with one Go type per
// data model kind: [Null], [Bool], [Int], [Float], [Bytes], [String],
// [List], [*Map] and [Tag].
//
//	value, err := dagcbor.Decode(data)       // strict: rejects non-canonical input
//	data, err := dagcbor.Encode(value)       // canonical bytes
//	value, err := dagcbor.FromGeneric(tree)  // map[string]any, []any, ... → Value
//
// Decoding and encoding are pure functions of their input and options.
// There is no package-level mutable state, so concurrent calls on
// independent inputs need no coordination.
//
// Every rejection is an [*Error] carrying an [ErrorKind]. Callers test
// for a specific kind with errors.Is against the Err* sentinels:
//
//	if errors.Is(err, dagcbor.ErrMapKeyOrder) { ... }
//
// Behaviour that the DAG-CBOR profile leaves to implementations is
// selected with [DecodeOptions], [EncodeOptions] and [AdaptOptions]:
// the nesting ceiling, the input size ceiling, whether floats are
// accepted at all ([FloatPolicy]) and whether tags other than 42 are
// accepted ([TagPolicy]). The zero value of each options struct selects
// the strict DAG-CBOR defaults.
package dagcbor
