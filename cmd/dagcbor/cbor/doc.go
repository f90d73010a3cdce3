// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cbor implements the "dagcbor cbor" command group: decode,
// encode, diag, validate, and cid.
//
// decode, validate, and cid go through the strict codec in lib/dagcbor
// and report rejections with the error kind and byte offset. encode
// builds values from JSON or from any CBOR item read by the general
// decoder in lib/codec, then writes the canonical encoding. diag uses
// the general decoder's diagnostic notation so that non-canonical input
// can still be inspected.
package cbor
