// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the general-purpose CBOR configuration built on
// fxamacker/cbor, as opposed to the strict DAG-CBOR codec in
// lib/dagcbor.
//
// Three modes are configured once at init:
//
//   - An encoder using Core Deterministic Encoding (RFC 8949 §4.2),
//     used for CBOR-formatted conformance reports. Same logical data
//     always produces identical bytes.
//   - A structured decoder for reading those reports back.
//   - The neutral generic decoder behind [DecodeGeneric]. It accepts
//     nearly any well-formed CBOR so that invalid_out fixtures, which
//     hold data that is valid CBOR but not valid DAG-CBOR, reach the
//     strict adapter intact.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(report)
//	err = codec.Unmarshal(data, &report)
//
// For streams:
//
//	encoder := codec.NewEncoder(w)
//
// [Diagnose] and [DiagnoseFirst] render RFC 8949 diagnostic notation
// and accept any well-formed CBOR, canonical or not.
package codec
