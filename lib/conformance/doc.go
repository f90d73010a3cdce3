// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package conformance drives the strict DAG-CBOR codec with fixture
// files and produces a report of per-case results.
//
// Each case type exercises a different path:
//
//   - roundtrip: strict decode, then encode. The case passes when the
//     bytes come back unchanged. A mismatch records the produced bytes
//     as hex in Output; a failure records the error.
//   - invalid_in: strict decode. The case passes when decoding fails.
//   - invalid_out: decode with the neutral general-purpose decoder in
//     lib/codec, convert with dagcbor.FromGeneric, then encode. The
//     case passes when conversion or encoding fails. A map with a
//     repeated key never reaches the adapter; the neutral decoder's
//     rejection of it is reported as DuplicateMapKey and counts as a
//     pass. Any other neutral decoder failure is a failed case, since
//     the fixture did not exercise the encoder.
//
// Case IDs in [Runner].Skip are not run and report a null pass.
//
// [Runner.Run] discovers fixtures in a directory and processes files
// concurrently on a bounded pool of goroutines. The resulting [Report]
// is keyed by fixture name and serializes as JSON or deterministic
// CBOR.
package conformance
