// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fixture loads DAG-CBOR conformance fixture files.
//
// A fixture file is a JSON array of cases:
//
//	[
//	  {"type": "roundtrip", "data": "a1616101", "tags": ["map"]},
//	  {"type": "invalid_in", "data": "9f00ff", "id": "indefinite_array"}
//	]
//
// Files may be authored as JSONC (comments and trailing commas are
// stripped with tidwall/jsonc before unmarshalling) and may be stored
// compressed: a ".zst" suffix selects zstd and a ".lz4" suffix selects
// the LZ4 frame format. [Name] strips the compression suffix, so
// "map.json.zst" and "map.json" report under the same key.
//
// The typical flow:
//
//  1. Discover: directory → sorted fixture paths
//  2. ReadFile: path → decompressed, parsed []Case
//  3. Case.Bytes: hex payload → raw CBOR bytes
package fixture
