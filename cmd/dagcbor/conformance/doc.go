// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package conformance implements "dagcbor conformance", the command
// that drives lib/conformance over a fixture directory. It resolves
// configuration (lib/config), applies flag overrides, sets the log
// level, and writes the report as JSON or CBOR.
package conformance
