// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/hex"
	"strings"
)

// Hex decodes a hex literal, ignoring whitespace.
//
//	data := testutil.Hex(t, "a1 6161 01")
func Hex(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, literal string) []byte {
	t.Helper()
	compact := strings.Join(strings.Fields(literal), "")
	data, err := hex.DecodeString(compact)
	if err != nil {
		t.Fatalf("invalid hex literal %q: %v", literal, err)
	}
	return data
}
