// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"testing"
)

func TestCommandTree(t *testing.T) {
	command := Command()
	if command.Run == nil {
		t.Error("cbor group has no default Run")
	}

	want := []string{"decode", "encode", "diag", "validate", "cid"}
	if len(command.Subcommands) != len(want) {
		t.Fatalf("got %d subcommands, want %d", len(command.Subcommands), len(want))
	}
	for i, sub := range command.Subcommands {
		if sub.Name != want[i] {
			t.Errorf("subcommand %d = %q, want %q", i, sub.Name, want[i])
		}
		if sub.Summary == "" || sub.Description == "" {
			t.Errorf("%s: missing summary or description", sub.Name)
		}
		if sub.Params == nil || sub.Run == nil {
			t.Errorf("%s: missing Params or Run", sub.Name)
		}
		if len(sub.Examples) == 0 {
			t.Errorf("%s: no examples", sub.Name)
		}
		// Binding panics on a malformed params struct.
		sub.Params()
	}
}
