// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes data to name under directory, creating parent
// directories as needed, and returns the full path.
func WriteFile(t *testing.T, directory, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(directory, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// FixtureCase is one entry of a conformance fixture file as written by
// [WriteFixture].
type FixtureCase struct {
	Type string   `json:"type"`
	Data string   `json:"data"`
	Tags []string `json:"tags,omitempty"`
	ID   string   `json:"id,omitempty"`
}

// WriteFixture marshals cases as a JSON fixture file named name under
// directory and returns its path.
func WriteFixture(t *testing.T, directory, name string, cases []FixtureCase) string {
	t.Helper()
	data, err := json.Marshal(cases)
	if err != nil {
		t.Fatalf("marshaling fixture %s: %v", name, err)
	}
	return WriteFile(t, directory, name, data)
}
