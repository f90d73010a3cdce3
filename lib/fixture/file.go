// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fixture

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultMaxFileSize bounds a fixture file after decompression.
const DefaultMaxFileSize = 64 << 20

// fixtureSuffixes are the uncompressed file name endings that mark a
// fixture file.
var fixtureSuffixes = []string{".json", ".jsonc"}

// IsFixture reports whether path names a fixture file, compressed or
// not.
func IsFixture(path string) bool {
	name := strings.TrimSuffix(path, CompressionFor(path).Suffix())
	for _, suffix := range fixtureSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// Name returns the report key for a fixture path: its base name with
// any compression suffix removed. For example,
// "fixtures/cbor/map.json.zst" returns "map.json".
func Name(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, CompressionFor(base).Suffix())
}

// Discover walks directory and returns every fixture file beneath it,
// sorted by path.
func Discover(directory string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(directory, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !IsFixture(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering fixtures in %s: %w", directory, err)
	}
	slices.Sort(paths)
	return paths, nil
}

// ReadFile reads, decompresses, and parses the fixture at path. A
// maxSize of zero or less means DefaultMaxFileSize.
func ReadFile(path string, maxSize int64) ([]Case, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	decompressed, err := Decompress(data, CompressionFor(path), maxSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cases, err := Parse(decompressed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}
