// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"github.com/bureau-foundation/dagcbor/cmd/dagcbor/cli"
	"github.com/bureau-foundation/dagcbor/lib/dagcbor"
)

// profileParams selects the codec profile. The defaults are strict
// DAG-CBOR.
type profileParams struct {
	MaxDepth int    `json:"max_depth" flag:"max-depth" desc:"maximum nesting of lists, maps, and tags" default:"512"`
	Floats   string `json:"floats"    flag:"floats"    desc:"float policy: float64 or reject" default:"float64"`
	Tags     string `json:"tags"      flag:"tags"      desc:"tag policy: link (tag 42 only) or any" default:"link"`
}

func (p profileParams) decodeOptions() (dagcbor.DecodeOptions, error) {
	if p.MaxDepth < 0 {
		return dagcbor.DecodeOptions{}, cli.Validation("--max-depth must not be negative, got %d", p.MaxDepth)
	}
	floats, err := dagcbor.ParseFloatPolicy(p.Floats)
	if err != nil {
		return dagcbor.DecodeOptions{}, cli.Validation("--floats: %w", err)
	}
	tags, err := dagcbor.ParseTagPolicy(p.Tags)
	if err != nil {
		return dagcbor.DecodeOptions{}, cli.Validation("--tags: %w", err)
	}
	return dagcbor.DecodeOptions{MaxDepth: p.MaxDepth, Floats: floats, Tags: tags}, nil
}

// codecError turns a codec rejection into a validation error that
// keeps the *dagcbor.Error in its chain.
func codecError(operation string, err error) error {
	return cli.Validation("%s: %w", operation, err)
}
