// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dagcbor

import "fmt"

const (
	// DefaultMaxDepth is the nesting ceiling applied when an options
	// struct leaves MaxDepth at zero. Each array, map, and tag adds one
	// level.
	DefaultMaxDepth = 512

	// DefaultMaxInputSize is the input ceiling applied by the decoder
	// when MaxInputSize is zero.
	DefaultMaxInputSize = 16 << 20
)

// FloatPolicy selects how floating-point values are treated.
type FloatPolicy uint8

const (
	// FloatsFloat64Only accepts floats only in the 8-byte encoding and
	// rejects NaN and the infinities. This is the DAG-CBOR rule.
	FloatsFloat64Only FloatPolicy = iota

	// FloatsReject refuses every float, for profiles that restrict the
	// data model to integers.
	FloatsReject
)

// String returns the configuration name of the policy.
func (p FloatPolicy) String() string {
	switch p {
	case FloatsFloat64Only:
		return "float64"
	case FloatsReject:
		return "reject"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
}

// ParseFloatPolicy parses "float64" or "reject". The empty string
// selects the default.
func ParseFloatPolicy(name string) (FloatPolicy, error) {
	switch name {
	case "", "float64":
		return FloatsFloat64Only, nil
	case "reject":
		return FloatsReject, nil
	default:
		return 0, fmt.Errorf("unknown float policy %q (want float64 or reject)", name)
	}
}

// TagPolicy selects which CBOR tags are accepted.
type TagPolicy uint8

const (
	// TagsLinkOnly accepts only tag 42 with CID content.
	TagsLinkOnly TagPolicy = iota

	// TagsAny accepts every tag number as an opaque wrapper.
	TagsAny
)

// String returns the configuration name of the policy.
func (p TagPolicy) String() string {
	switch p {
	case TagsLinkOnly:
		return "link"
	case TagsAny:
		return "any"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
}

// ParseTagPolicy parses "link" or "any". The empty string selects the
// default.
func ParseTagPolicy(name string) (TagPolicy, error) {
	switch name {
	case "", "link":
		return TagsLinkOnly, nil
	case "any":
		return TagsAny, nil
	default:
		return 0, fmt.Errorf("unknown tag policy %q (want link or any)", name)
	}
}

// DecodeOptions configures [DecodeOptions.Decode]. The zero value is
// the strict DAG-CBOR profile.
type DecodeOptions struct {
	// MaxDepth bounds container and tag nesting. Zero means
	// DefaultMaxDepth.
	MaxDepth int

	// MaxInputSize bounds the input length in bytes. Zero means
	// DefaultMaxInputSize.
	MaxInputSize int

	Floats FloatPolicy
	Tags   TagPolicy
}

// EncodeOptions configures [EncodeOptions.Encode]. The zero value is
// the strict DAG-CBOR profile.
type EncodeOptions struct {
	// MaxDepth bounds container and tag nesting. Zero means
	// DefaultMaxDepth.
	MaxDepth int

	Floats FloatPolicy
	Tags   TagPolicy
}

// AdaptOptions configures [AdaptOptions.FromGeneric]. The zero value is
// the strict DAG-CBOR profile.
type AdaptOptions struct {
	// MaxDepth bounds nesting of the generic tree. Zero means
	// DefaultMaxDepth.
	MaxDepth int

	Floats FloatPolicy
	Tags   TagPolicy
}

// EncodeOptions returns encoder options matching the decoder's profile.
func (o DecodeOptions) EncodeOptions() EncodeOptions {
	return EncodeOptions{MaxDepth: o.MaxDepth, Floats: o.Floats, Tags: o.Tags}
}

// AdaptOptions returns adapter options matching the decoder's profile.
func (o DecodeOptions) AdaptOptions() AdaptOptions {
	return AdaptOptions{MaxDepth: o.MaxDepth, Floats: o.Floats, Tags: o.Tags}
}

func effectiveMaxDepth(configured int) int {
	if configured <= 0 {
		return DefaultMaxDepth
	}
	return configured
}
