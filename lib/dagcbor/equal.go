// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dagcbor

import (
	"bytes"
	"math"
)

// Equal reports whether two trees are structurally identical. Maps
// compare entry by entry in their stored order, so two maps with the
// same entries in a different order are not Equal even though they
// encode identically. Floats compare by bit pattern.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	switch left := a.(type) {
	case Null:
		return true
	case Bool:
		return left == b.(Bool)
	case Int:
		return left == b.(Int)
	case Float:
		return math.Float64bits(float64(left)) == math.Float64bits(float64(b.(Float)))
	case Bytes:
		return bytes.Equal(left, b.(Bytes))
	case String:
		return left == b.(String)
	case List:
		right := b.(List)
		if len(left) != len(right) {
			return false
		}
		for i := range left {
			if !Equal(left[i], right[i]) {
				return false
			}
		}
		return true
	case *Map:
		right := b.(*Map)
		if left.Len() != right.Len() {
			return false
		}
		for i := range left.Len() {
			if left.Entries[i].Key != right.Entries[i].Key || !Equal(left.Entries[i].Value, right.Entries[i].Value) {
				return false
			}
		}
		return true
	case Tag:
		right := b.(Tag)
		return left.Number == right.Number && Equal(left.Content, right.Content)
	default:
		return false
	}
}
