// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source so that durations
// reported by long-running operations can be tested deterministically.
//
// Code that measures elapsed time takes a Clock instead of calling
// time.Now directly:
//
//	type Runner struct {
//	    Clock clock.Clock
//	    // ...
//	}
//
// In production the field is left nil or set to Real(). In tests:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	c.SetStep(time.Second) // every Now call moves time forward
//	r := &Runner{Clock: c}
package clock
