// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [Hex] turns a hex literal (spaces and newlines allowed, so long
// vectors can be grouped by item) into bytes. [WriteFile] and
// [WriteFixture] lay out files under a test's temporary directory for
// fixture and configuration tests.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no internal dependencies.
package testutil
