// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies command errors so that callers (scripts, CI
// wrappers) can tell bad input apart from a broken environment without
// parsing message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// wrong argument count, unparseable values, input the codec
	// rejected. The caller should fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced file or directory does
	// not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryInternal indicates an unexpected error: I/O failures,
	// encoding failures on data the tool produced.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by CLI commands.
//
// ToolError wraps an inner error, preserving the full error chain for
// debugging while adding category metadata. Use the category-specific
// constructors rather than constructing ToolError directly.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

// Error returns the underlying error message. The category is not
// included in the string.
func (e *ToolError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the ToolError wrapper.
func (e *ToolError) Unwrap() error { return e.Err }

// ExitCode maps the category onto the process exit status: 2 for
// usage and input problems, 1 otherwise.
func (e *ToolError) ExitCode() int {
	if e.Category == CategoryValidation {
		return 2
	}
	return 1
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced file does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// CategoryOf returns the category of the first ToolError in err's
// chain, or "" when there is none.
func CategoryOf(err error) ErrorCategory {
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return toolErr.Category
	}
	return ""
}
