// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package conformance

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/bureau-foundation/dagcbor/lib/codec"
)

// Result is the outcome of one fixture case. Pass is nil for a skipped
// case. The json tags serve both the JSON and CBOR report encodings.
type Result struct {
	Pass   *bool  `json:"pass"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Passed reports whether the case ran and passed.
func (r Result) Passed() bool {
	return r.Pass != nil && *r.Pass
}

// Skipped reports whether the case was not run.
func (r Result) Skipped() bool {
	return r.Pass == nil
}

func passed(errorText string) Result {
	pass := true
	return Result{Pass: &pass, Error: errorText}
}

func failed(output, errorText string) Result {
	pass := false
	return Result{Pass: &pass, Output: output, Error: errorText}
}

func skipped() Result {
	return Result{}
}

// Metadata identifies the implementation under test.
type Metadata struct {
	Link    string `json:"link"`
	Version string `json:"version"`
}

// Report is the complete result of a conformance run.
type Report struct {
	Metadata Metadata            `json:"metadata"`
	Files    map[string][]Result `json:"files"`
}

// Summary counts results across a report.
type Summary struct {
	Files   int
	Passed  int
	Failed  int
	Skipped int
}

// Total returns the number of cases.
func (s Summary) Total() int {
	return s.Passed + s.Failed + s.Skipped
}

// String formats the summary for log and terminal output.
func (s Summary) String() string {
	return fmt.Sprintf("%d files, %d cases: %d passed, %d failed, %d skipped",
		s.Files, s.Total(), s.Passed, s.Failed, s.Skipped)
}

// Summarize counts the results in a single file.
func Summarize(results []Result) Summary {
	summary := Summary{Files: 1}
	for _, result := range results {
		switch {
		case result.Skipped():
			summary.Skipped++
		case result.Passed():
			summary.Passed++
		default:
			summary.Failed++
		}
	}
	return summary
}

// Summary counts the results across every file.
func (r *Report) Summary() Summary {
	var total Summary
	for _, results := range r.Files {
		file := Summarize(results)
		total.Files++
		total.Passed += file.Passed
		total.Failed += file.Failed
		total.Skipped += file.Skipped
	}
	return total
}

// FileNames returns the report's file keys in sorted order.
func (r *Report) FileNames() []string {
	names := make([]string, 0, len(r.Files))
	for name := range r.Files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// WriteJSON writes the report as a single line of JSON. Map keys are
// sorted by encoding/json, so output is stable.
func (r *Report) WriteJSON(w io.Writer) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// WriteCBOR writes the report as Core Deterministic CBOR.
func (r *Report) WriteCBOR(w io.Writer) error {
	if err := codec.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Write writes the report in the named format, "json" or "cbor".
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case "", "json":
		return r.WriteJSON(w)
	case "cbor":
		return r.WriteCBOR(w)
	default:
		return fmt.Errorf("unknown report format %q (want json or cbor)", format)
	}
}
