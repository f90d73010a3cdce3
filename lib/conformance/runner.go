// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package conformance

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/bureau-foundation/dagcbor/lib/clock"
	"github.com/bureau-foundation/dagcbor/lib/codec"
	"github.com/bureau-foundation/dagcbor/lib/dagcbor"
	"github.com/bureau-foundation/dagcbor/lib/fixture"
)

// Runner runs fixture cases against the strict codec. The zero value
// runs the default DAG-CBOR profile with nothing skipped, one file per
// CPU, and logging discarded.
type Runner struct {
	// Options is the strict decoder profile. The encoder and adapter
	// use the matching profile.
	Options dagcbor.DecodeOptions

	// Skip holds case IDs to report as skipped.
	Skip map[string]bool

	// Parallelism bounds how many files are processed at once. Zero
	// means runtime.GOMAXPROCS(0).
	Parallelism int

	// MaxFileSize bounds a fixture file after decompression. Zero
	// means fixture.DefaultMaxFileSize.
	MaxFileSize int64

	// Clock times files and whole runs for the log. Nil means the
	// real clock.
	Clock clock.Clock

	Logger *slog.Logger
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// RunCase runs a single case. The error is non-nil only when the case
// itself is malformed (unknown type or undecodable hex); codec
// failures are part of the Result.
func (r *Runner) RunCase(c fixture.Case) (Result, error) {
	if c.ID != "" && r.Skip[c.ID] {
		return skipped(), nil
	}
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	data, _ := c.Bytes() // checked by Validate

	switch c.Type {
	case fixture.TypeRoundtrip:
		return r.roundtrip(data), nil
	case fixture.TypeInvalidIn:
		return r.invalidIn(data), nil
	default:
		return r.invalidOut(data), nil
	}
}

func (r *Runner) roundtrip(data []byte) Result {
	value, err := r.Options.Decode(data)
	if err != nil {
		return failed("", err.Error())
	}
	output, err := r.Options.EncodeOptions().Encode(value)
	if err != nil {
		return failed("", err.Error())
	}
	if !bytes.Equal(output, data) {
		return failed(hex.EncodeToString(output), "")
	}
	return passed("")
}

func (r *Runner) invalidIn(data []byte) Result {
	if _, err := r.Options.Decode(data); err != nil {
		return passed(err.Error())
	}
	return failed("", "")
}

func (r *Runner) invalidOut(data []byte) Result {
	generic, err := codec.DecodeGeneric(data)
	if err != nil {
		if codec.IsDuplicateKey(err) {
			rejected := &dagcbor.Error{Kind: dagcbor.KindDuplicateMapKey, Offset: -1, Detail: err.Error()}
			return passed(rejected.Error())
		}
		return failed("", "general CBOR decoder rejected input: "+err.Error())
	}

	value, err := r.Options.AdaptOptions().FromGeneric(generic)
	if err != nil {
		return passed(err.Error())
	}
	output, err := r.Options.EncodeOptions().Encode(value)
	if err != nil {
		return passed(err.Error())
	}
	return failed(hex.EncodeToString(output), "")
}

// RunCases runs every case of one file in order. A malformed case
// stops the file: the fixture itself is wrong and its results would
// be misleading.
func (r *Runner) RunCases(cases []fixture.Case) ([]Result, error) {
	results := make([]Result, len(cases))
	for i, c := range cases {
		result, err := r.RunCase(c)
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", i, err)
		}
		if result.Pass != nil && !*result.Pass {
			r.logger().Debug("case failed",
				"index", i,
				"id", c.ID,
				"type", c.Type,
				"data", c.Data,
				"output", result.Output,
				"error", result.Error,
			)
		}
		results[i] = result
	}
	return results, nil
}

// RunFile loads and runs one fixture file.
func (r *Runner) RunFile(path string) ([]Result, error) {
	cases, err := fixture.ReadFile(path, r.MaxFileSize)
	if err != nil {
		return nil, err
	}
	results, err := r.RunCases(cases)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return results, nil
}

// RunFiles runs the given fixture files concurrently and collects the
// results under their fixture names. Files that fail to load or hold
// malformed cases are left out of the report and their errors are
// joined into the returned error; the report is still returned.
// Cancelling ctx stops files that have not started yet.
func (r *Runner) RunFiles(ctx context.Context, paths []string, metadata Metadata) (*Report, error) {
	report := &Report{Metadata: metadata, Files: make(map[string][]Result, len(paths))}
	logger := r.logger()
	timer := clock.OrReal(r.Clock)
	started := timer.Now()

	parallelism := r.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	var (
		mutex   sync.Mutex
		errs    []error
		workers sync.WaitGroup
	)
	jobs := make(chan string)

	for range min(parallelism, max(len(paths), 1)) {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for path := range jobs {
				name := fixture.Name(path)
				fileStarted := timer.Now()
				results, err := r.RunFile(path)
				elapsed := clock.Since(timer, fileStarted)

				mutex.Lock()
				if err != nil {
					errs = append(errs, err)
				} else if _, exists := report.Files[name]; exists {
					errs = append(errs, fmt.Errorf("%s: fixture name %q already reported by another file", path, name))
				} else {
					report.Files[name] = results
				}
				mutex.Unlock()

				if err != nil {
					logger.Error("fixture file failed", "path", path, "error", err)
					continue
				}
				logger.Info("fixture file complete",
					"file", name,
					"summary", Summarize(results).String(),
					"elapsed", elapsed.Round(time.Millisecond),
				)
			}
		}()
	}

dispatch:
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		select {
		case jobs <- path:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	workers.Wait()

	logger.Info("fixture files processed",
		"files", len(report.Files),
		"elapsed", clock.Since(timer, started).Round(time.Millisecond),
	)

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return report, errors.Join(errs...)
}

// Run discovers every fixture file under directory and runs them.
func (r *Runner) Run(ctx context.Context, directory string, metadata Metadata) (*Report, error) {
	paths, err := fixture.Discover(directory)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no fixture files found in %s", directory)
	}
	r.logger().Info("running conformance fixtures", "directory", directory, "files", len(paths))
	return r.RunFiles(ctx, paths, metadata)
}
