// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for conformance
// runs.
//
// Configuration is loaded from a single file specified by either the
// DAGCBOR_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. Without a file, commands use
// [Default]. Unknown keys in the file are errors.
//
// Variable expansion is performed on fixtures.dir after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values; command-line flags
// do, and that layering happens in the command, not here.
//
// Key exports:
//
//   - [Config] -- master struct with Fixtures, Codec, Report, Runner, Log
//   - [Default] -- returns a Config with the strict DAG-CBOR profile
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.DecodeOptions] and [Config.SkipSet] -- conversions for
//     lib/conformance
package config
