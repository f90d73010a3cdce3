// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the dagcbor tool.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a parameter struct whose tagged
// fields become flags ([BindFlags]), and a Run function that receives a
// context and a logger. Commands are assembled into a tree in
// cmd/dagcbor/commands and dispatched via [Command.ExecuteContext], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// Errors returned from Run are either a [ToolError] (categorized, printed
// by main) or an [ExitError] (exit status only; the command has already
// reported the outcome).
package cli
