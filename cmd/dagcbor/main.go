// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command dagcbor is the command-line front end of the DAG-CBOR codec.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/dagcbor/cmd/dagcbor/cli"
	"github.com/bureau-foundation/dagcbor/cmd/dagcbor/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := exitCode(run(ctx, os.Args[1:]), os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) error {
	return commands.Root().ExecuteContext(ctx, args)
}

// exitCode reports err on stderr and maps it to a process exit status.
// Commands that print their own verdict (like "cbor validate") return
// an ExitError, which is not printed again.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	var toolErr *cli.ToolError
	if errors.As(err, &toolErr) {
		return toolErr.ExitCode()
	}
	return 1
}
