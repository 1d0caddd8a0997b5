// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	ExitSuccess = 0 // Operation completed successfully
	ExitError   = 1 // Operation failed at runtime
	ExitUsage   = 2 // Invalid arguments or flags
)

// outputError writes a runtime failure to stderr.
//
// # Inputs
//
//   - msg: Human-readable description of what was being attempted.
//   - err: The underlying error.
func outputError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}

// outputUsageError writes an argument error to stderr along with a
// pointer at the command help. Callers exit with ExitUsage afterwards.
func outputUsageError(cmd *cobra.Command, err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
}
