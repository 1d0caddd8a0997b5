// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"os"
)

func main() {
	// Execute the root command. Cobra handles parsing the arguments and
	// has already printed the problem and usage text by the time an error
	// comes back, so a bad flag or unknown subcommand only needs the
	// usage exit code here.
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitUsage)
	}
}
