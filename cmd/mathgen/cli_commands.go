// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"os"

	"github.com/KodiakMath/mathgen/pkg/logging"
	"github.com/KodiakMath/mathgen/services/exercise/config"
	"github.com/spf13/cobra"
)

// defaultConfigFile is picked up from the working directory when --config
// is not given.
const defaultConfigFile = "mathgen.yaml"

var (
	// Global flags
	configPath string
	logLevel   string
	logJSON    bool
	quiet      bool

	// settings holds the effective configuration for the running command,
	// loaded by the root PersistentPreRun.
	settings config.Settings

	// appLogger is the process-wide logger, built from the global flags.
	appLogger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mathgen",
	Short: "Generate and grade elementary arithmetic exercises",
	Long: `mathgen builds batches of randomized arithmetic problems over natural
numbers, proper fractions, and mixed numbers, and grades answer sheets
against exercise sheets by exact rational comparison.

All arithmetic is exact; no floating point is involved at any step.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Bare invocation: show help and signal a usage problem.
		_ = cmd.Help()
		os.Exit(ExitUsage)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a YAML config file (default ./mathgen.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false,
		"Emit stderr logs as JSON instead of text")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false,
		"Suppress log output (result lines still print to stdout)")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			outputUsageError(cmd, err)
			os.Exit(ExitUsage)
		}
		appLogger = logging.New(logging.Config{
			Level:   level,
			Service: "mathgen",
			JSON:    logJSON,
			Quiet:   quiet,
		})

		path := configPath
		if path == "" {
			if _, statErr := os.Stat(defaultConfigFile); statErr == nil {
				path = defaultConfigFile
			}
		}
		settings, err = config.Load(path)
		if err != nil {
			outputError("loading configuration", err)
			os.Exit(ExitError)
		}
		if path != "" {
			appLogger.Debug("configuration loaded", "path", path)
		}
	}

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(gradeCmd)
}
