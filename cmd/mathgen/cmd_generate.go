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

	"github.com/KodiakMath/mathgen/pkg/validation"
	"github.com/KodiakMath/mathgen/services/exercise/artifact"
	"github.com/KodiakMath/mathgen/services/exercise/generator"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	// Problem shape flags
	generateRange int
	generateCount int

	// Output flags
	generateStats  bool
	generateOutDir string
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a batch of arithmetic problems",
	Long: `Generate a batch of randomized arithmetic problems and write the
exercise and answer artifacts.

Each problem combines 1-3 of the operators +, -, × and ÷ over natural
numbers, proper fractions, and mixed numbers below the range bound.
Subtractions never go negative and divisions always yield a proper
fraction, so every value a student works with stays simple and exact.

Problems are unique within a batch up to operand order of + and ×.
When the range bound is small the space of distinct problems may be
smaller than the requested count; the run then stops after the attempt
budget with a warning and writes the problems it found.

Examples:
  # 100 problems over values below 10, written to the working directory
  mathgen generate -r 10

  # 500 problems plus the Perf.txt diagnostics artifact
  mathgen generate -r 20 -n 500 --stats --out-dir ./out`,
	Args: cobra.NoArgs,
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&generateRange, "range", "r", 0,
		"Exclusive upper bound on leaf values (required, >= 1)")
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 100,
		"Number of problems to generate")
	generateCmd.Flags().BoolVar(&generateStats, "stats", false,
		"Also write the generation diagnostics artifact")
	generateCmd.Flags().StringVar(&generateOutDir, "out-dir", "",
		"Directory for the written artifacts (default current directory)")
	generateCmd.MarkFlagRequired("range")
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runGenerate(cmd *cobra.Command, args []string) {
	if err := validation.ValidateRange(generateRange); err != nil {
		outputUsageError(cmd, err)
		os.Exit(ExitUsage)
	}

	// The count flag default is fixed at parse time, so an explicit flag
	// wins and the config default applies otherwise.
	n := generateCount
	if !cmd.Flags().Changed("count") {
		n = settings.Generator.DefaultCount
	}
	if err := validation.ValidateCount(n, settings.Generator.MaxCount); err != nil {
		outputUsageError(cmd, err)
		os.Exit(ExitUsage)
	}
	if err := validation.ValidateOutputDir(generateOutDir); err != nil {
		outputUsageError(cmd, err)
		os.Exit(ExitUsage)
	}

	gen := generator.New(nil, appLogger.Slog(), settings.Generator.Limits())
	batch, err := gen.Generate(generateRange, n)
	if err != nil {
		outputError("generating batch", err)
		os.Exit(ExitError)
	}

	store := artifact.NewStore(generateOutDir, settings.Artifacts.Filenames(), appLogger.Slog())
	exercisesPath, answersPath, err := store.WriteBatch(batch)
	if err != nil {
		outputError("writing artifacts", err)
		os.Exit(ExitError)
	}

	statsPath := ""
	if generateStats {
		statsPath, err = store.WriteStats(batch)
		if err != nil {
			outputError("writing diagnostics", err)
			os.Exit(ExitError)
		}
	}

	outputGenerateResult(batch, exercisesPath, answersPath, statsPath)
	os.Exit(ExitSuccess)
}

// =============================================================================
// OUTPUT FUNCTIONS
// =============================================================================

// outputGenerateResult prints the accepted problem count and the written
// artifact paths. statsPath is empty when --stats was not given.
func outputGenerateResult(batch *generator.Batch, exercisesPath, answersPath, statsPath string) {
	fmt.Printf("Generated %d problems\n", batch.Generated())
	fmt.Printf("Exercises -> %s\n", exercisesPath)
	fmt.Printf("Answers   -> %s\n", answersPath)
	if statsPath != "" {
		fmt.Printf("Stats     -> %s\n", statsPath)
	}
}
