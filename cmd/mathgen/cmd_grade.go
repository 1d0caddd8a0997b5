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
	"github.com/KodiakMath/mathgen/services/exercise/grader"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	gradeExercisesPath string
	gradeAnswersPath   string
	gradeOutDir        string
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade an answer sheet against an exercise sheet",
	Long: `Grade an answer sheet against an exercise sheet and write the
grading report.

Each exercise line is re-evaluated exactly and compared against the
submitted answer by rational value, so 1/2 and 2/4 count as the same
answer. Lines that cannot be parsed, divide by zero, or have no
submitted answer grade as wrong; the report lists the 1-based indices
of correct and wrong problems. Leading "1." / "2)" style numbering on
either sheet is ignored.

Examples:
  mathgen grade -e Exercises.txt -a Answers.txt
  mathgen grade -e out/Exercises.txt -a student.txt --out-dir out`,
	Args: cobra.NoArgs,
	Run:  runGrade,
}

func init() {
	gradeCmd.Flags().StringVarP(&gradeExercisesPath, "exercises", "e", "",
		"Path to the exercise sheet (required)")
	gradeCmd.Flags().StringVarP(&gradeAnswersPath, "answers", "a", "",
		"Path to the answer sheet (required)")
	gradeCmd.Flags().StringVar(&gradeOutDir, "out-dir", "",
		"Directory for the grading report (default current directory)")
	gradeCmd.MarkFlagRequired("exercises")
	gradeCmd.MarkFlagRequired("answers")
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runGrade(cmd *cobra.Command, args []string) {
	if err := validation.ValidateOutputDir(gradeOutDir); err != nil {
		outputUsageError(cmd, err)
		os.Exit(ExitUsage)
	}

	// Missing or unreadable inputs are fatal before any output is
	// written, so a failed run never leaves a half-true report behind.
	if err := validation.ValidateInputFile(gradeExercisesPath); err != nil {
		outputError("reading exercise sheet", err)
		os.Exit(ExitError)
	}
	if err := validation.ValidateInputFile(gradeAnswersPath); err != nil {
		outputError("reading answer sheet", err)
		os.Exit(ExitError)
	}

	problems, err := artifact.ReadLines(gradeExercisesPath)
	if err != nil {
		outputError("reading exercise sheet", err)
		os.Exit(ExitError)
	}
	answers, err := artifact.ReadLines(gradeAnswersPath)
	if err != nil {
		outputError("reading answer sheet", err)
		os.Exit(ExitError)
	}

	g := grader.NewGrader(appLogger.Slog())
	report := g.Grade(problems, answers)

	store := artifact.NewStore(gradeOutDir, settings.Artifacts.Filenames(), appLogger.Slog())
	gradePath, err := store.WriteReport(report)
	if err != nil {
		outputError("writing grading report", err)
		os.Exit(ExitError)
	}

	outputGradeResult(gradePath)
	os.Exit(ExitSuccess)
}

// =============================================================================
// OUTPUT FUNCTIONS
// =============================================================================

// outputGradeResult prints the written report path.
func outputGradeResult(gradePath string) {
	fmt.Printf("Grade -> %s\n", gradePath)
}
