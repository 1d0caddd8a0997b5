// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// These are unit tests over the command tree and output helpers. They
// never reach a Run function, so no test path can call os.Exit.

package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KodiakMath/mathgen/services/exercise/generator"
)

// execute runs the root command with args and returns the combined
// cobra output and the Execute error. The package-level command tree is
// shared, so all flag state is reset afterwards to keep the tests
// independent of execution order.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		for _, cmd := range []*cobra.Command{rootCmd, generateCmd, gradeCmd} {
			cmd.Flags().VisitAll(func(f *pflag.Flag) {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			})
		}
	}()
	err := rootCmd.Execute()
	return buf.String(), err
}

// captureStdout runs fn with os.Stdout redirected into a pipe and
// returns what it printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

// Test that the exit codes keep their documented values.
func TestCLI_ExitCodes(t *testing.T) {
	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 1, ExitError)
	assert.Equal(t, 2, ExitUsage)
}

// Test that the root command carries both subcommands.
func TestCLI_Root_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["generate"], "generate subcommand not registered")
	assert.True(t, names["grade"], "grade subcommand not registered")
}

// Test the global flag set and its defaults.
func TestCLI_Root_GlobalFlags(t *testing.T) {
	tests := []struct {
		flag string
		def  string
	}{
		{"config", ""},
		{"log-level", "info"},
		{"log-json", "false"},
		{"quiet", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			f := rootCmd.PersistentFlags().Lookup(tt.flag)
			require.NotNil(t, f, "global flag --%s not registered", tt.flag)
			assert.Equal(t, tt.def, f.DefValue)
		})
	}
}

// Test that --help renders without error and mentions both commands.
func TestCLI_Root_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "mathgen")
	assert.Contains(t, out, "generate")
	assert.Contains(t, out, "grade")
}

// Test that an unknown subcommand is rejected at parse time.
func TestCLI_Root_UnknownCommand(t *testing.T) {
	_, err := execute(t, "frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

// Test the generate flag set: names, shorthands, defaults.
func TestCLI_Generate_Flags(t *testing.T) {
	tests := []struct {
		flag      string
		shorthand string
		def       string
	}{
		{"range", "r", "0"},
		{"count", "n", "100"},
		{"stats", "", "false"},
		{"out-dir", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			f := generateCmd.Flags().Lookup(tt.flag)
			require.NotNil(t, f, "flag --%s not registered", tt.flag)
			assert.Equal(t, tt.shorthand, f.Shorthand)
			assert.Equal(t, tt.def, f.DefValue)
		})
	}
}

// Test that generate refuses to run without --range.
func TestCLI_Generate_RangeRequired(t *testing.T) {
	_, err := execute(t, "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
	assert.Contains(t, err.Error(), "range")
}

// Test that a non-integer range value fails at flag parsing.
func TestCLI_Generate_BadRangeValue(t *testing.T) {
	_, err := execute(t, "generate", "-r", "ten")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

// Test that generate rejects positional arguments.
func TestCLI_Generate_NoPositionalArgs(t *testing.T) {
	_, err := execute(t, "generate", "-r", "10", "extra")
	require.Error(t, err)
}

// Test the grade flag set: names, shorthands, defaults.
func TestCLI_Grade_Flags(t *testing.T) {
	tests := []struct {
		flag      string
		shorthand string
	}{
		{"exercises", "e"},
		{"answers", "a"},
		{"out-dir", ""},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			f := gradeCmd.Flags().Lookup(tt.flag)
			require.NotNil(t, f, "flag --%s not registered", tt.flag)
			assert.Equal(t, tt.shorthand, f.Shorthand)
			assert.Equal(t, "", f.DefValue)
		})
	}
}

// Test that grade refuses to run without its input flags.
func TestCLI_Grade_InputFlagsRequired(t *testing.T) {
	_, err := execute(t, "grade")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
	assert.Contains(t, err.Error(), "exercises")
	assert.Contains(t, err.Error(), "answers")
}

// Test the generate result lines, including the arrow alignment.
func TestCLI_OutputGenerateResult(t *testing.T) {
	batch := &generator.Batch{
		Target: 3,
		Problems: []generator.Problem{
			{Text: "3 + 4 ="},
			{Text: "1/2 + 1/4 ="},
			{Text: "9 - 5 ="},
		},
	}

	out := captureStdout(t, func() {
		outputGenerateResult(batch, "out/Exercises.txt", "out/Answers.txt", "")
	})
	want := "Generated 3 problems\n" +
		"Exercises -> out/Exercises.txt\n" +
		"Answers   -> out/Answers.txt\n"
	assert.Equal(t, want, out)
	assert.NotContains(t, out, "Stats")
}

// Test that --stats adds the diagnostics path line.
func TestCLI_OutputGenerateResult_WithStats(t *testing.T) {
	batch := &generator.Batch{Target: 1, Problems: []generator.Problem{{Text: "3 + 4 ="}}}

	out := captureStdout(t, func() {
		outputGenerateResult(batch, "Exercises.txt", "Answers.txt", "Perf.txt")
	})
	require.True(t, strings.HasSuffix(out, "Stats     -> Perf.txt\n"), "got %q", out)

	// Every arrow sits in the same column.
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n")[1:] {
		assert.Equal(t, 10, strings.Index(line, "-> "), "misaligned line %q", line)
	}
}

// Test the grade result line.
func TestCLI_OutputGradeResult(t *testing.T) {
	out := captureStdout(t, func() {
		outputGradeResult("out/Grade.txt")
	})
	assert.Equal(t, "Grade -> out/Grade.txt\n", out)
}
