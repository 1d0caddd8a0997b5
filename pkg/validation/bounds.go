// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides input validation for user-supplied CLI
// arguments and config values.
//
// These checks run before any generation or grading work starts, so a
// bad flag fails fast with a usage error instead of surfacing halfway
// through a batch.
package validation

import (
	"fmt"
	"os"
	"strings"
)

// ValidateRange checks the leaf value range bound. The bound is an
// exclusive upper limit on generated values and must be at least 1.
func ValidateRange(r int) error {
	if r < 1 {
		return fmt.Errorf("range must be >= 1, got %d", r)
	}
	return nil
}

// ValidateCount checks the requested problem count against the
// configured maximum. Counts above the maximum are rejected, never
// clamped.
func ValidateCount(n, max int) error {
	if n < 1 {
		return fmt.Errorf("count must be >= 1, got %d", n)
	}
	if max > 0 && n > max {
		return fmt.Errorf("count must be <= %d, got %d", max, n)
	}
	return nil
}

// ValidateInputFile checks that path names an existing regular file.
// Used for the exercise and answer artifacts before grading starts.
func ValidateInputFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("file path cannot be empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", path)
		}
		return fmt.Errorf("cannot access file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	return nil
}

// ValidateOutputDir checks that dir exists and is a directory. An empty
// dir means the current working directory and is accepted.
func ValidateOutputDir(dir string) error {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("output directory does not exist: %s", dir)
		}
		return fmt.Errorf("cannot access output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path is not a directory: %s", dir)
	}
	return nil
}
