// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package artifact reads and writes the newline-delimited text files the
// exercise pipeline exchanges: problems, answers, the grading report, and
// the optional generation diagnostics.
//
// All files are UTF-8. Writes are atomic (temp file + rename) so a crashed
// run never leaves a half-written artifact behind.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/KodiakMath/mathgen/services/exercise/generator"
	"github.com/KodiakMath/mathgen/services/exercise/grader"
	"github.com/KodiakMath/mathgen/services/exercise/numeral"
)

// Default artifact filenames, relative to the store directory.
const (
	DefaultExercisesFile = "Exercises.txt"
	DefaultAnswersFile   = "Answers.txt"
	DefaultGradeFile     = "Grade.txt"
	DefaultStatsFile     = "Perf.txt"
)

// labelPattern matches an optional numbering label at the start of a line:
// digits, one of ". ) :", then whitespace separating it from the content.
var labelPattern = regexp.MustCompile(`^\d+[.):]\s+`)

// Filenames selects the artifact filenames. Zero-value fields fall back to
// the package defaults.
type Filenames struct {
	Exercises string
	Answers   string
	Grade     string
	Stats     string
}

func (f Filenames) withDefaults() Filenames {
	if f.Exercises == "" {
		f.Exercises = DefaultExercisesFile
	}
	if f.Answers == "" {
		f.Answers = DefaultAnswersFile
	}
	if f.Grade == "" {
		f.Grade = DefaultGradeFile
	}
	if f.Stats == "" {
		f.Stats = DefaultStatsFile
	}
	return f
}

// Store writes pipeline artifacts into one directory.
type Store struct {
	dir    string
	names  Filenames
	logger *slog.Logger
}

// NewStore creates a Store rooted at dir. An empty dir selects the current
// working directory. A nil logger selects slog.Default().
func NewStore(dir string, names Filenames, logger *slog.Logger) *Store {
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		dir:    dir,
		names:  names.withDefaults(),
		logger: logger,
	}
}

// WriteBatch writes the problem and answer artifacts for one batch: one
// rendered problem per exercise line and the matching formatted answer at
// the same line of the answer file.
//
// Outputs:
//
//	string - Path of the written exercises file.
//	string - Path of the written answers file.
//	error - Non-nil if either write fails.
func (s *Store) WriteBatch(batch *generator.Batch) (string, string, error) {
	var exercises, answers strings.Builder
	for _, p := range batch.Problems {
		exercises.WriteString(p.Text)
		exercises.WriteByte('\n')
		answers.WriteString(numeral.Format(p.Answer))
		answers.WriteByte('\n')
	}

	exPath := filepath.Join(s.dir, s.names.Exercises)
	if err := writeFileAtomic(exPath, []byte(exercises.String())); err != nil {
		return "", "", fmt.Errorf("write exercises: %w", err)
	}
	ansPath := filepath.Join(s.dir, s.names.Answers)
	if err := writeFileAtomic(ansPath, []byte(answers.String())); err != nil {
		return "", "", fmt.Errorf("write answers: %w", err)
	}

	s.logger.Debug("batch artifacts written",
		slog.String("batch_id", batch.ID),
		slog.Int("problems", batch.Generated()),
		slog.String("exercises", exPath),
		slog.String("answers", ansPath))
	return exPath, ansPath, nil
}

// WriteReport writes the two-line grading report and returns its path.
func (s *Store) WriteReport(report *grader.Report) (string, error) {
	path := filepath.Join(s.dir, s.names.Grade)
	if err := writeFileAtomic(path, []byte(report.Render())); err != nil {
		return "", fmt.Errorf("write grade report: %w", err)
	}
	s.logger.Debug("grade report written", slog.String("path", path))
	return path, nil
}

// WriteStats writes the generation diagnostics report and returns its path.
func (s *Store) WriteStats(batch *generator.Batch) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Range r: %d\n", batch.Range)
	fmt.Fprintf(&b, "Target n: %d\n", batch.Target)
	fmt.Fprintf(&b, "Generated: %d\n", batch.Generated())
	fmt.Fprintf(&b, "Attempts: %d\n", batch.Stats.Attempts)
	fmt.Fprintf(&b, "Duplicates skipped: %d\n", batch.Stats.Duplicates)
	fmt.Fprintf(&b, "ZeroDivision skipped: %d\n", batch.Stats.ZeroDiv)
	fmt.Fprintf(&b, "Op count distribution: 1->%d, 2->%d, 3->%d\n",
		batch.Stats.OpHistogram[0], batch.Stats.OpHistogram[1], batch.Stats.OpHistogram[2])
	fmt.Fprintf(&b, "Time: %d ms\n", batch.Stats.Elapsed.Milliseconds())

	path := filepath.Join(s.dir, s.names.Stats)
	if err := writeFileAtomic(path, []byte(b.String())); err != nil {
		return "", fmt.Errorf("write stats: %w", err)
	}
	s.logger.Debug("stats written", slog.String("path", path))
	return path, nil
}

// ReadLines loads a newline-delimited artifact: lines are whitespace-trimmed,
// numbering labels such as "12. " or "3) " are stripped, and blank lines are
// dropped. Returns ErrNotFound when the file does not exist.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	raw := strings.Split(string(data), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		line = labelPattern.ReplaceAllString(line, "")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// writeFileAtomic writes data to path via a temp file in the same directory
// followed by a rename, so readers never observe a partial artifact.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, ".artifact-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}

	success = true
	return nil
}
