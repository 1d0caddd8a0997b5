// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package grader checks submitted answers against rendered problems.
//
// The grader never sees the expression trees the problems came from: it
// re-tokenizes, re-parses, and re-evaluates the printed text with exact
// rational arithmetic, then compares index-aligned submitted answers parsed
// through the same literal grammar the renderer writes. That independence is
// what makes a passing grade meaningful.
package grader

import (
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"strings"

	"github.com/KodiakMath/mathgen/services/exercise/numeral"
)

// Verdict records the outcome of one problem line.
type Verdict struct {
	Index     int      // 1-based problem position
	Problem   string   // the problem line as graded
	Submitted string   // the answer line, empty when none existed
	Expected  *big.Rat // nil when the problem line failed to evaluate
	Correct   bool
}

// Report is the result of grading one problem/answer artifact pair.
type Report struct {
	Correct  []int // ascending 1-based indices of correct answers
	Wrong    []int // ascending 1-based indices of wrong answers
	Verdicts []Verdict
}

// Render formats the two-line grading report: counts followed by the
// parenthesized index lists, empty parentheses when a count is zero.
func (r *Report) Render() string {
	return fmt.Sprintf("Correct: %d (%s)\nWrong: %d (%s)\n",
		len(r.Correct), joinIndices(r.Correct),
		len(r.Wrong), joinIndices(r.Wrong))
}

func joinIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ", ")
}

// Grader grades answer artifacts against problem artifacts.
type Grader struct {
	logger *slog.Logger
}

// NewGrader creates a Grader. A nil logger selects slog.Default().
func NewGrader(logger *slog.Logger) *Grader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Grader{logger: logger}
}

// Grade compares submitted answers against problems line by line.
//
// Description:
//
//	Each problem line is independently re-evaluated from its text and
//	compared against the parsed submitted answer at the same index. Bad
//	input degrades per line, never aborting the run: a problem line that
//	fails to parse, a missing answer line, an answer that fails to parse,
//	and a wrong value all count as incorrect. Answer lines beyond the
//	problem count are ignored.
//
// Inputs:
//
//	problems - Problem lines, already label-stripped and blank-filtered.
//	answers - Answer lines, same cleaning, index-aligned with problems.
//
// Outputs:
//
//	*Report - Correct/wrong index lists plus per-line verdicts.
func (g *Grader) Grade(problems, answers []string) *Report {
	report := &Report{
		Verdicts: make([]Verdict, 0, len(problems)),
	}

	for i, line := range problems {
		v := Verdict{Index: i + 1, Problem: line}
		if i < len(answers) {
			v.Submitted = answers[i]
		}

		expected, err := EvaluateProblem(line)
		if err != nil {
			g.logger.Warn("problem line failed to evaluate, counting as wrong",
				slog.Int("index", v.Index),
				slog.String("line", line),
				slog.Any("error", err))
			report.record(v)
			continue
		}
		v.Expected = expected

		if i >= len(answers) {
			report.record(v)
			continue
		}

		got, err := numeral.Parse(v.Submitted)
		if err != nil {
			g.logger.Debug("submitted answer failed to parse",
				slog.Int("index", v.Index),
				slog.String("answer", v.Submitted))
			report.record(v)
			continue
		}

		v.Correct = got.Cmp(expected) == 0
		report.record(v)
	}

	g.logger.Info("grading finished",
		slog.Int("problems", len(problems)),
		slog.Int("correct", len(report.Correct)),
		slog.Int("wrong", len(report.Wrong)))
	return report
}

func (r *Report) record(v Verdict) {
	r.Verdicts = append(r.Verdicts, v)
	if v.Correct {
		r.Correct = append(r.Correct, v.Index)
	} else {
		r.Wrong = append(r.Wrong, v.Index)
	}
}
