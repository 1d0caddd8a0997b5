// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package grader

import (
	"errors"
	"fmt"
)

var (
	// ErrUnbalancedParens indicates a problem line whose parentheses do not
	// pair up.
	ErrUnbalancedParens = errors.New("unbalanced parentheses")

	// ErrMalformedExpression indicates a problem line that does not reduce
	// to exactly one value, such as adjacent literals or a dangling operator.
	ErrMalformedExpression = errors.New("expression does not reduce to a single value")

	// ErrDivisionByZero indicates a zero divisor met while re-evaluating a
	// problem line. Grading accepts arbitrary well-formed text, so this is a
	// normal per-line condition here, not an invariant violation.
	ErrDivisionByZero = errors.New("division by zero")
)

// ParseError reports a problem line, or a token within one, that could not
// be parsed and evaluated.
type ParseError struct {
	// Input is the offending text: a single token where one can be blamed,
	// otherwise the whole line.
	Input string

	// Err is the underlying cause.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse problem %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
