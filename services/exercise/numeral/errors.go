// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package numeral

import (
	"errors"
	"fmt"
)

var (
	// ErrRangeTooSmall indicates a value range bound below 1.
	ErrRangeTooSmall = errors.New("range must be >= 1")

	// ErrEmptyInput indicates an empty or all-whitespace literal.
	ErrEmptyInput = errors.New("empty input")

	// ErrZeroDenominator indicates a fraction literal with denominator 0.
	ErrZeroDenominator = errors.New("denominator is zero")
)

// FormatError reports a rational literal that does not match any
// recognized shape (integer, "a/b", or mixed "A’a/b").
//
// Use errors.As to recover the offending input, and errors.Is against
// the sentinel errors above to distinguish causes:
//
//	var ferr *numeral.FormatError
//	if errors.As(err, &ferr) {
//	    log.Printf("bad literal: %s", ferr.Input)
//	}
type FormatError struct {
	// Input is the literal that failed to parse.
	Input string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot parse %q as a rational: %v", e.Input, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/errors.As.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// newFormatError wraps a cause into a FormatError for the given input.
func newFormatError(input string, cause error) *FormatError {
	return &FormatError{Input: input, Err: cause}
}
