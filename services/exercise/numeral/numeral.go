// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package numeral constructs, formats, and parses the exact rational
// values that flow through problem generation and grading.
//
// All values are *big.Rat: arbitrary precision, reduced to lowest terms
// on every construction, denominator always positive. No floating point
// enters the pipeline anywhere, which is what makes the round-trip
// guarantee possible:
//
//	Parse(Format(x)) == x   for every x this package produces
//
// # Canonical Text Forms
//
// Format emits one of three shapes, with a leading "-" for negative
// values:
//
//	7          integer (denominator 1)
//	3/4        proper fraction, |x| strictly between 0 and 1
//	2’5/8      mixed number: integer part, U+2019, fractional remainder
//
// Parse accepts the same shapes and additionally tolerates an ASCII
// apostrophe in place of U+2019 for hand-typed answers.
package numeral

import (
	"fmt"
	"math/big"
	"math/rand"
	"strings"
)

// Separator is the glyph between the integer and fractional parts of a
// mixed number: U+2019, RIGHT SINGLE QUOTATION MARK.
const Separator = "’"

// asciiSeparator is accepted on input only, never emitted.
const asciiSeparator = "'"

// Natural returns a uniform random integer in [0, r-1] as a rational.
// The bound r must be at least 1; r=1 always yields zero.
func Natural(rng *rand.Rand, r int) (*big.Rat, error) {
	if r < 1 {
		return nil, ErrRangeTooSmall
	}
	return big.NewRat(int64(rng.Intn(r)), 1), nil
}

// ProperFraction returns a random fraction strictly between 0 and 1:
// denominator uniform in [2, max(2, r-1)], numerator uniform in
// [1, denominator-1]. For r < 2 no proper fraction exists under the
// bound; the second return is false and the value is nil. Callers must
// branch on ok rather than expect a placeholder value.
func ProperFraction(rng *rand.Rand, r int) (value *big.Rat, ok bool) {
	if r < 2 {
		return nil, false
	}
	hi := r - 1
	if hi < 2 {
		hi = 2
	}
	den := 2 + rng.Intn(hi-1)
	num := 1 + rng.Intn(den-1)
	return big.NewRat(int64(num), int64(den)), true
}

// MixedNumber returns a random integer part in [0, r-1] plus an
// independent proper fraction part. For r < 2 a fractional part cannot
// be built, so the value degrades to Natural.
func MixedNumber(rng *rand.Rand, r int) (*big.Rat, error) {
	if r < 2 {
		return Natural(rng, r)
	}
	intPart := big.NewRat(int64(rng.Intn(r)), 1)
	frac, ok := ProperFraction(rng, r)
	if !ok {
		// Unreachable for r >= 2; keep the degenerate path total.
		return intPart, nil
	}
	return new(big.Rat).Add(intPart, frac), nil
}

// Format renders x in canonical text form. Integers print bare ("7",
// "-3"); values with |x| < 1 print as "a/b"; everything else prints as
// a mixed number "A’a/b". The fractional remainder is in lowest terms
// because big.Rat normalizes on construction.
func Format(x *big.Rat) string {
	if x.IsInt() {
		return x.Num().String()
	}

	sign := ""
	ax := x
	if x.Sign() < 0 {
		sign = "-"
		ax = new(big.Rat).Abs(x)
	}

	if ax.Num().Cmp(ax.Denom()) < 0 {
		return sign + ax.Num().String() + "/" + ax.Denom().String()
	}

	intPart := new(big.Int).Quo(ax.Num(), ax.Denom())
	rem := new(big.Rat).Sub(ax, new(big.Rat).SetInt(intPart))
	return sign + intPart.String() + Separator + rem.Num().String() + "/" + rem.Denom().String()
}

// Parse is the inverse of Format. It trims surrounding whitespace and
// accepts an optional leading "-" followed by one of the three
// canonical shapes; the mixed-number separator may be U+2019 or an
// ASCII apostrophe. Anything else fails with a *FormatError, including
// a zero denominator.
func Parse(s string) (*big.Rat, error) {
	orig := s
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, newFormatError(orig, ErrEmptyInput)
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var val *big.Rat
	switch {
	case strings.Contains(s, Separator) || strings.Contains(s, asciiSeparator):
		sep := Separator
		if !strings.Contains(s, Separator) {
			sep = asciiSeparator
		}
		parts := strings.SplitN(s, sep, 2)
		intPart, ok := parseInt(parts[0])
		if !ok {
			return nil, newFormatError(orig, errInvalidInteger(parts[0]))
		}
		frac, err := parseFraction(orig, parts[1])
		if err != nil {
			return nil, err
		}
		val = new(big.Rat).Add(new(big.Rat).SetInt(intPart), frac)

	case strings.Contains(s, "/"):
		frac, err := parseFraction(orig, s)
		if err != nil {
			return nil, err
		}
		val = frac

	default:
		intPart, ok := parseInt(s)
		if !ok {
			return nil, newFormatError(orig, errInvalidInteger(s))
		}
		val = new(big.Rat).SetInt(intPart)
	}

	if neg {
		val.Neg(val)
	}
	return val, nil
}

// parseFraction parses "a/b" with unsigned decimal fields. orig is the
// full literal, reported on failure.
func parseFraction(orig, s string) (*big.Rat, error) {
	num, den, found := strings.Cut(s, "/")
	if !found {
		return nil, newFormatError(orig, errInvalidFraction(s))
	}
	n, ok := parseInt(num)
	if !ok {
		return nil, newFormatError(orig, errInvalidInteger(num))
	}
	d, ok := parseInt(den)
	if !ok {
		return nil, newFormatError(orig, errInvalidInteger(den))
	}
	if d.Sign() == 0 {
		return nil, newFormatError(orig, ErrZeroDenominator)
	}
	return new(big.Rat).SetFrac(n, d), nil
}

// parseInt parses an unsigned decimal integer of arbitrary size. Signs
// are not accepted here: the only legal sign is the leading "-" that
// Parse consumes for the whole literal.
func parseInt(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return nil, false
		}
	}
	v, ok := new(big.Int).SetString(s, 10)
	return v, ok
}

func errInvalidInteger(field string) error {
	return fmt.Errorf("invalid integer field %q", field)
}

func errInvalidFraction(field string) error {
	return fmt.Errorf("missing '/' in fraction field %q", field)
}
