// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package grader

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/KodiakMath/mathgen/services/exercise/numeral"
)

// EvaluateProblem re-derives the exact value of one rendered problem line
// from its text alone: strip the trailing "=", tokenize on whitespace,
// reorder to postfix, and fold the postfix form with exact rational
// arithmetic.
//
// Outputs:
//
//	*big.Rat - The line's value.
//	error - *ParseError for malformed text, or an error wrapping
//	        ErrDivisionByZero when a divisor evaluates to zero.
func EvaluateProblem(line string) (*big.Rat, error) {
	s := strings.TrimSpace(line)
	s = strings.TrimSuffix(s, "=")
	s = strings.TrimSpace(s)

	postfix, err := toPostfix(tokenize(strings.Fields(s)))
	if err != nil {
		return nil, err
	}
	return evalPostfix(s, postfix)
}

// toPostfix reorders infix tokens into postfix (RPN) with the shunting-yard
// algorithm. All four operators are left-associative; parentheses override
// precedence.
func toPostfix(tokens []Token) ([]Token, error) {
	output := make([]Token, 0, len(tokens))
	stack := make([]Token, 0, len(tokens))

	for _, tok := range tokens {
		switch {
		case tok.Type == TokenNumber:
			output = append(output, tok)

		case tok.Type.isOperator():
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if !top.Type.isOperator() || top.Type.precedence() < tok.Type.precedence() {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)

		case tok.Type == TokenLParen:
			stack = append(stack, tok)

		case tok.Type == TokenRParen:
			matched := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Type == TokenLParen {
					matched = true
					break
				}
				output = append(output, top)
			}
			if !matched {
				return nil, &ParseError{Input: tok.Lexeme, Err: ErrUnbalancedParens}
			}
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Type == TokenLParen {
			return nil, &ParseError{Input: top.Lexeme, Err: ErrUnbalancedParens}
		}
		output = append(output, top)
	}
	return output, nil
}

// evalPostfix folds a postfix token stream into a single exact value. The
// input string is only used to describe errors.
func evalPostfix(input string, postfix []Token) (*big.Rat, error) {
	stack := make([]*big.Rat, 0, len(postfix))

	for _, tok := range postfix {
		if tok.Type == TokenNumber {
			v, err := numeral.Parse(tok.Lexeme)
			if err != nil {
				return nil, &ParseError{Input: tok.Lexeme, Err: err}
			}
			stack = append(stack, v)
			continue
		}

		if len(stack) < 2 {
			return nil, &ParseError{Input: input, Err: ErrMalformedExpression}
		}
		right := stack[len(stack)-1]
		left := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		out := new(big.Rat)
		switch tok.Type {
		case TokenPlus:
			out.Add(left, right)
		case TokenMinus:
			out.Sub(left, right)
		case TokenStar:
			out.Mul(left, right)
		case TokenSlash:
			if right.Sign() == 0 {
				return nil, fmt.Errorf("%w: %s ÷ 0", ErrDivisionByZero, left.RatString())
			}
			out.Quo(left, right)
		}
		stack = append(stack, out)
	}

	if len(stack) != 1 {
		return nil, &ParseError{Input: input, Err: ErrMalformedExpression}
	}
	return stack[0], nil
}
