// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package grader

import "fmt"

// TokenType identifies the category of a problem-line token.
type TokenType int

const (
	TokenNumber TokenType = iota // rational literal, one whitespace field

	// Operators
	TokenPlus  // +
	TokenMinus // -
	TokenStar  // * or the display glyph ×
	TokenSlash // / or the display glyph ÷

	// Grouping
	TokenLParen // (
	TokenRParen // )
)

var tokenNames = [...]string{
	TokenNumber: "NUMBER",
	TokenPlus:   "PLUS",
	TokenMinus:  "MINUS",
	TokenStar:   "STAR",
	TokenSlash:  "SLASH",
	TokenLParen: "LPAREN",
	TokenRParen: "RPAREN",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// precedence returns the binding strength of an operator token, or 0 for
// anything that is not an operator. The table matches the renderer: + and -
// bind at 1, × and ÷ at 2, all left-associative.
func (tt TokenType) precedence() int {
	switch tt {
	case TokenPlus, TokenMinus:
		return 1
	case TokenStar, TokenSlash:
		return 2
	}
	return 0
}

func (tt TokenType) isOperator() bool {
	return tt.precedence() > 0
}

// Token is one whitespace-delimited field of a problem line.
type Token struct {
	Type   TokenType
	Lexeme string // the exact field text
	Pos    int    // 1-based field position in the line
}

func (t Token) String() string {
	return fmt.Sprintf("%-7s %q at field %d", t.Type, t.Lexeme, t.Pos)
}

// tokenize classifies whitespace-delimited fields. Problem lines keep
// operators, parentheses, and literals apart with whitespace, so every field
// is exactly one token; the display glyphs × and ÷ normalize to their
// canonical operators. Unrecognized fields become literal candidates and are
// validated when evaluated.
func tokenize(fields []string) []Token {
	tokens := make([]Token, 0, len(fields))
	for i, field := range fields {
		var tt TokenType
		switch field {
		case "+":
			tt = TokenPlus
		case "-":
			tt = TokenMinus
		case "*", "×":
			tt = TokenStar
		case "/", "÷":
			tt = TokenSlash
		case "(":
			tt = TokenLParen
		case ")":
			tt = TokenRParen
		default:
			tt = TokenNumber
		}
		tokens = append(tokens, Token{Type: tt, Lexeme: field, Pos: i + 1})
	}
	return tokens
}
