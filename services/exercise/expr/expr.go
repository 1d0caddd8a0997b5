// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package expr defines the immutable expression trees behind generated
// problems: leaves holding exact rationals and binary nodes for the
// four arithmetic operators.
//
// Trees are built once and never mutated or structurally shared. Each
// node answers four questions:
//
//   - Evaluate: the exact rational value of the subtree
//   - OpCount: how many operators the subtree contains
//   - CanonicalKey: a dedup signature that ignores operand order for
//     + and * but preserves it for - and /
//   - Render: infix text with display glyphs and the parentheses an
//     independent left-associative reader needs to reconstruct the
//     same value
package expr

import (
	"math/big"

	"github.com/KodiakMath/mathgen/services/exercise/numeral"
)

// =============================================================================
// Operators
// =============================================================================

// Operator identifies one of the four binary arithmetic operators.
type Operator int

const (
	OpAdd Operator = iota // +
	OpSub                 // -
	OpMul                 // *
	OpDiv                 // /
)

// Operators lists all four operators, in token order. Random generation
// draws uniformly from this slice.
var Operators = []Operator{OpAdd, OpSub, OpMul, OpDiv}

// Token returns the canonical single-character operator token used in
// keys, parsing, and logs: "+", "-", "*", "/".
func (op Operator) Token() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// Glyph returns the display form printed in problem text. Multiply and
// divide use distinct glyphs from their raw tokens.
func (op Operator) Glyph() string {
	switch op {
	case OpMul:
		return "×" // ×
	case OpDiv:
		return "÷" // ÷
	default:
		return op.Token()
	}
}

// Precedence returns 1 for + and -, 2 for * and /.
func (op Operator) Precedence() int {
	if op == OpMul || op == OpDiv {
		return 2
	}
	return 1
}

// Commutative reports whether swapping operands leaves the value
// unchanged. Only + and * qualify; no other identity is recognized.
func (op Operator) Commutative() bool {
	return op == OpAdd || op == OpMul
}

// String implements fmt.Stringer via the canonical token.
func (op Operator) String() string {
	return op.Token()
}

// =============================================================================
// Nodes
// =============================================================================

// Node is the closed interface over the two tree variants, Num and
// BinaryExpr. Nodes are immutable after construction.
type Node interface {
	// Evaluate returns the exact value of the subtree. The only
	// possible error is ErrDivisionByZero.
	Evaluate() (*big.Rat, error)

	// OpCount returns the number of binary operator nodes in the
	// subtree.
	OpCount() int

	// CanonicalKey returns the dedup signature of the subtree.
	CanonicalKey() string

	// Render returns the infix text of the subtree.
	Render() string

	node()
}

// Num is a leaf holding a literal rational value.
type Num struct {
	Value *big.Rat
}

// BinaryExpr applies Op to the values of Left and Right.
type BinaryExpr struct {
	Op    Operator
	Left  Node
	Right Node
}

func (n *Num) node()        {}
func (b *BinaryExpr) node() {}

// Evaluate returns a copy of the leaf value, so callers can never
// mutate a value stored in a tree.
func (n *Num) Evaluate() (*big.Rat, error) {
	return new(big.Rat).Set(n.Value), nil
}

// OpCount of a leaf is zero.
func (n *Num) OpCount() int {
	return 0
}

// CanonicalKey of a leaf is its exact value: "N:{num}/{den}" with the
// fraction in lowest terms and the sign on the numerator.
func (n *Num) CanonicalKey() string {
	return "N:" + n.Value.Num().String() + "/" + n.Value.Denom().String()
}

// Render prints the leaf in canonical literal form.
func (n *Num) Render() string {
	return numeral.Format(n.Value)
}

// Evaluate combines the child values exactly. Division checks the right
// value before dividing and reports ErrDivisionByZero instead of
// panicking.
func (b *BinaryExpr) Evaluate() (*big.Rat, error) {
	lv, err := b.Left.Evaluate()
	if err != nil {
		return nil, err
	}
	rv, err := b.Right.Evaluate()
	if err != nil {
		return nil, err
	}
	switch b.Op {
	case OpAdd:
		return new(big.Rat).Add(lv, rv), nil
	case OpSub:
		return new(big.Rat).Sub(lv, rv), nil
	case OpMul:
		return new(big.Rat).Mul(lv, rv), nil
	default:
		if rv.Sign() == 0 {
			return nil, ErrDivisionByZero
		}
		return new(big.Rat).Quo(lv, rv), nil
	}
}

// OpCount counts this node plus both subtrees.
func (b *BinaryExpr) OpCount() int {
	return 1 + b.Left.OpCount() + b.Right.OpCount()
}

// CanonicalKey folds commutativity of + and * by sorting the two child
// keys lexicographically inside an operator-tagged marker; - and / keep
// the operand order in a distinct marker shape.
func (b *BinaryExpr) CanonicalKey() string {
	lk := b.Left.CanonicalKey()
	rk := b.Right.CanonicalKey()
	switch b.Op {
	case OpAdd, OpMul:
		a, c := lk, rk
		if a > c {
			a, c = c, a
		}
		marker := "A"
		if b.Op == OpMul {
			marker = "M"
		}
		return marker + ":(" + a + "," + c + ")"
	case OpSub:
		return "S:[" + lk + "," + rk + "]"
	default:
		return "D:[" + lk + "," + rk + "]"
	}
}

// Render prints the subtree in infix form with single spaces between
// tokens and "( ... )" around children that need grouping.
func (b *BinaryExpr) Render() string {
	l := b.Left.Render()
	if needsParens(b.Left, b.Op, false) {
		l = "( " + l + " )"
	}
	r := b.Right.Render()
	if needsParens(b.Right, b.Op, true) {
		r = "( " + r + " )"
	}
	return l + " " + b.Op.Glyph() + " " + r
}

// needsParens decides whether a child subtree must be grouped under the
// given parent operator. Leaves never need grouping. A binary child is
// grouped when its precedence is strictly lower than the parent's, or
// when the parent is - or / and the child is the same operator. A right
// operand of - or / is additionally grouped at equal precedence:
// without that, an expression like 9 - (3 + 4) prints as "9 - 3 + 4"
// and a left-associative reader reconstructs (9 - 3) + 4, a different
// value.
func needsParens(child Node, parent Operator, isRight bool) bool {
	be, ok := child.(*BinaryExpr)
	if !ok {
		return false
	}
	cp := be.Op.Precedence()
	pp := parent.Precedence()
	if cp < pp {
		return true
	}
	if parent == OpSub || parent == OpDiv {
		if be.Op == parent {
			return true
		}
		if isRight && cp == pp {
			return true
		}
	}
	return false
}
