// Copyright (C) 2025 Kodiak Math (maintainers@kodiakmath.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package generator builds batches of arithmetic practice problems by
// constrained rejection sampling over random expression trees.
//
// Every accepted problem satisfies three constraints: subtraction nodes never
// produce negative values, division nodes always produce a proper fraction,
// and no two problems in one batch share a canonical key (problems equal up
// to commutativity of + and × count as the same problem).
package generator

import (
	"fmt"
	"log/slog"
	"math/big"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/KodiakMath/mathgen/services/exercise/expr"
	"github.com/KodiakMath/mathgen/services/exercise/numeral"
)

// Default retry and budget bounds. Sampling loops give up after these many
// draws and fall back to addition, which is always valid; the batch loop
// gives up after BudgetFactor attempts per requested problem and returns a
// partial batch.
const (
	DefaultPairAttempts   = 100
	DefaultExtendAttempts = 50
	DefaultBudgetFactor   = 200
)

// Limits bounds the rejection-sampling loops. The zero value selects the
// package defaults.
type Limits struct {
	// PairAttempts bounds leaf redraws for the initial binary combination.
	PairAttempts int

	// ExtendAttempts bounds leaf redraws for each tree extension.
	ExtendAttempts int

	// BudgetFactor bounds whole-batch attempts at BudgetFactor * n.
	BudgetFactor int
}

func (l Limits) withDefaults() Limits {
	if l.PairAttempts <= 0 {
		l.PairAttempts = DefaultPairAttempts
	}
	if l.ExtendAttempts <= 0 {
		l.ExtendAttempts = DefaultExtendAttempts
	}
	if l.BudgetFactor <= 0 {
		l.BudgetFactor = DefaultBudgetFactor
	}
	return l
}

// Problem is one accepted exercise: the rendered text (ending in " =") and
// its exact expected answer.
type Problem struct {
	Text   string
	Answer *big.Rat
}

// Stats collects the diagnostics of one generation run.
type Stats struct {
	// Attempts counts every candidate tree drawn, accepted or not.
	Attempts int

	// Duplicates counts candidates rejected because their canonical key was
	// already in the batch.
	Duplicates int

	// ZeroDiv counts candidates whose final evaluation divided by zero. The
	// acceptance constraints pre-empt this, so a nonzero count signals an
	// internal invariant violation; the candidate is skipped either way.
	ZeroDiv int

	// OpHistogram counts accepted problems by operator count: index i holds
	// the number of problems with i+1 operators.
	OpHistogram [3]int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Batch is the result of one generation run. Problems may hold fewer than
// Target entries when the attempt budget ran out before the target was met;
// that is a normal outcome for small ranges, not an error.
type Batch struct {
	ID       string
	Range    int
	Target   int
	Problems []Problem
	Stats    Stats
}

// Generated returns the number of accepted problems.
func (b *Batch) Generated() int {
	return len(b.Problems)
}

// Exhausted reports whether the run stopped short of Target because the
// attempt budget ran out.
func (b *Batch) Exhausted() bool {
	return len(b.Problems) < b.Target
}

// Generator produces problem batches from a single random source.
//
// Description:
//
//	Generator draws random expression trees with 1-3 binary operators,
//	enforces the subtraction and division acceptance constraints while
//	building, and deduplicates accepted trees by canonical key. The
//	deduplication set is local to one Generate call.
//
// Thread Safety:
//
//	Generator is NOT safe for concurrent use; the underlying rand.Rand
//	source is stateful. Create one Generator per goroutine.
type Generator struct {
	rng    *rand.Rand
	logger *slog.Logger
	limits Limits
}

// New creates a Generator.
//
// Inputs:
//
//	rng - Random source. If nil, a time-seeded source is created.
//	logger - Logger for run diagnostics. If nil, uses slog.Default().
//	limits - Retry bounds. Zero fields select the package defaults.
func New(rng *rand.Rand, logger *slog.Logger, limits Limits) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		rng:    rng,
		logger: logger,
		limits: limits.withDefaults(),
	}
}

// Generate produces up to n deduplicated problems over leaves drawn from
// [0, r-1].
//
// Inputs:
//
//	r - Exclusive upper bound on leaf magnitudes. Must be >= 1.
//	n - Target problem count. Must be >= 1; the external cap on n is
//	    enforced by the caller.
//
// Outputs:
//
//	*Batch - The accepted problems plus run diagnostics. May hold fewer
//	         than n problems when the attempt budget is exhausted.
//	error - ErrInvalidRange or ErrInvalidCount on bad inputs.
func (g *Generator) Generate(r, n int) (*Batch, error) {
	if r < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRange, r)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}

	start := time.Now()
	batch := &Batch{
		ID:     uuid.NewString()[:12],
		Range:  r,
		Target: n,
	}
	seen := make(map[string]struct{}, n)
	budget := n * g.limits.BudgetFactor

	g.logger.Info("generation started",
		slog.String("batch_id", batch.ID),
		slog.Int("range", r),
		slog.Int("target", n),
		slog.Int("budget", budget))

	for len(batch.Problems) < n && batch.Stats.Attempts < budget {
		batch.Stats.Attempts++

		nOps := 1 + g.rng.Intn(3)
		tree := g.buildExprWithOps(r, nOps)

		key := tree.CanonicalKey()
		if _, dup := seen[key]; dup {
			batch.Stats.Duplicates++
			continue
		}

		val, err := tree.Evaluate()
		if err != nil {
			batch.Stats.ZeroDiv++
			g.logger.Warn("candidate tree divided by zero, skipping",
				slog.String("batch_id", batch.ID),
				slog.String("key", key))
			continue
		}

		seen[key] = struct{}{}
		batch.Stats.OpHistogram[nOps-1]++
		batch.Problems = append(batch.Problems, Problem{
			Text:   tree.Render() + " =",
			Answer: val,
		})
	}
	batch.Stats.Elapsed = time.Since(start)

	if len(batch.Problems) < n {
		g.logger.Warn("attempt budget exhausted, returning partial batch",
			slog.String("batch_id", batch.ID),
			slog.Int("generated", len(batch.Problems)),
			slog.Int("target", n),
			slog.Int("attempts", batch.Stats.Attempts))
	} else {
		g.logger.Info("generation finished",
			slog.String("batch_id", batch.ID),
			slog.Int("generated", len(batch.Problems)),
			slog.Int("attempts", batch.Stats.Attempts),
			slog.Duration("elapsed", batch.Stats.Elapsed))
	}
	return batch, nil
}

// buildExprWithOps constructs one tree holding exactly nOps operators.
//
// The initial binary combination retries fresh leaf pairs until an operator's
// acceptance constraint holds; each later extension combines the tree so far
// with one fresh leaf, trying both operand orders for - and / since their
// constraints are order-sensitive. Exhausted retries fall back to +.
func (g *Generator) buildExprWithOps(r, nOps int) expr.Node {
	left, leftVal := g.randomLeaf(r)
	right, rightVal := g.randomLeaf(r)

	var node expr.Node
	var nodeVal *big.Rat
	for attempt := 0; attempt < g.limits.PairAttempts; attempt++ {
		op := g.randomOp()
		switch op {
		case expr.OpSub:
			if validSub(leftVal, rightVal) {
				node, nodeVal = combine(op, left, leftVal, right, rightVal)
			}
		case expr.OpDiv:
			if validDiv(leftVal, rightVal) {
				node, nodeVal = combine(op, left, leftVal, right, rightVal)
			}
		default:
			node, nodeVal = combine(op, left, leftVal, right, rightVal)
		}
		if node != nil {
			break
		}
		left, leftVal = g.randomLeaf(r)
		right, rightVal = g.randomLeaf(r)
	}
	if node == nil {
		node, nodeVal = combine(expr.OpAdd, left, leftVal, right, rightVal)
	}

	for slot := 1; slot < nOps; slot++ {
		leaf, leafVal := g.randomLeaf(r)

		var built expr.Node
		var builtVal *big.Rat
		for attempt := 0; attempt < g.limits.ExtendAttempts; attempt++ {
			op := g.randomOp()
			switch op {
			case expr.OpSub:
				if validSub(nodeVal, leafVal) {
					built, builtVal = combine(op, node, nodeVal, leaf, leafVal)
				} else if validSub(leafVal, nodeVal) {
					built, builtVal = combine(op, leaf, leafVal, node, nodeVal)
				}
			case expr.OpDiv:
				if validDiv(nodeVal, leafVal) {
					built, builtVal = combine(op, node, nodeVal, leaf, leafVal)
				} else if validDiv(leafVal, nodeVal) {
					built, builtVal = combine(op, leaf, leafVal, node, nodeVal)
				}
			default:
				built, builtVal = combine(op, node, nodeVal, leaf, leafVal)
			}
			if built != nil {
				break
			}
			leaf, leafVal = g.randomLeaf(r)
		}
		if built == nil {
			built, builtVal = combine(expr.OpAdd, node, nodeVal, leaf, leafVal)
		}
		node, nodeVal = built, builtVal
	}

	return node
}

// randomLeaf draws one literal leaf: a natural number, a proper fraction, or
// a mixed number, chosen uniformly. Fractional kinds need r >= 2; below that
// only naturals exist. Returns the node together with its exact value so
// acceptance checks never re-walk the tree.
func (g *Generator) randomLeaf(r int) (expr.Node, *big.Rat) {
	if r >= 2 {
		switch g.rng.Intn(3) {
		case 1:
			if f, ok := numeral.ProperFraction(g.rng, r); ok {
				return &expr.Num{Value: f}, f
			}
		case 2:
			if m, err := numeral.MixedNumber(g.rng, r); err == nil {
				return &expr.Num{Value: m}, m
			}
		}
	}
	nat, err := numeral.Natural(g.rng, r)
	if err != nil {
		nat = new(big.Rat)
	}
	return &expr.Num{Value: nat}, nat
}

func (g *Generator) randomOp() expr.Operator {
	return expr.Operators[g.rng.Intn(len(expr.Operators))]
}

// validSub reports whether left - right stays non-negative.
func validSub(left, right *big.Rat) bool {
	return left.Cmp(right) >= 0
}

// validDiv reports whether left / right is defined and a proper fraction,
// strictly between 0 and 1.
func validDiv(left, right *big.Rat) bool {
	if right.Sign() == 0 {
		return false
	}
	q := new(big.Rat).Quo(left, right)
	return q.Sign() > 0 && q.Cmp(ratOne) < 0
}

var ratOne = big.NewRat(1, 1)

// combine builds op(left, right) and folds the operand values so the new
// subtree's value rides along without re-evaluation. Callers must have
// checked validDiv before combining with OpDiv.
func combine(op expr.Operator, left expr.Node, leftVal *big.Rat, right expr.Node, rightVal *big.Rat) (expr.Node, *big.Rat) {
	out := new(big.Rat)
	switch op {
	case expr.OpAdd:
		out.Add(leftVal, rightVal)
	case expr.OpSub:
		out.Sub(leftVal, rightVal)
	case expr.OpMul:
		out.Mul(leftVal, rightVal)
	case expr.OpDiv:
		out.Quo(leftVal, rightVal)
	}
	return &expr.BinaryExpr{Op: op, Left: left, Right: right}, out
}
