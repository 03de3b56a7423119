// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package normalize rewrites a simplified circuit into the restricted
// shape that pkg/cnf knows how to translate: no REF, THRESHOLD or
// ATLEAST gates, and no EQUIV/ODD/EVEN gate with more than two children.
// It runs once before the first clause-emitting pass and, because
// cardinality expansion can introduce new foldable structure, a second
// simplify+share round typically follows it.
package normalize

import "github.com/tjunttila-labs/bc2cnf/pkg/circuit"

// Pass walks every gate reachable from roots and normalizes it in place.
// Like pkg/share.Pass, it assumes the circuit has already been through
// simplification (folding should happen there, not here).
func Pass(c *circuit.Circuit, roots []int) {
	// Snapshot the gate list before walking: expansion installs new
	// gates, and those new gates are themselves already in normal form,
	// so they don't need to be visited.
	var order []int

	c.Walk(roots, func(g *circuit.Gate) {
		order = append(order, g.Index)
	})

	for _, idx := range order {
		g := c.Gate(idx)
		if g == nil || g.Type == circuit.Deleted {
			continue
		}

		switch g.Type {
		case circuit.Ref:
			c.Redirect(g.Index, g.Children[0])
		case circuit.Atleast:
			expandAtleast(c, g)
		case circuit.Threshold:
			expandThreshold(c, g)
		case circuit.Equiv:
			decomposeEquiv(c, g)
		case circuit.Odd:
			decomposeParity(c, g, circuit.Odd)
		case circuit.Even:
			decomposeParity(c, g, circuit.Even)
		case circuit.Or, circuit.And:
			collapseUnary(c, g)
		}
	}
}

// collapseUnary redirects a surviving unary OR/AND straight to its only
// child. Ordinarily the simplifier already does this once the child's
// determinacy is known, but an undetermined unary gate can still reach
// normalize unchanged.
func collapseUnary(c *circuit.Circuit, g *circuit.Gate) {
	if len(g.Children) == 1 {
		c.Redirect(g.Index, g.Children[0])
	}
}

// decomposeEquiv rewrites an n-ary EQUIV(c1,...,cn) (n>2) into
// OR(AND(c1,...,cn), AND(NOT(c1),...,NOT(cn))): the children are all
// equal exactly when they are all true together or all false together.
func decomposeEquiv(c *circuit.Circuit, g *circuit.Gate) {
	if len(g.Children) <= 2 {
		return
	}

	allTrue := c.Install(circuit.And, append([]int(nil), g.Children...))

	negated := make([]int, 0, len(g.Children))
	for _, ch := range g.Children {
		negated = append(negated, c.Install(circuit.Not, []int{ch}).Index)
	}

	allFalse := c.Install(circuit.And, negated)

	replacement := c.Install(circuit.Or, []int{allTrue.Index, allFalse.Index})
	c.Redirect(g.Index, replacement.Index)
}

// decomposeParity rewrites an n-ary ODD (n>2 children) into a
// right-folded binary chain by splitting off one child at a time:
// ODD(c1,...,cn) == ODD(c1, ODD(c2,...,cn)). EVEN is the same chain
// wrapped in NOT, since the two differ only in the target parity of
// the same child set.
func decomposeParity(c *circuit.Circuit, g *circuit.Gate, kind circuit.Type) {
	if len(g.Children) <= 2 {
		return
	}

	acc := g.Children[len(g.Children)-1]
	for i := len(g.Children) - 2; i >= 1; i-- {
		pair := c.Install(circuit.Odd, []int{g.Children[i], acc})
		acc = pair.Index
	}

	result := c.Install(circuit.Odd, []int{g.Children[0], acc})
	acc = result.Index

	if kind == circuit.Even {
		notGate := c.Install(circuit.Not, []int{acc})
		acc = notGate.Index
	}

	c.Redirect(g.Index, acc)
}
