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

package coi

import (
	"math/rand/v2"

	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
)

// Select returns every gate reachable from roots, in an order where every
// child precedes its parents (the order pkg/cnf needs to print the
// translation table and clauses deterministically).
func Select(c *circuit.Circuit, roots []int) []int {
	var order []int

	c.Walk(roots, func(g *circuit.Gate) {
		order = append(order, g.Index)
	})

	return order
}

// Relevant reports whether g needs its own DIMACS variable and clauses:
// true unless COI is enabled, g is determined, and its value already
// follows deductively from its children (IsJustified).
func Relevant(c *circuit.Circuit, g *circuit.Gate, performCOI bool) bool {
	if !performCOI {
		return true
	}

	return !(g.Determined && IsJustified(c, g))
}

// Numbering assigns a DIMACS variable number to every relevant gate
// reachable from the roots, in reachable order starting at 1. When
// notless is set, NOT gates never receive their own variable: Var
// reports 0 for them, and pkg/cnf is expected to substitute the negation
// of the operand's literal at every use site instead.
type Numbering struct {
	// varOf maps a gate index to its DIMACS variable number, or 0 if the
	// gate was elided (not relevant, or a NOT-less NOT gate).
	varOf map[int]int
	// NumVars is the highest variable number assigned.
	NumVars int
	// NumInputGates counts how many relevant VAR gates were numbered.
	NumInputGates int
	// Order is the reachable-gate order Numbering was built from.
	Order   []int
	notless bool
}

// Number builds a Numbering over reachable (the result of Select),
// skipping gates Relevant reports as unnecessary, and eliding NOT gates
// from the variable space when notless is set.
func Number(c *circuit.Circuit, reachable []int, performCOI, notless bool) *Numbering {
	num := &Numbering{
		varOf:   make(map[int]int, len(reachable)),
		Order:   reachable,
		notless: notless,
	}

	for _, idx := range reachable {
		g := c.Gate(idx)

		if !Relevant(c, g, performCOI) {
			continue
		}

		if notless && g.Type == circuit.Not {
			continue
		}

		num.NumVars++
		num.varOf[idx] = num.NumVars

		if g.Type == circuit.Var {
			num.NumInputGates++
		}
	}

	return num
}

// Var returns the DIMACS variable number assigned to gate idx, or 0 if
// none was (the gate was elided from the variable space entirely).
func (n *Numbering) Var(idx int) int {
	return n.varOf[idx]
}

// Literal returns the signed DIMACS literal for "gate idx evaluates to
// true", resolving NOT-less elision by following a chain of elided NOT
// gates down to the first gate that does carry a variable, flipping sign
// once per NOT hop.
func (n *Numbering) Literal(c *circuit.Circuit, idx int) int {
	sign := 1

	for {
		if v := n.varOf[idx]; v != 0 {
			return sign * v
		}

		g := c.Gate(idx)
		if n.notless && g.Type == circuit.Not {
			sign = -sign
			idx = g.Children[0]

			continue
		}

		return 0
	}
}

// Permute returns a new Numbering with the same relevance set but a
// randomly permuted variable assignment, seeded deterministically from
// seed so a given seed always reproduces the same permutation. Follows
// the teacher's math/rand/v2 usage for seeded randomness, here driving a
// Fisher-Yates shuffle of [1, NumVars].
func (n *Numbering) Permute(seed uint64) *Numbering {
	perm := make([]int, n.NumVars)
	for i := range perm {
		perm[i] = i + 1
	}

	rnd := rand.New(rand.NewPCG(seed, seed^0xD1B54A32D192ED03))

	for i := len(perm) - 1; i > 0; i-- {
		j := rnd.IntN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	out := &Numbering{
		varOf:         make(map[int]int, len(n.varOf)),
		NumVars:       n.NumVars,
		NumInputGates: n.NumInputGates,
		Order:         n.Order,
		notless:       n.notless,
	}

	for idx, v := range n.varOf {
		out.varOf[idx] = perm[v-1]
	}

	return out
}
