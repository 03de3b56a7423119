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

// Package polarity implements the Plaisted-Greenbaum polarity analysis:
// for each gate, whether its "if true" half, its "if false" half, or
// both, of the Tseitin clause set are actually needed by anything that
// can reach it. A gate whose only uses are all in one polarity can have
// half its defining clauses dropped from the CNF without changing
// satisfiability.
package polarity

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
)

// Info holds, for every gate reachable from the roots, whether the
// positive half (Pos) and/or the negative half (Neg) of its clause set is
// required.
type Info struct {
	pos, neg *bitset.BitSet
}

// Analyze computes polarity requirements for every gate in order (the
// result of coi.Select), seeding an asserted root with only the half that
// matches its asserted value, every other root with both polarities
// required (an external observer can constrain it to either value), and
// propagating inward along child edges according to each gate's type.
func Analyze(c *circuit.Circuit, order []int, roots []int) *Info {
	n := c.NumGates()
	info := &Info{
		pos: bitset.New(uint(n)),
		neg: bitset.New(uint(n)),
	}

	rootSet := make(map[int]bool, len(roots))
	for _, r := range roots {
		rootSet[r] = true
	}

	for _, idx := range roots {
		if isAssertedRoot(c, idx) {
			// An asserted ASSIGN root only needs its asserted value in
			// any satisfying CNF assignment (true for ASSIGN x, false
			// for ASSIGN ~x): the other half of its clause set can
			// never be exercised.
			if g := c.Gate(idx); g.Determined && !g.Value {
				info.require(idx, false, true)
			} else {
				info.require(idx, true, false)
			}
		} else {
			// A bare named handle with no assertion may be forced to
			// either value by an external caller (see
			// circuit.Circuit.ForceTrue/ForceFalse), so both halves
			// must be kept.
			info.require(idx, true, true)
		}
	}

	// order is child-before-parent; walk it back to front so every
	// parent's requirement has already been finalized before it pushes
	// requirements down onto its children.
	for i := len(order) - 1; i >= 0; i-- {
		idx := order[i]
		g := c.Gate(idx)

		pos, neg := info.Pos(idx), info.Neg(idx)
		if !pos && !neg {
			continue
		}

		propagate(c, info, g, pos, neg)
	}

	return info
}

func isAssertedRoot(c *circuit.Circuit, idx int) bool {
	g := c.Gate(idx)
	for _, h := range g.Handles {
		if h.Kind == circuit.RootHandleKind {
			return true
		}
	}

	return false
}

func (info *Info) require(idx int, pos, neg bool) {
	if pos {
		info.pos.Set(uint(idx))
	}

	if neg {
		info.neg.Set(uint(idx))
	}
}

// Pos reports whether gate idx's positive clause half is needed.
func (info *Info) Pos(idx int) bool {
	return info.pos.Test(uint(idx))
}

// Neg reports whether gate idx's negative clause half is needed.
func (info *Info) Neg(idx int) bool {
	return info.neg.Test(uint(idx))
}

// Both reports whether both halves are needed, i.e. no polarity
// restriction can be applied at all for this gate.
func (info *Info) Both(idx int) bool {
	return info.Pos(idx) && info.Neg(idx)
}

func propagate(c *circuit.Circuit, info *Info, g *circuit.Gate, pos, neg bool) {
	switch g.Type {
	case circuit.False, circuit.True, circuit.Var:
		return
	case circuit.Ref:
		info.require(g.Children[0], pos, neg)
	case circuit.Not:
		// NOT flips the polarity it hands to its child: a context that
		// needs g's positive half needs the child's negative half.
		info.require(g.Children[0], neg, pos)
	case circuit.Or, circuit.And, circuit.Atleast, circuit.Threshold:
		for _, ch := range g.Children {
			info.require(ch, pos, neg)
		}
	case circuit.Equiv, circuit.Ite:
		// Equivalence and if-then-else constrain every relevant child in
		// both directions regardless of which half of the parent is
		// needed: fixing g's value (either way) pins relationships
		// between multiple children simultaneously.
		for _, ch := range g.Children {
			info.require(ch, true, true)
		}
	case circuit.Odd, circuit.Even:
		for _, ch := range g.Children {
			info.require(ch, true, true)
		}
	}
}
