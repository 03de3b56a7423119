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

package simplify

import "github.com/tjunttila-labs/bc2cnf/pkg/circuit"

// simplifyEquiv folds EQUIV(children) once every child is determined (all
// equal -> true, otherwise -> false), collapses duplicate children, and
// back-propagates to a single remaining undetermined child when the
// EQUIV gate itself has already been forced: forcing EQUIV true pins the
// last child to match the others; forcing a binary EQUIV false pins it
// to the opposite of the other child.
func simplifyEquiv(c *circuit.Circuit, g *circuit.Gate) {
	info := countChildren(c, g)

	if info.nofTrue > 0 && info.nofFalse > 0 {
		foldConstant(c, g, false)
		return
	}

	if info.nofUndet == 0 {
		foldConstant(c, g, true)
		return
	}

	if removeDuplicateChildren(c, g) {
		return
	}

	if !g.Determined {
		return
	}

	if info.nofUndet != 1 {
		return
	}

	undetIdx := g.Children[info.firstUndet]

	if g.Value {
		// No disagreement reached this point, so the determined children
		// (if any) all share one value; a lone child with none yet
		// determined is free to pick either, so default it to true.
		c.Determine(undetIdx, info.nofFalse == 0)
	} else if len(g.Children) == 2 {
		other := g.Children[1-info.firstUndet]
		og := c.Gate(other)
		if og.Determined {
			c.Determine(undetIdx, !og.Value)
		}
	}
}

// simplifyOdd folds ODD(children) once every child is determined, removes
// parity-cancelling duplicate pairs, and back-propagates to a single
// remaining undetermined child when the gate itself is already forced.
func simplifyOdd(c *circuit.Circuit, g *circuit.Gate) {
	simplifyParity(c, g, true)
}

// simplifyEven is the EVEN counterpart of simplifyOdd.
func simplifyEven(c *circuit.Circuit, g *circuit.Gate) {
	simplifyParity(c, g, false)
}

func simplifyParity(c *circuit.Circuit, g *circuit.Gate, wantOdd bool) {
	info := countChildren(c, g)

	if info.nofUndet == 0 {
		foldConstant(c, g, (info.nofTrue%2 == 1) == wantOdd)
		return
	}

	if absorbDeterminedParityChildren(c, g) {
		return
	}

	if absorbNotParityChildren(c, g) {
		return
	}

	if removeParityDuplicates(c, g) {
		return
	}

	if len(g.Children) == 1 {
		if g.Type == circuit.Odd {
			c.Redirect(g.Index, g.Children[0])
		} else {
			notGate := c.Install(circuit.Not, []int{g.Children[0]})
			c.Redirect(g.Index, notGate.Index)
			c.Push(notGate.Index)
		}

		return
	}

	if !g.Determined || info.nofUndet != 1 {
		return
	}

	// Desired parity of the true count among ALL children is
	// (wantOdd == g.Value). nofTrue of the determined children is fixed;
	// solve for whether the last undetermined child must be true.
	desiredOdd := wantOdd == g.Value
	needTrue := (info.nofTrue%2 == 1) != desiredOdd

	c.Determine(g.Children[info.firstUndet], needTrue)
}

// absorbDeterminedParityChildren drops every determined child from an
// ODD/EVEN gate's list, toggling the gate's own type once per absorbed
// true child: a determined true child contributes one to the parity
// count before it's removed, so the target parity of what remains has
// to flip to compensate (two determined trues cancel out). A determined
// false child contributes nothing and is simply dropped.
func absorbDeterminedParityChildren(c *circuit.Circuit, g *circuit.Gate) bool {
	kept := make([]int, 0, len(g.Children))
	toggle := false

	for _, ch := range g.Children {
		cg := c.Gate(ch)
		if cg.Determined {
			if cg.Value {
				toggle = !toggle
			}

			continue
		}

		kept = append(kept, ch)
	}

	if len(kept) == len(g.Children) {
		return false
	}

	if toggle {
		toggleParityType(g)
	}

	c.SetChildren(g.Index, kept)
	c.Push(g.Index)

	return true
}

// absorbNotParityChildren replaces every NOT(x) child with x directly,
// toggling the gate's own type once per child absorbed this way: XOR-ing
// against NOT(x) instead of x flips the result, so folding the negation
// into the gate's own type keeps the net parity the same.
func absorbNotParityChildren(c *circuit.Circuit, g *circuit.Gate) bool {
	kept := make([]int, 0, len(g.Children))
	toggle := false
	changed := false

	for _, ch := range g.Children {
		cg := c.Gate(ch)
		if cg.Type == circuit.Not {
			kept = append(kept, cg.Children[0])
			toggle = !toggle
			changed = true

			continue
		}

		kept = append(kept, ch)
	}

	if !changed {
		return false
	}

	if toggle {
		toggleParityType(g)
	}

	c.SetChildren(g.Index, kept)
	c.Push(g.Index)

	return true
}

func toggleParityType(g *circuit.Gate) {
	if g.Type == circuit.Odd {
		g.Type = circuit.Even
	} else {
		g.Type = circuit.Odd
	}
}
