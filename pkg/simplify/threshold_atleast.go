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

// simplifyThreshold folds THRESHOLD[Tmin,Tmax](children) true once every
// completion of the undetermined children keeps the true-count inside
// [Tmin,Tmax], and false once no completion can land it there. It also
// cancels complementary child pairs (x and NOT(x)): exactly one of the
// two is always true, so the pair can be dropped while the bounds shrink
// by one to account for that guaranteed contribution.
func simplifyThreshold(c *circuit.Circuit, g *circuit.Gate) {
	info := countChildren(c, g)
	maxTrue := info.nofTrue + info.nofUndet

	if uint(info.nofTrue) >= g.Tmin && uint(maxTrue) <= g.Tmax {
		foldConstant(c, g, true)
		return
	}

	if uint(info.nofTrue) > g.Tmax || uint(maxTrue) < g.Tmin {
		foldConstant(c, g, false)
		return
	}

	if removeFalseChildren(c, g) {
		return
	}

	if removeDeterminedTrueChildren(c, g) {
		return
	}

	cancelComplementaryPair(c, g)
}

// simplifyAtleast folds ATLEAST[Tmin](children) true once the
// already-true children alone reach Tmin, false once no completion can
// reach it, and otherwise applies the same complementary-pair
// cancellation as simplifyThreshold.
func simplifyAtleast(c *circuit.Circuit, g *circuit.Gate) {
	info := countChildren(c, g)
	maxTrue := info.nofTrue + info.nofUndet

	if uint(info.nofTrue) >= g.Tmin {
		foldConstant(c, g, true)
		return
	}

	if uint(maxTrue) < g.Tmin {
		foldConstant(c, g, false)
		return
	}

	if removeFalseChildren(c, g) {
		return
	}

	if removeDeterminedTrueChildren(c, g) {
		return
	}

	cancelComplementaryPair(c, g)
}

// removeDeterminedTrueChildren drops every determined-true child from a
// THRESHOLD/ATLEAST gate, decrementing Tmin (and, for THRESHOLD, Tmax)
// once per child removed, clamped at zero: a guaranteed-true child
// already contributes one to the true count, so the bound the remaining
// children have to satisfy shrinks by exactly that one.
func removeDeterminedTrueChildren(c *circuit.Circuit, g *circuit.Gate) bool {
	changed := false
	kept := make([]int, 0, len(g.Children))

	for _, ch := range g.Children {
		cg := c.Gate(ch)
		if cg.Determined && cg.Value {
			changed = true

			if g.Tmin > 0 {
				g.Tmin--
			}

			if g.Type == circuit.Threshold && g.Tmax > 0 {
				g.Tmax--
			}

			continue
		}

		kept = append(kept, ch)
	}

	if changed {
		c.SetChildren(g.Index, kept)
	}

	return changed
}

// cancelComplementaryPair finds one child x with a sibling NOT(x) also
// present, removes both, and decrements Tmin and Tmax by one (clamped at
// zero) to reflect the pair's guaranteed single contribution to the true
// count. Applies to at most one pair per call; g is re-pushed so it is
// examined again, repeating the cancellation until no pair remains.
func cancelComplementaryPair(c *circuit.Circuit, g *circuit.Gate) bool {
	present := make(map[int]int, len(g.Children))
	for _, ch := range g.Children {
		present[ch] = ch
	}

	for i, ch := range g.Children {
		cg := c.Gate(ch)
		if cg.Type != circuit.Not {
			continue
		}

		if _, ok := present[cg.Children[0]]; !ok {
			continue
		}

		notOperand := cg.Children[0]

		var kept []int

		removedOperand := false

		for j, ch2 := range g.Children {
			if j == i {
				continue
			}

			if ch2 == notOperand && !removedOperand {
				removedOperand = true
				continue
			}

			kept = append(kept, ch2)
		}

		c.SetChildren(g.Index, kept)
		c.Push(g.Index)

		if g.Tmin > 0 {
			g.Tmin--
		}

		if g.Type == circuit.Threshold && g.Tmax > 0 {
			g.Tmax--
		}

		return true
	}

	return false
}
