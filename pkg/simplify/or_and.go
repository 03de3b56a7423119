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

// simplifyOr folds OR(...) to true as soon as one child is true, to
// false once every child is false, removes duplicate and already-false
// children, redirects a single-child OR to its child, and detects a
// complementary pair of children x and NOT(x), which forces the gate
// true. A forced-false OR also pushes
// false onto every child, since the only way a disjunction can be false
// is for all of its disjuncts to be false; a conflicting push marks the
// circuit unsat.
func simplifyOr(c *circuit.Circuit, g *circuit.Gate) {
	if g.Determined && !g.Value {
		for _, ch := range g.Children {
			c.Determine(ch, false)
		}
	}

	info := countChildren(c, g)

	if info.nofTrue > 0 {
		foldConstant(c, g, true)
		return
	}

	if info.nofUndet == 0 {
		foldConstant(c, g, false)
		return
	}

	if removeFalseChildren(c, g) {
		return
	}

	if removeDuplicateChildren(c, g) {
		return
	}

	if len(g.Children) == 1 {
		c.Redirect(g.Index, g.Children[0])
		return
	}

	if complementaryPairPresent(c, g) {
		foldConstant(c, g, true)
		return
	}

	if flattenSameTypeChild(c, g) {
		return
	}

	if pg, ok := subsetSharingCandidate(c, g); ok {
		applySubsetSharing(c, g, pg)
	}
}

// simplifyAnd is the dual of simplifyOr: a forced-true AND pushes true
// onto every child, since the only way a conjunction can be true is for
// all of its conjuncts to be true.
func simplifyAnd(c *circuit.Circuit, g *circuit.Gate) {
	if g.Determined && g.Value {
		for _, ch := range g.Children {
			c.Determine(ch, true)
		}
	}

	info := countChildren(c, g)

	if info.nofFalse > 0 {
		foldConstant(c, g, false)
		return
	}

	if info.nofUndet == 0 {
		foldConstant(c, g, true)
		return
	}

	if removeTrueChildren(c, g) {
		return
	}

	if removeDuplicateChildren(c, g) {
		return
	}

	if len(g.Children) == 1 {
		c.Redirect(g.Index, g.Children[0])
		return
	}

	if complementaryPairPresent(c, g) {
		foldConstant(c, g, false)
		return
	}

	if flattenSameTypeChild(c, g) {
		return
	}

	if pg, ok := subsetSharingCandidate(c, g); ok {
		applySubsetSharing(c, g, pg)
	}
}

// removeFalseChildren drops every child already determined to false from
// an OR (false children contribute nothing to a disjunction).
func removeFalseChildren(c *circuit.Circuit, g *circuit.Gate) bool {
	changed := false
	kept := make([]int, 0, len(g.Children))

	for _, ch := range g.Children {
		cg := c.Gate(ch)
		if cg.Determined && !cg.Value {
			changed = true
			continue
		}

		kept = append(kept, ch)
	}

	if changed {
		c.SetChildren(g.Index, kept)
	}

	return changed
}

// removeTrueChildren is the AND dual of removeFalseChildren.
func removeTrueChildren(c *circuit.Circuit, g *circuit.Gate) bool {
	changed := false
	kept := make([]int, 0, len(g.Children))

	for _, ch := range g.Children {
		cg := c.Gate(ch)
		if cg.Determined && cg.Value {
			changed = true
			continue
		}

		kept = append(kept, ch)
	}

	if changed {
		c.SetChildren(g.Index, kept)
	}

	return changed
}

// complementaryPairPresent reports whether some child x and some other
// child NOT(x) both appear among g's children — the
// remove_g_not_g_and_duplicate_children shape from the original rewriter.
func complementaryPairPresent(c *circuit.Circuit, g *circuit.Gate) bool {
	present := make(map[int]bool, len(g.Children))
	for _, ch := range g.Children {
		present[ch] = true
	}

	for _, ch := range g.Children {
		cg := c.Gate(ch)
		if cg.Type == circuit.Not && present[cg.Children[0]] {
			return true
		}
	}

	return false
}

// flattenSameTypeChild inlines a child of the same type as g when g is
// that child's only parent and the child has no external handle of its
// own: OR(x, OR(y,z)) becomes OR(x,y,z) rather than paying for the extra
// level of indirection, and the now-parentless OR(y,z)
// gate is swept by the next dead-gate check. A handle-bearing child is
// left alone even with a single parent, since collapsing it would erase
// a gate an external name or root still addresses.
func flattenSameTypeChild(c *circuit.Circuit, g *circuit.Gate) bool {
	for _, ch := range g.Children {
		cg := c.Gate(ch)
		if cg.Type != g.Type {
			continue
		}

		if cg.HasHandles() {
			continue
		}

		if len(cg.Parents) != 1 {
			continue
		}

		if count, ok := cg.Parents[g.Index]; !ok || count == 0 {
			continue
		}

		merged := make([]int, 0, len(g.Children)-1+len(cg.Children))

		for _, sibling := range g.Children {
			if sibling != ch {
				merged = append(merged, sibling)
			}
		}

		merged = append(merged, cg.Children...)

		c.SetChildren(g.Index, merged)
		c.Push(g.Index)
		c.Push(ch)

		return true
	}

	return false
}

// subsetSharingCandidate looks for another gate of g's own type whose
// children form a proper, strictly smaller subset of g's children and
// that is itself shared (held by an external handle or by a parent other
// than g). Searching through each child's parent set
// covers every candidate without needing a type-and-children index.
func subsetSharingCandidate(c *circuit.Circuit, g *circuit.Gate) (*circuit.Gate, bool) {
	childSet := make(map[int]bool, len(g.Children))
	for _, ch := range g.Children {
		childSet[ch] = true
	}

	tried := make(map[int]bool)

	for _, ch := range g.Children {
		cg := c.Gate(ch)

		for parentIdx := range cg.Parents {
			if parentIdx == g.Index || tried[parentIdx] {
				continue
			}

			tried[parentIdx] = true

			pg := c.Gate(parentIdx)
			if pg == nil || pg.Type != g.Type {
				continue
			}

			shared := pg.HasHandles()
			for p := range pg.Parents {
				if p != g.Index {
					shared = true
				}
			}

			if !shared {
				continue
			}

			if len(pg.Children) <= 1 || len(pg.Children) >= len(g.Children) {
				continue
			}

			if isChildSubset(pg.Children, childSet) {
				return pg, true
			}
		}
	}

	return nil, false
}

func isChildSubset(children []int, set map[int]bool) bool {
	for _, ch := range children {
		if !set[ch] {
			return false
		}
	}

	return true
}

// applySubsetSharing replaces every one of g's children that pg also
// has with a single reference to pg itself.
func applySubsetSharing(c *circuit.Circuit, g, pg *circuit.Gate) {
	absorbed := make(map[int]bool, len(pg.Children))
	for _, ch := range pg.Children {
		absorbed[ch] = true
	}

	kept := make([]int, 0, len(g.Children)-len(pg.Children)+1)
	kept = append(kept, pg.Index)

	for _, ch := range g.Children {
		if !absorbed[ch] {
			kept = append(kept, ch)
		}
	}

	c.SetChildren(g.Index, kept)
	c.Push(g.Index)
}
