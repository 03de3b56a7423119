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

package circuit

import "fmt"

// Circuit owns the gate store (a stable-index slice of *Gate) and the
// propagation stack used by the simplifier and constraint-propagation
// passes. Mirrors the global-statics design of the original C++ gate
// array/pstack pair, but threaded as a value so multiple circuits can
// coexist within one process (e.g. unit tests).
type Circuit struct {
	gates []*Gate

	// pstack holds gate indices awaiting re-examination by whichever pass
	// currently owns propagation. Gates carry their own inPstack flag so
	// Push is idempotent.
	pstack []int

	// unsat is sticky: once a contradiction is detected (a gate forced to
	// conflicting values), it never clears. Callers should check it after
	// draining the propagation stack.
	unsat bool

	// nextIndex is the next fresh gate index to hand out. Indices are
	// never reused, even for Deleted gates, so stale references remain
	// detectable.
	nextIndex int

	// names indexes gates by attached name, for name-based lookups from
	// the parser and from the CNF translation-table printer.
	names map[string]int

	// trueIdx, falseIdx cache the canonical constant gates so repeated
	// callers (normalization's cardinality expansion in particular) don't
	// litter the circuit with redundant TRUE/FALSE nodes.
	trueIdx, falseIdx int
}

// New returns an empty circuit.
func New() *Circuit {
	return &Circuit{
		names:    make(map[string]int),
		trueIdx:  -1,
		falseIdx: -1,
	}
}

// Const returns the index of the canonical constant gate for value,
// installing it on first use and determining it immediately.
func (c *Circuit) Const(value bool) int {
	if value {
		if c.trueIdx == -1 {
			g := c.Install(True, nil)
			c.trueIdx = g.Index
			c.Determine(g.Index, true)
		}

		return c.trueIdx
	}

	if c.falseIdx == -1 {
		g := c.Install(False, nil)
		c.falseIdx = g.Index
		c.Determine(g.Index, false)
	}

	return c.falseIdx
}

// NumGates returns the number of gate slots ever installed, including
// Deleted ones. Valid indices are [0, NumGates()).
func (c *Circuit) NumGates() int {
	return len(c.gates)
}

// Gate returns the gate at index i, or nil if i is out of range.
func (c *Circuit) Gate(i int) *Gate {
	if i < 0 || i >= len(c.gates) {
		return nil
	}

	return c.gates[i]
}

// Gates returns every installed gate slot, including Deleted ones, in
// index order. Callers must not mutate the returned slice's backing array
// by appending to it.
func (c *Circuit) Gates() []*Gate {
	return c.gates
}

// Unsat reports whether a contradiction has been detected so far.
func (c *Circuit) Unsat() bool {
	return c.unsat
}

// MarkUnsat records a contradiction. Idempotent.
func (c *Circuit) MarkUnsat() {
	c.unsat = true
}

// Install allocates a new gate of the given type with the given children,
// wires the corresponding parent edges, and returns it. The gate starts
// undetermined. Cardinality gates (Threshold, Atleast) get their bounds
// set separately via the returned gate's Tmin/Tmax fields.
func (c *Circuit) Install(t Type, children []int) *Gate {
	g := &Gate{
		Index:    c.nextIndex,
		Type:     t,
		Children: append([]int(nil), children...),
		Parents:  make(map[int]int),
	}
	c.nextIndex++
	c.gates = append(c.gates, g)

	for _, ch := range g.Children {
		if cg := c.Gate(ch); cg != nil {
			cg.Parents[g.Index]++
		}
	}

	return g
}

// Lookup returns the gate index registered under name, and whether one
// exists.
func (c *Circuit) Lookup(name string) (int, bool) {
	idx, ok := c.names[name]
	return idx, ok
}

// Bind attaches name to the gate at index idx, both as a Handle (so the
// translation-table printer can recover it) and in the name index (so the
// parser can resolve forward/backward references).
func (c *Circuit) Bind(name string, idx int) error {
	if existing, ok := c.names[name]; ok && existing != idx {
		return fmt.Errorf("circuit: name %q already bound to gate %d", name, existing)
	}

	g := c.Gate(idx)
	if g == nil {
		return fmt.Errorf("circuit: bind: gate index %d out of range", idx)
	}

	c.names[name] = idx
	g.AddHandle(Handle{Kind: NameHandleKind, Name: name})

	return nil
}

// AddChild appends a new child edge from parent to child, updating the
// child's parent-count map. Used by normalization passes that rebuild a
// gate's child list in place (e.g. cardinality expansion).
func (c *Circuit) AddChild(parent, child int) {
	pg := c.Gate(parent)
	cg := c.Gate(child)
	if pg == nil || cg == nil {
		return
	}

	pg.Children = append(pg.Children, child)
	cg.Parents[parent]++
}

// RemoveChildAt removes the child edge at position i in parent's child
// list, decrementing the child's parent count (and removing the map entry
// once it reaches zero). Preserves the order of the remaining children.
func (c *Circuit) RemoveChildAt(parent, i int) {
	pg := c.Gate(parent)
	if pg == nil || i < 0 || i >= len(pg.Children) {
		return
	}

	child := pg.Children[i]
	pg.Children = append(pg.Children[:i], pg.Children[i+1:]...)

	if cg := c.Gate(child); cg != nil {
		cg.Parents[parent]--
		if cg.Parents[parent] <= 0 {
			delete(cg.Parents, parent)
		}
	}
}

// SetChildren replaces parent's entire child list with newChildren,
// correctly rewiring parent-count edges for both the removed and the
// added children. Used by rewrite rules that replace a gate's operands
// wholesale (e.g. duplicate-child removal, constant folding).
func (c *Circuit) SetChildren(parent int, newChildren []int) {
	pg := c.Gate(parent)
	if pg == nil {
		return
	}

	for _, old := range pg.Children {
		if cg := c.Gate(old); cg != nil {
			cg.Parents[parent]--
			if cg.Parents[parent] <= 0 {
				delete(cg.Parents, parent)
			}
		}
	}

	pg.Children = append([]int(nil), newChildren...)

	for _, nc := range pg.Children {
		if cg := c.Gate(nc); cg != nil {
			cg.Parents[parent]++
		}
	}
}

// Delete marks g as Deleted and severs its outgoing child edges so it no
// longer contributes to its former children's parent counts. The gate's
// index, handles and incoming parent edges are left intact: callers are
// responsible for redirecting parents to a replacement gate beforehand
// (see Redirect).
func (c *Circuit) Delete(idx int) {
	g := c.Gate(idx)
	if g == nil || g.Type == Deleted {
		return
	}

	for _, ch := range g.Children {
		if cg := c.Gate(ch); cg != nil {
			cg.Parents[idx]--
			if cg.Parents[idx] <= 0 {
				delete(cg.Parents, idx)
			}
		}
	}

	g.Children = nil
	g.Type = Deleted
}

// Redirect rewires every parent edge (and every handle) pointing at
// oldIdx so it instead points at newIdx, then deletes the gate at oldIdx.
// This is the core "replace this subexpression by that one" primitive
// used throughout simplification and normalization.
func (c *Circuit) Redirect(oldIdx, newIdx int) {
	if oldIdx == newIdx {
		return
	}

	old := c.Gate(oldIdx)
	if old == nil {
		return
	}

	newGate := c.Gate(newIdx)

	if old.Determined && newGate != nil {
		c.Determine(newIdx, old.Value)
	}

	for parentIdx, count := range old.Parents {
		pg := c.Gate(parentIdx)
		if pg == nil {
			continue
		}

		for i, ch := range pg.Children {
			if ch == oldIdx {
				pg.Children[i] = newIdx
			}
		}

		if newGate != nil {
			newGate.Parents[parentIdx] += count
		}

		c.Push(parentIdx)
	}

	old.Parents = make(map[int]int)

	if newGate != nil && len(old.Handles) > 0 {
		newGate.Handles = append(newGate.Handles, old.Handles...)

		for name, idx := range c.names {
			if idx == oldIdx {
				c.names[name] = newIdx
			}
		}
	}

	c.Delete(oldIdx)
}
