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

// Package simplify implements the fixed-point local rewriter: a
// propagation-stack-driven pass that repeatedly applies per-gate-type
// rewrite rules (constant folding, duplicate-child removal, constant
// propagation through parents) until no gate has anything left to do.
package simplify

import "github.com/tjunttila-labs/bc2cnf/pkg/circuit"

// childInfo summarizes the determined/undetermined state of a gate's
// children, the quantity every per-type rule in gate.cc's
// count_child_info conditions on.
type childInfo struct {
	nofTrue, nofFalse, nofUndet int
	firstUndet                  int // index into Children, or -1
}

func countChildren(c *circuit.Circuit, g *circuit.Gate) childInfo {
	info := childInfo{firstUndet: -1}

	for i, ch := range g.Children {
		cg := c.Gate(ch)
		if cg == nil {
			continue
		}

		if !cg.Determined {
			info.nofUndet++
			if info.firstUndet == -1 {
				info.firstUndet = i
			}

			continue
		}

		if cg.Value {
			info.nofTrue++
		} else {
			info.nofFalse++
		}
	}

	return info
}

// Run drains the circuit's propagation stack, applying the rule for each
// popped gate's type, until the stack is empty or the circuit is marked
// unsat. Callers should Push every root (and every gate with an external
// handle) before calling Run for the first time; subsequent rewrite rules
// push affected parents via Circuit.Determine/Redirect, and some rules
// re-push the rewritten gate itself with Circuit.Push.
func Run(c *circuit.Circuit) {
	for {
		if c.Unsat() {
			return
		}

		idx, ok := c.Pop()
		if !ok {
			return
		}

		g := c.Gate(idx)
		if g == nil || g.Type == circuit.Deleted {
			continue
		}

		simplifyGate(c, g)
	}
}

// PushAll schedules every non-Deleted gate reachable from roots for
// examination, seeding a first Run.
func PushAll(c *circuit.Circuit, roots []int) {
	c.Walk(roots, func(g *circuit.Gate) {
		c.Push(g.Index)
	})
}

func simplifyGate(c *circuit.Circuit, g *circuit.Gate) {
	if isDeadGate(g) {
		removeDeadGate(c, g)
		return
	}

	switch g.Type {
	case circuit.False, circuit.True, circuit.Var, circuit.Deleted:
		return
	case circuit.Ref:
		simplifyRef(c, g)
	case circuit.Not:
		simplifyNot(c, g)
	case circuit.Or:
		simplifyOr(c, g)
	case circuit.And:
		simplifyAnd(c, g)
	case circuit.Equiv:
		simplifyEquiv(c, g)
	case circuit.Odd:
		simplifyOdd(c, g)
	case circuit.Even:
		simplifyEven(c, g)
	case circuit.Ite:
		simplifyIte(c, g)
	case circuit.Threshold:
		simplifyThreshold(c, g)
	case circuit.Atleast:
		simplifyAtleast(c, g)
	}
}

// foldConstant determines g's value and pushes parents; callers use it
// once a rule has fully resolved a gate.
func foldConstant(c *circuit.Circuit, g *circuit.Gate, value bool) {
	c.Determine(g.Index, value)
}

// isDeadGate reports whether g is an undetermined gate with nothing left
// referencing it: no parent gate, no external handle. Such a gate can
// never contribute to CNF translation and is pure bookkeeping overhead.
func isDeadGate(g *circuit.Gate) bool {
	return !g.HasParents() && !g.HasHandles() && !g.Determined
}

// removeDeadGate deletes g and re-schedules its former children, since
// removing g's edges may have made one of them dead in turn.
func removeDeadGate(c *circuit.Circuit, g *circuit.Gate) {
	children := append([]int(nil), g.Children...)

	c.Delete(g.Index)

	for _, ch := range children {
		c.Push(ch)
	}
}

// removeDuplicateChildren drops repeated occurrences of the same child
// index from a commutative gate's child list, keeping the first
// occurrence. Valid for Or/And/Equiv (duplicates are idempotent for all
// of these) but NOT for Odd/Even, whose callers must use
// removeParityDuplicates instead, nor for Threshold/Atleast, which count
// every occurrence.
func removeDuplicateChildren(c *circuit.Circuit, g *circuit.Gate) bool {
	seen := make(map[int]bool, len(g.Children))
	kept := make([]int, 0, len(g.Children))
	changed := false

	for _, ch := range g.Children {
		if seen[ch] {
			changed = true
			continue
		}

		seen[ch] = true
		kept = append(kept, ch)
	}

	if changed {
		c.SetChildren(g.Index, kept)
	}

	return changed
}

// removeParityDuplicates drops pairs of equal children from an ODD/EVEN
// gate's list, since x XOR x == FALSE: a repeated child can be cancelled
// two at a time without changing the parity of the remaining children.
func removeParityDuplicates(c *circuit.Circuit, g *circuit.Gate) bool {
	counts := make(map[int]int, len(g.Children))
	for _, ch := range g.Children {
		counts[ch]++
	}

	changed := false
	kept := make([]int, 0, len(g.Children))
	seen := make(map[int]bool, len(g.Children))

	for _, ch := range g.Children {
		if seen[ch] {
			continue
		}

		seen[ch] = true

		if counts[ch]%2 == 1 {
			kept = append(kept, ch)
		} else {
			changed = true
		}
	}

	if changed {
		c.SetChildren(g.Index, kept)
	}

	return changed
}
