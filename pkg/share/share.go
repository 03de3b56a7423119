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

package share

import "github.com/tjunttila-labs/bc2cnf/pkg/circuit"

// table is a minimal hash-consing bucket map keyed by StructuralHash,
// holding every live candidate gate seen so far at a given hash. Kept
// purpose-built (rather than importing a generic hash.Map[K,V]) because
// the key here is "structural shape of a *circuit.Gate", a comparison
// that cannot be expressed through Go's built-in == and needs the
// domain-specific Equal above; a generic map keyed by a precomputed
// uint64 still needs exactly this bucket-collision handling underneath.
type table struct {
	buckets map[uint64][]*circuit.Gate
}

func newTable() *table {
	return &table{buckets: make(map[uint64][]*circuit.Gate)}
}

// find returns a previously-inserted gate structurally Equal to g, if
// any.
func (t *table) find(g *circuit.Gate) *circuit.Gate {
	for _, cand := range t.buckets[StructuralHash(g)] {
		if cand.Index != g.Index && Equal(cand, g) {
			return cand
		}
	}

	return nil
}

func (t *table) insert(g *circuit.Gate) {
	h := StructuralHash(g)
	t.buckets[h] = append(t.buckets[h], g)
}

// Pass performs one hash-consing sweep over c: every non-Deleted,
// non-Var, non-constant gate reachable from roots is visited in
// child-before-parent order, canonicalized (commutative gates get their
// children sorted), and looked up in the consing table. If a structural
// duplicate was already seen, the later gate is redirected onto the
// earlier one; otherwise it is inserted as the representative for its
// shape. Returns the number of gates merged away.
//
// Pass assumes the circuit has already been through at least one
// simplification round: sharing before simplification would just waste
// table slots on gates that are about to be folded into constants
// anyway.
func Pass(c *circuit.Circuit, roots []int) int {
	t := newTable()
	merged := 0

	// A first pass canonicalizes every commutative gate's child order in
	// place, since Redirect below mutates child lists of parents visited
	// later in the walk and we want every occurrence of a given shape,
	// old or newly-rewritten, to canonicalize identically.
	c.Walk(roots, func(g *circuit.Gate) {
		if !g.IsCommutative() {
			return
		}

		c.SetChildren(g.Index, CanonicalChildren(g))
	})

	c.Walk(roots, func(g *circuit.Gate) {
		switch g.Type {
		case circuit.False, circuit.True, circuit.Var, circuit.Deleted:
			return
		}

		if dup := t.find(g); dup != nil {
			c.Redirect(g.Index, dup.Index)
			merged++

			return
		}

		t.insert(g)
	})

	return merged
}
