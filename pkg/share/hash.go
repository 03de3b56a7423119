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

// Package share implements structural hash-consing over a circuit: after
// simplification, syntactically distinct but semantically identical gates
// (e.g. two separately-built AND(a,b) subexpressions) are merged into one,
// shrinking the circuit before normalization and CNF translation.
package share

import "github.com/tjunttila-labs/bc2cnf/pkg/circuit"

// buzTable is a 256-entry table of random-looking 64-bit words, one per
// possible byte value, combined via rotate-and-xor as each input byte is
// folded in. This is the BUZhash construction: cheap, order-sensitive,
// and good enough for a hash-consing key where collisions only cost a
// bucket scan rather than correctness (every candidate is still compared
// structurally before being merged).
var buzTable = func() [256]uint64 {
	var t [256]uint64
	// A linear congruential generator seeds the table deterministically
	// so hash-consing behaves identically across runs, which matters for
	// reproducing a prior CNF's variable numbering.
	var state uint64 = 0x9E3779B97F4A7C15

	for i := range t {
		state = state*6364136223846793005 + 1442695040888963407
		t[i] = state
	}

	return t
}()

func buzRotl(v uint64, n uint) uint64 {
	return (v << n) | (v >> (64 - n))
}

// buzFold mixes one byte into a running hash.
func buzFold(h uint64, b byte) uint64 {
	return buzRotl(h, 1) ^ buzTable[b]
}

func foldUint64(h uint64, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		h = buzFold(h, byte(v>>(8*i)))
	}

	return h
}

// StructuralHash computes a hash over a gate's type, cardinality bounds,
// and children, in the gate's current child order. Callers must sort the
// children of a commutative gate into canonical order before calling this
// (see CanonicalChildren) so that semantically-equal commutative gates
// hash identically.
func StructuralHash(g *circuit.Gate) uint64 {
	h := uint64(1469598103934665603) // FNV-offset-like arbitrary start

	h = buzFold(h, byte(g.Type))
	h = foldUint64(h, uint64(g.Tmin))
	h = foldUint64(h, uint64(g.Tmax))

	for _, ch := range g.Children {
		h = foldUint64(h, uint64(ch))
	}

	return h
}

// CanonicalChildren returns a copy of g's children sorted into a stable
// order when g's type is commutative, or the children unchanged
// otherwise. The sort key is simply the child index, which is enough to
// make two commutative gates with the same multiset of children compare
// equal regardless of construction order.
func CanonicalChildren(g *circuit.Gate) []int {
	children := append([]int(nil), g.Children...)

	if !g.IsCommutative() {
		return children
	}

	insertionSort(children)

	return children
}

func insertionSort(a []int) {
	for i := 1; i < len(a); i++ {
		v := a[i]
		j := i - 1

		for j >= 0 && a[j] > v {
			a[j+1] = a[j]
			j--
		}

		a[j+1] = v
	}
}

// Equal reports whether two gates compute the same function: same type,
// same cardinality bounds, and the same children up to the canonical
// order defined by CanonicalChildren.
func Equal(a, b *circuit.Gate) bool {
	if a.Type != b.Type || a.Tmin != b.Tmin || a.Tmax != b.Tmax {
		return false
	}

	ca, cb := CanonicalChildren(a), CanonicalChildren(b)
	if len(ca) != len(cb) {
		return false
	}

	for i := range ca {
		if ca[i] != cb[i] {
			return false
		}
	}

	return true
}
