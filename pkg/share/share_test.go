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

import (
	"testing"

	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
)

func Test_StructuralHash_Deterministic(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := circuit.New().Install(circuit.Var, nil)
	_ = b

	g1 := c.Install(circuit.And, []int{a.Index, a.Index})
	if StructuralHash(g1) != StructuralHash(g1) {
		t.Fatalf("hash must be deterministic")
	}
}

func Test_Pass_MergesDuplicateAnd(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)

	and1 := c.Install(circuit.And, []int{a.Index, b.Index})
	and2 := c.Install(circuit.And, []int{b.Index, a.Index})
	or := c.Install(circuit.Or, []int{and1.Index, and2.Index})

	merged := Pass(c, []int{or.Index})
	if merged != 1 {
		t.Fatalf("expected exactly 1 merge, got %d", merged)
	}

	if or.Children[0] != or.Children[1] {
		t.Fatalf("expected both or children to point at the same shared and gate, got %v", or.Children)
	}
}

func Test_Pass_DoesNotMergeDistinctGates(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)

	and1 := c.Install(circuit.And, []int{a.Index, b.Index})
	or1 := c.Install(circuit.Or, []int{a.Index, b.Index})
	top := c.Install(circuit.And, []int{and1.Index, or1.Index})

	merged := Pass(c, []int{top.Index})
	if merged != 0 {
		t.Fatalf("expected no merges between an AND and an OR of the same children, got %d", merged)
	}
}

func Test_Equal_DifferentCardinalityBounds(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)

	g1 := c.Install(circuit.Threshold, []int{a.Index, b.Index})
	g1.Tmin, g1.Tmax = 1, 1

	g2 := c.Install(circuit.Threshold, []int{a.Index, b.Index})
	g2.Tmin, g2.Tmax = 1, 2

	if Equal(g1, g2) {
		t.Fatalf("gates with different cardinality bounds must not be structurally equal")
	}
}
