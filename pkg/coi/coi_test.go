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
	"testing"

	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
)

func Test_IsJustified_NotFollowsChild(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	n := c.Install(circuit.Not, []int{a.Index})

	c.Determine(a.Index, true)
	c.Determine(n.Index, false)

	if !IsJustified(c, n) {
		t.Fatalf("expected NOT gate to be justified once its child is determined")
	}
}

func Test_IsJustified_OrUnjustifiedWhenNoTrueChild(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)
	or := c.Install(circuit.Or, []int{a.Index, b.Index})

	c.Determine(a.Index, false)
	c.Determine(or.Index, true)

	if IsJustified(c, or) {
		t.Fatalf("expected OR(x,y)=true to be unjustified while only one child is determined false")
	}
}

func Test_Number_ElidesNotGatesWhenNotless(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	n := c.Install(circuit.Not, []int{a.Index})
	or := c.Install(circuit.Or, []int{n.Index, a.Index})

	order := Select(c, []int{or.Index})
	num := Number(c, order, true, true)

	if num.Var(n.Index) != 0 {
		t.Fatalf("expected NOT gate to have no variable under notless numbering")
	}

	if num.Literal(c, n.Index) != -num.Var(a.Index) {
		t.Fatalf("expected NOT gate's literal to be the negation of its operand's variable")
	}
}

func Test_Number_SkipsJustifiedDeterminedGates(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)
	and := c.Install(circuit.And, []int{a.Index, b.Index})

	c.Determine(a.Index, false)
	c.Determine(and.Index, false)

	order := Select(c, []int{and.Index})
	num := Number(c, order, true, false)

	if num.Var(and.Index) != 0 {
		t.Fatalf("expected justified determined AND gate to be elided from numbering")
	}
}

func Test_Permute_IsABijection(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)
	and := c.Install(circuit.And, []int{a.Index, b.Index})

	order := Select(c, []int{and.Index})
	num := Number(c, order, false, false)
	permuted := num.Permute(42)

	seen := make(map[int]bool)
	for _, idx := range order {
		v := permuted.Var(idx)
		if v == 0 {
			continue
		}

		if seen[v] {
			t.Fatalf("permutation assigned variable %d twice", v)
		}

		seen[v] = true
	}

	if len(seen) != num.NumVars {
		t.Fatalf("expected %d distinct permuted variables, got %d", num.NumVars, len(seen))
	}
}
