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

package normalize

import (
	"testing"

	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
)

func noRemainingOfType(c *circuit.Circuit, roots []int, t circuit.Type) bool {
	ok := true

	c.Walk(roots, func(g *circuit.Gate) {
		if g.Type == t {
			ok = false
		}
	})

	return ok
}

func Test_Pass_EliminatesRef(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	ref := c.Install(circuit.Ref, []int{a.Index})
	and := c.Install(circuit.And, []int{ref.Index, a.Index})

	Pass(c, []int{and.Index})

	if !noRemainingOfType(c, []int{and.Index}, circuit.Ref) {
		t.Fatalf("expected no REF gates after normalize")
	}
}

func Test_Pass_EliminatesAtleastAndThreshold(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)
	d := c.Install(circuit.Var, nil)

	al := c.Install(circuit.Atleast, []int{a.Index, b.Index, d.Index})
	al.Tmin = 2

	th := c.Install(circuit.Threshold, []int{a.Index, b.Index, d.Index})
	th.Tmin, th.Tmax = 1, 2

	top := c.Install(circuit.And, []int{al.Index, th.Index})

	Pass(c, []int{top.Index})

	if !noRemainingOfType(c, []int{top.Index}, circuit.Atleast) {
		t.Fatalf("expected no ATLEAST gates after normalize")
	}

	if !noRemainingOfType(c, []int{top.Index}, circuit.Threshold) {
		t.Fatalf("expected no THRESHOLD gates after normalize")
	}
}

func Test_Pass_DecomposesNaryEquiv(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)
	d := c.Install(circuit.Var, nil)

	eq := c.Install(circuit.Equiv, []int{a.Index, b.Index, d.Index})

	Pass(c, []int{eq.Index})

	if eq.Type != circuit.Deleted {
		t.Fatalf("expected n-ary equiv to be redirected away")
	}
}

func Test_Pass_DecomposesNaryParity(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)
	d := c.Install(circuit.Var, nil)

	odd := c.Install(circuit.Odd, []int{a.Index, b.Index, d.Index})

	Pass(c, []int{odd.Index})

	if odd.Type != circuit.Deleted {
		t.Fatalf("expected n-ary odd to be redirected away")
	}
}

func Test_Pass_NaryEquivBecomesOrOfAndsOfLiteralsAndNegations(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)
	d := c.Install(circuit.Var, nil)

	eq := c.Install(circuit.Equiv, []int{a.Index, b.Index, d.Index})
	eq.AddHandle(circuit.Handle{Kind: circuit.RootHandleKind})

	Pass(c, []int{eq.Index})

	roots := c.Roots()
	if len(roots) != 1 {
		t.Fatalf("expected exactly one surviving root, got %v", roots)
	}

	or := c.Gate(roots[0])
	if or.Type != circuit.Or || len(or.Children) != 2 {
		t.Fatalf("expected EQUIV(a,b,d) to become OR(AND,AND), got %s%v", or.Type, or.Children)
	}

	allTrue := c.Gate(or.Children[0])
	allFalse := c.Gate(or.Children[1])

	if allTrue.Type != circuit.And || len(allTrue.Children) != 3 {
		t.Fatalf("expected first OR child to be a 3-ary AND of the literals, got %s%v", allTrue.Type, allTrue.Children)
	}

	if allFalse.Type != circuit.And || len(allFalse.Children) != 3 {
		t.Fatalf("expected second OR child to be a 3-ary AND of the negations, got %s%v", allFalse.Type, allFalse.Children)
	}

	for _, ch := range allFalse.Children {
		if c.Gate(ch).Type != circuit.Not {
			t.Fatalf("expected every child of the second AND to be a NOT, got %s", c.Gate(ch).Type)
		}
	}
}

func Test_Pass_NaryOddBecomesRightFoldedBinaryChain(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)
	d := c.Install(circuit.Var, nil)
	e := c.Install(circuit.Var, nil)

	odd := c.Install(circuit.Odd, []int{a.Index, b.Index, d.Index, e.Index})
	odd.AddHandle(circuit.Handle{Kind: circuit.RootHandleKind})

	Pass(c, []int{odd.Index})

	roots := c.Roots()
	if len(roots) != 1 {
		t.Fatalf("expected exactly one surviving root, got %v", roots)
	}

	// ODD(a,b,d,e) should become ODD(a, ODD(b, ODD(d,e))).
	top := c.Gate(roots[0])
	if top.Type != circuit.Odd || len(top.Children) != 2 || top.Children[0] != a.Index {
		t.Fatalf("expected top-level ODD(a, ...), got %s%v", top.Type, top.Children)
	}

	mid := c.Gate(top.Children[1])
	if mid.Type != circuit.Odd || len(mid.Children) != 2 || mid.Children[0] != b.Index {
		t.Fatalf("expected middle ODD(b, ...), got %s%v", mid.Type, mid.Children)
	}

	inner := c.Gate(mid.Children[1])
	if inner.Type != circuit.Odd || len(inner.Children) != 2 || inner.Children[0] != d.Index || inner.Children[1] != e.Index {
		t.Fatalf("expected innermost ODD(d,e), got %s%v", inner.Type, inner.Children)
	}
}

func Test_AtLeastK_TrivialBounds(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)

	zero := atLeastK(c, []int{a.Index, b.Index}, 0)
	if c.Gate(zero).Value != true || !c.Gate(zero).Determined {
		t.Fatalf("expected atLeastK(0) to be the true constant")
	}

	tooMany := atLeastK(c, []int{a.Index, b.Index}, 3)
	if c.Gate(tooMany).Value != false || !c.Gate(tooMany).Determined {
		t.Fatalf("expected atLeastK(3) over 2 children to be the false constant")
	}
}
