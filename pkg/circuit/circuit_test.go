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

import "testing"

func Test_Install_WiresParents(t *testing.T) {
	c := New()
	a := c.Install(Var, nil)
	b := c.Install(Var, nil)
	or := c.Install(Or, []int{a.Index, b.Index})

	if a.Parents[or.Index] != 1 {
		t.Fatalf("expected a to have 1 parent edge to or, got %d", a.Parents[or.Index])
	}

	if or.NumChildren() != 2 {
		t.Fatalf("expected 2 children, got %d", or.NumChildren())
	}
}

func Test_Bind_And_Lookup(t *testing.T) {
	c := New()
	a := c.Install(Var, nil)

	if err := c.Bind("x", a.Index); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx, ok := c.Lookup("x")
	if !ok || idx != a.Index {
		t.Fatalf("expected lookup to find gate %d, got %d, %v", a.Index, idx, ok)
	}

	if err := c.Bind("x", a.Index); err != nil {
		t.Fatalf("rebinding the same name to the same gate should be a no-op: %v", err)
	}

	b := c.Install(Var, nil)
	if err := c.Bind("x", b.Index); err == nil {
		t.Fatalf("expected error rebinding %q to a different gate", "x")
	}
}

func Test_Determine_ConflictMarksUnsat(t *testing.T) {
	c := New()
	a := c.Install(Var, nil)

	if !c.Determine(a.Index, true) {
		t.Fatalf("first determination should succeed")
	}

	if c.Determine(a.Index, false) {
		t.Fatalf("conflicting determination should fail")
	}

	if !c.Unsat() {
		t.Fatalf("expected circuit to be marked unsat")
	}
}

func Test_Determine_PushesParents(t *testing.T) {
	c := New()
	a := c.Install(Var, nil)
	b := c.Install(Var, nil)
	or := c.Install(Or, []int{a.Index, b.Index})
	_ = or

	c.Determine(a.Index, true)

	idx, ok := c.Pop()
	if !ok || idx != or.Index {
		t.Fatalf("expected or gate %d to be pushed, got %d, %v", or.Index, idx, ok)
	}
}

func Test_Redirect_RewiresParentsAndHandles(t *testing.T) {
	c := New()
	a := c.Install(Var, nil)
	b := c.Install(Var, nil)
	not1 := c.Install(Not, []int{a.Index})
	or := c.Install(Or, []int{not1.Index, b.Index})

	if err := c.Bind("n", not1.Index); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	not2 := c.Install(Not, []int{a.Index})
	c.Redirect(not1.Index, not2.Index)

	if or.Children[0] != not2.Index {
		t.Fatalf("expected or's first child to be redirected to %d, got %d", not2.Index, or.Children[0])
	}

	idx, ok := c.Lookup("n")
	if !ok || idx != not2.Index {
		t.Fatalf("expected name n to follow the redirect, got %d, %v", idx, ok)
	}

	if not1.Type != Deleted {
		t.Fatalf("expected old gate to be marked deleted")
	}
}

func Test_RemoveChildAt(t *testing.T) {
	c := New()
	a := c.Install(Var, nil)
	b := c.Install(Var, nil)
	and := c.Install(And, []int{a.Index, b.Index, a.Index})

	c.RemoveChildAt(and.Index, 2)

	if and.NumChildren() != 2 {
		t.Fatalf("expected 2 children after removal, got %d", and.NumChildren())
	}

	if a.Parents[and.Index] != 1 {
		t.Fatalf("expected a's parent count on and to drop to 1, got %d", a.Parents[and.Index])
	}
}

func Test_Walk_PostOrder(t *testing.T) {
	c := New()
	a := c.Install(Var, nil)
	b := c.Install(Var, nil)
	and := c.Install(And, []int{a.Index, b.Index})
	or := c.Install(Or, []int{and.Index, a.Index})

	var order []int
	c.Walk([]int{or.Index}, func(g *Gate) {
		order = append(order, g.Index)
	})

	pos := make(map[int]int, len(order))
	for i, idx := range order {
		pos[idx] = i
	}

	if pos[and.Index] >= pos[or.Index] {
		t.Fatalf("expected and to be visited before or")
	}

	if pos[a.Index] >= pos[and.Index] {
		t.Fatalf("expected a to be visited before and")
	}
}

func Test_DependsOn(t *testing.T) {
	c := New()
	a := c.Install(Var, nil)
	b := c.Install(Var, nil)
	and := c.Install(And, []int{a.Index})

	if !c.DependsOn([]int{and.Index}, a.Index) {
		t.Fatalf("expected and to depend on a")
	}

	if c.DependsOn([]int{and.Index}, b.Index) {
		t.Fatalf("expected and to not depend on b")
	}
}

func Test_RemoveUnderscoreNames(t *testing.T) {
	c := New()
	a := c.Install(Var, nil)

	if err := c.Bind("_aux", a.Index); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	if err := c.Bind("kept", a.Index); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	c.RemoveUnderscoreNames()

	if _, ok := c.Lookup("_aux"); ok {
		t.Fatalf("expected underscore name to be removed")
	}

	if _, ok := c.Lookup("kept"); !ok {
		t.Fatalf("expected non-underscore name to survive")
	}

	if len(a.Names()) != 1 || a.Names()[0] != "kept" {
		t.Fatalf("expected gate to retain only the kept name, got %v", a.Names())
	}
}

func Test_Roots(t *testing.T) {
	c := New()
	a := c.Install(Var, nil)
	b := c.Install(Var, nil)
	and := c.Install(And, []int{a.Index, b.Index})

	if err := c.Bind("out", and.Index); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	roots := c.Roots()
	if len(roots) != 1 || roots[0] != and.Index {
		t.Fatalf("expected sole root %d, got %v", and.Index, roots)
	}
}
