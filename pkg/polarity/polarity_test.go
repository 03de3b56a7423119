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

package polarity

import (
	"testing"

	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
	"github.com/tjunttila-labs/bc2cnf/pkg/coi"
)

func Test_Analyze_AssertedRootOnlyNeedsPositive(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	n := c.Install(circuit.Not, []int{a.Index})
	n.AddHandle(circuit.Handle{Kind: circuit.RootHandleKind})

	order := coi.Select(c, []int{n.Index})
	info := Analyze(c, order, []int{n.Index})

	if !info.Pos(n.Index) || info.Neg(n.Index) {
		t.Fatalf("expected asserted root to require only the positive half")
	}

	// NOT flips: requiring only g's positive half requires only the
	// child's negative half.
	if info.Pos(a.Index) || !info.Neg(a.Index) {
		t.Fatalf("expected NOT to flip polarity onto its child, got pos=%v neg=%v", info.Pos(a.Index), info.Neg(a.Index))
	}
}

func Test_Analyze_UnassertedNamedHandleNeedsBoth(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)
	or := c.Install(circuit.Or, []int{a.Index, b.Index})

	if err := c.Bind("out", or.Index); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	order := coi.Select(c, []int{or.Index})
	info := Analyze(c, order, []int{or.Index})

	if !info.Both(or.Index) {
		t.Fatalf("expected unasserted named handle to require both polarities")
	}

	if !info.Both(a.Index) || !info.Both(b.Index) {
		t.Fatalf("expected OR to propagate both polarities to its children")
	}
}
