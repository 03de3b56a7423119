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

package bcparse

import (
	"testing"

	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
)

func Test_Parse_SimpleAndOr(t *testing.T) {
	c := circuit.New()
	src := []byte(`
a := VAR()
b := VAR()
g := AND(a, b)
h := OR(g, ~a)
ASSIGN h
`)

	if err := Parse(c, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx, ok := c.Lookup("h")
	if !ok {
		t.Fatalf("expected h to be bound")
	}

	g := c.Gate(idx)
	if g.Type != circuit.Or {
		t.Fatalf("expected h to be an OR gate, got %s", g.Type)
	}

	if len(g.Names()) == 0 {
		t.Fatalf("expected h to carry a name handle")
	}
}

func Test_Parse_ForwardReference(t *testing.T) {
	c := circuit.New()
	src := []byte(`
top := AND(a, b)
a := VAR()
b := VAR()
ASSIGN top
`)

	if err := Parse(c, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx, _ := c.Lookup("top")
	g := c.Gate(idx)

	if g.Type != circuit.And || len(g.Children) != 2 {
		t.Fatalf("expected top to become a 2-ary AND, got %s with %d children", g.Type, len(g.Children))
	}
}

func Test_Parse_ThresholdBounds(t *testing.T) {
	c := circuit.New()
	src := []byte(`
a := VAR()
b := VAR()
d := VAR()
t := [1,2] THRESHOLD(a, b, d)
ASSIGN t
`)

	if err := Parse(c, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx, _ := c.Lookup("t")
	g := c.Gate(idx)

	if g.Tmin != 1 || g.Tmax != 2 {
		t.Fatalf("expected THRESHOLD[1,2], got [%d,%d]", g.Tmin, g.Tmax)
	}
}

func Test_Parse_AssignNegation(t *testing.T) {
	c := circuit.New()
	src := []byte(`
a := VAR()
ASSIGN ~a
`)

	if err := Parse(c, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx, _ := c.Lookup("a")
	g := c.Gate(idx)

	if !g.Determined || g.Value {
		t.Fatalf("expected ASSIGN ~a to force a to false")
	}
}

func Test_Parse_UnknownType(t *testing.T) {
	c := circuit.New()
	src := []byte(`a := BOGUS()`)

	if err := Parse(c, src); err == nil {
		t.Fatalf("expected an error for an unknown gate type")
	}
}
