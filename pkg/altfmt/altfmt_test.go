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

package altfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
	"github.com/tjunttila-labs/bc2cnf/pkg/coi"
)

func Test_WriteISCAS89_EquivBecomesNotXor(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)
	eq := c.Install(circuit.Equiv, []int{a.Index, b.Index})

	order := coi.Select(c, []int{eq.Index})

	var buf bytes.Buffer
	if err := WriteISCAS89(&buf, c, order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "XOR(") || !strings.Contains(out, "NOT(") {
		t.Fatalf("expected EQUIV to be written as NOT(XOR(...)), got:\n%s", out)
	}
}

func Test_WriteEDIMACS_RejectsUnnormalizedRef(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	ref := c.Install(circuit.Ref, []int{a.Index})

	order := coi.Select(c, []int{ref.Index})
	num := coi.Number(c, order, false, false)

	var buf bytes.Buffer
	if err := WriteEDIMACS(&buf, c, num, order); err == nil {
		t.Fatalf("expected an error writing EDIMACS for an un-normalized REF gate")
	}
}

func Test_WriteEDIMACS_AndHasCode4(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)
	and := c.Install(circuit.And, []int{a.Index, b.Index})

	order := coi.Select(c, []int{and.Index})
	num := coi.Number(c, order, false, false)

	var buf bytes.Buffer
	if err := WriteEDIMACS(&buf, c, num, order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "4 1") {
		t.Fatalf("expected AND to be coded as 4, got:\n%s", buf.String())
	}
}
