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

package model

import (
	"testing"

	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
)

func Test_AssignDefaults_And_Evaluate(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)
	and := c.Install(circuit.And, []int{a.Index, b.Index})

	AssignDefaults(c, []int{and.Index})
	Evaluate(c, []int{and.Index})

	if !and.Determined || and.Value {
		t.Fatalf("expected AND of two defaulted-false inputs to evaluate to false")
	}

	if err := CheckConsistency(c, []int{and.Index}); err != nil {
		t.Fatalf("unexpected consistency error: %v", err)
	}
}

func Test_Evaluate_Ite(t *testing.T) {
	c := circuit.New()
	i := c.Install(circuit.Var, nil)
	th := c.Install(circuit.Var, nil)
	el := c.Install(circuit.Var, nil)
	ite := c.Install(circuit.Ite, []int{i.Index, th.Index, el.Index})

	c.Determine(i.Index, true)
	c.Determine(th.Index, true)
	c.Determine(el.Index, false)

	Evaluate(c, []int{ite.Index})

	if !ite.Determined || !ite.Value {
		t.Fatalf("expected ITE(true, true, false) to evaluate true")
	}
}

func Test_CheckConsistency_DetectsMismatch(t *testing.T) {
	c := circuit.New()
	a := c.Install(circuit.Var, nil)
	b := c.Install(circuit.Var, nil)
	and := c.Install(circuit.And, []int{a.Index, b.Index})

	c.Determine(a.Index, true)
	c.Determine(b.Index, false)
	c.Determine(and.Index, true) // wrong on purpose

	if err := CheckConsistency(c, []int{and.Index}); err == nil {
		t.Fatalf("expected a consistency error for a mismatched AND gate")
	}
}
