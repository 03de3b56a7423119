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

// Package model reconstructs a full Boolean assignment for a circuit
// whose cone of influence turned out to be empty: every external
// constraint was already resolved by simplification alone, so the
// circuit is trivially satisfiable and no SAT solver call (nor any CNF
// at all) is needed. This mirrors the sat_exit shortcut of the original
// translator.
package model

import "github.com/tjunttila-labs/bc2cnf/pkg/circuit"

// AssignDefaults determines every still-undetermined VAR gate reachable
// from roots to false, the same default the original translator used:
// an input left unconstrained after simplification can take either value
// without affecting satisfiability, so false is as good as any other
// choice.
func AssignDefaults(c *circuit.Circuit, roots []int) {
	c.Walk(roots, func(g *circuit.Gate) {
		if g.Type == circuit.Var && !g.Determined {
			c.Determine(g.Index, false)
		}
	})
}

// Evaluate computes and determines the value of every gate reachable
// from roots that isn't already determined, working in child-before-
// parent order so every gate's children are resolved before it is. It
// assumes AssignDefaults has already been run, so no VAR gate remains
// undetermined; if one somehow still does, the corresponding parent
// gates are left undetermined too (caller should treat that as a bug, not
// propagate a guess).
func Evaluate(c *circuit.Circuit, roots []int) {
	c.Walk(roots, func(g *circuit.Gate) {
		if g.Determined || g.Type == circuit.Deleted {
			return
		}

		if v, ok := evaluate(c, g); ok {
			c.Determine(g.Index, v)
		}
	})
}

func evaluate(c *circuit.Circuit, g *circuit.Gate) (bool, bool) {
	children := make([]*circuit.Gate, len(g.Children))
	for i, ch := range g.Children {
		cg := c.Gate(ch)
		if !cg.Determined {
			return false, false
		}

		children[i] = cg
	}

	switch g.Type {
	case circuit.False:
		return false, true
	case circuit.True:
		return true, true
	case circuit.Ref:
		return children[0].Value, true
	case circuit.Not:
		return !children[0].Value, true
	case circuit.Or:
		for _, ch := range children {
			if ch.Value {
				return true, true
			}
		}
		return false, true
	case circuit.And:
		for _, ch := range children {
			if !ch.Value {
				return false, true
			}
		}
		return true, true
	case circuit.Equiv:
		for _, ch := range children[1:] {
			if ch.Value != children[0].Value {
				return false, true
			}
		}
		return true, true
	case circuit.Odd, circuit.Even:
		nofTrue := 0
		for _, ch := range children {
			if ch.Value {
				nofTrue++
			}
		}
		isOdd := nofTrue%2 == 1
		if g.Type == circuit.Odd {
			return isOdd, true
		}
		return !isOdd, true
	case circuit.Ite:
		if children[0].Value {
			return children[1].Value, true
		}
		return children[2].Value, true
	case circuit.Threshold:
		nofTrue := countTrue(children)
		return uint(nofTrue) >= g.Tmin && uint(nofTrue) <= g.Tmax, true
	case circuit.Atleast:
		nofTrue := countTrue(children)
		return uint(nofTrue) >= g.Tmin, true
	default:
		return false, false
	}
}

func countTrue(children []*circuit.Gate) int {
	n := 0
	for _, ch := range children {
		if ch.Value {
			n++
		}
	}
	return n
}
