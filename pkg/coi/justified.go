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

// Package coi computes the cone of influence of a circuit's root
// handles: the set of gates that actually need a DIMACS variable and
// clauses, as opposed to gates whose determined value already follows
// deductively from their children (and so would only add redundant
// clauses to the CNF output).
package coi

import "github.com/tjunttila-labs/bc2cnf/pkg/circuit"

// IsJustified reports whether gate g's determined value follows directly
// from the determined values of its children, using exactly the
// condition the simplifier would have used to fold g had it not already
// been folded by some other means (e.g. because g was forced externally
// rather than derived). A justified, determined, reachable gate can be
// dropped from CNF translation: its children's clauses, plus the unit
// clauses already emitted for them, are enough to pin its value down.
//
// IsJustified only makes sense for a Determined gate; it panics if called
// on one that isn't, since the concept of "does the current value follow
// from children" is meaningless otherwise.
func IsJustified(c *circuit.Circuit, g *circuit.Gate) bool {
	circuit.Invariant(g.Determined, "IsJustified called on undetermined gate %d", g.Index)

	switch g.Type {
	case circuit.False, circuit.True, circuit.Var:
		return true
	case circuit.Ref:
		return childDetermined(c, g, 0)
	case circuit.Not:
		return childDetermined(c, g, 0)
	case circuit.Or:
		return justifiedOr(c, g)
	case circuit.And:
		return justifiedAnd(c, g)
	case circuit.Equiv:
		return justifiedEquiv(c, g)
	case circuit.Odd, circuit.Even:
		return allChildrenDetermined(c, g)
	case circuit.Ite:
		return justifiedIte(c, g)
	case circuit.Threshold:
		return justifiedThreshold(c, g)
	case circuit.Atleast:
		return justifiedAtleast(c, g)
	default:
		return false
	}
}

func childDetermined(c *circuit.Circuit, g *circuit.Gate, i int) bool {
	return c.Gate(g.Children[i]).Determined
}

func allChildrenDetermined(c *circuit.Circuit, g *circuit.Gate) bool {
	for _, ch := range g.Children {
		if !c.Gate(ch).Determined {
			return false
		}
	}

	return true
}

func countInfo(c *circuit.Circuit, g *circuit.Gate) (nofTrue, nofFalse, nofUndet int) {
	for _, ch := range g.Children {
		cg := c.Gate(ch)
		if !cg.Determined {
			nofUndet++
			continue
		}

		if cg.Value {
			nofTrue++
		} else {
			nofFalse++
		}
	}

	return
}

func justifiedOr(c *circuit.Circuit, g *circuit.Gate) bool {
	nofTrue, _, nofUndet := countInfo(c, g)

	if g.Value {
		return nofTrue > 0
	}

	return nofUndet == 0
}

func justifiedAnd(c *circuit.Circuit, g *circuit.Gate) bool {
	_, nofFalse, nofUndet := countInfo(c, g)

	if !g.Value {
		return nofFalse > 0
	}

	return nofUndet == 0
}

func justifiedEquiv(c *circuit.Circuit, g *circuit.Gate) bool {
	nofTrue, nofFalse, nofUndet := countInfo(c, g)

	if g.Value {
		return nofUndet == 0
	}

	return nofTrue > 0 && nofFalse > 0
}

func justifiedIte(c *circuit.Circuit, g *circuit.Gate) bool {
	ifc := c.Gate(g.Children[0])

	if ifc.Determined {
		if ifc.Value {
			return c.Gate(g.Children[1]).Determined
		}

		return c.Gate(g.Children[2]).Determined
	}

	thenc := c.Gate(g.Children[1])
	elsec := c.Gate(g.Children[2])

	return thenc.Determined && elsec.Determined && thenc.Value == elsec.Value
}

func justifiedThreshold(c *circuit.Circuit, g *circuit.Gate) bool {
	nofTrue, nofFalse, _ := countInfo(c, g)
	n := len(g.Children)

	if g.Value {
		return uint(nofTrue) >= g.Tmin && uint(n-nofFalse) <= g.Tmax
	}

	return uint(nofTrue) > g.Tmax || uint(n-nofFalse) < g.Tmin
}

func justifiedAtleast(c *circuit.Circuit, g *circuit.Gate) bool {
	nofTrue, nofFalse, _ := countInfo(c, g)
	n := len(g.Children)

	if g.Value {
		return uint(nofTrue) >= g.Tmin
	}

	return uint(n-nofFalse) < g.Tmin
}
