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

package simplify

import "github.com/tjunttila-labs/bc2cnf/pkg/circuit"

// simplifyIte folds ITE(i,t,e) once the branch actually taken is known:
// if i is determined, the gate collapses onto the corresponding branch
// (folding further if that branch is itself determined); if i is still
// undetermined but both branches are determined and agree, the result no
// longer depends on i at all and the gate folds to that common value.
// Beyond that, ITE rewrites to a plain OR/AND/EQUIV/ODD gate whenever a
// branch is constant, whenever the condition coincides with a branch, or
// whenever the branches are each other's negation — each case lets the
// result be expressed with one fewer operand than a full if-then-else.
func simplifyIte(c *circuit.Circuit, g *circuit.Gate) {
	ifc := c.Gate(g.Children[0])
	thenc := c.Gate(g.Children[1])
	elsec := c.Gate(g.Children[2])

	if ifc.Determined {
		if ifc.Value {
			if thenc.Determined {
				foldConstant(c, g, thenc.Value)
			} else {
				c.Redirect(g.Index, thenc.Index)
			}
		} else {
			if elsec.Determined {
				foldConstant(c, g, elsec.Value)
			} else {
				c.Redirect(g.Index, elsec.Index)
			}
		}

		return
	}

	if thenc.Determined && elsec.Determined && thenc.Value == elsec.Value {
		foldConstant(c, g, thenc.Value)
		return
	}

	if g.Children[1] == g.Children[2] {
		// ITE(i,x,x) = x
		c.Redirect(g.Index, g.Children[1])
		return
	}

	if g.Children[0] == g.Children[1] {
		// ITE(x,x,e) = OR(x,e)
		replaceIte(c, g, circuit.Or, g.Children[0], g.Children[2])
		return
	}

	if g.Children[0] == g.Children[2] {
		// ITE(x,t,x) = AND(x,t)
		replaceIte(c, g, circuit.And, g.Children[0], g.Children[1])
		return
	}

	if elsec.Type == circuit.Not && elsec.Children[0] == thenc.Index {
		// ITE(x,y,¬y) = EQUIV(x,y)
		replaceIte(c, g, circuit.Equiv, g.Children[0], g.Children[1])
		return
	}

	if thenc.Type == circuit.Not && thenc.Children[0] == elsec.Index {
		// ITE(x,¬y,y) = ODD(x,y)
		replaceIte(c, g, circuit.Odd, g.Children[0], g.Children[2])
		return
	}

	if thenc.Determined {
		if thenc.Value {
			// ITE(i,T,e) = OR(i,e)
			replaceIte(c, g, circuit.Or, g.Children[0], g.Children[2])
		} else {
			// ITE(i,F,e) = AND(¬i,e)
			notI := c.Install(circuit.Not, []int{g.Children[0]})
			replaceIte(c, g, circuit.And, notI.Index, g.Children[2])
		}

		return
	}

	if elsec.Determined {
		if elsec.Value {
			// ITE(i,t,T) = OR(¬i,t)
			notI := c.Install(circuit.Not, []int{g.Children[0]})
			replaceIte(c, g, circuit.Or, notI.Index, g.Children[1])
		} else {
			// ITE(i,t,F) = AND(i,t)
			replaceIte(c, g, circuit.And, g.Children[0], g.Children[1])
		}
	}
}

// replaceIte installs a fresh binary gate of kind over (a,b), redirects
// g's parents and handles onto it, and schedules it for examination:
// Redirect only re-enqueues the old gate's former parents, but the new
// gate itself may have more folding left to do (e.g. one of a, b may
// already be determined).
func replaceIte(c *circuit.Circuit, g *circuit.Gate, kind circuit.Type, a, b int) {
	replacement := c.Install(kind, []int{a, b})
	c.Redirect(g.Index, replacement.Index)
	c.Push(replacement.Index)
}
