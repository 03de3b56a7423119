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

// simplifyRef folds REF(c) once c is determined, and otherwise leaves the
// gate untouched: REF survives until pkg/normalize eliminates it by
// redirecting every parent straight to the child.
func simplifyRef(c *circuit.Circuit, g *circuit.Gate) {
	cg := c.Gate(g.Children[0])
	if cg.Determined {
		foldConstant(c, g, cg.Value)
	}
}

// simplifyNot folds NOT(c) once c is determined, collapses NOT(NOT(x))
// to x, and otherwise leaves the gate for pkg/normalize (NOT-less
// translation wants to keep single NOTs intact).
func simplifyNot(c *circuit.Circuit, g *circuit.Gate) {
	cg := c.Gate(g.Children[0])

	if cg.Determined {
		foldConstant(c, g, !cg.Value)
		return
	}

	if cg.Type == circuit.Not {
		c.Redirect(g.Index, cg.Children[0])
	}
}
