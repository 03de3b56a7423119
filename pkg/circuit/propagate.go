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

import "strings"

// Push schedules the gate at idx for re-examination by whatever pass is
// currently draining the propagation stack. Idempotent: pushing an
// already-queued gate is a no-op.
func (c *Circuit) Push(idx int) {
	g := c.Gate(idx)
	if g == nil || g.inPstack {
		return
	}

	g.inPstack = true
	c.pstack = append(c.pstack, idx)
}

// PushParents schedules every parent of the gate at idx. Called after a
// gate becomes determined or its child list changes, so parents get a
// chance to re-derive their own value.
func (c *Circuit) PushParents(idx int) {
	g := c.Gate(idx)
	if g == nil {
		return
	}

	for p := range g.Parents {
		c.Push(p)
	}
}

// Pop removes and returns the next scheduled gate index, and whether the
// stack was non-empty. LIFO order, matching the original pstack.
func (c *Circuit) Pop() (int, bool) {
	if len(c.pstack) == 0 {
		return 0, false
	}

	idx := c.pstack[len(c.pstack)-1]
	c.pstack = c.pstack[:len(c.pstack)-1]

	if g := c.Gate(idx); g != nil {
		g.inPstack = false
	}

	return idx, true
}

// StackLen reports the number of gates still awaiting re-examination.
func (c *Circuit) StackLen() int {
	return len(c.pstack)
}

// Determine sets g to (determined, value). If g was already determined to
// the opposite value, the circuit is marked unsat and Determine returns
// false without changing g.Value. Otherwise every parent is scheduled for
// re-examination and Determine returns true. Setting the same value twice
// is a harmless no-op that still returns true.
func (c *Circuit) Determine(idx int, value bool) bool {
	g := c.Gate(idx)
	if g == nil {
		return false
	}

	if g.Determined {
		if g.Value != value {
			c.MarkUnsat()
			return false
		}

		return true
	}

	g.Determined = true
	g.Value = value
	c.PushParents(idx)

	return true
}

// ForceTrue is the external-assignment entry point: it determines the
// named gate to true and reports whether that succeeded (false means the
// circuit is now known unsat).
func (c *Circuit) ForceTrue(name string) bool {
	idx, ok := c.Lookup(name)
	if !ok {
		return false
	}

	return c.Determine(idx, true)
}

// ForceFalse is the ForceTrue counterpart for external false-assignment.
func (c *Circuit) ForceFalse(name string) bool {
	idx, ok := c.Lookup(name)
	if !ok {
		return false
	}

	return c.Determine(idx, false)
}

// RemoveUnderscoreNames drops every name handle whose name begins with an
// underscore from both the per-gate handle list and the name index. Such
// names are a convention for auxiliary gates introduced mechanically
// (e.g. by a higher-level generator) that should not appear in CNF
// translation-table comments or in ISCAS89/EDIMACS output.
func (c *Circuit) RemoveUnderscoreNames() {
	for name, idx := range c.names {
		if !strings.HasPrefix(name, "_") {
			continue
		}

		delete(c.names, name)

		g := c.Gate(idx)
		if g == nil {
			continue
		}

		kept := g.Handles[:0]

		for _, h := range g.Handles {
			if h.Kind == NameHandleKind && h.Name == name {
				continue
			}

			kept = append(kept, h)
		}

		g.Handles = kept
	}
}
