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

// Walk visits every gate reachable from the roots (inclusive), each at
// most once, calling visit in a topological order where every child is
// visited strictly before its parents (post-order DFS). Deleted gates are
// skipped, but their absence does not stop the walk from continuing past
// them along other paths (a Deleted gate has no children left, so the
// walk simply does not descend further there).
func (c *Circuit) Walk(roots []int, visit func(*Gate)) {
	visited := make(map[int]bool, len(c.gates))

	var dfs func(idx int)
	dfs = func(idx int) {
		if visited[idx] {
			return
		}

		visited[idx] = true

		g := c.Gate(idx)
		if g == nil || g.Type == Deleted {
			return
		}

		for _, ch := range g.Children {
			dfs(ch)
		}

		visit(g)
	}

	for _, r := range roots {
		dfs(r)
	}
}

// DependsOn reports whether the gate at idx is reachable from any of
// roots by following child edges. The parser does not call it; the
// package tests do.
func (c *Circuit) DependsOn(roots []int, idx int) bool {
	found := false

	c.Walk(roots, func(g *Gate) {
		if g.Index == idx {
			found = true
		}
	})

	return found
}

// Roots returns the indices of every installed, non-Deleted gate that has
// no parents and at least one handle, i.e. every gate an external
// observer can still reach only by name. Cardinality-bearing internal
// gates with no handles and no parents (e.g. a dangling subexpression
// left over after a rewrite that didn't clean it up) are intentionally
// excluded: pkg/simplify's dead-gate rule deletes those instead.
func (c *Circuit) Roots() []int {
	var roots []int

	for _, g := range c.gates {
		if g.Type != Deleted && !g.HasParents() && g.HasHandles() {
			roots = append(roots, g.Index)
		}
	}

	return roots
}
