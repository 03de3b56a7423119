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

package normalize

import "github.com/tjunttila-labs/bc2cnf/pkg/circuit"

// expandAtleast rewrites ATLEAST[Tmin](children) into a sequential
// counter network built from binary AND/OR gates, then redirects every
// parent of g onto the network's output.
func expandAtleast(c *circuit.Circuit, g *circuit.Gate) {
	out := atLeastK(c, g.Children, int(g.Tmin))
	c.Redirect(g.Index, out)
}

// expandThreshold rewrites THRESHOLD[Tmin,Tmax](children) into
// AND(atLeastK(Tmin), NOT(atLeastK(Tmax+1))), omitting either conjunct
// when it is trivially true (Tmin==0, or Tmax+1 exceeds the number of
// children so the "too many" counter can never fire).
func expandThreshold(c *circuit.Circuit, g *circuit.Gate) {
	n := len(g.Children)

	var lowBound, highBound int

	haveLow := g.Tmin > 0
	if haveLow {
		lowBound = atLeastK(c, g.Children, int(g.Tmin))
	}

	haveHigh := int(g.Tmax)+1 <= n
	if haveHigh {
		tooMany := atLeastK(c, g.Children, int(g.Tmax)+1)
		highBound = c.Install(circuit.Not, []int{tooMany}).Index
	}

	switch {
	case haveLow && haveHigh:
		out := c.Install(circuit.And, []int{lowBound, highBound})
		c.Redirect(g.Index, out.Index)
	case haveLow:
		c.Redirect(g.Index, lowBound)
	case haveHigh:
		c.Redirect(g.Index, highBound)
	default:
		c.Redirect(g.Index, c.Const(true))
	}
}

// atLeastK returns the index of a gate that is true iff at least k of
// children are true, building a sequential-counter network:
// S[i][j] == "at least j of the first i children are true", with
// S[i][j] = OR(S[i-1][j], AND(S[i-1][j-1], children[i-1])) and the
// boundary conditions S[i][0] == true, S[0][j>0] == false. Only the
// previous row is kept in memory at a time, giving O(n*k) gates.
func atLeastK(c *circuit.Circuit, children []int, k int) int {
	n := len(children)

	if k <= 0 {
		return c.Const(true)
	}

	if k > n {
		return c.Const(false)
	}

	prev := make([]int, k+1)
	prev[0] = c.Const(true)

	for j := 1; j <= k; j++ {
		prev[j] = c.Const(false)
	}

	for i := 1; i <= n; i++ {
		cur := make([]int, k+1)
		cur[0] = c.Const(true)

		upper := k
		if i < upper {
			upper = i
		}

		for j := 1; j <= upper; j++ {
			withChild := c.Install(circuit.And, []int{prev[j-1], children[i-1]})
			cur[j] = c.Install(circuit.Or, []int{prev[j], withChild.Index}).Index
		}

		for j := upper + 1; j <= k; j++ {
			cur[j] = prev[j]
		}

		prev = cur
	}

	return prev[k]
}
