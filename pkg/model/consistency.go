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
	"fmt"

	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
)

// CheckConsistency verifies that every determined gate reachable from
// roots actually agrees with what Evaluate would compute from its
// children, catching any simplification or evaluation bug before it
// reaches the reported model.
func CheckConsistency(c *circuit.Circuit, roots []int) error {
	var firstErr error

	c.Walk(roots, func(g *circuit.Gate) {
		if firstErr != nil || !g.Determined || g.Type == circuit.Var || g.Type == circuit.False || g.Type == circuit.True {
			return
		}

		v, ok := evaluate(c, g)
		if !ok {
			firstErr = fmt.Errorf("model: gate %d (%s): could not evaluate from children", g.Index, g.Type)
			return
		}

		if v != g.Value {
			firstErr = fmt.Errorf("model: gate %d (%s): determined to %v but evaluates to %v from its children", g.Index, g.Type, g.Value, v)
		}
	})

	return firstErr
}
