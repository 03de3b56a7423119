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

package diag

import (
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
)

// GateCounts tallies how many gates of each type are reachable from a
// set of roots. bc2cnf prints it once under -verbose, after
// simplification, sharing and normalization, to show the size of the
// circuit they leave.
type GateCounts map[string]int

// CountGates walks roots and tallies gate types.
func CountGates(c *circuit.Circuit, roots []int) GateCounts {
	counts := make(GateCounts)

	c.Walk(roots, func(g *circuit.Gate) {
		counts[g.Type.String()]++
	})

	return counts
}

// gateDump is the shape written by DumpJSON, one entry per reachable
// gate, intended for debugging a translation that produced unexpected
// clauses rather than for any downstream tool to consume.
type gateDump struct {
	Index      int      `json:"index"`
	Type       string   `json:"type"`
	Children   []int    `json:"children,omitempty"`
	Names      []string `json:"names,omitempty"`
	Determined bool     `json:"determined,omitempty"`
	Value      bool     `json:"value,omitempty"`
	Tmin       uint     `json:"tmin,omitempty"`
	Tmax       uint     `json:"tmax,omitempty"`
}

// DumpJSON writes every gate reachable from roots as a JSON array, in
// reachable (child-before-parent) order.
func DumpJSON(w io.Writer, c *circuit.Circuit, roots []int) error {
	var dump []gateDump

	c.Walk(roots, func(g *circuit.Gate) {
		dump = append(dump, gateDump{
			Index:      g.Index,
			Type:       g.Type.String(),
			Children:   g.Children,
			Names:      g.Names(),
			Determined: g.Determined,
			Value:      g.Value,
			Tmin:       g.Tmin,
			Tmax:       g.Tmax,
		})
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(dump)
}
