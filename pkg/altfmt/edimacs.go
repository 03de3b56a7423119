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

package altfmt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
	"github.com/tjunttila-labs/bc2cnf/pkg/coi"
)

// edimacsCode is the numeric gate-type tag EDIMACS uses in place of a
// keyword, one line per gate: "<code> 1 <self> <children...> 0"
// ("<code> -1 <self> 0" for FALSE/TRUE, and "<code> 1 <bound> <self>
// <children...> 0" for THRESHOLD/ATLEAST).
func edimacsCode(t circuit.Type) (int, bool) {
	switch t {
	case circuit.False:
		return 1, true
	case circuit.True:
		return 2, true
	case circuit.Not:
		return 3, true
	case circuit.And:
		return 4, true
	case circuit.Or:
		return 6, true
	case circuit.Odd:
		return 8, true
	case circuit.Even:
		return 9, true
	case circuit.Equiv:
		return 11, true
	case circuit.Ite:
		return 12, true
	case circuit.Atleast:
		return 13, true
	case circuit.Threshold:
		return 15, true
	default:
		return 0, false
	}
}

// WriteEDIMACS writes order as an EDIMACS gate listing, numbering every
// gate by its coi.Numbering variable (EDIMACS, unlike ISCAS89, numbers
// gates rather than naming them, matching plain DIMACS's numeric
// literals). VAR gates emit nothing: they are implicit (any
// otherwise-unreferenced numbered literal is an input). REF must already
// be gone by this stage; a REF gate in order is reported as an error.
func WriteEDIMACS(w io.Writer, c *circuit.Circuit, num *coi.Numbering, order []int) error {
	bw := bufio.NewWriter(w)

	for _, idx := range order {
		g := c.Gate(idx)

		if err := writeEDIMACSGate(bw, c, num, g); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeEDIMACSGate(w *bufio.Writer, c *circuit.Circuit, num *coi.Numbering, g *circuit.Gate) error {
	switch g.Type {
	case circuit.Var, circuit.Deleted:
		return nil
	case circuit.Ref:
		return fmt.Errorf("altfmt: gate %d: REF not properly normalized for EDIMACS output", g.Index)
	}

	code, ok := edimacsCode(g.Type)
	if !ok {
		return fmt.Errorf("altfmt: gate %d: type %s has no EDIMACS code", g.Index, g.Type)
	}

	self := num.Literal(c, g.Index)

	switch g.Type {
	case circuit.False, circuit.True:
		_, err := fmt.Fprintf(w, "%d -1 %d 0\n", code, self)
		return err
	case circuit.Threshold:
		if g.Tmin != g.Tmax {
			return fmt.Errorf("altfmt: gate %d: EDIMACS THRESHOLD requires Tmin==Tmax, got [%d,%d]", g.Index, g.Tmin, g.Tmax)
		}
		_, err := fmt.Fprintf(w, "%d 1 %d %d %s 0\n", code, g.Tmin, self, literalList(c, num, g))
		return err
	case circuit.Atleast:
		_, err := fmt.Fprintf(w, "%d 1 %d %d %s 0\n", code, g.Tmin, self, literalList(c, num, g))
		return err
	default:
		_, err := fmt.Fprintf(w, "%d 1 %d %s 0\n", code, self, literalList(c, num, g))
		return err
	}
}

func literalList(c *circuit.Circuit, num *coi.Numbering, g *circuit.Gate) string {
	out := ""
	for i, ch := range g.Children {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprint(num.Literal(c, ch))
	}
	return out
}
