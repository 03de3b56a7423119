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

// Package altfmt implements two alternate print visitors for a
// normalized circuit: ISCAS89 (a netlist format used by logic synthesis
// tooling) and EDIMACS (an extended, typed-gate precursor to plain
// DIMACS). Neither is needed to produce a satisfying CNF; both exist so
// a circuit can be handed to other tools that expect these formats.
package altfmt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
)

func gateName(idx int) string {
	return fmt.Sprintf("g_%d", idx)
}

// WriteISCAS89 writes order (a normalized, child-before-parent gate
// sequence) as an ISCAS89 netlist. FALSE/TRUE/VAR gates produce no line
// (ISCAS89 has no constant literal and declares inputs separately via
// INPUT(...), left to the caller since primary-input selection depends
// on COI). EQUIV and EVEN are written as NOT(XOR(...)) rather than using
// an IFF/EVEN keyword directly, since common ISCAS89 consumers only
// parse XOR. REF, THRESHOLD and ATLEAST must already have been
// eliminated by pkg/normalize; encountering one is an error.
func WriteISCAS89(w io.Writer, c *circuit.Circuit, order []int) error {
	bw := bufio.NewWriter(w)

	for _, idx := range order {
		g := c.Gate(idx)

		if err := writeISCAS89Gate(bw, g); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeISCAS89Gate(w *bufio.Writer, g *circuit.Gate) error {
	switch g.Type {
	case circuit.False, circuit.True, circuit.Var, circuit.Deleted:
		return nil
	case circuit.Not:
		_, err := fmt.Fprintf(w, "%s = NOT(%s)\n", gateName(g.Index), childList(g))
		return err
	case circuit.Or:
		_, err := fmt.Fprintf(w, "%s = OR(%s)\n", gateName(g.Index), childList(g))
		return err
	case circuit.And:
		_, err := fmt.Fprintf(w, "%s = AND(%s)\n", gateName(g.Index), childList(g))
		return err
	case circuit.Odd:
		_, err := fmt.Fprintf(w, "%s = XOR(%s)\n", gateName(g.Index), childList(g))
		return err
	case circuit.Equiv, circuit.Even:
		inner := gateName(g.Index) + "_n"
		if _, err := fmt.Fprintf(w, "%s = XOR(%s)\n", inner, childList(g)); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%s = NOT(%s)\n", gateName(g.Index), inner)
		return err
	case circuit.Ite:
		_, err := fmt.Fprintf(w, "%s = ITE(%s)\n", gateName(g.Index), childList(g))
		return err
	default:
		return fmt.Errorf("altfmt: gate %d: type %s not valid in ISCAS89 output (circuit not fully normalized)", g.Index, g.Type)
	}
}

func childList(g *circuit.Gate) string {
	out := ""
	for i, ch := range g.Children {
		if i > 0 {
			out += ","
		}
		out += gateName(ch)
	}
	return out
}
