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

package cnf

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
	"github.com/tjunttila-labs/bc2cnf/pkg/coi"
)

const dimacsHeader = "c This is a CNF SAT formula in the DIMACS CNF format,\n" +
	"c produced with the bc2cnf translator.\n"

// WriteTranslationTable writes one comment line per named gate still in
// the COI, mapping its name to its signed DIMACS literal. Gates elided by
// NOT-less numbering resolve through Numbering.Literal exactly as a
// clause reference would.
func WriteTranslationTable(w io.Writer, c *circuit.Circuit, num *coi.Numbering) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(dimacsHeader); err != nil {
		return err
	}

	for _, idx := range num.Order {
		g := c.Gate(idx)

		for _, name := range g.Names() {
			lit := num.Literal(c, idx)
			if lit == 0 {
				continue
			}

			if _, err := fmt.Fprintf(bw, "c %s <-> %d\n", name, lit); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// WriteCNF writes the full DIMACS CNF document: header, translation
// table, the "p cnf" problem line, and one line per clause.
func WriteCNF(w io.Writer, c *circuit.Circuit, num *coi.Numbering, clauses []Clause) error {
	bw := bufio.NewWriter(w)

	if err := WriteTranslationTable(bw, c, num); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", num.NumVars, len(clauses)); err != nil {
		return err
	}

	for _, cl := range clauses {
		for _, lit := range cl {
			if _, err := fmt.Fprintf(bw, "%d ", lit); err != nil {
				return err
			}
		}

		if _, err := bw.WriteString("0\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteSAT writes the dummy-but-valid DIMACS shortcut used when the COI
// is empty: the circuit is satisfiable regardless of any remaining
// unconstrained input, so a trivial "p cnf 1 1 / 1 0" is emitted along
// with comments recording every named gate's forced value.
func WriteSAT(w io.Writer, c *circuit.Circuit, names map[string]int) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString("c The instance was satisfiable\n"); err != nil {
		return err
	}

	sorted := sortedNames(names)

	for _, name := range sorted {
		g := c.Gate(names[name])

		mark := "F"
		if g.Determined && g.Value {
			mark = "T"
		}

		if _, err := fmt.Fprintf(bw, "c %s <-> %s\n", name, mark); err != nil {
			return err
		}
	}

	if _, err := bw.WriteString("p cnf 1 1\n1 0\n"); err != nil {
		return err
	}

	return bw.Flush()
}

// WriteUNSAT writes the dummy contradictory DIMACS shortcut used when a
// forced assignment made the circuit unsatisfiable before any clause
// generation was needed.
func WriteUNSAT(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString("c The instance was unsatisfiable\n"); err != nil {
		return err
	}

	if _, err := bw.WriteString("p cnf 1 2\n1 0\n-1 0\n"); err != nil {
		return err
	}

	return bw.Flush()
}

func sortedNames(names map[string]int) []string {
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}

	sort.Strings(out)

	return out
}
