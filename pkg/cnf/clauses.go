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

// Package cnf translates a normalized, numbered circuit into Tseitin
// clauses and writes them out in DIMACS CNF format.
package cnf

import (
	"fmt"

	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
	"github.com/tjunttila-labs/bc2cnf/pkg/coi"
	"github.com/tjunttila-labs/bc2cnf/pkg/polarity"
)

// Clause is one disjunctive CNF clause, as signed DIMACS literals.
type Clause []int

// Generator produces the clause set for a normalized circuit given a
// variable Numbering. Pol is optional: when non-nil, each gate's clause
// set is restricted to the polarity halves Pol reports as actually
// needed (the Plaisted-Greenbaum optimization); when nil, both halves
// are always emitted.
type Generator struct {
	Circuit *circuit.Circuit
	Num     *coi.Numbering
	Pol     *polarity.Info
}

func (gn *Generator) needs(idx int) (pos, neg bool) {
	if gn.Pol == nil {
		return true, true
	}

	return gn.Pol.Pos(idx), gn.Pol.Neg(idx)
}

// Clauses returns every definitional clause for the gates in order, plus
// one unit clause per determined, numbered gate. A determined gate still
// numbered (i.e. not dropped as justified by coi.Relevant) got its value
// from outside its own children, so its defining template is still
// needed to constrain those children — only the unit clause alone would
// silently drop that constraint. order is coi.Select's output; gates
// without a variable in Num are skipped.
func (gn *Generator) Clauses(order []int) ([]Clause, error) {
	var clauses []Clause

	for _, idx := range order {
		v := gn.Num.Var(idx)
		if v == 0 {
			continue
		}

		g := gn.Circuit.Gate(idx)

		if g.Determined {
			if g.Value {
				clauses = append(clauses, Clause{v})
			} else {
				clauses = append(clauses, Clause{-v})
			}
		}

		cs, err := gn.gateClauses(g, v)
		if err != nil {
			return nil, err
		}

		clauses = append(clauses, cs...)
	}

	return clauses, nil
}

func (gn *Generator) lit(idx int) int {
	return gn.Num.Literal(gn.Circuit, idx)
}

func (gn *Generator) gateClauses(g *circuit.Gate, v int) ([]Clause, error) {
	pos, neg := gn.needs(g.Index)

	switch g.Type {
	case circuit.Var, circuit.False, circuit.True:
		return nil, nil
	case circuit.Not:
		c := gn.lit(g.Children[0])
		var out []Clause
		if pos {
			out = append(out, Clause{-v, -c})
		}
		if neg {
			out = append(out, Clause{v, c})
		}
		return out, nil
	case circuit.Or:
		return gn.orClauses(g, v, pos, neg), nil
	case circuit.And:
		return gn.andClauses(g, v, pos, neg), nil
	case circuit.Equiv:
		if len(g.Children) != 2 {
			return nil, fmt.Errorf("cnf: gate %d: EQUIV must be binary by this stage, has %d children", g.Index, len(g.Children))
		}
		return gn.equivClauses(g, v, pos, neg), nil
	case circuit.Odd:
		if len(g.Children) != 2 {
			return nil, fmt.Errorf("cnf: gate %d: ODD must be binary by this stage, has %d children", g.Index, len(g.Children))
		}
		return gn.oddClauses(g, v, pos, neg), nil
	case circuit.Ite:
		return gn.iteClauses(g, v, pos, neg), nil
	case circuit.Even:
		if len(g.Children) != 2 {
			return nil, fmt.Errorf("cnf: gate %d: EVEN must be binary by this stage, has %d children", g.Index, len(g.Children))
		}
		return gn.evenClauses(g, v, pos, neg), nil
	case circuit.Ref, circuit.Threshold, circuit.Atleast:
		return nil, fmt.Errorf("cnf: gate %d: type %s should have been eliminated by normalize", g.Index, g.Type)
	default:
		circuit.Invariant(false, "gate %d: type %s has no clause template (exhaustive switch)", g.Index, g.Type)
		return nil, nil
	}
}

func (gn *Generator) orClauses(g *circuit.Gate, v int, pos, neg bool) []Clause {
	var out []Clause

	if pos {
		big := make(Clause, 0, len(g.Children)+1)
		big = append(big, -v)
		for _, ch := range g.Children {
			big = append(big, gn.lit(ch))
		}
		out = append(out, big)
	}

	if neg {
		for _, ch := range g.Children {
			out = append(out, Clause{v, -gn.lit(ch)})
		}
	}

	return out
}

func (gn *Generator) andClauses(g *circuit.Gate, v int, pos, neg bool) []Clause {
	var out []Clause

	if pos {
		for _, ch := range g.Children {
			out = append(out, Clause{-v, gn.lit(ch)})
		}
	}

	if neg {
		big := make(Clause, 0, len(g.Children)+1)
		big = append(big, v)
		for _, ch := range g.Children {
			big = append(big, -gn.lit(ch))
		}
		out = append(out, big)
	}

	return out
}

func (gn *Generator) equivClauses(g *circuit.Gate, v int, pos, neg bool) []Clause {
	c1, c2 := gn.lit(g.Children[0]), gn.lit(g.Children[1])

	var out []Clause

	if pos {
		out = append(out,
			Clause{-v, -c1, c2},
			Clause{-v, c1, -c2},
		)
	}

	if neg {
		out = append(out,
			Clause{v, c1, c2},
			Clause{v, -c1, -c2},
		)
	}

	return out
}

// evenClauses mirrors equivClauses: a binary EVEN is true exactly when
// its two children agree, the same relation a binary EQUIV expresses.
func (gn *Generator) evenClauses(g *circuit.Gate, v int, pos, neg bool) []Clause {
	c1, c2 := gn.lit(g.Children[0]), gn.lit(g.Children[1])

	var out []Clause

	if pos {
		out = append(out,
			Clause{-v, -c1, c2},
			Clause{-v, c1, -c2},
		)
	}

	if neg {
		out = append(out,
			Clause{v, c1, c2},
			Clause{v, -c1, -c2},
		)
	}

	return out
}

func (gn *Generator) oddClauses(g *circuit.Gate, v int, pos, neg bool) []Clause {
	c1, c2 := gn.lit(g.Children[0]), gn.lit(g.Children[1])

	var out []Clause

	if pos {
		out = append(out,
			Clause{-v, c1, c2},
			Clause{-v, -c1, -c2},
		)
	}

	if neg {
		out = append(out,
			Clause{v, -c1, c2},
			Clause{v, c1, -c2},
		)
	}

	return out
}

func (gn *Generator) iteClauses(g *circuit.Gate, v int, pos, neg bool) []Clause {
	i, th, el := gn.lit(g.Children[0]), gn.lit(g.Children[1]), gn.lit(g.Children[2])

	var out []Clause

	if pos {
		out = append(out,
			Clause{-v, -i, th},
			Clause{-v, i, el},
		)
	}

	if neg {
		out = append(out,
			Clause{v, -i, -th},
			Clause{v, i, -el},
		)
	}

	return out
}
