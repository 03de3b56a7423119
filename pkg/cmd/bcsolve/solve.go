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

package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/tjunttila-labs/bc2cnf/pkg/bcparse"
	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
	"github.com/tjunttila-labs/bc2cnf/pkg/cnf"
	"github.com/tjunttila-labs/bc2cnf/pkg/coi"
	"github.com/tjunttila-labs/bc2cnf/pkg/config"
	"github.com/tjunttila-labs/bc2cnf/pkg/diag"
	"github.com/tjunttila-labs/bc2cnf/pkg/model"
	"github.com/tjunttila-labs/bc2cnf/pkg/normalize"
	"github.com/tjunttila-labs/bc2cnf/pkg/share"
	"github.com/tjunttila-labs/bc2cnf/pkg/simplify"
)

func runSolve(cmd *cobra.Command, args []string) error {
	if getFlagBool(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	cfg := config.Default()
	cfg.Verbose = getFlagBool(cmd, "verbose")
	cfg.PerformCOI = !getFlagBool(cmd, "nocoi")
	cfg.PerformSimplifications = !getFlagBool(cmd, "nosimplify")

	src, err := readInput(args)
	if err != nil {
		return err
	}

	c := circuit.New()
	if err := bcparse.Parse(c, src); err != nil {
		return fmt.Errorf("bcsolve: %w", err)
	}

	c.RemoveUnderscoreNames()

	if c.Unsat() {
		fmt.Println("Unsatisfiable")
		return nil
	}

	roots := c.Roots()
	stats := diag.NewPerfStats()

	if cfg.PerformSimplifications {
		simplify.PushAll(c, roots)
		simplify.Run(c)
		share.Pass(c, roots)
	}

	normalize.Pass(c, roots)
	roots = c.Roots()

	if cfg.PerformSimplifications {
		simplify.PushAll(c, roots)
		simplify.Run(c)
		share.Pass(c, roots)
		roots = c.Roots()
	}

	if cfg.Verbose {
		stats.Log("simplify+normalize")
	}

	if c.Unsat() {
		fmt.Println("Unsatisfiable")
		return nil
	}

	order := coi.Select(c, roots)
	num := coi.Number(c, order, cfg.PerformCOI, false)

	if num.NumVars == 0 {
		model.AssignDefaults(c, roots)
		model.Evaluate(c, roots)

		fmt.Println("Satisfiable")

		if !getFlagBool(cmd, "nosolution") {
			printModel(c, roots)
		}

		return nil
	}

	gn := &cnf.Generator{Circuit: c, Num: num}

	clauses, err := gn.Clauses(order)
	if err != nil {
		return fmt.Errorf("bcsolve: %w", err)
	}

	g := gini.New()

	for _, cl := range clauses {
		for _, lit := range cl {
			g.Add(z.Dimacs2Lit(lit))
		}

		g.Add(z.Lit(0))
	}

	result := g.Solve()

	switch result {
	case 1:
		fmt.Println("Satisfiable")

		if !getFlagBool(cmd, "nosolution") {
			printGiniModel(c, num, g)
		}
	case -1:
		fmt.Println("Unsatisfiable")
	default:
		fmt.Println("Unknown")
	}

	return nil
}

func printModel(c *circuit.Circuit, roots []int) {
	names := make(map[string]bool)

	for _, idx := range roots {
		g := c.Gate(idx)
		for _, name := range g.Names() {
			if g.Determined && g.Value {
				fmt.Printf("c %s <-> T\n", name)
			} else {
				fmt.Printf("c %s <-> F\n", name)
			}

			names[name] = true
		}
	}
}

func printGiniModel(c *circuit.Circuit, num *coi.Numbering, g *gini.Gini) {
	var names []string
	gateOf := make(map[string]int)

	for _, idx := range num.Order {
		gate := c.Gate(idx)
		if num.Var(idx) == 0 {
			continue
		}

		for _, name := range gate.Names() {
			names = append(names, name)
			gateOf[name] = idx
		}
	}

	sort.Strings(names)

	for _, name := range names {
		lit := num.Literal(c, gateOf[name])

		v := g.Value(z.Dimacs2Lit(abs(lit)))
		if lit < 0 {
			v = !v
		}

		if v {
			fmt.Printf("%s = T\n", name)
		} else {
			fmt.Printf("%s = F\n", name)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

func readInput(args []string) ([]byte, error) {
	if len(args) >= 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("bcsolve: %w", err)
		}

		return data, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("bcsolve: reading stdin: %w", err)
	}

	return data, nil
}
