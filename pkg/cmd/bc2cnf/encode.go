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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tjunttila-labs/bc2cnf/pkg/altfmt"
	"github.com/tjunttila-labs/bc2cnf/pkg/bcparse"
	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
	"github.com/tjunttila-labs/bc2cnf/pkg/cnf"
	"github.com/tjunttila-labs/bc2cnf/pkg/coi"
	"github.com/tjunttila-labs/bc2cnf/pkg/config"
	"github.com/tjunttila-labs/bc2cnf/pkg/diag"
	"github.com/tjunttila-labs/bc2cnf/pkg/model"
	"github.com/tjunttila-labs/bc2cnf/pkg/normalize"
	"github.com/tjunttila-labs/bc2cnf/pkg/polarity"
	"github.com/tjunttila-labs/bc2cnf/pkg/share"
	"github.com/tjunttila-labs/bc2cnf/pkg/simplify"
)

func runEncode(cmd *cobra.Command, args []string) error {
	if getFlagBool(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	cfg := config.Default()
	cfg.Verbose = getFlagBool(cmd, "verbose")
	cfg.NotLess = getFlagBool(cmd, "notless")
	cfg.PolarityRestricted = getFlagBool(cmd, "polarity")
	cfg.PerformCOI = !getFlagBool(cmd, "nocoi")
	cfg.PerformSimplifications = !getFlagBool(cmd, "nosimplify")
	cfg.PreserveAllSolutions = getFlagBool(cmd, "all")
	cfg.PrintInputGates = getFlagBool(cmd, "print-inputs")

	if seed := getFlagUint64(cmd, "permute"); seed != 0 {
		cfg.PermuteSeed = &seed
	}

	src, err := readInput(args)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(args)
	if err != nil {
		return err
	}
	defer closeOut()

	c := circuit.New()
	if err := bcparse.Parse(c, src); err != nil {
		return fmt.Errorf("bc2cnf: %w", err)
	}

	c.RemoveUnderscoreNames()

	if cfg.PrintInputGates {
		printInputGates(c)
	}

	if c.Unsat() {
		return cnf.WriteUNSAT(out)
	}

	roots := c.Roots()

	stats := diag.NewPerfStats()

	runPipeline(c, &roots, cfg)

	if cfg.Verbose {
		stats.Log("simplify+normalize")
		log.Debugf("gate counts: %v", diag.CountGates(c, roots))
	}

	if c.Unsat() {
		return cnf.WriteUNSAT(out)
	}

	order := coi.Select(c, roots)
	num := coi.Number(c, order, cfg.PerformCOI, cfg.NotLess)

	if num.NumVars == 0 {
		return writeSATShortcut(out, c, roots)
	}

	if cfg.PermuteSeed != nil {
		num = num.Permute(*cfg.PermuteSeed)
	}

	var pol *polarity.Info
	if cfg.PolarityRestricted {
		pol = polarity.Analyze(c, order, roots)
	}

	gn := &cnf.Generator{Circuit: c, Num: num, Pol: pol}

	clauses, err := gn.Clauses(order)
	if err != nil {
		return fmt.Errorf("bc2cnf: %w", err)
	}

	if err := cnf.WriteCNF(out, c, num, clauses); err != nil {
		return fmt.Errorf("bc2cnf: %w", err)
	}

	if err := writeAltFormats(cmd, c, num, order); err != nil {
		return err
	}

	return nil
}

func runPipeline(c *circuit.Circuit, roots *[]int, cfg config.Config) {
	if cfg.PerformSimplifications {
		runSimplifyShare(c, *roots, cfg)
	}

	normalize.Pass(c, *roots)
	*roots = c.Roots()

	if cfg.PerformSimplifications {
		runSimplifyShare(c, *roots, cfg)
		*roots = c.Roots()
	}
}

func runSimplifyShare(c *circuit.Circuit, roots []int, cfg config.Config) {
	simplify.PushAll(c, roots)
	simplify.Run(c)

	if !cfg.PreserveAllSolutions {
		share.Pass(c, roots)
	}
}

func printInputGates(c *circuit.Circuit) {
	for _, g := range c.Gates() {
		if g.Type == circuit.Var {
			for _, name := range g.Names() {
				fmt.Fprintf(os.Stderr, "c input: %s\n", name)
			}
		}
	}
}

func writeSATShortcut(out io.Writer, c *circuit.Circuit, roots []int) error {
	model.AssignDefaults(c, roots)
	model.Evaluate(c, roots)

	if err := model.CheckConsistency(c, roots); err != nil {
		return fmt.Errorf("bc2cnf: internal inconsistency after cone-of-influence reduced to empty: %w", err)
	}

	names := make(map[string]int)
	for _, idx := range roots {
		for _, name := range c.Gate(idx).Names() {
			names[name] = idx
		}
	}

	return cnf.WriteSAT(out, c, names)
}

func writeAltFormats(cmd *cobra.Command, c *circuit.Circuit, num *coi.Numbering, order []int) error {
	if path := getFlagString(cmd, "iscas89"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("bc2cnf: %w", err)
		}
		defer f.Close()

		if err := altfmt.WriteISCAS89(f, c, order); err != nil {
			return fmt.Errorf("bc2cnf: %w", err)
		}
	}

	if path := getFlagString(cmd, "edimacs"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("bc2cnf: %w", err)
		}
		defer f.Close()

		if err := altfmt.WriteEDIMACS(f, c, num, order); err != nil {
			return fmt.Errorf("bc2cnf: %w", err)
		}
	}

	return nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) >= 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("bc2cnf: %w", err)
		}

		return data, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("bc2cnf: reading stdin: %w", err)
	}

	return data, nil
}

func openOutput(args []string) (io.Writer, func(), error) {
	if len(args) >= 2 && args[1] != "-" {
		f, err := os.Create(args[1])
		if err != nil {
			return nil, nil, fmt.Errorf("bc2cnf: %w", err)
		}

		return f, func() { f.Close() }, nil
	}

	return os.Stdout, func() {}, nil
}
