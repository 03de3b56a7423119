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
	"os"

	"github.com/spf13/cobra"

	"github.com/tjunttila-labs/bc2cnf/pkg/bcparse"
	"github.com/tjunttila-labs/bc2cnf/pkg/circuit"
	"github.com/tjunttila-labs/bc2cnf/pkg/diag"
	"github.com/tjunttila-labs/bc2cnf/pkg/normalize"
	"github.com/tjunttila-labs/bc2cnf/pkg/share"
	"github.com/tjunttila-labs/bc2cnf/pkg/simplify"
)

var debugDumpCmd = &cobra.Command{
	Use:   "debug-dump [infile]",
	Short: "dump the gate store as JSON, after parsing and (unless -raw) the simplify/normalize pipeline",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDebugDump,
}

func init() {
	debugDumpCmd.Flags().Bool("raw", false, "dump the circuit as parsed, before simplification and normalization")
	rootCmd.AddCommand(debugDumpCmd)
}

func runDebugDump(cmd *cobra.Command, args []string) error {
	src, err := readInput(args)
	if err != nil {
		return err
	}

	c := circuit.New()
	if err := bcparse.Parse(c, src); err != nil {
		return fmt.Errorf("bc2cnf: %w", err)
	}

	c.RemoveUnderscoreNames()

	roots := c.Roots()

	if !getFlagBool(cmd, "raw") && !c.Unsat() {
		simplify.PushAll(c, roots)
		simplify.Run(c)
		share.Pass(c, roots)

		normalize.Pass(c, roots)
		roots = c.Roots()

		simplify.PushAll(c, roots)
		simplify.Run(c)
		share.Pass(c, roots)
		roots = c.Roots()
	}

	return diag.DumpJSON(os.Stdout, c, roots)
}
