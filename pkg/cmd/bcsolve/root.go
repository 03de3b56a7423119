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

// Package cmd implements bcsolve: a small driver that translates a
// constraint circuit to clauses in-process and hands them directly to
// an embedded SAT solver, rather than going through a separate DIMACS
// file and an external solver binary.
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "bcsolve [infile]",
	Short:   "Solve a Boolean constraint circuit with an embedded SAT solver",
	Version: "0.1.0",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runSolve,
}

// Execute runs the bcsolve root command, returning the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}

func init() {
	flags := rootCmd.Flags()

	flags.BoolP("verbose", "v", false, "print stage timings to stderr")
	flags.Bool("nosimplify", false, "disable the fixed-point simplifier and structural sharing")
	flags.Bool("nocoi", false, "disable cone-of-influence reduction")
	flags.Bool("nosolution", false, "report SAT/UNSAT only, without printing a satisfying assignment")
}

func getFlagBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		log.Debugf("getFlagBool(%s): %v", name, err)
		return false
	}

	return v
}
