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

// Package cmd implements the bc2cnf command-line translator: read a
// constraint circuit, simplify and normalize it, and print the
// resulting CNF (or one of the alternate ISCAS89/EDIMACS formats) in
// DIMACS form.
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "bc2cnf [infile] [outfile]",
	Short:   "Translate a Boolean constraint circuit into DIMACS CNF",
	Version: "0.1.0",
	Args:    cobra.MaximumNArgs(2),
	RunE:    runEncode,
}

// Execute runs the bc2cnf root command, returning the process exit code
// bc2cnf's main should use.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}

func init() {
	flags := rootCmd.Flags()

	flags.BoolP("verbose", "v", false, "print stage timings and gate counts to stderr")
	flags.Bool("notless", true, "elide NOT gates from the CNF variable space")
	flags.Bool("polarity", false, "restrict clauses to the polarity actually needed (Plaisted-Greenbaum)")
	flags.Uint64("permute", 0, "seed for a pseudorandom permutation of the variable numbering (0 disables)")
	flags.Bool("nocoi", false, "disable cone-of-influence reduction")
	flags.Bool("nosimplify", false, "disable the fixed-point simplifier and structural sharing")
	flags.Bool("all", false, "preserve all satisfying assignments (disables sharing)")
	flags.Bool("print-inputs", false, "print the circuit's named input gates before translating")
	flags.String("iscas89", "", "also write an ISCAS89 netlist to this path")
	flags.String("edimacs", "", "also write an EDIMACS listing to this path")
}

func getFlagBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		log.Debugf("getFlagBool(%s): %v", name, err)
		return false
	}

	return v
}

func getFlagUint64(cmd *cobra.Command, name string) uint64 {
	v, err := cmd.Flags().GetUint64(name)
	if err != nil {
		log.Debugf("getFlagUint64(%s): %v", name, err)
		return 0
	}

	return v
}

func getFlagString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		log.Debugf("getFlagString(%s): %v", name, err)
		return ""
	}

	return v
}
