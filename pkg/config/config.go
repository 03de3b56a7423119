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

// Package config holds the translation options that the original
// translator kept as process-global flags. Threading them as an
// explicit value instead lets pkg/cmd build one Config per invocation
// (and lets tests exercise several configurations side by side without
// global state bleeding between them).
package config

// Config collects every option that changes how the translation pipeline
// behaves.
type Config struct {
	// NotLess, when true, elides NOT gates from the DIMACS variable
	// space entirely, substituting negated literals at every use site.
	NotLess bool
	// PolarityRestricted, when true, enables Plaisted-Greenbaum
	// polarity analysis and only emits the clause halves actually
	// needed.
	PolarityRestricted bool
	// PermuteSeed, when non-nil, requests a seeded pseudorandom
	// permutation of the final DIMACS variable numbering.
	PermuteSeed *uint64
	// PerformCOI, when true (the default), drops determined-and-
	// justified gates from variable numbering and clause generation.
	PerformCOI bool
	// PerformSimplifications, when true (the default), runs the
	// fixed-point local rewriter and structural sharing before
	// normalization.
	PerformSimplifications bool
	// PreserveAllSolutions, when true, disables sharing (and any other
	// rewrite that would merge distinct CNF variables into one), since
	// merging changes the number of satisfying assignments even though
	// it preserves satisfiability.
	PreserveAllSolutions bool
	// PrintInputGates, when true, prints a line listing every named
	// input gate before translation begins (a diagnostic, not part of
	// the CNF output).
	PrintInputGates bool
	// Verbose enables debug-level logging of stage timings and gate
	// counts.
	Verbose bool
}

// Default returns the translator's default configuration: simplify,
// share, restrict the cone of influence, and elide NOT gates from the
// variable space, matching the original translator's defaults. Polarity
// restriction and permutation are opt-in: both change the shape (not the
// meaning) of the output, and are useful mainly for debugging or for
// squeezing a smaller CNF out of a particular solver.
func Default() Config {
	return Config{
		NotLess:                true,
		PerformCOI:             true,
		PerformSimplifications: true,
	}
}
