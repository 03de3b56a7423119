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

package circuit

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrUnsat is the sentinel wrapped by any error reporting that a
// circuit has been proven unsatisfiable by a forced conflict (as
// opposed to a malformed-input error). Callers that want to
// distinguish "the circuit says no" from "the input was bad" should
// check errors.Is(err, circuit.ErrUnsat) rather than string-matching.
var ErrUnsat = errors.New("circuit: unsatisfiable")

// Invariant panics with a message identifying the caller's file and
// line if cond is false. It exists for conditions that should be
// impossible given the rest of this package's own bookkeeping (an
// exhaustive type switch reaching its default case, an index that
// Install's own caller guaranteed was in range) - not for validating
// anything that originates outside the package, which should return
// an error instead.
func Invariant(cond bool, format string, args ...any) {
	if cond {
		return
	}

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "???", 0
	}

	panic(fmt.Sprintf("%s:%d: invariant violated: %s", file, line, fmt.Sprintf(format, args...)))
}
