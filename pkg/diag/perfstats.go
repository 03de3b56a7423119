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

// Package diag holds small diagnostic helpers shared by the translator's
// pipeline stages: timing/memory snapshots and gate-count summaries
// logged at debug level when -verbose is set.
package diag

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// PerfStats snapshots wall-clock time and heap usage at construction and
// reports the deltas via Log. Under -verbose the CLI takes one snapshot
// around the simplify+normalize stages and logs it under that label.
type PerfStats struct {
	startTime time.Time
	startMem  uint64
	startGc   uint32
}

// NewPerfStats takes a snapshot of the current time and memory stats.
func NewPerfStats() *PerfStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return &PerfStats{
		startTime: time.Now(),
		startMem:  ms.TotalAlloc,
		startGc:   ms.NumGC,
	}
}

// Log emits a debug-level line of the form "<prefix>: <elapsed>,
// <bytes> allocated, <n> GCs" measured since NewPerfStats was called.
func (p *PerfStats) Log(prefix string) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	elapsed := time.Since(p.startTime)
	allocated := ms.TotalAlloc - p.startMem
	gcs := ms.NumGC - p.startGc

	log.Debugf("%s: %s, %d bytes allocated, %d GCs", prefix, elapsed, allocated, gcs)
}
