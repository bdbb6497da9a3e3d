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
package util

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// PerfStats records the time and memory used by some task, such as mapping a
// circuit, which is reported at debug level once the task completes.
type PerfStats struct {
	// Starting time
	startTime time.Time
	// Starting total memory allocation
	startMem uint64
	// Starting number of gc events
	startGc uint32
}

// NewPerfStats begins recording a task.
func NewPerfStats() *PerfStats {
	var m runtime.MemStats
	//
	startTime := time.Now()
	//
	runtime.ReadMemStats(&m)
	//
	return &PerfStats{startTime, m.TotalAlloc, m.NumGC}
}

// Elapsed returns the time since recording began.
func (p *PerfStats) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

// Log reports the time and memory used since recording began.  Memory is
// reported in Mb, since mapping circuits rarely allocates more.
func (p *PerfStats) Log(prefix string) {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	alloc := (m.TotalAlloc - p.startMem) / 1024 / 1024
	gcs := m.NumGC - p.startGc
	//
	log.Debugf("%s took %0.3fs using %v Mb (%v GC events)", prefix, p.Elapsed().Seconds(), alloc, gcs)
}
