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
package mapper

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Observer is notified whenever a mapper changes its mapping.  This allows
// statistics to be exported (e.g. as metrics) without the mapper knowing
// anything about it.
type Observer interface {
	// ObserveMapping is called with the number of swaps and their depth for
	// every mapping applied.
	ObserveMapping(swaps uint, depth uint)
}

// Statistics records how often a mapper changed its mapping, and how costly
// these changes were.  Statistics only ever grow.
type Statistics struct {
	// Number of times the mapping was changed.
	NumMappings uint
	// Key is the circuit depth of a swap network, value is the number of
	// mappings applied with that depth.
	DepthOfSwaps map[uint]uint
	// Key is the number of swaps in a network, value is the number of mappings
	// applied with that many swaps.
	SwapsPerMapping map[uint]uint
	//
	observers []Observer
}

// NewStatistics constructs an empty set of statistics.
func NewStatistics() *Statistics {
	return &Statistics{0, make(map[uint]uint), make(map[uint]uint), nil}
}

// AddObserver registers an observer to be notified of every recorded mapping.
func (p *Statistics) AddObserver(observer Observer) {
	p.observers = append(p.observers, observer)
}

// Record a swap network which has been applied.
func (p *Statistics) Record(swaps []Swap) {
	var (
		n     = uint(len(swaps))
		depth = SwapDepth(swaps)
	)
	//
	p.NumMappings++
	p.DepthOfSwaps[depth]++
	p.SwapsPerMapping[n]++
	//
	for _, o := range p.observers {
		o.ObserveMapping(n, depth)
	}
}

// TotalSwaps returns the total number of swaps across all recorded mappings.
func (p *Statistics) TotalSwaps() uint {
	var total uint
	//
	for n, count := range p.SwapsPerMapping {
		total += n * count
	}
	//
	return total
}

// MaxDepth returns the largest swap network depth recorded.
func (p *Statistics) MaxDepth() uint {
	var depth uint
	//
	for d := range p.DepthOfSwaps {
		depth = max(depth, d)
	}
	//
	return depth
}

func (p *Statistics) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("Number of mappings: %d\n", p.NumMappings))
	builder.WriteString("Depth of swaps:")
	writeHistogram(&builder, p.DepthOfSwaps)
	builder.WriteString("Number of swaps per mapping:")
	writeHistogram(&builder, p.SwapsPerMapping)
	//
	return builder.String()
}

func writeHistogram(builder *strings.Builder, histogram map[uint]uint) {
	builder.WriteString("\n")
	//
	for _, key := range slices.Sorted(maps.Keys(histogram)) {
		builder.WriteString(fmt.Sprintf("%6d: %d\n", key, histogram[key]))
	}
}
