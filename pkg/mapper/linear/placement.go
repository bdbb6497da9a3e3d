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
package linear

import (
	"slices"

	"github.com/consensys/go-qmap/pkg/circuit"
	"github.com/consensys/go-qmap/pkg/mapper"
)

// ReturnNewMapping builds a new mapping of qubits onto a chain of n slots, such
// that as many pending commands as possible (taken on a first-come
// first-served basis) can be executed.  When several mappings are possible,
// the current mapping is used to pick one which is cheap to reach.
func ReturnNewMapping(n int, cyclic bool, allocated *mapper.QubitSet, pending []circuit.Command,
	current mapper.Mapping) (mapper.Mapping, error) {
	segments, qubits, err := ComputeSegments(n, cyclic, allocated, pending)
	if err != nil {
		return nil, err
	}
	//
	return PlaceSegments(n, segments, qubits, current), nil
}

// PlaceSegments combines segments into a new mapping covering exactly the
// given allocated qubits.  Qubits not in any segment become singleton
// segments.  Each segment is placed in the region of the chain where most of
// its qubits already are, which helps when qubits fall into independent
// groups.  This is a greedy strategy, and not globally optimal.
func PlaceSegments(n int, segments []Segment, allocated *mapper.QubitSet, current mapper.Mapping) mapper.Mapping {
	var (
		remaining = slices.Clone(segments)
		unused    = n - allocated.Len()
		// Previous chain, where -1 marks an empty slot
		previous = make([]int, n)
		chain    = make([]int, n)
		grouped  = mapper.NewQubitSet()
		cursor   = 0
	)
	// Individual qubits become singleton segments
	for _, segment := range segments {
		for _, qubit := range segment {
			grouped.Insert(qubit)
		}
	}
	//
	for qubit := range allocated.All() {
		if !grouped.Contains(qubit) {
			remaining = append(remaining, Segment{qubit})
		}
	}
	//
	for i := range previous {
		previous[i] = -1
		chain[i] = -1
	}
	//
	for qubit, slot := range current {
		previous[slot] = qubit
	}
	//
	for len(remaining) > 0 {
		var (
			best        = 0
			bestPadding = n
			highest     = 0.0
		)
		//
		for index, segment := range remaining {
			for padding := 0; padding <= unused; padding++ {
				start := cursor + padding
				fraction := overlapFraction(previous, start, segment)
				//
				if (fraction == 1 && padding < bestPadding) || fraction > highest || highest == 0 {
					best, bestPadding, highest = index, padding, fraction
				}
			}
		}
		//
		segment := remaining[best]
		start := cursor + bestPadding
		//
		copy(chain[start:], segment)
		//
		remaining = slices.Delete(remaining, best, best+1)
		cursor += bestPadding + len(segment)
		unused -= bestPadding
	}
	//
	mapping := make(mapper.Mapping)
	//
	for slot, qubit := range chain {
		if qubit >= 0 {
			mapping[qubit] = slot
		}
	}
	//
	return mapping
}

// Determine what fraction of a segment overlaps with the previous chain, when
// placed at a given start.  Empty slots in the previous chain count towards
// the overlap.
func overlapFraction(previous []int, start int, segment Segment) float64 {
	var (
		end     = min(start+len(segment), len(previous))
		overlap = 0
	)
	//
	for i := start; i < end; i++ {
		if previous[i] < 0 || slices.Contains(segment, previous[i]) {
			overlap++
		}
	}
	//
	switch overlap {
	case 0:
		return 0
	case len(segment):
		return 1
	default:
		return float64(overlap) / float64(len(segment))
	}
}
