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

// Segment is a sequence of logical qubits which should be placed next to each
// other (in order) on the chain.
type Segment []int

// Left returns the qubit at the left end of this segment.
func (s Segment) Left() int {
	return s[0]
}

// Right returns the qubit at the right end of this segment.
func (s Segment) Right() int {
	return s[len(s)-1]
}

// Reverse returns a reversed copy of this segment.
func (s Segment) Reverse() Segment {
	r := slices.Clone(s)
	slices.Reverse(r)
	//
	return r
}

// segmentBuilder groups logical qubits into segments, such that pending two
// qubit gates become executable when each segment is placed contiguously on
// the chain.  Segments are held in an arena and addressed by index.  Merging
// two segments leaves a tombstone (nil) behind in the arena, so indices
// remain stable for the duration of a cycle.
type segmentBuilder struct {
	nqubits int
	cyclic  bool
	// Qubits which can still be grouped in this cycle.
	active *mapper.QubitSet
	// Arena of segments.
	segments []Segment
	// Arena index of the segment holding each (grouped) qubit.
	segmentOf map[int]int
	// Qubits each qubit is already adjacent to.
	neighbours map[int][]int
}

func newSegmentBuilder(nqubits int, cyclic bool, active *mapper.QubitSet) *segmentBuilder {
	neighbours := make(map[int][]int)
	//
	for qubit := range active.All() {
		neighbours[qubit] = nil
	}
	//
	return &segmentBuilder{nqubits, cyclic, active, nil, make(map[int]int), neighbours}
}

// Segments returns the (non-empty) segments constructed so far, in arena
// order.
func (p *segmentBuilder) Segments() []Segment {
	var segments []Segment
	//
	for _, s := range p.segments {
		if s != nil {
			segments = append(segments, s)
		}
	}
	//
	return segments
}

// ComputeSegments goes through the pending commands and, on a first-come
// first-served basis, groups qubits into segments such that the gates between
// them can be executed.  This returns the segments together with the set of
// qubits which must be present in the new mapping.  Qubits deallocated by a
// pending command stay allocated for this cycle, as their slot cannot be
// reused before the next swaps.
func ComputeSegments(nqubits int, cyclic bool, allocated *mapper.QubitSet,
	pending []circuit.Command) ([]Segment, *mapper.QubitSet, error) {
	var (
		allocatedQubits = allocated.Clone()
		builder         = newSegmentBuilder(nqubits, cyclic, allocated.Clone())
	)
	//
	for _, cmd := range pending {
		if allocatedQubits.Len() == nqubits && builder.active.IsEmpty() {
			break
		}
		//
		qubits := cmd.AllQubits()
		//
		switch {
		case len(qubits) == 0 || len(qubits) > 2:
			return nil, nil, mapper.NewCommandError(cmd)
		case cmd.Gate.Kind == circuit.ALLOCATE:
			if allocatedQubits.Len() < nqubits {
				allocatedQubits.Insert(qubits[0])
				builder.activate(qubits[0])
			}
		case cmd.Gate.Kind == circuit.DEALLOCATE:
			builder.active.Remove(qubits[0])
		case len(qubits) == 1:
			continue
		default:
			builder.processTwoQubitGate(qubits[0], qubits[1])
		}
	}
	//
	return builder.Segments(), allocatedQubits, nil
}

func (p *segmentBuilder) activate(qubit int) {
	p.active.Insert(qubit)
	p.neighbours[qubit] = nil
}

// Process a two qubit gate.  This either updates the segments such that the
// gate becomes possible, or removes both qubits from the active set when it
// cannot be made possible in this cycle.
func (p *segmentBuilder) processTwoQubitGate(qubit0, qubit1 int) {
	switch {
	case slices.Contains(p.neighbours[qubit1], qubit0):
		// already connected
		return
	case !p.active.Contains(qubit0) || !p.active.Contains(qubit1):
		p.deactivate(qubit0, qubit1)
		return
	case len(p.neighbours[qubit0]) > 1 || len(p.neighbours[qubit1]) > 1:
		// at least one qubit is inside a segment
		p.deactivate(qubit0, qubit1)
		return
	}
	// Both qubits are active and either not yet in a segment, or at the end of
	// one.
	index0, inSegment0 := p.segmentOf[qubit0]
	index1, inSegment1 := p.segmentOf[qubit1]
	//
	switch {
	case !inSegment0 && !inSegment1:
		p.segments = append(p.segments, Segment{qubit0, qubit1})
		p.segmentOf[qubit0] = len(p.segments) - 1
		p.segmentOf[qubit1] = len(p.segments) - 1
		p.connect(qubit0, qubit1, len(p.segments)-1)
	case inSegment0 && inSegment1 && index0 == index1:
		// Connecting both ends of a segment is not possible.  When the chain
		// is cyclic, and the segment spans it, both ends are already
		// neighbours and we would not get here.
		p.deactivate(qubit0, qubit1)
	case !inSegment0:
		p.splice(qubit0, qubit1, index1)
	case !inSegment1:
		p.splice(qubit1, qubit0, index0)
	default:
		p.combine(qubit0, index0, qubit1, index1)
	}
}

// Splice a free qubit onto whichever end of a segment the other qubit is on.
func (p *segmentBuilder) splice(free int, end int, index int) {
	segment := p.segments[index]
	//
	if segment.Left() == end {
		p.segments[index] = append(Segment{free}, segment...)
	} else {
		p.segments[index] = append(segment, free)
	}
	//
	p.segmentOf[free] = index
	p.connect(free, end, index)
}

// Combine two different segments, such that qubit0 (at one end of its
// segment) meets qubit1 (at one end of its segment).
func (p *segmentBuilder) combine(qubit0 int, index0 int, qubit1 int, index1 int) {
	var (
		seg0     = p.segments[index0]
		seg1     = p.segments[index1]
		left0    = seg0.Left() == qubit0
		left1    = seg1.Left() == qubit1
		combined Segment
		target   = index0
		absorbed = index1
	)
	//
	switch {
	case !left0 && left1:
		combined = append(slices.Clone(seg0), seg1...)
	case !left0 && !left1:
		combined = append(slices.Clone(seg0), seg1.Reverse()...)
	case left0 && left1:
		combined = append(seg0.Reverse(), seg1...)
	default:
		combined = append(slices.Clone(seg1), seg0...)
		target, absorbed = index1, index0
	}
	//
	p.segments[target] = combined
	p.segments[absorbed] = nil
	//
	for _, qubit := range combined {
		p.segmentOf[qubit] = target
	}
	//
	p.connect(qubit0, qubit1, target)
}

// Record two qubits as being neighbours.  If the chain is cyclic and the
// segment now spans it, then both ends of the segment are neighbours as well.
func (p *segmentBuilder) connect(qubit0 int, qubit1 int, index int) {
	p.addNeighbour(qubit0, qubit1)
	p.addNeighbour(qubit1, qubit0)
	//
	if segment := p.segments[index]; p.cyclic && len(segment) == p.nqubits {
		p.addNeighbour(segment.Left(), segment.Right())
		p.addNeighbour(segment.Right(), segment.Left())
	}
}

func (p *segmentBuilder) addNeighbour(qubit int, neighbour int) {
	if !slices.Contains(p.neighbours[qubit], neighbour) {
		p.neighbours[qubit] = append(p.neighbours[qubit], neighbour)
	}
}

func (p *segmentBuilder) deactivate(qubits ...int) {
	for _, q := range qubits {
		p.active.Remove(q)
	}
}
