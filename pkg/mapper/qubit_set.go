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
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// QubitSet is a set of (non-negative) qubit ids, backed by a roaring bitmap.
// Iteration always visits qubits in ascending order.
type QubitSet struct {
	bits *roaring.Bitmap
}

// NewQubitSet constructs a set containing the given qubits.
func NewQubitSet(qubits ...int) *QubitSet {
	set := &QubitSet{roaring.New()}
	//
	for _, q := range qubits {
		set.Insert(q)
	}
	//
	return set
}

// Insert a qubit into this set.
func (p *QubitSet) Insert(qubit int) {
	p.bits.Add(toKey(qubit))
}

// Remove a qubit from this set (if it is present).
func (p *QubitSet) Remove(qubit int) {
	p.bits.Remove(toKey(qubit))
}

// Contains checks whether a given qubit is in this set.
func (p *QubitSet) Contains(qubit int) bool {
	return qubit >= 0 && p.bits.Contains(uint32(qubit))
}

// Len returns the number of qubits in this set.
func (p *QubitSet) Len() int {
	return int(p.bits.GetCardinality())
}

// IsEmpty checks whether this set contains no qubits.
func (p *QubitSet) IsEmpty() bool {
	return p.bits.IsEmpty()
}

// Clone creates a copy of this set which does not alias it.
func (p *QubitSet) Clone() *QubitSet {
	return &QubitSet{p.bits.Clone()}
}

// Union inserts every qubit of another set into this set.
func (p *QubitSet) Union(other *QubitSet) {
	p.bits.Or(other.bits)
}

// Equals checks whether two sets contain the same qubits.
func (p *QubitSet) Equals(other *QubitSet) bool {
	return p.bits.Equals(other.bits)
}

// All returns an iterator over the qubits of this set in ascending order.
func (p *QubitSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := p.bits.Iterator()
		//
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// Slice returns the qubits of this set in ascending order.
func (p *QubitSet) Slice() []int {
	qubits := make([]int, 0, p.Len())
	//
	for _, q := range p.bits.ToArray() {
		qubits = append(qubits, int(q))
	}
	//
	return qubits
}

func (p *QubitSet) String() string {
	return fmt.Sprintf("%v", p.Slice())
}

func toKey(qubit int) uint32 {
	if qubit < 0 {
		panic(fmt.Sprintf("invalid qubit id %d", qubit))
	}
	//
	return uint32(qubit)
}
