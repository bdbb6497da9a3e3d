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
	"github.com/consensys/go-qmap/pkg/mapper"
)

// FinalPositions determines, for each slot of a chain of n slots, the slot
// which its occupant should move to.  Qubits present in both mappings move to
// their new slot.  Every other slot is sent to one of the slots left unused,
// in ascending order.  The result is therefore a permutation of 0..n.
func FinalPositions(n int, old mapper.Mapping, new mapper.Mapping) []int {
	var (
		positions = make([]int, n)
		used      = make([]bool, n)
	)
	//
	for i := range positions {
		positions[i] = -1
	}
	//
	for qubit, slot := range old {
		if target, ok := new[qubit]; ok {
			positions[slot] = target
			used[target] = true
		}
	}
	// Fill holes with the smallest unused targets first
	next := 0
	//
	for i := range positions {
		if positions[i] >= 0 {
			continue
		}
		//
		for used[next] {
			next++
		}
		//
		positions[i] = next
		used[next] = true
	}
	//
	return positions
}

// OddEvenTranspositionSwaps returns the swaps required to move from one
// mapping to another on a chain of n slots, as determined by an odd-even
// transposition sort.  Each swap is between neighbouring slots (i, i+1), and
// the swaps are given in the order they should be applied.  See
// https://en.wikipedia.org/wiki/Odd-even_sort for more on the algorithm.
func OddEvenTranspositionSwaps(n int, old mapper.Mapping, new mapper.Mapping) []mapper.Swap {
	var (
		positions = FinalPositions(n, old, new)
		swaps     []mapper.Swap
		finished  = false
	)
	//
	for !finished {
		finished = true
		// odd phase
		for i := 1; i+1 < n; i += 2 {
			if positions[i] > positions[i+1] {
				swaps = append(swaps, mapper.Swap{i, i + 1})
				positions[i], positions[i+1] = positions[i+1], positions[i]
				finished = false
			}
		}
		// even phase
		for i := 0; i+1 < n; i += 2 {
			if positions[i] > positions[i+1] {
				swaps = append(swaps, mapper.Swap{i, i + 1})
				positions[i], positions[i+1] = positions[i+1], positions[i]
				finished = false
			}
		}
	}
	//
	return swaps
}
