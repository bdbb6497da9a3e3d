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

import "fmt"

// Swap identifies two physical slots whose contents are to be exchanged.
type Swap [2]int

func (s Swap) String() string {
	return fmt.Sprintf("(%d,%d)", s[0], s[1])
}

// CostFunction assigns a cost to a swap network.  Mappers which have a choice
// between several networks pick the one of lowest cost.
type CostFunction func(swaps []Swap) uint

// SwapDepth returns the circuit depth required to execute a given sequence of
// swaps, assuming swaps on disjoint slots can be executed in parallel.
func SwapDepth(swaps []Swap) uint {
	var (
		depths = make(map[int]uint)
		depth  uint
	)
	//
	for _, swap := range swaps {
		d := max(depths[swap[0]], depths[swap[1]]) + 1
		depths[swap[0]] = d
		depths[swap[1]] = d
		depth = max(depth, d)
	}
	//
	return depth
}

// SwapCount is a cost function which simply counts the swaps.
func SwapCount(swaps []Swap) uint {
	return uint(len(swaps))
}

// ApplySwaps returns the mapping obtained by executing a sequence of swaps on
// a given mapping.  Slots which are not occupied by a logical qubit simply
// move around as holes.
func ApplySwaps(mapping Mapping, swaps []Swap) Mapping {
	occupant := mapping.Inverse()
	//
	for _, swap := range swaps {
		q0, ok0 := occupant[swap[0]]
		q1, ok1 := occupant[swap[1]]
		//
		delete(occupant, swap[0])
		delete(occupant, swap[1])
		//
		if ok0 {
			occupant[swap[1]] = q0
		}
		//
		if ok1 {
			occupant[swap[0]] = q1
		}
	}
	//
	return occupant.Inverse()
}
