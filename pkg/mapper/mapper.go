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
	"github.com/consensys/go-qmap/pkg/circuit"
)

// Mapper is a pipeline stage which translates commands over logical qubits
// into commands over physical qubits.  The mapping between them is exposed so
// that it can be inspected, or primed with an initial layout.
type Mapper interface {
	circuit.Engine
	// CurrentMapping returns a copy of the current mapping from logical qubit
	// ids to (backend) physical qubit ids.
	CurrentMapping() Mapping
	// SetCurrentMapping replaces the current mapping.  The mapping must be
	// injective and only use physical qubits of the device.
	SetCurrentMapping(mapping Mapping) error
	// Statistics returns the statistics gathered by this mapper.
	Statistics() *Statistics
}

// Topology describes the connectivity of a device, and how commands are
// placed onto it.  Physical qubits are identified by slots 0..Size(), which
// are translated into backend ids only when commands leave the mapper.
type Topology interface {
	// Size returns the number of physical slots.
	Size() int
	// Adjacent checks whether a two qubit gate can be applied directly
	// between two (distinct) slots.
	Adjacent(slot0 int, slot1 int) bool
	// BackendID translates a slot into the id used by the backend.
	BackendID(slot int) int
	// SlotOf translates a backend id back into a slot, returning false if
	// there is no such slot.
	SlotOf(backend int) (int, bool)
	// NewMapping computes a new mapping for the currently allocated qubits
	// and (some of) the qubits allocated by the pending commands, such that
	// as many of the pending commands as possible can be executed.  The
	// current mapping is used to minimise the cost of moving to the new
	// mapping.
	NewMapping(allocated *QubitSet, pending []circuit.Command, current Mapping) (Mapping, error)
	// Swaps returns a sequence of swaps (between adjacent slots) which
	// transforms one mapping into another.
	Swaps(old Mapping, new Mapping) ([]Swap, error)
}

// IsAvailable checks whether a command can be handled by a nearest-neighbour
// mapper, which is only the case for commands on at most two qubits.
func IsAvailable(cmd circuit.Command) bool {
	return cmd.NumQubits() <= 2
}

// IsAdjacent checks whether every slot touched by a swap network is adjacent
// in the given topology.
func IsAdjacent(topology Topology, swaps []Swap) bool {
	for _, swap := range swaps {
		if !topology.Adjacent(swap[0], swap[1]) {
			return false
		}
	}
	//
	return true
}
