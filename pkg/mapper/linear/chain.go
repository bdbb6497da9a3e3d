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
	"github.com/consensys/go-qmap/pkg/circuit"
	"github.com/consensys/go-qmap/pkg/mapper"
)

// Chain is a linear chain of physical qubits with nearest neighbour
// interactions.  When cyclic, the two ends of the chain are also neighbours.
// Backend ids coincide with slots.
type Chain struct {
	nqubits int
	cyclic  bool
}

// NewChain constructs a chain of a given number of qubits.
func NewChain(nqubits int, cyclic bool) (*Chain, error) {
	if nqubits <= 0 {
		return nil, mapper.NewConfigError("chain requires at least one qubit (was %d)", nqubits)
	}
	//
	return &Chain{nqubits, cyclic}, nil
}

// NewMapper constructs a router which maps circuits onto a chain of a given
// number of qubits.  A non-positive storage selects the default.
func NewMapper(nqubits int, cyclic bool, storage int, next circuit.Engine) (*mapper.Router, error) {
	chain, err := NewChain(nqubits, cyclic)
	if err != nil {
		return nil, err
	}
	//
	return mapper.NewRouter(chain, storage, next), nil
}

// Cyclic indicates whether both ends of this chain are connected.
func (p *Chain) Cyclic() bool {
	return p.cyclic
}

// Size returns the number of qubits in this chain.
func (p *Chain) Size() int {
	return p.nqubits
}

// Adjacent checks whether two slots are neighbours on this chain.
func (p *Chain) Adjacent(slot0 int, slot1 int) bool {
	diff := slot0 - slot1
	//
	if diff < 0 {
		diff = -diff
	}
	//
	return diff == 1 || (p.cyclic && diff == p.nqubits-1)
}

// BackendID is the identity on a chain.
func (p *Chain) BackendID(slot int) int {
	return slot
}

// SlotOf is the identity on a chain, provided the id is in range.
func (p *Chain) SlotOf(backend int) (int, bool) {
	return backend, backend >= 0 && backend < p.nqubits
}

// NewMapping implementation for the mapper.Topology interface.
func (p *Chain) NewMapping(allocated *mapper.QubitSet, pending []circuit.Command,
	current mapper.Mapping) (mapper.Mapping, error) {
	return ReturnNewMapping(p.nqubits, p.cyclic, allocated, pending, current)
}

// Swaps implementation for the mapper.Topology interface.
func (p *Chain) Swaps(old mapper.Mapping, new mapper.Mapping) ([]mapper.Swap, error) {
	return OddEvenTranspositionSwaps(p.nqubits, old, new), nil
}
