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

// Mapping is a partial injective function from logical qubit ids to physical
// slots.  That is, distinct logical qubits are always mapped to distinct
// slots.
type Mapping map[int]int

// Clone returns a copy of this mapping.
func (m Mapping) Clone() Mapping {
	return maps.Clone(m)
}

// Slot returns the physical slot of a given logical qubit, or an error if the
// qubit is not mapped.
func (m Mapping) Slot(qubit int) (int, error) {
	if slot, ok := m[qubit]; ok {
		return slot, nil
	}
	//
	return 0, fmt.Errorf("%w: %d", ErrUnmappedQubit, qubit)
}

// Contains checks whether a given logical qubit is mapped.
func (m Mapping) Contains(qubit int) bool {
	_, ok := m[qubit]
	return ok
}

// Qubits returns the logical qubits of this mapping in ascending order.
func (m Mapping) Qubits() []int {
	return slices.Sorted(maps.Keys(m))
}

// Inverse returns the mapping from physical slots back to logical qubits.
// This assumes the mapping is injective.
func (m Mapping) Inverse() Mapping {
	inverse := make(Mapping, len(m))
	//
	for logical, slot := range m {
		inverse[slot] = logical
	}
	//
	return inverse
}

// IsInjective checks that no two logical qubits share the same slot.
func (m Mapping) IsInjective() bool {
	return len(m.Inverse()) == len(m)
}

// Check that this mapping is injective, and that every slot is within the
// range 0..n.
func (m Mapping) Check(n int) error {
	if !m.IsInjective() {
		return NewConfigError("mapping %s is not injective", m)
	}
	//
	for logical, slot := range m {
		if logical < 0 {
			return NewConfigError("invalid logical qubit %d", logical)
		} else if slot < 0 || slot >= n {
			return NewConfigError("qubit %d mapped outside device (slot %d of %d)", logical, slot, n)
		}
	}
	//
	return nil
}

func (m Mapping) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, q := range m.Qubits() {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(fmt.Sprintf("%d:%d", q, m[q]))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}
