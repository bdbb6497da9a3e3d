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

// ManualMapper places each logical qubit at a location determined by a fixed,
// user-supplied function.  It never inserts swaps, hence is only appropriate
// for devices with all-to-all connectivity (or circuits already laid out by
// hand).
type ManualMapper struct {
	next    circuit.Engine
	place   func(int) int
	mapping Mapping
	stats   *Statistics
}

// NewManualMapper constructs a manual mapper using the given placement
// function.  If no function is given, every qubit is placed at its own id.
func NewManualMapper(place func(int) int, next circuit.Engine) *ManualMapper {
	if place == nil {
		place = func(qubit int) int { return qubit }
	}
	//
	return &ManualMapper{next, place, make(Mapping), NewStatistics()}
}

// CurrentMapping returns a copy of the current mapping.
func (p *ManualMapper) CurrentMapping() Mapping {
	return p.mapping.Clone()
}

// SetCurrentMapping replaces the current mapping.
func (p *ManualMapper) SetCurrentMapping(mapping Mapping) error {
	if !mapping.IsInjective() {
		return NewConfigError("mapping %s is not injective", mapping)
	}
	//
	p.mapping = mapping.Clone()
	//
	return nil
}

// Statistics returns the (always empty) statistics of this mapper.
func (p *ManualMapper) Statistics() *Statistics {
	return p.stats
}

// Receive a list of commands, placing any qubits seen for the first time and
// forwarding each command with mapped ids.
func (p *ManualMapper) Receive(cmds []circuit.Command) error {
	for _, cmd := range cmds {
		for _, qubit := range cmd.AllQubits() {
			if !p.mapping.Contains(qubit) {
				p.mapping[qubit] = p.place(qubit)
			}
		}
		//
		ncmd, err := cmd.MapQubits(p.mapping.Slot)
		if err != nil {
			return err
		}
		//
		switch cmd.Gate.Kind {
		case circuit.ALLOCATE, circuit.DEALLOCATE, circuit.MEASURE:
			ncmd.Tags = append(ncmd.Tags, circuit.LogicalQubitIDTag{ID: cmd.Qubit()})
		}
		//
		if err := p.next.Receive([]circuit.Command{ncmd}); err != nil {
			return err
		}
	}
	//
	return nil
}
