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
	"slices"

	"github.com/consensys/go-qmap/pkg/circuit"
	log "github.com/sirupsen/logrus"
)

// DefaultStorage is the default number of commands buffered before a new
// mapping is computed.
const DefaultStorage = 1000

// Router maps a circuit onto a device of restricted connectivity, inserting
// swaps as necessary.  Commands are buffered and only mapped from time to
// time: either when the buffer is full, or when a flush is received.  A
// flush forces the buffer to be emptied before it is forwarded.  Observe
// that a router is not safe for concurrent use.
type Router struct {
	topology Topology
	// Downstream stage.
	next circuit.Engine
	// Number of commands to buffer before mapping.
	storage int
	// Commands not yet dispatched.
	buffer Buffer
	// Logical qubits for which an allocation has already been forwarded, but
	// which have not yet been deallocated.
	allocated *QubitSet
	// Current mapping from logical qubits to slots.
	slots Mapping
	//
	stats *Statistics
}

// NewRouter constructs a router for a given topology which forwards commands
// to a given engine.
func NewRouter(topology Topology, storage int, next circuit.Engine) *Router {
	if storage <= 0 {
		storage = DefaultStorage
	}
	//
	return &Router{topology, next, storage, Buffer{}, NewQubitSet(), make(Mapping), NewStatistics()}
}

// Topology returns the topology this router maps onto.
func (p *Router) Topology() Topology {
	return p.topology
}

// Storage returns the buffer capacity of this router.
func (p *Router) Storage() int {
	return p.storage
}

// Statistics returns the statistics gathered by this router.
func (p *Router) Statistics() *Statistics {
	return p.stats
}

// Pending returns the commands which are currently buffered.
func (p *Router) Pending() []circuit.Command {
	return p.buffer.Commands()
}

// Allocated returns the logical qubits whose allocation has been forwarded
// but which have not been deallocated.
func (p *Router) Allocated() *QubitSet {
	return p.allocated.Clone()
}

// CurrentMapping returns the current mapping from logical qubits to backend
// ids.
func (p *Router) CurrentMapping() Mapping {
	mapping := make(Mapping, len(p.slots))
	//
	for logical, slot := range p.slots {
		mapping[logical] = p.topology.BackendID(slot)
	}
	//
	return mapping
}

// SetCurrentMapping replaces the current mapping, where the given mapping maps
// logical qubits to backend ids.
func (p *Router) SetCurrentMapping(mapping Mapping) error {
	slots := make(Mapping, len(mapping))
	//
	for logical, backend := range mapping {
		slot, ok := p.topology.SlotOf(backend)
		if !ok {
			return NewConfigError("qubit %d mapped to unknown backend id %d", logical, backend)
		}
		//
		slots[logical] = slot
	}
	//
	if err := slots.Check(p.topology.Size()); err != nil {
		return err
	}
	//
	p.slots = slots
	//
	return nil
}

// Receive a list of commands.  Each command is buffered until the next mapping
// cycle, which happens when the buffer reaches its capacity or a flush is
// received.
func (p *Router) Receive(cmds []circuit.Command) error {
	for _, cmd := range cmds {
		if cmd.Gate.Kind == circuit.FLUSH {
			for p.buffer.Len() > 0 {
				if err := p.run(); err != nil {
					return err
				}
			}
			//
			if err := p.send(cmd); err != nil {
				return err
			}
		} else if n := cmd.NumQubits(); n == 0 || n > 2 {
			return NewCommandError(cmd)
		} else {
			p.buffer.Push(cmd)
		}
		// Storage is full: create a new mapping and send some gates away.
		if p.buffer.Len() >= p.storage {
			if err := p.run(); err != nil {
				return err
			}
		}
	}
	//
	return nil
}

// Run a single mapping cycle.  This computes a new mapping, moves all qubits
// into place and then sends every command which can be executed.  Physical
// qubits which hold no logical qubit are allocated for the duration of the
// swaps only.
func (p *Router) run() error {
	before := p.buffer.Len()
	//
	if err := p.sendPossibleCommands(); err != nil {
		return err
	} else if p.buffer.Len() == 0 {
		return nil
	}
	//
	mapping, err := p.topology.NewMapping(p.allocated, p.buffer.Commands(), p.slots)
	if err != nil {
		return err
	}
	//
	swaps, err := p.topology.Swaps(p.slots, mapping)
	if err != nil {
		return err
	}
	// First mapping requires no swaps
	if len(swaps) > 0 {
		if err := p.reconfigure(mapping, swaps); err != nil {
			return err
		}
	}
	//
	log.Debugf("mapping cycle with %d pending commands: %d swaps (depth %d)", before, len(swaps), SwapDepth(swaps))
	//
	p.slots = mapping
	//
	if err := p.sendPossibleCommands(); err != nil {
		return err
	}
	// Check that mapper actually made progress
	if p.buffer.Len() == before {
		err := &CapacityError{p.topology.Size(), before}
		log.Error(err.Error())
		//
		return err
	}
	//
	return nil
}

// Emit the physical allocations, swaps and deallocations which move from the
// current mapping to a new mapping.
func (p *Router) reconfigure(mapping Mapping, swaps []Swap) error {
	var (
		n    = p.topology.Size()
		cmds []circuit.Command
	)
	// Allocate all slots not used by an allocated qubit
	used := p.usedSlots(p.slots)
	//
	for slot := 0; slot < n; slot++ {
		if !used.Contains(slot) {
			cmds = append(cmds, circuit.NewAllocate(p.topology.BackendID(slot)))
		}
	}
	//
	for _, swap := range swaps {
		cmds = append(cmds, circuit.NewSwap(p.topology.BackendID(swap[0]), p.topology.BackendID(swap[1])))
	}
	// Deallocate all slots which were only needed for the swaps
	used = p.usedSlots(mapping)
	//
	for slot := 0; slot < n; slot++ {
		if !used.Contains(slot) {
			cmds = append(cmds, circuit.NewDeallocate(p.topology.BackendID(slot)))
		}
	}
	//
	p.stats.Record(swaps)
	//
	return p.next.Receive(cmds)
}

func (p *Router) usedSlots(mapping Mapping) *QubitSet {
	used := NewQubitSet()
	//
	for qubit := range p.allocated.All() {
		if slot, ok := mapping[qubit]; ok {
			used.Insert(slot)
		}
	}
	//
	return used
}

// Send every buffered command which can be executed under the current mapping.
// A command which cannot be executed blocks all of its qubits, such that no
// later command on those qubits overtakes it.
func (p *Router) sendPossibleCommands() error {
	var (
		cmds      = p.buffer.Commands()
		remaining []circuit.Command
		active    = p.allocated.Clone()
	)
	//
	for qubit := range p.slots {
		active.Insert(qubit)
	}
	//
	for i, cmd := range cmds {
		if active.IsEmpty() {
			remaining = append(remaining, cmds[i:]...)
			break
		}
		//
		switch cmd.Gate.Kind {
		case circuit.ALLOCATE:
			qubit := cmd.Qubit()
			//
			if slot, ok := p.slots[qubit]; ok {
				p.allocated.Insert(qubit)
				//
				backend := p.topology.BackendID(slot)
				if err := p.send(circuit.NewAllocate(backend, circuit.LogicalQubitIDTag{ID: qubit})); err != nil {
					return err
				}
			} else {
				remaining = append(remaining, cmd)
			}
		case circuit.DEALLOCATE:
			qubit := cmd.Qubit()
			//
			if active.Contains(qubit) {
				slot, err := p.slots.Slot(qubit)
				if err != nil {
					return err
				}
				//
				p.allocated.Remove(qubit)
				active.Remove(qubit)
				delete(p.slots, qubit)
				//
				backend := p.topology.BackendID(slot)
				if err := p.send(circuit.NewDeallocate(backend, circuit.LogicalQubitIDTag{ID: qubit})); err != nil {
					return err
				}
			} else {
				remaining = append(remaining, cmd)
			}
		default:
			if p.executable(cmd, active) {
				if err := p.sendMapped(cmd); err != nil {
					return err
				}
			} else {
				for _, qubit := range cmd.AllQubits() {
					active.Remove(qubit)
				}
				//
				remaining = append(remaining, cmd)
			}
		}
	}
	//
	p.buffer.Replace(remaining)
	//
	return nil
}

// Check whether all qubits of a command are active, and (for two qubit
// commands) whether they are adjacent.
func (p *Router) executable(cmd circuit.Command, active *QubitSet) bool {
	var slots []int
	//
	for _, qubit := range cmd.AllQubits() {
		if !active.Contains(qubit) {
			return false
		}
		//
		if slot := p.slots[qubit]; !slices.Contains(slots, slot) {
			slots = append(slots, slot)
		}
	}
	//
	if len(slots) == 2 {
		return p.topology.Adjacent(slots[0], slots[1])
	}
	//
	return true
}

// Send a command using the backend ids of the current mapping.  Measurements
// are additionally tagged with the logical id of their qubit.
func (p *Router) sendMapped(cmd circuit.Command) error {
	ncmd, err := cmd.MapQubits(func(qubit int) (int, error) {
		slot, err := p.slots.Slot(qubit)
		return p.topology.BackendID(slot), err
	})
	//
	if err != nil {
		return err
	} else if cmd.Gate.Kind == circuit.MEASURE {
		ncmd.Tags = append(ncmd.Tags, circuit.LogicalQubitIDTag{ID: cmd.Qubit()})
	}
	//
	return p.send(ncmd)
}

func (p *Router) send(cmds ...circuit.Command) error {
	return p.next.Receive(cmds)
}
