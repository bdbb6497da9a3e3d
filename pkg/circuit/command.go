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
package circuit

import (
	"fmt"
	"slices"
	"strings"
)

// Command is a gate applied to one or more qubit registers, optionally
// controlled by zero or more control qubits.  A command additionally carries
// an arbitrary list of tags which are passed through the pipeline untouched.
type Command struct {
	Gate Gate
	// Target registers of this gate.
	Qubits [][]int
	// Control qubits of this gate.
	Controls []int
	// Tags attached to this command.
	Tags []Tag
}

// NewCommand constructs a new command.
func NewCommand(gate Gate, qubits [][]int, controls []int, tags ...Tag) Command {
	return Command{gate, qubits, controls, tags}
}

// NewAllocate constructs a command allocating a given qubit.
func NewAllocate(qubit int, tags ...Tag) Command {
	return Command{Allocate, [][]int{{qubit}}, nil, tags}
}

// NewDeallocate constructs a command releasing a given qubit.
func NewDeallocate(qubit int, tags ...Tag) Command {
	return Command{Deallocate, [][]int{{qubit}}, nil, tags}
}

// NewFlush constructs a flush command.
func NewFlush() Command {
	return Command{Flush, nil, nil, nil}
}

// NewSwap constructs a command exchanging two qubits.
func NewSwap(qubit0, qubit1 int) Command {
	return Command{Swap, [][]int{{qubit0}, {qubit1}}, nil, nil}
}

// NewMeasure constructs a measurement of a given qubit.
func NewMeasure(qubit int, tags ...Tag) Command {
	return Command{Measure, [][]int{{qubit}}, nil, tags}
}

// NewSingle constructs a generic single qubit gate.
func NewSingle(gate Gate, qubit int) Command {
	return Command{gate, [][]int{{qubit}}, nil, nil}
}

// NewControlled constructs a generic gate on a target qubit controlled by a
// given control qubit (e.g. CX).
func NewControlled(gate Gate, control int, target int) Command {
	return Command{gate, [][]int{{target}}, []int{control}, nil}
}

// AllQubits returns all qubits touched by this command, control qubits
// first followed by the target registers in order.
func (c Command) AllQubits() []int {
	qubits := slices.Clone(c.Controls)
	//
	for _, reg := range c.Qubits {
		qubits = append(qubits, reg...)
	}
	//
	return qubits
}

// NumQubits returns the total number of qubits touched by this command.
func (c Command) NumQubits() int {
	n := len(c.Controls)
	//
	for _, reg := range c.Qubits {
		n += len(reg)
	}
	//
	return n
}

// Qubit returns the first target qubit of this command.  This is useful for
// commands (e.g. allocate or measure) which act on exactly one qubit.
func (c Command) Qubit() int {
	return c.Qubits[0][0]
}

// Copy creates a deep copy of this command, such that rewriting its qubits
// does not affect the original.
func (c Command) Copy() Command {
	qubits := make([][]int, len(c.Qubits))
	//
	for i, reg := range c.Qubits {
		qubits[i] = slices.Clone(reg)
	}
	//
	return Command{c.Gate, qubits, slices.Clone(c.Controls), slices.Clone(c.Tags)}
}

// MapQubits returns a copy of this command where every qubit has been
// translated using the given function.
func (c Command) MapQubits(fn func(int) (int, error)) (Command, error) {
	var (
		ncmd = c.Copy()
		err  error
	)
	//
	for _, reg := range ncmd.Qubits {
		for i := range reg {
			if reg[i], err = fn(reg[i]); err != nil {
				return ncmd, err
			}
		}
	}
	//
	for i := range ncmd.Controls {
		if ncmd.Controls[i], err = fn(ncmd.Controls[i]); err != nil {
			return ncmd, err
		}
	}
	//
	return ncmd, nil
}

// HasTag checks whether this command carries a tag equal to the given tag.
func (c Command) HasTag(tag Tag) bool {
	return slices.Contains(c.Tags, tag)
}

func (c Command) String() string {
	var builder strings.Builder
	//
	if len(c.Controls) > 0 {
		builder.WriteString(strings.Repeat("C", len(c.Controls)))
		builder.WriteString("(")
		builder.WriteString(c.Gate.String())
		builder.WriteString(")")
	} else {
		builder.WriteString(c.Gate.String())
	}
	//
	builder.WriteString(" | (")
	//
	regs := make([]string, 0, len(c.Qubits)+1)
	//
	if len(c.Controls) > 0 {
		regs = append(regs, qubitsString(c.Controls))
	}
	//
	for _, reg := range c.Qubits {
		regs = append(regs, qubitsString(reg))
	}
	//
	builder.WriteString(strings.Join(regs, ", "))
	builder.WriteString(")")
	//
	return builder.String()
}

func qubitsString(qubits []int) string {
	ids := make([]string, len(qubits))
	//
	for i, q := range qubits {
		ids[i] = fmt.Sprintf("%d", q)
	}
	//
	return fmt.Sprintf("Qureg[%s]", strings.Join(ids, ","))
}
