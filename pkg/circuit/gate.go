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
	"strings"
)

// GateKind discriminates those gates which have a special meaning for the
// compiler (e.g. qubit allocation) from ordinary quantum gates.
type GateKind uint8

const (
	// GENERIC identifies an ordinary quantum gate (e.g. H, CX, Rz).
	GENERIC GateKind = iota
	// ALLOCATE identifies the allocation of a fresh qubit.
	ALLOCATE
	// DEALLOCATE identifies the release of a qubit.
	DEALLOCATE
	// FLUSH marks the end of a circuit (or a point where all pending
	// commands must be executed).
	FLUSH
	// MEASURE identifies a measurement in the computational basis.
	MEASURE
	// SWAP identifies the exchange of two qubits.
	SWAP
)

func (k GateKind) String() string {
	switch k {
	case ALLOCATE:
		return "Allocate"
	case DEALLOCATE:
		return "Deallocate"
	case FLUSH:
		return "Flush"
	case MEASURE:
		return "Measure"
	case SWAP:
		return "Swap"
	default:
		return "Generic"
	}
}

// Gate describes the operation performed by a command.  The compiler never
// interprets the name or parameters of a generic gate, it merely passes them
// along.
type Gate struct {
	Kind   GateKind
	Name   string
	Params []float64
}

// Allocate is the gate which allocates a qubit.
var Allocate = Gate{Kind: ALLOCATE, Name: "allocate"}

// Deallocate is the gate which releases a qubit.
var Deallocate = Gate{Kind: DEALLOCATE, Name: "deallocate"}

// Flush is the gate which forces all pending commands through the pipeline.
var Flush = Gate{Kind: FLUSH, Name: "flush"}

// Measure is the measurement gate.
var Measure = Gate{Kind: MEASURE, Name: "measure"}

// Swap is the gate which exchanges the state of two qubits.
var Swap = Gate{Kind: SWAP, Name: "swap"}

// NewGate constructs a generic gate with a given name and (optional)
// parameters.
func NewGate(name string, params ...float64) Gate {
	return Gate{GENERIC, name, params}
}

// Equals checks whether two gates are identical.
func (g Gate) Equals(other Gate) bool {
	if g.Kind != other.Kind || g.Name != other.Name || len(g.Params) != len(other.Params) {
		return false
	}
	//
	for i := range g.Params {
		if g.Params[i] != other.Params[i] {
			return false
		}
	}
	//
	return true
}

func (g Gate) String() string {
	if len(g.Params) == 0 {
		return g.Name
	}
	//
	params := make([]string, len(g.Params))
	//
	for i, p := range g.Params {
		params[i] = fmt.Sprintf("%g", p)
	}
	//
	return fmt.Sprintf("%s(%s)", g.Name, strings.Join(params, ","))
}
