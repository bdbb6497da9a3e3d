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
package qasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/consensys/go-qmap/pkg/circuit"
)

// Writer is an engine which renders the commands it receives as an OpenQASM
// 2.0 program over a single register of physical qubits.  Allocations,
// deallocations and flushes have no counterpart in OpenQASM and are dropped.
// Measurements write into the classical bit given by the logical qubit id of
// the measured qubit, if known.
type Writer struct {
	out     io.Writer
	nqubits int
	nbits   int
	started bool
}

// NewWriter constructs a writer for a device with a given number of physical
// qubits and a given number of classical bits.
func NewWriter(out io.Writer, nqubits int, nbits int) *Writer {
	return &Writer{out, nqubits, nbits, false}
}

// Receive implementation for the circuit.Engine interface.
func (p *Writer) Receive(cmds []circuit.Command) error {
	var builder strings.Builder
	//
	if !p.started {
		p.started = true
		//
		builder.WriteString(Header(p.nqubits, p.nbits))
	}
	//
	for _, cmd := range cmds {
		line, err := p.format(cmd)
		if err != nil {
			return err
		} else if line != "" {
			builder.WriteString(line)
			builder.WriteString("\n")
		}
	}
	//
	_, err := io.WriteString(p.out, builder.String())
	//
	return err
}

// Header returns the preamble of a program declaring a given number of qubits
// and classical bits.
func Header(nqubits int, nbits int) string {
	var builder strings.Builder
	//
	builder.WriteString("OPENQASM 2.0;\n")
	builder.WriteString("include \"qelib1.inc\";\n")
	builder.WriteString(fmt.Sprintf("qreg q[%d];\n", nqubits))
	//
	if nbits > 0 {
		builder.WriteString(fmt.Sprintf("creg c[%d];\n", nbits))
	}
	//
	return builder.String()
}

func (p *Writer) format(cmd circuit.Command) (string, error) {
	switch cmd.Gate.Kind {
	case circuit.ALLOCATE, circuit.DEALLOCATE, circuit.FLUSH:
		return "", nil
	case circuit.MEASURE:
		bit, ok := circuit.LogicalQubitID(cmd)
		if !ok {
			bit = cmd.Qubit()
		}
		//
		if bit >= p.nbits {
			return "", fmt.Errorf("measurement into bit %d exceeds %d classical bits", bit, p.nbits)
		}
		//
		return fmt.Sprintf("measure q[%d] -> c[%d];", cmd.Qubit(), bit), nil
	}
	//
	return FormatCommand(cmd), nil
}

// FormatCommand renders a single gate as an OpenQASM statement.  Each control
// qubit contributes a "c" prefix to the gate name, as for cx or ccx.
func FormatCommand(cmd circuit.Command) string {
	var (
		builder strings.Builder
		qubits  = cmd.AllQubits()
		args    = make([]string, len(qubits))
	)
	//
	builder.WriteString(strings.Repeat("c", len(cmd.Controls)))
	builder.WriteString(cmd.Gate.Name)
	//
	if len(cmd.Gate.Params) > 0 {
		params := make([]string, len(cmd.Gate.Params))
		//
		for i, param := range cmd.Gate.Params {
			params[i] = FormatParam(param)
		}
		//
		builder.WriteString(fmt.Sprintf("(%s)", strings.Join(params, ",")))
	}
	//
	for i, q := range qubits {
		args[i] = fmt.Sprintf("q[%d]", q)
	}
	//
	builder.WriteString(" ")
	builder.WriteString(strings.Join(args, ","))
	builder.WriteString(";")
	//
	return builder.String()
}
