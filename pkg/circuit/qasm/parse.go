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
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/consensys/go-qmap/pkg/circuit"
)

var (
	headerRegex  = regexp.MustCompile(`^OPENQASM\s+(\d+(?:\.\d+)?)\s*;?$`)
	includeRegex = regexp.MustCompile(`^include\s+"[^"]*"\s*;?$`)
	qregRegex    = regexp.MustCompile(`^qreg\s+(\w+)\s*\[(\d+)\]\s*;?$`)
	cregRegex    = regexp.MustCompile(`^creg\s+(\w+)\s*\[(\d+)\]\s*;?$`)
	measureRegex = regexp.MustCompile(`^measure\s+(\w+)\s*\[(\d+)\]\s*->\s*(\w+)\s*\[(\d+)\]\s*;?$`)
	barrierRegex = regexp.MustCompile(`^barrier\b`)
	gateRegex    = regexp.MustCompile(`^(\w+)\s*(?:\(([^)]*)\))?\s+([^;]+?)\s*;?$`)
	argRegex     = regexp.MustCompile(`^(\w+)\s*\[(\d+)\]$`)
)

// Number of leading control qubits for the controlled gates of qelib1.inc.
// These are parsed into commands whose gate omits the "c" prefix.
var controlled = map[string]int{
	"cx": 1, "cy": 1, "cz": 1, "ch": 1, "crx": 1, "cry": 1, "crz": 1,
	"cu1": 1, "cu3": 1, "cp": 1, "cswap": 1, "ccx": 2,
}

// Circuit is the result of parsing an OpenQASM program.  Qubits of all
// quantum registers are numbered consecutively in declaration order.
type Circuit struct {
	// Number of qubits declared.
	NumQubits int
	// Number of classical bits declared.
	NumBits int
	// Commands in program order, starting with an allocation of every qubit
	// and ending with their deallocation followed by a flush.
	Commands []circuit.Command
}

// ParseError identifies a line of input which could not be parsed.
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s (\"%s\")", e.Line, e.Msg, e.Text)
}

type register struct {
	offset int
	size   int
}

type parser struct {
	qregs map[string]register
	cregs map[string]register
	// Total qubits and bits declared so far.
	nqubits int
	nbits   int
	gates   []circuit.Command
}

// Parse reads an OpenQASM 2.0 program.  Only flat programs are supported,
// meaning gate definitions and classically controlled operations are
// rejected.  Barriers are ignored.
func Parse(reader io.Reader) (*Circuit, error) {
	var (
		scanner = bufio.NewScanner(reader)
		p       = &parser{qregs: make(map[string]register), cregs: make(map[string]register)}
		line    = 0
	)
	//
	for scanner.Scan() {
		line++
		//
		for _, stmt := range statements(scanner.Text()) {
			if err := p.parseStatement(stmt); err != nil {
				return nil, &ParseError{line, stmt, err.Error()}
			}
		}
	}
	//
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	//
	return p.circuit(), nil
}

// Split a line into its statements, after stripping any comment.
func statements(line string) []string {
	var stmts []string
	//
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	//
	for _, stmt := range strings.SplitAfter(line, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	//
	return stmts
}

func (p *parser) parseStatement(stmt string) error {
	switch {
	case headerRegex.MatchString(stmt):
		if version := headerRegex.FindStringSubmatch(stmt)[1]; !strings.HasPrefix(version, "2") {
			return fmt.Errorf("unsupported version %s", version)
		}
	case includeRegex.MatchString(stmt), barrierRegex.MatchString(stmt):
		return nil
	case qregRegex.MatchString(stmt):
		matches := qregRegex.FindStringSubmatch(stmt)
		return p.declare(p.qregs, &p.nqubits, matches[1], matches[2])
	case cregRegex.MatchString(stmt):
		matches := cregRegex.FindStringSubmatch(stmt)
		return p.declare(p.cregs, &p.nbits, matches[1], matches[2])
	case measureRegex.MatchString(stmt):
		matches := measureRegex.FindStringSubmatch(stmt)
		//
		qubit, err := lookup(p.qregs, matches[1], matches[2])
		if err != nil {
			return err
		} else if _, err = lookup(p.cregs, matches[3], matches[4]); err != nil {
			return err
		}
		//
		p.gates = append(p.gates, circuit.NewMeasure(qubit))
	case gateRegex.MatchString(stmt):
		return p.parseGate(gateRegex.FindStringSubmatch(stmt))
	default:
		return fmt.Errorf("unknown statement")
	}
	//
	return nil
}

func (p *parser) parseGate(matches []string) error {
	var (
		name   = strings.ToLower(matches[1])
		qubits []int
	)
	//
	switch name {
	case "gate", "opaque", "if", "reset":
		return fmt.Errorf("unsupported statement \"%s\"", name)
	}
	//
	params, err := parseParams(matches[2])
	if err != nil {
		return err
	}
	//
	for _, arg := range strings.Split(matches[3], ",") {
		args := argRegex.FindStringSubmatch(strings.TrimSpace(arg))
		if args == nil {
			return fmt.Errorf("invalid argument \"%s\"", strings.TrimSpace(arg))
		}
		//
		qubit, err := lookup(p.qregs, args[1], args[2])
		if err != nil {
			return err
		}
		//
		qubits = append(qubits, qubit)
	}
	//
	for i := range qubits {
		for j := i + 1; j < len(qubits); j++ {
			if qubits[i] == qubits[j] {
				return fmt.Errorf("qubit %d used twice", qubits[i])
			}
		}
	}
	//
	ncontrols := controlled[name]
	//
	if ncontrols >= len(qubits) {
		return fmt.Errorf("gate %s requires more than %d qubits", name, len(qubits))
	}
	//
	gate := circuit.NewGate(name[ncontrols:], params...)
	targets := make([][]int, 0, len(qubits)-ncontrols)
	//
	for _, q := range qubits[ncontrols:] {
		targets = append(targets, []int{q})
	}
	//
	var controls []int
	if ncontrols > 0 {
		controls = qubits[:ncontrols]
	}
	//
	p.gates = append(p.gates, circuit.NewCommand(gate, targets, controls))
	//
	return nil
}

func (p *parser) declare(regs map[string]register, total *int, name string, size string) error {
	n, err := strconv.Atoi(size)
	//
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid size of register %s", name)
	} else if _, ok := regs[name]; ok {
		return fmt.Errorf("register %s already declared", name)
	}
	//
	regs[name] = register{*total, n}
	*total += n
	//
	return nil
}

func lookup(regs map[string]register, name string, index string) (int, error) {
	reg, ok := regs[name]
	if !ok {
		return 0, fmt.Errorf("unknown register %s", name)
	}
	//
	i, err := strconv.Atoi(index)
	if err != nil || i >= reg.size {
		return 0, fmt.Errorf("index %s out of bounds for register %s[%d]", index, name, reg.size)
	}
	//
	return reg.offset + i, nil
}

func (p *parser) circuit() *Circuit {
	cmds := make([]circuit.Command, 0, len(p.gates)+2*p.nqubits+1)
	//
	for q := 0; q < p.nqubits; q++ {
		cmds = append(cmds, circuit.NewAllocate(q))
	}
	//
	cmds = append(cmds, p.gates...)
	//
	for q := 0; q < p.nqubits; q++ {
		cmds = append(cmds, circuit.NewDeallocate(q))
	}
	//
	cmds = append(cmds, circuit.NewFlush())
	//
	return &Circuit{p.nqubits, p.nbits, cmds}
}
