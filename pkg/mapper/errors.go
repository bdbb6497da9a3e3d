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
	"errors"
	"fmt"

	"github.com/consensys/go-qmap/pkg/circuit"
)

var (
	// ErrConfig is matched by every configuration error.
	ErrConfig = errors.New("invalid mapper configuration")
	// ErrCapacity is matched by every capacity error.
	ErrCapacity = errors.New("insufficient physical qubits")
	// ErrInvalidCommand is matched by every command error.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrUnmappedQubit is returned when looking up the physical slot of a
	// logical qubit which is not part of the current mapping.
	ErrUnmappedQubit = errors.New("qubit not mapped")
)

// ConfigError is reported when a mapper is constructed (or primed) with an
// inconsistent configuration.  For example, a backend id table which is not a
// bijection over the physical slots.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Is allows errors.Is(err, ErrConfig) to match.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// NewConfigError constructs a configuration error from a format string.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{fmt.Sprintf(format, args...)}
}

// CapacityError is reported when a mapping cycle fails to make progress.  This
// happens when the circuit requires more simultaneously allocated qubits than
// the device provides.
type CapacityError struct {
	// Number of physical qubits available.
	Qubits int
	// Number of commands which remained buffered.
	Pending int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("mapper is potentially in an infinite loop (%d commands pending on %d qubits); "+
		"it is likely that the algorithm requires too many qubits, increase the number of qubits for this mapper",
		e.Pending, e.Qubits)
}

// Is allows errors.Is(err, ErrCapacity) to match.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}

// CommandError is reported for a command the mapper cannot handle (i.e. one
// acting on zero or more than two qubits).
type CommandError struct {
	Command string
	Qubits  int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("invalid command (number of qubits %d): %s", e.Qubits, e.Command)
}

// Is allows errors.Is(err, ErrInvalidCommand) to match.
func (e *CommandError) Is(target error) bool {
	return target == ErrInvalidCommand
}

// NewCommandError constructs an error for the given command.
func NewCommandError(cmd circuit.Command) *CommandError {
	return &CommandError{cmd.String(), cmd.NumQubits()}
}
