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

// Engine represents a single stage in a compilation pipeline.  Each stage is
// invoked directly by its upstream neighbour and forwards (possibly
// rewritten) commands to its own downstream neighbour.
type Engine interface {
	// Receive a list of commands from the upstream stage.
	Receive(cmds []Command) error
}

// EngineFunc adapts an ordinary function into an Engine.
type EngineFunc func(cmds []Command) error

// Receive implementation for the Engine interface.
func (f EngineFunc) Receive(cmds []Command) error {
	return f(cmds)
}

// Recorder is a terminal pipeline stage which simply records every command it
// receives.
type Recorder struct {
	commands []Command
}

// Receive implementation for the Engine interface.
func (p *Recorder) Receive(cmds []Command) error {
	p.commands = append(p.commands, cmds...)
	return nil
}

// Commands returns the commands recorded so far.
func (p *Recorder) Commands() []Command {
	return p.commands
}

// Filter returns the recorded commands whose gate has the given kind.
func (p *Recorder) Filter(kind GateKind) []Command {
	var cmds []Command
	//
	for _, cmd := range p.commands {
		if cmd.Gate.Kind == kind {
			cmds = append(cmds, cmd)
		}
	}
	//
	return cmds
}

// Reset clears all recorded commands.
func (p *Recorder) Reset() {
	p.commands = nil
}
