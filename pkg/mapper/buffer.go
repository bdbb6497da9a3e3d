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

import "github.com/consensys/go-qmap/pkg/circuit"

// Buffer is an ordered queue of commands which have not yet been dispatched.
type Buffer struct {
	commands []circuit.Command
}

// Push a command onto the end of this buffer.
func (p *Buffer) Push(cmd circuit.Command) {
	p.commands = append(p.commands, cmd)
}

// Len returns the number of buffered commands.
func (p *Buffer) Len() int {
	return len(p.commands)
}

// Commands returns the buffered commands in order.
func (p *Buffer) Commands() []circuit.Command {
	return p.commands
}

// Replace the contents of this buffer.
func (p *Buffer) Replace(cmds []circuit.Command) {
	p.commands = cmds
}
