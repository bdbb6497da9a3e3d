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

import "fmt"

// Tag is some opaque information attached to a command.  Tags must be
// comparable, since commands are searched for tags using equality.
type Tag interface {
	fmt.Stringer
}

// LogicalQubitIDTag records the logical id of a qubit on a command whose
// qubits have been rewritten into physical ids.
type LogicalQubitIDTag struct {
	ID int
}

func (t LogicalQubitIDTag) String() string {
	return fmt.Sprintf("LogicalQubitID(%d)", t.ID)
}

// LogicalQubitID returns the logical qubit id recorded on a command, or false
// if no such tag is present.
func LogicalQubitID(cmd Command) (int, bool) {
	for _, tag := range cmd.Tags {
		if t, ok := tag.(LogicalQubitIDTag); ok {
			return t.ID, true
		}
	}
	//
	return 0, false
}
