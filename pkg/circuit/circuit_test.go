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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var x = NewGate("x")

func Test_Gate_01(t *testing.T) {
	assert.Equal(t, "x", x.String())
	assert.Equal(t, "rz(0.5)", NewGate("rz", 0.5).String())
	assert.Equal(t, "u2(1,-2)", NewGate("u2", 1, -2).String())
	assert.Equal(t, "Swap", Swap.Kind.String())
	assert.Equal(t, "Generic", x.Kind.String())
}

func Test_Gate_02(t *testing.T) {
	assert.True(t, NewGate("rz", 0.5).Equals(NewGate("rz", 0.5)))
	assert.False(t, NewGate("rz", 0.5).Equals(NewGate("rz", 0.25)))
	assert.False(t, NewGate("rz").Equals(NewGate("rz", 0.5)))
	assert.False(t, Measure.Equals(NewGate("measure")))
}

func Test_Command_01(t *testing.T) {
	cmd := NewControlled(x, 3, 1)
	//
	assert.Equal(t, []int{3, 1}, cmd.AllQubits())
	assert.Equal(t, 2, cmd.NumQubits())
	assert.Equal(t, 1, cmd.Qubit())
	assert.Equal(t, "C(x) | (Qureg[3], Qureg[1])", cmd.String())
}

func Test_Command_02(t *testing.T) {
	cmd := NewCommand(NewGate("rz", 0.5), [][]int{{0, 2}}, nil)
	//
	assert.Equal(t, "rz(0.5) | (Qureg[0,2])", cmd.String())
	assert.Equal(t, "allocate | (Qureg[4])", NewAllocate(4).String())
	assert.Equal(t, "flush | ()", NewFlush().String())
	assert.Equal(t, "CC(x) | (Qureg[0,1], Qureg[2])", NewCommand(x, [][]int{{2}}, []int{0, 1}).String())
}

func Test_Command_03(t *testing.T) {
	cmd := NewControlled(x, 0, 1)
	clone := cmd.Copy()
	clone.Qubits[0][0] = 5
	clone.Controls[0] = 6
	// Copies share nothing
	assert.Equal(t, []int{0, 1}, cmd.AllQubits())
	assert.Equal(t, []int{6, 5}, clone.AllQubits())
}

func Test_Command_04(t *testing.T) {
	cmd := NewControlled(x, 0, 1)
	//
	mapped, err := cmd.MapQubits(func(q int) (int, error) { return q + 10, nil })
	require.NoError(t, err)
	assert.Equal(t, []int{10, 11}, mapped.AllQubits())
	assert.Equal(t, []int{0, 1}, cmd.AllQubits())
	//
	_, err = cmd.MapQubits(func(q int) (int, error) { return 0, errors.New("unmapped") })
	assert.Error(t, err)
}

func Test_Tag_01(t *testing.T) {
	cmd := NewMeasure(2, LogicalQubitIDTag{ID: 7})
	//
	id, ok := LogicalQubitID(cmd)
	assert.True(t, ok)
	assert.Equal(t, 7, id)
	assert.True(t, cmd.HasTag(LogicalQubitIDTag{ID: 7}))
	assert.False(t, cmd.HasTag(LogicalQubitIDTag{ID: 2}))
	assert.Equal(t, "LogicalQubitID(7)", LogicalQubitIDTag{ID: 7}.String())
	//
	_, ok = LogicalQubitID(NewMeasure(2))
	assert.False(t, ok)
}

func Test_Recorder_01(t *testing.T) {
	var recorder Recorder
	//
	require.NoError(t, recorder.Receive([]Command{NewAllocate(0), NewSingle(x, 0)}))
	require.NoError(t, recorder.Receive([]Command{NewMeasure(0), NewDeallocate(0)}))
	//
	assert.Len(t, recorder.Commands(), 4)
	assert.Equal(t, []Command{NewMeasure(0)}, recorder.Filter(MEASURE))
	assert.Empty(t, recorder.Filter(SWAP))
	//
	recorder.Reset()
	assert.Empty(t, recorder.Commands())
}

func Test_Engine_01(t *testing.T) {
	var count int
	//
	engine := EngineFunc(func(cmds []Command) error {
		count += len(cmds)
		return nil
	})
	//
	require.NoError(t, engine.Receive([]Command{NewFlush(), NewFlush()}))
	assert.Equal(t, 2, count)
}
