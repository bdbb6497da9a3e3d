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
	"testing"

	"github.com/consensys/go-qmap/pkg/circuit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SwapDepth_01(t *testing.T) {
	assert.Equal(t, uint(0), SwapDepth(nil))
}

func Test_SwapDepth_02(t *testing.T) {
	swaps := []Swap{{0, 1}, {0, 1}, {1, 2}}
	assert.Equal(t, uint(3), SwapDepth(swaps))
	assert.Equal(t, uint(4), SwapDepth(append(swaps, Swap{2, 3})))
}

func Test_SwapDepth_03(t *testing.T) {
	// Disjoint swaps run in parallel
	assert.Equal(t, uint(1), SwapDepth([]Swap{{0, 1}, {2, 3}, {4, 5}}))
	assert.Equal(t, uint(3), SwapCount([]Swap{{0, 1}, {2, 3}, {4, 5}}))
}

func Test_ApplySwaps_01(t *testing.T) {
	mapping := Mapping{0: 0, 1: 1}
	assert.Equal(t, Mapping{0: 1, 1: 0}, ApplySwaps(mapping, []Swap{{0, 1}}))
	// Input not modified
	assert.Equal(t, Mapping{0: 0, 1: 1}, mapping)
}

func Test_ApplySwaps_02(t *testing.T) {
	// Qubits move through empty slots
	assert.Equal(t, Mapping{5: 2}, ApplySwaps(Mapping{5: 0}, []Swap{{0, 1}, {1, 2}}))
	assert.Equal(t, Mapping{5: 0}, ApplySwaps(Mapping{5: 0}, []Swap{{1, 2}}))
}

func Test_Mapping_01(t *testing.T) {
	mapping := Mapping{3: 1, 0: 2}
	assert.Equal(t, []int{0, 3}, mapping.Qubits())
	assert.Equal(t, Mapping{1: 3, 2: 0}, mapping.Inverse())
	assert.Equal(t, "{0:2, 3:1}", mapping.String())
	assert.True(t, mapping.IsInjective())
	assert.NoError(t, mapping.Check(3))
}

func Test_Mapping_02(t *testing.T) {
	slot, err := Mapping{3: 1}.Slot(3)
	require.NoError(t, err)
	assert.Equal(t, 1, slot)
	//
	_, err = Mapping{3: 1}.Slot(1)
	assert.True(t, errors.Is(err, ErrUnmappedQubit))
}

func Test_Mapping_03(t *testing.T) {
	assert.False(t, Mapping{0: 1, 1: 1}.IsInjective())
	assert.True(t, errors.Is(Mapping{0: 1, 1: 1}.Check(3), ErrConfig))
	assert.True(t, errors.Is(Mapping{0: 3}.Check(3), ErrConfig))
	assert.True(t, errors.Is(Mapping{0: -1}.Check(3), ErrConfig))
	assert.True(t, errors.Is(Mapping{-1: 0}.Check(3), ErrConfig))
}

func Test_Mapping_04(t *testing.T) {
	mapping := Mapping{0: 1}
	clone := mapping.Clone()
	clone[0] = 2
	assert.Equal(t, 1, mapping[0])
}

func Test_QubitSet_01(t *testing.T) {
	set := NewQubitSet(5, 1, 3)
	assert.Equal(t, []int{1, 3, 5}, set.Slice())
	assert.Equal(t, 3, set.Len())
	assert.True(t, set.Contains(3))
	assert.False(t, set.Contains(2))
	assert.False(t, set.Contains(-1))
	assert.Equal(t, "[1 3 5]", set.String())
}

func Test_QubitSet_02(t *testing.T) {
	set := NewQubitSet(1, 2)
	clone := set.Clone()
	clone.Remove(1)
	clone.Insert(7)
	assert.Equal(t, []int{1, 2}, set.Slice())
	assert.Equal(t, []int{2, 7}, clone.Slice())
	//
	set.Union(clone)
	assert.True(t, set.Equals(NewQubitSet(1, 2, 7)))
}

func Test_QubitSet_03(t *testing.T) {
	var qubits []int
	//
	for q := range NewQubitSet(9, 4, 0).All() {
		qubits = append(qubits, q)
	}
	//
	assert.Equal(t, []int{0, 4, 9}, qubits)
	assert.True(t, NewQubitSet().IsEmpty())
	assert.Panics(t, func() { NewQubitSet(-1) })
}

func Test_Statistics_01(t *testing.T) {
	var (
		stats    = NewStatistics()
		observer = &recordingObserver{}
	)
	//
	stats.AddObserver(observer)
	stats.Record([]Swap{{0, 1}, {2, 3}})
	stats.Record([]Swap{{0, 1}, {1, 2}})
	stats.Record([]Swap{{4, 5}})
	//
	assert.Equal(t, uint(3), stats.NumMappings)
	assert.Equal(t, map[uint]uint{1: 2, 2: 1}, stats.DepthOfSwaps)
	assert.Equal(t, map[uint]uint{1: 1, 2: 2}, stats.SwapsPerMapping)
	assert.Equal(t, uint(5), stats.TotalSwaps())
	assert.Equal(t, uint(2), stats.MaxDepth())
	assert.Equal(t, [][2]uint{{2, 1}, {2, 2}, {1, 1}}, observer.observed)
	assert.Contains(t, stats.String(), "Number of mappings: 3")
}

func Test_Errors_01(t *testing.T) {
	cmd := circuit.NewCommand(circuit.NewGate("ccx"), [][]int{{2}}, []int{0, 1})
	err := error(NewCommandError(cmd))
	//
	assert.True(t, errors.Is(err, ErrInvalidCommand))
	assert.False(t, errors.Is(err, ErrConfig))
	assert.Contains(t, err.Error(), "ccx")
	//
	var cerr *CommandError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 3, cerr.Qubits)
}

func Test_Errors_02(t *testing.T) {
	err := error(&CapacityError{Qubits: 4, Pending: 7})
	assert.True(t, errors.Is(err, ErrCapacity))
	assert.Contains(t, err.Error(), "increase the number of qubits")
}

func Test_Available_01(t *testing.T) {
	x := circuit.NewGate("x")
	assert.True(t, IsAvailable(circuit.NewSingle(x, 0)))
	assert.True(t, IsAvailable(circuit.NewControlled(x, 0, 1)))
	assert.False(t, IsAvailable(circuit.NewCommand(x, [][]int{{0}}, []int{1, 2})))
	assert.False(t, IsAvailable(circuit.NewCommand(x, [][]int{{0}, {1, 2}}, nil)))
}

func Test_Manual_01(t *testing.T) {
	var (
		recorder = &circuit.Recorder{}
		manual   = NewManualMapper(func(q int) int { return q + 10 }, recorder)
		x        = circuit.NewGate("x")
	)
	//
	require.NoError(t, manual.Receive([]circuit.Command{circuit.NewAllocate(0), circuit.NewAllocate(1),
		circuit.NewControlled(x, 0, 1), circuit.NewMeasure(1), circuit.NewDeallocate(0)}))
	//
	assert.Equal(t, []circuit.Command{
		circuit.NewAllocate(10, circuit.LogicalQubitIDTag{ID: 0}),
		circuit.NewAllocate(11, circuit.LogicalQubitIDTag{ID: 1}),
		circuit.NewControlled(x, 10, 11),
		circuit.NewMeasure(11, circuit.LogicalQubitIDTag{ID: 1}),
		circuit.NewDeallocate(10, circuit.LogicalQubitIDTag{ID: 0}),
	}, recorder.Commands())
	assert.Equal(t, Mapping{0: 10, 1: 11}, manual.CurrentMapping())
	assert.Equal(t, uint(0), manual.Statistics().NumMappings)
}

func Test_Manual_02(t *testing.T) {
	var (
		recorder = &circuit.Recorder{}
		manual   = NewManualMapper(nil, recorder)
	)
	//
	require.NoError(t, manual.SetCurrentMapping(Mapping{0: 4}))
	require.NoError(t, manual.Receive([]circuit.Command{circuit.NewAllocate(0), circuit.NewAllocate(2)}))
	assert.Equal(t, Mapping{0: 4, 2: 2}, manual.CurrentMapping())
	assert.True(t, errors.Is(manual.SetCurrentMapping(Mapping{0: 1, 1: 1}), ErrConfig))
}

// ===================================================================
// Test Helpers
// ===================================================================

type recordingObserver struct {
	observed [][2]uint
}

func (p *recordingObserver) ObserveMapping(swaps uint, depth uint) {
	p.observed = append(p.observed, [2]uint{swaps, depth})
}
