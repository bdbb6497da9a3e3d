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
package grid

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/consensys/go-qmap/pkg/circuit"
	"github.com/consensys/go-qmap/pkg/mapper"
	"github.com/consensys/go-qmap/pkg/util/collection/iter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cx = circuit.NewGate("cx")
	h  = circuit.NewGate("h")
)

func Test_Embedding_01(t *testing.T) {
	embedding := NewEmbedding(3, 2)
	// 0 1 / 3 2 / 4 5
	assert.Equal(t, []int{0, 1, 3, 2, 4, 5}, check_Embed(embedding, 6))
}

func Test_Embedding_02(t *testing.T) {
	embedding := NewEmbedding(4, 3)
	assert.Equal(t, []int{0, 1, 2, 5, 4, 3, 6, 7, 8, 11, 10, 9}, check_Embed(embedding, 12))
}

func Test_Embedding_03(t *testing.T) {
	for rows := 1; rows < 6; rows++ {
		for columns := 1; columns < 6; columns++ {
			var (
				embedding = NewEmbedding(rows, columns)
				grid      = check_Grid(t, Config{Rows: rows, Columns: columns})
			)
			//
			for i := 0; i < rows*columns; i++ {
				assert.Equal(t, i, embedding.To2D(embedding.To1D(i)))
				assert.Equal(t, i, embedding.To1D(embedding.To2D(i)))
				// Consecutive positions on the chain are neighbours
				if i > 0 {
					assert.True(t, grid.Adjacent(embedding.To2D(i-1), embedding.To2D(i)))
				}
			}
		}
	}
}

func Test_Grid_01(t *testing.T) {
	grid := check_Grid(t, Config{Rows: 3, Columns: 2})
	assert.True(t, grid.Adjacent(0, 1))
	assert.True(t, grid.Adjacent(0, 2))
	assert.True(t, grid.Adjacent(5, 3))
	assert.False(t, grid.Adjacent(1, 2))
	assert.False(t, grid.Adjacent(0, 3))
	assert.False(t, grid.Adjacent(0, 4))
}

func Test_Grid_02(t *testing.T) {
	_, err := NewGrid(Config{Rows: 0, Columns: 2})
	assert.True(t, errors.Is(err, mapper.ErrConfig))
}

func Test_Grid_03(t *testing.T) {
	// Missing backend id
	_, err := NewGrid(Config{Rows: 1, Columns: 2, BackendIDs: map[int]int{0: 1, 2: 0}})
	assert.True(t, errors.Is(err, mapper.ErrConfig))
}

func Test_Grid_04(t *testing.T) {
	// Duplicate backend id
	_, err := NewGrid(Config{Rows: 1, Columns: 2, BackendIDs: map[int]int{0: 1, 1: 1}})
	assert.True(t, errors.Is(err, mapper.ErrConfig))
}

func Test_Grid_05(t *testing.T) {
	// Wrong number of backend ids
	_, err := NewGrid(Config{Rows: 1, Columns: 2, BackendIDs: map[int]int{0: 1, 1: 0, 2: 2}})
	assert.True(t, errors.Is(err, mapper.ErrConfig))
}

func Test_Grid_06(t *testing.T) {
	grid := check_Grid(t, Config{Rows: 1, Columns: 2, BackendIDs: map[int]int{0: 7, 1: 3}})
	assert.Equal(t, 7, grid.BackendID(0))
	assert.Equal(t, 3, grid.BackendID(1))
	//
	slot, ok := grid.SlotOf(3)
	assert.True(t, ok)
	assert.Equal(t, 1, slot)
	//
	_, ok = grid.SlotOf(0)
	assert.False(t, ok)
}

func Test_Grid_07(t *testing.T) {
	assert.Equal(t, uint64(1), factorial(0))
	assert.Equal(t, uint64(1), factorial(1))
	assert.Equal(t, uint64(120), factorial(5))
	assert.Equal(t, uint64(2432902008176640000), factorial(20))
	assert.Equal(t, uint64(18446744073709551615), factorial(21))
	assert.Equal(t, uint64(18446744073709551615), factorial(100))
}

func Test_Grid_08(t *testing.T) {
	// Neighbouring gates need no swaps
	router, recorder := check_NewMapper(t, Config{Rows: 2, Columns: 2})
	require.NoError(t, router.SetCurrentMapping(mapper.Mapping{0: 0, 1: 1, 2: 2}))
	check_Receive(t, router, circuit.NewAllocate(0), circuit.NewAllocate(1), circuit.NewAllocate(2),
		circuit.NewControlled(cx, 0, 1), circuit.NewControlled(cx, 0, 2), circuit.NewFlush())
	//
	assert.Empty(t, recorder.Filter(circuit.SWAP))
	assert.Len(t, recorder.Filter(circuit.GENERIC), 2)
	assert.Equal(t, uint(0), router.Statistics().NumMappings)
}

func Test_Grid_09(t *testing.T) {
	// Initial placement needs no swaps
	router, recorder := check_NewMapper(t, Config{Rows: 2, Columns: 2})
	check_Receive(t, router, circuit.NewAllocate(0), circuit.NewAllocate(1), circuit.NewAllocate(2),
		circuit.NewControlled(cx, 0, 1), circuit.NewControlled(cx, 0, 2), circuit.NewFlush())
	//
	assert.Empty(t, recorder.Filter(circuit.SWAP))
	assert.Equal(t, mapper.Mapping{2: 0, 0: 1, 1: 3}, router.CurrentMapping())
	assert.Equal(t, uint(0), router.Statistics().NumMappings)
	check_Adjacency(t, router.Topology(), recorder)
}

func Test_Grid_10(t *testing.T) {
	// Diagonal qubits must be swapped
	router, recorder := check_NewMapper(t, Config{Rows: 2, Columns: 2})
	require.NoError(t, router.SetCurrentMapping(mapper.Mapping{0: 0, 1: 3}))
	check_Receive(t, router, circuit.NewAllocate(0), circuit.NewAllocate(1),
		circuit.NewControlled(cx, 0, 1), circuit.NewFlush())
	//
	assert.NotEmpty(t, recorder.Filter(circuit.SWAP))
	assert.Equal(t, uint(1), router.Statistics().NumMappings)
	assert.Empty(t, router.Pending())
	check_Adjacency(t, router.Topology(), recorder)
}

func Test_Grid_11(t *testing.T) {
	// Backend ids are used for every forwarded command
	backend := map[int]int{0: 13, 1: 12, 2: 11, 3: 10}
	router, recorder := check_NewMapper(t, Config{Rows: 2, Columns: 2, BackendIDs: backend})
	require.NoError(t, router.SetCurrentMapping(mapper.Mapping{0: 13, 1: 10}))
	check_Receive(t, router, circuit.NewAllocate(0), circuit.NewAllocate(1),
		circuit.NewControlled(cx, 0, 1), circuit.NewMeasure(0), circuit.NewFlush())
	//
	for _, cmd := range recorder.Commands() {
		for _, q := range cmd.AllQubits() {
			assert.Contains(t, []int{10, 11, 12, 13}, q)
		}
	}
	//
	for q, id := range router.CurrentMapping() {
		assert.Contains(t, []int{10, 11, 12, 13}, id, "qubit %d", q)
	}
	//
	check_Adjacency(t, router.Topology(), recorder)
}

func Test_Grid_12(t *testing.T) {
	// More qubits than the grid can hold
	router, _ := check_NewMapper(t, Config{Rows: 1, Columns: 2, Storage: 1})
	err := router.Receive([]circuit.Command{circuit.NewAllocate(0), circuit.NewAllocate(1), circuit.NewAllocate(2)})
	assert.True(t, errors.Is(err, mapper.ErrCapacity))
}

func Test_Grid_13(t *testing.T) {
	check_RandomCircuit(t, Config{Rows: 3, Columns: 3, Storage: 20}, 9, 200)
}

func Test_Grid_14(t *testing.T) {
	check_RandomCircuit(t, Config{Rows: 2, Columns: 4, Storage: 5}, 6, 100)
}

func Test_Grid_15(t *testing.T) {
	check_RandomCircuit(t, Config{Rows: 5, Columns: 2, Storage: 10, Steps: 4, Rand: rand.New(rand.NewPCG(3, 4))}, 10, 100)
}

func Test_Swaps_01(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {1, 4}, {4, 1}, {2, 2}, {2, 3}, {3, 3}, {4, 3}} {
		check_RandomSwaps(t, dims[0], dims[1], 20)
	}
}

func Test_Swaps_02(t *testing.T) {
	// Identical mappings require no swaps
	grid := check_Grid(t, Config{Rows: 3, Columns: 3})
	mapping := mapper.Mapping{0: 4, 1: 0, 2: 8}
	swaps, err := grid.Swaps(mapping, mapping)
	require.NoError(t, err)
	assert.Empty(t, swaps)
}

func Test_Swaps_03(t *testing.T) {
	// Search picks the first network of lowest cost over all permutations
	var (
		grid = check_Grid(t, Config{Rows: 3, Columns: 3, Cost: mapper.SwapCount})
		old  = mapper.Mapping{0: 0, 1: 1, 2: 2, 3: 3, 4: 4, 5: 5, 6: 6, 7: 7, 8: 8}
		new  = mapper.Mapping{0: 8, 1: 4, 2: 6, 3: 1, 4: 0, 5: 3, 6: 5, 7: 2, 8: 7}
		best []mapper.Swap
	)
	//
	for _, perm := range iter.Collect(iter.EnumeratePermutations(3)) {
		swaps, err := grid.ReturnSwaps(old, new, perm)
		require.NoError(t, err)
		//
		if best == nil || len(swaps) < len(best) {
			best = swaps
		}
	}
	//
	swaps, err := grid.Swaps(old, new)
	require.NoError(t, err)
	assert.Equal(t, best, swaps)
}

func Test_Swaps_04(t *testing.T) {
	// Permutation must cover all rows
	grid := check_Grid(t, Config{Rows: 3, Columns: 3})
	_, err := grid.ReturnSwaps(mapper.Mapping{}, mapper.Mapping{}, []uint{0, 1})
	assert.Error(t, err)
}

func Test_Swaps_05(t *testing.T) {
	// Matcher failures are reported
	matcher := matcherFunc(func([][]int) ([][]int, error) { return nil, errors.New("oops") })
	grid := check_Grid(t, Config{Rows: 2, Columns: 2, Matcher: matcher})
	_, err := grid.Swaps(mapper.Mapping{0: 0}, mapper.Mapping{0: 3})
	assert.Error(t, err)
}

func Test_Matching_01(t *testing.T) {
	check_Matchings(t, [][]int{{0, 1}, {1, 0}})
}

func Test_Matching_02(t *testing.T) {
	check_Matchings(t, [][]int{{1, 1}, {0, 0}})
}

func Test_Matching_03(t *testing.T) {
	check_Matchings(t, [][]int{{2, 2, 0}, {1, 0, 1}, {0, 2, 1}})
}

func Test_Matching_04(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	//
	for i := 0; i < 20; i++ {
		rows, columns := 1+rng.IntN(6), 1+rng.IntN(6)
		perm := rng.Perm(rows * columns)
		finalColumns := make([][]int, rows)
		//
		for r := range finalColumns {
			finalColumns[r] = make([]int, columns)
			//
			for c := range finalColumns[r] {
				finalColumns[r][c] = perm[r*columns+c] % columns
			}
		}
		//
		check_Matchings(t, finalColumns)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

type matcherFunc func([][]int) ([][]int, error)

func (f matcherFunc) Matchings(finalColumns [][]int) ([][]int, error) {
	return f(finalColumns)
}

func check_Embed(embedding Embedding, n int) []int {
	var chain []int
	//
	for i := 0; i < n; i++ {
		chain = append(chain, embedding.To2D(i))
	}
	//
	return chain
}

func check_Grid(t *testing.T, cfg Config) *Grid {
	t.Helper()
	//
	grid, err := NewGrid(cfg)
	require.NoError(t, err)
	//
	return grid
}

func check_NewMapper(t *testing.T, cfg Config) (*mapper.Router, *circuit.Recorder) {
	t.Helper()
	//
	recorder := &circuit.Recorder{}
	router, err := NewMapper(cfg, recorder)
	require.NoError(t, err)
	//
	return router, recorder
}

func check_Receive(t *testing.T, engine circuit.Engine, cmds ...circuit.Command) {
	t.Helper()
	require.NoError(t, engine.Receive(cmds))
}

// Check every two qubit command forwarded operates on neighbours, translating
// backend ids back into slots.
func check_Adjacency(t *testing.T, topology mapper.Topology, recorder *circuit.Recorder) {
	t.Helper()
	//
	for _, cmd := range recorder.Commands() {
		if qubits := cmd.AllQubits(); len(qubits) == 2 && qubits[0] != qubits[1] {
			slot0, ok0 := topology.SlotOf(qubits[0])
			slot1, ok1 := topology.SlotOf(qubits[1])
			//
			require.True(t, ok0 && ok1)
			assert.True(t, topology.Adjacent(slot0, slot1), "command %s on non-neighbours", cmd)
		}
	}
}

// Check matchings are perfect, and together use every occupant exactly once.
func check_Matchings(t *testing.T, finalColumns [][]int) {
	t.Helper()
	//
	var (
		rows    = len(finalColumns)
		columns = len(finalColumns[0])
		counts  = make(map[[2]int]int)
	)
	//
	for _, row := range finalColumns {
		for c, d := range row {
			counts[[2]int{c, d}]++
		}
	}
	//
	matchings, err := BipartiteMatcher{}.Matchings(finalColumns)
	require.NoError(t, err)
	require.Len(t, matchings, rows)
	//
	for _, matching := range matchings {
		require.Len(t, matching, columns)
		sorted := slices.Clone(matching)
		slices.Sort(sorted)
		//
		for i, d := range sorted {
			assert.Equal(t, i, d, "matching %v not perfect", matching)
		}
		//
		for c, d := range matching {
			counts[[2]int{c, d}]--
		}
	}
	//
	for edge, count := range counts {
		assert.Equal(t, 0, count, "edge %v", edge)
	}
}

// Generate random mappings and check every permutation produces a valid
// network of swaps.
func check_RandomSwaps(t *testing.T, rows int, columns int, iterations int) {
	t.Helper()
	//
	var (
		n    = rows * columns
		rng  = rand.New(rand.NewPCG(uint64(rows), uint64(columns)))
		grid = check_Grid(t, Config{Rows: rows, Columns: columns})
	)
	//
	for i := 0; i < iterations; i++ {
		old, new := make(mapper.Mapping), make(mapper.Mapping)
		oldSlots, newSlots := rng.Perm(n), rng.Perm(n)
		// Some qubits only in the old mapping, some only in the new mapping
		for q := 0; q < n; q++ {
			if rng.IntN(4) != 0 {
				old[q] = oldSlots[q]
			}
			//
			if rng.IntN(4) != 0 {
				new[q] = newSlots[q]
			}
		}
		//
		for _, perm := range iter.Collect(iter.EnumeratePermutations(uint(rows))) {
			swaps, err := grid.ReturnSwaps(old, new, perm)
			require.NoError(t, err)
			assert.True(t, mapper.IsAdjacent(grid, swaps))
			//
			moved := mapper.ApplySwaps(old, swaps)
			//
			for q, slot := range old {
				if target, ok := new[q]; ok {
					assert.Equal(t, target, moved[q], "qubit %d moved from %d", q, slot)
				}
			}
		}
	}
}

// Map a random circuit over a fixed pool of qubits and check every command
// arrives on neighbours.
func check_RandomCircuit(t *testing.T, cfg Config, nqubits int, ngates int) {
	t.Helper()
	//
	var (
		rng              = rand.New(rand.NewPCG(uint64(nqubits), uint64(ngates)))
		router, recorder = check_NewMapper(t, cfg)
		cmds             []circuit.Command
	)
	//
	for q := 0; q < nqubits; q++ {
		cmds = append(cmds, circuit.NewAllocate(q))
	}
	//
	for i := 0; i < ngates; i++ {
		q0, q1 := rng.IntN(nqubits), rng.IntN(nqubits)
		//
		if q0 == q1 {
			cmds = append(cmds, circuit.NewSingle(h, q0))
		} else {
			cmds = append(cmds, circuit.NewControlled(cx, q0, q1))
		}
	}
	//
	for q := 0; q < nqubits; q++ {
		cmds = append(cmds, circuit.NewMeasure(q), circuit.NewDeallocate(q))
	}
	//
	check_Receive(t, router, append(cmds, circuit.NewFlush())...)
	assert.Empty(t, router.Pending())
	assert.Empty(t, router.CurrentMapping())
	assert.Len(t, recorder.Filter(circuit.GENERIC), ngates)
	assert.Len(t, recorder.Filter(circuit.MEASURE), nqubits)
	check_Adjacency(t, router.Topology(), recorder)
}
