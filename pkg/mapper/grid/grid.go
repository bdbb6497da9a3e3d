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
	"math"
	"math/rand/v2"

	"github.com/consensys/go-qmap/pkg/circuit"
	"github.com/consensys/go-qmap/pkg/mapper"
	"github.com/consensys/go-qmap/pkg/mapper/linear"
	"github.com/consensys/go-qmap/pkg/util/collection/iter"
	log "github.com/sirupsen/logrus"
)

// DefaultOptimisationSteps is the default number of matching permutations
// tried when searching for a cheap swap network.
const DefaultOptimisationSteps = 50

// DefaultSeed seeds the random source used to sample permutations, when none
// is given.
const DefaultSeed = 11

// Config determines how a grid mapper is constructed.  Only the dimensions are
// required, everything else falls back to a sensible default.
type Config struct {
	Rows    int
	Columns int
	// Translation from row-major slots to backend ids.  If nil, backend ids
	// coincide with slots.
	BackendIDs map[int]int
	// Number of commands buffered before mapping.
	Storage int
	// Cost of a swap network.  Defaults to its depth.
	Cost mapper.CostFunction
	// Number of matching permutations to try.
	Steps int
	// Source of randomness for sampling permutations.
	Rand *rand.Rand
	// Oracle for decomposing the transfer graph into perfect matchings.
	Matcher Matcher
}

// Grid is a rectangular grid of physical qubits with nearest neighbour
// interactions.  Slots are numbered in row-major order, for example with 3
// rows and 2 columns:
//
//	0 - 1
//	|   |
//	2 - 3
//	|   |
//	4 - 5
//
// The backend may number the qubits differently, in which case slots are
// translated into backend ids as commands leave the mapper.
type Grid struct {
	rows      int
	columns   int
	backend   []int
	slots     map[int]int
	embedding Embedding
	cost      mapper.CostFunction
	steps     int
	rng       *rand.Rand
	matcher   Matcher
}

// NewGrid constructs a grid from a given configuration.
func NewGrid(cfg Config) (*Grid, error) {
	if cfg.Rows <= 0 || cfg.Columns <= 0 {
		return nil, mapper.NewConfigError("invalid grid dimensions %dx%d", cfg.Rows, cfg.Columns)
	}
	//
	n := cfg.Rows * cfg.Columns
	backend, slots, err := backendTable(n, cfg.BackendIDs)
	//
	if err != nil {
		return nil, err
	}
	//
	grid := &Grid{cfg.Rows, cfg.Columns, backend, slots, NewEmbedding(cfg.Rows, cfg.Columns),
		cfg.Cost, cfg.Steps, cfg.Rand, cfg.Matcher}
	// Apply defaults
	if grid.cost == nil {
		grid.cost = mapper.SwapDepth
	}
	//
	if grid.steps <= 0 {
		grid.steps = DefaultOptimisationSteps
	}
	//
	if grid.rng == nil {
		grid.rng = rand.New(rand.NewPCG(DefaultSeed, 0))
	}
	//
	if grid.matcher == nil {
		grid.matcher = BipartiteMatcher{}
	}
	//
	return grid, nil
}

// NewMapper constructs a router which maps circuits onto a grid.
func NewMapper(cfg Config, next circuit.Engine) (*mapper.Router, error) {
	grid, err := NewGrid(cfg)
	if err != nil {
		return nil, err
	}
	//
	return mapper.NewRouter(grid, cfg.Storage, next), nil
}

// Check the backend ids form a bijection between slots and a set of distinct
// (non-negative) backend ids.
func backendTable(n int, ids map[int]int) ([]int, map[int]int, error) {
	var (
		backend = make([]int, n)
		slots   = make(map[int]int, n)
	)
	//
	if ids == nil {
		for i := range backend {
			backend[i] = i
			slots[i] = i
		}
		//
		return backend, slots, nil
	} else if len(ids) != n {
		return nil, nil, mapper.NewConfigError("backend ids given for %d qubits, expected %d", len(ids), n)
	}
	//
	for slot := 0; slot < n; slot++ {
		id, ok := ids[slot]
		//
		switch {
		case !ok:
			return nil, nil, mapper.NewConfigError("missing backend id for qubit %d", slot)
		case id < 0:
			return nil, nil, mapper.NewConfigError("negative backend id %d for qubit %d", id, slot)
		}
		//
		if other, ok := slots[id]; ok {
			return nil, nil, mapper.NewConfigError("backend id %d used for qubits %d and %d", id, other, slot)
		}
		//
		backend[slot] = id
		slots[id] = slot
	}
	//
	return backend, slots, nil
}

// Rows returns the number of rows in this grid.
func (p *Grid) Rows() int {
	return p.rows
}

// Columns returns the number of columns in this grid.
func (p *Grid) Columns() int {
	return p.columns
}

// Size returns the number of qubits in this grid.
func (p *Grid) Size() int {
	return p.rows * p.columns
}

// Adjacent checks whether two (row-major) slots are neighbours on this grid.
func (p *Grid) Adjacent(slot0 int, slot1 int) bool {
	lo, hi := min(slot0, slot1), max(slot0, slot1)
	//
	return hi-lo == p.columns || (hi-lo == 1 && hi%p.columns != 0)
}

// BackendID translates a slot into its backend id.
func (p *Grid) BackendID(slot int) int {
	return p.backend[slot]
}

// SlotOf translates a backend id into its slot.
func (p *Grid) SlotOf(backend int) (int, bool) {
	slot, ok := p.slots[backend]
	return slot, ok
}

// NewMapping lays the grid out as a snake, and reuses the placement strategy
// of a linear chain.
func (p *Grid) NewMapping(allocated *mapper.QubitSet, pending []circuit.Command,
	current mapper.Mapping) (mapper.Mapping, error) {
	old := make(mapper.Mapping, len(current))
	//
	for qubit, slot := range current {
		old[qubit] = p.embedding.To1D(slot)
	}
	//
	mapping, err := linear.ReturnNewMapping(p.Size(), false, allocated, pending, old)
	if err != nil {
		return nil, err
	}
	//
	for qubit, position := range mapping {
		mapping[qubit] = p.embedding.To2D(position)
	}
	//
	return mapping, nil
}

// Swaps returns the cheapest swap network found between two mappings.
func (p *Grid) Swaps(old mapper.Mapping, new mapper.Mapping) ([]mapper.Swap, error) {
	swaps, err := p.bestSwaps(old, new)
	//
	if err == nil {
		log.Debugf("selected %d swaps of cost %d", len(swaps), p.cost(swaps))
	}
	//
	return swaps, err
}

// Determine the permutations of matchings to try.
func (p *Grid) permutations() iter.Enumerator[[]uint] {
	if factorial(p.rows) <= uint64(p.steps) {
		return iter.EnumeratePermutations(uint(p.rows))
	}
	//
	return iter.SamplePermutations(uint(p.rows), uint(p.steps), p.rng)
}

// Compute n!, saturating rather than overflowing.
func factorial(n int) uint64 {
	result := uint64(1)
	//
	for i := 2; i <= n; i++ {
		if result > math.MaxUint64/uint64(i) {
			return math.MaxUint64
		}
		//
		result *= uint64(i)
	}
	//
	return result
}
