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
	"fmt"

	"github.com/consensys/go-qmap/pkg/mapper"
)

// ReturnSwaps returns the swaps which move from one (row-major) mapping to
// another.  This proceeds in three phases: first, sorting within every column
// such that each row holds exactly one occupant destined for each column;
// second, sorting within every row to reach the final column; finally,
// sorting within every column to reach the final row.  The first phase is
// determined by a set of perfect matchings, one per row, and the given
// permutation decides which matching is used for which row.
func (p *Grid) ReturnSwaps(old mapper.Mapping, new mapper.Mapping, permutation []uint) ([]mapper.Swap, error) {
	if len(permutation) != p.rows {
		return nil, fmt.Errorf("permutation %v does not cover %d rows", permutation, p.rows)
	}
	//
	positions := p.finalPositions(old, new)
	// Determine matchings
	finalColumns := make([][]int, p.rows)
	//
	for row := range positions {
		finalColumns[row] = make([]int, p.columns)
		//
		for column, pos := range positions[row] {
			finalColumns[row][column] = pos.FinalColumn
		}
	}
	//
	found, err := p.matcher.Matchings(finalColumns)
	if err != nil {
		return nil, err
	}
	// Permute the matchings
	matchings := make([][]int, p.rows)
	//
	for i := range matchings {
		matchings[i] = found[permutation[i]]
	}
	// Assign row after step 1
	for column := 0; column < p.columns; column++ {
		for rowAfterStep1 := 0; rowAfterStep1 < p.rows; rowAfterStep1++ {
			var (
				dest = matchings[rowAfterStep1][column]
				best *Position
			)
			//
			for row := 0; row < p.rows; row++ {
				pos := positions[row][column]
				//
				if pos.RowAfterStep1 >= 0 || pos.FinalColumn != dest {
					continue
				} else if best == nil || best.FinalRow > pos.FinalRow {
					best = pos
				}
			}
			//
			if best == nil {
				return nil, fmt.Errorf("matching sends column %d to column %d without occupant", column, dest)
			}
			//
			best.RowAfterStep1 = rowAfterStep1
		}
	}
	//
	swaps := positions.SortWithinColumns(ByRowAfterStep1)
	swaps = append(swaps, positions.SortWithinRows(ByFinalColumn)...)
	swaps = append(swaps, positions.SortWithinColumns(ByFinalRow)...)
	//
	return swaps, nil
}

// Construct the grid of positions.  Qubits in both mappings move to their new
// cell.  Every other cell is sent to one of the cells left unused, in
// ascending order.
func (p *Grid) finalPositions(old mapper.Mapping, new mapper.Mapping) Positions {
	var (
		positions = make(Positions, p.rows)
		used      = make([]bool, p.Size())
		next      = 0
	)
	//
	for row := range positions {
		positions[row] = make([]*Position, p.columns)
	}
	//
	for _, qubit := range old.Qubits() {
		if target, ok := new[qubit]; ok {
			slot := old[qubit]
			row, column := slot/p.columns, slot%p.columns
			positions[row][column] = &Position{row, column, target / p.columns, target % p.columns, -1}
			used[target] = true
		}
	}
	//
	for row := range positions {
		for column := range positions[row] {
			if positions[row][column] != nil {
				continue
			}
			//
			for used[next] {
				next++
			}
			//
			positions[row][column] = &Position{row, column, next / p.columns, next % p.columns, -1}
			used[next] = true
		}
	}
	//
	return positions
}

// Search over permutations of the matchings for the swaps of lowest cost.  If
// there are at most as many permutations as optimisation steps, all of them
// are tried.  Otherwise, the given number of permutations are sampled at
// random.  The first network of lowest cost is returned.
func (p *Grid) bestSwaps(old mapper.Mapping, new mapper.Mapping) ([]mapper.Swap, error) {
	var (
		best     []mapper.Swap
		bestCost uint
		first    = true
	)
	//
	permutations := p.permutations()
	//
	for permutations.HasNext() {
		swaps, err := p.ReturnSwaps(old, new, permutations.Next())
		if err != nil {
			return nil, err
		}
		//
		if cost := p.cost(swaps); first || cost < bestCost {
			best, bestCost, first = swaps, cost, false
		}
	}
	//
	return best, nil
}
