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

import "github.com/consensys/go-qmap/pkg/mapper"

// Position records where the occupant of a grid cell has to go.  Cells are
// fixed (i.e. CurrentRow and CurrentColumn never change) whilst the
// destination information moves between cells as swaps are applied.
type Position struct {
	CurrentRow    int
	CurrentColumn int
	FinalRow      int
	FinalColumn   int
	// Intermediate row after sorting within columns for the first time, or -1
	// if not yet assigned.
	RowAfterStep1 int
}

// Key identifies which destination field a sorting pass orders by.
type Key func(*Position) int

// ByRowAfterStep1 orders positions by their intermediate row.
func ByRowAfterStep1(p *Position) int { return p.RowAfterStep1 }

// ByFinalColumn orders positions by their final column.
func ByFinalColumn(p *Position) int { return p.FinalColumn }

// ByFinalRow orders positions by their final row.
func ByFinalRow(p *Position) int { return p.FinalRow }

// Positions is a grid of positions, indexed by current row and then current
// column.
type Positions [][]*Position

// slot returns the row-major index of a given cell.
func (p Positions) slot(row, column int) int {
	return row*len(p[0]) + column
}

// Exchange the destinations of two cells if they are out of order with
// respect to the given key.  If so, the corresponding swap is returned.
func (p Positions) compareAndSwap(e0 *Position, e1 *Position, key Key) (mapper.Swap, bool) {
	if key(e0) <= key(e1) {
		return mapper.Swap{}, false
	}
	//
	swap := mapper.Swap{p.slot(e0.CurrentRow, e0.CurrentColumn), p.slot(e1.CurrentRow, e1.CurrentColumn)}
	//
	e0.FinalRow, e1.FinalRow = e1.FinalRow, e0.FinalRow
	e0.FinalColumn, e1.FinalColumn = e1.FinalColumn, e0.FinalColumn
	e0.RowAfterStep1, e1.RowAfterStep1 = e1.RowAfterStep1, e0.RowAfterStep1
	//
	return swap, true
}

// SortWithinRows sorts every row using an odd-even transposition sort, and
// returns the swaps performed.
func (p Positions) SortWithinRows(key Key) []mapper.Swap {
	var (
		swaps   []mapper.Swap
		columns = len(p[0])
	)
	//
	for row := range p {
		for finished := false; !finished; {
			finished = true
			//
			for _, start := range []int{1, 0} {
				for column := start; column+1 < columns; column += 2 {
					if swap, ok := p.compareAndSwap(p[row][column], p[row][column+1], key); ok {
						swaps = append(swaps, swap)
						finished = false
					}
				}
			}
		}
	}
	//
	return swaps
}

// SortWithinColumns sorts every column using an odd-even transposition sort,
// and returns the swaps performed.
func (p Positions) SortWithinColumns(key Key) []mapper.Swap {
	var (
		swaps   []mapper.Swap
		rows    = len(p)
		columns = len(p[0])
	)
	//
	for column := 0; column < columns; column++ {
		for finished := false; !finished; {
			finished = true
			//
			for _, start := range []int{1, 0} {
				for row := start; row+1 < rows; row += 2 {
					if swap, ok := p.compareAndSwap(p[row][column], p[row+1][column], key); ok {
						swaps = append(swaps, swap)
						finished = false
					}
				}
			}
		}
	}
	//
	return swaps
}
