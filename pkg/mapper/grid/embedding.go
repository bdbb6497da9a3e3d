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

// Embedding lays a linear chain onto a grid like a snake: even rows run left
// to right, odd rows run right to left.  Consecutive positions on the chain
// are therefore always neighbours on the grid.  For example, with 3 rows and
// 2 columns the grid (in row-major order) is visited as:
//
//	0 - 1
//	    |
//	3 - 2
//	|
//	4 - 5
type Embedding struct {
	rows    int
	columns int
}

// NewEmbedding constructs a snake embedding for a grid of the given
// dimensions.
func NewEmbedding(rows, columns int) Embedding {
	return Embedding{rows, columns}
}

// To1D translates a row-major grid index into a position on the chain.
func (p Embedding) To1D(index int) int {
	row, column := index/p.columns, index%p.columns
	//
	if row%2 == 0 {
		return index
	}
	//
	return (row+1)*p.columns - column - 1
}

// To2D translates a position on the chain into a row-major grid index.  Since
// the snake reverses odd rows, this is its own inverse.
func (p Embedding) To2D(position int) int {
	return p.To1D(position)
}
