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
)

// Matcher decomposes the column transfer multigraph of a grid into perfect
// matchings.  The input gives, for each cell (indexed by row and then column),
// the column its occupant must reach.  Every column holds exactly one
// occupant per row, and every column is the destination of exactly one
// occupant per row.  The result holds one matching per row, where
// matchings[i][c] is the destination column paired with column c in the ith
// matching.  Together the matchings use each occupant exactly once.
type Matcher interface {
	Matchings(finalColumns [][]int) ([][]int, error)
}

// BipartiteMatcher finds perfect matchings using augmenting paths (Kuhn's
// algorithm).  Since the transfer multigraph is regular, removing a perfect
// matching leaves a regular multigraph behind, which therefore always has
// another perfect matching.
type BipartiteMatcher struct{}

// Matchings implementation for the Matcher interface.
func (p BipartiteMatcher) Matchings(finalColumns [][]int) ([][]int, error) {
	var (
		rows    = len(finalColumns)
		columns = len(finalColumns[0])
		// edges[c][d] is the number of occupants in column c destined for d.
		edges     = make([][]int, columns)
		matchings = make([][]int, rows)
	)
	//
	for c := range edges {
		edges[c] = make([]int, columns)
	}
	//
	for _, row := range finalColumns {
		for c, d := range row {
			if d < 0 || d >= columns {
				return nil, fmt.Errorf("invalid destination column %d", d)
			}
			//
			edges[c][d]++
		}
	}
	//
	for i := range matchings {
		matching, ok := perfectMatching(edges)
		if !ok {
			return nil, fmt.Errorf("no perfect matching for %d-th row", i)
		}
		// Remove edges of this matching
		for c, d := range matching {
			edges[c][d]--
		}
		//
		matchings[i] = matching
	}
	//
	return matchings, nil
}

// Find a perfect matching in a bipartite (multi)graph with n vertices on each
// side.  The result maps each left vertex to its partner on the right.
func perfectMatching(edges [][]int) ([]int, bool) {
	var (
		n = len(edges)
		// partner of each right vertex, or -1
		left = make([]int, n)
	)
	//
	for d := range left {
		left[d] = -1
	}
	//
	for c := 0; c < n; c++ {
		visited := make([]bool, n)
		//
		if !augment(c, edges, left, visited) {
			return nil, false
		}
	}
	//
	matching := make([]int, n)
	//
	for d, c := range left {
		matching[c] = d
	}
	//
	return matching, true
}

// Search for an augmenting path from a given left vertex.
func augment(c int, edges [][]int, left []int, visited []bool) bool {
	for d, count := range edges[c] {
		if count == 0 || visited[d] {
			continue
		}
		//
		visited[d] = true
		//
		if left[d] < 0 || augment(left[d], edges, left, visited) {
			left[d] = c
			return true
		}
	}
	//
	return false
}
