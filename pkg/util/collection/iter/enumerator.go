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
package iter

// Enumerator abstracts the process of iterating over a sequence of elements.
type Enumerator[T any] interface {
	// Check whether or not there are any items remaining to visit.
	HasNext() bool

	// Get the next item, and advanced the iterator.
	Next() T
}

// Collect drains an enumerator into an array.
func Collect[T any](enumerator Enumerator[T]) []T {
	var items []T
	//
	for enumerator.HasNext() {
		items = append(items, enumerator.Next())
	}
	//
	return items
}

// EnumeratePermutations returns an enumerator over all permutations of
// 0..n in lexicographic order.  For example, if n==3 then this will return
// [[0,1,2],[0,2,1],[1,0,2],[1,2,0],[2,0,1],[2,1,0]].
func EnumeratePermutations(n uint) Enumerator[[]uint] {
	current := make([]uint, n)
	//
	for i := range current {
		current[i] = uint(i)
	}
	//
	return &permutationEnumerator{current}
}

type permutationEnumerator struct {
	// next permutation to return, or nil if finished.
	current []uint
}

// HasNext checks whether or not there are any items remaining to visit.
//
//nolint:revive
func (p *permutationEnumerator) HasNext() bool {
	return p.current != nil
}

// Next returns the next item, and advance the iterator.
//
//nolint:revive
func (p *permutationEnumerator) Next() []uint {
	rs := make([]uint, len(p.current))
	copy(rs, p.current)
	// Find rightmost ascent
	i := len(p.current) - 2
	//
	for i >= 0 && p.current[i] >= p.current[i+1] {
		i--
	}
	// Check whether finished
	if i < 0 {
		// Yes, signal end of enumeration
		p.current = nil
		return rs
	}
	// Find rightmost element larger than the ascent
	j := len(p.current) - 1
	//
	for p.current[j] <= p.current[i] {
		j--
	}
	//
	p.current[i], p.current[j] = p.current[j], p.current[i]
	// Reverse suffix
	for l, r := i+1, len(p.current)-1; l < r; l, r = l+1, r-1 {
		p.current[l], p.current[r] = p.current[r], p.current[l]
	}
	//
	return rs
}
