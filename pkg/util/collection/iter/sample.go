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

import "math/rand/v2"

// SamplePermutations returns an enumerator which yields n random permutations
// of 0..size, drawn from the given source.  Permutations are drawn
// independently, hence the same permutation may be returned more than once.
func SamplePermutations(size uint, n uint, rng *rand.Rand) Enumerator[[]uint] {
	return &samplingEnumerator{size, n, rng}
}

type samplingEnumerator struct {
	size uint
	// number of items left to sample
	left uint
	rng  *rand.Rand
}

// HasNext checks whether or not there are any items remaining to visit.
//
//nolint:revive
func (p *samplingEnumerator) HasNext() bool {
	return p.left > 0
}

// Count returns the number of items left in this enumeration.
//
//nolint:revive
func (p *samplingEnumerator) Count() uint {
	return p.left
}

// Next returns the next item, and advance the iterator.
//
//nolint:revive
func (p *samplingEnumerator) Next() []uint {
	// Decrease number of items
	p.left--
	//
	perm := p.rng.Perm(int(p.size))
	rs := make([]uint, len(perm))
	//
	for i, v := range perm {
		rs[i] = uint(v)
	}
	//
	return rs
}
