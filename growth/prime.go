// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package growth

import "sort"

// primes is an ascending table of prime bucket counts, roughly doubling at
// each step. It is deliberately short: a dense hash map rehashes often
// enough under its max load factor that a long prime table buys little over
// doubling, and Prime exists primarily to exercise the pluggable-policy
// contract with a second, genuinely different indexing scheme.
var primes = [...]int{
	11, 23, 47, 97, 197, 397, 797, 1597, 3203, 6421,
	12853, 25717, 51437, 102877, 205759, 411527, 823117,
	1646237, 3292489, 6584983, 13169977, 26339969, 52679969,
	105359939, 210719881, 421439783, 842879579, 1685759167,
}

// Prime is a growth policy that rounds up to a prime bucket count and
// indexes with a modulo instead of a mask. It demonstrates that
// densehash.Map does not bake in any power-of-two assumption beyond calling
// ComputeIndex. The zero value is ready to use.
type Prime struct{}

// MinimumCapacity implements Policy.
func (Prime) MinimumCapacity() int { return primes[0] }

// ComputeClosestCapacity implements Policy: the smallest tabulated prime
// >= min, or min rounded up to the next odd number if it exceeds the table
// (still an admissible, if no longer prime, capacity).
func (Prime) ComputeClosestCapacity(min int) int {
	if min <= primes[0] {
		return primes[0]
	}
	i := sort.SearchInts(primes[:], min)
	if i < len(primes) {
		return primes[i]
	}
	if min%2 == 0 {
		return min + 1
	}
	return min
}

// ComputeIndex implements Policy using modular indexing.
func (Prime) ComputeIndex(hash uint64, capacity int) int {
	return int(hash % uint64(capacity))
}
