// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package growth implements the pluggable capacity strategies used by
// densehash.Map to translate a requested bucket count into an admissible
// one, and a raw hash into a bucket index.
package growth

// Policy maps a requested bucket count to an admissible one, and a hash
// value to a bucket index within that count. Implementations must be pure
// and stateless: densehash.Map never holds more than the zero value of a
// Policy and may call its methods concurrently with reads of the map (but
// never concurrently with a write, same as every other part of the map).
//
// ComputeIndex must return a value in [0, capacity). ComputeClosestCapacity
// must be monotone: min1 <= min2 implies
// ComputeClosestCapacity(min1) <= ComputeClosestCapacity(min2).
type Policy interface {
	// MinimumCapacity is the smallest admissible bucket count.
	MinimumCapacity() int
	// ComputeClosestCapacity returns the smallest admissible capacity >= min.
	ComputeClosestCapacity(min int) int
	// ComputeIndex maps hash into [0, capacity).
	ComputeIndex(hash uint64, capacity int) int
}

// PowerOfTwo is the default growth policy: capacities are powers of two,
// indexing is a mask, and the minimum capacity is 8. The zero value is
// ready to use.
type PowerOfTwo struct{}

// MinimumCapacity implements Policy.
func (PowerOfTwo) MinimumCapacity() int { return 8 }

// ComputeClosestCapacity implements Policy using the classic bit-smear
// idiom to round up to the next power of two. It does not apply
// MinimumCapacity: min <= 1 yields 1 and min = 3 yields 4. densehash.Map
// never requests less than MinimumCapacity.
func (PowerOfTwo) ComputeClosestCapacity(min int) int {
	if min <= 1 {
		return 1
	}
	n := uint64(min - 1)
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return int(n + 1)
}

// ComputeIndex implements Policy. Valid only because capacities produced by
// ComputeClosestCapacity are always powers of two.
func (PowerOfTwo) ComputeIndex(hash uint64, capacity int) int {
	return int(hash & uint64(capacity-1))
}

// Default returns the policy densehash.New uses when the caller supplies
// none: PowerOfTwo{}.
func Default() Policy { return PowerOfTwo{} }
