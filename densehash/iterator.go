// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package densehash

import (
	"iter"

	"golang.org/x/exp/rand"
)

// Iterator is a cursor into the dense node store. It is positional: Begin()
// starts at index 0, End() sits one past the last live entry, and Next/Prev
// move by one slot. Any insertion that triggers a rehash, or any erasure,
// invalidates every outstanding Iterator for that Map (the relocations
// those operations perform make the old positions meaningless), exactly as
// for the C++ container this type mirrors.
type Iterator[K any, V any] struct {
	m   *Map[K, V]
	idx uint32 // position in [0, m.store.Len()]; m.store.Len() itself means "end"
}

// Valid reports whether the iterator refers to a live entry (as opposed to
// End()).
func (it Iterator[K, V]) Valid() bool {
	return it.m != nil && it.idx < uint32(it.m.store.Len())
}

// Key returns the entry's key. Panics if the iterator is not Valid.
func (it Iterator[K, V]) Key() K {
	return it.m.store.At(it.idx).Key
}

// Value returns the entry's value. Panics if the iterator is not Valid.
func (it Iterator[K, V]) Value() V {
	return it.m.store.At(it.idx).Val
}

// SetValue overwrites the entry's value in place. Panics if the iterator is
// not Valid. The key cannot be mutated through an Iterator.
func (it Iterator[K, V]) SetValue(v V) {
	it.m.store.At(it.idx).Val = v
}

// Next returns an iterator advanced by one dense position.
func (it Iterator[K, V]) Next() Iterator[K, V] {
	return Iterator[K, V]{m: it.m, idx: it.idx + 1}
}

// Prev returns an iterator moved back by one dense position.
func (it Iterator[K, V]) Prev() Iterator[K, V] {
	return Iterator[K, V]{m: it.m, idx: it.idx - 1}
}

// Add returns an iterator offset by n dense positions (n may be negative).
func (it Iterator[K, V]) Add(n int) Iterator[K, V] {
	return Iterator[K, V]{m: it.m, idx: uint32(int64(it.idx) + int64(n))}
}

// Sub returns the number of dense positions between it and other.
func (it Iterator[K, V]) Sub(other Iterator[K, V]) int {
	return int(int64(it.idx) - int64(other.idx))
}

// Equal reports whether it and other refer to the same dense position.
func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	return it.idx == other.idx
}

// Begin returns an iterator to the first entry in dense (insertion, modulo
// erasure) order, or End() if the map is empty.
func (m *Map[K, V]) Begin() Iterator[K, V] {
	return Iterator[K, V]{m: m, idx: 0}
}

// End returns the dense past-the-end iterator.
func (m *Map[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{m: m, idx: uint32(m.store.Len())}
}

// All returns a range-over-func iterator over every (key, value) pair.
// Mutating the map during iteration is not supported: as with a built-in Go
// map, the effect of inserts and deletes observed mid range is unspecified.
//
// Ordinarily All walks the dense node store from index 0. If the Map was
// built with WithRandomIterationStart, each call instead starts at a
// pseudo-random dense position and wraps around, so callers cannot
// accidentally depend on insertion order surviving across calls.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		n := m.store.Len()
		if n == 0 {
			return
		}
		start := 0
		if m.randomStart {
			start = int(rand.Intn(n))
		}
		for i := 0; i < n; i++ {
			rec := m.store.At(uint32((start + i) % n))
			if !yield(rec.Key, rec.Val) {
				return
			}
		}
	}
}

// ChainIterator is a cursor over a single bucket's chain, following
// intrusive Next links rather than dense position. Two ChainIterators
// compare equal iff their underlying entry indices are equal; BucketEnd's
// index is always End, regardless of which bucket it was produced for.
type ChainIterator[K any, V any] struct {
	m   *Map[K, V]
	idx uint32
}

// Valid reports whether the cursor refers to a live entry.
func (c ChainIterator[K, V]) Valid() bool { return c.idx != End }

// Key returns the entry's key. Panics if the cursor is not Valid.
func (c ChainIterator[K, V]) Key() K { return c.m.store.At(c.idx).Key }

// Value returns the entry's value. Panics if the cursor is not Valid.
func (c ChainIterator[K, V]) Value() V { return c.m.store.At(c.idx).Val }

// Next returns a cursor advanced along the chain.
func (c ChainIterator[K, V]) Next() ChainIterator[K, V] {
	return ChainIterator[K, V]{m: c.m, idx: c.m.store.At(c.idx).Next}
}

// Equal reports whether c and other refer to the same entry index.
func (c ChainIterator[K, V]) Equal(other ChainIterator[K, V]) bool {
	return c.idx == other.idx
}

// BucketBegin returns a cursor at the head of bucket b's chain.
func (m *Map[K, V]) BucketBegin(b int) ChainIterator[K, V] {
	return ChainIterator[K, V]{m: m, idx: m.buckets.Head(b)}
}

// BucketEnd returns the exhausted-chain cursor (the same for every bucket).
func (m *Map[K, V]) BucketEnd(int) ChainIterator[K, V] {
	return ChainIterator[K, V]{m: m, idx: End}
}

// Bucket returns a range-over-func iterator over bucket b's (key, value)
// pairs, in chain order (most recently inserted collision first).
func (m *Map[K, V]) Bucket(b int) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for c := m.BucketBegin(b); c.Valid(); c = c.Next() {
			if !yield(c.Key(), c.Value()) {
				return
			}
		}
	}
}
