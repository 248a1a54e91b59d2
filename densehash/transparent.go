// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package densehash

// TransparentHasher, when a Map's Hasher[K] also implements this interface
// for some lookup type Q, permits looking a value up by Q instead of K
// without ever materializing a K. The hasher "opts in" to transparent
// lookup on behalf of the equality
// predicate — the same coupling the type this package is modeled on uses
// (a hasher-level member advertises the capability), just expressed as a
// second interface instead of a nested member type, since Go methods
// cannot introduce their own type parameters.
type TransparentHasher[K any, Q any] interface {
	HashAny(q Q) uint64
	EqualAny(k K, q Q) bool
}

// FindAny looks up q in m without constructing a K, using m's hasher's
// TransparentHasher[K, Q] implementation. It panics if m's hasher does not
// implement that interface for Q — callers that want a checked version
// should type-assert m.HashFunc() themselves first.
func FindAny[K any, V any, Q any](m *Map[K, V], q Q) (Pair[K, V], bool) {
	th, ok := m.hash.(TransparentHasher[K, Q])
	if !ok {
		panic("densehash: hasher does not support transparent lookup for this key type")
	}
	if m.buckets.Len() == 0 {
		return Pair[K, V]{}, false
	}
	hash := th.HashAny(q)
	b := m.policy.ComputeIndex(hash, m.buckets.Len())
	for c := m.buckets.Begin(b); !c.Done(); c.Advance(m.store.At(c.Index()).Next) {
		rec := m.store.At(c.Index())
		if th.EqualAny(rec.Key, q) {
			return Pair[K, V]{Key: rec.Key, Value: rec.Val}, true
		}
	}
	return Pair[K, V]{}, false
}

// ContainsAny reports whether q matches some key in m, per FindAny.
func ContainsAny[K any, V any, Q any](m *Map[K, V], q Q) bool {
	_, ok := FindAny[K, V, Q](m, q)
	return ok
}

// Pair is a read-only projection of a stored (key, value) pair, returned by
// FindAny and accepted by NewFromPairs. It is a copy: changing its fields
// does not change the map, so a stored key cannot be mutated through it.
type Pair[K any, V any] struct {
	Key   K
	Value V
}
