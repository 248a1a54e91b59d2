// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package densehash implements a dense, chained hash map: entries live in a
// single packed slice (the node store), and a separate bucket directory
// holds, per bucket, the index of the first entry whose key hashes there.
// Collisions are resolved by an intrusive singly-linked chain threaded
// through each entry's Next field.
//
// Unlike a classic separate-chaining map, nothing here is allocated per
// entry: the node store is one contiguous slice, so dense iteration over
// every (key, value) pair walks memory linearly instead of following
// bucket-by-bucket pointer chains. Erasure preserves that density by
// swapping the erased entry with the last live one before shrinking the
// store, then repairing whichever bucket chain pointed at the relocated
// entry.
//
// The map is not safe for concurrent use. A single goroutine may read while
// no goroutine writes; callers sharing a Map across goroutines must
// serialize all access themselves, same as a built-in Go map.
package densehash

import (
	"fmt"
	"math"

	"github.com/aristanetworks/densehash/growth"
	"github.com/aristanetworks/densehash/internal/bucket"
	"github.com/aristanetworks/densehash/internal/entry"
)

// End is the sentinel node-store index used by chain cursors (BucketBegin /
// BucketEnd) to mean "no such entry" / "chain exhausted".
const End = entry.End

// Hasher computes a hash for a key. It must be deterministic and must not
// change its result for a key already stored in the map (stored keys are
// hashed again on every rehash and erase to find their bucket).
type Hasher[K any] interface {
	Hash(k K) uint64
}

// FuncHasher adapts a plain function to the Hasher interface.
type FuncHasher[K any] func(K) uint64

// Hash implements Hasher.
func (f FuncHasher[K]) Hash(k K) uint64 { return f(k) }

// EqualFunc reports whether two keys are equal.
type EqualFunc[K any] func(a, b K) bool

// defaultMaxLoadFactor is the load factor above which an insertion that
// would grow the map triggers a rehash first.
const defaultMaxLoadFactor = 0.875

// Map is a dense, chained hash map from K to V.
type Map[K any, V any] struct {
	hash   Hasher[K]
	eq     EqualFunc[K]
	policy growth.Policy

	buckets bucket.Directory
	store   entry.Store[K, V]

	maxLoadFactor float64
	randomStart   bool
}

// Option configures a Map at construction time.
type Option[K any, V any] func(*mapConfig[K, V])

type mapConfig[K any, V any] struct {
	capacity      int
	maxLoadFactor float64
	policy        growth.Policy
	randomStart   bool
}

// WithCapacity requests an initial bucket count of at least n. The final
// bucket count is whatever the growth policy computes for that request
// (never less than the policy's minimum).
func WithCapacity[K any, V any](n int) Option[K, V] {
	return func(c *mapConfig[K, V]) { c.capacity = n }
}

// WithMaxLoadFactor sets the max load factor at construction time. f must
// be strictly positive.
func WithMaxLoadFactor[K any, V any](f float64) Option[K, V] {
	return func(c *mapConfig[K, V]) { c.maxLoadFactor = f }
}

// WithGrowthPolicy selects a non-default growth.Policy, e.g. growth.Prime{}.
func WithGrowthPolicy[K any, V any](p growth.Policy) Option[K, V] {
	return func(c *mapConfig[K, V]) { c.policy = p }
}

// WithRandomIterationStart makes All() begin at a random dense position
// instead of index 0, the same iteration-order obfuscation the runtime's own
// map gives every Go map. Unlike a built-in map, densehash does not
// randomize independently of position each time; the starting offset is
// drawn once per call to All().
func WithRandomIterationStart[K any, V any]() Option[K, V] {
	return func(c *mapConfig[K, V]) { c.randomStart = true }
}

// New creates an empty Map using hash and eq to locate and compare keys.
func New[K any, V any](hash Hasher[K], eq EqualFunc[K], opts ...Option[K, V]) *Map[K, V] {
	cfg := mapConfig[K, V]{maxLoadFactor: defaultMaxLoadFactor, policy: growth.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxLoadFactor <= 0 {
		panic("densehash: max load factor must be > 0")
	}
	m := &Map[K, V]{
		hash:          hash,
		eq:            eq,
		policy:        cfg.policy,
		maxLoadFactor: cfg.maxLoadFactor,
		randomStart:   cfg.randomStart,
	}
	capacity := cfg.policy.MinimumCapacity()
	if cfg.capacity > capacity {
		capacity = cfg.capacity
	}
	m.buckets.Resize(cfg.policy.ComputeClosestCapacity(capacity))
	return m
}

// NewFunc is a convenience constructor for the common case of plain
// hash/equal functions, avoiding the FuncHasher wrapper at call sites.
func NewFunc[K any, V any](hash func(K) uint64, eq EqualFunc[K], opts ...Option[K, V]) *Map[K, V] {
	return New[K, V](FuncHasher[K](hash), eq, opts...)
}

// NewFromPairs builds a Map from an input range of (key, value) pairs, the
// Go equivalent of the range/initializer-list constructors of §4.4.1.
// Duplicate keys keep their first value, matching Insert's semantics.
func NewFromPairs[K any, V any](hash Hasher[K], eq EqualFunc[K], pairs []Pair[K, V], opts ...Option[K, V]) *Map[K, V] {
	m := New[K, V](hash, eq, opts...)
	m.Reserve(len(pairs))
	for _, p := range pairs {
		m.Insert(p.Key, p.Value)
	}
	return m
}

// GrowthPolicy returns the policy governing this map's bucket counts.
func (m *Map[K, V]) GrowthPolicy() growth.Policy { return m.policy }

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int { return m.store.Len() }

// Empty reports whether the map has no entries.
func (m *Map[K, V]) Empty() bool { return m.store.Len() == 0 }

// MaxSize returns the largest Len the map can reach; its index space is
// 32 bits, reserving the maximum value as the End sentinel.
func (m *Map[K, V]) MaxSize() int { return int(End) }

// BucketCount returns the current number of buckets.
func (m *Map[K, V]) BucketCount() int { return m.buckets.Len() }

// MaxBucketCount returns the largest bucket count the growth policy could
// ever produce; densehash does not bound this beyond MaxSize.
func (m *Map[K, V]) MaxBucketCount() int { return int(End) }

// BucketOf returns the bucket index key currently hashes to.
func (m *Map[K, V]) BucketOf(key K) int {
	return m.policy.ComputeIndex(m.hash.Hash(key), m.buckets.Len())
}

// BucketLen returns the number of entries currently chained to bucket b.
func (m *Map[K, V]) BucketLen(b int) int {
	n := 0
	for c := m.buckets.Begin(b); !c.Done(); c.Advance(m.store.At(c.Index()).Next) {
		n++
	}
	return n
}

// LoadFactor returns Len() / BucketCount().
func (m *Map[K, V]) LoadFactor() float64 {
	return float64(m.store.Len()) / float64(m.buckets.Len())
}

// MaxLoadFactor returns the current max load factor.
func (m *Map[K, V]) MaxLoadFactor() float64 { return m.maxLoadFactor }

// SetMaxLoadFactor sets the max load factor (must be > 0). If the map is
// already above the new bound, it rehashes immediately to satisfy it.
func (m *Map[K, V]) SetMaxLoadFactor(f float64) {
	if f <= 0 {
		panic("densehash: max load factor must be > 0")
	}
	m.maxLoadFactor = f
	if float64(m.store.Len()) > float64(m.buckets.Len())*f {
		m.Rehash(m.buckets.Len())
	}
}

// HashFunc returns the map's hasher.
func (m *Map[K, V]) HashFunc() Hasher[K] { return m.hash }

// KeyEqual returns the map's equality predicate.
func (m *Map[K, V]) KeyEqual() EqualFunc[K] { return m.eq }

// chainSearch walks the bucket chain for key, returning the entry index and
// true on a hit, or (End, false) on a miss.
func (m *Map[K, V]) chainSearch(key K) (uint32, bool) {
	if m.buckets.Len() == 0 {
		return End, false
	}
	b := m.policy.ComputeIndex(m.hash.Hash(key), m.buckets.Len())
	c := m.buckets.Begin(b)
	for !c.Done() {
		idx := c.Index()
		rec := m.store.At(idx)
		if m.eq(rec.Key, key) {
			return idx, true
		}
		c.Advance(rec.Next)
	}
	return End, false
}

// Find returns an iterator to key's entry, and whether it was found.
func (m *Map[K, V]) Find(key K) (Iterator[K, V], bool) {
	idx, ok := m.chainSearch(key)
	if !ok {
		return m.End(), false
	}
	return Iterator[K, V]{m: m, idx: idx}, true
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.chainSearch(key)
	return ok
}

// Count returns 1 if key is present, 0 otherwise (the map forbids
// duplicates).
func (m *Map[K, V]) Count(key K) int {
	if m.Contains(key) {
		return 1
	}
	return 0
}

// EqualRange returns [Find(key), Find(key)+1) on a hit, or [End(), End())
// on a miss.
func (m *Map[K, V]) EqualRange(key K) (Iterator[K, V], Iterator[K, V]) {
	it, ok := m.Find(key)
	if !ok {
		return m.End(), m.End()
	}
	return it, it.Next()
}

// At returns the value stored for key, panicking if key is absent — the Go
// analogue of an out_of_range exception.
func (m *Map[K, V]) At(key K) V {
	idx, ok := m.chainSearch(key)
	if !ok {
		panic(fmt.Sprintf("densehash: key %v not found", key))
	}
	return m.store.At(idx).Val
}

// Index returns a pointer to the value stored for key, inserting the zero
// value first if key is absent. This is operator[]'s Go shape: callers may
// assign through the returned pointer. The pointer is invalidated by any
// subsequent mutation of the map.
func (m *Map[K, V]) Index(key K) *V {
	idx, _ := m.insertEntry(key)
	return &m.store.At(idx).Val
}

// maybeGrow rehashes to double the bucket count if the next insertion would
// exceed the max load factor.
func (m *Map[K, V]) maybeGrow() {
	if float64(m.store.Len()+1) > float64(m.buckets.Len())*m.maxLoadFactor {
		m.Rehash(m.buckets.Len() * 2)
	}
}

// insertEntry locates key's bucket, and either returns the existing entry's
// index (inserted=false) or appends a fresh entry with the zero value and
// splices it at the head of its bucket chain (inserted=true). It is the
// shared core of every insertion-family operation.
func (m *Map[K, V]) insertEntry(key K) (idx uint32, inserted bool) {
	if idx, ok := m.chainSearch(key); ok {
		return idx, false
	}
	m.maybeGrow()
	b := m.policy.ComputeIndex(m.hash.Hash(key), m.buckets.Len())
	var zero V
	idx = m.store.Append(key, zero, m.buckets.Head(b))
	m.buckets.SetHead(b, idx)
	return idx, true
}

// Insert inserts (key, val) if key is absent; it never overwrites an
// existing value. Returns an iterator to the (possibly pre-existing) entry
// and whether an insertion happened.
func (m *Map[K, V]) Insert(key K, val V) (Iterator[K, V], bool) {
	idx, inserted := m.insertEntry(key)
	if inserted {
		m.store.At(idx).Val = val
	}
	return Iterator[K, V]{m: m, idx: idx}, inserted
}

// GetOrInsert is try_emplace's Go shape: if key is present, its current
// value is returned unchanged; otherwise val is stored and returned. The
// bool reports whether val was the one actually stored.
func (m *Map[K, V]) GetOrInsert(key K, val V) (V, bool) {
	idx, inserted := m.insertEntry(key)
	if inserted {
		m.store.At(idx).Val = val
		return val, true
	}
	return m.store.At(idx).Val, false
}

// InsertOrAssign inserts (key, val), or assigns val over the existing entry
// if key is already present. Returns an iterator to the entry and whether
// an insertion (as opposed to an assignment) happened.
func (m *Map[K, V]) InsertOrAssign(key K, val V) (Iterator[K, V], bool) {
	idx, inserted := m.insertEntry(key)
	m.store.At(idx).Val = val
	return Iterator[K, V]{m: m, idx: idx}, inserted
}

// eraseAt unlinks the entry at i from its bucket chain, swaps it with the
// last live entry to preserve density, and repairs whichever chain pointed
// at the relocated entry. Returns the iterator now at i's position (the
// relocated entry), or End() if i was the last entry.
func (m *Map[K, V]) eraseAt(i uint32) Iterator[K, V] {
	rec := m.store.At(i)
	b := m.policy.ComputeIndex(m.hash.Hash(rec.Key), m.buckets.Len())
	m.unlink(b, i)

	moved := m.store.SwapPop(i)
	if moved == End {
		return m.End()
	}

	// The entry that used to live at `moved` now lives at i; whichever
	// chain pointed at `moved` must be repaired to point at i instead.
	movedRec := m.store.At(i)
	mb := m.policy.ComputeIndex(m.hash.Hash(movedRec.Key), m.buckets.Len())
	m.relink(mb, moved, i)

	return Iterator[K, V]{m: m, idx: i}
}

// unlink removes index i from bucket b's chain by rewriting whichever slot
// currently points at i (the bucket head, or some entry's Next).
func (m *Map[K, V]) unlink(b int, i uint32) {
	if m.buckets.Head(b) == i {
		m.buckets.SetHead(b, m.store.At(i).Next)
		return
	}
	prev := m.buckets.Head(b)
	for prev != End {
		prevRec := m.store.At(prev)
		if prevRec.Next == i {
			prevRec.Next = m.store.At(i).Next
			return
		}
		prev = prevRec.Next
	}
}

// relink rewrites whichever slot in bucket b's chain currently holds
// oldIndex so that it holds newIndex instead.
func (m *Map[K, V]) relink(b int, oldIndex, newIndex uint32) {
	if m.buckets.Head(b) == oldIndex {
		m.buckets.SetHead(b, newIndex)
		return
	}
	prev := m.buckets.Head(b)
	for prev != End {
		prevRec := m.store.At(prev)
		if prevRec.Next == oldIndex {
			prevRec.Next = newIndex
			return
		}
		prev = prevRec.Next
	}
}

// Erase removes the entry it points at, returning an iterator to the entry
// that now occupies its position (the one that was swapped in from the
// end), or End() if the erased entry was last.
func (m *Map[K, V]) Erase(it Iterator[K, V]) Iterator[K, V] {
	if !it.Valid() {
		return it
	}
	return m.eraseAt(it.idx)
}

// EraseKey removes key if present, returning 1 if it was removed, 0
// otherwise.
func (m *Map[K, V]) EraseKey(key K) int {
	idx, ok := m.chainSearch(key)
	if !ok {
		return 0
	}
	m.eraseAt(idx)
	return 1
}

// EraseRange repeatedly erases first until it reaches last, returning the
// final iterator (mirroring Erase's per-call return).
func (m *Map[K, V]) EraseRange(first, last Iterator[K, V]) Iterator[K, V] {
	for first.Valid() && !first.Equal(last) {
		first = m.Erase(first)
	}
	return first
}

// EraseIf removes every entry for which pred returns true, returning the
// number of entries removed.
func EraseIf[K any, V any](m *Map[K, V], pred func(K, V) bool) int {
	removed := 0
	i := uint32(0)
	for i < uint32(m.store.Len()) {
		rec := m.store.At(i)
		if pred(rec.Key, rec.Val) {
			m.eraseAt(i)
			removed++
			continue // the swapped-in entry now at i must also be tested
		}
		i++
	}
	return removed
}

// Clear removes every entry and resets the bucket count to the growth
// policy's minimum.
func (m *Map[K, V]) Clear() {
	m.store.Reset()
	m.buckets.Resize(m.policy.ComputeClosestCapacity(m.policy.MinimumCapacity()))
}

// Rehash resizes the bucket directory to the smallest admissible capacity
// that is at least n and at least enough to hold the current entries under
// the max load factor, then re-threads every live entry's chain. Node
// store indices are unaffected; only bucket chain linkage changes.
func (m *Map[K, V]) Rehash(n int) {
	target := m.policy.MinimumCapacity()
	if n > target {
		target = n
	}
	needed := int(math.Ceil(float64(m.store.Len()) / m.maxLoadFactor))
	if needed > target {
		target = needed
	}
	target = m.policy.ComputeClosestCapacity(target)
	if target == m.buckets.Len() {
		return
	}
	m.buckets.Resize(target)
	for i := uint32(0); i < uint32(m.store.Len()); i++ {
		rec := m.store.At(i)
		b := m.policy.ComputeIndex(m.hash.Hash(rec.Key), target)
		rec.Next = m.buckets.Head(b)
		m.buckets.SetHead(b, i)
	}
}

// Reserve ensures the map can hold n entries without a further rehash,
// given the current max load factor.
func (m *Map[K, V]) Reserve(n int) {
	m.Rehash(int(math.Ceil(float64(n) / m.maxLoadFactor)))
}

// Clone returns a deep copy of the map: same bucket count, max load factor,
// hasher, equality predicate and entries as the source.
func (m *Map[K, V]) Clone() *Map[K, V] {
	out := &Map[K, V]{
		hash:          m.hash,
		eq:            m.eq,
		policy:        m.policy,
		maxLoadFactor: m.maxLoadFactor,
		randomStart:   m.randomStart,
	}
	out.buckets = *m.buckets.Clone()
	out.store = *m.store.Clone()
	return out
}

// Swap exchanges the entire state of m and other.
func (m *Map[K, V]) Swap(other *Map[K, V]) {
	*m, *other = *other, *m
}

// Equal reports whether m and other hold the same set of (key, value)
// pairs. Bucket counts and max load factors are not compared.
func (m *Map[K, V]) Equal(other *Map[K, V]) bool {
	if m.store.Len() != other.store.Len() {
		return false
	}
	for i := 0; i < m.store.Len(); i++ {
		rec := m.store.At(uint32(i))
		oidx, ok := other.chainSearch(rec.Key)
		if !ok {
			return false
		}
		orec := other.store.At(oidx)
		if !valueEqual(rec.Val, orec.Val) {
			return false
		}
	}
	return true
}
