// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package bucket implements the fixed-size (between rehashes) directory of
// bucket head indices that densehash.Map threads its chains from.
package bucket

import "github.com/aristanetworks/densehash/internal/entry"

// End mirrors entry.End: the sentinel meaning "no such entry" / "chain
// exhausted".
const End = entry.End

// Directory is a packed sequence of head indices, one per bucket.
type Directory struct {
	heads []uint32
}

// Len returns the current bucket count.
func (d *Directory) Len() int { return len(d.heads) }

// Head returns the head index of bucket b, or End if the chain is empty.
func (d *Directory) Head(b int) uint32 { return d.heads[b] }

// SetHead sets the head index of bucket b.
func (d *Directory) SetHead(b int, index uint32) { d.heads[b] = index }

// Resize replaces the directory with one of the given size, every slot set
// to End. Callers must re-thread every live entry afterwards (this is the
// rehash step, done by densehash.Map, not by Directory itself).
func (d *Directory) Resize(n int) {
	d.heads = make([]uint32, n)
	for i := range d.heads {
		d.heads[i] = End
	}
}

// Clone returns a deep copy of the directory.
func (d *Directory) Clone() *Directory {
	out := &Directory{heads: make([]uint32, len(d.heads))}
	copy(out.heads, d.heads)
	return out
}

// Cursor walks the chain of one bucket, starting at its head and following
// next-indices supplied by the caller via Advance (the directory itself
// does not know about the node store's Next field).
type Cursor struct {
	current uint32
}

// Begin returns a cursor positioned at the head of bucket b.
func (d *Directory) Begin(b int) Cursor { return Cursor{current: d.heads[b]} }

// EndCursor returns a cursor equal to any exhausted cursor, regardless of
// which bucket it started from.
func EndCursor() Cursor { return Cursor{current: End} }

// Index returns the node-store index the cursor currently refers to, or
// End if the chain is exhausted.
func (c Cursor) Index() uint32 { return c.current }

// Done reports whether the cursor has reached the end of its chain.
func (c Cursor) Done() bool { return c.current == End }

// Advance moves the cursor to the given next-index (read from the node
// store entry at c.Index() by the caller).
func (c *Cursor) Advance(next uint32) { c.current = next }
