// pool.go: the item pool (C3), a fixed-size array of key/value byte blobs
// addressed by integer index and decoupled from the probe-slot array so
// eviction (freeing a slot) and storage reclamation (freeing a pool index)
// are separate concerns.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package ichcache

// item is one key/value record in the pool.
type item struct {
	key   []byte
	value []byte
}

// itemPool owns K fixed-size key/value records plus a free list of indices
// not currently referenced by any ALIVE slot.
type itemPool struct {
	items    []item
	keySize  int
	valueSize int
	free     []uint32 // stack of reclaimed indices
	watermark uint32  // next never-used index, consumed once free is empty
}

// newItemPool allocates storage for k items of the given key/value size.
// Backing byte slices are allocated lazily (at first acquire) rather than
// up front, so a freshly created cache with few inserts does not pay for
// K*(keySize+valueSize) bytes immediately.
func newItemPool(k, keySize, valueSize int) *itemPool {
	return &itemPool{
		items:     make([]item, k),
		keySize:   keySize,
		valueSize: valueSize,
		free:      make([]uint32, 0, k),
	}
}

// capacity returns K, the number of item-pool slots.
func (p *itemPool) capacity() int {
	return len(p.items)
}

// acquire returns the index of an unused item record, allocating its
// backing buffers on first use.
func (p *itemPool) acquire() uint32 {
	var idx uint32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		idx = p.watermark
		p.watermark++
	}
	it := &p.items[idx]
	if it.key == nil {
		it.key = make([]byte, p.keySize)
		it.value = make([]byte, p.valueSize)
	}
	return idx
}

// release returns idx to the free list for reuse by a future acquire. The
// caller is responsible for invoking any configured ValueDestroyer before
// release, since the pool itself has no knowledge of destroyer semantics.
func (p *itemPool) release(idx uint32) {
	p.free = append(p.free, idx)
}

// at returns a pointer to the item record at idx.
func (p *itemPool) at(idx uint32) *item {
	return &p.items[idx]
}

// reset drops all allocations and returns the pool to its freshly-created
// state, used by RemoveAll/Destroy.
func (p *itemPool) reset() {
	for i := range p.items {
		p.items[i] = item{}
	}
	p.free = p.free[:0]
	p.watermark = 0
}
