// insert.go: the insertion engine (C6): Put and the shared helper Fetch/Get
// use to materialize a filled value.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package ichcache

// Put stores value under key, inserting a new item or updating an existing
// one. Per spec O4, Put reports success (true) whenever it returns a nil
// error; a false/nil pair is never produced.
func (c *Cache) Put(key, value []byte) (bool, error) {
	if c.destroyed {
		return false, NewErrDestroyed()
	}
	if err := c.checkKeySize(key); err != nil {
		return false, err
	}
	if err := c.checkValueSize(value); err != nil {
		return false, err
	}
	return c.put(c.hasher.Hash(key), key, value)
}

// put is the core insertion walk, shared by Put and the filler path. It
// scans the probe chain from key's home slot, remembering the first
// TOMBSTONE it passes (a candidate insertion point) but continuing past it
// to an EMPTY slot or the end of the table before concluding the key is
// absent — otherwise a stale tombstone ahead of the key's real slot would
// shadow an existing entry. A found key is updated in place; an absent key
// is inserted at the remembered tombstone, or else at the terminating
// EMPTY slot, reclaiming from the item pool or evicting as needed.
func (c *Cache) put(hash uint32, key, value []byte) (bool, error) {
	m := uint32(c.slots.size())
	i := c.slots.home(hash)

	var tombstoneSlot uint32
	haveTombstone := false
	scans := 0

	for scanned := uint32(0); scanned < m; scanned++ {
		scans++
		s := c.slots.at(i)

		switch {
		case s.age == ageEmpty:
			return c.insertAt(i, tombstoneSlot, haveTombstone, hash, key, value, scans)

		case s.age == ageTombstone:
			if !haveTombstone {
				tombstoneSlot, haveTombstone = i, true
			}

		case s.hash == hash:
			it := c.pool.at(s.itemIndex)
			if keysEqual(it.key, key) {
				copy(it.value, value)
				c.slots.bumpAge(i)
				c.stats.Updates.Count++
				c.stats.Updates.Scans += int64(scans)
				c.cfg.MetricsCollector.RecordUpdate(scans)
				return true, nil
			}
		}

		i = c.slots.next(i)
	}

	// Table fully scanned with no EMPTY terminator. If a TOMBSTONE was seen
	// along the way, land there as usual.
	if haveTombstone {
		return c.insertAt(tombstoneSlot, tombstoneSlot, true, hash, key, value, scans)
	}

	// No EMPTY and no TOMBSTONE: every slot is ALIVE (only reachable with
	// MaxLoadFactor == 1.0, M == K). There is no landing spot to choose
	// independently of eviction, so evict a victim and write the new item
	// straight into the slot eviction just vacated, instead of guessing an
	// unrelated index.
	return c.insertIntoEvicted(hash, key, value, scans)
}

// insertAt places a new item at the chosen slot (a tombstone if one was
// seen during the walk, otherwise the terminating empty slot at emptySlot),
// acquiring an item-pool index directly if capacity allows or evicting one
// if the pool is full.
func (c *Cache) insertAt(emptySlot, tombstoneSlot uint32, haveTombstone bool, hash uint32, key, value []byte, scans int) (bool, error) {
	target := emptySlot
	if haveTombstone {
		target = tombstoneSlot
	}

	var itemIdx uint32
	if c.itemCount >= c.pool.capacity() {
		_, idx, err := c.evictInto()
		if err != nil {
			return false, err
		}
		itemIdx = idx
	} else {
		itemIdx = c.pool.acquire()
	}

	it := c.pool.at(itemIdx)
	copy(it.key, key)
	copy(it.value, value)

	s := c.slots.at(target)
	s.hash = hash
	s.itemIndex = itemIdx
	s.age = ageInitial

	c.itemCount++
	c.stats.Adds.Count++
	c.stats.Adds.Scans += int64(scans)
	c.cfg.MetricsCollector.RecordAdd(scans)

	return true, nil
}

// insertIntoEvicted handles the degenerate case where the probe walk
// exhausted the entire table without finding an EMPTY or TOMBSTONE slot to
// land on. It evicts a victim and writes the new item directly into the
// slot the victim occupied, since that is the only slot known to be free
// once eviction completes.
func (c *Cache) insertIntoEvicted(hash uint32, key, value []byte, scans int) (bool, error) {
	slotIdx, itemIdx, err := c.evictInto()
	if err != nil {
		return false, err
	}

	it := c.pool.at(itemIdx)
	copy(it.key, key)
	copy(it.value, value)

	s := c.slots.at(slotIdx)
	s.hash = hash
	s.itemIndex = itemIdx
	s.age = ageInitial

	c.itemCount++
	c.stats.Adds.Count++
	c.stats.Adds.Scans += int64(scans)
	c.cfg.MetricsCollector.RecordAdd(scans)

	return true, nil
}
