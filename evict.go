// evict.go: the bounded eviction sweep (C5). An aging counter in [2,7]
// approximates LRU without a real list: a slot's age is bumped on every
// hit (capped at 7) and decayed as the sweep passes over it looking for a
// victim, so slots that keep getting hit stay warm relative to slots that
// are merely sitting in the probe chain.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package ichcache

// evictOne runs a single bounded sweep of at most maxEvictionSearch ALIVE
// slots, starting from the persistent evictCursor, looking for a slot to
// reclaim. EMPTY and TOMBSTONE slots it passes advance the cursor without
// counting against the budget, and the sweep never goes further than one
// full pass over the table. A slot at the coldest alive age (ageInitial) is
// taken immediately; absent one, the coldest slot visited during the sweep
// is taken once the sweep ends. Every alive slot visited but not chosen has its age
// decayed by one, clamped so it never drops below ageInitial — a slot
// under eviction pressure cools toward, but never below, "freshly
// inserted".
func (c *Cache) evictOne() (victimSlot uint32, ok bool) {
	m := uint32(c.slots.size())
	if m == 0 {
		return 0, false
	}

	i := c.evictCursor
	bestSlot := uint32(0)
	bestAge := uint8(0)
	haveBest := false
	scans := 0

	budget := maxEvictionSearch
	if budget > int(m) {
		budget = int(m)
	}

	for n := 0; n < budget && scans < int(m); {
		s := c.slots.at(i)
		scans++

		if s.age >= ageInitial {
			n++
			if s.age == ageInitial {
				c.evictCursor = c.slots.next(i)
				c.stats.Evictions.Count++
				c.stats.Evictions.Scans += int64(scans)
				c.cfg.MetricsCollector.RecordEviction(scans)
				return i, true
			}
			if !haveBest || s.age < bestAge {
				bestSlot, bestAge, haveBest = i, s.age, true
			}
			s.age--
			if s.age < ageInitial {
				s.age = ageInitial
			}
		}

		i = c.slots.next(i)
	}

	c.evictCursor = i

	if haveBest {
		c.stats.Evictions.Count++
		c.stats.Evictions.Scans += int64(scans)
		c.cfg.MetricsCollector.RecordEviction(scans)
		return bestSlot, true
	}

	return 0, false
}

// evictInto reclaims one slot, returning both the slot it vacated and the
// item index it held, after invoking the configured ValueDestroyer on the
// outgoing value. The freed slot is marked TOMBSTONE, not EMPTY (spec O1):
// a later probe chain that passed through this slot while the evicted key
// was alive must still continue past it to find keys that landed further
// down the chain. Callers that already have an independent landing slot
// (a TOMBSTONE/EMPTY found during their own probe) use only the item
// index; a caller with no landing slot of its own reuses slotIdx directly.
func (c *Cache) evictInto() (slotIdx uint32, itemIdx uint32, err error) {
	slotIdx, ok := c.evictOne()
	if !ok {
		return 0, 0, NewErrEvictionFailed()
	}

	s := c.slots.at(slotIdx)
	itemIdx = s.itemIndex

	if c.cfg.ValueDestroyer != nil {
		c.cfg.ValueDestroyer(c.cfg.FillerContext, c.pool.at(itemIdx).value)
	}

	s.age = ageTombstone
	s.itemIndex = 0
	s.hash = 0

	c.itemCount--

	return slotIdx, itemIdx, nil
}
