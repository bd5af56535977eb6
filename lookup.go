// lookup.go: the probe-walk lookup engine (C4).
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package ichcache

// probeResult is the outcome of walking the probe chain for a key.
type probeResult struct {
	slotIndex uint32
	itemIndex uint32
	scans     int
	found     bool
}

// probe walks the probe chain starting at the key's home slot, stopping at
// the first EMPTY slot (a TOMBSTONE never terminates the walk, since a
// tombstone only marks that the slot used to hold a different key) or a
// full table traversal. It returns the matching slot/item indices on a
// hit, and scans, the number of slots visited, for statistics.
func (c *Cache) probe(hash uint32, key []byte) probeResult {
	m := uint32(c.slots.size())
	i := c.slots.home(hash)

	for scanned := uint32(0); scanned < m; scanned++ {
		s := c.slots.at(i)

		if s.age == ageEmpty {
			return probeResult{scans: int(scanned) + 1}
		}

		if s.age >= ageInitial && s.hash == hash {
			it := c.pool.at(s.itemIndex)
			if keysEqual(it.key, key) {
				return probeResult{
					slotIndex: i,
					itemIndex: s.itemIndex,
					scans:     int(scanned) + 1,
					found:     true,
				}
			}
		}

		i = c.slots.next(i)
	}

	return probeResult{scans: int(m)}
}

// Lookup reads the value for key into out without invoking the Filler on a
// miss (spec.md §5.2: Lookup never fills). out must be exactly ValueSize
// bytes. It returns false on a miss, leaving out untouched.
func (c *Cache) Lookup(key, out []byte) (bool, error) {
	if c.destroyed {
		return false, NewErrDestroyed()
	}
	if err := c.checkKeySize(key); err != nil {
		return false, err
	}
	if err := c.checkValueSize(out); err != nil {
		return false, err
	}

	hash := c.hasher.Hash(key)
	res := c.probe(hash, key)

	c.stats.Lookups.Count++

	if !res.found {
		c.stats.Misses.Count++
		c.stats.Misses.Scans += int64(res.scans)
		c.cfg.MetricsCollector.RecordLookup(false, res.scans)
		return false, nil
	}

	c.slots.bumpAge(res.slotIndex)
	copy(out, c.pool.at(res.itemIndex).value)

	c.stats.Hits.Count++
	c.stats.Hits.Scans += int64(res.scans)
	c.cfg.MetricsCollector.RecordLookup(true, res.scans)

	return true, nil
}
