// filler.go: miss-filling (C7). Fetch and Get call out to the configured
// Filler on a miss; Put and Lookup never do.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package ichcache

// Fetch reads the value for key into out, consulting the Filler on a miss.
// It returns true if a value was found or successfully produced by the
// Filler, false if the Filler declined to produce one (and left out
// untouched). It returns an error if no Filler is configured, if the
// Filler panics, or on a size mismatch.
func (c *Cache) Fetch(key, out []byte) (bool, error) {
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

	if res.found {
		c.slots.bumpAge(res.slotIndex)
		copy(out, c.pool.at(res.itemIndex).value)
		c.stats.Hits.Count++
		c.stats.Hits.Scans += int64(res.scans)
		c.cfg.MetricsCollector.RecordLookup(true, res.scans)
		return true, nil
	}

	c.stats.Misses.Count++
	c.stats.Misses.Scans += int64(res.scans)
	c.cfg.MetricsCollector.RecordLookup(false, res.scans)

	if c.cfg.Filler == nil {
		return false, NewErrNilFiller()
	}

	ok, err := c.invokeFiller(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if _, err := c.put(hash, key, c.scratch); err != nil {
		return false, err
	}
	copy(out, c.scratch)

	return true, nil
}

// invokeFiller calls the configured Filler with a zeroed scratch buffer,
// recovering a panic into a structured error so a misbehaving Filler can
// never bring down the caller's goroutine.
func (c *Cache) invokeFiller(key []byte) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewErrFillerPanic(r)
		}
	}()

	for i := range c.scratch {
		c.scratch[i] = 0
	}
	ok = c.cfg.Filler(c.cfg.FillerContext, key, c.scratch)
	return ok, nil
}

// Get is the allocating counterpart to Fetch: it returns a freshly
// allocated value slice, or nil if the key was absent and the Filler
// declined to produce one. As with Fetch, a miss with no Filler configured
// returns an error.
func (c *Cache) Get(key []byte) ([]byte, error) {
	out := make([]byte, c.valueSize)
	found, err := c.Fetch(key, out)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return out, nil
}

// GetFast is the zero-allocation counterpart to Get: it writes into a
// buffer owned by the Cache instead of allocating one per call, and never
// returns an error. On a miss, a Filler failure, or any validation error it
// returns the configured NAValue (a zero-filled buffer by default, per spec
// O5). The returned slice is only valid until the next GetFast call —
// callers needing to retain the value must copy it.
func (c *Cache) GetFast(key []byte) []byte {
	found, err := c.Fetch(key, c.fastOut)
	if err != nil || !found {
		return c.naValue
	}
	return c.fastOut
}

// PutFast is a convenience wrapper around Put that discards the error,
// reporting only whether the write succeeded. It has no buffer of its own.
// Put allocates an item's key and value buffers the first time that
// item-pool index is used after Create, Reconfigure or RemoveAll; later
// writes to the same index do not allocate.
func (c *Cache) PutFast(key, value []byte) bool {
	ok, _ := c.Put(key, value)
	return ok
}
