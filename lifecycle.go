// lifecycle.go: staged reconfiguration and teardown (C8).
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package ichcache

// stagedConfig returns the cache's pending configuration, creating it as a
// copy of the live configuration on first use.
func (c *Cache) stagedConfig() *Config {
	if c.pending == nil {
		staged := c.cfg
		c.pending = &staged
	}
	return c.pending
}

// StageMaxLoadFactor stages a new load factor, applied at the next Reconfigure.
func (c *Cache) StageMaxLoadFactor(factor float64) {
	c.stagedConfig().MaxLoadFactor = factor
}

// StageMinCapacity stages a new minimum capacity, applied at the next Reconfigure.
func (c *Cache) StageMinCapacity(n int) {
	c.stagedConfig().MinCapacity = n
}

// StageValueDestroyer stages a replacement ValueDestroyer, applied at the next Reconfigure.
func (c *Cache) StageValueDestroyer(fn ValueDestroyer) {
	c.stagedConfig().ValueDestroyer = fn
}

// StageContextDestroyer stages a replacement ContextDestroyer, applied at the next Reconfigure.
func (c *Cache) StageContextDestroyer(fn ContextDestroyer) {
	c.stagedConfig().ContextDestroyer = fn
}

// StageNAValue stages a replacement NAValue, applied at the next Reconfigure.
func (c *Cache) StageNAValue(value []byte) {
	c.stagedConfig().NAValue = value
}

// StageFiller stages a replacement Filler/FillerContext pair, applied at
// the next Reconfigure.
func (c *Cache) StageFiller(fn Filler, fillerCtx interface{}) {
	staged := c.stagedConfig()
	staged.Filler = fn
	staged.FillerContext = fillerCtx
}

// Reconfigure commits whatever has been staged via Stage*. It is
// destructive: every live value is passed to the configured
// ValueDestroyer (the old one, still in effect at the moment of the
// call), then the probe table and item pool are discarded and
// reallocated empty at the new MinCapacity/MaxLoadFactor. All prior
// entries are lost, exactly as RemoveAll would lose them — Reconfigure
// does not attempt to carry any item across a resize. Reconfigure is a
// no-op, returning nil, if nothing has been staged since the last call.
func (c *Cache) Reconfigure() error {
	if c.destroyed {
		return NewErrDestroyed()
	}
	if c.pending == nil {
		return nil
	}

	staged := *c.pending
	c.pending = nil

	if staged.KeySize <= 0 {
		staged.KeySize = c.keySize
	}
	if staged.ValueSize <= 0 {
		staged.ValueSize = c.valueSize
	}
	staged.Validate()

	if c.cfg.ValueDestroyer != nil {
		for i := range c.slots.slots {
			s := &c.slots.slots[i]
			if s.age >= ageInitial {
				c.cfg.ValueDestroyer(c.cfg.FillerContext, c.pool.at(s.itemIndex).value)
			}
		}
	}

	c.cfg = staged
	c.naValue = naValueFor(staged.NAValue, c.valueSize)

	m, k := sizeTable(staged.MinCapacity, staged.MaxLoadFactor)
	c.slots = newSlotTable(m)
	c.pool = newItemPool(k, c.keySize, c.valueSize)
	c.itemCount = 0
	c.evictCursor = 0

	c.cfg.Logger.Info("ichcache: reconfigured", "slots", c.slots.size(), "capacity", c.pool.capacity())
	return nil
}

// RemoveAll discards every stored item, invoking the configured
// ValueDestroyer on each live value first. It is idempotent: calling it on
// an already-empty cache is a no-op. Cumulative statistics are left
// untouched; use ClearStats to reset them separately.
func (c *Cache) RemoveAll() error {
	if c.destroyed {
		return NewErrDestroyed()
	}
	if c.cfg.ValueDestroyer != nil {
		for i := range c.slots.slots {
			s := &c.slots.slots[i]
			if s.age >= ageInitial {
				c.cfg.ValueDestroyer(c.cfg.FillerContext, c.pool.at(s.itemIndex).value)
			}
		}
	}
	c.slots.clear()
	c.pool.reset()
	c.itemCount = 0
	c.evictCursor = 0
	return nil
}

// Destroy releases every item (as RemoveAll does), then invokes the
// configured ContextDestroyer once. After Destroy, Put, Lookup, Fetch, Get,
// RemoveAll and Reconfigure return an error instead of operating on freed
// state, and a further Destroy is a no-op returning nil.
func (c *Cache) Destroy() error {
	if c.destroyed {
		return nil
	}
	if err := c.RemoveAll(); err != nil {
		return err
	}
	if c.cfg.ContextDestroyer != nil {
		c.cfg.ContextDestroyer(c.cfg.FillerContext)
	}
	c.destroyed = true
	return nil
}
