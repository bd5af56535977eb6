// stats.go: cumulative operation counters (C9).
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package ichcache

// CounterPair tracks how many times an event happened (Count) and how many
// probe slots were visited across all occurrences (Scans), letting callers
// derive an average chain length per event.
type CounterPair struct {
	Count int64
	Scans int64
}

// Statistics is a snapshot of a Cache's cumulative operation counters.
// Lookups is count-only: a lookup's scan cost is already attributed to
// whichever of Hits or Misses it resolved to.
type Statistics struct {
	Lookups   CounterPair
	Hits      CounterPair
	Misses    CounterPair
	Adds      CounterPair
	Updates   CounterPair
	Evictions CounterPair
}

// Stats returns a copy of the cache's cumulative statistics.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// ClearStats resets every counter to zero without affecting stored items.
func (c *Cache) ClearStats() {
	c.stats = Statistics{}
}

// PrintStats logs a single summary line via the configured Logger, stamped
// with the cache's TimeProvider so log aggregators can correlate a snapshot
// to a point in time without relying on the logger's own timestamping.
func (c *Cache) PrintStats() {
	c.cfg.Logger.Info("ichcache: stats",
		"timestamp_ns", c.cfg.TimeProvider.Now(),
		"lookups", c.stats.Lookups.Count,
		"hits", c.stats.Hits.Count,
		"hit_scans", c.stats.Hits.Scans,
		"misses", c.stats.Misses.Count,
		"miss_scans", c.stats.Misses.Scans,
		"adds", c.stats.Adds.Count,
		"add_scans", c.stats.Adds.Scans,
		"updates", c.stats.Updates.Count,
		"update_scans", c.stats.Updates.Scans,
		"evictions", c.stats.Evictions.Count,
		"eviction_scans", c.stats.Evictions.Scans,
		"item_count", c.itemCount,
	)
}
