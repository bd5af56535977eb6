// cache.go: the Cache handle (C1-C9 tied together) and its sizing math.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package ichcache

import (
	"encoding/binary"
	"math/bits"
)

// Cache is a fixed-capacity, single-threaded, open-addressed key/value
// store. A Cache is not safe for concurrent use; callers needing
// concurrent access must serialize it themselves (spec.md's Non-goals
// explicitly exclude internal locking).
type Cache struct {
	cfg    Config
	hasher *hasher
	slots  *slotTable
	pool   *itemPool

	keySize   int
	valueSize int

	itemCount   int
	evictCursor uint32

	naValue []byte
	scratch []byte // reused by Fetch/Get to stage a filler's output
	fastOut []byte // reused by GetFast so it never allocates

	stats     Statistics
	destroyed bool

	pending *Config // staged changes awaiting Reconfigure, nil if none
}

// Create builds a new Cache from cfg. It returns an error if KeySize or
// ValueSize is not a positive integer; every other field is normalized by
// Config.Validate.
func Create(cfg Config) (*Cache, error) {
	if cfg.KeySize <= 0 {
		return nil, NewErrInvalidKeySize(cfg.KeySize)
	}
	if cfg.ValueSize <= 0 {
		return nil, NewErrInvalidValueSize(cfg.ValueSize)
	}
	cfg.Validate()

	m, k := sizeTable(cfg.MinCapacity, cfg.MaxLoadFactor)

	c := &Cache{
		cfg:       cfg,
		hasher:    newHasher(cfg.KeySize),
		slots:     newSlotTable(m),
		pool:      newItemPool(k, cfg.KeySize, cfg.ValueSize),
		keySize:   cfg.KeySize,
		valueSize: cfg.ValueSize,
		scratch:   make([]byte, cfg.ValueSize),
		fastOut:   make([]byte, cfg.ValueSize),
	}
	c.naValue = naValueFor(cfg.NAValue, cfg.ValueSize)

	cfg.Logger.Info("ichcache: created", "slots", m, "capacity", k,
		"key_size", cfg.KeySize, "value_size", cfg.ValueSize)

	return c, nil
}

// naValueFor returns cfg.NAValue if it matches valueSize, otherwise a
// freshly allocated zero-filled buffer (spec O5).
func naValueFor(configured []byte, valueSize int) []byte {
	if len(configured) == valueSize {
		out := make([]byte, valueSize)
		copy(out, configured)
		return out
	}
	return make([]byte, valueSize)
}

// sizeTable computes M (slot count, a power of two) and K (item-pool
// capacity) from a minimum capacity and a max load factor, per spec.md §3:
// M = smallest power of two >= ceil(max(c, MIN_CAPACITY)/alpha);
// K = floor(M*alpha).
func sizeTable(minCapacity int, alpha float64) (m, k int) {
	c := minCapacity
	if c < DefaultMinCapacity {
		c = DefaultMinCapacity
	}
	need := ceilDiv(c, alpha)
	m = nextPowerOfTwo(need)
	k = int(float64(m) * alpha)
	if k < 1 {
		k = 1
	}
	return m, k
}

func ceilDiv(c int, alpha float64) int {
	f := float64(c) / alpha
	n := int(f)
	if float64(n) < f {
		n++
	}
	return n
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// KeySize returns the fixed key size in bytes.
func (c *Cache) KeySize() int { return c.keySize }

// ValueSize returns the fixed value size in bytes.
func (c *Cache) ValueSize() int { return c.valueSize }

// MaxLoadFactor returns the currently configured load factor.
func (c *Cache) MaxLoadFactor() float64 { return c.cfg.MaxLoadFactor }

// ItemCount returns the number of items currently stored.
func (c *Cache) ItemCount() int { return c.itemCount }

// MaxItems returns K, the item-pool capacity.
func (c *Cache) MaxItems() int { return c.pool.capacity() }

// SlotCount returns M, the probe-array size.
func (c *Cache) SlotCount() int { return c.slots.size() }

// HasFiller reports whether a Filler is configured.
func (c *Cache) HasFiller() bool { return c.cfg.Filler != nil }

func (c *Cache) checkKeySize(key []byte) error {
	if len(key) != c.keySize {
		return NewErrWrongKeySize(len(key), c.keySize)
	}
	return nil
}

func (c *Cache) checkValueSize(value []byte) error {
	if len(value) != c.valueSize {
		return NewErrWrongValueSize(len(value), c.valueSize)
	}
	return nil
}

// keysEqual compares two keys of equal length (callers have already
// validated that via checkKeySize). Keys of 16 bytes or fewer — the same
// threshold hashShort uses — take a two-word fast path: both sides are
// copied into zero-padded 16-byte buffers and compared as two uint64 XORs
// combined with a single OR, so a mismatch anywhere is caught without a
// byte-by-byte loop. Padding both sides identically does not change the
// comparison result since the two inputs are already known to be the same
// length. Longer keys fall back to a direct byte compare.
func keysEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) <= shortKeyThreshold {
		var pa, pb [16]byte
		copy(pa[:], a)
		copy(pb[:], b)
		w0 := binary.LittleEndian.Uint64(pa[0:8]) ^ binary.LittleEndian.Uint64(pb[0:8])
		w1 := binary.LittleEndian.Uint64(pa[8:16]) ^ binary.LittleEndian.Uint64(pb[8:16])
		return (w0 | w1) == 0
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
