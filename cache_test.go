package ichcache

import (
	"fmt"
	"testing"
)

// Scenario 1: fill without eviction.
func TestScenario_FillWithoutEviction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeySize, cfg.ValueSize, cfg.MinCapacity, cfg.MaxLoadFactor = 8, 8, 4, 0.5
	c, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for i := 1; i <= c.MaxItems(); i++ {
		key := kb(fmt.Sprintf("k%d", i), 8)
		value := kb(fmt.Sprintf("%d", i*10), 8)
		if ok, err := c.Put(key, value); err != nil || !ok {
			t.Fatalf("Put(%d) = (%v, %v)", i, ok, err)
		}
	}

	for i := 1; i <= c.MaxItems(); i++ {
		out := make([]byte, 8)
		found, err := c.Lookup(kb(fmt.Sprintf("k%d", i), 8), out)
		if err != nil || !found {
			t.Fatalf("Lookup(%d) = (%v, %v)", i, found, err)
		}
		want := kb(fmt.Sprintf("%d", i*10), 8)
		if string(out) != string(want) {
			t.Errorf("Lookup(%d) = %q, want %q", i, out, want)
		}
	}

	if c.ItemCount() != c.MaxItems() {
		t.Errorf("ItemCount() = %d, want %d", c.ItemCount(), c.MaxItems())
	}
	if c.stats.Evictions.Count != 0 {
		t.Errorf("Evictions.Count = %d, want 0", c.stats.Evictions.Count)
	}
}

// Scenario 2: forced eviction.
func TestScenario_ForcedEviction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeySize, cfg.ValueSize, cfg.MinCapacity, cfg.MaxLoadFactor = 8, 8, 4, 0.5
	c, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	n := c.MaxItems()
	for i := 1; i <= n; i++ {
		c.Put(kb(fmt.Sprintf("k%d", i), 8), kb(fmt.Sprintf("%d", i*10), 8))
	}

	overflowKey := kb("overflow", 8)
	if ok, err := c.Put(overflowKey, kb("999", 8)); err != nil || !ok {
		t.Fatalf("overflow Put() = (%v, %v)", ok, err)
	}

	out := make([]byte, 8)
	if found, _ := c.Lookup(overflowKey, out); !found {
		t.Fatal("overflow key missing after insert")
	}
	if c.stats.Evictions.Count != 1 {
		t.Errorf("Evictions.Count = %d, want 1", c.stats.Evictions.Count)
	}

	missing := 0
	for i := 1; i <= n; i++ {
		if found, _ := c.Lookup(kb(fmt.Sprintf("k%d", i), 8), out); !found {
			missing++
		}
	}
	if missing != 1 {
		t.Errorf("missing original keys = %d, want exactly 1", missing)
	}
}

// Scenario 3: update does not evict.
func TestScenario_UpdateDoesNotEvict(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeySize, cfg.ValueSize, cfg.MinCapacity, cfg.MaxLoadFactor = 8, 8, 4, 0.5
	c, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	n := c.MaxItems()
	for i := 1; i <= n; i++ {
		c.Put(kb(fmt.Sprintf("k%d", i), 8), kb(fmt.Sprintf("%d", i*10), 8))
	}

	c.Put(kb("k1", 8), kb("999", 8))

	if c.stats.Evictions.Count != 0 {
		t.Errorf("Evictions.Count = %d, want 0", c.stats.Evictions.Count)
	}
	if c.stats.Updates.Count < 1 {
		t.Errorf("Updates.Count = %d, want >= 1", c.stats.Updates.Count)
	}

	out := make([]byte, 8)
	c.Lookup(kb("k1", 8), out)
	if string(out) != string(kb("999", 8)) {
		t.Errorf("Lookup(k1) = %q, want 999", out)
	}

	for i := 2; i <= n; i++ {
		if found, _ := c.Lookup(kb(fmt.Sprintf("k%d", i), 8), out); !found {
			t.Errorf("key k%d missing after an unrelated update", i)
		}
	}
}

// Scenario 4: filler on miss, then hit from cache.
func TestScenario_FillerOnMiss(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeySize, cfg.ValueSize, cfg.MinCapacity = 8, 8, 16
	cfg.Filler = func(ctx interface{}, key, out []byte) bool {
		copy(out, kb("14", 8))
		return true
	}
	c, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	key := kb("k7", 8)
	out := make([]byte, 8)
	found, err := c.Fetch(key, out)
	if err != nil || !found || string(out) != string(kb("14", 8)) {
		t.Fatalf("Fetch() = (%v, %q, %v)", found, out, err)
	}
	if c.stats.Adds.Count != 1 {
		t.Errorf("Adds.Count = %d, want 1", c.stats.Adds.Count)
	}

	out2 := make([]byte, 8)
	found2, err := c.Fetch(key, out2)
	if err != nil || !found2 {
		t.Fatalf("second Fetch() = (%v, %v)", found2, err)
	}
	if c.stats.Hits.Count != 1 {
		t.Errorf("Hits.Count = %d, want 1", c.stats.Hits.Count)
	}
	if c.stats.Adds.Count != 1 {
		t.Errorf("Adds.Count = %d after second fetch, want unchanged at 1", c.stats.Adds.Count)
	}
}

// Scenario 5: filler failure leaves state untouched.
func TestScenario_FillerFailureLeavesStateUntouched(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeySize, cfg.ValueSize, cfg.MinCapacity = 8, 8, 16
	cfg.Filler = func(ctx interface{}, key, out []byte) bool { return false }
	c, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	out := make([]byte, 8)
	found, err := c.Fetch(kb("k9", 8), out)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if found {
		t.Error("Fetch() reported found for a declining Filler")
	}
	if c.ItemCount() != 0 {
		t.Errorf("ItemCount() = %d, want 0", c.ItemCount())
	}
	if c.stats.Misses.Count != 1 {
		t.Errorf("Misses.Count = %d, want 1", c.stats.Misses.Count)
	}
	if c.stats.Adds.Count != 0 {
		t.Errorf("Adds.Count = %d, want 0", c.stats.Adds.Count)
	}
}

// Scenario 6: age approximates LRU.
func TestScenario_AgeApproximatesLRU(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeySize, cfg.ValueSize, cfg.MinCapacity, cfg.MaxLoadFactor = 8, 8, 8, 0.5
	c, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	n := c.MaxItems()
	for i := 0; i < n; i++ {
		c.Put(kb(fmt.Sprintf("orig%d", i), 8), kb("v", 8))
	}

	hotA, hotB := kb("orig0", 8), kb("orig1", 8)
	out := make([]byte, 8)
	for i := 0; i < 50; i++ {
		c.Lookup(hotA, out)
		c.Lookup(hotB, out)
	}

	for i := 0; i < n; i++ {
		c.Put(kb(fmt.Sprintf("new%d", i), 8), kb("v", 8))
	}

	if found, _ := c.Lookup(hotA, out); !found {
		t.Error("repeatedly-accessed key hotA was evicted")
	}
	if found, _ := c.Lookup(hotB, out); !found {
		t.Error("repeatedly-accessed key hotB was evicted")
	}
}

// P1: occupancy saturates at max_items.
func TestProperty_Occupancy(t *testing.T) {
	c := newTestCache(t, 8, 8, 16)
	n := c.MaxItems()

	for i := 0; i < n*2; i++ {
		c.Put(kb(fmt.Sprintf("k%d", i), 8), kb("v", 8))
		if i+1 >= n && c.ItemCount() != n {
			t.Fatalf("after %d puts, ItemCount() = %d, want %d", i+1, c.ItemCount(), n)
		}
	}
}

// P2: last write wins.
func TestProperty_Determinism(t *testing.T) {
	c := newTestCache(t, 8, 8, 16)
	key := kb("k", 8)
	c.Put(key, kb("v1", 8))
	c.Put(key, kb("v2", 8))

	out := make([]byte, 8)
	c.Lookup(key, out)
	if string(out) != string(kb("v2", 8)) {
		t.Errorf("Lookup() = %q, want v2", out)
	}
}

// P6: single ownership of item-pool indices among ALIVE slots.
func TestProperty_SingleOwnership(t *testing.T) {
	c := newTestCache(t, 8, 8, 16)
	for i := 0; i < c.MaxItems()*3; i++ {
		c.Put(kb(fmt.Sprintf("k%d", i), 8), kb("v", 8))
	}

	seen := map[uint32]bool{}
	alive := 0
	for i := range c.slots.slots {
		s := &c.slots.slots[i]
		if s.age < ageInitial {
			continue
		}
		alive++
		if seen[s.itemIndex] {
			t.Fatalf("item index %d referenced by more than one ALIVE slot", s.itemIndex)
		}
		seen[s.itemIndex] = true
	}
	if alive != c.ItemCount() {
		t.Errorf("alive slot count = %d, want ItemCount() = %d", alive, c.ItemCount())
	}
}

// P7: age stays within [0,7] under churn.
func TestProperty_AgeBounds(t *testing.T) {
	c := newTestCache(t, 8, 8, 16)
	out := make([]byte, 8)
	for i := 0; i < c.MaxItems()*4; i++ {
		key := kb(fmt.Sprintf("k%d", i%(c.MaxItems()*2)), 8)
		c.Put(key, kb("v", 8))
		c.Lookup(key, out)
	}

	for i := range c.slots.slots {
		age := c.slots.slots[i].age
		if age > ageMax {
			t.Fatalf("slot %d age = %d, exceeds max %d", i, age, ageMax)
		}
	}
}

// P9: remove_all is idempotent.
func TestProperty_IdempotentRemoveAll(t *testing.T) {
	c := newTestCache(t, 8, 8, 16)
	for i := 0; i < c.MaxItems(); i++ {
		c.Put(kb(fmt.Sprintf("k%d", i), 8), kb("v", 8))
	}

	if err := c.RemoveAll(); err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}
	if err := c.RemoveAll(); err != nil {
		t.Fatalf("second RemoveAll() error = %v", err)
	}
	if c.ItemCount() != 0 {
		t.Errorf("ItemCount() = %d, want 0", c.ItemCount())
	}
}

// P3: a successful Put is immediately visible to Lookup/Fetch/Get.
func TestProperty_GetAfterPut(t *testing.T) {
	c := newTestCache(t, 8, 8, 16)
	key := kb("k", 8)
	value := kb("v", 8)

	if ok, err := c.Put(key, value); err != nil || !ok {
		t.Fatalf("Put() = (%v, %v)", ok, err)
	}

	out := make([]byte, 8)
	if found, err := c.Lookup(key, out); err != nil || !found || string(out) != string(value) {
		t.Errorf("Lookup() after Put() = (%v, %q, %v)", found, out, err)
	}

	out2 := make([]byte, 8)
	if found, err := c.Fetch(key, out2); err != nil || !found || string(out2) != string(value) {
		t.Errorf("Fetch() after Put() = (%v, %q, %v)", found, out2, err)
	}

	got, err := c.Get(key)
	if err != nil || string(got) != string(value) {
		t.Errorf("Get() after Put() = (%q, %v)", got, err)
	}
}

// P5: probing for an absent key always terminates, scanning a contiguous
// run starting at the key's home slot until a true EMPTY slot is reached.
func TestProperty_ProbeContinuity(t *testing.T) {
	c := newTestCache(t, 8, 8, 16)
	for i := 0; i < c.MaxItems()/2; i++ {
		c.Put(kb(fmt.Sprintf("k%d", i), 8), kb("v", 8))
	}

	absent := kb("does-not-exist", 8)
	hash := c.hasher.Hash(absent)
	res := c.probe(hash, absent)
	if res.found {
		t.Fatal("probe() reported found for a key never inserted")
	}

	home := c.slots.home(hash)
	i := home
	steps := 0
	for {
		if c.slots.isEmpty(i) {
			break
		}
		steps++
		if steps > c.slots.size() {
			t.Fatal("probe run never reached an EMPTY slot within one full table pass")
		}
		i = c.slots.next(i)
	}
}

// P8: eviction never visits more than MAX_EVICTION_SEARCH ALIVE slots;
// EMPTY and TOMBSTONE slots it passes do not count against the budget, and
// the sweep never covers more than one full pass over the table.
func TestProperty_EvictionBudget(t *testing.T) {
	c := newTestCache(t, 8, 8, 16)
	for i := 0; i < c.MaxItems(); i++ {
		c.Put(kb(fmt.Sprintf("k%d", i), 8), kb("v", 8))
	}

	for round := 0; round < 8; round++ {
		start := c.evictCursor
		wasAlive := make([]bool, c.SlotCount())
		for i := range wasAlive {
			wasAlive[i] = c.slots.isAlive(uint32(i))
		}

		before := c.stats.Evictions.Scans
		c.Put(kb(fmt.Sprintf("overflow%d", round), 8), kb("v", 8))
		scans := c.stats.Evictions.Scans - before
		if scans > int64(c.SlotCount()) {
			t.Fatalf("eviction scanned %d slots, more than one pass over %d slots", scans, c.SlotCount())
		}

		aliveVisited := 0
		for n, i := int64(0), start; n < scans; n, i = n+1, c.slots.next(i) {
			if wasAlive[i] {
				aliveVisited++
			}
		}
		if aliveVisited > maxEvictionSearch {
			t.Fatalf("eviction visited %d ALIVE slots, exceeds budget %d", aliveVisited, maxEvictionSearch)
		}
	}
}

func TestCreate_RejectsNonPositiveSizes(t *testing.T) {
	if _, err := Create(Config{KeySize: 0, ValueSize: 8}); err == nil {
		t.Error("Create() with zero KeySize did not error")
	}
	if _, err := Create(Config{KeySize: 8, ValueSize: 0}); err == nil {
		t.Error("Create() with zero ValueSize did not error")
	}
}

func TestAccessors(t *testing.T) {
	c := newTestCache(t, 12, 20, 32)
	if c.KeySize() != 12 {
		t.Errorf("KeySize() = %d, want 12", c.KeySize())
	}
	if c.ValueSize() != 20 {
		t.Errorf("ValueSize() = %d, want 20", c.ValueSize())
	}
	if c.HasFiller() {
		t.Error("HasFiller() true with no Filler configured")
	}
	if c.MaxItems() <= 0 {
		t.Error("MaxItems() must be positive")
	}
	if c.SlotCount() < c.MaxItems() {
		t.Errorf("SlotCount() = %d, smaller than MaxItems() = %d", c.SlotCount(), c.MaxItems())
	}
}
