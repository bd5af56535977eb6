package ichcache

import "testing"

func TestFetch_HitNeverCallsFiller(t *testing.T) {
	called := false
	cfg := DefaultConfig()
	cfg.KeySize, cfg.ValueSize, cfg.MinCapacity = 8, 8, 16
	cfg.Filler = func(ctx interface{}, key, out []byte) bool {
		called = true
		return true
	}
	c, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	key := kb("k", 8)
	c.Put(key, kb("v", 8))

	out := make([]byte, 8)
	found, err := c.Fetch(key, out)
	if err != nil || !found {
		t.Fatalf("Fetch() = (%v, %v)", found, err)
	}
	if called {
		t.Error("Fetch() invoked the Filler on a hit")
	}
}

func TestFetch_MissInvokesFillerAndCaches(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeySize, cfg.ValueSize, cfg.MinCapacity = 8, 8, 16
	cfg.Filler = func(ctx interface{}, key, out []byte) bool {
		copy(out, kb("filled", 8))
		return true
	}
	c, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	key := kb("k", 8)
	out := make([]byte, 8)
	found, err := c.Fetch(key, out)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !found {
		t.Fatal("Fetch() reported a miss after a successful Filler call")
	}
	if string(out) != string(kb("filled", 8)) {
		t.Errorf("Fetch() value = %q, want %q", out, "filled")
	}
	if c.ItemCount() != 1 {
		t.Errorf("ItemCount() = %d, want 1 (Fetch should cache the filled value)", c.ItemCount())
	}

	// A second Fetch must hit the cache, not the Filler.
	out2 := make([]byte, 8)
	found2, err := c.Fetch(key, out2)
	if err != nil || !found2 {
		t.Fatalf("second Fetch() = (%v, %v)", found2, err)
	}
}

func TestFetch_NoFillerConfigured(t *testing.T) {
	c := newTestCache(t, 8, 8, 16)
	out := make([]byte, 8)
	_, err := c.Fetch(kb("k", 8), out)
	if err == nil {
		t.Error("Fetch() without a Filler should error")
	}
	if GetErrorCode(err) != ErrCodeNilFiller {
		t.Errorf("error code = %v, want %v", GetErrorCode(err), ErrCodeNilFiller)
	}
}

func TestFetch_FillerDeclines(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeySize, cfg.ValueSize, cfg.MinCapacity = 8, 8, 16
	cfg.Filler = func(ctx interface{}, key, out []byte) bool { return false }
	c, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	out := make([]byte, 8)
	found, err := c.Fetch(kb("k", 8), out)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if found {
		t.Error("Fetch() reported found when Filler returned false")
	}
	if c.ItemCount() != 0 {
		t.Errorf("ItemCount() = %d, want 0 (a declined Filler must not insert)", c.ItemCount())
	}
}

func TestFetch_FillerPanicRecovered(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeySize, cfg.ValueSize, cfg.MinCapacity = 8, 8, 16
	cfg.Filler = func(ctx interface{}, key, out []byte) bool {
		panic("filler exploded")
	}
	c, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	out := make([]byte, 8)
	_, err = c.Fetch(kb("k", 8), out)
	if err == nil {
		t.Fatal("Fetch() did not return an error for a panicking Filler")
	}
	if GetErrorCode(err) != ErrCodeFillerPanic {
		t.Errorf("error code = %v, want %v", GetErrorCode(err), ErrCodeFillerPanic)
	}
}

func TestGetFast_ReturnsNAValueOnMiss(t *testing.T) {
	c := newTestCache(t, 8, 8, 16)
	out := c.GetFast(kb("absent", 8))
	if string(out) != string(make([]byte, 8)) {
		t.Errorf("GetFast() = %v, want zero-filled", out)
	}
}

func TestGetFast_ReturnsConfiguredNAValue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeySize, cfg.ValueSize, cfg.MinCapacity = 8, 8, 16
	cfg.NAValue = kb("NA!", 8)
	c, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	out := c.GetFast(kb("absent", 8))
	if string(out) != string(kb("NA!", 8)) {
		t.Errorf("GetFast() = %q, want %q", out, "NA!")
	}
}

func TestGetFast_ReturnsValueOnHitUsingOwnedBuffer(t *testing.T) {
	c := newTestCache(t, 8, 8, 16)
	key := kb("k", 8)
	c.Put(key, kb("v", 8))

	out := c.GetFast(key)
	if string(out) != string(kb("v", 8)) {
		t.Errorf("GetFast() = %q, want %q", out, "v")
	}
	if &out[0] != &c.fastOut[0] {
		t.Error("GetFast() did not return the cache-owned buffer")
	}
}

func TestPutFast_DiscardsError(t *testing.T) {
	c := newTestCache(t, 8, 8, 16)
	if !c.PutFast(kb("k", 8), kb("v", 8)) {
		t.Error("PutFast() returned false on a valid Put")
	}
	if c.PutFast(make([]byte, 1), kb("v", 8)) {
		t.Error("PutFast() returned true on a size mismatch")
	}
}
