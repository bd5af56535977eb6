package ichcache

import "testing"

// newTestCache builds a small cache through Create from DefaultConfig with
// the given key/value sizes and minimum capacity (which Create floors at
// DefaultMinCapacity), for white-box tests of the probe/evict/insert
// engines.
func newTestCache(t *testing.T, keySize, valueSize, minCapacity int) *Cache {
	t.Helper()
	cfg := DefaultConfig()
	cfg.KeySize = keySize
	cfg.ValueSize = valueSize
	cfg.MinCapacity = minCapacity
	c, err := Create(cfg)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return c
}

func kb(s string, size int) []byte {
	b := make([]byte, size)
	copy(b, s)
	return b
}

func TestKeysEqual_ShortPath(t *testing.T) {
	if !keysEqual(kb("abcdefgh", 8), kb("abcdefgh", 8)) {
		t.Error("keysEqual() false for identical 8-byte keys")
	}
	if keysEqual(kb("abcdefgh", 8), kb("abcdefgx", 8)) {
		t.Error("keysEqual() true for keys differing in the last byte")
	}
	if keysEqual(kb("abcdefgh", 8), kb("xbcdefgh", 8)) {
		t.Error("keysEqual() true for keys differing in the first byte")
	}

	a, b := make([]byte, 16), make([]byte, 16)
	for i := range a {
		a[i], b[i] = byte(i), byte(i)
	}
	if !keysEqual(a, b) {
		t.Error("keysEqual() false for identical 16-byte keys")
	}
	b[15]++
	if keysEqual(a, b) {
		t.Error("keysEqual() true for 16-byte keys differing only in the last byte")
	}
}

func TestKeysEqual_LongPath(t *testing.T) {
	a := make([]byte, 40)
	for i := range a {
		a[i] = byte(i)
	}
	b := append([]byte(nil), a...)
	if !keysEqual(a, b) {
		t.Error("keysEqual() false for identical 40-byte keys")
	}
	b[39]++
	if keysEqual(a, b) {
		t.Error("keysEqual() true for 40-byte keys differing only in the last byte")
	}
}

func TestKeysEqual_DifferentLengths(t *testing.T) {
	if keysEqual(kb("a", 4), kb("a", 8)) {
		t.Error("keysEqual() true for keys of different lengths")
	}
}
