// Package ichcache provides a fixed-capacity, in-process, single-threaded
// key-value cache built on an open-addressing hash table with linear
// probing and an aging-counter eviction policy — a low-overhead
// approximation of LRU.
//
// # Overview
//
// ichcache is designed for the narrow case where a caller needs a
// predictable cache of fixed-size byte-blob keys and values whose capacity
// never grows past what was requested at creation. Lookup, Fetch and
// GetFast do not allocate; an item's key and value buffers are allocated
// the first time its item-pool index is used, and Get returns a freshly
// allocated slice:
//
//   - Open addressing with linear probing: no per-entry pointer chasing.
//   - Indexed item pool: slots reference items by integer index, so
//     eviction never moves keys or values, only reassigns an index.
//   - Aging counters (0-7) instead of a full LRU list: O(1) eviction with
//     a bounded sweep cost per insert.
//   - Hardware CRC32 when the CPU supports it, a golden-ratio multiplicative
//     mix otherwise, chosen once per process.
//
// # Quick start
//
//	cache, err := ichcache.Create(ichcache.Config{
//	    MinCapacity: 1024,
//	    KeySize:     8,
//	    ValueSize:   8,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cache.Destroy()
//
//	var key, value [8]byte
//	binary.LittleEndian.PutUint64(key[:], 42)
//	binary.LittleEndian.PutUint64(value[:], 100)
//
//	cache.Put(key[:], value[:])
//
//	var out [8]byte
//	if found, _ := cache.Lookup(key[:], out[:]); found {
//	    fmt.Println(binary.LittleEndian.Uint64(out[:]))
//	}
//
// # Filling on miss
//
// Fetch and Get consult a caller-supplied Filler on a miss instead of
// simply reporting a miss:
//
//	cache, _ := ichcache.Create(ichcache.Config{
//	    MinCapacity: 1024,
//	    KeySize:     8,
//	    ValueSize:   8,
//	    Filler: func(ctx interface{}, key []byte, out []byte) bool {
//	        binary.LittleEndian.PutUint64(out, 2*binary.LittleEndian.Uint64(key))
//	        return true
//	    },
//	})
//
// Put and Lookup never invoke the filler; only Fetch and Get do.
//
// # Statistics
//
//	stats := cache.Stats()
//	fmt.Printf("hits=%d misses=%d evictions=%d\n",
//	    stats.Hits.Count, stats.Misses.Count, stats.Evictions.Count)
//
// # Configuration and reconfiguration
//
// MaxLoadFactor, MinCapacity, and the destroyer callbacks can be staged with
// the Stage* methods and committed with Reconfigure, which is destructive:
// every live value is passed to ValueDestroyer and the table is reallocated
// empty at the new size. All prior entries are lost — Reconfigure is not a
// resize-and-keep operation. HotConfig wraps this in a file-watched
// reloader (see hot-reload.go) for environments that want to retune load
// factor or minimum capacity without a restart, accepting the reset that
// comes with it.
//
// # Concurrency
//
// ichcache is explicitly not thread-safe: every exported method on *Cache
// assumes the caller externally serializes access to a given instance.
// There is no internal locking on the hot path, by design.
package ichcache
