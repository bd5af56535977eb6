// config.go: configuration for ichcache.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package ichcache

import (
	"github.com/agilira/go-timecache"
)

// Config holds the parameters used to create or reconfigure a Cache.
type Config struct {
	// MinCapacity is the minimum number of distinct keys the cache must be
	// able to hold. The table is sized so that the resulting item pool
	// (MinCapacity scaled by MaxLoadFactor, rounded up to a power-of-two
	// slot count) can hold at least this many items. Default: DefaultMinCapacity.
	MinCapacity int

	// KeySize is the fixed size, in bytes, of every key. Must be > 0.
	KeySize int

	// ValueSize is the fixed size, in bytes, of every value. Must be > 0.
	ValueSize int

	// MaxLoadFactor bounds item_count/M. Must be in (0, 1]. Default: DefaultMaxLoadFactor.
	MaxLoadFactor float64

	// Filler is consulted by Fetch/Get on a miss. Put and Lookup never call it.
	Filler Filler

	// FillerContext is passed verbatim as the first argument to Filler,
	// ValueDestroyer, and ContextDestroyer.
	FillerContext interface{}

	// ValueDestroyer, if set, is invoked on every live value discarded by
	// RemoveAll or Destroy, and on every value an eviction recycles.
	ValueDestroyer ValueDestroyer

	// ContextDestroyer, if set, is invoked once at Destroy.
	ContextDestroyer ContextDestroyer

	// NAValue is returned by GetFast on a miss when no Filler is configured.
	// If unset, a zero-filled ValueSize buffer is returned (spec O5).
	NAValue []byte

	// Logger receives structured diagnostics. Default: NoOpLogger.
	Logger Logger

	// TimeProvider supplies timestamps for PrintStats.
	// Default: a go-timecache-backed provider.
	TimeProvider TimeProvider

	// MetricsCollector receives per-operation events. Default: NoOpMetricsCollector.
	MetricsCollector MetricsCollector
}

// Validate normalizes Config in place, filling in defaults for anything left
// unset or out of range. It does not validate KeySize/ValueSize — those are
// structural and are checked by Create, which returns an error rather than
// silently defaulting them (spec.md §7: invalid key/value size is a caller
// error, not something Validate can sensibly guess a default for).
func (c *Config) Validate() {
	if c.MinCapacity <= 0 {
		c.MinCapacity = DefaultMinCapacity
	}
	if c.MaxLoadFactor <= 0 || c.MaxLoadFactor > 1 {
		c.MaxLoadFactor = DefaultMaxLoadFactor
	}
	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}
	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}
	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}
}

// DefaultConfig returns a Config with every optional field at its default.
// KeySize and ValueSize are left at zero and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		MinCapacity:      DefaultMinCapacity,
		MaxLoadFactor:    DefaultMaxLoadFactor,
		Logger:           NoOpLogger{},
		TimeProvider:     &systemTimeProvider{},
		MetricsCollector: NoOpMetricsCollector{},
	}
}

// systemTimeProvider is the default TimeProvider, backed by go-timecache's
// periodically-refreshed clock rather than a time.Now() syscall per call.
type systemTimeProvider struct{}

func (t *systemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}
