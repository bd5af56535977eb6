// interfaces.go: public collaborator interfaces for ichcache.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package ichcache

// Filler computes a value for a key that missed the cache. It receives the
// filler context configured at creation time and the raw key bytes, and
// must write exactly ValueSize bytes to out when it returns true. Returning
// false leaves the cache state untouched and the lookup reports a miss.
type Filler func(ctx interface{}, key []byte, out []byte) bool

// ValueDestroyer is invoked once per live value at RemoveAll/Destroy time,
// and once per evicted value immediately before its item-pool slot is
// reused. The value slice it receives is the item pool's own storage for
// that value; it is only valid for the duration of the call, since the
// pool reuses or drops it right afterwards.
type ValueDestroyer func(ctx interface{}, value []byte)

// ContextDestroyer is invoked once, at Destroy, to release whatever the
// caller's FillerContext / destroyer context owns.
type ContextDestroyer func(ctx interface{})

// Logger defines a minimal, allocation-free logging interface. Implementations
// should use structured logging; PrintStats and internal diagnostics log
// through this instead of writing text directly.
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

// NoOpLogger discards everything. It is the default when Config.Logger is nil.
type NoOpLogger struct{}

func (NoOpLogger) Debug(msg string, keyvals ...interface{}) {}
func (NoOpLogger) Info(msg string, keyvals ...interface{})  {}
func (NoOpLogger) Warn(msg string, keyvals ...interface{})  {}
func (NoOpLogger) Error(msg string, keyvals ...interface{}) {}

// TimeProvider supplies the current time in nanoseconds since epoch. It
// exists so PrintStats can be driven by an injected clock in tests without
// the core engine depending on wall-clock time anywhere on its hot path
// (PrintStats is its only caller; the engine itself never calls it).
type TimeProvider interface {
	Now() int64
}

// MetricsCollector receives operation-level events for external observability
// backends (Prometheus, OpenTelemetry, ...). It is nil-safe: Config.Validate
// installs NoOpMetricsCollector when none is supplied, so the engine never
// needs a nil check on its hot path.
type MetricsCollector interface {
	// RecordLookup is called once per Lookup/Fetch/Get/GetFast call, hit or miss.
	RecordLookup(hit bool, scans int)
	// RecordAdd is called once per new key inserted (not an update).
	RecordAdd(scans int)
	// RecordUpdate is called once per Put/insertion-engine call that updates
	// an existing key rather than inserting a new one.
	RecordUpdate(scans int)
	// RecordEviction is called once per eviction sweep that yields a victim.
	RecordEviction(scans int)
}

// NoOpMetricsCollector discards every event. It is the default when
// Config.MetricsCollector is nil.
type NoOpMetricsCollector struct{}

func (NoOpMetricsCollector) RecordLookup(hit bool, scans int) {}
func (NoOpMetricsCollector) RecordAdd(scans int)              {}
func (NoOpMetricsCollector) RecordUpdate(scans int)           {}
func (NoOpMetricsCollector) RecordEviction(scans int)         {}
