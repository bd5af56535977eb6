// Package otel provides OpenTelemetry integration for ichcache metrics.
//
// # Overview
//
// This package implements the ichcache.MetricsCollector interface using
// OpenTelemetry, giving automatic percentile calculation over probe-chain
// length (p50, p95, p99) and export to any OTEL-compatible backend
// (Prometheus, Jaeger, DataDog, Grafana).
//
// It is a separate module so the ichcache core stays free of OTEL
// dependencies; applications that don't need metrics don't pay for them.
//
// # Quick start
//
//	import (
//	    "github.com/agilira/ichcache"
//	    ichcacheotel "github.com/agilira/ichcache/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	exporter, err := prometheus.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//	defer provider.Shutdown(context.Background())
//
//	collector, err := ichcacheotel.NewOTelMetricsCollector(provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cache, err := ichcache.Create(ichcache.Config{
//	    KeySize:          16,
//	    ValueSize:        64,
//	    MetricsCollector: collector,
//	})
//
// # Metrics exposed
//
// Histograms (probe slots visited, with automatic percentiles):
//   - ichcache_lookup_scans
//   - ichcache_add_scans
//   - ichcache_update_scans
//   - ichcache_eviction_scans
//
// Counters:
//   - ichcache_lookups_total{result="hit"|"miss"}
//   - ichcache_evictions_total
//
// # Useful queries
//
// Hit ratio over the last 5 minutes:
//
//	sum(rate(ichcache_lookups_total{result="hit"}[5m])) /
//	sum(rate(ichcache_lookups_total[5m]))
//
// P99 probe-chain length for lookups:
//
//	histogram_quantile(0.99, rate(ichcache_lookup_scans_bucket[5m]))
//
// # Concurrency
//
// A Cache is single-threaded; this collector's methods are called only
// from the same goroutine that drives the Cache, so no additional
// synchronization is introduced here beyond what the OTEL SDK itself
// provides for concurrent Meter access across multiple Cache instances.
package otel
