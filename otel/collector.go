// Package otel provides OpenTelemetry integration for ichcache metrics.
//
// This package implements the ichcache.MetricsCollector interface using
// OpenTelemetry, enabling percentile calculation (p50, p95, p99) over
// probe-chain length and multi-backend export (Prometheus, Jaeger,
// DataDog, Grafana) alongside, or instead of, the in-tree Prometheus
// collector.
//
// # Usage
//
//	import (
//	    "github.com/agilira/ichcache"
//	    ichcacheotel "github.com/agilira/ichcache/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	exporter, _ := prometheus.New()
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//
//	collector, _ := ichcacheotel.NewOTelMetricsCollector(provider)
//
//	cache, _ := ichcache.Create(ichcache.Config{
//	    KeySize:          16,
//	    ValueSize:        64,
//	    MetricsCollector: collector,
//	})
//
// # Metrics Exposed
//
//   - ichcache_lookup_scans: Histogram of probe slots visited per Lookup/Fetch/Get call
//   - ichcache_add_scans: Histogram of probe slots visited per new insert
//   - ichcache_update_scans: Histogram of probe slots visited per in-place update
//   - ichcache_eviction_scans: Histogram of probe slots visited per eviction sweep
//   - ichcache_lookups_total: Counter of lookups, partitioned by hit/miss
//   - ichcache_evictions_total: Counter of evictions
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"errors"

	"github.com/agilira/ichcache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetricsCollector implements ichcache.MetricsCollector using OpenTelemetry.
type OTelMetricsCollector struct {
	lookupScans   metric.Int64Histogram
	addScans      metric.Int64Histogram
	updateScans   metric.Int64Histogram
	evictionScans metric.Int64Histogram
	lookups       metric.Int64Counter
	evictions     metric.Int64Counter
}

// Options configures OTelMetricsCollector construction.
type Options struct {
	// MeterName is the name of the OpenTelemetry meter.
	// Default: "github.com/agilira/ichcache"
	MeterName string
}

// Option is a functional option for configuring OTelMetricsCollector.
type Option func(*Options)

// WithMeterName sets a custom meter name, useful when distinguishing
// metrics from multiple Cache instances.
func WithMeterName(name string) Option {
	return func(o *Options) {
		o.MeterName = name
	}
}

// NewOTelMetricsCollector creates the OTEL instruments backing a
// MetricsCollector: histograms of probe-chain length per operation kind,
// plus hit/miss and eviction counters.
func NewOTelMetricsCollector(provider metric.MeterProvider, opts ...Option) (*OTelMetricsCollector, error) {
	if provider == nil {
		return nil, errors.New("meter provider cannot be nil")
	}

	options := Options{MeterName: "github.com/agilira/ichcache"}
	for _, opt := range opts {
		opt(&options)
	}

	meter := provider.Meter(options.MeterName)
	collector := &OTelMetricsCollector{}

	var err error
	collector.lookupScans, err = meter.Int64Histogram(
		"ichcache_lookup_scans",
		metric.WithDescription("Probe slots visited per Lookup/Fetch/Get call"),
		metric.WithUnit("{slot}"),
	)
	if err != nil {
		return nil, err
	}

	collector.addScans, err = meter.Int64Histogram(
		"ichcache_add_scans",
		metric.WithDescription("Probe slots visited per new item inserted"),
		metric.WithUnit("{slot}"),
	)
	if err != nil {
		return nil, err
	}

	collector.updateScans, err = meter.Int64Histogram(
		"ichcache_update_scans",
		metric.WithDescription("Probe slots visited per in-place update"),
		metric.WithUnit("{slot}"),
	)
	if err != nil {
		return nil, err
	}

	collector.evictionScans, err = meter.Int64Histogram(
		"ichcache_eviction_scans",
		metric.WithDescription("Probe slots visited per eviction sweep that found a victim"),
		metric.WithUnit("{slot}"),
	)
	if err != nil {
		return nil, err
	}

	collector.lookups, err = meter.Int64Counter(
		"ichcache_lookups_total",
		metric.WithDescription("Total Lookup/Fetch/Get calls, partitioned by hit/miss"),
	)
	if err != nil {
		return nil, err
	}

	collector.evictions, err = meter.Int64Counter(
		"ichcache_evictions_total",
		metric.WithDescription("Total items reclaimed to make room for an insert"),
	)
	if err != nil {
		return nil, err
	}

	return collector, nil
}

// RecordLookup implements ichcache.MetricsCollector.
func (c *OTelMetricsCollector) RecordLookup(hit bool, scans int) {
	ctx := context.Background()
	result := "miss"
	if hit {
		result = "hit"
	}
	c.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	c.lookupScans.Record(ctx, int64(scans))
}

// RecordAdd implements ichcache.MetricsCollector.
func (c *OTelMetricsCollector) RecordAdd(scans int) {
	c.addScans.Record(context.Background(), int64(scans))
}

// RecordUpdate implements ichcache.MetricsCollector.
func (c *OTelMetricsCollector) RecordUpdate(scans int) {
	c.updateScans.Record(context.Background(), int64(scans))
}

// RecordEviction implements ichcache.MetricsCollector.
func (c *OTelMetricsCollector) RecordEviction(scans int) {
	ctx := context.Background()
	c.evictions.Add(ctx, 1)
	c.evictionScans.Record(ctx, int64(scans))
}

// Compile-time interface check
var _ ichcache.MetricsCollector = (*OTelMetricsCollector)(nil)
