// metrics.go: a Prometheus-backed MetricsCollector implementation.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package ichcache

import "github.com/prometheus/client_golang/prometheus"

// PrometheusMetricsCollector records Cache events as Prometheus counters
// and a histogram of probe-chain length per operation.
type PrometheusMetricsCollector struct {
	lookups   *prometheus.CounterVec
	adds      prometheus.Counter
	updates   prometheus.Counter
	evictions prometheus.Counter
	scans     *prometheus.HistogramVec
}

// NewPrometheusMetricsCollector builds a collector and registers its
// metrics, all named with the given prefix, against reg.
func NewPrometheusMetricsCollector(reg prometheus.Registerer, prefix string) (*PrometheusMetricsCollector, error) {
	m := &PrometheusMetricsCollector{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_lookups_total",
			Help: "Total Lookup/Fetch/Get calls, partitioned by hit/miss.",
		}, []string{"result"}),
		adds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_adds_total",
			Help: "Total new items inserted.",
		}),
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_updates_total",
			Help: "Total existing items overwritten in place.",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_evictions_total",
			Help: "Total items reclaimed to make room for an insert.",
		}),
		scans: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_probe_scans",
			Help:    "Probe slots visited per operation.",
			Buckets: []float64{1, 2, 4, 8, 16, 32},
		}, []string{"op"}),
	}

	for _, c := range []prometheus.Collector{m.lookups, m.adds, m.updates, m.evictions, m.scans} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *PrometheusMetricsCollector) RecordLookup(hit bool, scans int) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.lookups.WithLabelValues(result).Inc()
	m.scans.WithLabelValues("lookup").Observe(float64(scans))
}

func (m *PrometheusMetricsCollector) RecordAdd(scans int) {
	m.adds.Inc()
	m.scans.WithLabelValues("add").Observe(float64(scans))
}

func (m *PrometheusMetricsCollector) RecordUpdate(scans int) {
	m.updates.Inc()
	m.scans.WithLabelValues("update").Observe(float64(scans))
}

func (m *PrometheusMetricsCollector) RecordEviction(scans int) {
	m.evictions.Inc()
	m.scans.WithLabelValues("evict").Observe(float64(scans))
}
