/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package localcache

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/acronis/go-localcache/internal/libinfo"
)

// MetricsCollector represents a collector of metrics to analyze how (effectively or not) cache is used.
type MetricsCollector interface {
	// SetAmount sets the total number of entries in the cache.
	SetAmount(int)

	// IncHits increments the total number of keys found unexpired in the cache.
	IncHits()

	// IncMisses increments the total number of keys absent or expired in the cache.
	IncMisses()

	// AddExpirations increments the total number of expired entries removed to free room.
	AddExpirations(int)

	// AddEvictions increments the total number of live entries evicted to free room.
	AddEvictions(int)
}

// PrometheusMetricsOpts represents options for PrometheusMetrics.
type PrometheusMetricsOpts struct {
	// Namespace is a namespace for metrics. It will be prepended to all metric names.
	Namespace string

	// ConstLabels is a set of labels that will be applied to all metrics.
	ConstLabels prometheus.Labels

	// CurriedLabelNames is a list of label names that will be curried with the provided labels.
	// If this list is not empty, PrometheusMetrics.MustCurryWith must be called with the same labels,
	// otherwise the collector will panic.
	CurriedLabelNames []string
}

// PrometheusMetrics represents Prometheus metrics for the cache.
type PrometheusMetrics struct {
	EntriesAmount    *prometheus.GaugeVec
	HitsTotal        *prometheus.CounterVec
	MissesTotal      *prometheus.CounterVec
	ExpirationsTotal *prometheus.CounterVec
	EvictionsTotal   *prometheus.CounterVec
}

// NewPrometheusMetrics creates a new instance of PrometheusMetrics with default options.
func NewPrometheusMetrics() *PrometheusMetrics {
	return NewPrometheusMetricsWithOpts(PrometheusMetricsOpts{})
}

// NewPrometheusMetricsWithOpts creates a new instance of PrometheusMetrics with the provided options.
// The library version is added to the constant labels.
func NewPrometheusMetricsWithOpts(opts PrometheusMetricsOpts) *PrometheusMetrics {
	metricOpts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{
			Namespace:   opts.Namespace,
			Name:        "local_cache_" + name,
			Help:        help,
			ConstLabels: libinfo.WithVersionLabel(opts.ConstLabels),
		}
	}
	counter := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts(metricOpts(name, help)), opts.CurriedLabelNames)
	}

	return &PrometheusMetrics{
		EntriesAmount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts(metricOpts("entries_amount", "Total number of entries in the local cache.")),
			opts.CurriedLabelNames),
		HitsTotal:        counter("hits_total", "Number of keys found unexpired in the local cache."),
		MissesTotal:      counter("misses_total", "Number of keys absent or expired in the local cache."),
		ExpirationsTotal: counter("expirations_total", "Number of expired entries removed from the local cache."),
		EvictionsTotal:   counter("evictions_total", "Number of live entries evicted from the local cache."),
	}
}

// MustCurryWith curries the metrics collector with the provided labels.
func (pm *PrometheusMetrics) MustCurryWith(labels prometheus.Labels) *PrometheusMetrics {
	return &PrometheusMetrics{
		EntriesAmount:    pm.EntriesAmount.MustCurryWith(labels),
		HitsTotal:        pm.HitsTotal.MustCurryWith(labels),
		MissesTotal:      pm.MissesTotal.MustCurryWith(labels),
		ExpirationsTotal: pm.ExpirationsTotal.MustCurryWith(labels),
		EvictionsTotal:   pm.EvictionsTotal.MustCurryWith(labels),
	}
}

func (pm *PrometheusMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{pm.EntriesAmount, pm.HitsTotal, pm.MissesTotal, pm.ExpirationsTotal, pm.EvictionsTotal}
}

// MustRegister registers all metrics in the default Prometheus registry and panics on failure.
func (pm *PrometheusMetrics) MustRegister() {
	prometheus.MustRegister(pm.collectors()...)
}

// Unregister removes all metrics from the default Prometheus registry.
func (pm *PrometheusMetrics) Unregister() {
	for _, c := range pm.collectors() {
		prometheus.Unregister(c)
	}
}

// SetAmount sets the total number of entries in the cache.
func (pm *PrometheusMetrics) SetAmount(amount int) {
	pm.EntriesAmount.With(nil).Set(float64(amount))
}

// IncHits increments the total number of keys found unexpired in the cache.
func (pm *PrometheusMetrics) IncHits() {
	pm.HitsTotal.With(nil).Inc()
}

// IncMisses increments the total number of keys absent or expired in the cache.
func (pm *PrometheusMetrics) IncMisses() {
	pm.MissesTotal.With(nil).Inc()
}

// AddExpirations increments the total number of expired entries removed to free room.
func (pm *PrometheusMetrics) AddExpirations(n int) {
	pm.ExpirationsTotal.With(nil).Add(float64(n))
}

// AddEvictions increments the total number of live entries evicted to free room.
func (pm *PrometheusMetrics) AddEvictions(n int) {
	pm.EvictionsTotal.With(nil).Add(float64(n))
}

type disabledMetrics struct{}

func (disabledMetrics) SetAmount(int)      {}
func (disabledMetrics) IncHits()           {}
func (disabledMetrics) IncMisses()         {}
func (disabledMetrics) AddExpirations(int) {}
func (disabledMetrics) AddEvictions(int)   {}
