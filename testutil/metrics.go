/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package testutil

import (
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertCounterValue asserts that passed prometheus.Counter has the specified value.
func AssertCounterValue(t assert.TestingT, counter prometheus.Counter, want int) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return assert.Equal(t, want, int(promtestutil.ToFloat64(counter)))
}

// RequireCounterValue calls AssertCounterValue and fails the test immediately in case of error.
func RequireCounterValue(t require.TestingT, counter prometheus.Counter, want int) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if AssertCounterValue(t, counter, want) {
		return
	}
	t.FailNow()
}

// AssertGaugeValue asserts that passed prometheus.Gauge has the specified value.
func AssertGaugeValue(t assert.TestingT, gauge prometheus.Gauge, want int) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return assert.Equal(t, want, int(promtestutil.ToFloat64(gauge)))
}

// RequireGaugeValue calls AssertGaugeValue and fails the test immediately in case of error.
func RequireGaugeValue(t require.TestingT, gauge prometheus.Gauge, want int) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if AssertGaugeValue(t, gauge, want) {
		return
	}
	t.FailNow()
}

// AssertMetricsCount asserts how many metrics (label value combinations) the collector currently exposes.
func AssertMetricsCount(t assert.TestingT, collector prometheus.Collector, want int) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return assert.Equal(t, want, promtestutil.CollectAndCount(collector))
}
