/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package testutil

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestRequireCounterValue(t *testing.T) {
	hitsCounter := prometheus.NewCounter(prometheus.CounterOpts{Name: "hits"})
	hitsCounter.Add(42)

	mockT := &recordingT{}
	RequireCounterValue(mockT, hitsCounter, 41)
	require.True(t, mockT.Failed)

	mockT = &recordingT{}
	RequireCounterValue(mockT, hitsCounter, 42)
	require.False(t, mockT.Failed)
}

func TestRequireGaugeValue(t *testing.T) {
	amountGauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "amount"})
	amountGauge.Set(7)

	mockT := &recordingT{}
	RequireGaugeValue(mockT, amountGauge, 8)
	require.True(t, mockT.Failed)

	mockT = &recordingT{}
	RequireGaugeValue(mockT, amountGauge, 7)
	require.False(t, mockT.Failed)
}

func TestAssertMetricsCount(t *testing.T) {
	hitsVec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "hits"}, []string{"type"})
	hitsVec.WithLabelValues("a").Inc()
	hitsVec.WithLabelValues("b").Inc()

	mockT := &recordingT{}
	require.False(t, AssertMetricsCount(mockT, hitsVec, 1))

	mockT = &recordingT{}
	require.True(t, AssertMetricsCount(mockT, hitsVec, 2))
}
