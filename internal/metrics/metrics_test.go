package metrics_test

import (
	"testing"
	"time"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ application.Metrics = (*metrics.Recorder)(nil)

func TestRecorder(t *testing.T) {
	registry := prometheus.NewRegistry()
	rec := metrics.NewRecorder(registry)

	rec.IntentCreated()
	rec.ConfirmationOutcome("confirmed")
	rec.ConfirmationOutcome("confirmed")
	rec.ReconciliationRequired()
	rec.ScanCandidates("check_expired", 10)
	rec.ScanSideEffect("check_expired", "remove", "failed")
	rec.ObserveHTTP("POST", "/payment/card/confirm", 200, 20*time.Millisecond)

	families, err := registry.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			if c := m.GetCounter(); c != nil {
				values[f.GetName()] += c.GetValue()
			}
		}
	}

	assert.Equal(t, 1.0, values["groupgate_intents_created_total"])
	assert.Equal(t, 2.0, values["groupgate_confirmations_total"])
	assert.Equal(t, 1.0, values["groupgate_reconciliation_required_total"])
	assert.Equal(t, 10.0, values["groupgate_scan_candidates_total"])
	assert.Equal(t, 1.0, values["groupgate_scan_side_effects_total"])
}
