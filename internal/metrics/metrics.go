// Package metrics exposes Prometheus counters for payments, scans and HTTP traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements application.Metrics.
type Recorder struct {
	intentsCreated         prometheus.Counter
	confirmations          *prometheus.CounterVec
	reconciliationRequired prometheus.Counter
	scanCandidates         *prometheus.CounterVec
	scanSideEffects        *prometheus.CounterVec
	httpRequests           *prometheus.HistogramVec
}

func NewRecorder(registry *prometheus.Registry) *Recorder {
	factory := promauto.With(registry)

	return &Recorder{
		intentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "groupgate_intents_created_total",
			Help: "Gateway payment intents attached to transactions",
		}),
		confirmations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "groupgate_confirmations_total",
			Help: "Payment confirmations by outcome",
		}, []string{"outcome"}),
		reconciliationRequired: factory.NewCounter(prometheus.CounterOpts{
			Name: "groupgate_reconciliation_required_total",
			Help: "Payments captured by the gateway whose local finalize failed",
		}),
		scanCandidates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "groupgate_scan_candidates_total",
			Help: "Access windows selected for side effects, by scan mode",
		}, []string{"mode"}),
		scanSideEffects: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "groupgate_scan_side_effects_total",
			Help: "Scan side effects by mode, action and result",
		}, []string{"mode", "action", "result"}),
		httpRequests: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "groupgate_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (r *Recorder) IntentCreated() {
	r.intentsCreated.Inc()
}

func (r *Recorder) ConfirmationOutcome(outcome string) {
	r.confirmations.WithLabelValues(outcome).Inc()
}

func (r *Recorder) ReconciliationRequired() {
	r.reconciliationRequired.Inc()
}

func (r *Recorder) ScanCandidates(mode string, n int) {
	r.scanCandidates.WithLabelValues(mode).Add(float64(n))
}

func (r *Recorder) ScanSideEffect(mode, action, result string) {
	r.scanSideEffects.WithLabelValues(mode, action, result).Inc()
}

func (r *Recorder) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
