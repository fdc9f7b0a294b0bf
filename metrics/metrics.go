// Package metrics provides Prometheus metrics collection for the
// drug-safety API. It exports HTTP server metrics plus two domain
// counters tracking diagnosis and verification outcomes:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//   - diagnosis_total: Counter with risk_level label
//   - verification_total: Counter with status label
//
// All metrics are automatically registered with the Prometheus default
// registry during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	DiagnosisTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diagnosis_total",
			Help: "Total symptom diagnoses by resulting risk level",
		},
		[]string{"risk_level"},
	)

	VerificationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verification_total",
			Help: "Total identity verifications by verdict status",
		},
		[]string{"status"},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen recently)",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(DiagnosisTotal)
	prometheus.MustRegister(VerificationTotal)
	prometheus.MustRegister(RateLimiterBucketsTotal)
}
