package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds all Prometheus metrics for the consus service
type Metrics struct {
	// Provider fan-out
	ProviderRequests *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec

	// HTTP surface
	HTTPRequests *prometheus.CounterVec

	// AI bridge
	AIRequests *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. A nil reg skips registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "consus_provider_requests_total",
			Help: "Single-locale provider searches by outcome",
		}, []string{"provider", "locale", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "consus_provider_duration_seconds",
			Help:    "Single-locale provider search latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "consus_http_requests_total",
			Help: "API requests by endpoint and status code",
		}, []string{"endpoint", "code"}),
		AIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "consus_ai_requests_total",
			Help: "AI collaborator calls by outcome",
		}, []string{"outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.ProviderRequests, m.ProviderDuration, m.HTTPRequests, m.AIRequests)
	}
	return m
}
