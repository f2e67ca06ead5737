package server

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	datasets prometheus.Counter
	points   prometheus.Counter
}

// newMetrics registers the collectors on a registry owned by one handler so
// that handlers built in tests do not collide.
func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airfoil",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "airfoil",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		datasets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airfoil",
			Name:      "datasets_parsed_total",
			Help:      "Polar tables that yielded at least one data point.",
		}),
		points: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airfoil",
			Name:      "points_accepted_total",
			Help:      "Data points accepted from uploaded polar tables.",
		}),
	}
	m.registry.MustRegister(m.requests, m.duration, m.datasets, m.points)
	return m
}
