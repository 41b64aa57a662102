package agent

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// metrics are the agent's own Prometheus series. Each server gets its own
// registry so several can coexist in one process.
type metrics struct {
	registry       *prometheus.Registry
	requests       *prometheus.CounterVec
	sampleFailures prometheus.Counter
	sampleSeconds  prometheus.Histogram
	healthScore    prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pulse",
			Subsystem: "agent",
			Name:      "requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
		sampleFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pulse",
			Subsystem: "agent",
			Name:      "sample_failures_total",
			Help:      "Host samples that could not be taken.",
		}),
		sampleSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pulse",
			Subsystem: "agent",
			Name:      "sample_duration_seconds",
			Help:      "Time spent sampling the host for one snapshot.",
			Buckets:   prometheus.DefBuckets,
		}),
		healthScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pulse",
			Subsystem: "agent",
			Name:      "health_score",
			Help:      "Health score of the most recent snapshot.",
		}),
	}
	m.registry.MustRegister(
		m.requests,
		m.sampleFailures,
		m.sampleSeconds,
		m.healthScore,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
