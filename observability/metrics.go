package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "moodchat"

// Metrics holds every collector of the chat server on a dedicated registry,
// so that tests can build as many instances as they need.
type Metrics struct {
	Registry          *prometheus.Registry
	QueueSize         prometheus.Gauge
	Rooms             prometheus.Gauge
	Connected         prometheus.Gauge
	MatchesTotal      prometheus.Counter
	RelayedTotal      prometheus.Counter
	FlaggedTotal      *prometheus.CounterVec
	ClassifierLatency prometheus.Histogram
	ProcessRSS        prometheus.Gauge
	ProcessCPU        prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		QueueSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "queue_size", Help: "participants waiting for a stranger",
		}),
		Rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "rooms_active", Help: "active two-party rooms",
		}),
		Connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "participants_connected", Help: "connected participants",
		}),
		MatchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "matches_total", Help: "total rooms formed",
		}),
		RelayedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "messages_relayed_total", Help: "messages delivered to a stranger",
		}),
		FlaggedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "messages_flagged_total", Help: "messages rejected by the content gate",
		}, []string{"reason"}),
		ClassifierLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "classifier_latency_seconds", Help: "external classifier round trip",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
		ProcessRSS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "process_rss_bytes", Help: "resident memory of the server process",
		}),
		ProcessCPU: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "process_cpu_percent", Help: "cpu usage of the server process",
		}),
	}
	m.Registry.MustRegister(
		m.QueueSize, m.Rooms, m.Connected,
		m.MatchesTotal, m.RelayedTotal, m.FlaggedTotal,
		m.ClassifierLatency, m.ProcessRSS, m.ProcessCPU,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) ObserveClassifier(latency time.Duration) {
	m.ClassifierLatency.Observe(latency.Seconds())
}
