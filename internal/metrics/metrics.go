package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the bot's collectors. Each instance owns its registry so
// tests can build as many as they need.
type Metrics struct {
	Registry *prometheus.Registry

	Fires   *prometheus.CounterVec
	Sends   *prometheus.CounterVec
	Timers  prometheus.Gauge
	Latency prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Fires: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reminder_fires_total",
			Help: "Timer fires by outcome of the weekday filter (matched|filtered).",
		}, []string{"result"}),
		Sends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reminder_sends_total",
			Help: "Reminder messages handed to the chat platform by status (sent|failed).",
		}, []string{"status"}),
		Timers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "reminder_timers_running",
			Help: "Daily timers currently armed.",
		}),
		Latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reminder_send_duration_seconds",
			Help:    "Time spent delivering one reminder message.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	m.Registry.MustRegister(
		m.Fires,
		m.Sends,
		m.Timers,
		m.Latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
