// Package metrics holds the Prometheus collectors of the bar aggregator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bar_aggregator"

// Metrics groups every collector the service updates.
type Metrics struct {
	TicksReceived   *prometheus.CounterVec
	TicksDropped    *prometheus.CounterVec
	BarsClosed      *prometheus.CounterVec
	IngestFailures  *prometheus.CounterVec
	SchedulerFires  *prometheus.CounterVec
	LiveTriggers    prometheus.Gauge
	Subscriptions   prometheus.Gauge
	MarketOpen      prometheus.Gauge
	ConsumerLatency prometheus.Histogram
}

// New registers the collectors on reg. Passing a fresh prometheus.NewRegistry keeps tests isolated.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TicksReceived: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "controller",
				Name:      "ticks_received_total",
				Help:      "Ticks routed to a symbol aggregator",
			},
			[]string{"symbol"},
		),
		TicksDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "controller",
				Name:      "ticks_dropped_total",
				Help:      "Ticks for symbols without an aggregator",
			},
			[]string{"symbol"},
		),
		BarsClosed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "controller",
				Name:      "bars_closed_total",
				Help:      "Bars delivered downstream",
			},
			[]string{"bar_type"},
		),
		IngestFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ingest",
				Name:      "failures_total",
				Help:      "Closed bars a sink failed to accept",
			},
			[]string{"sink"},
		),
		SchedulerFires: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "fires_total",
				Help:      "Job payloads delivered by the scheduler",
			},
			[]string{"job"},
		),
		LiveTriggers: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "controller",
				Name:      "live_triggers",
				Help:      "Durations with a scheduled bar-close job",
			},
		),
		Subscriptions: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "controller",
				Name:      "subscriptions",
				Help:      "Active bar type subscriptions",
			},
		),
		MarketOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "controller",
				Name:      "market_open",
				Help:      "1 while the market session is open",
			},
		),
		ConsumerLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "consumer",
				Name:      "tick_decode_seconds",
				Help:      "Time spent decoding and routing one tick message",
				Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12),
			},
		),
	}
}

// NewNop returns collectors registered on a private registry, for components built without metrics.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// SetMarketOpen records the market session state.
func (m *Metrics) SetMarketOpen(open bool) {
	if open {
		m.MarketOpen.Set(1)
		return
	}
	m.MarketOpen.Set(0)
}
