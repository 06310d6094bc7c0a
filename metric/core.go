package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the core metrics shared by all extractors.
type Metrics struct {
	// Extraction loop metrics
	TicksTotal      *prometheus.CounterVec
	QueryFailures   *prometheus.CounterVec
	QueryDuration   *prometheus.HistogramVec
	EventsPublished *prometheus.CounterVec

	// Log pipeline metrics
	LogLinesRead    *prometheus.CounterVec
	LogLinesDropped *prometheus.CounterVec

	// NATS metrics
	NATSConnected      prometheus.Gauge
	NATSRTT            prometheus.Gauge
	NATSReconnects     prometheus.Counter
	NATSCircuitBreaker prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all core metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		TicksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "peerobserver",
				Subsystem: "extractor",
				Name:      "ticks_total",
				Help:      "Total number of extraction ticks run",
			},
			[]string{"extractor"},
		),

		QueryFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "peerobserver",
				Subsystem: "extractor",
				Name:      "query_failures_total",
				Help:      "Total number of failed extraction queries",
			},
			[]string{"extractor", "query"},
		),

		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "peerobserver",
				Subsystem: "extractor",
				Name:      "query_duration_seconds",
				Help:      "Extraction query duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"extractor", "query"},
		),

		EventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "peerobserver",
				Subsystem: "events",
				Name:      "published_total",
				Help:      "Total number of events published to the bus",
			},
			[]string{"extractor", "subject"},
		),

		LogLinesRead: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "peerobserver",
				Subsystem: "log",
				Name:      "lines_read_total",
				Help:      "Total number of log lines read from the source",
			},
			[]string{"source"},
		),

		LogLinesDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "peerobserver",
				Subsystem: "log",
				Name:      "lines_dropped_total",
				Help:      "Total number of log lines dropped by the rate limiter",
			},
			[]string{"source"},
		),

		NATSConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "peerobserver",
				Subsystem: "nats",
				Name:      "connected",
				Help:      "NATS connection status (0=disconnected, 1=connected)",
			},
		),

		NATSRTT: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "peerobserver",
				Subsystem: "nats",
				Name:      "rtt_milliseconds",
				Help:      "NATS round-trip time in milliseconds",
			},
		),

		NATSReconnects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "peerobserver",
				Subsystem: "nats",
				Name:      "reconnects_total",
				Help:      "Total number of NATS reconnections",
			},
		),

		NATSCircuitBreaker: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "peerobserver",
				Subsystem: "nats",
				Name:      "circuit_breaker",
				Help:      "NATS circuit breaker status (0=closed, 1=open, 2=half-open)",
			},
		),
	}
}

// RecordTick increments the tick counter for an extractor.
func (c *Metrics) RecordTick(extractor string) {
	c.TicksTotal.WithLabelValues(extractor).Inc()
}

// RecordQueryFailure increments the failure counter for one query.
func (c *Metrics) RecordQueryFailure(extractor, query string) {
	c.QueryFailures.WithLabelValues(extractor, query).Inc()
}

// RecordQueryDuration records how long one query took.
func (c *Metrics) RecordQueryDuration(extractor, query string, duration time.Duration) {
	c.QueryDuration.WithLabelValues(extractor, query).Observe(duration.Seconds())
}

// RecordEventPublished increments the published counter for a subject.
func (c *Metrics) RecordEventPublished(extractor, subject string) {
	c.EventsPublished.WithLabelValues(extractor, subject).Inc()
}

// RecordLogLineRead increments the read counter for a log source.
func (c *Metrics) RecordLogLineRead(source string) {
	c.LogLinesRead.WithLabelValues(source).Inc()
}

// RecordLogLineDropped increments the rate-limit drop counter for a source.
func (c *Metrics) RecordLogLineDropped(source string) {
	c.LogLinesDropped.WithLabelValues(source).Inc()
}

// RecordNATSStatus updates NATS connection status.
func (c *Metrics) RecordNATSStatus(connected bool) {
	value := 0.0
	if connected {
		value = 1.0
	}
	c.NATSConnected.Set(value)
}

// RecordNATSRTT updates NATS round-trip time.
func (c *Metrics) RecordNATSRTT(rtt time.Duration) {
	c.NATSRTT.Set(float64(rtt.Milliseconds()))
}

// RecordNATSReconnect increments the reconnection counter.
func (c *Metrics) RecordNATSReconnect() {
	c.NATSReconnects.Inc()
}

// RecordCircuitBreakerState updates circuit breaker status.
func (c *Metrics) RecordCircuitBreakerState(state int) {
	c.NATSCircuitBreaker.Set(float64(state))
}
