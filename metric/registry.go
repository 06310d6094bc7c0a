package metric

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/peer-observer/peer-observer/errors"
)

// MetricsRegistrar defines the interface for registering extractor-specific
// metrics.
type MetricsRegistrar interface {
	RegisterCounter(extractor, metricName string, counter prometheus.Counter) error
	RegisterGauge(extractor, metricName string, gauge prometheus.Gauge) error
	RegisterCounterVec(extractor, metricName string, counterVec *prometheus.CounterVec) error
	RegisterHistogramVec(extractor, metricName string, histogramVec *prometheus.HistogramVec) error
	Unregister(extractor, metricName string) bool
}

// MetricsRegistry manages the registration and lifecycle of metrics.
type MetricsRegistry struct {
	prometheusRegistry *prometheus.Registry
	Metrics            *Metrics
	registeredMetrics  map[string]prometheus.Collector
	mu                 sync.RWMutex
}

// NewMetricsRegistry creates a new metrics registry with the core extractor
// metrics and Go runtime collectors pre-registered.
func NewMetricsRegistry() *MetricsRegistry {
	registry := &MetricsRegistry{
		prometheusRegistry: prometheus.NewRegistry(),
		registeredMetrics:  make(map[string]prometheus.Collector),
	}

	registry.Metrics = NewMetrics()
	registry.registerCoreMetrics()

	registry.prometheusRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}

// PrometheusRegistry returns the underlying Prometheus registry.
func (r *MetricsRegistry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}

// CoreMetrics returns the core extractor metrics.
func (r *MetricsRegistry) CoreMetrics() *Metrics {
	return r.Metrics
}

// RegisterCounter registers a counter metric for an extractor.
func (r *MetricsRegistry) RegisterCounter(extractor, metricName string, counter prometheus.Counter) error {
	return r.register(extractor, metricName, counter, "RegisterCounter")
}

// RegisterGauge registers a gauge metric for an extractor.
func (r *MetricsRegistry) RegisterGauge(extractor, metricName string, gauge prometheus.Gauge) error {
	return r.register(extractor, metricName, gauge, "RegisterGauge")
}

// RegisterCounterVec registers a counter vector metric for an extractor.
func (r *MetricsRegistry) RegisterCounterVec(extractor, metricName string, counterVec *prometheus.CounterVec) error {
	return r.register(extractor, metricName, counterVec, "RegisterCounterVec")
}

// RegisterHistogramVec registers a histogram vector metric for an extractor.
func (r *MetricsRegistry) RegisterHistogramVec(
	extractor, metricName string, histogramVec *prometheus.HistogramVec) error {
	return r.register(extractor, metricName, histogramVec, "RegisterHistogramVec")
}

func (r *MetricsRegistry) register(extractor, metricName string, collector prometheus.Collector, method string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s.%s", extractor, metricName)

	if _, exists := r.registeredMetrics[key]; exists {
		return errors.WrapInvalid(
			fmt.Errorf("metric %s already registered for extractor %s", metricName, extractor),
			"MetricsRegistry", method, "duplicate metric registration")
	}

	if err := r.prometheusRegistry.Register(collector); err != nil {
		var alreadyRegErr prometheus.AlreadyRegisteredError
		if stderrors.As(err, &alreadyRegErr) {
			return errors.WrapInvalid(err, "MetricsRegistry", method,
				fmt.Sprintf("prometheus conflict for metric %s", metricName))
		}
		return errors.WrapFatal(err, "MetricsRegistry", method,
			"failed to register collector with prometheus")
	}

	r.registeredMetrics[key] = collector
	return nil
}

// Unregister removes a metric from the registry.
func (r *MetricsRegistry) Unregister(extractor, metricName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s.%s", extractor, metricName)

	collector, exists := r.registeredMetrics[key]
	if !exists {
		return false
	}

	success := r.prometheusRegistry.Unregister(collector)
	if success {
		delete(r.registeredMetrics, key)
	}

	return success
}

func (r *MetricsRegistry) registerCoreMetrics() {
	r.prometheusRegistry.MustRegister(
		r.Metrics.TicksTotal,
		r.Metrics.QueryFailures,
		r.Metrics.QueryDuration,
		r.Metrics.EventsPublished,
		r.Metrics.LogLinesRead,
		r.Metrics.LogLinesDropped,
		r.Metrics.NATSConnected,
		r.Metrics.NATSRTT,
		r.Metrics.NATSReconnects,
		r.Metrics.NATSCircuitBreaker,
	)
}
