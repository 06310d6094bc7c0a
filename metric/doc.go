// Package metric provides the Prometheus metrics for peer-observer
// extractors: a registry wrapping a dedicated Prometheus registry with the
// core extractor and NATS metrics pre-registered, and an HTTP server
// exposing them.
//
// Core metrics cover the extraction loop (ticks, query failures, query
// duration), publishing (events published per subject), the log pipeline
// (lines read, lines dropped by rate limiting), and the NATS connection
// (status, RTT, reconnects, circuit breaker state). Extractors register any
// additional metrics through the MetricsRegistrar interface.
package metric
