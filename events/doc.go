// Package events defines the canonical event model shared by all
// peer-observer extractors: the Envelope wrapper published on the bus, the
// per-source payload taxonomies (RPC, log, P2P, eBPF), the fixed bus subject
// for each source, and the binary codec used on the wire.
//
// An Envelope carries a creation timestamp (Unix milliseconds) and exactly
// one payload. Payload correctness is each producer's responsibility; the
// envelope is a pure value container and validates nothing beyond the clock.
//
// Every entity here is created fresh per tick or per log line and fully
// consumed by the publish step. Nothing persists beyond one publish cycle.
package events
