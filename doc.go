// Package peerobserver is a multi-source telemetry pipeline for a Bitcoin
// peer-to-peer node.
//
// Extractor processes normalize raw node signals into typed events and
// publish them on a NATS bus, one subject per source:
//
//   - cmd/rpc-extractor polls the node's JSON-RPC interface on a fixed
//     interval (peer table, mempool, bandwidth, addrman, chain stats) and
//     publishes on peerobserver.rpc.
//   - cmd/log-extractor follows the node's debug.log, classifies each line,
//     and publishes on peerobserver.log.
//
// Events share one envelope (events.Envelope): an epoch-millisecond
// timestamp plus exactly one typed payload, encoded as deterministic CBOR
// with integer struct keys so the wire schema stays stable across field
// renames. Consumers subscribe to the subjects they care about; delivery is
// fire-and-forget core NATS, so a slow consumer misses events rather than
// backpressuring the node.
//
// Package layout:
//
//   - events: envelope, payload taxonomies (RPC, log, p2p, ebpf), CBOR codec
//   - logparse: total classifier for debug.log lines
//   - extractor: generic periodic extraction loop and watch-style shutdown
//   - rpcclient: minimal Bitcoin Core JSON-RPC client
//   - natsclient: NATS connection management with circuit breaker
//   - config, metric, errors, pkg/...: ambient infrastructure
package peerobserver
