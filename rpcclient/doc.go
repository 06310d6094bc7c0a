// Package rpcclient is a minimal Bitcoin Core JSON-RPC client covering the
// methods the RPC extractor polls. Responses are decoded into structs that
// mirror the node's JSON field names; conversion to bus event types happens
// in the extractor.
//
// Authentication is either a cookie file or a user/password pair, never
// both. The cookie file is re-read on every request since the node rewrites
// it on restart.
package rpcclient
