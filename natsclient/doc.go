// Package natsclient wraps the NATS Go client with the reliability features
// the extractors need: a circuit breaker around connection attempts,
// automatic reconnection with exponential backoff, periodic health
// monitoring, and connection metrics.
//
// Circuit breaker: after a threshold of consecutive failures (default 5)
// the circuit opens and connection attempts fail fast with ErrCircuitOpen.
// The circuit re-arms after a backoff that doubles per round up to a
// maximum.
//
// Publishing is plain core NATS, fire-and-forget: a nil error means the
// message was handed to the transport, not that any consumer received it.
//
// Basic usage:
//
//	client, err := natsclient.NewClient("nats://127.0.0.1:4222",
//		natsclient.WithName("rpc-extractor"))
//	if err != nil {
//		return err
//	}
//	ctx := context.Background()
//	if err := client.Connect(ctx); err != nil {
//		return err
//	}
//	defer client.Close(ctx)
//
//	err = client.Publish("peerobserver.rpc", data)
package natsclient
