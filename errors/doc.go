// Package errors provides standardized error handling patterns for
// peer-observer extractors.
//
// # Overview
//
// The package implements a three-class error classification system:
// Transient (temporary, the next tick is the implicit retry), Invalid
// (bad input or conversion, non-retryable), and Fatal (unrecoverable,
// abort the extractor).
//
// The two operational tiers of an extractor map onto these classes:
//
//   - Fatal/startup: invalid or missing credentials, inability to reach the
//     bus. These abort the process before any tick runs.
//   - Per-operation/recoverable: a query, conversion, encode or publish
//     failure inside one tick. These are logged with the failing query's
//     name and cause, and the loop continues. No mid-tick retries are
//     scheduled; the next regular tick retries implicitly.
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Loop", "tick", "publish")     // recoverable
//	errors.WrapInvalid(err, "Config", "Validate", "auth")    // bad input
//	errors.WrapFatal(err, "Extractor", "Run", "connect bus") // abort
//
// The generic Wrap() preserves the original error's classification.
//
// # Integration with errors.Is/As
//
// All error types support standard library error inspection; classification
// is preserved through wrapping chains:
//
//	wrapped := errors.WrapTransient(err, "Loop", "tick", "fetch getpeerinfo")
//	errors.IsTransient(wrapped) // true
//
// Context errors (context.DeadlineExceeded, context.Canceled) classify as
// Transient so context-based timeouts are handled uniformly.
package errors
