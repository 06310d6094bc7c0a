// Package extractor provides the shared extraction loop run by all periodic
// peer-observer extractors.
//
// A Loop runs a fixed, ordered set of queries once per interval and
// publishes each result to the bus as an envelope on the query's subject.
// Query failures are isolated: one failing query is logged and counted but
// never stops its siblings or the loop. The loop terminates only through its
// shutdown receiver, observed between passes.
package extractor
