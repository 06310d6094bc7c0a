// Package logparse classifies debug-log lines from a Bitcoin Core node into
// structured log events.
//
// Classification is total: every input line yields a Log record. A line is
// first split into timestamp, bracketed metadata, and message by a single
// structural pattern; the message is then run through an ordered matcher
// chain where the catch-all unknown matcher is always last. Parse failures
// degrade the record (zero timestamp, unknown category) instead of rejecting
// the line.
package logparse
