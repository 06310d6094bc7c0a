// Package watch provides a single-shot shutdown signal shared between the
// process entrypoint and the extraction loop. A Sender either stops its
// receivers deliberately or is dropped without ever signalling; receivers can
// tell the two apart and both terminate the loop.
package watch

import (
	"sync"
	"sync/atomic"
)

// Sender is the signalling half of a shutdown pair. Stop and Drop are both
// idempotent and safe to call concurrently; whichever happens first wins.
type Sender struct {
	once    sync.Once
	done    chan struct{}
	stopped atomic.Bool
}

// Receiver is the listening half of a shutdown pair. Multiple goroutines may
// share one receiver.
type Receiver struct {
	s *Sender
}

// NewPair creates a connected shutdown sender and receiver.
func NewPair() (*Sender, *Receiver) {
	s := &Sender{done: make(chan struct{})}
	return s, &Receiver{s: s}
}

// Stop signals a deliberate shutdown to all receivers.
func (s *Sender) Stop() {
	s.stopped.Store(true)
	s.once.Do(func() { close(s.done) })
}

// Drop releases the receivers without signalling a deliberate shutdown.
// Receivers still wake up, but Stopped reports false. Deferring Drop at the
// entrypoint guarantees the loop terminates even on an abnormal return path
// that never reaches Stop.
func (s *Sender) Drop() {
	s.once.Do(func() { close(s.done) })
}

// Done returns a channel closed once the sender has stopped or been dropped.
func (r *Receiver) Done() <-chan struct{} {
	return r.s.done
}

// Stopped reports whether the shutdown was deliberate. It is meaningful only
// after Done fires.
func (r *Receiver) Stopped() bool {
	return r.s.stopped.Load()
}
