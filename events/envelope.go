package events

import (
	"errors"
	"fmt"

	"github.com/peer-observer/peer-observer/pkg/timestamp"
)

// ErrClockBeforeEpoch is returned by New when the system clock reports a
// time before the Unix epoch. It is the only way envelope construction can
// fail.
var ErrClockBeforeEpoch = errors.New("system clock before unix epoch")

// Envelope is the top-level message published on the bus. It wraps exactly
// one source-specific payload together with the wall-clock time at
// construction. The timestamp is "now" at construction, nothing more:
// envelopes constructed concurrently may arrive out of order and consumers
// must tolerate that.
type Envelope struct {
	// Timestamp is Unix epoch milliseconds at construction. An unsigned
	// millisecond counter is good for roughly the next 500,000 years.
	Timestamp uint64 `cbor:"1,keyasint" json:"timestamp"`

	// Exactly one of the following is non-nil.
	Rpc  *Rpc  `cbor:"2,keyasint,omitempty" json:"rpc,omitempty"`
	Log  *Log  `cbor:"3,keyasint,omitempty" json:"log,omitempty"`
	P2P  *P2P  `cbor:"4,keyasint,omitempty" json:"p2p,omitempty"`
	Ebpf *Ebpf `cbor:"5,keyasint,omitempty" json:"ebpf,omitempty"`
}

// Payload is implemented by the per-source event types that an Envelope can
// wrap. The set is closed: one implementation per extractor source.
type Payload interface {
	fmt.Stringer
	// Subject returns the fixed bus subject for this payload's source.
	Subject() Subject
	attach(*Envelope)
}

// New wraps payload in an Envelope stamped with the current wall-clock time
// at millisecond resolution. It fails only if the system clock is before the
// Unix epoch.
func New(payload Payload) (*Envelope, error) {
	ms := timestamp.NowMillis()
	if ms < 0 {
		return nil, ErrClockBeforeEpoch
	}
	e := &Envelope{Timestamp: uint64(ms)}
	payload.attach(e)
	return e, nil
}

// Payload returns the single payload carried by the envelope, or nil for an
// envelope with no payload set (only possible for hand-built values).
func (e *Envelope) Payload() Payload {
	switch {
	case e.Rpc != nil:
		return e.Rpc
	case e.Log != nil:
		return e.Log
	case e.P2P != nil:
		return e.P2P
	case e.Ebpf != nil:
		return e.Ebpf
	default:
		return nil
	}
}
