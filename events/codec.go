package events

import (
	"github.com/fxamacker/cbor/v2"

	perrors "github.com/peer-observer/peer-observer/errors"
)

// Wire codec for envelopes: deterministic CBOR with integer struct keys. The
// integer keys in the struct tags are the stable schema; changing a key is a
// breaking wire change.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Encode serializes an envelope for publishing.
func Encode(e *Envelope) ([]byte, error) {
	data, err := encMode.Marshal(e)
	if err != nil {
		return nil, perrors.WrapInvalid(err, "events", "Encode", "marshal envelope")
	}
	return data, nil
}

// Decode deserializes an envelope received from the bus.
func Decode(data []byte) (*Envelope, error) {
	var e Envelope
	if err := decMode.Unmarshal(data, &e); err != nil {
		return nil, perrors.WrapInvalid(err, "events", "Decode", "unmarshal envelope")
	}
	return &e, nil
}
