package events

import "fmt"

// Ebpf is the payload published by the tracing extractor, sourced from the
// node's usdt tracepoints.
type Ebpf struct {
	Msg        *TracedMsg        `cbor:"1,keyasint,omitempty" json:"msg,omitempty"`
	Connection *TracedConnection `cbor:"2,keyasint,omitempty" json:"connection,omitempty"`
	Addrman    *TracedAddrman    `cbor:"3,keyasint,omitempty" json:"addrman,omitempty"`
	Mempool    *TracedMempool    `cbor:"4,keyasint,omitempty" json:"mempool,omitempty"`
	Validation *TracedValidation `cbor:"5,keyasint,omitempty" json:"validation,omitempty"`
}

// Subject returns the tracing extractor's bus subject.
func (t *Ebpf) Subject() Subject { return SubjectEbpf }

func (t *Ebpf) attach(e *Envelope) { e.Ebpf = t }

func (t *Ebpf) String() string {
	switch {
	case t.Msg != nil:
		return t.Msg.String()
	case t.Connection != nil:
		return t.Connection.String()
	case t.Addrman != nil:
		return t.Addrman.String()
	case t.Mempool != nil:
		return t.Mempool.String()
	case t.Validation != nil:
		return t.Validation.String()
	default:
		return "Ebpf()"
	}
}

// TracedMsg is one P2P wire message observed at the net:inbound_message or
// net:outbound_message tracepoint.
type TracedMsg struct {
	PeerID      uint64 `cbor:"1,keyasint" json:"peer_id"`
	PeerAddress string `cbor:"2,keyasint" json:"peer_address"`
	Command     string `cbor:"3,keyasint" json:"command"`
	Inbound     bool   `cbor:"4,keyasint" json:"inbound"`
	Size        uint64 `cbor:"5,keyasint" json:"size"`
}

func (m *TracedMsg) String() string {
	dir := "outbound"
	if m.Inbound {
		dir = "inbound"
	}
	return fmt.Sprintf("TracedMsg(peer=%d, %s %s, %dB)", m.PeerID, dir, m.Command, m.Size)
}

// TracedConnection is a peer connection lifecycle event (opened, closed,
// evicted, inbound refused).
type TracedConnection struct {
	PeerID         uint64 `cbor:"1,keyasint" json:"peer_id"`
	PeerAddress    string `cbor:"2,keyasint" json:"peer_address"`
	ConnectionType string `cbor:"3,keyasint" json:"connection_type"`
	Event          string `cbor:"4,keyasint" json:"event"`
	NetworkGroup   uint64 `cbor:"5,keyasint,omitempty" json:"network_group,omitempty"`
}

func (c *TracedConnection) String() string {
	return fmt.Sprintf("TracedConnection(peer=%d, %s, %s)", c.PeerID, c.ConnectionType, c.Event)
}

// TracedAddrman is an address-manager table change event.
type TracedAddrman struct {
	Event     string `cbor:"1,keyasint" json:"event"`
	Address   string `cbor:"2,keyasint" json:"address"`
	Source    string `cbor:"3,keyasint,omitempty" json:"source,omitempty"`
	Bucket    int32  `cbor:"4,keyasint,omitempty" json:"bucket,omitempty"`
	BucketPos int32  `cbor:"5,keyasint,omitempty" json:"bucket_pos,omitempty"`
}

func (a *TracedAddrman) String() string {
	return fmt.Sprintf("TracedAddrman(%s, %s)", a.Event, a.Address)
}

// TracedMempool is a mempool add, remove, reject, or replace event.
type TracedMempool struct {
	Event  string `cbor:"1,keyasint" json:"event"`
	Txid   string `cbor:"2,keyasint" json:"txid"`
	Vsize  uint64 `cbor:"3,keyasint,omitempty" json:"vsize,omitempty"`
	Fee    int64  `cbor:"4,keyasint,omitempty" json:"fee,omitempty"`
	Reason string `cbor:"5,keyasint,omitempty" json:"reason,omitempty"`
}

func (m *TracedMempool) String() string {
	return fmt.Sprintf("TracedMempool(%s, txid=%s)", m.Event, m.Txid)
}

// TracedValidation is a block-validation timing observation from the
// validation:block_connected tracepoint.
type TracedValidation struct {
	BlockHash          string `cbor:"1,keyasint" json:"block_hash"`
	Height             uint32 `cbor:"2,keyasint" json:"height"`
	Transactions       uint64 `cbor:"3,keyasint" json:"transactions"`
	Inputs             uint32 `cbor:"4,keyasint" json:"inputs"`
	SigopCost          uint64 `cbor:"5,keyasint" json:"sigop_cost"`
	ConnectionTimeNano uint64 `cbor:"6,keyasint" json:"connection_time_nano"`
}

func (v *TracedValidation) String() string {
	return fmt.Sprintf("TracedValidation(hash=%s, height=%d, duration=%dns)",
		v.BlockHash, v.Height, v.ConnectionTimeNano)
}
