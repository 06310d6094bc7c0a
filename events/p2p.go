package events

import "fmt"

// P2P is the payload published by the P2P extractor: one observation per
// message exchanged with a peer.
type P2P struct {
	PingDuration          *PingDuration          `cbor:"1,keyasint,omitempty" json:"ping_duration,omitempty"`
	AddressAnnouncement   *AddressAnnouncement   `cbor:"2,keyasint,omitempty" json:"address_announcement,omitempty"`
	InventoryAnnouncement *InventoryAnnouncement `cbor:"3,keyasint,omitempty" json:"inventory_announcement,omitempty"`
	FeefilterAnnouncement *FeefilterAnnouncement `cbor:"4,keyasint,omitempty" json:"feefilter_announcement,omitempty"`
}

// Subject returns the P2P extractor's bus subject.
func (p *P2P) Subject() Subject { return SubjectP2P }

func (p *P2P) attach(e *Envelope) { e.P2P = p }

func (p *P2P) String() string {
	switch {
	case p.PingDuration != nil:
		return p.PingDuration.String()
	case p.AddressAnnouncement != nil:
		return p.AddressAnnouncement.String()
	case p.InventoryAnnouncement != nil:
		return p.InventoryAnnouncement.String()
	case p.FeefilterAnnouncement != nil:
		return p.FeefilterAnnouncement.String()
	default:
		return "P2P()"
	}
}

// PingDuration is the round-trip time of one ping/pong exchange with a peer.
type PingDuration struct {
	PeerID         uint64 `cbor:"1,keyasint" json:"peer_id"`
	DurationMicros uint64 `cbor:"2,keyasint" json:"duration_micros"`
}

func (p *PingDuration) String() string {
	return fmt.Sprintf("PingDuration(peer=%d, duration=%dµs)", p.PeerID, p.DurationMicros)
}

// AddressAnnouncement is a batch of addresses a peer announced in one addr
// or addrv2 message.
type AddressAnnouncement struct {
	PeerID    uint64   `cbor:"1,keyasint" json:"peer_id"`
	Addresses []string `cbor:"2,keyasint" json:"addresses"`
}

func (a *AddressAnnouncement) String() string {
	return fmt.Sprintf("AddressAnnouncement(peer=%d, addresses=%d)", a.PeerID, len(a.Addresses))
}

// InventoryAnnouncement is one inv message from a peer, counted by item
// type.
type InventoryAnnouncement struct {
	PeerID       uint64 `cbor:"1,keyasint" json:"peer_id"`
	Transactions uint32 `cbor:"2,keyasint,omitempty" json:"transactions,omitempty"`
	Blocks       uint32 `cbor:"3,keyasint,omitempty" json:"blocks,omitempty"`
	Other        uint32 `cbor:"4,keyasint,omitempty" json:"other,omitempty"`
}

func (i *InventoryAnnouncement) String() string {
	return fmt.Sprintf("InventoryAnnouncement(peer=%d, txns=%d, blocks=%d)",
		i.PeerID, i.Transactions, i.Blocks)
}

// FeefilterAnnouncement is a peer's announced minimum fee rate in sat/kvB.
type FeefilterAnnouncement struct {
	PeerID  uint64 `cbor:"1,keyasint" json:"peer_id"`
	Feerate int64  `cbor:"2,keyasint" json:"feerate"`
}

func (f *FeefilterAnnouncement) String() string {
	return fmt.Sprintf("FeefilterAnnouncement(peer=%d, feerate=%d)", f.PeerID, f.Feerate)
}
