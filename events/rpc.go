package events

import (
	"fmt"
	"strings"
)

// Rpc is the payload published by the RPC extractor: exactly one variant per
// queryable RPC method.
type Rpc struct {
	PeerInfos    *PeerInfos    `cbor:"1,keyasint,omitempty" json:"peer_infos,omitempty"`
	MempoolInfo  *MempoolInfo  `cbor:"2,keyasint,omitempty" json:"mempool_info,omitempty"`
	Uptime       *Uptime       `cbor:"3,keyasint,omitempty" json:"uptime,omitempty"`
	NetTotals    *NetTotals    `cbor:"4,keyasint,omitempty" json:"net_totals,omitempty"`
	MemoryInfo   *MemoryInfo   `cbor:"5,keyasint,omitempty" json:"memory_info,omitempty"`
	AddrmanInfo  *AddrmanInfo  `cbor:"6,keyasint,omitempty" json:"addrman_info,omitempty"`
	ChainTxStats *ChainTxStats `cbor:"7,keyasint,omitempty" json:"chain_tx_stats,omitempty"`
}

// Subject returns the RPC extractor's bus subject.
func (r *Rpc) Subject() Subject { return SubjectRpc }

func (r *Rpc) attach(e *Envelope) { e.Rpc = r }

func (r *Rpc) String() string {
	switch {
	case r.PeerInfos != nil:
		return r.PeerInfos.String()
	case r.MempoolInfo != nil:
		return r.MempoolInfo.String()
	case r.Uptime != nil:
		return r.Uptime.String()
	case r.NetTotals != nil:
		return r.NetTotals.String()
	case r.MemoryInfo != nil:
		return r.MemoryInfo.String()
	case r.AddrmanInfo != nil:
		return r.AddrmanInfo.String()
	case r.ChainTxStats != nil:
		return r.ChainTxStats.String()
	default:
		return "Rpc()"
	}
}

// PeerInfos is a snapshot of all currently connected peers.
type PeerInfos struct {
	Infos []PeerInfo `cbor:"1,keyasint" json:"infos"`
}

func (p *PeerInfos) String() string {
	infos := make([]string, len(p.Infos))
	for i, info := range p.Infos {
		infos[i] = info.String()
	}
	return fmt.Sprintf("PeerInfos([%s])", strings.Join(infos, ", "))
}

// PeerInfo is one peer from a peer-info snapshot. Optional upstream fields
// default to their zero value during conversion.
type PeerInfo struct {
	ID                    int64             `cbor:"1,keyasint" json:"id"`
	Address               string            `cbor:"2,keyasint" json:"address"`
	AddressBind           string            `cbor:"3,keyasint,omitempty" json:"address_bind,omitempty"`
	AddressLocal          string            `cbor:"4,keyasint,omitempty" json:"address_local,omitempty"`
	AddrRateLimited       uint64            `cbor:"5,keyasint,omitempty" json:"addr_rate_limited,omitempty"`
	AddrRelayEnabled      bool              `cbor:"6,keyasint,omitempty" json:"addr_relay_enabled,omitempty"`
	AddrProcessed         uint64            `cbor:"7,keyasint,omitempty" json:"addr_processed,omitempty"`
	Bip152HbFrom          bool              `cbor:"8,keyasint,omitempty" json:"bip152_hb_from,omitempty"`
	Bip152HbTo            bool              `cbor:"9,keyasint,omitempty" json:"bip152_hb_to,omitempty"`
	BytesReceived         uint64            `cbor:"10,keyasint" json:"bytes_received"`
	BytesReceivedPerMsg   map[string]uint64 `cbor:"11,keyasint,omitempty" json:"bytes_received_per_message,omitempty"`
	BytesSent             uint64            `cbor:"12,keyasint" json:"bytes_sent"`
	BytesSentPerMsg       map[string]uint64 `cbor:"13,keyasint,omitempty" json:"bytes_sent_per_message,omitempty"`
	ConnectionTime        int64             `cbor:"14,keyasint" json:"connection_time"`
	ConnectionType        string            `cbor:"15,keyasint,omitempty" json:"connection_type,omitempty"`
	Inbound               bool              `cbor:"16,keyasint" json:"inbound"`
	Inflight              []uint64          `cbor:"17,keyasint,omitempty" json:"inflight,omitempty"`
	LastBlock             int64             `cbor:"18,keyasint,omitempty" json:"last_block,omitempty"`
	LastReceived          int64             `cbor:"19,keyasint,omitempty" json:"last_received,omitempty"`
	LastSend              int64             `cbor:"20,keyasint,omitempty" json:"last_send,omitempty"`
	LastTransaction       int64             `cbor:"21,keyasint,omitempty" json:"last_transaction,omitempty"`
	MappedAs              uint32            `cbor:"22,keyasint,omitempty" json:"mapped_as,omitempty"`
	MinFeeFilter          float64           `cbor:"23,keyasint,omitempty" json:"minfeefilter,omitempty"`
	MinimumPing           float64           `cbor:"24,keyasint,omitempty" json:"minimum_ping,omitempty"`
	Network               string            `cbor:"25,keyasint" json:"network"`
	PingTime              float64           `cbor:"26,keyasint,omitempty" json:"ping_time,omitempty"`
	PingWait              float64           `cbor:"27,keyasint,omitempty" json:"ping_wait,omitempty"`
	Permissions           []string          `cbor:"28,keyasint,omitempty" json:"permissions,omitempty"`
	RelayTransactions     bool              `cbor:"29,keyasint,omitempty" json:"relay_transactions,omitempty"`
	Services              string            `cbor:"30,keyasint" json:"services"`
	StartingHeight        int64             `cbor:"31,keyasint,omitempty" json:"starting_height,omitempty"`
	Subversion            string            `cbor:"32,keyasint,omitempty" json:"subversion,omitempty"`
	SyncedBlocks          int64             `cbor:"33,keyasint,omitempty" json:"synced_blocks,omitempty"`
	SyncedHeaders         int64             `cbor:"34,keyasint,omitempty" json:"synced_headers,omitempty"`
	TimeOffset            int64             `cbor:"35,keyasint,omitempty" json:"time_offset,omitempty"`
	TransportProtocolType string            `cbor:"36,keyasint,omitempty" json:"transport_protocol_type,omitempty"`
	Version               uint32            `cbor:"37,keyasint" json:"version"`
}

func (p PeerInfo) String() string {
	return fmt.Sprintf("PeerInfo(id=%d)", p.ID)
}

// MempoolInfo is a mempool summary snapshot.
type MempoolInfo struct {
	Loaded              bool    `cbor:"1,keyasint" json:"loaded"`
	Size                int64   `cbor:"2,keyasint" json:"size"`
	Bytes               int64   `cbor:"3,keyasint" json:"bytes"`
	Usage               int64   `cbor:"4,keyasint" json:"usage"`
	TotalFee            float64 `cbor:"5,keyasint" json:"total_fee"`
	MaxMempool          int64   `cbor:"6,keyasint" json:"max_mempool"`
	MempoolMinFee       float64 `cbor:"7,keyasint" json:"mempoolminfee"`
	MinRelayTxFee       float64 `cbor:"8,keyasint" json:"minrelaytxfee"`
	IncrementalRelayFee float64 `cbor:"9,keyasint" json:"incrementalrelayfee"`
	UnbroadcastCount    int64   `cbor:"10,keyasint" json:"unbroadcastcount"`
	FullRbf             bool    `cbor:"11,keyasint" json:"fullrbf"`
}

func (m *MempoolInfo) String() string {
	return fmt.Sprintf("MempoolInfo(size=%dtxn, bytes=%dvB, usage=%db)", m.Size, m.Bytes, m.Usage)
}

// Uptime is the node's uptime in seconds.
type Uptime struct {
	Seconds uint64 `cbor:"1,keyasint" json:"seconds"`
}

func (u *Uptime) String() string {
	return fmt.Sprintf("Uptime(%ds)", u.Seconds)
}

// NetTotals carries the node's total network traffic counters.
type NetTotals struct {
	TotalBytesReceived uint64       `cbor:"1,keyasint" json:"total_bytes_received"`
	TotalBytesSent     uint64       `cbor:"2,keyasint" json:"total_bytes_sent"`
	TimeMillis         int64        `cbor:"3,keyasint" json:"time_millis"`
	UploadTarget       UploadTarget `cbor:"4,keyasint" json:"upload_target"`
}

func (n *NetTotals) String() string {
	return fmt.Sprintf("NetTotals(recv=%dB, sent=%dB)", n.TotalBytesReceived, n.TotalBytesSent)
}

// UploadTarget describes the node's outbound traffic target state.
type UploadTarget struct {
	Timeframe             uint64 `cbor:"1,keyasint" json:"timeframe"`
	Target                uint64 `cbor:"2,keyasint" json:"target"`
	TargetReached         bool   `cbor:"3,keyasint" json:"target_reached"`
	ServeHistoricalBlocks bool   `cbor:"4,keyasint" json:"serve_historical_blocks"`
	BytesLeftInCycle      uint64 `cbor:"5,keyasint" json:"bytes_left_in_cycle"`
	TimeLeftInCycle       uint64 `cbor:"6,keyasint" json:"time_left_in_cycle"`
}

func (u UploadTarget) String() string {
	return fmt.Sprintf("UploadTarget(target=%dB, reached=%t)", u.Target, u.TargetReached)
}

// MemoryInfo carries the locked-memory-manager statistics of the node.
type MemoryInfo struct {
	Used       uint64 `cbor:"1,keyasint" json:"used"`
	Free       uint64 `cbor:"2,keyasint" json:"free"`
	Total      uint64 `cbor:"3,keyasint" json:"total"`
	Locked     uint64 `cbor:"4,keyasint" json:"locked"`
	ChunksUsed uint64 `cbor:"5,keyasint" json:"chunks_used"`
	ChunksFree uint64 `cbor:"6,keyasint" json:"chunks_free"`
}

func (m *MemoryInfo) String() string {
	return fmt.Sprintf("MemoryInfo(used=%d, free=%d, total=%d)", m.Used, m.Free, m.Total)
}

// AddrmanInfo carries address-manager table sizes per network.
type AddrmanInfo struct {
	Networks map[string]AddrmanNetworkInfo `cbor:"1,keyasint" json:"networks"`
}

func (a *AddrmanInfo) String() string {
	return fmt.Sprintf("AddrmanInfo(%d networks)", len(a.Networks))
}

// AddrmanNetworkInfo is the address-manager table size for one network.
type AddrmanNetworkInfo struct {
	New   uint64 `cbor:"1,keyasint" json:"new"`
	Tried uint64 `cbor:"2,keyasint" json:"tried"`
	Total uint64 `cbor:"3,keyasint" json:"total"`
}

// ChainTxStats carries chain-wide transaction statistics over a window.
type ChainTxStats struct {
	Time                   int64   `cbor:"1,keyasint" json:"time"`
	TxCount                uint64  `cbor:"2,keyasint" json:"txcount"`
	WindowFinalBlockHash   string  `cbor:"3,keyasint" json:"window_final_block_hash"`
	WindowFinalBlockHeight uint32  `cbor:"4,keyasint" json:"window_final_block_height"`
	WindowBlockCount       uint64  `cbor:"5,keyasint" json:"window_block_count"`
	WindowTxCount          uint64  `cbor:"6,keyasint,omitempty" json:"window_tx_count,omitempty"`
	WindowInterval         uint64  `cbor:"7,keyasint,omitempty" json:"window_interval,omitempty"`
	TxRate                 float64 `cbor:"8,keyasint,omitempty" json:"txrate,omitempty"`
}

func (c *ChainTxStats) String() string {
	return fmt.Sprintf("ChainTxStats(txcount=%d, height=%d)", c.TxCount, c.WindowFinalBlockHeight)
}
